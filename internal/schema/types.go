// Package schema is the static, process-wide description of the seven
// OTLP tables: their column order, logical types, and the designated
// service/metric columns used for zone-map pruning (spec.md §4.1).
//
// The registry holds no runtime state. Any divergence between what it
// describes and a buffer's physical layout is a fatal internal error —
// callers should never reach that state. internal/columnar lays out every
// chunk from these descriptors and performs no separate check.
package schema

// ColumnType is the logical type carried by one column of a table.
type ColumnType int

const (
	TimestampNS ColumnType = iota
	Varchar
	Float64
	UInt64
	Int64
	Int32
	UInt32
	Bool
	MapStringString
	ListTimestampNS
	ListVarchar
	ListFloat64
	ListUInt64
	ListMapStringString
)

// String renders the type for diagnostics.
func (t ColumnType) String() string {
	switch t {
	case TimestampNS:
		return "TIMESTAMP_NS"
	case Varchar:
		return "VARCHAR"
	case Float64:
		return "DOUBLE"
	case UInt64:
		return "UBIGINT"
	case Int64:
		return "BIGINT"
	case Int32:
		return "INTEGER"
	case UInt32:
		return "UINTEGER"
	case Bool:
		return "BOOLEAN"
	case MapStringString:
		return "MAP(VARCHAR,VARCHAR)"
	case ListTimestampNS:
		return "LIST(TIMESTAMP_NS)"
	case ListVarchar:
		return "LIST(VARCHAR)"
	case ListFloat64:
		return "LIST(DOUBLE)"
	case ListUInt64:
		return "LIST(UBIGINT)"
	case ListMapStringString:
		return "LIST(MAP(VARCHAR,VARCHAR))"
	default:
		return "UNKNOWN"
	}
}

// Column describes one physical column of a table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is the ordered, typed column layout for one of the seven tables,
// plus the indices of the columns zone maps key off of. ServiceColIdx and
// MetricColIdx are nil when the table has no such column (e.g. traces has
// no metric name) — the "optional column index" re-expression of the
// source's sentinel-index fields (spec.md §9).
type Table struct {
	Name          string
	Columns       []Column
	ServiceColIdx *int
	MetricColIdx  *int
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnTypes returns the ordered column types.
func (t *Table) ColumnTypes() []ColumnType {
	types := make([]ColumnType, len(t.Columns))
	for i, c := range t.Columns {
		types[i] = c.Type
	}
	return types
}

func intPtr(i int) *int { return &i }
