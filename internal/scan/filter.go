package scan

import (
	"otlpsink/internal/columnar"
	"otlpsink/internal/schema"
)

// Op is a constant-comparison operator, matching the pushdown shape spec.md
// §6 describes: "{=, <, ≤, >, ≥}" plus IS NULL.
type Op int

const (
	OpEqual Op = iota
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpIsNull
)

// PushedFilter is one (column_id, filter) pair pushed down to a scan.
// Exactly one of Int, Float, String, Bool holds the constant operand,
// selected by the target column's schema.ColumnType; OpIsNull ignores all
// of them.
type PushedFilter struct {
	ColumnIdx int
	Op        Op

	Int    int64
	Float  float64
	String string
	Bool   bool
}

// FilterInt builds a constant-comparison filter against an integer
// column. Against column 0 (Timestamp), v is interpreted in microseconds
// to match the zone map's ts_min_us/ts_max_us, not the nanoseconds the
// column itself stores rows in.
func FilterInt(columnIdx int, op Op, v int64) PushedFilter {
	return PushedFilter{ColumnIdx: columnIdx, Op: op, Int: v}
}

// FilterFloat builds a constant-comparison filter against a float column.
func FilterFloat(columnIdx int, op Op, v float64) PushedFilter {
	return PushedFilter{ColumnIdx: columnIdx, Op: op, Float: v}
}

// FilterString builds a constant-comparison filter against a varchar
// column.
func FilterString(columnIdx int, op Op, v string) PushedFilter {
	return PushedFilter{ColumnIdx: columnIdx, Op: op, String: v}
}

// FilterBool builds a constant-comparison filter against a boolean column.
func FilterBool(columnIdx int, op Op, v bool) PushedFilter {
	return PushedFilter{ColumnIdx: columnIdx, Op: op, Bool: v}
}

// FilterIsNull builds an IS NULL predicate on a column.
func FilterIsNull(columnIdx int) PushedFilter {
	return PushedFilter{ColumnIdx: columnIdx, Op: OpIsNull}
}

// evalResidual row-wise evaluates a filter the bind step could not absorb
// into the precomputed timestamp/service/metric forms, per spec.md §4.5's
// filtered path step 3. A filter kind the target column's type cannot
// support falls back to always-true, matching spec.md §4.5's "Error
// semantics": unsupported filter kinds are treated conservatively rather
// than erroring.
func evalResidual(c *columnar.StoredChunk, colType schema.ColumnType, f PushedFilter, row int) bool {
	if c.IsNull(f.ColumnIdx, row) {
		return f.Op == OpIsNull
	}
	if f.Op == OpIsNull {
		return false
	}

	switch colType {
	case schema.TimestampNS:
		return compareInt64(c.TimestampNS(f.ColumnIdx, row), f.Op, f.Int)
	case schema.Int64:
		return compareInt64(c.Int64(f.ColumnIdx, row), f.Op, f.Int)
	case schema.Int32:
		return compareInt64(int64(c.Int32(f.ColumnIdx, row)), f.Op, f.Int)
	case schema.UInt64:
		return compareInt64(int64(c.UInt64(f.ColumnIdx, row)), f.Op, f.Int)
	case schema.UInt32:
		return compareInt64(int64(c.UInt32(f.ColumnIdx, row)), f.Op, f.Int)
	case schema.Float64:
		return compareFloat64(c.Float64(f.ColumnIdx, row), f.Op, f.Float)
	case schema.Varchar:
		return compareString(c.Varchar(f.ColumnIdx, row), f.Op, f.String)
	case schema.Bool:
		return compareBool(c.Bool(f.ColumnIdx, row), f.Op, f.Bool)
	default:
		return true
	}
}

func compareInt64(a int64, op Op, b int64) bool {
	switch op {
	case OpEqual:
		return a == b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	default:
		return true
	}
}

func compareFloat64(a float64, op Op, b float64) bool {
	switch op {
	case OpEqual:
		return a == b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	default:
		return true
	}
}

func compareString(a string, op Op, b string) bool {
	switch op {
	case OpEqual:
		return a == b
	case OpLess:
		return a < b
	case OpLessEqual:
		return a <= b
	case OpGreater:
		return a > b
	case OpGreaterEqual:
		return a >= b
	default:
		return true
	}
}

func compareBool(a bool, op Op, b bool) bool {
	if op != OpEqual {
		return true
	}
	return a == b
}
