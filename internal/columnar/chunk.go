// Package columnar implements the append-only, chunked columnar ring
// buffer each attached table is backed by: a single mutable in-flight
// chunk plus a FIFO-evicted ring of sealed, immutable chunks, each
// carrying a zone map used by internal/scan to prune chunks before
// scanning them (spec.md §4).
package columnar

import (
	"math"

	"otlpsink/internal/schema"
)

// column is the column-major storage for one logical column of a chunk.
// Only the slice matching typ is populated; the others stay nil. nulls is
// always allocated at chunk capacity.
type column struct {
	typ   schema.ColumnType
	nulls []bool

	timestamps []int64
	strings    []string
	float64s   []float64
	uint64s    []uint64
	int64s     []int64
	int32s     []int32
	uint32s    []uint32
	bools      []bool
	maps       []map[string]string

	listTimestamps [][]int64
	listStrings    [][]string
	listFloat64s   [][]float64
	listUint64s    [][]uint64
	listMaps       [][]map[string]string
}

func newColumn(typ schema.ColumnType, capacity int) column {
	c := column{typ: typ, nulls: make([]bool, capacity)}
	switch typ {
	case schema.TimestampNS:
		c.timestamps = make([]int64, capacity)
	case schema.Varchar:
		c.strings = make([]string, capacity)
	case schema.Float64:
		c.float64s = make([]float64, capacity)
	case schema.UInt64:
		c.uint64s = make([]uint64, capacity)
	case schema.Int64:
		c.int64s = make([]int64, capacity)
	case schema.Int32:
		c.int32s = make([]int32, capacity)
	case schema.UInt32:
		c.uint32s = make([]uint32, capacity)
	case schema.Bool:
		c.bools = make([]bool, capacity)
	case schema.MapStringString:
		c.maps = make([]map[string]string, capacity)
	case schema.ListTimestampNS:
		c.listTimestamps = make([][]int64, capacity)
	case schema.ListVarchar:
		c.listStrings = make([][]string, capacity)
	case schema.ListFloat64:
		c.listFloat64s = make([][]float64, capacity)
	case schema.ListUInt64:
		c.listUint64s = make([][]uint64, capacity)
	case schema.ListMapStringString:
		c.listMaps = make([][]map[string]string, capacity)
	}
	return c
}

// zoneMap is the per-chunk metadata internal/scan uses to skip chunks that
// cannot match a query's predicates without reading any row data.
type zoneMap struct {
	tsMinUS int64
	tsMaxUS int64

	svcHas   bool
	svcMixed bool
	svcValue string

	metHas   bool
	metMixed bool
	metValue string
}

func newZoneMap() zoneMap {
	return zoneMap{tsMinUS: math.MaxInt64, tsMaxUS: math.MinInt64}
}

func (z *zoneMap) updateTimestamp(us int64) {
	if us < z.tsMinUS {
		z.tsMinUS = us
	}
	if us > z.tsMaxUS {
		z.tsMaxUS = us
	}
}

func (z *zoneMap) updateService(val string) {
	if !z.svcHas {
		z.svcHas = true
		z.svcValue = val
		return
	}
	if !z.svcMixed && z.svcValue != val {
		z.svcMixed = true
	}
}

func (z *zoneMap) updateMetric(val string) {
	if !z.metHas {
		z.metHas = true
		z.metValue = val
		return
	}
	if !z.metMixed && z.metValue != val {
		z.metMixed = true
	}
}

// chunk is the mutable, in-flight chunk rows are appended into.
type chunk struct {
	columns  []column
	size     int
	capacity int
	zone     zoneMap
}

func newChunk(table *schema.Table, capacity int) *chunk {
	cols := make([]column, len(table.Columns))
	for i, c := range table.Columns {
		cols[i] = newColumn(c.Type, capacity)
	}
	return &chunk{columns: cols, capacity: capacity, zone: newZoneMap()}
}

// StoredChunk is an immutable, sealed chunk as returned by Snapshot. Its
// fields mirror the original extension's ColumnarStoredChunk.
type StoredChunk struct {
	columns []column
	size    int
	zone    zoneMap
}

// Size returns the number of valid rows in the chunk.
func (s *StoredChunk) Size() int { return s.size }

// TimestampRange returns the chunk's [min, max] timestamp in microseconds.
func (s *StoredChunk) TimestampRange() (minUS, maxUS int64) {
	return s.zone.tsMinUS, s.zone.tsMaxUS
}

// ServiceZone reports whether the chunk's designated service column is
// single-valued (has && !mixed), and if so, its value.
func (s *StoredChunk) ServiceZone() (has, mixed bool, value string) {
	return s.zone.svcHas, s.zone.svcMixed, s.zone.svcValue
}

// MetricZone reports whether the chunk's designated metric-name column is
// single-valued (has && !mixed), and if so, its value.
func (s *StoredChunk) MetricZone() (has, mixed bool, value string) {
	return s.zone.metHas, s.zone.metMixed, s.zone.metValue
}

// IsNull reports whether row r of column c is null.
func (s *StoredChunk) IsNull(c, r int) bool { return s.columns[c].nulls[r] }

func (s *StoredChunk) TimestampNS(c, r int) int64        { return s.columns[c].timestamps[r] }
func (s *StoredChunk) Varchar(c, r int) string            { return s.columns[c].strings[r] }
func (s *StoredChunk) Float64(c, r int) float64            { return s.columns[c].float64s[r] }
func (s *StoredChunk) UInt64(c, r int) uint64              { return s.columns[c].uint64s[r] }
func (s *StoredChunk) Int64(c, r int) int64                { return s.columns[c].int64s[r] }
func (s *StoredChunk) Int32(c, r int) int32                { return s.columns[c].int32s[r] }
func (s *StoredChunk) UInt32(c, r int) uint32              { return s.columns[c].uint32s[r] }
func (s *StoredChunk) Bool(c, r int) bool                  { return s.columns[c].bools[r] }
func (s *StoredChunk) Map(c, r int) map[string]string      { return s.columns[c].maps[r] }
func (s *StoredChunk) ListTimestampNS(c, r int) []int64    { return s.columns[c].listTimestamps[r] }
func (s *StoredChunk) ListVarchar(c, r int) []string        { return s.columns[c].listStrings[r] }
func (s *StoredChunk) ListFloat64(c, r int) []float64       { return s.columns[c].listFloat64s[r] }
func (s *StoredChunk) ListUInt64(c, r int) []uint64         { return s.columns[c].listUint64s[r] }
func (s *StoredChunk) ListMap(c, r int) []map[string]string { return s.columns[c].listMaps[r] }

// seal finalizes a mutable chunk into an immutable StoredChunk, truncating
// every column's backing slice to the chunk's actual size.
func (ch *chunk) seal() *StoredChunk {
	sealed := make([]column, len(ch.columns))
	for i, c := range ch.columns {
		sc := column{typ: c.typ, nulls: c.nulls[:ch.size]}
		switch c.typ {
		case schema.TimestampNS:
			sc.timestamps = c.timestamps[:ch.size]
		case schema.Varchar:
			sc.strings = c.strings[:ch.size]
		case schema.Float64:
			sc.float64s = c.float64s[:ch.size]
		case schema.UInt64:
			sc.uint64s = c.uint64s[:ch.size]
		case schema.Int64:
			sc.int64s = c.int64s[:ch.size]
		case schema.Int32:
			sc.int32s = c.int32s[:ch.size]
		case schema.UInt32:
			sc.uint32s = c.uint32s[:ch.size]
		case schema.Bool:
			sc.bools = c.bools[:ch.size]
		case schema.MapStringString:
			sc.maps = c.maps[:ch.size]
		case schema.ListTimestampNS:
			sc.listTimestamps = c.listTimestamps[:ch.size]
		case schema.ListVarchar:
			sc.listStrings = c.listStrings[:ch.size]
		case schema.ListFloat64:
			sc.listFloat64s = c.listFloat64s[:ch.size]
		case schema.ListUInt64:
			sc.listUint64s = c.listUint64s[:ch.size]
		case schema.ListMapStringString:
			sc.listMaps = c.listMaps[:ch.size]
		}
		sealed[i] = sc
	}
	return &StoredChunk{columns: sealed, size: ch.size, zone: ch.zone}
}

// snapshotCopy deep-copies the live, in-flight chunk into a standalone
// StoredChunk so a concurrent Snapshot never aliases storage the writer is
// still mutating after the snapshot call returns.
func (ch *chunk) snapshotCopy() *StoredChunk {
	sealed := ch.seal()
	copied := make([]column, len(sealed.columns))
	for i, c := range sealed.columns {
		cc := column{typ: c.typ, nulls: append([]bool(nil), c.nulls...)}
		switch c.typ {
		case schema.TimestampNS:
			cc.timestamps = append([]int64(nil), c.timestamps...)
		case schema.Varchar:
			cc.strings = append([]string(nil), c.strings...)
		case schema.Float64:
			cc.float64s = append([]float64(nil), c.float64s...)
		case schema.UInt64:
			cc.uint64s = append([]uint64(nil), c.uint64s...)
		case schema.Int64:
			cc.int64s = append([]int64(nil), c.int64s...)
		case schema.Int32:
			cc.int32s = append([]int32(nil), c.int32s...)
		case schema.UInt32:
			cc.uint32s = append([]uint32(nil), c.uint32s...)
		case schema.Bool:
			cc.bools = append([]bool(nil), c.bools...)
		case schema.MapStringString:
			cc.maps = append([]map[string]string(nil), c.maps...)
		case schema.ListTimestampNS:
			cc.listTimestamps = append([][]int64(nil), c.listTimestamps...)
		case schema.ListVarchar:
			cc.listStrings = append([][]string(nil), c.listStrings...)
		case schema.ListFloat64:
			cc.listFloat64s = append([][]float64(nil), c.listFloat64s...)
		case schema.ListUInt64:
			cc.listUint64s = append([][]uint64(nil), c.listUint64s...)
		case schema.ListMapStringString:
			cc.listMaps = append([][]map[string]string(nil), c.listMaps...)
		}
		copied[i] = cc
	}
	return &StoredChunk{columns: copied, size: sealed.size, zone: sealed.zone}
}
