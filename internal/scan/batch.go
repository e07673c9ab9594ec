package scan

import "otlpsink/internal/columnar"

// VectorSize bounds the row count of one output Batch, matching the
// original extension's STANDARD_VECTOR_SIZE (and internal/columnar's
// DefaultChunkCapacity, which it was sized from).
const VectorSize = columnar.DefaultChunkCapacity

// Batch is one vectorized slice of scan output, every row drawn from a
// single underlying StoredChunk. It never copies column storage: the fast
// path (no row filters) addresses a contiguous row range, the filtered
// path addresses an explicit selection of row indices — the same two
// shapes spec.md §4.5 describes.
type Batch struct {
	chunk     *columnar.StoredChunk
	outToBase []int

	start, end int // valid when sel == nil
	sel        []int
}

// Len returns the number of rows in the batch.
func (b Batch) Len() int {
	if b.sel != nil {
		return len(b.sel)
	}
	return b.end - b.start
}

func (b Batch) row(r int) int {
	if b.sel != nil {
		return b.sel[r]
	}
	return b.start + r
}

func (b Batch) base(outCol int) int { return b.outToBase[outCol] }

// IsNull reports whether row r of output column outCol is null.
func (b Batch) IsNull(outCol, r int) bool { return b.chunk.IsNull(b.base(outCol), b.row(r)) }

func (b Batch) TimestampNS(outCol, r int) int64 {
	return b.chunk.TimestampNS(b.base(outCol), b.row(r))
}
func (b Batch) Varchar(outCol, r int) string {
	return b.chunk.Varchar(b.base(outCol), b.row(r))
}
func (b Batch) Float64(outCol, r int) float64 {
	return b.chunk.Float64(b.base(outCol), b.row(r))
}
func (b Batch) UInt64(outCol, r int) uint64 {
	return b.chunk.UInt64(b.base(outCol), b.row(r))
}
func (b Batch) Int64(outCol, r int) int64 {
	return b.chunk.Int64(b.base(outCol), b.row(r))
}
func (b Batch) Int32(outCol, r int) int32 {
	return b.chunk.Int32(b.base(outCol), b.row(r))
}
func (b Batch) UInt32(outCol, r int) uint32 {
	return b.chunk.UInt32(b.base(outCol), b.row(r))
}
func (b Batch) Bool(outCol, r int) bool {
	return b.chunk.Bool(b.base(outCol), b.row(r))
}
func (b Batch) Map(outCol, r int) map[string]string {
	return b.chunk.Map(b.base(outCol), b.row(r))
}
func (b Batch) ListTimestampNS(outCol, r int) []int64 {
	return b.chunk.ListTimestampNS(b.base(outCol), b.row(r))
}
func (b Batch) ListVarchar(outCol, r int) []string {
	return b.chunk.ListVarchar(b.base(outCol), b.row(r))
}
func (b Batch) ListFloat64(outCol, r int) []float64 {
	return b.chunk.ListFloat64(b.base(outCol), b.row(r))
}
func (b Batch) ListUInt64(outCol, r int) []uint64 {
	return b.chunk.ListUInt64(b.base(outCol), b.row(r))
}
func (b Batch) ListMap(outCol, r int) []map[string]string {
	return b.chunk.ListMap(b.base(outCol), b.row(r))
}
