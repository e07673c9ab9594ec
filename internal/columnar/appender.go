package columnar

import "math"

// TimestampColumn is the column index every table reserves for its primary
// timestamp, used by the Appender to maintain the chunk's zone map and by
// internal/scan for timestamp pushdown.
const TimestampColumn = 0

// NanosToMicrosHalfUp converts a nanosecond epoch value to microseconds,
// rounding to the nearest microsecond with ties rounding up (spec.md §4.2:
// "divided by 1000 with round-to-nearest, half-up, no negative bias").
// Timestamps reaching this conversion are always non-negative (clamped by
// the decode layer), so half-up rounding of the remainder is exact; the
// remainder is rounded separately so a clamped math.MaxInt64 cannot overflow.
func NanosToMicrosHalfUp(ns int64) int64 {
	return ns/1000 + (ns%1000+500)/1000
}

// Appender is a scoped, single-writer handle onto a RingBuffer: obtaining
// one takes the buffer's exclusive lock for the whole batch, so decoders
// must never hold an Appender across anything that can block (a network
// read, another lock) or fail partway through a batch in a way that could
// interleave a fatal decode with already-committed rows (spec.md §7: a
// Decode error must be detected before any Appender is held, never roll
// back a partial write).
type Appender struct {
	buf      *RingBuffer
	rowTSus  int64
	released bool
}

// GetAppender acquires buf's write lock and returns a scoped Appender.
// Callers must call Close when done.
func (b *RingBuffer) GetAppender() *Appender {
	b.mu.Lock()
	b.ensureCurrentChunkLocked()
	return &Appender{buf: b, rowTSus: math.MaxInt64}
}

// Close releases the buffer's write lock. Safe to call via defer
// immediately after GetAppender.
func (a *Appender) Close() {
	if a.released {
		return
	}
	a.released = true
	a.buf.mu.Unlock()
}

func (a *Appender) ensureSpace() {
	if a.buf.current.size >= a.buf.chunkCapacity {
		a.buf.finalizeCurrentChunkLocked()
		a.buf.ensureCurrentChunkLocked()
	}
}

// BeginRow starts a new row in the chunk currently accepting writes.
func (a *Appender) BeginRow() {
	a.ensureSpace()
	a.rowTSus = math.MaxInt64
}

func (a *Appender) row() int { return a.buf.current.size }

// SetNull marks column col null for the row in progress.
func (a *Appender) SetNull(col int) {
	a.buf.current.columns[col].nulls[a.row()] = true
}

// SetTimestampNS sets column col (expected type TIMESTAMP_NS) to val
// nanoseconds since epoch. Column 0 additionally updates the row's
// timestamp used for the chunk zone map on CommitRow.
func (a *Appender) SetTimestampNS(col int, val int64) {
	a.buf.current.columns[col].timestamps[a.row()] = val
	if col == TimestampColumn {
		a.rowTSus = NanosToMicrosHalfUp(val)
	}
}

// SetDouble sets column col (expected type DOUBLE) to val.
func (a *Appender) SetDouble(col int, val float64) {
	a.buf.current.columns[col].float64s[a.row()] = val
}

// SetUBigint sets column col (expected type UBIGINT) to val.
func (a *Appender) SetUBigint(col int, val uint64) {
	a.buf.current.columns[col].uint64s[a.row()] = val
}

// SetBigint sets column col (expected type BIGINT) to val.
func (a *Appender) SetBigint(col int, val int64) {
	a.buf.current.columns[col].int64s[a.row()] = val
}

// SetInteger sets column col (expected type INTEGER) to val.
func (a *Appender) SetInteger(col int, val int32) {
	a.buf.current.columns[col].int32s[a.row()] = val
}

// SetUInteger sets column col (expected type UINTEGER) to val.
func (a *Appender) SetUInteger(col int, val uint32) {
	a.buf.current.columns[col].uint32s[a.row()] = val
}

// SetBoolean sets column col (expected type BOOLEAN) to val.
func (a *Appender) SetBoolean(col int, val bool) {
	a.buf.current.columns[col].bools[a.row()] = val
}

// SetVarchar sets column col (expected type VARCHAR) to val, interning it
// through the buffer's string pool.
func (a *Appender) SetVarchar(col int, val string) {
	interned := a.buf.intern.intern(val)
	a.buf.current.columns[col].strings[a.row()] = interned
	svc := a.buf.serviceColIdx
	met := a.buf.metricColIdx
	if (svc != nil && col == *svc) || (met != nil && col == *met) {
		a.buf.updateZoneLocked(col, interned)
	}
}

// SetMap sets column col (expected type MAP(VARCHAR,VARCHAR)) to val.
func (a *Appender) SetMap(col int, val map[string]string) {
	a.buf.current.columns[col].maps[a.row()] = val
}

// SetListTimestampNS sets column col (expected type LIST(TIMESTAMP_NS)).
func (a *Appender) SetListTimestampNS(col int, val []int64) {
	a.buf.current.columns[col].listTimestamps[a.row()] = val
}

// SetListVarchar sets column col (expected type LIST(VARCHAR)).
func (a *Appender) SetListVarchar(col int, val []string) {
	a.buf.current.columns[col].listStrings[a.row()] = val
}

// SetListFloat64 sets column col (expected type LIST(DOUBLE)).
func (a *Appender) SetListFloat64(col int, val []float64) {
	a.buf.current.columns[col].listFloat64s[a.row()] = val
}

// SetListUInt64 sets column col (expected type LIST(UBIGINT)).
func (a *Appender) SetListUInt64(col int, val []uint64) {
	a.buf.current.columns[col].listUint64s[a.row()] = val
}

// SetListMap sets column col (expected type LIST(MAP(VARCHAR,VARCHAR))).
func (a *Appender) SetListMap(col int, val []map[string]string) {
	a.buf.current.columns[col].listMaps[a.row()] = val
}

// CommitRow finalizes the row in progress: folds its timestamp into the
// chunk zone map, advances the chunk's size, and seals/rotates the chunk
// if it has reached capacity.
func (a *Appender) CommitRow() {
	if a.rowTSus != math.MaxInt64 {
		a.buf.current.zone.updateTimestamp(a.rowTSus)
	}
	a.buf.current.size++
	a.buf.metrics.rowsAppended.Inc()
	if a.buf.current.size >= a.buf.chunkCapacity {
		a.buf.finalizeCurrentChunkLocked()
		a.buf.ensureCurrentChunkLocked()
	}
}
