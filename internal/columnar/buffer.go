package columnar

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"otlpsink/internal/schema"
)

// DefaultChunkCapacity is the row count a chunk holds before it is sealed
// into the ring, matching the original extension's STANDARD_VECTOR_SIZE.
const DefaultChunkCapacity = 2048

// RingBuffer is the append-only, chunked columnar store backing one
// attached table. Writers go through Appender, which takes the exclusive
// side of mu; readers call Snapshot, which takes the shared side.
type RingBuffer struct {
	table         *schema.Table
	chunkCapacity int
	maxChunks     int
	serviceColIdx *int
	metricColIdx  *int

	mu      sync.RWMutex
	chunks  []*StoredChunk
	current *chunk

	intern  *internPool
	metrics *bufferMetrics
}

// Option configures a RingBuffer at construction.
type Option func(*RingBuffer)

// WithChunkCapacity overrides DefaultChunkCapacity.
func WithChunkCapacity(capacity int) Option {
	return func(b *RingBuffer) { b.chunkCapacity = capacity }
}

// WithMaxChunks overrides the ring's maximum sealed-chunk count. Values
// below 1 are clamped to 1, matching the original's MaxValue(1, max_chunks).
func WithMaxChunks(maxChunks int) Option {
	return func(b *RingBuffer) {
		if maxChunks < 1 {
			maxChunks = 1
		}
		b.maxChunks = maxChunks
	}
}

// WithRegistry registers the buffer's counters against registry instead of
// leaving them unregistered (the default, used by tests).
func WithRegistry(registry prometheus.Registerer) Option {
	return func(b *RingBuffer) { b.metrics = newBufferMetrics(registry, b.table.Name) }
}

// New builds a RingBuffer for table. maxChunks bounds the ring's row
// budget: buffer_size (from Attach) divided by chunk capacity, rounded up.
func New(table *schema.Table, maxChunks int, opts ...Option) *RingBuffer {
	b := &RingBuffer{
		table:         table,
		chunkCapacity: DefaultChunkCapacity,
		maxChunks:     maxChunks,
		serviceColIdx: table.ServiceColIdx,
		metricColIdx:  table.MetricColIdx,
		intern:        newInternPool(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.maxChunks < 1 {
		b.maxChunks = 1
	}
	if b.metrics == nil {
		b.metrics = newBufferMetrics(nil, table.Name)
	}
	return b
}

// Table returns the schema descriptor this buffer was built for.
func (b *RingBuffer) Table() *schema.Table { return b.table }

func (b *RingBuffer) ensureCurrentChunkLocked() {
	if b.current != nil && b.current.size < b.chunkCapacity {
		return
	}
	if b.current != nil && b.current.size >= b.chunkCapacity {
		b.finalizeCurrentChunkLocked()
	}
	b.current = newChunk(b.table, b.chunkCapacity)
}

func (b *RingBuffer) finalizeCurrentChunkLocked() {
	if b.current == nil || b.current.size == 0 {
		return
	}
	sealed := b.current.seal()
	b.current = nil
	b.chunks = append(b.chunks, sealed)
	b.metrics.chunksSealed.Inc()
	if len(b.chunks) > b.maxChunks {
		evicted := len(b.chunks) - b.maxChunks
		b.chunks = append([]*StoredChunk(nil), b.chunks[evicted:]...)
		for i := 0; i < evicted; i++ {
			b.metrics.chunksEvicted.Inc()
		}
	}
}

// Snapshot returns a stable view of every sealed chunk plus a copy of the
// current in-flight chunk (if non-empty), for internal/scan to read
// without holding the buffer's lock for the duration of the scan. Sealing
// the in-flight chunk into the ring itself would let a concurrent
// Snapshot's eviction drop rows a writer is still appending to in the next
// chunk, so the in-flight chunk is copied rather than moved.
func (b *RingBuffer) Snapshot() []*StoredChunk {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]*StoredChunk, 0, len(b.chunks)+1)
	result = append(result, b.chunks...)
	if b.current != nil && b.current.size > 0 {
		result = append(result, b.current.snapshotCopy())
	}
	return result
}

// Size returns the approximate total row count across sealed and in-flight
// chunks. Not a stable count under concurrent writes; callers that need a
// consistent view should use Snapshot and sum chunk sizes.
func (b *RingBuffer) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, c := range b.chunks {
		total += c.size
	}
	if b.current != nil {
		total += b.current.size
	}
	return total
}

func (b *RingBuffer) updateZoneLocked(colIdx int, val string) {
	if b.serviceColIdx != nil && colIdx == *b.serviceColIdx {
		b.current.zone.updateService(val)
	} else if b.metricColIdx != nil && colIdx == *b.metricColIdx {
		b.current.zone.updateMetric(val)
	}
}
