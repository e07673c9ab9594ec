// Package store owns the set of columnar ring buffers backing one attach,
// one per table in the schema registry.
package store

import (
	"github.com/prometheus/client_golang/prometheus"

	"otlpsink/internal/columnar"
	"otlpsink/internal/schema"
)

// Store holds one RingBuffer per registered table, sized uniformly from
// the attach's buffer_size option.
type Store struct {
	buffers map[string]*columnar.RingBuffer
}

// New builds a Store with one buffer per schema table, each budgeted to
// hold exactly bufferSize rows per spec §4.2: chunk_capacity =
// min(vector_size, buffer_capacity), max_chunks = ceil(buffer_capacity /
// chunk_capacity). Capping chunkCapacity at bufferSize (rather than always
// using DefaultChunkCapacity) keeps small buffer_size values — including
// the buffer_size=1 boundary, where every append evicts the previous row —
// honest instead of over-retaining inside one oversized in-flight chunk.
func New(bufferSize int, registry prometheus.Registerer) *Store {
	chunkCapacity := columnar.DefaultChunkCapacity
	if bufferSize < chunkCapacity {
		chunkCapacity = bufferSize
	}
	if chunkCapacity < 1 {
		chunkCapacity = 1
	}
	maxChunks := (bufferSize + chunkCapacity - 1) / chunkCapacity
	if maxChunks < 1 {
		maxChunks = 1
	}

	buffers := make(map[string]*columnar.RingBuffer, len(schema.All()))
	for _, table := range schema.All() {
		buffers[table.Name] = columnar.New(
			table, maxChunks,
			columnar.WithChunkCapacity(chunkCapacity),
			columnar.WithRegistry(registry),
		)
	}
	return &Store{buffers: buffers}
}

// Buffer returns the RingBuffer backing name, if name is a known table.
func (s *Store) Buffer(name string) (*columnar.RingBuffer, bool) {
	b, ok := s.buffers[name]
	return b, ok
}

// Tables lists the table names this store backs, in schema registry order.
func (s *Store) Tables() []string {
	tables := schema.All()
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
