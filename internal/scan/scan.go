// Package scan implements the Snapshot Scan: given a columnar ring
// buffer, a projected subset of its columns, and pushed-down filters, it
// produces an ordered stream of Batches consistent with the moment the
// snapshot was taken (spec.md §4.5). Chunks are the unit of parallelism —
// a shared atomic counter hands out chunk indices to a pool of worker
// goroutines, mirroring the original extension's next_chunk atomic and
// per-thread local scan state (original_source/src/include/otlp_columnar_scan.hpp).
package scan

import (
	"context"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"otlpsink/internal/columnar"
	"otlpsink/internal/schema"
)

// timestampColumnIdx is the column every table's Timestamp occupies;
// spec.md §4.5 derives timestamp bounds "from comparisons ... on column
// 0", true of all seven schema tables.
const timestampColumnIdx = 0

// Scanner holds one snapshot's bind-time state: the captured chunks, the
// output-column → base-column projection, and the filter pushdown
// translated into precomputed bounds/equalities plus a residual set.
type Scanner struct {
	table     *schema.Table
	snapshot  []*columnar.StoredChunk
	outToBase []int

	tsMinUS   *int64
	tsMaxUS   *int64
	serviceEq *string
	metricEq  *string
	residual  []PushedFilter

	nextChunk atomic.Uint64
	metrics   *scanMetrics
}

// Bind captures buf's snapshot and translates projection/filters into the
// scanner's bind-time state, mirroring OTLPColumnarScanInitGlobal. A nil
// projection scans every column of the table in order. registry may be
// nil (as in tests), leaving the chunk-pruning counter unregistered.
func Bind(buf *columnar.RingBuffer, projection []int, filters []PushedFilter, registry prometheus.Registerer) *Scanner {
	table := buf.Table()

	outToBase := projection
	if outToBase == nil {
		outToBase = make([]int, len(table.Columns))
		for i := range outToBase {
			outToBase[i] = i
		}
	}

	s := &Scanner{
		table:     table,
		snapshot:  buf.Snapshot(),
		outToBase: outToBase,
		metrics:   newScanMetrics(registry, table.Name),
	}
	for _, f := range filters {
		s.applyFilter(f)
	}
	return s
}

func (s *Scanner) applyFilter(f PushedFilter) {
	// The bounds are inclusive whole microseconds, so a strict comparison
	// moves its constant one microsecond inward.
	switch {
	case f.ColumnIdx == timestampColumnIdx && f.Op == OpGreater:
		s.tightenMin(f.Int + 1)
	case f.ColumnIdx == timestampColumnIdx && f.Op == OpGreaterEqual:
		s.tightenMin(f.Int)
	case f.ColumnIdx == timestampColumnIdx && f.Op == OpLess:
		s.tightenMax(f.Int - 1)
	case f.ColumnIdx == timestampColumnIdx && f.Op == OpLessEqual:
		s.tightenMax(f.Int)
	case f.ColumnIdx == timestampColumnIdx && f.Op == OpEqual:
		s.tightenMin(f.Int)
		s.tightenMax(f.Int)
	case s.table.ServiceColIdx != nil && f.ColumnIdx == *s.table.ServiceColIdx && f.Op == OpEqual:
		v := f.String
		s.serviceEq = &v
		// Zone pruning only skips chunks that are *entirely* one service;
		// a chunk with mixed values still needs the row-wise check, so
		// the filter stays in the residual set as well.
		s.residual = append(s.residual, f)
	case s.table.MetricColIdx != nil && f.ColumnIdx == *s.table.MetricColIdx && f.Op == OpEqual:
		v := f.String
		s.metricEq = &v
		s.residual = append(s.residual, f)
	default:
		s.residual = append(s.residual, f)
	}
}

func (s *Scanner) tightenMin(v int64) {
	if s.tsMinUS == nil || v > *s.tsMinUS {
		s.tsMinUS = &v
	}
}

func (s *Scanner) tightenMax(v int64) {
	if s.tsMaxUS == nil || v < *s.tsMaxUS {
		s.tsMaxUS = &v
	}
}

// hasRowFilters reports whether any row-level work remains after chunk
// pruning: timestamp bounds need vectorized application, and residual
// filters need row-wise evaluation. When false, a chunk's rows can be
// emitted through the fast, zero-copy path.
func (s *Scanner) hasRowFilters() bool {
	return s.tsMinUS != nil || s.tsMaxUS != nil || len(s.residual) > 0
}

// chunkIntersects applies spec.md §4.5's four zone-map pruning rules.
func (s *Scanner) chunkIntersects(c *columnar.StoredChunk) bool {
	minUS, maxUS := c.TimestampRange()
	if s.tsMinUS != nil && maxUS < *s.tsMinUS {
		return false
	}
	if s.tsMaxUS != nil && minUS > *s.tsMaxUS {
		return false
	}
	if s.serviceEq != nil {
		if has, mixed, value := c.ServiceZone(); has && !mixed && value != *s.serviceEq {
			return false
		}
	}
	if s.metricEq != nil {
		if has, mixed, value := c.MetricZone(); has && !mixed && value != *s.metricEq {
			return false
		}
	}
	return true
}

// fetchNextChunk hands out the next unpruned chunk index, incrementing
// the pruned-chunks counter for every chunk it skips along the way. It is
// safe to call concurrently from any number of worker goroutines.
func (s *Scanner) fetchNextChunk() (int, bool) {
	for {
		idx := int(s.nextChunk.Add(1) - 1)
		if idx >= len(s.snapshot) {
			return 0, false
		}
		if !s.chunkIntersects(s.snapshot[idx]) {
			s.metrics.chunksPruned.Inc()
			continue
		}
		s.metrics.chunksScanned.Inc()
		return idx, true
	}
}

// buildSelection runs spec.md §4.5's filtered path steps 1-3 over one
// chunk: seed every row, narrow by the vectorized timestamp bounds, then
// evaluate any residual filters row-wise on what remains.
func (s *Scanner) buildSelection(c *columnar.StoredChunk) []int {
	sel := make([]int, c.Size())
	for i := range sel {
		sel[i] = i
	}

	if s.tsMinUS != nil {
		sel = filterSelection(sel, func(r int) bool {
			return tsColumnUS(c, r) >= *s.tsMinUS
		})
	}
	if s.tsMaxUS != nil {
		sel = filterSelection(sel, func(r int) bool {
			return tsColumnUS(c, r) <= *s.tsMaxUS
		})
	}
	for _, f := range s.residual {
		colType := s.table.Columns[f.ColumnIdx].Type
		sel = filterSelection(sel, func(r int) bool {
			return evalResidual(c, colType, f, r)
		})
	}
	return sel
}

// tsColumnUS converts the raw nanosecond timestamp stored in column 0 to
// microseconds, the unit the zone map's TimestampRange (and therefore
// tsMinUS/tsMaxUS) is expressed in. Must use the same rounding as the
// Appender's zone-map update (columnar.NanosToMicrosHalfUp) so a row-level
// residual filter never disagrees with the chunk-level zone map it was
// computed from.
func tsColumnUS(c *columnar.StoredChunk, row int) int64 {
	return columnar.NanosToMicrosHalfUp(c.TimestampNS(timestampColumnIdx, row))
}

func filterSelection(sel []int, keep func(int) bool) []int {
	out := sel[:0]
	for _, r := range sel {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// emitChunk slices chunk idx into VectorSize-sized Batches and sends each
// on out, taking the fast zero-copy path when no row-level filtering
// remains and the selection-vector path otherwise (spec.md §4.5's two row
// emission paths).
func (s *Scanner) emitChunk(ctx context.Context, idx int, out chan<- Batch) error {
	c := s.snapshot[idx]

	if !s.hasRowFilters() {
		for start := 0; start < c.Size(); start += VectorSize {
			end := start + VectorSize
			if end > c.Size() {
				end = c.Size()
			}
			b := Batch{chunk: c, outToBase: s.outToBase, start: start, end: end}
			select {
			case out <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	}

	sel := s.buildSelection(c)
	for start := 0; start < len(sel); start += VectorSize {
		end := start + VectorSize
		if end > len(sel) {
			end = len(sel)
		}
		b := Batch{chunk: c, outToBase: s.outToBase, sel: sel[start:end]}
		select {
		case out <- b:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Result is a running scan: Out streams Batches in chunk-parallel,
// unspecified cross-chunk order (per-chunk order is preserved); Out
// closes once every chunk has been pruned or scanned — the idiomatic Go
// stand-in for the original extension's terminal zero-row batch. Err
// blocks until Out is closed and returns the first worker error, if any
// (only possible via ctx cancellation, since the scan itself cannot fail
// per spec.md §4.5's error semantics).
type Result struct {
	Out  <-chan Batch
	done chan struct{}
	err  error
}

// Err blocks until the scan has finished and returns its error, if any.
func (r *Result) Err() error {
	<-r.done
	return r.err
}

// Run starts the chunk-parallel scan with the given worker count (clamped
// to at least 1 and at most the snapshot's chunk count), returning
// immediately with a Result whose Out channel streams Batches as workers
// produce them.
func (s *Scanner) Run(ctx context.Context, workers int) *Result {
	workers = s.clampWorkers(workers)

	out := make(chan Batch)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				idx, ok := s.fetchNextChunk()
				if !ok {
					return nil
				}
				if err := s.emitChunk(gctx, idx, out); err != nil {
					return err
				}
			}
		})
	}

	res := &Result{Out: out, done: make(chan struct{})}
	go func() {
		res.err = g.Wait()
		close(out)
		close(res.done)
	}()
	return res
}

func (s *Scanner) clampWorkers(workers int) int {
	if workers < 1 {
		workers = 1
	}
	if n := len(s.snapshot); n > 0 && workers > n {
		workers = n
	}
	return workers
}

// Collect runs the scan to completion on workers goroutines and returns
// every batch it produced, for callers (tests, the union view) that want
// a materialized result rather than a streaming one.
func Collect(ctx context.Context, s *Scanner, workers int) ([]Batch, error) {
	res := s.Run(ctx, workers)
	var batches []Batch
	for b := range res.Out {
		batches = append(batches, b)
	}
	return batches, res.Err()
}
