package scan

import "github.com/prometheus/client_golang/prometheus"

// scanMetrics exposes the chunk-pruning counter spec.md §8 scenario 4
// requires be observable ("all chunks whose ts_max_us < bound OR ts_min_us
// >= bound are pruned, observed via an instrumentation counter"), labeled
// by table name like columnar's own bufferMetrics.
type scanMetrics struct {
	chunksPruned  prometheus.Counter
	chunksScanned prometheus.Counter
}

func newScanMetrics(registry prometheus.Registerer, tableName string) *scanMetrics {
	labels := prometheus.Labels{"table": tableName}
	m := &scanMetrics{
		chunksPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "otlpsink",
			Subsystem:   "scan",
			Name:        "chunks_pruned_total",
			Help:        "Chunks skipped by zone-map pruning before being scanned.",
			ConstLabels: labels,
		}),
		chunksScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "otlpsink",
			Subsystem:   "scan",
			Name:        "chunks_scanned_total",
			Help:        "Chunks read row data from during a scan.",
			ConstLabels: labels,
		}),
	}
	if registry != nil {
		registry.MustRegister(m.chunksPruned, m.chunksScanned)
	}
	return m
}
