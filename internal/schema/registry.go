package schema

// registry is the process-wide, immutable set of table descriptors. It is
// built once at package init and never mutated afterward.
var registry = map[string]*Table{
	TableTraces:              Traces(),
	TableLogs:                Logs(),
	TableMetricsGauge:        MetricsGauge(),
	TableMetricsSum:          MetricsSum(),
	TableMetricsHistogram:    MetricsHistogram(),
	TableMetricsExpHistogram: MetricsExpHistogram(),
	TableMetricsSummary:      MetricsSummary(),
}

// tableOrder fixes the iteration order of All, matching the order the
// seven tables are introduced in spec.md §3.
var tableOrder = []string{
	TableTraces,
	TableLogs,
	TableMetricsGauge,
	TableMetricsSum,
	TableMetricsHistogram,
	TableMetricsExpHistogram,
	TableMetricsSummary,
}

// Get looks up a table descriptor by name.
func Get(name string) (*Table, bool) {
	t, ok := registry[name]
	return t, ok
}

// All returns every table descriptor in a fixed, stable order.
func All() []*Table {
	tables := make([]*Table, len(tableOrder))
	for i, name := range tableOrder {
		tables[i] = registry[name]
	}
	return tables
}

// IsMetricTable reports whether name is one of the five metric tables
// unioned by otlp_metrics_union.
func IsMetricTable(name string) bool {
	switch name {
	case TableMetricsGauge, TableMetricsSum, TableMetricsHistogram,
		TableMetricsExpHistogram, TableMetricsSummary:
		return true
	default:
		return false
	}
}
