package schema

// Table names, exactly as spec.md §6 "Table surface" names them.
const (
	TableTraces             = "otel_traces"
	TableLogs                = "otel_logs"
	TableMetricsGauge        = "otel_metrics_gauge"
	TableMetricsSum          = "otel_metrics_sum"
	TableMetricsHistogram    = "otel_metrics_histogram"
	TableMetricsExpHistogram = "otel_metrics_exp_histogram"
	TableMetricsSummary      = "otel_metrics_summary"
)

// Column indices for otel_traces. Mirrors the original extension's
// OTLPTracesSchema::COL_* constants (original_source/src/receiver/otlp_helpers.hpp
// callers), translated to Go iota constants consumed by the row builder.
const (
	TracesColTimestamp = iota
	TracesColServiceName
	TracesColTraceID
	TracesColSpanID
	TracesColParentSpanID
	TracesColTraceState
	TracesColSpanName
	TracesColSpanKind
	TracesColDuration
	TracesColStatusCode
	TracesColStatusMessage
	TracesColEventsTimestamp
	TracesColEventsName
	TracesColEventsAttributes
	TracesColLinksTraceID
	TracesColLinksSpanID
	TracesColLinksTraceState
	TracesColLinksAttributes
	TracesColResourceAttributes
	TracesColScopeName
	TracesColScopeVersion
	TracesColAttributes
)

// Column indices for otel_logs.
const (
	LogsColTimestamp = iota
	LogsColServiceName
	LogsColTraceID
	LogsColSpanID
	LogsColTraceFlags
	LogsColSeverityText
	LogsColSeverityNumber
	LogsColBody
	LogsColResourceSchemaURL
	LogsColScopeSchemaURL
	LogsColResourceAttributes
	LogsColScopeName
	LogsColScopeVersion
	LogsColAttributes
)

// The 9 base columns shared by every metric table (spec.md §6's "9 base
// metric columns" referenced by the otlp_metrics_union description).
const (
	MetricsColTimestamp = iota
	MetricsColServiceName
	MetricsColMetricName
	MetricsColMetricDescription
	MetricsColMetricUnit
	MetricsColResourceAttributes
	MetricsColScopeName
	MetricsColScopeVersion
	MetricsColAttributes
	metricsBaseColumnCount
)

// Gauge-specific columns, continuing after the base columns.
const (
	GaugeColValue = metricsBaseColumnCount + iota
)

// Sum-specific columns.
const (
	SumColValue = metricsBaseColumnCount + iota
	SumColAggregationTemporality
	SumColIsMonotonic
)

// Histogram-specific columns.
const (
	HistogramColCount = metricsBaseColumnCount + iota
	HistogramColSum
	HistogramColBucketCounts
	HistogramColExplicitBounds
	HistogramColMin
	HistogramColMax
)

// Exponential-histogram-specific columns.
const (
	ExpHistogramColCount = metricsBaseColumnCount + iota
	ExpHistogramColSum
	ExpHistogramColScale
	ExpHistogramColZeroCount
	ExpHistogramColPositiveOffset
	ExpHistogramColPositiveBucketCounts
	ExpHistogramColNegativeOffset
	ExpHistogramColNegativeBucketCounts
	ExpHistogramColMin
	ExpHistogramColMax
)

// Summary-specific columns.
const (
	SummaryColCount = metricsBaseColumnCount + iota
	SummaryColSum
	SummaryColQuantileValues
	SummaryColQuantileQuantiles
)

func baseMetricColumns() []Column {
	return []Column{
		{Name: "Timestamp", Type: TimestampNS},
		{Name: "ServiceName", Type: Varchar},
		{Name: "MetricName", Type: Varchar},
		{Name: "MetricDescription", Type: Varchar},
		{Name: "MetricUnit", Type: Varchar},
		{Name: "ResourceAttributes", Type: MapStringString},
		{Name: "ScopeName", Type: Varchar},
		{Name: "ScopeVersion", Type: Varchar},
		{Name: "Attributes", Type: MapStringString},
	}
}

// Traces returns the otel_traces table descriptor.
func Traces() *Table {
	return &Table{
		Name: TableTraces,
		Columns: []Column{
			{Name: "Timestamp", Type: TimestampNS},
			{Name: "ServiceName", Type: Varchar},
			{Name: "TraceId", Type: Varchar},
			{Name: "SpanId", Type: Varchar},
			{Name: "ParentSpanId", Type: Varchar},
			{Name: "TraceState", Type: Varchar},
			{Name: "SpanName", Type: Varchar},
			{Name: "SpanKind", Type: Varchar},
			{Name: "Duration", Type: Int64},
			{Name: "StatusCode", Type: Varchar},
			{Name: "StatusMessage", Type: Varchar},
			{Name: "EventsTimestamp", Type: ListTimestampNS},
			{Name: "EventsName", Type: ListVarchar},
			{Name: "EventsAttributes", Type: ListMapStringString},
			{Name: "LinksTraceId", Type: ListVarchar},
			{Name: "LinksSpanId", Type: ListVarchar},
			{Name: "LinksTraceState", Type: ListVarchar},
			{Name: "LinksAttributes", Type: ListMapStringString},
			{Name: "ResourceAttributes", Type: MapStringString},
			{Name: "ScopeName", Type: Varchar},
			{Name: "ScopeVersion", Type: Varchar},
			{Name: "Attributes", Type: MapStringString},
		},
		ServiceColIdx: intPtr(TracesColServiceName),
		MetricColIdx:  nil,
	}
}

// Logs returns the otel_logs table descriptor.
func Logs() *Table {
	return &Table{
		Name: TableLogs,
		Columns: []Column{
			{Name: "Timestamp", Type: TimestampNS},
			{Name: "ServiceName", Type: Varchar},
			{Name: "TraceId", Type: Varchar},
			{Name: "SpanId", Type: Varchar},
			{Name: "TraceFlags", Type: UInt32},
			{Name: "SeverityText", Type: Varchar},
			{Name: "SeverityNumber", Type: Int32},
			{Name: "Body", Type: Varchar},
			{Name: "ResourceSchemaUrl", Type: Varchar},
			{Name: "ScopeSchemaUrl", Type: Varchar},
			{Name: "ResourceAttributes", Type: MapStringString},
			{Name: "ScopeName", Type: Varchar},
			{Name: "ScopeVersion", Type: Varchar},
			{Name: "Attributes", Type: MapStringString},
		},
		ServiceColIdx: intPtr(LogsColServiceName),
		MetricColIdx:  nil,
	}
}

// MetricsGauge returns the otel_metrics_gauge table descriptor.
func MetricsGauge() *Table {
	cols := append(baseMetricColumns(), Column{Name: "Value", Type: Float64})
	return &Table{
		Name:          TableMetricsGauge,
		Columns:       cols,
		ServiceColIdx: intPtr(MetricsColServiceName),
		MetricColIdx:  intPtr(MetricsColMetricName),
	}
}

// MetricsSum returns the otel_metrics_sum table descriptor.
func MetricsSum() *Table {
	cols := append(baseMetricColumns(),
		Column{Name: "Value", Type: Float64},
		Column{Name: "AggregationTemporality", Type: Int32},
		Column{Name: "IsMonotonic", Type: Bool},
	)
	return &Table{
		Name:          TableMetricsSum,
		Columns:       cols,
		ServiceColIdx: intPtr(MetricsColServiceName),
		MetricColIdx:  intPtr(MetricsColMetricName),
	}
}

// MetricsHistogram returns the otel_metrics_histogram table descriptor.
func MetricsHistogram() *Table {
	cols := append(baseMetricColumns(),
		Column{Name: "Count", Type: UInt64},
		Column{Name: "Sum", Type: Float64},
		Column{Name: "BucketCounts", Type: ListUInt64},
		Column{Name: "ExplicitBounds", Type: ListFloat64},
		Column{Name: "Min", Type: Float64},
		Column{Name: "Max", Type: Float64},
	)
	return &Table{
		Name:          TableMetricsHistogram,
		Columns:       cols,
		ServiceColIdx: intPtr(MetricsColServiceName),
		MetricColIdx:  intPtr(MetricsColMetricName),
	}
}

// MetricsExpHistogram returns the otel_metrics_exp_histogram table descriptor.
func MetricsExpHistogram() *Table {
	cols := append(baseMetricColumns(),
		Column{Name: "Count", Type: UInt64},
		Column{Name: "Sum", Type: Float64},
		Column{Name: "Scale", Type: Int32},
		Column{Name: "ZeroCount", Type: UInt64},
		Column{Name: "PositiveOffset", Type: Int32},
		Column{Name: "PositiveBucketCounts", Type: ListUInt64},
		Column{Name: "NegativeOffset", Type: Int32},
		Column{Name: "NegativeBucketCounts", Type: ListUInt64},
		Column{Name: "Min", Type: Float64},
		Column{Name: "Max", Type: Float64},
	)
	return &Table{
		Name:          TableMetricsExpHistogram,
		Columns:       cols,
		ServiceColIdx: intPtr(MetricsColServiceName),
		MetricColIdx:  intPtr(MetricsColMetricName),
	}
}

// MetricsSummary returns the otel_metrics_summary table descriptor.
func MetricsSummary() *Table {
	cols := append(baseMetricColumns(),
		Column{Name: "Count", Type: UInt64},
		Column{Name: "Sum", Type: Float64},
		Column{Name: "QuantileValues", Type: ListFloat64},
		Column{Name: "QuantileQuantiles", Type: ListFloat64},
	)
	return &Table{
		Name:          TableMetricsSummary,
		Columns:       cols,
		ServiceColIdx: intPtr(MetricsColServiceName),
		MetricColIdx:  intPtr(MetricsColMetricName),
	}
}
