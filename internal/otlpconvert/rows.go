package otlpconvert

// TraceEvent and TraceLink hold one row's worth of span events/links,
// written as the trace table's parallel list columns (SPEC_FULL.md
// Supplemented Features: fully populated rather than left empty).
type TraceEvent struct {
	TimestampNS int64
	Name        string
	Attributes  map[string]string
}

type TraceLink struct {
	TraceID    string
	SpanID     string
	TraceState string
	Attributes map[string]string
}

// TraceRow is the decoded, flattened form of one OTLP span.
type TraceRow struct {
	TimestampNS   int64
	ServiceName   string
	TraceID       string
	SpanID        string
	ParentSpanID  *string
	TraceState    string
	SpanName      string
	SpanKind      string
	DurationNS    int64
	StatusCode    string
	StatusMessage string
	Events        []TraceEvent
	Links         []TraceLink

	ResourceAttributes map[string]string
	ScopeName          string
	ScopeVersion       string
	Attributes         map[string]string
}

// LogRow is the decoded, flattened form of one OTLP log record.
type LogRow struct {
	TimestampNS       int64
	ServiceName       string
	TraceID           string
	SpanID            string
	TraceFlags        uint32
	SeverityText      string
	SeverityNumber    int32
	Body              string
	ResourceSchemaURL string
	ScopeSchemaURL    string

	ResourceAttributes map[string]string
	ScopeName          string
	ScopeVersion       string
	Attributes         map[string]string
}

// metricBase holds the 9 fields every metric row shares.
type metricBase struct {
	TimestampNS       int64
	ServiceName       string
	MetricName        string
	MetricDescription string
	MetricUnit        string

	ResourceAttributes map[string]string
	ScopeName          string
	ScopeVersion       string
	Attributes         map[string]string
}

// GaugeRow is one decoded gauge data point.
type GaugeRow struct {
	metricBase
	Value float64
}

// SumRow is one decoded sum data point.
type SumRow struct {
	metricBase
	Value                  float64
	AggregationTemporality int32
	IsMonotonic            bool
}

// HistogramRow is one decoded histogram data point.
type HistogramRow struct {
	metricBase
	Count          uint64
	Sum            *float64
	BucketCounts   []uint64
	ExplicitBounds []float64
	Min            *float64
	Max            *float64
}

// ExpHistogramRow is one decoded exponential-histogram data point.
type ExpHistogramRow struct {
	metricBase
	Count                uint64
	Sum                  *float64
	Scale                int32
	ZeroCount            uint64
	PositiveOffset       int32
	PositiveBucketCounts []uint64
	NegativeOffset       int32
	NegativeBucketCounts []uint64
	Min                  *float64
	Max                  *float64
}

// SummaryRow is one decoded summary data point.
type SummaryRow struct {
	metricBase
	Count             uint64
	Sum               float64
	QuantileValues    []float64
	QuantileQuantiles []float64
}

// MetricRows partitions a decoded ExportMetricsServiceRequest by the five
// metric table shapes it can fan out to.
type MetricRows struct {
	Gauges      []GaugeRow
	Sums        []SumRow
	Histograms  []HistogramRow
	ExpHistograms []ExpHistogramRow
	Summaries   []SummaryRow
}
