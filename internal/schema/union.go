package schema

// TableMetricsUnion is the optional 27-column view over all five metric
// tables: the 9 shared base columns, a MetricType discriminator, and the
// 17 deduplicated metric-specific columns (spec.md §6). A row from any one
// metric table carries nulls in every column its own table doesn't define.
const TableMetricsUnion = "otlp_metrics_union"

// Union column indices, continuing after the 9 base columns and the
// MetricType discriminator.
const (
	UnionColMetricType = metricsBaseColumnCount + iota
	UnionColValue
	UnionColAggregationTemporality
	UnionColIsMonotonic
	UnionColCount
	UnionColSum
	UnionColBucketCounts
	UnionColExplicitBounds
	UnionColMin
	UnionColMax
	UnionColScale
	UnionColZeroCount
	UnionColPositiveOffset
	UnionColPositiveBucketCounts
	UnionColNegativeOffset
	UnionColNegativeBucketCounts
	UnionColQuantileValues
	UnionColQuantileQuantiles
)

// MetricType discriminator values for otlp_metrics_union.
const (
	MetricTypeGauge             = "gauge"
	MetricTypeSum                = "sum"
	MetricTypeHistogram          = "histogram"
	MetricTypeExponentialHistogram = "exponential_histogram"
	MetricTypeSummary            = "summary"
)

// MetricsUnion returns the otlp_metrics_union table descriptor: the 9 base
// metric columns, a MetricType discriminator, and the 17 columns
// deduplicated across gauge/sum/histogram/exponential-histogram/summary.
func MetricsUnion() *Table {
	cols := append(baseMetricColumns(),
		Column{Name: "MetricType", Type: Varchar},
		Column{Name: "Value", Type: Float64},
		Column{Name: "AggregationTemporality", Type: Int32},
		Column{Name: "IsMonotonic", Type: Bool},
		Column{Name: "Count", Type: UInt64},
		Column{Name: "Sum", Type: Float64},
		Column{Name: "BucketCounts", Type: ListUInt64},
		Column{Name: "ExplicitBounds", Type: ListFloat64},
		Column{Name: "Min", Type: Float64},
		Column{Name: "Max", Type: Float64},
		Column{Name: "Scale", Type: Int32},
		Column{Name: "ZeroCount", Type: UInt64},
		Column{Name: "PositiveOffset", Type: Int32},
		Column{Name: "PositiveBucketCounts", Type: ListUInt64},
		Column{Name: "NegativeOffset", Type: Int32},
		Column{Name: "NegativeBucketCounts", Type: ListUInt64},
		Column{Name: "QuantileValues", Type: ListFloat64},
		Column{Name: "QuantileQuantiles", Type: ListFloat64},
	)
	return &Table{
		Name:          TableMetricsUnion,
		Columns:       cols,
		ServiceColIdx: intPtr(MetricsColServiceName),
		MetricColIdx:  intPtr(MetricsColMetricName),
	}
}

// SourceMetricType maps a metric table name to its MetricType discriminator
// value in otlp_metrics_union.
func SourceMetricType(tableName string) (string, bool) {
	switch tableName {
	case TableMetricsGauge:
		return MetricTypeGauge, true
	case TableMetricsSum:
		return MetricTypeSum, true
	case TableMetricsHistogram:
		return MetricTypeHistogram, true
	case TableMetricsExpHistogram:
		return MetricTypeExponentialHistogram, true
	case TableMetricsSummary:
		return MetricTypeSummary, true
	default:
		return "", false
	}
}
