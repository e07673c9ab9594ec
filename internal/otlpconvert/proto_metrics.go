package otlpconvert

import (
	"github.com/sirupsen/logrus"

	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"

	"otlpsink/pkg/errors"
)

// DecodeMetricsProto flattens an OTLP ExportMetricsServiceRequest into rows
// for each of the five metric table shapes, grounded on the teacher's
// otlp_metrics_converter.go. Unlike the teacher (which skips Summary as
// unsupported), summary is a first-class table here.
func DecodeMetricsProto(resourceMetrics []*metricspb.ResourceMetrics, logger *logrus.Logger) (MetricRows, error) {
	var out MetricRows

	for _, rm := range resourceMetrics {
		resourceAttrs := keyValuesToMap(rm.GetResource().GetAttributes())
		serviceName := extractServiceName(resourceAttrs)

		for _, sm := range rm.GetScopeMetrics() {
			scopeName := sm.GetScope().GetName()
			scopeVersion := sm.GetScope().GetVersion()

			for _, metric := range sm.GetMetrics() {
				base := metricBase{
					ServiceName:        serviceName,
					MetricName:         metric.GetName(),
					MetricDescription:  metric.GetDescription(),
					MetricUnit:         metric.GetUnit(),
					ResourceAttributes: resourceAttrs,
					ScopeName:          scopeName,
					ScopeVersion:       scopeVersion,
				}

				switch data := metric.GetData().(type) {
				case *metricspb.Metric_Gauge:
					rows, err := decodeGauge(data.Gauge, base)
					if err != nil {
						return MetricRows{}, err
					}
					out.Gauges = append(out.Gauges, rows...)
				case *metricspb.Metric_Sum:
					rows, err := decodeSum(data.Sum, base)
					if err != nil {
						return MetricRows{}, err
					}
					out.Sums = append(out.Sums, rows...)
				case *metricspb.Metric_Histogram:
					out.Histograms = append(out.Histograms, decodeHistogram(data.Histogram, base)...)
				case *metricspb.Metric_ExponentialHistogram:
					out.ExpHistograms = append(out.ExpHistograms, decodeExpHistogram(data.ExponentialHistogram, base)...)
				case *metricspb.Metric_Summary:
					out.Summaries = append(out.Summaries, decodeSummary(data.Summary, base)...)
				default:
					if logger != nil {
						logger.WithField("metric_name", metric.GetName()).Warn("unsupported metric data type, skipping")
					}
				}
			}
		}
	}

	return out, nil
}

func numberDataPointValue(dp *metricspb.NumberDataPoint) (float64, error) {
	switch v := dp.GetValue().(type) {
	case *metricspb.NumberDataPoint_AsDouble:
		return v.AsDouble, nil
	case *metricspb.NumberDataPoint_AsInt:
		return float64(v.AsInt), nil
	default:
		return 0, errors.NewDecode("number data point has neither as_double nor as_int", nil)
	}
}

// decodeGauge requires every data point to carry a numeric value: a gauge
// point with neither as_double nor as_int set is a decode error, not a
// silent zero (distinct from the JSON front end's malformed-numeric-string
// case, which does default to zero).
func decodeGauge(gauge *metricspb.Gauge, base metricBase) ([]GaugeRow, error) {
	rows := make([]GaugeRow, 0, len(gauge.GetDataPoints()))
	for _, dp := range gauge.GetDataPoints() {
		value, err := numberDataPointValue(dp)
		if err != nil {
			return nil, err
		}
		row := base
		row.TimestampNS = clampTimestampNS(dp.GetTimeUnixNano())
		row.Attributes = keyValuesToMap(dp.GetAttributes())
		rows = append(rows, GaugeRow{metricBase: row, Value: value})
	}
	return rows, nil
}

// decodeSum applies the same no-value-at-all decode error rule as decodeGauge.
func decodeSum(sum *metricspb.Sum, base metricBase) ([]SumRow, error) {
	rows := make([]SumRow, 0, len(sum.GetDataPoints()))
	for _, dp := range sum.GetDataPoints() {
		value, err := numberDataPointValue(dp)
		if err != nil {
			return nil, err
		}
		row := base
		row.TimestampNS = clampTimestampNS(dp.GetTimeUnixNano())
		row.Attributes = keyValuesToMap(dp.GetAttributes())
		rows = append(rows, SumRow{
			metricBase:             row,
			Value:                  value,
			AggregationTemporality: int32(sum.GetAggregationTemporality()),
			IsMonotonic:            sum.GetIsMonotonic(),
		})
	}
	return rows, nil
}

func decodeHistogram(histogram *metricspb.Histogram, base metricBase) []HistogramRow {
	rows := make([]HistogramRow, 0, len(histogram.GetDataPoints()))
	for _, dp := range histogram.GetDataPoints() {
		row := base
		row.TimestampNS = clampTimestampNS(dp.GetTimeUnixNano())
		row.Attributes = keyValuesToMap(dp.GetAttributes())

		bucketCounts := append([]uint64(nil), dp.GetBucketCounts()...)
		explicitBounds := append([]float64(nil), dp.GetExplicitBounds()...)

		rows = append(rows, HistogramRow{
			metricBase:     row,
			Count:          dp.GetCount(),
			Sum:            nullableNonZero(dp.HasSum(), dp.GetSum()),
			BucketCounts:   bucketCounts,
			ExplicitBounds: explicitBounds,
			Min:            nullableNonZero(dp.HasMin(), dp.GetMin()),
			Max:            nullableNonZero(dp.HasMax(), dp.GetMax()),
		})
	}
	return rows
}

func decodeExpHistogram(histogram *metricspb.ExponentialHistogram, base metricBase) []ExpHistogramRow {
	rows := make([]ExpHistogramRow, 0, len(histogram.GetDataPoints()))
	for _, dp := range histogram.GetDataPoints() {
		row := base
		row.TimestampNS = clampTimestampNS(dp.GetTimeUnixNano())
		row.Attributes = keyValuesToMap(dp.GetAttributes())

		var positiveOffset, negativeOffset int32
		var positiveCounts, negativeCounts []uint64
		if p := dp.GetPositive(); p != nil {
			positiveOffset = p.GetOffset()
			positiveCounts = append([]uint64(nil), p.GetBucketCounts()...)
		}
		if n := dp.GetNegative(); n != nil {
			negativeOffset = n.GetOffset()
			negativeCounts = append([]uint64(nil), n.GetBucketCounts()...)
		}

		rows = append(rows, ExpHistogramRow{
			metricBase:           row,
			Count:                dp.GetCount(),
			Sum:                  nullableNonZero(dp.HasSum(), dp.GetSum()),
			Scale:                dp.GetScale(),
			ZeroCount:            dp.GetZeroCount(),
			PositiveOffset:       positiveOffset,
			PositiveBucketCounts: positiveCounts,
			NegativeOffset:       negativeOffset,
			NegativeBucketCounts: negativeCounts,
			Min:                  nullableNonZero(dp.HasMin(), dp.GetMin()),
			Max:                  nullableNonZero(dp.HasMax(), dp.GetMax()),
		})
	}
	return rows
}

func decodeSummary(summary *metricspb.Summary, base metricBase) []SummaryRow {
	rows := make([]SummaryRow, 0, len(summary.GetDataPoints()))
	for _, dp := range summary.GetDataPoints() {
		row := base
		row.TimestampNS = clampTimestampNS(dp.GetTimeUnixNano())
		row.Attributes = keyValuesToMap(dp.GetAttributes())

		quantileValues := make([]float64, 0, len(dp.GetQuantileValues()))
		quantileQuantiles := make([]float64, 0, len(dp.GetQuantileValues()))
		for _, qv := range dp.GetQuantileValues() {
			quantileQuantiles = append(quantileQuantiles, qv.GetQuantile())
			quantileValues = append(quantileValues, qv.GetValue())
		}

		rows = append(rows, SummaryRow{
			metricBase:        row,
			Count:             dp.GetCount(),
			Sum:               dp.GetSum(),
			QuantileValues:    quantileValues,
			QuantileQuantiles: quantileQuantiles,
		})
	}
	return rows
}

// nullableNonZero carries a data point's optional Sum/Min/Max through as a
// pointer when the protobuf oneof presence bit is set, per spec.md §4.3
// ("Numeric fields with presence (has_sum, has_min, has_max): missing →
// null") and original_source/src/otlp_receiver.cpp's has_sum()/HasMin()/
// HasMax() checks.
func nullableNonZero(has bool, v float64) *float64 {
	if !has {
		return nil
	}
	val := v
	return &val
}
