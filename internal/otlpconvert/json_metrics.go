package otlpconvert

import (
	"github.com/sirupsen/logrus"

	"otlpsink/pkg/errors"
)

// DecodeMetricsJSON is the JSON-text counterpart to DecodeMetricsProto.
// Numeric fields accept either a JSON number or a decimal string per the
// OTLP JSON mapping; a malformed numeric string defaults to zero rather
// than erroring, but a gauge/sum data point with neither asDouble nor
// asInt present at all is still a decode error, matching the protobuf
// front end.
func DecodeMetricsJSON(resourceMetrics []jsonResourceMetrics, logger *logrus.Logger) (MetricRows, error) {
	var out MetricRows

	for _, rm := range resourceMetrics {
		resourceAttrs := jsonKeyValuesToMap(rm.Resource.Attributes)
		serviceName := extractServiceName(resourceAttrs)

		for _, sm := range rm.ScopeMetrics {
			scopeName := sm.Scope.Name
			scopeVersion := sm.Scope.Version

			for _, metric := range sm.Metrics {
				base := metricBase{
					ServiceName:        serviceName,
					MetricName:         metric.Name,
					MetricDescription:  metric.Description,
					MetricUnit:         metric.Unit,
					ResourceAttributes: resourceAttrs,
					ScopeName:          scopeName,
					ScopeVersion:       scopeVersion,
				}

				switch {
				case metric.Gauge != nil:
					rows, err := decodeJSONGauge(metric.Gauge, base)
					if err != nil {
						return MetricRows{}, err
					}
					out.Gauges = append(out.Gauges, rows...)
				case metric.Sum != nil:
					rows, err := decodeJSONSum(metric.Sum, base)
					if err != nil {
						return MetricRows{}, err
					}
					out.Sums = append(out.Sums, rows...)
				case metric.Histogram != nil:
					out.Histograms = append(out.Histograms, decodeJSONHistogram(metric.Histogram, base)...)
				case metric.ExponentialHistogram != nil:
					out.ExpHistograms = append(out.ExpHistograms, decodeJSONExpHistogram(metric.ExponentialHistogram, base)...)
				case metric.Summary != nil:
					out.Summaries = append(out.Summaries, decodeJSONSummary(metric.Summary, base)...)
				default:
					if logger != nil {
						logger.WithField("metric_name", metric.Name).Warn("unsupported metric data type, skipping")
					}
				}
			}
		}
	}

	return out, nil
}

func jsonNumberDataPointValue(dp jsonNumberDataPoint) (float64, error) {
	if dp.AsDouble != nil {
		return jsonAsFloat64(dp.AsDouble), nil
	}
	if dp.AsInt != nil {
		return float64(jsonAsInt64(dp.AsInt)), nil
	}
	return 0, errors.NewDecode("number data point has neither asDouble nor asInt", nil)
}

func decodeJSONGauge(gauge *jsonGauge, base metricBase) ([]GaugeRow, error) {
	rows := make([]GaugeRow, 0, len(gauge.DataPoints))
	for _, dp := range gauge.DataPoints {
		value, err := jsonNumberDataPointValue(dp)
		if err != nil {
			return nil, err
		}
		row := base
		row.TimestampNS = clampTimestampNS(jsonAsUint64(dp.TimeUnixNano))
		row.Attributes = jsonKeyValuesToMap(dp.Attributes)
		rows = append(rows, GaugeRow{metricBase: row, Value: value})
	}
	return rows, nil
}

func decodeJSONSum(sum *jsonSum, base metricBase) ([]SumRow, error) {
	rows := make([]SumRow, 0, len(sum.DataPoints))
	for _, dp := range sum.DataPoints {
		value, err := jsonNumberDataPointValue(dp)
		if err != nil {
			return nil, err
		}
		row := base
		row.TimestampNS = clampTimestampNS(jsonAsUint64(dp.TimeUnixNano))
		row.Attributes = jsonKeyValuesToMap(dp.Attributes)
		rows = append(rows, SumRow{
			metricBase:             row,
			Value:                  value,
			AggregationTemporality: jsonAsInt32(sum.AggregationTemporality),
			IsMonotonic:            sum.IsMonotonic,
		})
	}
	return rows, nil
}

func decodeJSONHistogram(histogram *jsonHistogram, base metricBase) []HistogramRow {
	rows := make([]HistogramRow, 0, len(histogram.DataPoints))
	for _, dp := range histogram.DataPoints {
		row := base
		row.TimestampNS = clampTimestampNS(jsonAsUint64(dp.TimeUnixNano))
		row.Attributes = jsonKeyValuesToMap(dp.Attributes)

		count := jsonAsUint64(dp.Count)

		rows = append(rows, HistogramRow{
			metricBase:     row,
			Count:          count,
			Sum:            jsonNullableNumber(dp.Sum),
			BucketCounts:   jsonAsUint64Slice(dp.BucketCounts),
			ExplicitBounds: jsonAsFloat64Slice(dp.ExplicitBounds),
			Min:            jsonNullableNumber(dp.Min),
			Max:            jsonNullableNumber(dp.Max),
		})
	}
	return rows
}

func decodeJSONExpHistogram(histogram *jsonExponentialHistogram, base metricBase) []ExpHistogramRow {
	rows := make([]ExpHistogramRow, 0, len(histogram.DataPoints))
	for _, dp := range histogram.DataPoints {
		row := base
		row.TimestampNS = clampTimestampNS(jsonAsUint64(dp.TimeUnixNano))
		row.Attributes = jsonKeyValuesToMap(dp.Attributes)

		var positiveOffset, negativeOffset int32
		var positiveCounts, negativeCounts []uint64
		if dp.Positive != nil {
			positiveOffset = jsonAsInt32(dp.Positive.Offset)
			positiveCounts = jsonAsUint64Slice(dp.Positive.BucketCounts)
		}
		if dp.Negative != nil {
			negativeOffset = jsonAsInt32(dp.Negative.Offset)
			negativeCounts = jsonAsUint64Slice(dp.Negative.BucketCounts)
		}

		count := jsonAsUint64(dp.Count)

		rows = append(rows, ExpHistogramRow{
			metricBase:           row,
			Count:                count,
			Sum:                  jsonNullableNumber(dp.Sum),
			Scale:                jsonAsInt32(dp.Scale),
			ZeroCount:            jsonAsUint64(dp.ZeroCount),
			PositiveOffset:       positiveOffset,
			PositiveBucketCounts: positiveCounts,
			NegativeOffset:       negativeOffset,
			NegativeBucketCounts: negativeCounts,
			Min:                  jsonNullableNumber(dp.Min),
			Max:                  jsonNullableNumber(dp.Max),
		})
	}
	return rows
}

func decodeJSONSummary(summary *jsonSummary, base metricBase) []SummaryRow {
	rows := make([]SummaryRow, 0, len(summary.DataPoints))
	for _, dp := range summary.DataPoints {
		row := base
		row.TimestampNS = clampTimestampNS(jsonAsUint64(dp.TimeUnixNano))
		row.Attributes = jsonKeyValuesToMap(dp.Attributes)

		quantileValues := make([]float64, 0, len(dp.QuantileValues))
		quantileQuantiles := make([]float64, 0, len(dp.QuantileValues))
		for _, qv := range dp.QuantileValues {
			quantileQuantiles = append(quantileQuantiles, jsonAsFloat64(qv.Quantile))
			quantileValues = append(quantileValues, jsonAsFloat64(qv.Value))
		}

		rows = append(rows, SummaryRow{
			metricBase:        row,
			Count:             jsonAsUint64(dp.Count),
			Sum:               jsonAsFloat64(dp.Sum),
			QuantileValues:    quantileValues,
			QuantileQuantiles: quantileQuantiles,
		})
	}
	return rows
}

// jsonNullableNumber treats an absent JSON field (nil interface) as the
// "not present" case the protobuf front end tracks via HasMin()/HasMax().
func jsonNullableNumber(v interface{}) *float64 {
	if v == nil {
		return nil
	}
	f := jsonAsFloat64(v)
	return &f
}
