package otlpconvert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"otlpsink/pkg/errors"
)

func strAttr(key, val string) *commonpb.KeyValue {
	return &commonpb.KeyValue{
		Key:   key,
		Value: &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: val}},
	}
}

func jsonStrAttr(key, val string) jsonKeyValue {
	v := val
	return jsonKeyValue{Key: key, Value: jsonAnyValue{StringValue: &v}}
}

func TestDecodeTraceProtoProducesOneRowPerSpan(t *testing.T) {
	resourceSpans := []*tracepb.ResourceSpans{
		{
			Resource: &resourcepb.Resource{Attributes: []*commonpb.KeyValue{strAttr("service.name", "checkout")}},
			ScopeSpans: []*tracepb.ScopeSpans{
				{
					Scope: &commonpb.InstrumentationScope{Name: "tracer", Version: "1.0"},
					Spans: []*tracepb.Span{
						{
							TraceId:           []byte{0x01, 0x02},
							SpanId:            []byte{0x03, 0x04},
							Name:              "GET /cart",
							Kind:              tracepb.Span_SPAN_KIND_SERVER,
							StartTimeUnixNano: 1000,
							EndTimeUnixNano:   2000,
							Status:            &tracepb.Status{Code: tracepb.Status_STATUS_CODE_OK},
							Attributes:        []*commonpb.KeyValue{strAttr("http.method", "GET")},
						},
					},
				},
			},
		},
	}

	rows, err := DecodeTraceProto(resourceSpans)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "checkout", row.ServiceName)
	assert.Equal(t, "0102", row.TraceID)
	assert.Equal(t, "0304", row.SpanID)
	assert.Nil(t, row.ParentSpanID)
	assert.Equal(t, "SERVER", row.SpanKind)
	assert.Equal(t, int64(1000), row.DurationNS)
	assert.Equal(t, "OK", row.StatusCode)
	assert.Equal(t, "GET", row.Attributes["http.method"])
}

func TestDecodeTraceProtoRejectsMissingIDs(t *testing.T) {
	resourceSpans := []*tracepb.ResourceSpans{
		{
			ScopeSpans: []*tracepb.ScopeSpans{
				{Spans: []*tracepb.Span{{Name: "broken"}}},
			},
		},
	}

	_, err := DecodeTraceProto(resourceSpans)
	require.Error(t, err)
	assert.Equal(t, errors.Decode, errors.KindOf(err))
}

func TestDecodeLogsProtoDerivesSeverityTextFromNumber(t *testing.T) {
	resourceLogs := []*logspb.ResourceLogs{
		{
			Resource: &resourcepb.Resource{Attributes: []*commonpb.KeyValue{strAttr("service.name", "ingest")}},
			ScopeLogs: []*logspb.ScopeLogs{
				{
					LogRecords: []*logspb.LogRecord{
						{
							TimeUnixNano:   5000,
							SeverityNumber: logspb.SeverityNumber_SEVERITY_NUMBER_ERROR,
							Body:           &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: "boom"}},
						},
					},
				},
			},
		},
	}

	rows, err := DecodeLogsProto(resourceLogs)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ERROR", rows[0].SeverityText)
	assert.Equal(t, "boom", rows[0].Body)
	assert.Equal(t, "ingest", rows[0].ServiceName)
}

func TestDecodeMetricsProtoGaugeMissingValueIsDecodeError(t *testing.T) {
	resourceMetrics := []*metricspb.ResourceMetrics{
		{
			ScopeMetrics: []*metricspb.ScopeMetrics{
				{
					Metrics: []*metricspb.Metric{
						{
							Name: "queue.depth",
							Data: &metricspb.Metric_Gauge{
								Gauge: &metricspb.Gauge{
									DataPoints: []*metricspb.NumberDataPoint{{}},
								},
							},
						},
					},
				},
			},
		},
	}

	_, err := DecodeMetricsProto(resourceMetrics, nil)
	require.Error(t, err)
	assert.Equal(t, errors.Decode, errors.KindOf(err))
}

func TestDecodeMetricsProtoSumCarriesAggregationTemporality(t *testing.T) {
	resourceMetrics := []*metricspb.ResourceMetrics{
		{
			ScopeMetrics: []*metricspb.ScopeMetrics{
				{
					Metrics: []*metricspb.Metric{
						{
							Name: "requests.total",
							Data: &metricspb.Metric_Sum{
								Sum: &metricspb.Sum{
									AggregationTemporality: metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE,
									IsMonotonic:            true,
									DataPoints: []*metricspb.NumberDataPoint{
										{Value: &metricspb.NumberDataPoint_AsInt{AsInt: 42}},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	rows, err := DecodeMetricsProto(resourceMetrics, nil)
	require.NoError(t, err)
	require.Len(t, rows.Sums, 1)
	assert.Equal(t, float64(42), rows.Sums[0].Value)
	assert.Equal(t, int32(2), rows.Sums[0].AggregationTemporality)
	assert.True(t, rows.Sums[0].IsMonotonic)
}

func TestDecodeMetricsProtoHistogramSumNullabilityFollowsPresenceBit(t *testing.T) {
	zero := 0.0
	resourceMetrics := []*metricspb.ResourceMetrics{
		{
			ScopeMetrics: []*metricspb.ScopeMetrics{
				{
					Metrics: []*metricspb.Metric{
						{
							Name: "request.duration",
							Data: &metricspb.Metric_Histogram{
								Histogram: &metricspb.Histogram{
									DataPoints: []*metricspb.HistogramDataPoint{
										{Count: 5},
										{Count: 0, Sum: &zero},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	rows, err := DecodeMetricsProto(resourceMetrics, nil)
	require.NoError(t, err)
	require.Len(t, rows.Histograms, 2)
	assert.Nil(t, rows.Histograms[0].Sum, "count>0 with no has_sum bit must stay null")
	require.NotNil(t, rows.Histograms[1].Sum, "has_sum bit set with value 0 must surface as 0, not null")
	assert.Equal(t, 0.0, *rows.Histograms[1].Sum)
}

func TestDecodeTracesJSONMatchesProtoShape(t *testing.T) {
	resourceSpans := []jsonResourceSpans{
		{
			Resource: jsonResource{Attributes: []jsonKeyValue{jsonStrAttr("service.name", "checkout")}},
			ScopeSpans: []jsonScopeSpans{
				{
					Scope: jsonScope{Name: "tracer", Version: "1.0"},
					Spans: []jsonSpan{
						{
							TraceID:           "0102",
							SpanID:            "0304",
							Name:              "GET /cart",
							Kind:              float64(2),
							StartTimeUnixNano: "1000",
							EndTimeUnixNano:   "2000",
							Status:            &jsonStatus{Code: float64(1)},
							Attributes:        []jsonKeyValue{jsonStrAttr("http.method", "GET")},
						},
					},
				},
			},
		},
	}

	rows, err := DecodeTracesJSON(resourceSpans)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "checkout", row.ServiceName)
	assert.Equal(t, "0102", row.TraceID)
	assert.Equal(t, "0304", row.SpanID)
	assert.Equal(t, "SERVER", row.SpanKind)
	assert.Equal(t, int64(1000), row.DurationNS)
	assert.Equal(t, "OK", row.StatusCode)
	assert.Equal(t, "GET", row.Attributes["http.method"])
}

func TestDecodeTracesJSONRejectsMissingIDs(t *testing.T) {
	resourceSpans := []jsonResourceSpans{
		{ScopeSpans: []jsonScopeSpans{{Spans: []jsonSpan{{Name: "broken"}}}}},
	}

	_, err := DecodeTracesJSON(resourceSpans)
	require.Error(t, err)
	assert.Equal(t, errors.Decode, errors.KindOf(err))
}

func TestDecodeMetricsJSONGaugeMissingValueIsDecodeError(t *testing.T) {
	resourceMetrics := []jsonResourceMetrics{
		{
			ScopeMetrics: []jsonScopeMetrics{
				{
					Metrics: []jsonMetric{
						{
							Name:  "queue.depth",
							Gauge: &jsonGauge{DataPoints: []jsonNumberDataPoint{{}}},
						},
					},
				},
			},
		},
	}

	_, err := DecodeMetricsJSON(resourceMetrics, nil)
	require.Error(t, err)
	assert.Equal(t, errors.Decode, errors.KindOf(err))
}

func TestDecodeMetricsJSONAcceptsStringEncodedNumbers(t *testing.T) {
	resourceMetrics := []jsonResourceMetrics{
		{
			ScopeMetrics: []jsonScopeMetrics{
				{
					Metrics: []jsonMetric{
						{
							Name: "requests.total",
							Sum: &jsonSum{
								AggregationTemporality: float64(2),
								IsMonotonic:             true,
								DataPoints: []jsonNumberDataPoint{
									{AsInt: "42", TimeUnixNano: "1000"},
								},
							},
						},
					},
				},
			},
		},
	}

	rows, err := DecodeMetricsJSON(resourceMetrics, nil)
	require.NoError(t, err)
	require.Len(t, rows.Sums, 1)
	assert.Equal(t, float64(42), rows.Sums[0].Value)
	assert.Equal(t, int32(2), rows.Sums[0].AggregationTemporality)
	assert.True(t, rows.Sums[0].IsMonotonic)
}

func TestDecodeMetricsJSONMalformedNumericStringDefaultsToZero(t *testing.T) {
	resourceMetrics := []jsonResourceMetrics{
		{
			ScopeMetrics: []jsonScopeMetrics{
				{
					Metrics: []jsonMetric{
						{
							Name:  "queue.depth",
							Gauge: &jsonGauge{DataPoints: []jsonNumberDataPoint{{AsDouble: "not-a-number"}}},
						},
					},
				},
			},
		},
	}

	rows, err := DecodeMetricsJSON(resourceMetrics, nil)
	require.NoError(t, err)
	require.Len(t, rows.Gauges, 1)
	assert.Equal(t, float64(0), rows.Gauges[0].Value)
}

func TestProtoAndJSONTraceDecodersProduceEquivalentRows(t *testing.T) {
	protoSpans := []*tracepb.ResourceSpans{
		{
			Resource: &resourcepb.Resource{Attributes: []*commonpb.KeyValue{strAttr("service.name", "checkout")}},
			ScopeSpans: []*tracepb.ScopeSpans{
				{
					Spans: []*tracepb.Span{
						{
							TraceId:           []byte{0xAB, 0xCD},
							SpanId:            []byte{0xEF, 0x01},
							Name:              "POST /order",
							StartTimeUnixNano: 100,
							EndTimeUnixNano:   300,
						},
					},
				},
			},
		},
	}
	jsonSpans := []jsonResourceSpans{
		{
			Resource: jsonResource{Attributes: []jsonKeyValue{jsonStrAttr("service.name", "checkout")}},
			ScopeSpans: []jsonScopeSpans{
				{
					Spans: []jsonSpan{
						{
							TraceID:           "ABCD",
							SpanID:            "EF01",
							Name:              "POST /order",
							StartTimeUnixNano: float64(100),
							EndTimeUnixNano:   float64(300),
						},
					},
				},
			},
		},
	}

	protoRows, err := DecodeTraceProto(protoSpans)
	require.NoError(t, err)
	jsonRows, err := DecodeTracesJSON(jsonSpans)
	require.NoError(t, err)

	require.Len(t, protoRows, 1)
	require.Len(t, jsonRows, 1)
	assert.Equal(t, protoRows[0].TraceID, jsonRows[0].TraceID)
	assert.Equal(t, protoRows[0].SpanID, jsonRows[0].SpanID)
	assert.Equal(t, protoRows[0].ServiceName, jsonRows[0].ServiceName)
	assert.Equal(t, protoRows[0].SpanName, jsonRows[0].SpanName)
	assert.Equal(t, protoRows[0].DurationNS, jsonRows[0].DurationNS)
}
