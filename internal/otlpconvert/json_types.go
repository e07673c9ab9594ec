package otlpconvert

// JSON wire types mirror the OTLP protobuf-JSON mapping (camelCase field
// names, 64-bit integers optionally wire-encoded as decimal strings),
// extending the teacher's otlp_types.go pattern (traces only) to also
// cover logs and all five metric data shapes.

type jsonAnyValue struct {
	StringValue *string           `json:"stringValue,omitempty"`
	BoolValue   *bool             `json:"boolValue,omitempty"`
	IntValue    interface{}       `json:"intValue,omitempty"`
	DoubleValue *float64          `json:"doubleValue,omitempty"`
	BytesValue  *string           `json:"bytesValue,omitempty"`
	ArrayValue  *jsonArrayValue   `json:"arrayValue,omitempty"`
	KvlistValue *jsonKeyValueList `json:"kvlistValue,omitempty"`
}

type jsonArrayValue struct {
	Values []jsonAnyValue `json:"values"`
}

type jsonKeyValue struct {
	Key   string       `json:"key"`
	Value jsonAnyValue `json:"value"`
}

type jsonKeyValueList struct {
	Values []jsonKeyValue `json:"values"`
}

type jsonResource struct {
	Attributes []jsonKeyValue `json:"attributes"`
}

type jsonScope struct {
	Name       string         `json:"name"`
	Version    string         `json:"version"`
	Attributes []jsonKeyValue `json:"attributes"`
}

// --- traces ---

type jsonTracesRequest struct {
	ResourceSpans []jsonResourceSpans `json:"resourceSpans"`
}

type jsonResourceSpans struct {
	Resource   jsonResource     `json:"resource"`
	ScopeSpans []jsonScopeSpans `json:"scopeSpans"`
}

type jsonScopeSpans struct {
	Scope jsonScope  `json:"scope"`
	Spans []jsonSpan `json:"spans"`
}

type jsonSpan struct {
	TraceID           interface{}     `json:"traceId"`
	SpanID            interface{}     `json:"spanId"`
	ParentSpanID      interface{}     `json:"parentSpanId"`
	TraceState        string          `json:"traceState"`
	Name              string          `json:"name"`
	Kind              interface{}     `json:"kind"`
	StartTimeUnixNano interface{}     `json:"startTimeUnixNano"`
	EndTimeUnixNano   interface{}     `json:"endTimeUnixNano"`
	Attributes        []jsonKeyValue  `json:"attributes"`
	Status            *jsonStatus     `json:"status"`
	Events            []jsonSpanEvent `json:"events"`
	Links             []jsonSpanLink  `json:"links"`
}

type jsonStatus struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message"`
}

type jsonSpanEvent struct {
	TimeUnixNano interface{}    `json:"timeUnixNano"`
	Name         string         `json:"name"`
	Attributes   []jsonKeyValue `json:"attributes"`
}

type jsonSpanLink struct {
	TraceID    interface{}    `json:"traceId"`
	SpanID     interface{}    `json:"spanId"`
	TraceState string         `json:"traceState"`
	Attributes []jsonKeyValue `json:"attributes"`
}

// --- logs ---

type jsonLogsRequest struct {
	ResourceLogs []jsonResourceLogs `json:"resourceLogs"`
}

type jsonResourceLogs struct {
	Resource  jsonResource    `json:"resource"`
	ScopeLogs []jsonScopeLogs `json:"scopeLogs"`
	SchemaUrl string          `json:"schemaUrl"`
}

type jsonScopeLogs struct {
	Scope      jsonScope        `json:"scope"`
	LogRecords []jsonLogRecord  `json:"logRecords"`
	SchemaUrl  string           `json:"schemaUrl"`
}

type jsonLogRecord struct {
	TimeUnixNano   interface{}    `json:"timeUnixNano"`
	TraceID        interface{}    `json:"traceId"`
	SpanID         interface{}    `json:"spanId"`
	Flags          interface{}    `json:"flags"`
	SeverityText   string         `json:"severityText"`
	SeverityNumber interface{}    `json:"severityNumber"`
	Body           jsonAnyValue   `json:"body"`
	Attributes     []jsonKeyValue `json:"attributes"`
}

// --- metrics ---

type jsonMetricsRequest struct {
	ResourceMetrics []jsonResourceMetrics `json:"resourceMetrics"`
}

type jsonResourceMetrics struct {
	Resource     jsonResource       `json:"resource"`
	ScopeMetrics []jsonScopeMetrics `json:"scopeMetrics"`
}

type jsonScopeMetrics struct {
	Scope   jsonScope    `json:"scope"`
	Metrics []jsonMetric `json:"metrics"`
}

type jsonMetric struct {
	Name                 string                    `json:"name"`
	Description          string                    `json:"description"`
	Unit                 string                    `json:"unit"`
	Gauge                *jsonGauge                `json:"gauge"`
	Sum                  *jsonSum                  `json:"sum"`
	Histogram            *jsonHistogram            `json:"histogram"`
	ExponentialHistogram *jsonExponentialHistogram `json:"exponentialHistogram"`
	Summary              *jsonSummary              `json:"summary"`
}

type jsonGauge struct {
	DataPoints []jsonNumberDataPoint `json:"dataPoints"`
}

type jsonSum struct {
	DataPoints             []jsonNumberDataPoint `json:"dataPoints"`
	AggregationTemporality interface{}           `json:"aggregationTemporality"`
	IsMonotonic            bool                  `json:"isMonotonic"`
}

type jsonNumberDataPoint struct {
	TimeUnixNano interface{}    `json:"timeUnixNano"`
	AsDouble     interface{}    `json:"asDouble"`
	AsInt        interface{}    `json:"asInt"`
	Attributes   []jsonKeyValue `json:"attributes"`
}

type jsonHistogram struct {
	DataPoints             []jsonHistogramDataPoint `json:"dataPoints"`
	AggregationTemporality interface{}              `json:"aggregationTemporality"`
}

type jsonHistogramDataPoint struct {
	TimeUnixNano   interface{}    `json:"timeUnixNano"`
	Count          interface{}    `json:"count"`
	Sum            interface{}    `json:"sum"`
	BucketCounts   []interface{}  `json:"bucketCounts"`
	ExplicitBounds []interface{}  `json:"explicitBounds"`
	Min            interface{}    `json:"min"`
	Max            interface{}    `json:"max"`
	Attributes     []jsonKeyValue `json:"attributes"`
}

type jsonExponentialHistogram struct {
	DataPoints             []jsonExpHistogramDataPoint `json:"dataPoints"`
	AggregationTemporality interface{}                 `json:"aggregationTemporality"`
}

type jsonExpHistogramDataPoint struct {
	TimeUnixNano interface{}      `json:"timeUnixNano"`
	Count        interface{}      `json:"count"`
	Sum          interface{}      `json:"sum"`
	Scale        interface{}      `json:"scale"`
	ZeroCount    interface{}      `json:"zeroCount"`
	Positive     *jsonExpBuckets  `json:"positive"`
	Negative     *jsonExpBuckets  `json:"negative"`
	Min          interface{}      `json:"min"`
	Max          interface{}      `json:"max"`
	Attributes   []jsonKeyValue   `json:"attributes"`
}

type jsonExpBuckets struct {
	Offset       interface{}   `json:"offset"`
	BucketCounts []interface{} `json:"bucketCounts"`
}

type jsonSummary struct {
	DataPoints []jsonSummaryDataPoint `json:"dataPoints"`
}

type jsonSummaryDataPoint struct {
	TimeUnixNano    interface{}         `json:"timeUnixNano"`
	Count           interface{}         `json:"count"`
	Sum             interface{}         `json:"sum"`
	QuantileValues  []jsonQuantileValue `json:"quantileValues"`
	Attributes      []jsonKeyValue      `json:"attributes"`
}

type jsonQuantileValue struct {
	Quantile interface{} `json:"quantile"`
	Value    interface{} `json:"value"`
}
