package otlpconvert

import (
	"otlpsink/internal/columnar"
	"otlpsink/internal/schema"
)

// WriteTraceRow appends one decoded span as a row through a.
func WriteTraceRow(a *columnar.Appender, row TraceRow) {
	a.BeginRow()
	a.SetTimestampNS(schema.TracesColTimestamp, row.TimestampNS)
	a.SetVarchar(schema.TracesColServiceName, row.ServiceName)
	a.SetVarchar(schema.TracesColTraceID, row.TraceID)
	a.SetVarchar(schema.TracesColSpanID, row.SpanID)
	if row.ParentSpanID != nil {
		a.SetVarchar(schema.TracesColParentSpanID, *row.ParentSpanID)
	} else {
		a.SetNull(schema.TracesColParentSpanID)
	}
	a.SetVarchar(schema.TracesColTraceState, row.TraceState)
	a.SetVarchar(schema.TracesColSpanName, row.SpanName)
	a.SetVarchar(schema.TracesColSpanKind, row.SpanKind)
	a.SetBigint(schema.TracesColDuration, row.DurationNS)
	a.SetVarchar(schema.TracesColStatusCode, row.StatusCode)
	a.SetVarchar(schema.TracesColStatusMessage, row.StatusMessage)

	evTS := make([]int64, len(row.Events))
	evNames := make([]string, len(row.Events))
	evAttrs := make([]map[string]string, len(row.Events))
	for i, ev := range row.Events {
		evTS[i] = ev.TimestampNS
		evNames[i] = ev.Name
		evAttrs[i] = ev.Attributes
	}
	a.SetListTimestampNS(schema.TracesColEventsTimestamp, evTS)
	a.SetListVarchar(schema.TracesColEventsName, evNames)
	a.SetListMap(schema.TracesColEventsAttributes, evAttrs)

	linkTraceIDs := make([]string, len(row.Links))
	linkSpanIDs := make([]string, len(row.Links))
	linkTraceStates := make([]string, len(row.Links))
	linkAttrs := make([]map[string]string, len(row.Links))
	for i, link := range row.Links {
		linkTraceIDs[i] = link.TraceID
		linkSpanIDs[i] = link.SpanID
		linkTraceStates[i] = link.TraceState
		linkAttrs[i] = link.Attributes
	}
	a.SetListVarchar(schema.TracesColLinksTraceID, linkTraceIDs)
	a.SetListVarchar(schema.TracesColLinksSpanID, linkSpanIDs)
	a.SetListVarchar(schema.TracesColLinksTraceState, linkTraceStates)
	a.SetListMap(schema.TracesColLinksAttributes, linkAttrs)

	a.SetMap(schema.TracesColResourceAttributes, row.ResourceAttributes)
	a.SetVarchar(schema.TracesColScopeName, row.ScopeName)
	a.SetVarchar(schema.TracesColScopeVersion, row.ScopeVersion)
	a.SetMap(schema.TracesColAttributes, row.Attributes)
	a.CommitRow()
}

// WriteLogRow appends one decoded log record as a row through a.
func WriteLogRow(a *columnar.Appender, row LogRow) {
	a.BeginRow()
	a.SetTimestampNS(schema.LogsColTimestamp, row.TimestampNS)
	a.SetVarchar(schema.LogsColServiceName, row.ServiceName)
	a.SetVarchar(schema.LogsColTraceID, row.TraceID)
	a.SetVarchar(schema.LogsColSpanID, row.SpanID)
	a.SetUInteger(schema.LogsColTraceFlags, row.TraceFlags)
	a.SetVarchar(schema.LogsColSeverityText, row.SeverityText)
	a.SetInteger(schema.LogsColSeverityNumber, row.SeverityNumber)
	a.SetVarchar(schema.LogsColBody, row.Body)
	a.SetVarchar(schema.LogsColResourceSchemaURL, row.ResourceSchemaURL)
	a.SetVarchar(schema.LogsColScopeSchemaURL, row.ScopeSchemaURL)
	a.SetMap(schema.LogsColResourceAttributes, row.ResourceAttributes)
	a.SetVarchar(schema.LogsColScopeName, row.ScopeName)
	a.SetVarchar(schema.LogsColScopeVersion, row.ScopeVersion)
	a.SetMap(schema.LogsColAttributes, row.Attributes)
	a.CommitRow()
}

func writeMetricBase(a *columnar.Appender, base metricBase) {
	a.BeginRow()
	a.SetTimestampNS(schema.MetricsColTimestamp, base.TimestampNS)
	a.SetVarchar(schema.MetricsColServiceName, base.ServiceName)
	a.SetVarchar(schema.MetricsColMetricName, base.MetricName)
	a.SetVarchar(schema.MetricsColMetricDescription, base.MetricDescription)
	a.SetVarchar(schema.MetricsColMetricUnit, base.MetricUnit)
	a.SetMap(schema.MetricsColResourceAttributes, base.ResourceAttributes)
	a.SetVarchar(schema.MetricsColScopeName, base.ScopeName)
	a.SetVarchar(schema.MetricsColScopeVersion, base.ScopeVersion)
	a.SetMap(schema.MetricsColAttributes, base.Attributes)
}

func setNullableFloat(a *columnar.Appender, col int, v *float64) {
	if v == nil {
		a.SetNull(col)
		return
	}
	a.SetDouble(col, *v)
}

// WriteGaugeRow appends one decoded gauge data point through a.
func WriteGaugeRow(a *columnar.Appender, row GaugeRow) {
	writeMetricBase(a, row.metricBase)
	a.SetDouble(schema.GaugeColValue, row.Value)
	a.CommitRow()
}

// WriteSumRow appends one decoded sum data point through a.
func WriteSumRow(a *columnar.Appender, row SumRow) {
	writeMetricBase(a, row.metricBase)
	a.SetDouble(schema.SumColValue, row.Value)
	a.SetInteger(schema.SumColAggregationTemporality, row.AggregationTemporality)
	a.SetBoolean(schema.SumColIsMonotonic, row.IsMonotonic)
	a.CommitRow()
}

// WriteHistogramRow appends one decoded histogram data point through a.
func WriteHistogramRow(a *columnar.Appender, row HistogramRow) {
	writeMetricBase(a, row.metricBase)
	a.SetUBigint(schema.HistogramColCount, row.Count)
	setNullableFloat(a, schema.HistogramColSum, row.Sum)
	a.SetListUInt64(schema.HistogramColBucketCounts, row.BucketCounts)
	a.SetListFloat64(schema.HistogramColExplicitBounds, row.ExplicitBounds)
	setNullableFloat(a, schema.HistogramColMin, row.Min)
	setNullableFloat(a, schema.HistogramColMax, row.Max)
	a.CommitRow()
}

// WriteExpHistogramRow appends one decoded exponential-histogram data
// point through a.
func WriteExpHistogramRow(a *columnar.Appender, row ExpHistogramRow) {
	writeMetricBase(a, row.metricBase)
	a.SetUBigint(schema.ExpHistogramColCount, row.Count)
	setNullableFloat(a, schema.ExpHistogramColSum, row.Sum)
	a.SetInteger(schema.ExpHistogramColScale, row.Scale)
	a.SetUBigint(schema.ExpHistogramColZeroCount, row.ZeroCount)
	a.SetInteger(schema.ExpHistogramColPositiveOffset, row.PositiveOffset)
	a.SetListUInt64(schema.ExpHistogramColPositiveBucketCounts, row.PositiveBucketCounts)
	a.SetInteger(schema.ExpHistogramColNegativeOffset, row.NegativeOffset)
	a.SetListUInt64(schema.ExpHistogramColNegativeBucketCounts, row.NegativeBucketCounts)
	setNullableFloat(a, schema.ExpHistogramColMin, row.Min)
	setNullableFloat(a, schema.ExpHistogramColMax, row.Max)
	a.CommitRow()
}

// WriteSummaryRow appends one decoded summary data point through a.
func WriteSummaryRow(a *columnar.Appender, row SummaryRow) {
	writeMetricBase(a, row.metricBase)
	a.SetUBigint(schema.SummaryColCount, row.Count)
	a.SetDouble(schema.SummaryColSum, row.Sum)
	a.SetListFloat64(schema.SummaryColQuantileValues, row.QuantileValues)
	a.SetListFloat64(schema.SummaryColQuantileQuantiles, row.QuantileQuantiles)
	a.CommitRow()
}
