package otlpconvert

import (
	tracepb "go.opentelemetry.io/proto/otlp/trace/v1"

	"otlpsink/pkg/errors"
)

// DecodeTraceProto flattens an OTLP ExportTraceServiceRequest into one
// TraceRow per span, grounded on the teacher's convertProtoToInternal plus
// otlp_handler.go's hex-encoding of trace/span ids.
func DecodeTraceProto(resourceSpans []*tracepb.ResourceSpans) ([]TraceRow, error) {
	var rows []TraceRow
	for _, rs := range resourceSpans {
		resourceAttrs := keyValuesToMap(rs.GetResource().GetAttributes())
		serviceName := extractServiceName(resourceAttrs)

		for _, ss := range rs.GetScopeSpans() {
			scopeName := ss.GetScope().GetName()
			scopeVersion := ss.GetScope().GetVersion()

			for _, span := range ss.GetSpans() {
				row, err := decodeTraceSpan(span, serviceName, resourceAttrs, scopeName, scopeVersion)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}

func decodeTraceSpan(
	span *tracepb.Span,
	serviceName string,
	resourceAttrs map[string]string,
	scopeName, scopeVersion string,
) (TraceRow, error) {
	if len(span.GetTraceId()) == 0 || len(span.GetSpanId()) == 0 {
		return TraceRow{}, errors.NewDecode("span missing trace_id or span_id", nil)
	}

	var parentSpanID *string
	if len(span.GetParentSpanId()) > 0 {
		id := hexEncode(span.GetParentSpanId())
		parentSpanID = &id
	}

	row := TraceRow{
		TimestampNS:        clampTimestampNS(span.GetStartTimeUnixNano()),
		ServiceName:        serviceName,
		TraceID:            hexEncode(span.GetTraceId()),
		SpanID:             hexEncode(span.GetSpanId()),
		ParentSpanID:       parentSpanID,
		TraceState:         span.GetTraceState(),
		SpanName:           span.GetName(),
		SpanKind:           spanKindString(int32(span.GetKind())),
		DurationNS:         durationNS(span.GetStartTimeUnixNano(), span.GetEndTimeUnixNano()),
		ResourceAttributes: resourceAttrs,
		ScopeName:          scopeName,
		ScopeVersion:       scopeVersion,
		Attributes:         keyValuesToMap(span.GetAttributes()),
	}

	if status := span.GetStatus(); status != nil {
		row.StatusCode = statusCodeString(int32(status.GetCode()))
		row.StatusMessage = status.GetMessage()
	} else {
		row.StatusCode = statusCodeString(0)
	}

	for _, ev := range span.GetEvents() {
		row.Events = append(row.Events, TraceEvent{
			TimestampNS: clampTimestampNS(ev.GetTimeUnixNano()),
			Name:        ev.GetName(),
			Attributes:  keyValuesToMap(ev.GetAttributes()),
		})
	}

	for _, link := range span.GetLinks() {
		row.Links = append(row.Links, TraceLink{
			TraceID:    hexEncode(link.GetTraceId()),
			SpanID:     hexEncode(link.GetSpanId()),
			TraceState: link.GetTraceState(),
			Attributes: keyValuesToMap(link.GetAttributes()),
		})
	}

	return row, nil
}
