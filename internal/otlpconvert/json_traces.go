package otlpconvert

import "otlpsink/pkg/errors"

// DecodeTracesJSON is the JSON-text counterpart to DecodeTraceProto: same
// row shape, same ordering, driven from protojson-style wire structs
// instead of generated protobuf types.
func DecodeTracesJSON(resourceSpans []jsonResourceSpans) ([]TraceRow, error) {
	var rows []TraceRow
	for _, rs := range resourceSpans {
		resourceAttrs := jsonKeyValuesToMap(rs.Resource.Attributes)
		serviceName := extractServiceName(resourceAttrs)

		for _, ss := range rs.ScopeSpans {
			scopeName := ss.Scope.Name
			scopeVersion := ss.Scope.Version

			for _, span := range ss.Spans {
				row, err := decodeJSONSpan(span, serviceName, resourceAttrs, scopeName, scopeVersion)
				if err != nil {
					return nil, err
				}
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}

func decodeJSONSpan(
	span jsonSpan,
	serviceName string,
	resourceAttrs map[string]string,
	scopeName, scopeVersion string,
) (TraceRow, error) {
	traceID := jsonAsIDString(span.TraceID)
	spanID := jsonAsIDString(span.SpanID)
	if traceID == "" || spanID == "" {
		return TraceRow{}, errors.NewDecode("span missing traceId or spanId", nil)
	}

	var parentSpanID *string
	if p := jsonAsIDString(span.ParentSpanID); p != "" {
		parentSpanID = &p
	}

	startNS := jsonAsUint64(span.StartTimeUnixNano)
	endNS := jsonAsUint64(span.EndTimeUnixNano)

	row := TraceRow{
		TimestampNS:        clampTimestampNS(startNS),
		ServiceName:        serviceName,
		TraceID:            traceID,
		SpanID:             spanID,
		ParentSpanID:       parentSpanID,
		TraceState:         span.TraceState,
		SpanName:           span.Name,
		SpanKind:           spanKindString(jsonAsInt32(span.Kind)),
		DurationNS:         durationNS(startNS, endNS),
		ResourceAttributes: resourceAttrs,
		ScopeName:          scopeName,
		ScopeVersion:       scopeVersion,
		Attributes:         jsonKeyValuesToMap(span.Attributes),
	}

	if span.Status != nil {
		row.StatusCode = statusCodeString(jsonAsInt32(span.Status.Code))
		row.StatusMessage = span.Status.Message
	} else {
		row.StatusCode = statusCodeString(0)
	}

	for _, ev := range span.Events {
		row.Events = append(row.Events, TraceEvent{
			TimestampNS: clampTimestampNS(jsonAsUint64(ev.TimeUnixNano)),
			Name:        ev.Name,
			Attributes:  jsonKeyValuesToMap(ev.Attributes),
		})
	}

	for _, link := range span.Links {
		row.Links = append(row.Links, TraceLink{
			TraceID:    jsonAsIDString(link.TraceID),
			SpanID:     jsonAsIDString(link.SpanID),
			TraceState: link.TraceState,
			Attributes: jsonKeyValuesToMap(link.Attributes),
		})
	}

	return row, nil
}
