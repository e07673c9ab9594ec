package otlpconvert

import (
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
)

// DecodeLogsProto flattens an OTLP ExportLogsServiceRequest into one LogRow
// per log record, grounded on the teacher's otlp_logs_converter.go.
func DecodeLogsProto(resourceLogs []*logspb.ResourceLogs) ([]LogRow, error) {
	var rows []LogRow
	for _, rl := range resourceLogs {
		resourceAttrs := keyValuesToMap(rl.GetResource().GetAttributes())
		serviceName := extractServiceName(resourceAttrs)
		resourceSchemaURL := rl.GetSchemaUrl()

		for _, sl := range rl.GetScopeLogs() {
			scopeName := sl.GetScope().GetName()
			scopeVersion := sl.GetScope().GetVersion()
			scopeSchemaURL := sl.GetSchemaUrl()

			for _, rec := range sl.GetLogRecords() {
				rows = append(rows, decodeLogRecord(rec, serviceName, resourceAttrs, resourceSchemaURL, scopeName, scopeVersion, scopeSchemaURL))
			}
		}
	}
	return rows, nil
}

func decodeLogRecord(
	rec *logspb.LogRecord,
	serviceName string,
	resourceAttrs map[string]string,
	resourceSchemaURL string,
	scopeName, scopeVersion, scopeSchemaURL string,
) LogRow {
	severityText := rec.GetSeverityText()
	if severityText == "" {
		severityText = severityNumberToText(int32(rec.GetSeverityNumber()))
	}

	return LogRow{
		TimestampNS:        clampTimestampNS(rec.GetTimeUnixNano()),
		ServiceName:        serviceName,
		TraceID:            hexEncode(rec.GetTraceId()),
		SpanID:             hexEncode(rec.GetSpanId()),
		TraceFlags:         rec.GetFlags(),
		SeverityText:       severityText,
		SeverityNumber:     int32(rec.GetSeverityNumber()),
		Body:               anyValueToString(rec.GetBody()),
		ResourceSchemaURL:  resourceSchemaURL,
		ScopeSchemaURL:     scopeSchemaURL,
		ResourceAttributes: resourceAttrs,
		ScopeName:          scopeName,
		ScopeVersion:       scopeVersion,
		Attributes:         keyValuesToMap(rec.GetAttributes()),
	}
}
