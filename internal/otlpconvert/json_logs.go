package otlpconvert

// DecodeLogsJSON is the JSON-text counterpart to DecodeLogsProto.
func DecodeLogsJSON(resourceLogs []jsonResourceLogs) ([]LogRow, error) {
	var rows []LogRow
	for _, rl := range resourceLogs {
		resourceAttrs := jsonKeyValuesToMap(rl.Resource.Attributes)
		serviceName := extractServiceName(resourceAttrs)
		resourceSchemaURL := rl.SchemaUrl

		for _, sl := range rl.ScopeLogs {
			scopeName := sl.Scope.Name
			scopeVersion := sl.Scope.Version
			scopeSchemaURL := sl.SchemaUrl

			for _, rec := range sl.LogRecords {
				rows = append(rows, decodeJSONLogRecord(rec, serviceName, resourceAttrs, resourceSchemaURL, scopeName, scopeVersion, scopeSchemaURL))
			}
		}
	}
	return rows, nil
}

func decodeJSONLogRecord(
	rec jsonLogRecord,
	serviceName string,
	resourceAttrs map[string]string,
	resourceSchemaURL string,
	scopeName, scopeVersion, scopeSchemaURL string,
) LogRow {
	severityNumber := jsonAsInt32(rec.SeverityNumber)
	severityText := rec.SeverityText
	if severityText == "" {
		severityText = severityNumberToText(severityNumber)
	}

	return LogRow{
		TimestampNS:        clampTimestampNS(jsonAsUint64(rec.TimeUnixNano)),
		ServiceName:        serviceName,
		TraceID:            jsonAsIDString(rec.TraceID),
		SpanID:             jsonAsIDString(rec.SpanID),
		TraceFlags:         uint32(jsonAsUint64(rec.Flags)),
		SeverityText:       severityText,
		SeverityNumber:     severityNumber,
		Body:               jsonAnyValueToString(rec.Body),
		ResourceSchemaURL:  resourceSchemaURL,
		ScopeSchemaURL:     scopeSchemaURL,
		ResourceAttributes: resourceAttrs,
		ScopeName:          scopeName,
		ScopeVersion:       scopeVersion,
		Attributes:         jsonKeyValuesToMap(rec.Attributes),
	}
}
