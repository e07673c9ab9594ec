package otlpconvert

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// jsonKeyValuesToMap is json_types.go's counterpart to attrs.go's
// keyValuesToMap, producing an identical map[string]string shape so the
// two decode front ends converge on the same attribute representation.
func jsonKeyValuesToMap(kvs []jsonKeyValue) map[string]string {
	result := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		result[kv.Key] = jsonAnyValueToString(kv.Value)
	}
	return result
}

func jsonAnyValueToString(v jsonAnyValue) string {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.BoolValue != nil:
		if *v.BoolValue {
			return "true"
		}
		return "false"
	case v.IntValue != nil:
		return strconv.FormatInt(jsonAsInt64(v.IntValue), 10)
	case v.DoubleValue != nil:
		return strconv.FormatFloat(*v.DoubleValue, 'g', -1, 64)
	case v.BytesValue != nil:
		raw, err := base64.StdEncoding.DecodeString(*v.BytesValue)
		if err != nil {
			return ""
		}
		return hexEncode(raw)
	case v.ArrayValue != nil:
		return jsonEncodeJSONArray(v.ArrayValue.Values)
	case v.KvlistValue != nil:
		return jsonEncodeJSONKvlist(v.KvlistValue.Values)
	default:
		return ""
	}
}

func jsonEncodeJSONArray(values []jsonAnyValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = jsonQuote(jsonAnyValueToString(v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func jsonEncodeJSONKvlist(kvs []jsonKeyValue) string {
	parts := make([]string, len(kvs))
	for i, kv := range kvs {
		parts[i] = jsonQuote(kv.Key) + ":" + jsonQuote(jsonAnyValueToString(kv.Value))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
