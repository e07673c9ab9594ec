// Package otlpconvert converts incoming OTLP payloads — protobuf or JSON,
// both producing the same typed rows — into the flat row shapes
// internal/columnar's Appender expects, one builder per table (spec.md
// §4.3).
package otlpconvert

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
)

// ServiceNameUnknown is substituted when a resource carries no
// service.name attribute, grounded on the original extension's
// ExtractServiceName default.
const ServiceNameUnknown = "unknown_service"

// keyValuesToMap flattens an OTLP attribute list to map[string]string. Per
// spec.md §4.3, scalars render as their textual form and compound values
// (kvlist, array) render as a JSON-shaped string with nested values
// recursively stringified. Duplicate keys are preserved as last-write-wins,
// matching how a Go map naturally folds repeated keys.
func keyValuesToMap(kvs []*commonpb.KeyValue) map[string]string {
	result := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		result[kv.GetKey()] = anyValueToString(kv.GetValue())
	}
	return result
}

// anyValueToString flattens a single OTLP AnyValue to its string form.
func anyValueToString(v *commonpb.AnyValue) string {
	if v == nil {
		return ""
	}
	switch val := v.GetValue().(type) {
	case *commonpb.AnyValue_StringValue:
		return val.StringValue
	case *commonpb.AnyValue_IntValue:
		return strconv.FormatInt(val.IntValue, 10)
	case *commonpb.AnyValue_DoubleValue:
		return strconv.FormatFloat(val.DoubleValue, 'g', -1, 64)
	case *commonpb.AnyValue_BoolValue:
		if val.BoolValue {
			return "true"
		}
		return "false"
	case *commonpb.AnyValue_BytesValue:
		return hexEncode(val.BytesValue)
	case *commonpb.AnyValue_ArrayValue:
		return jsonEncodeArray(val.ArrayValue.GetValues())
	case *commonpb.AnyValue_KvlistValue:
		return jsonEncodeKvlist(val.KvlistValue.GetValues())
	default:
		return ""
	}
}

func jsonEncodeArray(values []*commonpb.AnyValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = jsonQuote(anyValueToString(v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func jsonEncodeKvlist(kvs []*commonpb.KeyValue) string {
	parts := make([]string, len(kvs))
	for i, kv := range kvs {
		parts[i] = jsonQuote(kv.GetKey()) + ":" + jsonQuote(anyValueToString(kv.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func jsonQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// extractServiceName reads service.name out of a flattened resource
// attribute map, defaulting to ServiceNameUnknown.
func extractServiceName(resourceAttrs map[string]string) string {
	if name, ok := resourceAttrs["service.name"]; ok && name != "" {
		return name
	}
	return ServiceNameUnknown
}

// hexEncode renders raw bytes as lowercase hex. original_source/src/include/
// otlp_helpers.hpp's BytesToHex uppercases; spec.md §4.3 deliberately
// overrides that to lowercase, and the spec is ground truth here.
func hexEncode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return hex.EncodeToString(b)
}

// hexPassthrough implements BytesToHex's JSON-side rule: a value already
// hex-encoded (even length, all [0-9A-Fa-f]) passes through unchanged
// (lowercased) rather than being hex-encoded again, since JSON OTLP
// payloads commonly carry trace/span IDs pre-encoded as hex strings.
func hexPassthrough(s string) string {
	if s == "" {
		return ""
	}
	if len(s)%2 == 0 && isHex(s) {
		return strings.ToLower(s)
	}
	return hexEncode([]byte(s))
}

func isHex(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

// clampTimestampNS clamps an unsigned epoch-nanosecond value into the
// int64 range the TIMESTAMP_NS column stores, matching the original's
// NanosToTimestamp overflow clamp.
func clampTimestampNS(nanos uint64) int64 {
	const maxInt64 = uint64(1<<63 - 1)
	if nanos > maxInt64 {
		return int64(maxInt64)
	}
	return int64(nanos)
}

// durationNS computes an end-minus-start duration in nanoseconds, clamping
// to 0 if end precedes start (malformed spans should not produce a
// negative duration).
func durationNS(startNS, endNS uint64) int64 {
	if endNS < startNS {
		return 0
	}
	d := endNS - startNS
	const maxInt64 = uint64(1<<63 - 1)
	if d > maxInt64 {
		return int64(maxInt64)
	}
	return int64(d)
}

// spanKindString renders the OTLP SpanKind enum as the text stored in the
// SpanKind column, grounded on the original's SpanKindToString.
func spanKindString(kind int32) string {
	switch kind {
	case 1:
		return "INTERNAL"
	case 2:
		return "SERVER"
	case 3:
		return "CLIENT"
	case 4:
		return "PRODUCER"
	case 5:
		return "CONSUMER"
	default:
		return "UNSPECIFIED"
	}
}

// statusCodeString renders the OTLP Status.StatusCode enum, grounded on
// the original's StatusCodeToString.
func statusCodeString(code int32) string {
	switch code {
	case 1:
		return "OK"
	case 2:
		return "ERROR"
	default:
		return "UNSET"
	}
}

// severityNumberToText derives severity text from an OTLP severity number
// when the wire payload leaves SeverityText empty, grounded on the
// teacher's observability.ConvertSeverityNumberToText mapping.
func severityNumberToText(n int32) string {
	switch {
	case n >= 1 && n <= 4:
		return "TRACE"
	case n >= 5 && n <= 8:
		return "DEBUG"
	case n >= 9 && n <= 12:
		return "INFO"
	case n >= 13 && n <= 16:
		return "WARN"
	case n >= 17 && n <= 20:
		return "ERROR"
	case n >= 21 && n <= 24:
		return "FATAL"
	default:
		return fmt.Sprintf("UNSPECIFIED(%d)", n)
	}
}
