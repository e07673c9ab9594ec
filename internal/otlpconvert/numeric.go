package otlpconvert

import "strconv"

// The OTLP JSON mapping wire-encodes 64-bit integers as decimal strings
// (since JSON numbers lose precision above 2^53) while still allowing a
// plain JSON number for smaller fields. encoding/json decodes both into
// interface{} as either string or float64; these helpers normalize either
// representation, falling back to zero on a malformed string per
// spec.md's JSON-numeric-leniency rule.

func jsonAsInt64(v interface{}) int64 {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int64(t)
	default:
		return 0
	}
}

func jsonAsUint64(v interface{}) uint64 {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseUint(t, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		if t < 0 {
			return 0
		}
		return uint64(t)
	default:
		return 0
	}
}

func jsonAsInt32(v interface{}) int32 {
	return int32(jsonAsInt64(v))
}

func jsonAsFloat64(v interface{}) float64 {
	switch t := v.(type) {
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		return t
	default:
		return 0
	}
}

func jsonAsFloat64Slice(vs []interface{}) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = jsonAsFloat64(v)
	}
	return out
}

func jsonAsUint64Slice(vs []interface{}) []uint64 {
	out := make([]uint64, len(vs))
	for i, v := range vs {
		out[i] = jsonAsUint64(v)
	}
	return out
}

// jsonAsIDString normalizes a trace/span id that arrives as a JSON string.
// The OTLP JSON mapping hex-encodes byte fields, so these ids are already
// in the form the columnar layer expects; hexPassthrough lowercases them
// for consistency with the protobuf front end's hexEncode output.
func jsonAsIDString(v interface{}) string {
	s, _ := v.(string)
	if s == "" {
		return ""
	}
	return hexPassthrough(s)
}
