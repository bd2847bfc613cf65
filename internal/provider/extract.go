package provider

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ExtractValue normalizes a stat value from the provider's mixed encodings.
//
// stats.nba.com returns flat JSON numbers, but cached or proxied payloads
// frequently carry the same columns as strings ("36.2"). This handles both.
//
// Returns the scalar float64 value, and ok=false if not extractable.
func ExtractValue(val any) (float64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// ExtractInt extracts an integer stat. Numbers must be integral; text must be
// a plain base-10 integer ("28", not "28.0").
func ExtractInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	f, ok := ExtractValue(val)
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int(f), true
}

// ExtractString returns val when it is a string.
func ExtractString(val any) (string, bool) {
	s, ok := val.(string)
	return s, ok
}
