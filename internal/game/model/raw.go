package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawGame is a game record in any of the stored legacy shapes, keyed by the
// field names it was written with. Values are whatever the decoder produced:
// strings, float64, json.Number, bool, nested maps or nil.
type RawGame map[string]any

// First returns the first alias that is present with a non-empty value.
func (r RawGame) First(aliases ...string) (any, bool) {
	for _, key := range aliases {
		v, ok := r[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// String returns the first present alias rendered as a trimmed string.
func (r RawGame) String(aliases ...string) string {
	v, ok := r.First(aliases...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(Stringify(v))
}

// Map returns the first present alias holding a nested object.
func (r RawGame) Map(aliases ...string) (map[string]any, bool) {
	for _, key := range aliases {
		switch v := r[key].(type) {
		case map[string]any:
			return v, true
		case RawGame:
			return v, true
		case string:
			// Some writers stored the nested score object as encoded JSON.
			var nested map[string]any
			if json.Unmarshal([]byte(v), &nested) == nil {
				return nested, true
			}
		}
	}
	return nil, false
}

// Stringify renders a decoded scalar as text.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ParseScore converts a decoded score value into a non-negative integer.
// Whole floats such as 72.0 are accepted; fractions, negatives and text are not.
func ParseScore(v any) (int, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return t, t >= 0
	case int64:
		return int(t), t >= 0
	case float64:
		return fromFloat(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), n >= 0
		}
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return fromFloat(f)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, n >= 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return fromFloat(f)
	default:
		return 0, false
	}
}

func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// IsPresent reports whether a decoded score value counts as entered. Empty
// strings and nulls do not.
func IsPresent(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
