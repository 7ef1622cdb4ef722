package livescore

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

func asMap(value any) map[string]any {
	switch typed := value.(type) {
	case map[string]any:
		return typed
	case RawFixture:
		return typed
	default:
		return nil
	}
}

// relationMap unwraps an include that may be sent as {"data": {...}} or inline.
func relationMap(value any) map[string]any {
	obj := asMap(value)
	if obj == nil {
		return nil
	}
	if data, ok := obj["data"].(map[string]any); ok {
		return data
	}
	return obj
}

// relationList unwraps an include that may be sent as {"data": [...]} or as a bare array.
func relationList(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, item)
		}
		return out
	case map[string]any:
		if list, ok := typed["data"].([]any); ok {
			return list
		}
	}
	return nil
}

// lookup walks a key path. Nested objects may be wrapped in {"data": ...}; the
// root is read as-is because records carry their own "data" fields.
func lookup(src map[string]any, path ...string) any {
	var current any = src
	for i, key := range path {
		obj := asMap(current)
		if i > 0 {
			obj = relationMap(current)
		}
		if obj == nil {
			return nil
		}
		value, ok := obj[key]
		if !ok {
			return nil
		}
		current = value
	}
	return current
}

// jsonNumber accepts JSON number values only.
func jsonNumber(value any) (float64, bool) {
	var out float64
	switch typed := value.(type) {
	case float64:
		out = typed
	case float32:
		out = float64(typed)
	case int:
		out = float64(typed)
	case int32:
		out = float64(typed)
	case int64:
		out = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

// coerceNumber also accepts numeric strings.
func coerceNumber(value any) (float64, bool) {
	if out, ok := jsonNumber(value); ok {
		return out, true
	}
	text, ok := value.(string)
	if !ok {
		return 0, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

// int64Bound is 2^63; float64 integers in [-int64Bound, int64Bound) fit an int64.
const int64Bound = float64(1 << 63)

func integer(value any) (int64, bool) {
	number, ok := jsonNumber(value)
	if !ok || number != math.Trunc(number) {
		return 0, false
	}
	if number < -int64Bound || number >= int64Bound {
		return 0, false
	}
	return int64(number), true
}

func nonEmptyString(value any) (string, bool) {
	text, ok := value.(string)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	return text, text != ""
}

// identifier renders a provider id that may arrive as a number or a string.
// Zero and empty values count as absent.
func identifier(value any) (string, bool) {
	if id, ok := integer(value); ok {
		if id == 0 {
			return "", false
		}
		return strconv.FormatInt(id, 10), true
	}
	if number, ok := jsonNumber(value); ok {
		if number == 0 {
			return "", false
		}
		return strconv.FormatFloat(number, 'f', -1, 64), true
	}
	return nonEmptyString(value)
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}
