package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The helpers below coerce values decoded from loosely typed maps
// (JSON, form input, caller literals) into concrete Go types.
// They return ok=false when the value is absent or not convertible.

func looseString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

func looseFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

func looseInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int(n), true
		}
		f, err := val.Float64()
		return int(f), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		return n, err == nil
	}
	return 0, false
}

func looseBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case int:
		return val != 0, true
	case float64:
		return val != 0, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		return b, err == nil
	}
	return false, false
}

// firstPresent returns the value of the first key that is present and non-nil.
func firstPresent(data map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := data[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// AsString coerces a loosely typed value to a string.
func AsString(v any) (string, bool) { return looseString(v) }

// AsFloat coerces a loosely typed value to a float64.
func AsFloat(v any) (float64, bool) { return looseFloat(v) }

// AsInt coerces a loosely typed value to an int.
func AsInt(v any) (int, bool) { return looseInt(v) }

// ProductsFromAny builds products from a list of maps or products. It
// accepts []map[string]any, []*Product and []any holding either; other
// entries are skipped.
func ProductsFromAny(v any) []*Product {
	switch list := v.(type) {
	case []*Product:
		return list
	case []map[string]any:
		out := make([]*Product, 0, len(list))
		for _, m := range list {
			out = append(out, ProductFromMap(m))
		}
		return out
	case []any:
		out := make([]*Product, 0, len(list))
		for _, item := range list {
			switch it := item.(type) {
			case *Product:
				if it != nil {
					out = append(out, it)
				}
			case map[string]any:
				out = append(out, ProductFromMap(it))
			}
		}
		return out
	}
	return nil
}
