package metadata

import (
	"fmt"
	"maps"
	"math"
)

// Structured records come either straight from ToStructured or from a generic
// decoder (encoding/json, yaml, msgpack), so lists may be []string or []any,
// maps may be map[string]string or map[string]any, and numbers may have any width.

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneList copies a list, turning nil into an empty list
func cloneList[T any](list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	return out
}

func cloneMap(m map[string]string) map[string]string {
	return maps.Clone(m)
}

// recordMap copies m for a record; a nil map is written as an empty one
func recordMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return cloneMap(m)
}

func putOptional(data map[string]any, key string, value *string) {
	if value != nil {
		data[key] = *value
	}
}

func optionalString(data map[string]any, key string) (*string, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("field %q: expected a string, got %T", key, raw)
	}
	return &s, nil
}

func boolField(data map[string]any, key string) (bool, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("field %q: expected a bool, got %T", key, raw)
	}
	return b, nil
}

// stringList reads a list of strings; present reports whether the key held a list at all
func stringList(data map[string]any, key string) (list []string, present bool, err error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, false, nil
	}
	switch v := raw.(type) {
	case []string:
		return cloneList(v), true, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, true, fmt.Errorf("field %q[%d]: expected a string, got %T", key, i, item)
			}
			out[i] = s
		}
		return out, true, nil
	default:
		return nil, true, fmt.Errorf("field %q: expected a list, got %T", key, raw)
	}
}

func stringMap(data map[string]any, key string) (map[string]string, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case map[string]string:
		return cloneMap(v), nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("field %q[%q]: expected a string, got %T", key, k, item)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q: expected a map, got %T", key, raw)
	}
}

func record(data map[string]any, key string) (map[string]any, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case map[string]any:
		return v, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = item
		}
		return out, nil
	default:
		return nil, fmt.Errorf("field %q: expected a record, got %T", key, raw)
	}
}

// decodeEnum accepts a canonical name, or an ordinal as written by older summaries
func decodeEnum[T any](raw any, parse func(string) (T, error), fromOrdinal func(int) (T, error)) (T, error) {
	if name, ok := raw.(string); ok {
		return parse(name)
	}
	if ordinal, ok := toOrdinal(raw); ok {
		return fromOrdinal(ordinal)
	}
	var zero T
	return zero, fmt.Errorf("expected an enum name or ordinal, got %T", raw)
}

func optionalEnum[T any](data map[string]any, key string, parse func(string) (T, error), fromOrdinal func(int) (T, error)) (*T, error) {
	raw, ok := data[key]
	if !ok || raw == nil {
		return nil, nil
	}
	value, err := decodeEnum(raw, parse, fromOrdinal)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return &value, nil
}

func toOrdinal(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		return int(v), true
	case uint64:
		if v > math.MaxInt32 {
			return 0, false
		}
		return int(v), true
	case float32:
		return floatOrdinal(float64(v))
	case float64:
		return floatOrdinal(v)
	}
	return 0, false
}

func floatOrdinal(f float64) (int, bool) {
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
