package support

import (
	"cmp"
	"encoding/json"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Stringify renders a scalar the way it would appear in a form field.
// Non-scalar values report false.
func Stringify(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "", true
	case int:
		return strconv.Itoa(v), true
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), true
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

// Blank reports whether value is nil, a whitespace-only string, or an empty
// slice, map or array. Booleans and numbers are never blank.
func Blank(value any) bool {
	if value == nil {
		return true
	}

	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Filled is the negation of Blank.
func Filled(value any) bool {
	return !Blank(value)
}

// FilterFilled drops blank entries from m.
func FilterFilled[K comparable](m map[K]any) map[K]any {
	out := make(map[K]any, len(m))
	for k, v := range m {
		if Filled(v) {
			out[k] = v
		}
	}
	return out
}

// ReduceWithKeys folds m in key order, passing each value and its key.
func ReduceWithKeys[K cmp.Ordered, V, C any](m map[K]V, fn func(carry C, value V, key K) C, initial C) C {
	carry := initial
	for _, k := range slices.Sorted(maps.Keys(m)) {
		carry = fn(carry, m[k], k)
	}
	return carry
}

// MapWithKeys maps every entry of m to a set of new entries and merges them
// in key order; later keys overwrite earlier ones.
func MapWithKeys[K cmp.Ordered, V any, K2 comparable, V2 any](m map[K]V, fn func(value V, key K) map[K2]V2) map[K2]V2 {
	out := make(map[K2]V2, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		for k2, v2 := range fn(m[k], k) {
			out[k2] = v2
		}
	}
	return out
}
