package support

import (
	"cmp"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
)

type QueryEncoding int

const (
	// RFC1738 encodes spaces as "+".
	RFC1738 QueryEncoding = iota
	// RFC3986 encodes spaces as "%20" and leaves "~" alone.
	RFC3986
)

// HTTPBuildQuery encodes payload (a map or slice, nested to any depth) as a
// query string. Nil values are skipped and false is sent as "0". Integer keys
// at the top level get numericPrefix. Map keys are emitted in sorted order.
func HTTPBuildQuery(payload any, numericPrefix, separator string, enc QueryEncoding) string {
	if separator == "" {
		separator = "&"
	}

	var parts []string
	rv := reflect.ValueOf(payload)
	for _, e := range entries(rv) {
		key := e.key
		if e.numeric {
			key = numericPrefix + key
		}
		parts = appendQuery(parts, key, e.value, enc)
	}
	return strings.Join(parts, separator)
}

type queryEntry struct {
	key     string
	numeric bool
	value   reflect.Value
}

func entries(rv reflect.Value) []queryEntry {
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]queryEntry, 0, rv.Len())
		for i := range rv.Len() {
			out = append(out, queryEntry{key: fmt.Sprint(i), numeric: true, value: rv.Index(i)})
		}
		return out
	case reflect.Map:
		keys := rv.MapKeys()
		numeric := len(keys) > 0 && isInteger(keys[0].Kind())
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			if numeric {
				return compareInts(a, b)
			}
			return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})
		out := make([]queryEntry, 0, len(keys))
		for _, k := range keys {
			out = append(out, queryEntry{key: fmt.Sprint(k.Interface()), numeric: numeric, value: rv.MapIndex(k)})
		}
		return out
	}
	return nil
}

func appendQuery(parts []string, key string, v reflect.Value, enc QueryEncoding) []string {
	v = indirect(v)
	if !v.IsValid() {
		return parts
	}

	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		for _, e := range entries(v) {
			parts = appendQuery(parts, key+"["+e.key+"]", e.value, enc)
		}
		return parts
	case reflect.Bool:
		s := "0"
		if v.Bool() {
			s = "1"
		}
		return append(parts, queryEscape(key, enc)+"="+s)
	}

	s, ok := Stringify(v.Interface())
	if !ok {
		return parts
	}
	return append(parts, queryEscape(key, enc)+"="+queryEscape(s, enc))
}

func queryEscape(s string, enc QueryEncoding) string {
	escaped := url.QueryEscape(s)
	if enc == RFC3986 {
		return strings.ReplaceAll(escaped, "+", "%20")
	}
	return strings.ReplaceAll(escaped, "~", "%7E")
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func compareInts(a, b reflect.Value) int {
	if a.CanInt() {
		return cmp.Compare(a.Int(), b.Int())
	}
	return cmp.Compare(a.Uint(), b.Uint())
}
