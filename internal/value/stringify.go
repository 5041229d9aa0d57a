package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Stringify renders v for failure messages. Strings are JSON-quoted without
// HTML escaping, symbols render as Symbol(description), and everything else
// uses its default fmt rendering.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case *Symbol:
		return x.String()
	case string:
		return quote(x)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return quote(rv.String())
	}
	return fmt.Sprint(v)
}

// StringifyAll renders each value with Stringify.
func StringifyAll(vs []any) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = Stringify(v)
	}
	return out
}

func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Sprintf("%q", s)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
}
