// Package canon encodes values as RFC 8785 canonical JSON.
//
// Canonical output is byte-stable: object keys are sorted by UTF-16 code
// units and nothing is HTML escaped. Digests additionally NFC normalize
// every string, so two runs with the same results share a digest regardless
// of map iteration order or Unicode composition. Marshal leaves string
// content as raised.
package canon

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Marshal returns the canonical JSON form of v. v is first encoded with
// encoding/json, so struct tags and Marshaler implementations apply.
// Non-integer numbers are rejected.
func Marshal(v any) ([]byte, error) {
	return marshal(v, false)
}

func marshal(v any, normalize bool) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canon: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("canon: %w", err)
	}

	e := encoder{normalize: normalize}
	if err := e.encode(tree); err != nil {
		return nil, fmt.Errorf("canon: %w", err)
	}
	return e.buf.Bytes(), nil
}

// Digest returns the hex SHA-256 of domain, a zero byte, and the canonical
// form of v with strings NFC normalized.
func Digest(domain string, v any) (string, error) {
	data, err := marshal(v, true)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

type encoder struct {
	buf       bytes.Buffer
	normalize bool
}

func (e *encoder) encode(v any) error {
	buf := &e.buf
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(val))
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return fmt.Errorf("non-integer number %s", val)
		}
		buf.WriteString(strconv.FormatInt(n, 10))
	case string:
		return e.encodeString(val)
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(elem); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		if e.normalize {
			val = normalizeKeys(val)
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, compareUTF16)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encodeString(k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := e.encode(val[k]); err != nil {
				return fmt.Errorf("%q: %w", k, err)
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unsupported type %T", v)
	}
	return nil
}

// encodeString writes s without HTML escaping and with U+2028/U+2029 left
// literal, NFC normalizing it first when digesting.
func (e *encoder) encodeString(s string) error {
	if e.normalize {
		s = norm.NFC.String(s)
	}
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	e.buf.Write(unescapeSeparators(bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))))
	return nil
}

// normalizeKeys rekeys m by the NFC form of each key so digests sort by the
// normalized keys.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[norm.NFC.String(k)] = v
	}
	return out
}

var (
	lineSep = []byte(`\u2028`)
	paraSep = []byte(`\u2029`)
)

// unescapeSeparators rewrites the \u2028 and \u2029 escapes encoding/json
// emits. Escape pairs are consumed whole, so an escaped backslash followed
// by the text u2028 is left alone.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		rest := data[i:]
		switch {
		case bytes.HasPrefix(rest, lineSep):
			out = append(out, "\u2028"...)
			i += len(lineSep) - 1
		case bytes.HasPrefix(rest, paraSep):
			out = append(out, "\u2029"...)
			i += len(paraSep) - 1
		default:
			out = append(out, data[i], data[i+1])
			i++
		}
	}
	return out
}

// compareUTF16 orders strings by UTF-16 code units, which differs from
// Go's byte order for characters above U+FFFF.
func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
