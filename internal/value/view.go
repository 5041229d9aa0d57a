package value

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Kind is the structural tag of a value.
type Kind int

const (
	Null Kind = iota
	Primitive
	Sequence
	Keyed
	Reference
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Primitive:
		return "primitive"
	case Sequence:
		return "sequence"
	case Keyed:
		return "keyed"
	case Reference:
		return "reference"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var symbolType = reflect.TypeOf((**Symbol)(nil)).Elem()

// View is a tagged, read-only view of a Go value.
// The zero View is Null.
type View struct {
	kind Kind

	// raw is the inspected value with interfaces unwrapped. It is what
	// identity comparisons look at.
	raw reflect.Value

	// body is the structural value: raw, or the pointee when raw is a
	// non-nil pointer to a struct, map or array.
	body reflect.Value
}

// Inspect classifies v.
func Inspect(v any) View {
	return InspectValue(reflect.ValueOf(v))
}

// InspectValue classifies a reflect.Value. Interface values are unwrapped to
// their dynamic value first.
func InspectValue(rv reflect.Value) View {
	rv = Unwrap(rv)
	if !rv.IsValid() {
		return View{kind: Null}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return View{kind: Null, raw: rv}
		}
		if rv.Type() == symbolType {
			return View{kind: Primitive, raw: rv, body: rv}
		}
		elem := rv.Elem()
		switch elem.Kind() {
		case reflect.Struct, reflect.Map:
			if elem.Kind() == reflect.Map && elem.IsNil() {
				return View{kind: Reference, raw: rv, body: rv}
			}
			return View{kind: Keyed, raw: rv, body: elem}
		case reflect.Array:
			return View{kind: Sequence, raw: rv, body: elem}
		}
		return View{kind: Reference, raw: rv, body: rv}
	case reflect.Map:
		if rv.IsNil() {
			return View{kind: Null, raw: rv}
		}
		return View{kind: Keyed, raw: rv, body: rv}
	case reflect.Struct:
		return View{kind: Keyed, raw: rv, body: rv}
	case reflect.Slice:
		if rv.IsNil() {
			return View{kind: Null, raw: rv}
		}
		return View{kind: Sequence, raw: rv, body: rv}
	case reflect.Array:
		return View{kind: Sequence, raw: rv, body: rv}
	case reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return View{kind: Null, raw: rv}
		}
		return View{kind: Reference, raw: rv, body: rv}
	case reflect.UnsafePointer:
		return View{kind: Reference, raw: rv, body: rv}
	default:
		return View{kind: Primitive, raw: rv, body: rv}
	}
}

// Unwrap strips interface layers from rv.
func Unwrap(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

// Kind returns the structural tag.
func (w View) Kind() Kind {
	return w.kind
}

// Raw returns the inspected value (interfaces unwrapped, pointers kept).
// It is the zero reflect.Value for untyped nil.
func (w View) Raw() reflect.Value {
	return w.raw
}

// Len returns the number of elements of a Sequence or keys of a Keyed value,
// and 0 for every other kind.
func (w View) Len() int {
	switch w.kind {
	case Sequence:
		return w.body.Len()
	case Keyed:
		if w.body.Kind() == reflect.Map {
			return w.body.Len()
		}
		return w.body.NumField()
	}
	return 0
}

// Index returns the i'th element of a Sequence.
func (w View) Index(i int) reflect.Value {
	if w.kind != Sequence {
		panic(fmt.Sprintf("value: Index on %s", w.kind))
	}
	return w.body.Index(i)
}

// Key identifies an entry of a Keyed value. Struct fields are keyed by name;
// map entries by their map key.
type Key struct {
	name string
	rv   reflect.Value
}

// String returns the key rendering used for ordering.
func (k Key) String() string {
	return k.name
}

// Keys returns the keys of a Keyed value sorted by their string rendering.
// It returns nil for other kinds.
func (w View) Keys() []Key {
	if w.kind != Keyed {
		return nil
	}

	var keys []Key
	if w.body.Kind() == reflect.Map {
		keys = make([]Key, 0, w.body.Len())
		for _, mk := range w.body.MapKeys() {
			keys = append(keys, Key{name: keyName(mk), rv: mk})
		}
	} else {
		t := w.body.Type()
		keys = make([]Key, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			keys = append(keys, Key{name: t.Field(i).Name})
		}
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return strings.Compare(a.name, b.name)
	})
	return keys
}

// Lookup returns the entry stored under k. Map entries may be looked up with
// struct field keys (and the other way round) when the map is keyed by a
// string type.
func (w View) Lookup(k Key) (reflect.Value, bool) {
	if w.kind != Keyed {
		return reflect.Value{}, false
	}

	if w.body.Kind() == reflect.Struct {
		if k.rv.IsValid() && Unwrap(k.rv).Kind() != reflect.String {
			return reflect.Value{}, false
		}
		f, ok := w.body.Type().FieldByName(k.name)
		if !ok || len(f.Index) != 1 {
			return reflect.Value{}, false
		}
		return w.body.Field(f.Index[0]), true
	}

	keyType := w.body.Type().Key()
	var mk reflect.Value
	switch {
	case k.rv.IsValid() && k.rv.Type().AssignableTo(keyType):
		mk = k.rv
	case k.rv.IsValid() && k.rv.Type().ConvertibleTo(keyType) && k.rv.Kind() == keyType.Kind():
		mk = k.rv.Convert(keyType)
	case !k.rv.IsValid() && keyType.Kind() == reflect.String:
		mk = reflect.ValueOf(k.name).Convert(keyType)
	default:
		return reflect.Value{}, false
	}

	v := w.body.MapIndex(mk)
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	return v, true
}

func keyName(mk reflect.Value) string {
	mk = Unwrap(mk)
	if !mk.IsValid() {
		return "<nil>"
	}
	if mk.Kind() == reflect.String {
		return mk.String()
	}
	if mk.CanInterface() {
		return fmt.Sprint(mk.Interface())
	}
	return mk.String()
}
