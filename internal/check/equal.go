package check

import (
	"reflect"

	"github.com/roach88/xunit/internal/value"
)

// DirectEqual reports strict equality: identical dynamic types compared with
// ==, identity for reference kinds. Funcs compare by code pointer, so two
// closures of the same literal are indistinguishable.
func DirectEqual(a, b any) bool {
	return direct(reflect.ValueOf(a), reflect.ValueOf(b))
}

// ShallowEqual unwraps one level of structure and compares the contents with
// DirectEqual.
func ShallowEqual(a, b any) bool {
	return structural(reflect.ValueOf(a), reflect.ValueOf(b), direct)
}

// DeepEqual compares structure at unbounded depth.
func DeepEqual(a, b any) bool {
	d := &deepComparer{visited: make(map[visit]bool)}
	return d.equal(reflect.ValueOf(a), reflect.ValueOf(b))
}

type comparer func(a, b reflect.Value) bool

func direct(a, b reflect.Value) bool {
	a, b = value.Unwrap(a), value.Unwrap(b)
	if !a.IsValid() || !b.IsValid() {
		return !a.IsValid() && !b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	case reflect.Func:
		return a.Pointer() == b.Pointer()
	}
	return a.Comparable() && a.Equal(b)
}

// structural implements the shared shallow/deep algorithm; elem compares the
// unwrapped children.
func structural(a, b reflect.Value, elem comparer) bool {
	if direct(a, b) {
		return true
	}

	va, vb := value.InspectValue(a), value.InspectValue(b)
	switch {
	case va.Kind() == value.Sequence && vb.Kind() == value.Sequence:
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !elem(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true

	case va.Kind() == value.Keyed && vb.Kind() == value.Keyed:
		if va.Len() != vb.Len() {
			return false
		}
		for _, k := range va.Keys() {
			bv, ok := vb.Lookup(k)
			if !ok {
				return false
			}
			av, _ := va.Lookup(k)
			if !elem(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

type visit struct {
	a, b   uintptr
	la, lb int
	ta, tb reflect.Type
}

type deepComparer struct {
	visited map[visit]bool
}

func (d *deepComparer) equal(a, b reflect.Value) bool {
	a, b = value.Unwrap(a), value.Unwrap(b)
	if v, ok := refPair(a, b); ok {
		if d.visited[v] {
			return true
		}
		d.visited[v] = true
	}
	return structural(a, b, d.equal)
}

// refPair identifies a pair of non-nil references so a cycle can be detected
// the second time the same pair is compared. Slices sharing a backing array
// differ by length, so the length is part of the key.
func refPair(a, b reflect.Value) (visit, bool) {
	if !isRef(a) || !isRef(b) {
		return visit{}, false
	}
	v := visit{a: a.Pointer(), b: b.Pointer(), ta: a.Type(), tb: b.Type()}
	if a.Kind() == reflect.Slice {
		v.la = a.Len()
	}
	if b.Kind() == reflect.Slice {
		v.lb = b.Len()
	}
	return v, true
}

func isRef(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		return !v.IsNil()
	}
	return false
}
