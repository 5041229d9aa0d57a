package check

import (
	"fmt"
	"math"
	"reflect"

	"github.com/roach88/xunit/internal/value"
)

// Fail raises a Failure unconditionally.
func Fail(msg string) {
	fail(msg, "explicit failure")
}

// Equal fails unless actual and expected are DirectEqual.
func Equal(actual, expected any, msg string) {
	if !DirectEqual(actual, expected) {
		fail(msg, fmt.Sprintf("expected %s to equal %s", value.Stringify(actual), value.Stringify(expected)),
			actual, expected)
	}
}

// Shallow fails unless actual and expected are ShallowEqual.
func Shallow(actual, expected any, msg string) {
	if !ShallowEqual(actual, expected) {
		fail(msg, fmt.Sprintf("expected %s to shallow-equal %s", value.Stringify(actual), value.Stringify(expected)),
			actual, expected)
	}
}

// Deep fails unless actual and expected are DeepEqual.
func Deep(actual, expected any, msg string) {
	if !DeepEqual(actual, expected) {
		fail(msg, fmt.Sprintf("expected %s to deep-equal %s", value.Stringify(actual), value.Stringify(expected)),
			actual, expected)
	}
}

// True fails unless v is true.
func True(v bool, msg string) {
	if !v {
		fail(msg, "expected true, got false", v)
	}
}

// False fails unless v is false.
func False(v bool, msg string) {
	if v {
		fail(msg, "expected false, got true", v)
	}
}

// NaN fails unless v is not equal to itself under DirectEqual: a float or
// complex NaN, or an array or struct holding one.
func NaN(v any, msg string) {
	if !isNaN(reflect.ValueOf(v)) {
		fail(msg, fmt.Sprintf("expected %s to be NaN", value.Stringify(v)), v)
	}
}

// isNaN reports whether rv is a comparable value that fails ==. Reference
// kinds compare by identity and are never NaN.
func isNaN(rv reflect.Value) bool {
	rv = value.Unwrap(rv)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.UnsafePointer, reflect.Slice, reflect.Func:
		return false
	}
	return rv.Comparable() && !rv.Equal(rv)
}

// Approx fails if |x-y| >= epsilon. A NaN difference is never >= epsilon,
// so NaN operands pass.
func Approx(x, y, epsilon float64, msg string) {
	if math.Abs(x-y) >= epsilon {
		fail(msg, fmt.Sprintf("expected %v to be within %v of %v", x, epsilon, y), x, y, epsilon)
	}
}

// Distinct fails on the first element that is DirectEqual to an earlier one.
func Distinct[T any](items []T, msg string) {
	for i := 1; i < len(items); i++ {
		for j := 0; j < i; j++ {
			if DirectEqual(items[j], items[i]) {
				fail(msg, fmt.Sprintf("duplicate %s in %s", value.Stringify(items[i]), value.Stringify(items)),
					items[i], items)
			}
		}
	}
}

// DistinctByKey fails on the first two elements whose derived keys are
// DirectEqual, reporting both elements, the shared key and the sequence.
func DistinctByKey[T, K any](items []T, key func(T) K, msg string) {
	keys := make([]K, len(items))
	for i, item := range items {
		keys[i] = key(item)
	}

	for i := 1; i < len(items); i++ {
		for j := 0; j < i; j++ {
			if DirectEqual(keys[j], keys[i]) {
				fail(msg, fmt.Sprintf("%s and %s share key %s in %s",
					value.Stringify(items[j]), value.Stringify(items[i]),
					value.Stringify(keys[i]), value.Stringify(items)),
					items[j], items[i], keys[i], items)
			}
		}
	}
}
