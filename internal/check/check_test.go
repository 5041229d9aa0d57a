package check

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RangeError struct{ msg string }

func (e *RangeError) Error() string { return "range error: " + e.msg }

type TypeError struct{ msg string }

func (e *TypeError) Error() string { return "type error: " + e.msg }

// captureLogs routes diagnostics into a buffer for the duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	prev := SetLogging(true)
	t.Cleanup(func() {
		SetLogger(nil)
		SetLogging(prev)
	})
	return buf
}

// failureOf runs fn and returns the Failure it raised, or nil.
func failureOf(t *testing.T, fn func()) (f *Failure) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			f, ok = r.(*Failure)
			require.True(t, ok, "expected *Failure, got %T: %v", r, r)
		}
	}()
	fn()
	return nil
}

func TestEqual(t *testing.T) {
	captureLogs(t)

	assert.Nil(t, failureOf(t, func() { Equal(1, 1, "ints") }))

	f := failureOf(t, func() { Equal("a", "b", "letters") })
	require.NotNil(t, f)
	assert.Equal(t, "letters", f.Message)
	assert.Equal(t, `letters: expected "a" to equal "b"`, f.Error())
	assert.Equal(t, []any{"a", "b"}, f.Operands)
}

func TestShallowAndDeep(t *testing.T) {
	captureLogs(t)

	a := map[string]any{"a": map[string]any{"x": 1}}
	b := map[string]any{"a": map[string]any{"x": 1}}

	assert.Nil(t, failureOf(t, func() { Deep(a, b, "deep") }))

	f := failureOf(t, func() { Shallow(a, b, "shallow") })
	require.NotNil(t, f)
	assert.Contains(t, f.Error(), "shallow-equal")

	f = failureOf(t, func() { Deep([]int{1}, []int{2}, "deep") })
	require.NotNil(t, f)
	assert.Contains(t, f.Error(), "deep-equal")
}

func TestTrueFalse(t *testing.T) {
	captureLogs(t)

	assert.Nil(t, failureOf(t, func() { True(true, "t") }))
	assert.Nil(t, failureOf(t, func() { False(false, "f") }))
	assert.NotNil(t, failureOf(t, func() { True(false, "t") }))
	assert.NotNil(t, failureOf(t, func() { False(true, "f") }))
}

func TestNaN(t *testing.T) {
	captureLogs(t)

	assert.Nil(t, failureOf(t, func() { NaN(math.NaN(), "nan") }))
	assert.Nil(t, failureOf(t, func() { NaN(float32(math.NaN()), "nan32") }))
	assert.Nil(t, failureOf(t, func() { NaN(complex(math.NaN(), 0), "complex") }))

	f := failureOf(t, func() { NaN(1.0, "one") })
	require.NotNil(t, f)
	assert.Equal(t, "one: expected 1 to be NaN", f.Error())

	assert.NotNil(t, failureOf(t, func() { NaN("NaN", "string") }))
	assert.NotNil(t, failureOf(t, func() { NaN(nil, "nil") }))
}

func TestNaN_ValuesNotEqualToThemselves(t *testing.T) {
	captureLogs(t)

	type reading struct {
		Value float64
	}

	assert.Nil(t, failureOf(t, func() { NaN([1]float64{math.NaN()}, "array") }))
	assert.Nil(t, failureOf(t, func() { NaN(reading{Value: math.NaN()}, "struct") }))
	assert.NotNil(t, failureOf(t, func() { NaN([1]float64{1}, "array") }))
	assert.NotNil(t, failureOf(t, func() { NaN(reading{Value: 1}, "struct") }))

	assert.NotNil(t, failureOf(t, func() { NaN([]float64{math.NaN()}, "slices compare by identity") }))
	assert.NotNil(t, failureOf(t, func() { NaN(struct{ S []int }{}, "not comparable") }))
	assert.NotNil(t, failureOf(t, func() { NaN(func() {}, "func") }))
}

func TestApprox(t *testing.T) {
	captureLogs(t)

	assert.Nil(t, failureOf(t, func() { Approx(5, 5.0000001, 1e-3, "close") }))
	assert.NotNil(t, failureOf(t, func() { Approx(5, 5.1, 1e-3, "far") }))
	assert.NotNil(t, failureOf(t, func() { Approx(0, 1, 1, "boundary is exclusive") }))
	assert.Nil(t, failureOf(t, func() { Approx(math.NaN(), 1, 1, "nan difference is not >= epsilon") }))
	assert.Nil(t, failureOf(t, func() { Approx(math.Inf(1), math.Inf(1), 1, "inf minus inf is nan") }))
	assert.NotNil(t, failureOf(t, func() { Approx(math.Inf(1), 0, 1, "infinite distance") }))
}

func TestDistinct(t *testing.T) {
	captureLogs(t)

	assert.Nil(t, failureOf(t, func() { Distinct([]int{1, 2, 3}, "unique") }))
	assert.Nil(t, failureOf(t, func() { Distinct([]int{}, "empty") }))

	f := failureOf(t, func() { Distinct([]int{1, 2, 2, 3}, "dupes") })
	require.NotNil(t, f)
	assert.Equal(t, "dupes: duplicate 2 in [1 2 2 3]", f.Error())
	assert.Equal(t, 2, f.Operands[0])
}

func TestDistinct_UsesDirectEquality(t *testing.T) {
	captureLogs(t)

	// Equal-looking slices are distinct references.
	assert.Nil(t, failureOf(t, func() { Distinct([][]int{{1}, {1}}, "refs") }))
	assert.Nil(t, failureOf(t, func() { Distinct([]any{1, int64(1)}, "types") }))
}

func TestDistinctByKey(t *testing.T) {
	captureLogs(t)

	words := []string{"apple", "banana", "avocado", "cherry"}
	first := func(s string) byte { return s[0] }

	f := failureOf(t, func() { DistinctByKey(words, first, "initials") })
	require.NotNil(t, f)
	assert.Equal(t, []any{"apple", "avocado", byte('a'), words}, f.Operands)
	assert.Contains(t, f.Error(), `"apple" and "avocado" share key 97`)

	assert.Nil(t, failureOf(t, func() {
		DistinctByKey([]string{"a", "bb", "ccc"}, func(s string) int { return len(s) }, "lengths")
	}))
}

func TestThrows(t *testing.T) {
	captureLogs(t)

	assert.Nil(t, failureOf(t, func() {
		Throws(func() error { return errors.New("boom") }, "returned error")
	}))
	assert.Nil(t, failureOf(t, func() {
		Throws(func() error { panic("boom") }, "panic")
	}))

	f := failureOf(t, func() {
		Throws(func() error { return nil }, "quiet")
	})
	require.NotNil(t, f)
	assert.Equal(t, "quiet: expected operation to raise an error", f.Error())
}

func TestThrowsLike(t *testing.T) {
	captureLogs(t)

	raise := func() error { return &RangeError{msg: "x"} }
	isRange := func(err error) bool {
		var re *RangeError
		return errors.As(err, &re)
	}
	isType := func(err error) bool {
		var te *TypeError
		return errors.As(err, &te)
	}

	assert.Nil(t, failureOf(t, func() { ThrowsLike(raise, isRange, "range") }))

	f := failureOf(t, func() { ThrowsLike(raise, isType, "type") })
	require.NotNil(t, f)
	assert.Contains(t, f.Error(), "did not satisfy the predicate")
}

func TestThrowsLike_AssertionFailureAsControlFlow(t *testing.T) {
	buf := captureLogs(t)

	ThrowsLike(func() error {
		Equal(1, 2, "inner")
		return nil
	}, func(err error) bool {
		var f *Failure
		return errors.As(err, &f) && f.Message == "inner"
	}, "outer")

	assert.Empty(t, buf.String(), "inner failure must not be logged")
	assert.True(t, Logging())
}

func TestThrowsLike_RestoresLoggingWhenPredicatePanics(t *testing.T) {
	captureLogs(t)

	assert.Panics(t, func() {
		ThrowsLike(func() error { return errors.New("x") }, func(error) bool {
			panic("predicate exploded")
		}, "probe")
	})
	assert.True(t, Logging())
}

func TestThrowsLike_NestedProbesRestorePriorState(t *testing.T) {
	captureLogs(t)
	SetLogging(false)

	Throws(func() error {
		Throws(func() error { return errors.New("inner") }, "inner")
		return errors.New("outer")
	}, "outer")

	assert.False(t, Logging())
}

func TestFailureLogging(t *testing.T) {
	buf := captureLogs(t)

	failureOf(t, func() { Equal(1, 2, "logged") })
	assert.Contains(t, buf.String(), "assertion failed")
	assert.Contains(t, buf.String(), "logged")

	buf.Reset()
	prev := SetLogging(false)
	failureOf(t, func() { Equal(1, 2, "silent") })
	SetLogging(prev)
	assert.Empty(t, buf.String())
}

func TestFail(t *testing.T) {
	captureLogs(t)

	f := failureOf(t, func() { Fail("stop") })
	require.NotNil(t, f)
	assert.Equal(t, "stop: explicit failure", f.Error())
}
