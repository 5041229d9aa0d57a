package selftest

import (
	"errors"
	"math"

	"github.com/roach88/xunit/internal/check"
)

// AssertionSuite covers the non-equality primitives, including that each
// one raises a *check.Failure when its condition does not hold.
type AssertionSuite struct{}

func isFailure(err error) bool {
	var f *check.Failure
	return errors.As(err, &f)
}

func raises(fn func()) func() error {
	return func() error {
		fn()
		return nil
	}
}

func (s *AssertionSuite) TestBooleans() {
	check.True(true, "true holds")
	check.False(false, "false holds")
	check.ThrowsLike(raises(func() { check.True(false, "x") }), isFailure, "True(false) fails")
	check.ThrowsLike(raises(func() { check.False(true, "x") }), isFailure, "False(true) fails")
}

func (s *AssertionSuite) TestNaN() {
	check.NaN(math.NaN(), "float NaN")
	check.NaN(complex(math.NaN(), 0), "complex NaN")
	check.NaN([2]float64{0, math.NaN()}, "array holding NaN")
	check.ThrowsLike(raises(func() { check.NaN(1.5, "x") }), isFailure, "number is not NaN")
	check.ThrowsLike(raises(func() { check.NaN("NaN", "x") }), isFailure, "string is not NaN")
}

func (s *AssertionSuite) TestApprox() {
	check.Approx(0.1+0.2, 0.3, 1e-9, "float rounding")
	check.ThrowsLike(raises(func() { check.Approx(1, 2, 1, "x") }), isFailure, "bound is exclusive")
	check.Approx(math.NaN(), 0, 1, "a NaN difference is never out of bounds")
}

func (s *AssertionSuite) TestDistinct() {
	check.Distinct([]int{1, 2, 3}, "unique ints")
	check.Distinct([][]int{{1}, {1}}, "distinct slices with equal contents")
	check.ThrowsLike(raises(func() { check.Distinct([]string{"a", "b", "a"}, "x") }), isFailure, "duplicate string")
}

func (s *AssertionSuite) TestDistinctByKey() {
	type user struct {
		ID   int
		Name string
	}
	users := []user{{1, "ada"}, {2, "bob"}}
	check.DistinctByKey(users, func(u user) int { return u.ID }, "unique ids")

	dup := append(users, user{1, "eve"})
	check.ThrowsLike(raises(func() {
		check.DistinctByKey(dup, func(u user) int { return u.ID }, "x")
	}), isFailure, "shared id")
}

func (s *AssertionSuite) TestFailureMessage() {
	check.ThrowsLike(raises(func() { check.Equal(3, 4, "arithmetic") }), func(err error) bool {
		return err.Error() == "arithmetic: expected 3 to equal 4"
	}, "message embeds operands")
	check.ThrowsLike(raises(func() { check.Fail("stop") }), isFailure, "Fail always raises")
}
