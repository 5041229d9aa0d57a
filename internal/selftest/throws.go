package selftest

import (
	"errors"
	"fmt"

	"github.com/roach88/xunit/internal/check"
)

// RangeError is raised by the probes below.
type RangeError struct {
	Index int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("index %d out of range", e.Index)
}

// ThrowsSuite covers Throws and ThrowsLike.
type ThrowsSuite struct{}

func isRangeError(err error) bool {
	var re *RangeError
	return errors.As(err, &re)
}

func (s *ThrowsSuite) TestReturnedError() {
	check.Throws(func() error { return &RangeError{Index: 3} }, "returned error")
}

func (s *ThrowsSuite) TestPanic() {
	check.Throws(func() error { panic("boom") }, "plain panic")
	check.ThrowsLike(func() error { panic(&RangeError{Index: 1}) }, isRangeError, "panicked error")
}

func (s *ThrowsSuite) TestPredicate() {
	wrapped := func() error { return fmt.Errorf("lookup: %w", &RangeError{Index: 9}) }
	check.ThrowsLike(wrapped, isRangeError, "wrapped error matches")

	check.ThrowsLike(raises(func() {
		check.ThrowsLike(func() error { return errors.New("other") }, isRangeError, "x")
	}), isFailure, "predicate rejects")
}

func (s *ThrowsSuite) TestNoRaise() {
	check.ThrowsLike(raises(func() {
		check.Throws(func() error { return nil }, "x")
	}), isFailure, "nothing raised")
}

func (s *ThrowsSuite) TestLoggingRestored() {
	before := check.Logging()
	check.Throws(func() error {
		check.False(check.Logging(), "logging is off inside the probe")
		return errors.New("done")
	}, "probe")
	check.Equal(check.Logging(), before, "logging restored")
}
