package check

import (
	"fmt"

	"github.com/roach88/xunit/internal/value"
)

// Throws fails unless fn raises, either by returning a non-nil error or by
// panicking.
func Throws(fn func() error, msg string) {
	ThrowsLike(fn, nil, msg)
}

// ThrowsLike fails unless fn raises an error for which pred returns true.
// A nil pred accepts any error.
//
// Diagnostic logging is off while fn and pred run and is restored afterwards,
// also when pred itself panics.
func ThrowsLike(fn func() error, pred func(error) bool, msg string) {
	if pred == nil {
		pred = func(error) bool { return true }
	}

	err, matched := probe(fn, pred)
	if err == nil {
		fail(msg, "expected operation to raise an error")
	}
	if !matched {
		fail(msg, fmt.Sprintf("raised %s did not satisfy the predicate", value.Stringify(err)), err)
	}
}

func probe(fn func() error, pred func(error) bool) (err error, matched bool) {
	prev := SetLogging(false)
	defer SetLogging(prev)

	err = capture(fn)
	if err == nil {
		return nil, false
	}
	return err, pred(err)
}

// capture runs fn and returns what it raised.
func capture(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = value.Recovered(r)
		}
	}()
	return fn()
}
