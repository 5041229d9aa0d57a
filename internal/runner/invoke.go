package runner

import (
	"reflect"
	"runtime/debug"
	"strings"
	"unicode"

	"github.com/roach88/xunit/internal/value"
)

// raised is what one guarded step threw.
type raised struct {
	err error

	// trace is the raw goroutine stack at the point of recovery. It is empty
	// when the step returned an error instead of panicking.
	trace string
}

// stack returns the trace with harness frames removed.
func (r *raised) stack() string {
	return cleanStack(r.trace, r.err)
}

// invokeGuarded runs a func() or func() error and converts a panic or a
// non-nil return into a raised value. Its name marks the boundary between
// user frames and harness frames in captured traces.
func invokeGuarded(fn any) (r *raised) {
	defer func() {
		if v := recover(); v != nil {
			r = &raised{err: value.Recovered(v), trace: string(debug.Stack())}
		}
	}()

	switch f := fn.(type) {
	case func():
		f()
	case func() error:
		if err := f(); err != nil {
			return &raised{err: err}
		}
	}
	return nil
}

var pkgPath = reflect.TypeOf((*Runner)(nil)).Elem().PkgPath()

// Frames written by the harness itself, matched against function lines.
var internalFrames = []string{
	"reflect.",
	pkgPath + ".Define[",
	pkgPath + ".(*Runner).",
	pkgPath + ".(*Class).",
	pkgPath + ".bind(",
}

type frame struct {
	fn  string
	loc string
}

// cleanStack trims a debug.Stack trace down to the frames between the panic
// and the harness. The first line is always err's message. Without a usable
// trace the result is err.Error().
func cleanStack(trace string, err error) string {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	frames := parseFrames(trace)

	end := len(frames)
	for i, f := range frames {
		if strings.HasPrefix(f.fn, pkgPath+".invokeGuarded(") {
			end = i
			break
		}
	}
	for end > 0 && isInternal(frames[end-1].fn) {
		end--
	}

	start := 0
	for i := 0; i < end; i++ {
		if strings.HasPrefix(frames[i].fn, "panic(") {
			start = i + 1
		}
	}
	for start < end && strings.HasPrefix(frames[start].fn, "runtime.") {
		start++
	}

	if start >= end {
		return msg
	}

	var b strings.Builder
	b.WriteString(msg)
	for _, f := range frames[start:end] {
		b.WriteString("\n")
		b.WriteString(f.fn)
		if f.loc != "" {
			b.WriteString("\n")
			b.WriteString(f.loc)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// parseFrames splits a goroutine dump into function/location pairs.
func parseFrames(trace string) []frame {
	var frames []frame
	lines := strings.Split(trace, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" || strings.HasPrefix(line, "goroutine ") || strings.HasPrefix(line, "\t") {
			continue
		}
		f := frame{fn: line}
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], "\t") {
			f.loc = lines[i+1]
			i++
		}
		frames = append(frames, f)
	}
	return frames
}

func isInternal(fn string) bool {
	for _, prefix := range internalFrames {
		if strings.HasPrefix(fn, prefix) {
			return true
		}
	}
	return false
}
