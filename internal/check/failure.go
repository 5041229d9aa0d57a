package check

import (
	"log/slog"
	"sync/atomic"
)

// Failure is raised (via panic) when an assertion does not hold.
type Failure struct {
	// Message is the caller-supplied description.
	Message string

	// Summary renders the operands, e.g. `expected 1 to equal 2`.
	Summary string

	// Operands holds the raw values involved, for diagnostics.
	Operands []any
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if f.Message == "" {
		return f.Summary
	}
	return f.Message + ": " + f.Summary
}

var (
	silenced atomic.Bool
	logger   atomic.Pointer[slog.Logger]
)

// SetLogger sets the diagnostic logger. A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logging reports whether failures are currently logged.
func Logging() bool {
	return !silenced.Load()
}

// SetLogging enables or disables diagnostic logging and returns the previous
// setting, so callers can restore it.
func SetLogging(enabled bool) (previous bool) {
	return !silenced.Swap(!enabled)
}

func diagnostics() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// fail logs and raises a Failure.
func fail(msg, summary string, operands ...any) {
	f := &Failure{Message: msg, Summary: summary, Operands: operands}
	if Logging() {
		diagnostics().Error("assertion failed",
			"message", msg,
			"summary", summary,
			"operands", operands,
		)
	}
	panic(f)
}
