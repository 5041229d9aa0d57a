package runner

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
)

// Observer is notified after every result the runner produces.
type Observer func(Result)

// Runner executes the classes of a Registry.
type Runner struct {
	registry *Registry
	logger   *slog.Logger
	observer Observer
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger that receives every caught error with its full
// stack. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver registers fn to be called after each result.
func WithObserver(fn Observer) Option {
	return func(r *Runner) {
		r.observer = fn
	}
}

// New creates a Runner over reg.
func New(reg *Registry, opts ...Option) *Runner {
	if reg == nil {
		reg = NewRegistry()
	}
	r := &Runner{
		registry: reg,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll runs every registered class and returns the reports sorted by
// class name.
func (r *Runner) RunAll() []ClassReport {
	classes := r.registry.List()
	reports := make([]ClassReport, 0, len(classes))
	for _, c := range classes {
		reports = append(reports, r.RunClass(c))
	}
	slices.SortStableFunc(reports, func(a, b ClassReport) int {
		return strings.Compare(a.Class, b.Class)
	})
	return reports
}

// RunClass runs the test methods of c in sorted order. The run stops after
// the first error outcome.
func (r *Runner) RunClass(c *Class) ClassReport {
	report := ClassReport{Class: c.Name(), Results: []Result{}}
	for _, name := range c.Methods() {
		res := r.RunMethod(c, name)
		report.Add(res)
		if res.Outcome == OutcomeError {
			r.logger.Warn("class run stopped after error",
				"class", c.Name(),
				"method", res.Method,
				"remaining", len(c.Methods())-len(report.Results),
			)
			break
		}
	}
	return report
}

// RunOne runs a single method of the class registered under className.
func (r *Runner) RunOne(className, method string) Result {
	c := r.registry.Lookup(className)
	if c == nil {
		return r.emit(Result{
			Class:   className,
			Method:  method,
			Outcome: OutcomeError,
			Message: fmt.Sprintf("no test class named %s", className),
		})
	}
	return r.RunMethod(c, method)
}

// RunMethod runs one named method of c through the full lifecycle.
func (r *Runner) RunMethod(c *Class, name string) Result {
	return r.emit(r.runMethod(c, name))
}

func (r *Runner) runMethod(c *Class, name string) Result {
	c.discover()

	m, ok := c.tests[name]
	if !ok {
		return Result{
			Class:   c.name,
			Method:  name,
			Outcome: OutcomeError,
			Message: fmt.Sprintf("class %s has no test method %s", c.name, name),
		}
	}
	if c.IsIgnored(name) {
		return Result{Class: c.name, Method: name, Outcome: OutcomeIgnored}
	}

	var inst reflect.Value
	if exc := invokeGuarded(func() error {
		v, err := c.factory()
		inst = v
		return err
	}); exc != nil {
		return r.caught(c.name, ConstructorName, "constructor", OutcomeError, exc)
	}

	if c.before != nil {
		if exc := invokeGuarded(bind(inst, *c.before)); exc != nil {
			return r.caught(c.name, name, "before", OutcomeError, exc)
		}
	}

	result := Result{Class: c.name, Method: name, Outcome: OutcomePass}
	if exc := invokeGuarded(bind(inst, m)); exc != nil {
		result = r.caught(c.name, name, "body", OutcomeFail, exc)
	}

	if c.after != nil {
		if exc := invokeGuarded(bind(inst, *c.after)); exc != nil {
			teardown := r.caught(c.name, name, "after", OutcomeError, exc)
			if result.Outcome == OutcomePass {
				result = teardown
			}
		}
	}
	return result
}

// caught logs exc with its untrimmed trace and classifies it.
func (r *Runner) caught(class, method, stage string, outcome Outcome, exc *raised) Result {
	attrs := []any{
		"class", class,
		"method", method,
		"stage", stage,
		"error", exc.err,
	}
	if exc.trace != "" {
		attrs = append(attrs, "stack", exc.trace)
	}
	r.logger.Error("test raised", attrs...)

	return Result{
		Class:      class,
		Method:     method,
		Outcome:    outcome,
		Err:        exc.err,
		Message:    exc.err.Error(),
		StackTrace: exc.stack(),
	}
}

func (r *Runner) emit(res Result) Result {
	if r.observer != nil {
		r.observer(res)
	}
	return res
}
