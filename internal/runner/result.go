package runner

// Outcome classifies a test result.
type Outcome string

const (
	OutcomePass    Outcome = "pass"
	OutcomeIgnored Outcome = "ignored"
	OutcomeFail    Outcome = "fail"
	OutcomeError   Outcome = "error"
)

// ConstructorName is the method name reported when the class factory raises.
const ConstructorName = "constructor"

// Result is the outcome of one test method.
type Result struct {
	Class   string  `json:"class_name"`
	Method  string  `json:"method_name"`
	Outcome Outcome `json:"outcome"`

	// Err is the raised value for fail and error outcomes. It is nil for
	// discovery errors, which only carry Message.
	Err error `json:"-"`

	// Message is Err.Error(), or the discovery error description.
	Message string `json:"error,omitempty"`

	// StackTrace is the trace with harness frames removed, or Err.Error()
	// when no trace was captured.
	StackTrace string `json:"stack_trace,omitempty"`
}

// ClassReport aggregates the results of one class run.
// Count excludes ignored results: Count == Pass+Fail+Error.
type ClassReport struct {
	Class   string   `json:"class_name"`
	Results []Result `json:"results"`
	Count   int      `json:"count"`
	Pass    int      `json:"pass"`
	Fail    int      `json:"fail"`
	Error   int      `json:"error"`
	Ignored int      `json:"ignored"`
}

// Add appends a result and updates the counters.
func (r *ClassReport) Add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Outcome {
	case OutcomePass:
		r.Pass++
		r.Count++
	case OutcomeFail:
		r.Fail++
		r.Count++
	case OutcomeError:
		r.Error++
		r.Count++
	case OutcomeIgnored:
		r.Ignored++
	}
}

// Outcome returns the aggregate outcome of the class: error if any result
// errored, fail if any failed, ignored if every result was ignored, pass
// otherwise.
func (r *ClassReport) Outcome() Outcome {
	switch {
	case r.Error > 0:
		return OutcomeError
	case r.Fail > 0:
		return OutcomeFail
	case r.Count == 0 && r.Ignored > 0:
		return OutcomeIgnored
	}
	return OutcomePass
}
