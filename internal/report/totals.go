package report

import "github.com/roach88/xunit/internal/runner"

// Totals sums the counters of a set of class reports.
type Totals struct {
	Classes int `json:"classes"`
	Count   int `json:"count"`
	Pass    int `json:"pass"`
	Fail    int `json:"fail"`
	Error   int `json:"error"`
	Ignored int `json:"ignored"`
}

// Sum totals reports.
func Sum(reports []runner.ClassReport) Totals {
	t := Totals{Classes: len(reports)}
	for _, r := range reports {
		t.Count += r.Count
		t.Pass += r.Pass
		t.Fail += r.Fail
		t.Error += r.Error
		t.Ignored += r.Ignored
	}
	return t
}

// Failed reports whether any result failed or errored.
func (t Totals) Failed() bool {
	return t.Fail > 0 || t.Error > 0
}
