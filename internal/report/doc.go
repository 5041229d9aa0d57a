// Package report renders run results for terminals.
//
// Text output shows one summary line per class, colored by the class's
// aggregate outcome, followed by each result and, for fail and error
// results, the cleaned stack trace. A table of per-class counts closes the
// report. Color is opt-in per renderer so output stays byte-stable when it
// is off.
package report
