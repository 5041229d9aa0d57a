package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/roach88/xunit/internal/runner"
	"github.com/roach88/xunit/internal/store"
)

// traceIndent lines traces up under the method name.
const traceIndent = "          "

// Text renders human-readable output.
type Text struct {
	colors palette
}

// NewText returns a text renderer. Color escapes are written only when
// color is true.
func NewText(color bool) *Text {
	return &Text{colors: newPalette(color)}
}

func label(o runner.Outcome) string {
	return fmt.Sprintf("%-7s", strings.ToUpper(string(o)))
}

// Reports writes every class report followed by the summary table and a
// final status line.
func (t *Text) Reports(w io.Writer, reports []runner.ClassReport) error {
	if len(reports) == 0 {
		_, err := fmt.Fprintln(w, "no test classes registered")
		return err
	}

	var b strings.Builder
	for _, r := range reports {
		t.class(&b, r)
		b.WriteString("\n")
	}
	b.WriteString(t.summaryTable(reports))
	b.WriteString("\n")
	b.WriteString(t.status(Sum(reports)))
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Result writes a single result, as produced by a re-run.
func (t *Text) Result(w io.Writer, res runner.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s.%s\n",
		t.colors.outcome(res.Outcome).Sprint(label(res.Outcome)),
		res.Class, res.Method)
	t.trace(&b, res)
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Text) class(b *strings.Builder, r runner.ClassReport) {
	outcome := r.Outcome()
	fmt.Fprintf(b, "%s %s  %d/%d passed",
		t.colors.outcome(outcome).Sprint(label(outcome)),
		t.colors.bold.Sprint(r.Class),
		r.Pass, r.Count)
	if r.Ignored > 0 {
		fmt.Fprintf(b, ", %d ignored", r.Ignored)
	}
	b.WriteString("\n")

	for _, res := range r.Results {
		fmt.Fprintf(b, "  %s %s\n", t.colors.outcome(res.Outcome).Sprint(label(res.Outcome)), res.Method)
		t.trace(b, res)
	}
}

// trace writes the cleaned stack trace of fail and error results, or the
// message when there is no trace.
func (t *Text) trace(b *strings.Builder, res runner.Result) {
	if res.Outcome != runner.OutcomeFail && res.Outcome != runner.OutcomeError {
		return
	}
	body := res.StackTrace
	if body == "" {
		body = res.Message
	}
	if body == "" {
		return
	}
	for i, line := range strings.Split(body, "\n") {
		if i == 0 {
			line = t.colors.outcome(res.Outcome).Sprint(line)
		} else {
			line = t.colors.dim.Sprint(line)
		}
		b.WriteString(traceIndent)
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (t *Text) summaryTable(reports []runner.ClassReport) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"CLASS", "OUTCOME", "COUNT", "PASS", "FAIL", "ERROR", "IGNORED"})
	for _, r := range reports {
		o := r.Outcome()
		tw.AppendRow(table.Row{
			r.Class,
			t.colors.outcome(o).Sprint(string(o)),
			r.Count, r.Pass, r.Fail, r.Error, r.Ignored,
		})
	}
	sum := Sum(reports)
	tw.AppendFooter(table.Row{"TOTAL", "", sum.Count, sum.Pass, sum.Fail, sum.Error, sum.Ignored})
	return tw.Render()
}

func (t *Text) status(sum Totals) string {
	word, c := "OK", t.colors.pass
	if sum.Failed() {
		word, c = "FAILED", t.colors.err
		if sum.Error == 0 {
			c = t.colors.fail
		}
	}
	return fmt.Sprintf("%s %d run: %d passed, %d failed, %d errored, %d ignored",
		c.Sprint(fmt.Sprintf("%-7s", word)),
		sum.Count, sum.Pass, sum.Fail, sum.Error, sum.Ignored)
}

// Listing describes one class for the list command.
type Listing struct {
	Class   string        `json:"class_name"`
	Methods []MethodEntry `json:"methods"`
}

// MethodEntry is one discovered test method.
type MethodEntry struct {
	Name    string `json:"name"`
	Ignored bool   `json:"ignored"`
}

// Listings writes discovered methods per class.
func (t *Text) Listings(w io.Writer, listings []Listing) error {
	var b strings.Builder
	for _, l := range listings {
		fmt.Fprintf(&b, "%s (%d)\n", t.colors.bold.Sprint(l.Class), len(l.Methods))
		for _, m := range l.Methods {
			if m.Ignored {
				fmt.Fprintf(&b, "  %s %s\n", m.Name, t.colors.ignored.Sprint("[ignored]"))
				continue
			}
			fmt.Fprintf(&b, "  %s\n", m.Name)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// History writes a table of stored runs.
func (t *Text) History(w io.Writer, runs []store.RunSummary) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"SEQ", "ID", "KIND", "COUNT", "PASS", "FAIL", "ERROR", "IGNORED", "DIGEST"})
	for _, r := range runs {
		tw.AppendRow(table.Row{
			r.Seq, r.ID, string(r.Kind),
			r.Count, r.Pass, r.Fail, r.Error, r.Ignored,
			shortDigest(r.Digest),
		})
	}
	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}

// Run writes a stored run: a header line, then its reports.
func (t *Text) Run(w io.Writer, run store.Run) error {
	_, err := fmt.Fprintf(w, "run %s  seq %d  kind %s  digest %s\n\n",
		t.colors.bold.Sprint(run.ID), run.Seq, run.Kind, shortDigest(run.Digest))
	if err != nil {
		return err
	}
	return t.Reports(w, run.Reports)
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
