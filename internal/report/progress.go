package report

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/roach88/xunit/internal/runner"
)

// Progress draws a bar that advances once per result.
type Progress struct {
	bar    *progressbar.ProgressBar
	colors palette
	w      io.Writer

	pass, fail, errored, ignored int
}

// NewProgress creates a progress bar expecting total results, drawn on w.
func NewProgress(total int, w io.Writer, color bool) *Progress {
	p := &Progress{colors: newPalette(color), w: w}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(p.describe()),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(color),
		progressbar.OptionSetWriter(w),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return p
}

// Observe records res and advances the bar. It has the runner.Observer
// signature.
func (p *Progress) Observe(res runner.Result) {
	switch res.Outcome {
	case runner.OutcomePass:
		p.pass++
	case runner.OutcomeFail:
		p.fail++
	case runner.OutcomeError:
		p.errored++
	case runner.OutcomeIgnored:
		p.ignored++
	}
	p.bar.Describe(p.describe())
	_ = p.bar.Add(1)
}

// Done returns the number of results observed so far.
func (p *Progress) Done() int {
	return p.pass + p.fail + p.errored + p.ignored
}

// Finish completes the bar. A class stopped by an error leaves results
// unobserved, so the bar is filled regardless.
func (p *Progress) Finish() {
	_ = p.bar.Finish()
}

func (p *Progress) describe() string {
	return fmt.Sprintf("running  %s | %s | %s | %s",
		p.colors.pass.Sprintf("pass %d", p.pass),
		p.colors.fail.Sprintf("fail %d", p.fail),
		p.colors.err.Sprintf("error %d", p.errored),
		p.colors.ignored.Sprintf("ignored %d", p.ignored),
	)
}
