package report

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/roach88/xunit/internal/runner"
)

// ColorEnabled resolves a color mode ("auto", "always", "never") for w.
// Auto enables color only when w is a terminal and NO_COLOR is unset.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// palette maps outcomes to colors.
type palette struct {
	pass    *color.Color
	fail    *color.Color
	err     *color.Color
	ignored *color.Color
	dim     *color.Color
	bold    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		pass:    color.New(color.FgGreen),
		fail:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
		ignored: color.New(color.FgCyan),
		dim:     color.New(color.Faint),
		bold:    color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.pass, p.fail, p.err, p.ignored, p.dim, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) outcome(o runner.Outcome) *color.Color {
	switch o {
	case runner.OutcomeFail:
		return p.fail
	case runner.OutcomeError:
		return p.err
	case runner.OutcomeIgnored:
		return p.ignored
	}
	return p.pass
}
