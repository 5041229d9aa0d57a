package selftest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xunit/internal/runner"
)

func runAll(t *testing.T) []runner.ClassReport {
	t.Helper()
	reg := runner.NewRegistry()
	Register(reg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return runner.New(reg, runner.WithLogger(logger)).RunAll()
}

func TestSelfTestsPass(t *testing.T) {
	reports := runAll(t)
	require.Len(t, reports, 5)

	for _, r := range reports {
		for _, res := range r.Results {
			assert.Contains(t, []runner.Outcome{runner.OutcomePass, runner.OutcomeIgnored}, res.Outcome,
				"%s.%s: %s", res.Class, res.Method, res.StackTrace)
		}
		assert.Equal(t, runner.OutcomePass, r.Outcome(), r.Class)
	}
}

func TestSelfTestsSortedByClass(t *testing.T) {
	reports := runAll(t)

	var names []string
	for _, r := range reports {
		names = append(names, r.Class)
	}
	assert.Equal(t, []string{
		"AssertionSuite",
		"EqualitySuite",
		"LifecycleSuite",
		"StringifySuite",
		"ThrowsSuite",
	}, names)
}

func TestLifecycleSuite_IgnoredMethod(t *testing.T) {
	reg := runner.NewRegistry()
	Register(reg)

	c := reg.Lookup("LifecycleSuite")
	require.NotNil(t, c)
	assert.Equal(t, []string{
		"TestFactoryUsed",
		"TestFreshInstance",
		"TestIgnoredNeverRuns",
		"TestReturnsNil",
	}, c.Methods())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	report := runner.New(reg, runner.WithLogger(logger)).RunClass(c)
	assert.Equal(t, 3, report.Count)
	assert.Equal(t, 3, report.Pass)
	assert.Equal(t, 1, report.Ignored)
}

func TestRegister_FreshDescriptors(t *testing.T) {
	reg := runner.NewRegistry()
	Register(reg)
	Register(reg)

	assert.Len(t, reg.List(), 10, "each call builds fresh descriptors")
	assert.Equal(t, "EqualitySuite", reg.Lookup("EqualitySuite").Name())
}
