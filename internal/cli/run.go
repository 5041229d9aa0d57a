package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/xunit/internal/canon"
	"github.com/roach88/xunit/internal/report"
	"github.com/roach88/xunit/internal/runner"
	"github.com/roach88/xunit/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Progress bool
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	RunID   string               `json:"run_id,omitempty"`
	Seq     int64                `json:"seq,omitempty"`
	Digest  string               `json:"digest"`
	Totals  report.Totals        `json:"totals"`
	Reports []runner.ClassReport `json:"reports"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every registered test class",
		Long: `Run every registered test class and report the results.

Classes run in registration order and are reported sorted by name. A class
stops at its first error; failures do not stop it. The run is recorded in
the history database unless --no-history is set.

Exit codes:
  0 - All tests passed or were ignored
  1 - One or more tests failed or errored
  2 - Command error (bad settings, database, etc.)

Examples:
  xunit run
  xunit run --class 'Equality*' --progress
  xunit run --format json --no-history`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAll(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

func runAll(opts *RunOptions, cmd *cobra.Command) error {
	cfg := opts.settings()
	logger := opts.log()
	out := opts.formatter(cmd)
	reg := opts.selected()

	runnerOpts := []runner.Option{runner.WithLogger(logger)}

	var bar *report.Progress
	if total := methodCount(reg); cfg.Progress && !out.JSON() && total > 0 {
		errw := cmd.ErrOrStderr()
		bar = report.NewProgress(total, errw, report.ColorEnabled(cfg.Color, errw))
		runnerOpts = append(runnerOpts, runner.WithObserver(bar.Observe))
	}

	logger.Info("running test classes", "classes", len(reg.List()))
	reports := runner.New(reg, runnerOpts...).RunAll()
	if bar != nil {
		bar.Finish()
	}

	result := RunResult{Totals: report.Sum(reports), Reports: reports}

	digest, err := canon.Digest(store.DigestDomain, reports)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to digest reports", err)
	}
	result.Digest = digest

	if cfg.Database != "" {
		run, err := record(opts.RootOptions, cmd, store.Run{
			ID:      opts.ids().Generate(),
			Kind:    store.KindAll,
			Reports: reports,
		})
		if err != nil {
			return err
		}
		result.RunID, result.Seq = run.ID, run.Seq
	}

	if out.JSON() {
		status := StatusOK
		if result.Totals.Failed() {
			status = StatusFail
		}
		if err := out.Respond(status, result.RunID, result); err != nil {
			return err
		}
	} else {
		text := report.NewText(report.ColorEnabled(cfg.Color, out.Writer))
		if err := text.Reports(out.Writer, reports); err != nil {
			return err
		}
		if result.RunID != "" {
			out.VerboseLog("recorded run %s (seq %d)", result.RunID, result.Seq)
		}
	}

	if result.Totals.Failed() {
		return testsFailed()
	}
	return nil
}

func methodCount(reg *runner.Registry) int {
	n := 0
	for _, c := range reg.List() {
		n += len(c.Methods())
	}
	return n
}

// record writes run to the history database.
func record(opts *RootOptions, cmd *cobra.Command, run store.Run) (store.Run, error) {
	st, err := openHistory(opts.settings().Database, false)
	if err != nil {
		return store.Run{}, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			opts.log().Error("error closing database", "error", closeErr)
		}
	}()

	stored, err := st.WriteRun(commandContext(cmd), run)
	if err != nil {
		return store.Run{}, WrapExitError(ExitCommandError, "failed to record run", err)
	}
	opts.log().Info("run recorded",
		"id", stored.ID,
		"seq", stored.Seq,
		"digest", stored.Digest,
	)
	return stored, nil
}
