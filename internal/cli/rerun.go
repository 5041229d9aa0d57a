package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/xunit/internal/report"
	"github.com/roach88/xunit/internal/runner"
	"github.com/roach88/xunit/internal/store"
)

// RerunResult is the JSON payload of the rerun command.
type RerunResult struct {
	RunID  string        `json:"run_id,omitempty"`
	Seq    int64         `json:"seq,omitempty"`
	Result runner.Result `json:"result"`
}

// NewRerunCommand creates the rerun command.
func NewRerunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rerun <class> <method>",
		Short: "Run a single test method",
		Long: `Run one test method of one class through the full lifecycle:
factory, Before, the method, After.

An unknown class or method is reported as an error result, not a command
error. The result is recorded in the history database as a single-test run.

Examples:
  xunit rerun EqualitySuite TestDeepCycles
  xunit rerun EqualitySuite TestDeepCycles --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rerun(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func rerun(opts *RootOptions, className, method string, cmd *cobra.Command) error {
	cfg := opts.settings()
	out := opts.formatter(cmd)

	opts.log().Info("running single test", "class", className, "method", method)
	res := runner.New(opts.Registry, runner.WithLogger(opts.log())).RunOne(className, method)

	result := RerunResult{Result: res}
	if cfg.Database != "" {
		single := runner.ClassReport{Class: className, Results: []runner.Result{}}
		single.Add(res)

		run, err := record(opts, cmd, store.Run{
			ID:      opts.ids().Generate(),
			Kind:    store.KindOne,
			Reports: []runner.ClassReport{single},
		})
		if err != nil {
			return err
		}
		result.RunID, result.Seq = run.ID, run.Seq
	}

	failed := res.Outcome == runner.OutcomeFail || res.Outcome == runner.OutcomeError

	if out.JSON() {
		status := StatusOK
		if failed {
			status = StatusFail
		}
		if err := out.Respond(status, result.RunID, result); err != nil {
			return err
		}
	} else {
		text := report.NewText(report.ColorEnabled(cfg.Color, out.Writer))
		if err := text.Result(out.Writer, res); err != nil {
			return err
		}
	}

	if failed {
		return testsFailed()
	}
	return nil
}
