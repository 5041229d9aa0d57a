package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/xunit/internal/report"
	"github.com/roach88/xunit/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Prune int // keep only the newest Prune runs; negative disables
}

// LatestRunID selects the most recent run in the show command.
const LatestRunID = "latest"

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List recorded runs, newest first, with their outcome totals.

With --prune N, all but the newest N runs are deleted first.

Examples:
  xunit history
  xunit history --limit 5 --format json
  xunit history --prune 50`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum number of runs (0 for all)")
	cmd.Flags().IntVar(&opts.Prune, "prune", -1, "delete all but the newest N runs")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <run-id|latest>",
		Short: "Show a recorded run",
		Long: `Show the class reports of a recorded run.

Examples:
  xunit show latest
  xunit show 0192f0c4-5b7e-7c3a-9e1d-2f4b6a8c0d1e --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showRun(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func listHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := openHistory(opts.settings().Database, true)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := commandContext(cmd)
	if opts.Prune >= 0 {
		removed, err := st.PruneRuns(ctx, opts.Prune)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to prune runs", err)
		}
		opts.log().Info("pruned run history", "removed", removed, "kept", opts.Prune)
	}

	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Success(runs)
	}
	text := report.NewText(report.ColorEnabled(opts.settings().Color, out.Writer))
	return text.History(out.Writer, runs)
}

func showRun(opts *RootOptions, id string, cmd *cobra.Command) error {
	st, err := openHistory(opts.settings().Database, true)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := commandContext(cmd)
	var run store.Run
	if id == LatestRunID {
		run, err = st.LatestRun(ctx)
	} else {
		run, err = st.ReadRun(ctx, id)
	}
	if errors.Is(err, store.ErrRunNotFound) {
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", id))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	out := opts.formatter(cmd)
	if out.JSON() {
		return out.Respond(StatusOK, run.ID, run)
	}
	text := report.NewText(report.ColorEnabled(opts.settings().Color, out.Writer))
	return text.Run(out.Writer, run)
}

// openHistory opens the history database. Readers require it to exist;
// writers create it along with its directory.
func openHistory(path string, mustExist bool) (*store.Store, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "run history is disabled")
	}
	if mustExist {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("no run history at %s", path))
		}
	} else if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create database directory", err)
		}
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
