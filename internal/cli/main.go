package cli

import (
	"errors"
	"io"

	"github.com/roach88/xunit/internal/runner"
)

// Main runs the CLI over reg with args and returns the process exit code.
// Errors are written to stderr, or to stdout as a JSON envelope when JSON
// output was requested.
func Main(reg *runner.Registry, args []string, stdout, stderr io.Writer) int {
	return execute(&RootOptions{Registry: reg}, args, stdout, stderr)
}

func execute(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, errTestsFailed) {
		return ExitFailure
	}

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		// Flag and argument errors from cobra.
		exitErr = WrapExitError(ExitCommandError, "invalid command", err)
	}

	format := opts.Format
	if opts.cfg != nil {
		format = opts.cfg.Format
	}
	code := ErrCodeCommand
	if exitErr.Code == ExitFailure {
		code = ErrCodeFailure
	}
	out := &OutputFormatter{Format: format, Writer: stdout, ErrWriter: stderr}
	_ = out.Error(code, exitErr.Error(), nil)
	return exitErr.Code
}
