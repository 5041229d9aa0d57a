package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/xunit/internal/check"
	"github.com/roach88/xunit/internal/config"
	"github.com/roach88/xunit/internal/runner"
	"github.com/roach88/xunit/internal/store"
)

// RootOptions holds global flags for all commands, and the settings
// resolved from them before a command runs.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Color      string // "auto" | "always" | "never"
	ConfigPath string
	Database   string
	NoHistory  bool
	Classes    []string // include globs

	// Registry supplies the test classes. Set by the caller.
	Registry *runner.Registry

	// IDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs store.IDGenerator

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand creates the root command for the xunit CLI over reg.
func NewRootCommand(reg *runner.Registry) *cobra.Command {
	opts := &RootOptions{Registry: reg}
	return newRootCommand(opts)
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	if opts.Registry == nil {
		opts.Registry = runner.NewRegistry()
	}

	cmd := &cobra.Command{
		Use:     "xunit",
		Short:   "xunit - a minimal reflective test harness",
		Long:    "Runs the test classes compiled into this binary and keeps a history of their results.",
		Version: runner.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", config.DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", config.DefaultColor, "color output (auto|always|never)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (.yaml, .yml or .cue)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", config.DefaultDatabase, "path to the run history database")
	cmd.PersistentFlags().BoolVar(&opts.NoHistory, "no-history", false, "do not read or record run history")
	cmd.PersistentFlags().StringSliceVar(&opts.Classes, "class", nil, "only use classes matching the glob (repeatable)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewRerunCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))

	return cmd
}

// resolve layers flags that were set explicitly over the loaded config and
// configures logging.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Format = o.Format
	}
	if flags.Changed("color") {
		cfg.Color = o.Color
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.Verbose
	}
	if flags.Changed("db") {
		cfg.Database = o.Database
	}
	if flags.Changed("class") {
		cfg.Include = o.Classes
	}
	if flags.Changed("progress") {
		cfg.Progress, _ = flags.GetBool("progress")
	}
	if o.NoHistory {
		cfg.Database = ""
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid settings", err)
	}
	o.cfg = cfg

	// Configure logging based on verbose flag
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))
	check.SetLogger(o.logger)

	o.logger.Debug("settings resolved",
		"source", cfg.Source,
		"format", cfg.Format,
		"database", cfg.Database,
		"include", cfg.Include,
	)
	return nil
}

// settings returns the resolved config, loading defaults when a command is
// executed without the root command.
func (o *RootOptions) settings() *config.Config {
	if o.cfg == nil {
		o.cfg = config.New()
	}
	return o.cfg
}

func (o *RootOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.Default()
	}
	return o.logger
}

func (o *RootOptions) ids() store.IDGenerator {
	if o.IDs == nil {
		return store.UUIDv7Generator{}
	}
	return o.IDs
}

// selected returns the registered classes that pass the include filter.
func (o *RootOptions) selected() *runner.Registry {
	cfg := o.settings()
	reg := runner.NewRegistry()
	for _, c := range o.Registry.List() {
		if cfg.Included(c.Name()) {
			reg.Register(c)
		}
	}
	return reg
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	cfg := o.settings()
	return &OutputFormatter{
		Format:    cfg.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   cfg.Verbose,
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
