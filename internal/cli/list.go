package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/xunit/internal/report"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test methods",
		Long: `List every registered class that passes the include filter, with its
discovered test methods in run order. Ignored methods are marked.

Examples:
  xunit list
  xunit list --class 'Throws*' --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listClasses(rootOpts, cmd)
		},
	}

	return cmd
}

func listClasses(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	classes := opts.selected().List()
	listings := make([]report.Listing, 0, len(classes))
	for _, c := range classes {
		l := report.Listing{Class: c.Name(), Methods: []report.MethodEntry{}}
		for _, m := range c.Methods() {
			l.Methods = append(l.Methods, report.MethodEntry{Name: m, Ignored: c.IsIgnored(m)})
		}
		listings = append(listings, l)
	}

	if out.JSON() {
		return out.Success(listings)
	}
	text := report.NewText(report.ColorEnabled(opts.settings().Color, out.Writer))
	return text.Listings(out.Writer, listings)
}
