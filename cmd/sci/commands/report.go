package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/sci/internal/app"
)

const toHTML = "to-html"

func (c *CLI) newReportCmd() *cobra.Command {
	var opts app.ReportOptions

	cmd := &cobra.Command{
		Use:     "report [flags] <audit-file>",
		Aliases: []string{toHTML},
		Short:   "Show the full lineage of an output",
		Long: `Reconstruct every command that contributed to an output from its audit
record and print them as a table in the order they ran.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.CalledAs() == toHTML {
				opts.HTML = true
			}
			opts.Table = cmd.OutOrStdout()
			_, err := c.app.Report(cmd.Context(), args[0], opts)
			return err
		},
	}
	cmd.Flags().BoolVar(&opts.WriteDOT, "dot", false, "Write the lineage graph as <output>.au.dot")
	cmd.Flags().BoolVar(&opts.HTML, "html", false, "Write an HTML report as <output>.au.html")
	return cmd
}
