package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newRunCmd() *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "run [flags] <command...>",
		Short: "Run a command and record the provenance of its outputs",
		Long: `Run a command and write an audit record next to every file it produces.

Mark paths with i:<path> and o:<path> (or i:{path} and o:{path}) to declare
inputs and outputs. Without markers, existing files named in the command are
treated as inputs and the command runs in a staging directory, where every new
file becomes an output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			_, err := c.app.Run(cmd.Context(), command, c.runOptions(cmd, "", merge))
			return err
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVarP(&merge, "merge-audit-files", "m", false, "Embed the audit records of inputs into the new records")
	return cmd
}
