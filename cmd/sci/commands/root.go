// Package commands implements the CLI commands for sci.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/sci/internal/app"
	"go.trai.ch/sci/internal/build"
	"go.trai.ch/sci/internal/core/ports"
)

// CLI represents the command line interface for sci.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command

	configPath string
	shell      string
	logJSON    bool
}

// New creates a new CLI instance with the given app.
func New(a *app.App, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sci",
		Short:         "Run shell commands and keep an audit trail of what they produce",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to the workspace configuration (default sci.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.shell, "shell", "", "Shell used to run commands (default bash)")
	rootCmd.PersistentFlags().BoolVar(&c.logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		c.app.SetLogJSON(c.logJSON)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newReportCmd())
	rootCmd.AddCommand(c.newShellCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetIO replaces the standard streams of every command. Used for testing.
func (c *CLI) SetIO(in io.Reader, out, errOut io.Writer) {
	c.rootCmd.SetIn(in)
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

func (c *CLI) runOptions(cmd *cobra.Command, root string, merge bool) app.RunOptions {
	return app.RunOptions{
		Root:          root,
		ConfigPath:    c.configPath,
		MergeUpstream: merge,
		Shell:         c.shell,
		Stdout:        cmd.OutOrStdout(),
		Stderr:        cmd.ErrOrStderr(),
	}
}
