package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/sci/internal/ui/output"
	"go.trai.ch/sci/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newShellCmd() *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Read commands line by line and run each one with provenance tracking",
		Long: `Read commands line by line and run each one as "sci run" would.

Lines starting with ! run without tracking. "cd <dir>" changes the workspace
directory. "exit", "quit", "q" or end of input leave the shell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return zerr.Wrap(err, "failed to get working directory")
			}
			s := &shell{cli: c, cmd: cmd, dir: wd, merge: merge}
			return s.loop(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&merge, "merge-audit-files", "m", false, "Embed the audit records of inputs into the new records")
	return cmd
}

type shell struct {
	cli   *CLI
	cmd   *cobra.Command
	dir   string
	merge bool
}

func (s *shell) loop(in io.Reader, out io.Writer) error {
	term := output.New(out)
	prompt := term.String("sci > ").Foreground(term.Color(string(style.Green))).String()

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		if done := s.handle(strings.TrimSpace(scanner.Text())); done {
			return nil
		}
		if err := s.cmd.Context().Err(); err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(out)
	return scanner.Err()
}

// handle runs one line and reports whether the shell should exit.
// Command errors are logged so the session continues.
func (s *shell) handle(line string) bool {
	ctx := s.cmd.Context()
	opts := s.cli.runOptions(s.cmd, s.dir, s.merge)

	var err error
	switch {
	case line == "":
	case line == "exit" || line == "quit" || line == "q":
		return true
	case line == "cd" || strings.HasPrefix(line, "cd "):
		err = s.chdir(strings.TrimSpace(strings.TrimPrefix(line, "cd")))
	case strings.HasPrefix(line, "!"):
		_, err = s.cli.app.RunUntracked(ctx, strings.TrimSpace(line[1:]), opts)
	default:
		_, err = s.cli.app.Run(ctx, line, opts)
	}
	if err != nil {
		s.cli.logger.Error(err)
	}
	return false
}

func (s *shell) chdir(target string) error {
	if target == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return zerr.Wrap(err, "failed to resolve home directory")
		}
		target = home
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.dir, target)
	}
	info, err := os.Stat(target)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "cannot change directory"), "dir", target)
	}
	if !info.IsDir() {
		return zerr.With(zerr.New("not a directory"), "dir", target)
	}
	s.dir = filepath.Clean(target)
	return nil
}
