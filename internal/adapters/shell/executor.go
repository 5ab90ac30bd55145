// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
)

// fallbackShell is used when the default shell is not installed.
const fallbackShell = "sh"

// Executor implements ports.Executor by handing the command string to `<shell> -c`.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes spec.Command synchronously and captures both streams.
//
// The streams are also forwarded live: to the vertex attached to ctx, to
// spec.Stdout and spec.Stderr, or to the logger when neither is present.
// A non-zero exit returns the result together with an error wrapping
// domain.ErrCommandFailed and carrying the exit code.
func (e *Executor) Run(ctx context.Context, spec domain.ExecSpec) (*domain.ExecResult, error) {
	if strings.TrimSpace(spec.Command) == "" {
		return nil, domain.ErrNoCommand
	}

	executable, err := resolveShell(spec.Shell, os.Environ())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCommandFailed, "shell not found"), "shell", spec.Shell)
	}

	cmd := exec.CommandContext(ctx, executable, "-c", spec.Command) //nolint:gosec // user provided command
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	configureProcess(cmd)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = e.streamWriter(ctx, &stdoutBuf, spec.Stdout, true)
	cmd.Stderr = e.streamWriter(ctx, &stderrBuf, spec.Stderr, false)

	result := &domain.ExecResult{StartTime: time.Now()}
	runErr := cmd.Run()
	result.EndTime = time.Now()
	result.Stdout = stdoutBuf.Bytes()
	result.Stderr = stderrBuf.Bytes()

	if runErr == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "command", spec.Command)
	}

	exitCode := -1
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	result.ExitCode = exitCode

	return result, zerr.With(
		zerr.Wrap(domain.ErrCommandFailed, fmt.Sprintf("exit status %d", exitCode)),
		"exit_code", exitCode,
	)
}

// streamWriter tees the captured buffer with the live destination for one stream.
func (e *Executor) streamWriter(ctx context.Context, buf *bytes.Buffer, live io.Writer, stdout bool) io.Writer {
	writers := []io.Writer{buf}

	if v, ok := ports.VertexFromContext(ctx); ok {
		if stdout {
			writers = append(writers, v.Stdout())
		} else {
			writers = append(writers, v.Stderr())
		}
	}

	switch {
	case live != nil:
		writers = append(writers, live)
	case len(writers) == 1 && e.logger != nil:
		level := "info"
		if !stdout {
			level = "warn"
		}
		writers = append(writers, &logWriter{logger: e.logger, level: level})
	}

	return io.MultiWriter(writers...)
}

type logWriter struct {
	logger ports.Logger
	level  string
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if w.level == "info" {
			w.logger.Info(line)
		} else {
			w.logger.Warn(line)
		}
	}
	return len(p), nil
}

// resolveShell finds the shell binary on PATH, falling back to sh for the default shell.
func resolveShell(shell string, env []string) (string, error) {
	if shell == "" {
		shell = domain.DefaultShell
	}
	if filepath.IsAbs(shell) {
		return shell, findExecutable(shell)
	}

	path, err := lookPath(shell, env)
	if err == nil {
		return path, nil
	}
	if shell == domain.DefaultShell {
		return lookPath(fallbackShell, env)
	}
	return "", err
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
