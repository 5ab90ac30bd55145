// Package main is the entry point for sci.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/cmd/sci/commands"
	"go.trai.ch/sci/internal/app"
	"go.trai.ch/sci/internal/core/domain"
	_ "go.trai.ch/sci/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 0. Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 1. Initialize application components
	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		// Write directly to stderr
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := components.Close(); err != nil {
			components.Logger.Error(err)
		}
	}()

	// 2. Interface - CLI
	cli := commands.New(components.App, components.Logger)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		if errors.Is(err, domain.ErrCommandFailed) {
			return exitCode(err)
		}
		return 1
	}
	return 0
}

// exitCode passes a failed command's status through to the caller.
func exitCode(err error) int {
	for e := err; e != nil; e = errors.Unwrap(e) {
		md, ok := e.(interface{ Metadata() map[string]any })
		if !ok {
			continue
		}
		if code, ok := md.Metadata()["exit_code"].(int); ok && code > 0 {
			return code
		}
	}
	return 1
}
