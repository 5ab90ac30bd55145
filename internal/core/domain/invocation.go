package domain

import "strings"

// CommandInvocation holds a command as typed and the command actually executed.
// For marker-annotated commands the resolved form has every placeholder replaced by its bare path.
type CommandInvocation struct {
	original string
	resolved string
}

// NewCommandInvocation creates a CommandInvocation.
// An empty resolved command defaults to the original.
func NewCommandInvocation(original, resolved string) CommandInvocation {
	if resolved == "" {
		resolved = original
	}
	return CommandInvocation{original: original, resolved: resolved}
}

// Original returns the command as typed.
func (c CommandInvocation) Original() string {
	return c.original
}

// Resolved returns the command handed to the shell.
func (c CommandInvocation) Resolved() string {
	return c.resolved
}

// Tokens splits the resolved command on single spaces.
// Joining the tokens with a single space reproduces Resolved exactly.
func (c CommandInvocation) Tokens() []string {
	return strings.Split(c.resolved, " ")
}

// IsZero reports whether the invocation carries no command.
func (c CommandInvocation) IsZero() bool {
	return strings.TrimSpace(c.resolved) == ""
}
