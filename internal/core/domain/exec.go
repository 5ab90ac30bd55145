package domain

import (
	"io"
	"time"
)

// ExecSpec is a request to run a command string through a system shell.
type ExecSpec struct {
	Command string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Shell is the shell binary; empty selects the default.
	Shell string
	// Stdout and Stderr receive the live streams in addition to the captured copy.
	Stdout io.Writer
	Stderr io.Writer
}

// ExecResult carries the captured streams and timing of a finished command.
type ExecResult struct {
	Stdout    []byte
	Stderr    []byte
	ExitCode  int
	StartTime time.Time
	EndTime   time.Time
}

// Tags returns the audit timing tags for this execution.
func (r *ExecResult) Tags() Tags {
	return NewTags(r.StartTime, r.EndTime)
}
