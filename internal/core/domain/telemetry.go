package domain

import "fmt"

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Span names for the phases of an invocation.
const (
	SpanClassify    = "classify"
	SpanStage       = "stage"
	SpanExecute     = "execute"
	SpanPersist     = "persist"
	SpanFinalize    = "finalize"
	SpanReconstruct = "reconstruct"
)

// RunSummary counts the invocations recorded in one session.
type RunSummary struct {
	Executed int
	Skipped  int
	Failed   int
}

// Total returns the number of recorded invocations.
func (s RunSummary) Total() int {
	return s.Executed + s.Skipped + s.Failed
}

// String renders the summary as a single log line.
func (s RunSummary) String() string {
	return fmt.Sprintf("%d executed, %d skipped, %d failed", s.Executed, s.Skipped, s.Failed)
}
