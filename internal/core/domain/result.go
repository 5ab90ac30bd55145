package domain

// RunStatus is the terminal state of one engine invocation.
type RunStatus string

const (
	// RunStatusExecuted means the command ran and its records were written.
	RunStatusExecuted RunStatus = "executed"
	// RunStatusSkipped means the command was recognised as already done.
	RunStatusSkipped RunStatus = "skipped"
	// RunStatusUntracked means the command ran outside provenance tracking.
	RunStatusUntracked RunStatus = "untracked"
)

// RunResult describes what an invocation did.
type RunResult struct {
	Status     RunStatus
	Mode       Mode
	Invocation CommandInvocation
	// Outputs are the produced paths relative to the workspace root, sorted.
	Outputs []string
	// AuditPaths pairs one record path with each entry of Outputs.
	AuditPaths []string
	Skip       *SkipReason
	Exec       *ExecResult
	Record     *AuditRecord
}
