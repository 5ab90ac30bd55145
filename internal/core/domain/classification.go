package domain

// Mode selects how inputs and outputs of a command are determined.
type Mode string

const (
	// ModeExplicit uses i:/o: markers embedded in the command.
	ModeExplicit Mode = "explicit"
	// ModeImplicit infers inputs from existing paths and discovers outputs after execution.
	ModeImplicit Mode = "implicit"
)

// Role is the direction of a marked path.
type Role string

const (
	// RoleInput marks a path the command reads.
	RoleInput Role = "input"
	// RoleOutput marks a path the command writes.
	RoleOutput Role = "output"
)

// Placeholder is one marker occurrence in a command string.
type Placeholder struct {
	// Text is the literal marker text, e.g. "{i:data.csv}".
	Text string
	// Path is the bare path the marker stands for.
	Path string
	Role Role
}

// SkipReason explains why an invocation was not executed.
type SkipReason struct {
	Path      string
	AuditPath string
	Reason    string
}

// Classification is the result of inspecting a command before execution.
type Classification struct {
	Mode         Mode
	Invocation   CommandInvocation
	Inputs       []FileReference
	Outputs      []FileReference
	Placeholders []Placeholder
	// Skip is set when implicit classification found the command already recorded.
	Skip *SkipReason
}

// InputURLs returns the urls of the classified inputs.
func (c *Classification) InputURLs() []string {
	return urls(c.Inputs)
}

// OutputURLs returns the urls of the declared outputs.
func (c *Classification) OutputURLs() []string {
	return urls(c.Outputs)
}

func urls(refs []FileReference) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.URL)
	}
	return out
}
