package domain

// StageSpec describes the staging directory to prepare for one invocation.
type StageSpec struct {
	// Root is the workspace the staging directory is created in.
	Root string
	// Prefix names the directory; empty selects StagingPrefix.
	Prefix     string
	Invocation CommandInvocation
	Inputs     []FileReference
}
