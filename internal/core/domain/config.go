package domain

import "time"

// DefaultShell is used when no shell is configured.
const DefaultShell = "bash"

// Config holds workspace settings read from sci.yaml.
type Config struct {
	// Shell runs every command as `<shell> -c <command>`.
	Shell string
	// MergeUpstream embeds upstream records into new records.
	MergeUpstream bool
	// LockTimeout is how long to wait for a held output lock. Zero fails fast.
	LockTimeout time.Duration
	// StagingPrefix names staging directories in the workspace root.
	StagingPrefix string
}

// DefaultConfig returns the settings used when no sci.yaml exists.
func DefaultConfig() Config {
	return Config{
		Shell:         DefaultShell,
		StagingPrefix: StagingPrefix,
	}
}
