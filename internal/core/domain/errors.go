package domain

import "go.trai.ch/zerr"

var (
	// ErrNoCommand is returned when an empty command string is submitted.
	ErrNoCommand = zerr.New("no command specified")

	// ErrCommandFailed is returned when the invoked command exits with a non-zero status.
	ErrCommandFailed = zerr.New("command execution failed")

	// ErrMalformedAuditFile is returned when an existing audit record cannot be parsed.
	ErrMalformedAuditFile = zerr.New("malformed audit file")

	// ErrAuditNotFound is returned when a requested audit record does not exist.
	ErrAuditNotFound = zerr.New("audit file not found")

	// ErrCyclicProvenance is returned when lineage reconstruction revisits a file on its own ancestry.
	ErrCyclicProvenance = zerr.New("cyclic provenance")

	// ErrLocked is returned when an output path is locked by another invocation.
	ErrLocked = zerr.New("output is locked by another invocation")

	// ErrLockReleaseFailed is returned when an advisory lock file cannot be removed.
	ErrLockReleaseFailed = zerr.New("failed to release lock")

	// ErrOutputExists is returned when finalize would overwrite an existing file or record.
	ErrOutputExists = zerr.New("output already exists in working tree")

	// ErrStagingExists is returned when a staging directory is left over from an earlier run.
	ErrStagingExists = zerr.New("staging directory already exists, remove it manually")

	// ErrStagingFailed is returned when the staging directory cannot be prepared.
	ErrStagingFailed = zerr.New("failed to prepare staging directory")

	// ErrFinalizeFailed is returned when outputs cannot be moved into the working tree.
	ErrFinalizeFailed = zerr.New("failed to finalize outputs")

	// ErrInputOutputOverlap is returned when one path is declared both input and output.
	ErrInputOutputOverlap = zerr.New("path declared as both input and output")

	// ErrInputNotFound is returned when a declared input does not exist.
	ErrInputNotFound = zerr.New("input not found")

	// ErrDeclaredOutputMissing is returned when a declared output was not produced.
	ErrDeclaredOutputMissing = zerr.New("declared output was not produced")

	// ErrNoOutputs is returned when an invocation produced no files.
	ErrNoOutputs = zerr.New("command produced no outputs")

	// ErrAuditWriteFailed is returned when an audit record cannot be persisted.
	ErrAuditWriteFailed = zerr.New("failed to write audit file")

	// ErrAuditReadFailed is returned when an audit record cannot be read.
	ErrAuditReadFailed = zerr.New("failed to read audit file")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidConfig is returned when a config value is out of range.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrRendererUnavailable is returned when the external graph layout program is missing.
	ErrRendererUnavailable = zerr.New("graph renderer not available")
)
