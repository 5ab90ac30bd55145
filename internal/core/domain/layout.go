package domain

import (
	"path/filepath"
	"strings"
)

const (
	// AuditSuffix is appended to an output path to name its audit record.
	AuditSuffix = ".au.json"

	// LockSuffix is appended to an output path to name its advisory lock file.
	LockSuffix = ".au.lock"

	// ModeSuffix is appended to a staged input's path to name the file holding
	// its original permissions while stages keep it read-only.
	ModeSuffix = ".au.mode"

	// DotSuffix is appended to a root audit path's output to name the rendered graph description.
	DotSuffix = ".au.dot"

	// HTMLSuffix is appended to a root audit path's output to name the HTML report.
	HTMLSuffix = ".au.html"

	// StagingPrefix is the name prefix of per-invocation staging directories.
	StagingPrefix = ".tmp.sci."

	// ConfigFileName is the name of the optional workspace configuration file.
	ConfigFileName = "sci.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600

	// WriteBits are the permission bits revoked from staged inputs.
	WriteBits = 0o222
)

// AuditPathFor returns the sibling audit record path of the given output path.
func AuditPathFor(path string) string {
	return path + AuditSuffix
}

// LockPathFor returns the advisory lock file path guarding the given output path.
func LockPathFor(path string) string {
	return path + LockSuffix
}

// IsAuditPath reports whether path names an audit record.
func IsAuditPath(path string) bool {
	return strings.HasSuffix(path, AuditSuffix)
}

// ModePathFor returns the file recording the original mode of a write-protected input.
func ModePathFor(path string) string {
	return path + ModeSuffix
}

// IsBookkeepingPath reports whether path is an audit record, lock or mode file
// rather than user data.
func IsBookkeepingPath(path string) bool {
	return IsAuditPath(path) || strings.HasSuffix(path, LockSuffix) || strings.HasSuffix(path, ModeSuffix)
}

// OutputPathFor strips the audit suffix from an audit record path.
// Paths without the suffix are returned unchanged.
func OutputPathFor(auditPath string) string {
	return strings.TrimSuffix(auditPath, AuditSuffix)
}

// StagingDirName returns the staging directory name for a command fingerprint.
func StagingDirName(prefix, fingerprint string) string {
	if prefix == "" {
		prefix = StagingPrefix
	}
	return prefix + fingerprint
}

// ResolveURL maps a file reference url to a filesystem path under root.
// Absolute urls are returned cleaned and unchanged.
func ResolveURL(root, url string) string {
	if filepath.IsAbs(url) {
		return filepath.Clean(url)
	}
	return filepath.Join(root, filepath.FromSlash(url))
}
