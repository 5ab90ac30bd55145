package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Hasher fingerprints command strings and file contents with xxhash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint returns the 16 hex digit xxhash of s.
func (h *Hasher) Fingerprint(s string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(s))
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ContentDigest hashes the names and contents of paths, in order, into one value.
func (h *Hasher) ContentDigest(paths []string) (string, error) {
	digest := xxhash.New()
	for _, path := range paths {
		sum, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}
		_, _ = digest.WriteString(path)
		_, _ = digest.Write([]byte{0})
		_, _ = fmt.Fprintf(digest, "%016x", sum)
		_, _ = digest.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", digest.Sum64()), nil
}
