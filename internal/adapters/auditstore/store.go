// Package auditstore persists audit records as JSON files beside the outputs they describe.
package auditstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Store implements ports.AuditStore on the local file system.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Encode serialises record the way it is stored on disk: 2-space indented
// JSON with a trailing newline and without HTML escaping.
func Encode(record domain.AuditRecord) ([]byte, error) {
	record.Normalize()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, zerr.Wrap(err, "failed to marshal audit record")
	}
	return buf.Bytes(), nil
}

// Read loads and validates the record at path.
func (s *Store) Read(ctx context.Context, path string) (*domain.AuditRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path = filepath.Clean(path)
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrAuditNotFound, "no audit record"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrAuditReadFailed, err.Error()), "path", path)
	}

	var record domain.AuditRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedAuditFile, err.Error()), "path", path)
	}
	record.Normalize()

	if err := record.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return &record, nil
}

// Lookup loads the sibling record of url resolved under root.
// It returns nil, nil when url has no record.
func (s *Store) Lookup(ctx context.Context, root, url string) (*domain.AuditRecord, error) {
	record, err := s.Read(ctx, domain.AuditPathFor(domain.ResolveURL(root, url)))
	if errors.Is(err, domain.ErrAuditNotFound) {
		return nil, nil
	}
	return record, err
}

// Write stores one copy of record beside every output under root.
// Each copy is written to a temporary file and renamed into place. If any
// copy fails, the copies already written are removed again.
func (s *Store) Write(ctx context.Context, root string, record domain.AuditRecord, outputs []string) ([]string, error) {
	if len(outputs) == 0 {
		return nil, domain.ErrNoOutputs
	}

	data, err := Encode(record)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrAuditWriteFailed, err.Error())
	}

	paths := make([]string, len(outputs))
	for i, out := range outputs {
		paths[i] = domain.AuditPathFor(domain.ResolveURL(root, out))
	}

	written := make([]bool, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := writeAtomic(path, data); err != nil {
				return zerr.With(zerr.Wrap(domain.ErrAuditWriteFailed, err.Error()), "path", path)
			}
			written[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for i, ok := range written {
			if ok {
				_ = os.Remove(paths[i])
			}
		}
		return nil, err
	}

	return paths, nil
}

// writeAtomic writes data to a temporary sibling of path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
