package staging

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/sci/internal/adapters/fs"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/zerr"
)

// Stage is one prepared staging directory.
type Stage struct {
	root   string
	dir    string
	walker *fs.Walker
	digest string
	before map[string]struct{}

	links   []string
	protect *protector
	// held are the inputs this stage keeps write protected.
	held []string
	done bool
}

type move struct {
	from string
	to   string
}

// Dir returns the absolute path of the staging directory.
func (s *Stage) Dir() string {
	return s.dir
}

// InputDigest fingerprints the names and contents of the staged inputs.
func (s *Stage) InputDigest() string {
	return s.digest
}

// CollectNewOutputs lists regular files that appeared since Stage, as sorted
// slash paths relative to Dir. Input links and audit bookkeeping files are not outputs.
func (s *Stage) CollectNewOutputs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	after, err := s.walker.Snapshot(s.dir, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list staging directory"), "path", s.dir)
	}

	outputs := make([]string, 0, len(after))
	for path := range after {
		if _, existed := s.before[path]; existed {
			continue
		}
		if domain.IsBookkeepingPath(path) {
			continue
		}
		outputs = append(outputs, path)
	}
	slices.Sort(outputs)
	return outputs, nil
}

// Finalize moves outputs and their audit records into the working tree and
// removes the staging directory.
//
// It runs in two phases. Prepare checks that no destination file or record
// exists and creates the destination directories. Commit renames every file;
// a failed rename moves the files already committed back into the staging
// directory. A process killed during commit can still leave a partial result.
func (s *Stage) Finalize(ctx context.Context, outputs []string) error {
	if s.done {
		return zerr.With(zerr.Wrap(domain.ErrFinalizeFailed, "stage already closed"), "path", s.dir)
	}

	moves, err := s.prepare(outputs)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := commit(moves); err != nil {
		return err
	}

	return s.cleanup()
}

func (s *Stage) prepare(outputs []string) ([]move, error) {
	moves := make([]move, 0, 2*len(outputs))
	for _, out := range outputs {
		src := filepath.Join(s.dir, filepath.FromSlash(out))
		dst := filepath.Join(s.root, filepath.FromSlash(out))

		if _, err := os.Lstat(src); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrFinalizeFailed, err.Error()), "path", src)
		}
		for _, p := range []string{dst, domain.AuditPathFor(dst)} {
			if _, err := os.Lstat(p); err == nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrOutputExists, "refusing to overwrite"), "path", p)
			}
		}
		if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrFinalizeFailed, err.Error()), "path", filepath.Dir(dst))
		}

		moves = append(moves, move{from: src, to: dst})
		if _, err := os.Lstat(domain.AuditPathFor(src)); err == nil {
			moves = append(moves, move{from: domain.AuditPathFor(src), to: domain.AuditPathFor(dst)})
		}
	}
	return moves, nil
}

func commit(moves []move) error {
	for i, m := range moves {
		if err := os.Rename(m.from, m.to); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = os.Rename(moves[j].to, moves[j].from)
			}
			return zerr.With(zerr.Wrap(domain.ErrFinalizeFailed, err.Error()), "path", m.to)
		}
	}
	return nil
}

// Discard restores the inputs and removes the staging directory with everything in it.
func (s *Stage) Discard() error {
	if s.done {
		return nil
	}
	return s.cleanup()
}

func (s *Stage) cleanup() error {
	s.done = true

	var errs []error
	// Runs after cancellation too, so it does not inherit the caller's context.
	for _, target := range s.held {
		if err := s.protect.release(context.Background(), target); err != nil {
			errs = append(errs, zerr.With(zerr.Wrap(err, "failed to restore input mode"), "path", target))
		}
	}
	for _, link := range s.links {
		if err := os.Remove(link); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			errs = append(errs, zerr.With(zerr.Wrap(err, "failed to unlink input"), "path", link))
		}
	}
	if err := os.RemoveAll(s.dir); err != nil {
		errs = append(errs, zerr.With(zerr.Wrap(err, "failed to remove staging directory"), "path", s.dir))
	}
	return errors.Join(errs...)
}
