// Package lock implements advisory lock files guarding output paths.
package lock

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultPollInterval is how often a held lock is retried while waiting.
const DefaultPollInterval = 50 * time.Millisecond

// Locker implements ports.Locker with `<path>.au.lock` files created exclusively.
type Locker struct {
	// PollInterval is the retry period while waiting.
	PollInterval time.Duration

	owner string
}

// NewLocker creates a Locker with a fresh owner token.
func NewLocker() *Locker {
	return &Locker{
		PollInterval: DefaultPollInterval,
		owner:        uuid.NewString(),
	}
}

// Owner returns the token written into every lock file this Locker creates.
func (l *Locker) Owner() string {
	return l.owner
}

// Acquire locks every path in sorted order, waiting up to wait for each held
// lock. On failure the locks taken so far are released.
//
// Missing parent directories are created for the lock files. Releasing removes
// those directories again when they are still empty.
func (l *Locker) Acquire(ctx context.Context, paths []string, wait time.Duration) (ports.Unlock, error) {
	sorted := make([]string, 0, len(paths))
	for _, p := range paths {
		sorted = append(sorted, domain.LockPathFor(filepath.Clean(p)))
	}
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]heldLock, 0, len(sorted))
	release := func() error {
		var errs []error
		for i := len(held) - 1; i >= 0; i-- {
			if err := os.Remove(held[i].path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, zerr.With(zerr.Wrap(domain.ErrLockReleaseFailed, err.Error()), "lock", held[i].path))
			}
			for _, dir := range held[i].dirs {
				// Fails once the directory holds outputs, which then stay.
				_ = os.Remove(dir)
			}
		}
		held = held[:0]
		return errors.Join(errs...)
	}

	for _, lockPath := range sorted {
		dirs, err := l.acquireOne(ctx, lockPath, wait)
		if err != nil {
			_ = release()
			return nil, err
		}
		held = append(held, heldLock{path: lockPath, dirs: dirs})
	}

	return release, nil
}

type heldLock struct {
	path string
	// dirs were created for the lock file, deepest first.
	dirs []string
}

func (l *Locker) acquireOne(ctx context.Context, lockPath string, wait time.Duration) ([]string, error) {
	dirs, err := mkdirParents(filepath.Dir(lockPath))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create lock directory"), "lock", lockPath)
	}
	fail := func(err error) ([]string, error) {
		for _, dir := range dirs {
			_ = os.Remove(dir)
		}
		return nil, err
	}

	deadline := time.Now().Add(wait)

	for {
		err := l.create(lockPath)
		if err == nil {
			return dirs, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return fail(zerr.With(zerr.Wrap(err, "failed to create lock file"), "lock", lockPath))
		}

		if wait <= 0 || time.Now().After(deadline) {
			return fail(zerr.With(zerr.Wrap(domain.ErrLocked, "lock is held"), "lock", lockPath))
		}

		interval := l.PollInterval
		if interval <= 0 {
			interval = DefaultPollInterval
		}
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fail(zerr.With(zerr.Wrap(ctx.Err(), "interrupted while waiting for lock"), "lock", lockPath))
		case <-timer.C:
		}
	}
}

func (l *Locker) create(lockPath string) error {
	//nolint:gosec // Path is derived from a cleaned output path
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, domain.PrivateFilePerm)
	if err != nil {
		return err
	}
	_, werr := fmt.Fprintf(f, "%s %d\n", l.owner, os.Getpid())
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(lockPath)
		return err
	}
	return nil
}

// mkdirParents creates dir and returns the directories that did not exist, deepest first.
func mkdirParents(dir string) ([]string, error) {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Lstat(d); err == nil {
			break
		}
		missing = append(missing, d)
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, err
	}
	return missing, nil
}
