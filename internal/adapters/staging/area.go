// Package staging runs invocations in isolated directories beside the working tree.
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
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
)

// Area implements ports.StagingArea.
type Area struct {
	walker  *fs.Walker
	hasher  *fs.Hasher
	protect *protector
}

// NewArea creates an Area. The locker serialises stages sharing an input.
func NewArea(walker *fs.Walker, hasher *fs.Hasher, locker ports.Locker) *Area {
	return &Area{walker: walker, hasher: hasher, protect: &protector{locker: locker}}
}

// DirFor returns the staging directory of command under root.
func (a *Area) DirFor(root, prefix, command string) string {
	return filepath.Join(root, domain.StagingDirName(prefix, a.hasher.Fingerprint(command)))
}

// Stage creates the staging directory and links every input into it.
//
// Relative inputs are symlinked at the same relative path with an absolute
// target. Write permission is revoked from every input until the last stage
// using it is finalized or discarded.
func (a *Area) Stage(ctx context.Context, spec domain.StageSpec) (ports.Stage, error) {
	root, err := filepath.Abs(spec.Root)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrStagingFailed, err.Error())
	}
	dir := a.DirFor(root, spec.Prefix, spec.Invocation.Original())

	if _, err := os.Lstat(dir); err == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStagingExists, "staging directory left over"), "path", dir)
	}
	if err := os.Mkdir(dir, domain.DirPerm); err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrStagingExists, "staging directory left over"), "path", dir)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStagingFailed, err.Error()), "path", dir)
	}

	s := &Stage{
		root:    root,
		dir:     dir,
		walker:  a.walker,
		protect: a.protect,
	}

	if err := s.linkInputs(ctx, spec.Inputs); err != nil {
		_ = s.Discard()
		return nil, err
	}

	paths := make([]string, 0, len(spec.Inputs))
	for _, in := range spec.Inputs {
		paths = append(paths, domain.ResolveURL(root, in.URL))
	}
	if s.digest, err = a.hasher.ContentDigest(paths); err != nil {
		_ = s.Discard()
		return nil, zerr.Wrap(domain.ErrStagingFailed, err.Error())
	}

	if s.before, err = a.walker.Snapshot(dir, nil); err != nil {
		_ = s.Discard()
		return nil, zerr.With(zerr.Wrap(domain.ErrStagingFailed, err.Error()), "path", dir)
	}

	return s, nil
}

func (s *Stage) linkInputs(ctx context.Context, inputs []domain.FileReference) error {
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := domain.ResolveURL(s.root, in.URL)
		info, err := os.Stat(target)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrInputNotFound, err.Error()), "url", in.URL)
		}

		if !filepath.IsAbs(in.URL) {
			link := filepath.Join(s.dir, filepath.FromSlash(in.URL))
			if err := os.MkdirAll(filepath.Dir(link), domain.DirPerm); err != nil {
				return zerr.With(zerr.Wrap(domain.ErrStagingFailed, err.Error()), "url", in.URL)
			}
			if err := os.Symlink(target, link); err != nil {
				return zerr.With(zerr.Wrap(domain.ErrStagingFailed, err.Error()), "url", in.URL)
			}
			s.links = append(s.links, link)
		}

		if !info.Mode().IsRegular() || slices.Contains(s.held, target) {
			continue
		}
		if err := s.protect.hold(ctx, target); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrStagingFailed, err.Error()), "url", in.URL)
		}
		s.held = append(s.held, target)
	}
	return nil
}
