package staging

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"time"

	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/zerr"
)

// ModeLockWait bounds how long a stage waits for another one updating the same input.
const ModeLockWait = 5 * time.Second

// protector keeps inputs read-only while any stage uses them.
//
// The first holder records the original mode and a holder count in
// <input>.au.mode and revokes the write bits. Later holders only raise the
// count. The last one to release restores the mode and removes the file.
// Updates are serialised with the input's lock file, so stages in different
// processes share the count. A process killed while holding leaves the mode
// file behind with the original permissions in it.
type protector struct {
	locker ports.Locker
}

func (p *protector) hold(ctx context.Context, target string) error {
	return p.update(ctx, target, func(st modeState, exists bool) (modeState, error) {
		if exists {
			st.holders++
			return st, nil
		}
		info, err := os.Stat(target)
		if err != nil {
			return st, err
		}
		st = modeState{mode: info.Mode().Perm(), holders: 1}
		if err := writeModeState(target, st); err != nil {
			return st, err
		}
		return st, os.Chmod(target, st.mode&^domain.WriteBits)
	})
}

func (p *protector) release(ctx context.Context, target string) error {
	return p.update(ctx, target, func(st modeState, exists bool) (modeState, error) {
		if !exists {
			return st, nil
		}
		st.holders--
		if st.holders > 0 {
			return st, nil
		}
		if err := os.Chmod(target, st.mode); err != nil && !errors.Is(err, iofs.ErrNotExist) {
			return st, err
		}
		return st, os.Remove(domain.ModePathFor(target))
	})
}

// update applies fn to the recorded state of target under its lock and
// writes the result back while holders remain.
func (p *protector) update(ctx context.Context, target string, fn func(modeState, bool) (modeState, error)) error {
	unlock, err := p.locker.Acquire(ctx, []string{target}, ModeLockWait)
	if err != nil {
		return err
	}

	st, exists, err := readModeState(target)
	if err == nil {
		var next modeState
		next, err = fn(st, exists)
		if err == nil && exists && next.holders > 0 {
			err = writeModeState(target, next)
		}
	}

	return errors.Join(err, unlock())
}

type modeState struct {
	mode    os.FileMode
	holders int
}

func readModeState(target string) (modeState, bool, error) {
	path := domain.ModePathFor(target)
	//nolint:gosec // Path is derived from a staged input
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return modeState{}, false, nil
	}
	if err != nil {
		return modeState{}, false, err
	}

	var mode uint32
	var st modeState
	if _, err := fmt.Sscanf(string(data), "%o %d", &mode, &st.holders); err != nil {
		return modeState{}, false, zerr.With(zerr.Wrap(err, "unreadable mode file"), "path", path)
	}
	st.mode = os.FileMode(mode).Perm()
	return st, true, nil
}

func writeModeState(target string, st modeState) error {
	data := fmt.Sprintf("%04o %d\n", uint32(st.mode), st.holders)
	return os.WriteFile(domain.ModePathFor(target), []byte(data), domain.PrivateFilePerm)
}
