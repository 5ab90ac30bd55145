package lock_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sci/internal/adapters/lock"
	"go.trai.ch/sci/internal/core/domain"
)

func TestLocker_AcquireRelease(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "hej.txt")
	l := lock.NewLocker()

	unlock, err := l.Acquire(context.Background(), []string{out}, 0)
	require.NoError(t, err)

	content, err := os.ReadFile(domain.LockPathFor(out))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), l.Owner()+" "))

	require.NoError(t, unlock())
	_, err = os.Stat(domain.LockPathFor(out))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, unlock(), "releasing twice is harmless")
}

func TestLocker_FailFast(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	first := lock.NewLocker()
	unlock, err := first.Acquire(context.Background(), []string{b}, 0)
	require.NoError(t, err)
	defer func() { _ = unlock() }()

	second := lock.NewLocker()
	_, err = second.Acquire(context.Background(), []string{a, b}, 0)
	require.ErrorIs(t, err, domain.ErrLocked)

	_, err = os.Stat(domain.LockPathFor(a))
	assert.True(t, os.IsNotExist(err), "partial acquisition must be rolled back")
}

func TestLocker_WaitsForRelease(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x")

	unlock, err := lock.NewLocker().Acquire(context.Background(), []string{out}, 0)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = unlock()
	}()

	waiter := lock.NewLocker()
	waiter.PollInterval = 10 * time.Millisecond
	unlock2, err := waiter.Acquire(context.Background(), []string{out}, 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock2())
}

func TestLocker_TimeoutExpires(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x")

	unlock, err := lock.NewLocker().Acquire(context.Background(), []string{out}, 0)
	require.NoError(t, err)
	defer func() { _ = unlock() }()

	waiter := lock.NewLocker()
	waiter.PollInterval = 10 * time.Millisecond
	_, err = waiter.Acquire(context.Background(), []string{out}, 50*time.Millisecond)
	require.ErrorIs(t, err, domain.ErrLocked)
}

func TestLocker_ContextCancelled(t *testing.T) {
	out := filepath.Join(t.TempDir(), "x")

	unlock, err := lock.NewLocker().Acquire(context.Background(), []string{out}, 0)
	require.NoError(t, err)
	defer func() { _ = unlock() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = lock.NewLocker().Acquire(ctx, []string{out}, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLocker_ReleaseRemovesCreatedDirs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "a", "b", "out.txt")

	unlock, err := lock.NewLocker().Acquire(context.Background(), []string{out}, 0)
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(dir, "a", "b"))

	require.NoError(t, unlock())
	assert.NoDirExists(t, filepath.Join(dir, "a"))
	assert.DirExists(t, dir)
}

func TestLocker_ReleaseKeepsDirsWithOutputs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out", "hej.txt")

	unlock, err := lock.NewLocker().Acquire(context.Background(), []string{out}, 0)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(out, []byte("hej\n"), domain.FilePerm))

	require.NoError(t, unlock())
	assert.FileExists(t, out)
}

func TestLocker_FailedAcquireRemovesCreatedDirs(t *testing.T) {
	dir := t.TempDir()
	held := filepath.Join(dir, "z.txt")
	require.NoError(t, os.WriteFile(domain.LockPathFor(held), []byte("other 1\n"), domain.FilePerm))

	_, err := lock.NewLocker().Acquire(context.Background(), []string{held, filepath.Join(dir, "new", "x.txt")}, 0)
	require.ErrorIs(t, err, domain.ErrLocked)
	assert.NoDirExists(t, filepath.Join(dir, "new"))
}
