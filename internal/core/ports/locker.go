package ports

import (
	"context"
	"time"
)

// Unlock releases a set of locks acquired together.
type Unlock func() error

// Locker guards output paths against concurrent invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=locker.go -destination=mocks/mock_locker.go -package=mocks
type Locker interface {
	// Acquire locks every path in sorted order. Either all locks are held
	// on return or none are. A lock still held after wait yields
	// domain.ErrLocked; a zero wait fails fast.
	Acquire(ctx context.Context, paths []string, wait time.Duration) (Unlock, error)
}
