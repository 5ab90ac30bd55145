package ports

import (
	"context"

	"go.trai.ch/sci/internal/core/domain"
)

// Executor runs command strings through a system shell.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes spec synchronously.
	//
	// A non-zero exit returns the captured result together with an error
	// wrapping domain.ErrCommandFailed.
	Run(ctx context.Context, spec domain.ExecSpec) (*domain.ExecResult, error)
}
