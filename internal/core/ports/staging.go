package ports

import (
	"context"

	"go.trai.ch/sci/internal/core/domain"
)

// StagingArea creates isolated working directories for invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=staging.go -destination=mocks/mock_staging.go -package=mocks
type StagingArea interface {
	// DirFor returns the staging directory a command would use under root.
	DirFor(root, prefix, command string) string

	// Stage creates the staging directory described by spec and links every
	// input into it read-only. The returned Stage snapshots its contents.
	// A directory left over from an earlier run yields domain.ErrStagingExists.
	Stage(ctx context.Context, spec domain.StageSpec) (Stage, error)
}

// Stage is one prepared staging directory.
type Stage interface {
	// Dir returns the absolute path of the staging directory.
	Dir() string

	// InputDigest fingerprints the names and contents of the staged inputs.
	InputDigest() string

	// CollectNewOutputs lists regular files that appeared since staging,
	// as sorted slash-separated paths relative to Dir.
	CollectNewOutputs(ctx context.Context) ([]string, error)

	// Finalize moves every output and its audit record into the working tree
	// and removes the staging directory.
	Finalize(ctx context.Context, outputs []string) error

	// Discard restores the inputs and removes the staging directory.
	Discard() error
}
