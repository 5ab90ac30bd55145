package ports

import (
	"context"

	"go.trai.ch/sci/internal/core/domain"
)

// PathClassifier decides which parts of a command string denote files.
//
//go:generate go run go.uber.org/mock/mockgen -source=classifier.go -destination=mocks/mock_classifier.go -package=mocks
type PathClassifier interface {
	// Classify inspects command relative to the workspace root and returns its
	// mode, inputs, declared outputs and resolved invocation. In implicit mode a
	// command already recorded beside one of its candidate paths comes back
	// with Skip set.
	Classify(ctx context.Context, root, command string) (*domain.Classification, error)
}
