package ports

import "go.trai.ch/sci/internal/core/domain"

// ConfigLoader defines the interface for loading workspace settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads settings for the workspace rooted at root from path.
	// An empty path selects the default file, whose absence yields
	// domain.DefaultConfig().
	Load(root, path string) (domain.Config, error)
}
