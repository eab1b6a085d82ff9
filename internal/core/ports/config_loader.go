package ports

import "go.trai.ch/hekit/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the workspace configuration from path.
	// An empty path selects the default location, which may be absent.
	Load(path string) (*domain.Workspace, error)
}

// RecipeLoader defines the interface for reading recipe documents.
type RecipeLoader interface {
	// Load reads and decodes the recipe at path, preserving declared component order.
	// Symbolic links are rejected.
	Load(path string) (*domain.RecipeDocument, error)
}
