package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hekit/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the workspace config loader Graft node.
	NodeID graft.ID = "adapter.config_loader"
	// RecipeNodeID is the unique identifier for the recipe loader Graft node.
	RecipeNodeID graft.ID = "adapter.recipe_loader"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewWorkspaceLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.RecipeLoader]{
		ID:        RecipeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RecipeLoader, error) {
			return NewRecipeLoader(), nil
		},
	})
}
