package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hekit/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/hekit/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/hekit/internal/adapters/prompt" //nolint:depguard // Wired in app layer
	"go.trai.ch/hekit/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/hekit/internal/adapters/state"  //nolint:depguard // Wired in app layer
	"go.trai.ch/hekit/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.RecipeNodeID,
			state.NodeID,
			shell.NodeID,
			prompt.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	recipeLoader, err := graft.Dep[ports.RecipeLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.InstanceStore](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}

	prompter, err := graft.Dep[ports.Prompter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, recipeLoader, store, runner, prompter, log), nil
}
