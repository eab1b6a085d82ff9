// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/hekit/internal/adapters/config"
	_ "go.trai.ch/hekit/internal/adapters/logger"
	_ "go.trai.ch/hekit/internal/adapters/prompt"
	_ "go.trai.ch/hekit/internal/adapters/shell"
	_ "go.trai.ch/hekit/internal/adapters/state"
	// Register app nodes.
	_ "go.trai.ch/hekit/internal/app"
)
