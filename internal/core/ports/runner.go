// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/hekit/internal/core/domain"
)

// CommandRunner defines the interface for executing external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and blocks until it exits.
	//
	// An empty command is a no-op success. The returned Result reports whether
	// the exit code was zero. The error is non-nil only when the command could
	// not be parsed or started.
	Run(ctx context.Context, cmd domain.Command) (domain.Result, error)
}
