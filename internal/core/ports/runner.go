// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/pywf/internal/core/domain"
)

// Runner defines the interface for executing external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run prints and executes the given command, blocking until it exits.
	// A non-zero exit status is reported as an error wrapping
	// domain.ErrCommandFailed. In dry-run mode the command is printed but
	// not executed and Run returns nil.
	Run(ctx context.Context, cmd domain.Command) error
}
