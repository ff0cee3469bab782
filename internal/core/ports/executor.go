package ports

import (
	"context"
	"io"

	"go.trai.ch/zsb/internal/core/domain"
)

// Executor defines the interface for running external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes cmd, streaming its combined output to out, and returns its exit code.
	//
	// A non-zero exit code is not an error. The error is reserved for commands
	// that could not be started or were interrupted by ctx.
	Run(ctx context.Context, cmd domain.Command, out io.Writer) (int, error)
}
