package ports

import (
	"context"
	"io"

	"go.trai.ch/zsb/internal/core/domain"
)

// Toolchain drives one build of the external build system.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Build recreates req.BuildDir and runs one invocation, appending all output to log.
	// A failed build is reported through the returned Invocation, not the error.
	Build(ctx context.Context, req domain.BuildRequest, log io.Writer) (domain.Invocation, error)
}
