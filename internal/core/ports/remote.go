package ports

import (
	"context"

	"go.trai.ch/zsb/internal/core/domain"
)

// RemoteResults fetches the most recently published collective result.
//
//go:generate go run go.uber.org/mock/mockgen -source=remote.go -destination=mocks/mock_remote.go -package=mocks
type RemoteResults interface {
	// Latest returns the published version and its collective result.
	Latest(ctx context.Context, baseURL string) (string, domain.CollectiveResult, error)
}
