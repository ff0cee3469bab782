package ports

import "go.trai.ch/zsb/internal/core/domain"

// ResultStore persists per-target result documents.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Put writes the result document at path.
	Put(path string, result domain.BuildResult) error

	// Get reads the result document at path. Returns nil, nil if it does not exist.
	Get(path string) (*domain.BuildResult, error)

	// List loads every result document under dir. Documents that cannot be
	// parsed are reported as malformed instead of failing the listing.
	List(dir string) ([]domain.BuildResult, []domain.Malformed, error)

	// PutCollective writes the collective result document at path.
	PutCollective(path string, collective domain.CollectiveResult) error

	// GetCollective reads the collective result document at path.
	GetCollective(path string) (domain.CollectiveResult, error)
}
