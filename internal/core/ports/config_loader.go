package ports

import "go.trai.ch/zsb/internal/core/domain"

// CatalogLoader defines the interface for loading the build catalog.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type CatalogLoader interface {
	// Load reads and validates the catalog at path.
	Load(path string) (*domain.Catalog, error)
}
