package ports

import "go.trai.ch/zsb/internal/core/domain"

// ArtifactExtractor locates toolchain outputs and copies them into the artifact tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifacts.go -destination=mocks/mock_artifacts.go -package=mocks
type ArtifactExtractor interface {
	// Locate reports which well-known outputs exist under buildDir.
	Locate(buildDir string) domain.BuildOutputs

	// Collect copies and renames the planned artifacts.
	Collect(plan domain.ArtifactPlan) (domain.CollectedArtifacts, error)
}
