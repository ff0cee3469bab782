package ports

import "go.trai.ch/zsb/internal/core/domain"

// DeviceTree reads and patches device-tree sources.
//
//go:generate go run go.uber.org/mock/mockgen -source=devicetree.go -destination=mocks/mock_devicetree.go -package=mocks
type DeviceTree interface {
	// RegionNode resolves a linker region name to its memory node, trying the
	// known device-tree aliases when the name itself is not a chosen node.
	RegionNode(dtsPath, region string) (domain.MemoryNode, error)

	// WriteResizeOverlay writes an overlay redefining the reg property of each node.
	WriteResizeOverlay(path string, nodes []domain.MemoryNode) error

	// BoardSource picks the board's own DTS file inside boardDir.
	// It returns an empty string when the directory holds none.
	BoardSource(boardDir, identifier, descriptorPath string) string

	// IncludeChain follows the first non-header include of each file, starting at dtsPath.
	IncludeChain(projectPath, arch, dtsPath string) []string
}
