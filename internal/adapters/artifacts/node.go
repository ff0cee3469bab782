package artifacts

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the artifact extractor Graft node.
const NodeID graft.ID = "adapter.artifacts"

func init() {
	graft.Register(graft.Node[ports.ArtifactExtractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactExtractor, error) {
			return NewExtractor(), nil
		},
	})
}
