package remote

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the remote results Graft node.
const NodeID graft.ID = "adapter.remote_results"

func init() {
	graft.Register(graft.Node[ports.RemoteResults]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.RemoteResults, error) {
			return NewClient(nil, RetryInterval), nil
		},
	})
}
