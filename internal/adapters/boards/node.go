package boards

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the board index Graft node.
const NodeID graft.ID = "adapter.boards"

func init() {
	graft.Register(graft.Node[ports.BoardIndex]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BoardIndex, error) {
			return NewIndex(), nil
		},
	})
}
