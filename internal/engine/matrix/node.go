package matrix

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/adapters/boards"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the matrix expander Graft node.
const NodeID graft.ID = "engine.matrix"

func init() {
	graft.Register(graft.Node[*Expander]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{boards.NodeID},
		Run: func(ctx context.Context) (*Expander, error) {
			index, err := graft.Dep[ports.BoardIndex](ctx)
			if err != nil {
				return nil, err
			}
			return NewExpander(index), nil
		},
	})
}
