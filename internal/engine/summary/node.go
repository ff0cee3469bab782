package summary

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/adapters/results"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the aggregator Graft node.
const NodeID graft.ID = "engine.summary"

func init() {
	graft.Register(graft.Node[*Aggregator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{results.NodeID},
		Run: func(ctx context.Context) (*Aggregator, error) {
			store, err := graft.Dep[ports.ResultStore](ctx)
			if err != nil {
				return nil, err
			}
			return New(store), nil
		},
	})
}
