package kconfig

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the Kconfig Graft node.
const NodeID graft.ID = "adapter.kconfig"

func init() {
	graft.Register(graft.Node[ports.Kconfig]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Kconfig, error) {
			return NewReader(), nil
		},
	})
}
