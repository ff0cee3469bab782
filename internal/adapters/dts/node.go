package dts

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the device-tree Graft node.
const NodeID graft.ID = "adapter.dts"

func init() {
	graft.Register(graft.Node[ports.DeviceTree]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DeviceTree, error) {
			return New(), nil
		},
	})
}
