package buildlog

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the report parser Graft node.
const NodeID graft.ID = "adapter.buildlog"

func init() {
	graft.Register(graft.Node[ports.ReportParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ReportParser, error) {
			return NewParser(), nil
		},
	})
}
