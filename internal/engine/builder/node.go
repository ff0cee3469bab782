package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/adapters/artifacts"
	"go.trai.ch/zsb/internal/adapters/dts"
	"go.trai.ch/zsb/internal/adapters/kconfig"
	"go.trai.ch/zsb/internal/adapters/logger"
	"go.trai.ch/zsb/internal/adapters/west"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			west.NodeID,
			dts.NodeID,
			kconfig.NodeID,
			artifacts.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			toolchain, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			tree, err := graft.Dep[ports.DeviceTree](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.Kconfig](ctx)
			if err != nil {
				return nil, err
			}
			extractor, err := graft.Dep[ports.ArtifactExtractor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(toolchain, tree, reader, extractor, log), nil
		},
	})
}
