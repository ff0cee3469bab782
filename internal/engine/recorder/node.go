package recorder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/adapters/artifacts"
	"go.trai.ch/zsb/internal/adapters/buildlog"
	"go.trai.ch/zsb/internal/adapters/dts"
	"go.trai.ch/zsb/internal/adapters/kconfig"
	"go.trai.ch/zsb/internal/adapters/results"
	"go.trai.ch/zsb/internal/core/ports"
)

// NodeID is the unique identifier for the recorder Graft node.
const NodeID graft.ID = "engine.recorder"

func init() {
	graft.Register(graft.Node[*Recorder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			artifacts.NodeID,
			results.NodeID,
			kconfig.NodeID,
			dts.NodeID,
			buildlog.NodeID,
		},
		Run: func(ctx context.Context) (*Recorder, error) {
			extractor, err := graft.Dep[ports.ArtifactExtractor](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.ResultStore](ctx)
			if err != nil {
				return nil, err
			}
			reader, err := graft.Dep[ports.Kconfig](ctx)
			if err != nil {
				return nil, err
			}
			tree, err := graft.Dep[ports.DeviceTree](ctx)
			if err != nil {
				return nil, err
			}
			report, err := graft.Dep[ports.ReportParser](ctx)
			if err != nil {
				return nil, err
			}
			return New(extractor, store, reader, tree, report), nil
		},
	})
}
