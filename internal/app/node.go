package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/zsb/internal/adapters/boards"  //nolint:depguard // Wired in app layer
	"go.trai.ch/zsb/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/zsb/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/zsb/internal/adapters/remote"  //nolint:depguard // Wired in app layer
	"go.trai.ch/zsb/internal/adapters/results" //nolint:depguard // Wired in app layer
	"go.trai.ch/zsb/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/zsb/internal/core/ports"
	"go.trai.ch/zsb/internal/engine/builder"
	"go.trai.ch/zsb/internal/engine/matrix"
	"go.trai.ch/zsb/internal/engine/recorder"
	"go.trai.ch/zsb/internal/engine/summary"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			boards.NodeID,
			shell.NodeID,
			results.NodeID,
			remote.NodeID,
			logger.NodeID,
			matrix.NodeID,
			builder.NodeID,
			recorder.NodeID,
			summary.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.CatalogLoader](ctx)
	if err != nil {
		return nil, err
	}

	index, err := graft.Dep[ports.BoardIndex](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ResultStore](ctx)
	if err != nil {
		return nil, err
	}

	client, err := graft.Dep[ports.RemoteResults](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	expander, err := graft.Dep[*matrix.Expander](ctx)
	if err != nil {
		return nil, err
	}

	build, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	rec, err := graft.Dep[*recorder.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	aggregator, err := graft.Dep[*summary.Aggregator](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, index, executor, store, client, log, expander, build, rec, aggregator), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
