package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/sci/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/sci/internal/adapters/report"             //nolint:depguard // Wired in app layer
	"go.trai.ch/sci/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/sci/internal/engine/auditor"
	"go.trai.ch/sci/internal/engine/lineage"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			auditor.NodeID,
			lineage.NodeID,
			report.ReporterNodeID,
			report.RendererNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	aud, err := graft.Dep[*auditor.Auditor](ctx)
	if err != nil {
		return nil, err
	}

	reconstructor, err := graft.Dep[*lineage.Reconstructor](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.AuditReporter](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.ImageRenderer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, aud, reconstructor, reporter, renderer, log), nil
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

	recorder, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       app,
		Logger:    log,
		Telemetry: recorder,
	}, nil
}
