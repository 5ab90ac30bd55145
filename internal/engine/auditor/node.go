package auditor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/internal/adapters/auditstore"         //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/classifier"         //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/lock"               //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/staging"            //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/telemetry"          //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/core/ports"
)

// NodeID is the unique identifier for the auditor Graft node.
const NodeID graft.ID = "engine.auditor"

func init() {
	graft.Register(graft.Node[*Auditor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			classifier.NodeID,
			staging.NodeID,
			shell.NodeID,
			auditstore.NodeID,
			lock.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Auditor, error) {
			cls, err := graft.Dep[ports.PathClassifier](ctx)
			if err != nil {
				return nil, err
			}
			area, err := graft.Dep[ports.StagingArea](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.AuditStore](ctx)
			if err != nil {
				return nil, err
			}
			locker, err := graft.Dep[ports.Locker](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			recorder, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cls, area, executor, store, locker, tracer, recorder, log), nil
		},
	})
}
