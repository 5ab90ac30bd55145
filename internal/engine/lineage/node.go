package lineage

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/internal/adapters/auditstore" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/adapters/telemetry"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sci/internal/core/ports"
)

// NodeID is the unique identifier for the reconstructor Graft node.
const NodeID graft.ID = "engine.lineage"

func init() {
	graft.Register(graft.Node[*Reconstructor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{auditstore.NodeID, telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Reconstructor, error) {
			store, err := graft.Dep[ports.AuditStore](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewReconstructor(store, tracer), nil
		},
	})
}
