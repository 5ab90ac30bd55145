package classifier

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/internal/adapters/auditstore"
	"go.trai.ch/sci/internal/core/ports"
)

// NodeID is the unique identifier for the classifier Graft node.
const NodeID graft.ID = "adapter.classifier"

func init() {
	graft.Register(graft.Node[ports.PathClassifier]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{auditstore.NodeID},
		Run: func(ctx context.Context) (ports.PathClassifier, error) {
			store, err := graft.Dep[ports.AuditStore](ctx)
			if err != nil {
				return nil, err
			}
			return New(store), nil
		},
	})
}
