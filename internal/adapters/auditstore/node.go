package auditstore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/internal/core/ports"
)

// NodeID is the unique identifier for the audit store Graft node.
const NodeID graft.ID = "adapter.audit_store"

func init() {
	graft.Register(graft.Node[ports.AuditStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AuditStore, error) {
			return NewStore(), nil
		},
	})
}
