package staging

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/internal/adapters/fs"
	"go.trai.ch/sci/internal/adapters/lock"
	"go.trai.ch/sci/internal/core/ports"
)

// NodeID is the unique identifier for the staging area Graft node.
const NodeID graft.ID = "adapter.staging"

func init() {
	graft.Register(graft.Node[ports.StagingArea]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.WalkerNodeID, fs.HasherNodeID, lock.NodeID},
		Run: func(ctx context.Context) (ports.StagingArea, error) {
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[*fs.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			locker, err := graft.Dep[ports.Locker](ctx)
			if err != nil {
				return nil, err
			}
			return NewArea(walker, hasher, locker), nil
		},
	})
}
