package state

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hekit/internal/core/ports"
)

// NodeID is the unique identifier for the instance store Graft node.
const NodeID graft.ID = "adapter.instance_store"

func init() {
	graft.Register(graft.Node[ports.InstanceStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.InstanceStore, error) {
			return NewStore(), nil
		},
	})
}
