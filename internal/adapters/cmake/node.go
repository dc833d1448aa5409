package cmake

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/ronmichel/rockpile/internal/adapters/logger"
	"github.com/ronmichel/rockpile/internal/core/ports"
)

// NodeID is the unique identifier for the CMake emitter Graft node.
const NodeID graft.ID = "adapter.cmake_emitter"

func init() {
	graft.Register(graft.Node[*Emitter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Emitter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewEmitter(log), nil
		},
	})
}
