package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/ronmichel/rockpile/internal/adapters/logger"
	"github.com/ronmichel/rockpile/internal/adapters/telemetry/progrock"
	"github.com/ronmichel/rockpile/internal/core/ports"
)

// TracerNodeID is the unique identifier for the tracing adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return progrock.New(log), nil
		},
	})
}
