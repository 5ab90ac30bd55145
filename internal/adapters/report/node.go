package report

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sci/internal/core/ports"
)

const (
	// ReporterNodeID is the unique identifier for the reporter Graft node.
	ReporterNodeID graft.ID = "adapter.reporter"
	// RendererNodeID is the unique identifier for the image renderer Graft node.
	RendererNodeID graft.ID = "adapter.image_renderer"
)

func init() {
	graft.Register(graft.Node[ports.AuditReporter]{
		ID:        ReporterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.AuditReporter, error) {
			return NewReporter(), nil
		},
	})

	graft.Register(graft.Node[ports.ImageRenderer]{
		ID:        RendererNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImageRenderer, error) {
			return NewGraphvizRenderer(), nil
		},
	})
}
