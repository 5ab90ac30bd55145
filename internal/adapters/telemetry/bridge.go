package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to report the phases of an
// invocation on the progress vertex found in the span's parent context.
// Spans started outside a vertex are ignored.
type Bridge struct {
	mu       sync.Mutex
	vertices map[trace.SpanID]ports.Vertex
}

// NewBridge returns a new Bridge.
func NewBridge() *Bridge {
	return &Bridge{
		vertices: make(map[trace.SpanID]ports.Vertex),
	}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if !sc.IsValid() {
		return
	}

	vertex, ok := ports.VertexFromContext(parent)
	if !ok {
		return
	}

	b.mu.Lock()
	b.vertices[sc.SpanID()] = vertex
	b.mu.Unlock()
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	id := s.SpanContext().SpanID()

	b.mu.Lock()
	vertex, ok := b.vertices[id]
	delete(b.vertices, id)
	b.mu.Unlock()
	if !ok {
		return
	}

	elapsed := s.EndTime().Sub(s.StartTime()).Round(time.Millisecond)
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "phase failed"
		}
		vertex.Log(domain.LogLevelError, fmt.Sprintf("%s failed after %s: %s", s.Name(), elapsed, desc))
		return
	}
	vertex.Log(domain.LogLevelDebug, fmt.Sprintf("%s done in %s", s.Name(), elapsed))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
