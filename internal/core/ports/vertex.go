package ports

import (
	"context"
	"io"

	"go.trai.ch/sci/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=vertex.go -destination=mocks/mock_vertex.go -package=mocks

// Telemetry records one vertex per invocation.
type Telemetry interface {
	// Record starts a vertex named after the command and attaches it to ctx.
	Record(ctx context.Context, name string, opts ...VertexOption) (context.Context, Vertex)
	// Summary counts the vertices recorded so far by outcome.
	Summary() domain.RunSummary
	// Close flushes the recording session.
	Close() error
}

// Vertex is the progress record of one invocation.
type Vertex interface {
	// Stdout returns a writer that receives the command's standard output.
	Stdout() io.Writer
	// Stderr returns a writer that receives the command's standard error.
	Stderr() io.Writer
	// Log records a message at level.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex finished; err is nil on success.
	Complete(err error)
	// Cached marks the vertex as skipped because its outputs are already recorded.
	Cached()
}

// VertexConfig holds configuration for a starting vertex.
type VertexConfig struct {
	Internal bool
}

// VertexOption is a functional option for configuring a vertex.
type VertexOption func(*VertexConfig)

// Internal hides the vertex from user-facing progress output.
func Internal() VertexOption {
	return func(c *VertexConfig) {
		c.Internal = true
	}
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex attached to ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
