// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"

	"github.com/google/uuid"
	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
)

// Recorder implements the ports.Telemetry interface using the vito/progrock library.
// Every update also lands on a tape, which Summary reads back.
type Recorder struct {
	w    progrock.Writer
	tape *progrock.Tape
	rec  *progrock.Recorder
}

// New creates a new Recorder writing only to its tape.
func New() *Recorder {
	return NewRecorder(nil)
}

// NewRecorder creates a new Recorder that forwards updates to w as well as its tape.
func NewRecorder(w progrock.Writer) *Recorder {
	tape := progrock.NewTape()
	var out progrock.Writer = tape
	if w != nil {
		out = progrock.MultiWriter{tape, w}
	}
	return &Recorder{
		w:    out,
		tape: tape,
		rec:  progrock.NewRecorder(out),
	}
}

// Record starts a vertex for one invocation of the command name.
// Every call gets its own vertex, so repeated commands are recorded separately.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := &ports.VertexConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	var vopts []progrock.VertexOpt
	if cfg.Internal {
		vopts = append(vopts, progrock.Internal())
	}

	d := digest.FromString(name + "\x00" + uuid.NewString())
	vertex := &Vertex{vertex: r.rec.Vertex(d, name, vopts...)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Summary counts the recorded vertices by outcome. A cached vertex counts as
// skipped and any vertex carrying an error as failed.
func (r *Recorder) Summary() domain.RunSummary {
	var sum domain.RunSummary
	for _, v := range r.tape.Vertices() {
		switch {
		case v.Error != nil:
			sum.Failed++
		case v.Cached:
			sum.Skipped++
		case v.Completed != nil:
			sum.Executed++
		}
	}
	return sum
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	return r.w.Close()
}
