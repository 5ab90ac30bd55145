package progrock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/sci/internal/adapters/telemetry/progrock"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
)

type captureWriter struct {
	mu      sync.Mutex
	names   []string
	updates int
	closed  bool
}

func (w *captureWriter) WriteStatus(update *vprogrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates++
	for _, v := range update.Vertexes {
		w.names = append(w.names, v.Name)
	}
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestRecorder_Record(t *testing.T) {
	w := &captureWriter{}
	recorder := progrock.NewRecorder(w)

	ctx, vertex := recorder.Record(context.Background(), "echo hej > out/hej.txt")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, vertex, got)

	_, err := vertex.Stdout().Write([]byte("hej\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("warning\n"))
	require.NoError(t, err)
	vertex.Log(domain.LogLevelInfo, "executed")
	vertex.Complete(nil)

	_, skipped := recorder.Record(context.Background(), "echo hej > out/hej.txt", ports.Internal())
	skipped.Cached()
	skipped.Complete(nil)

	_, failed := recorder.Record(context.Background(), "false")
	failed.Complete(errors.New("exit status 1"))

	require.NoError(t, recorder.Close())
	assert.True(t, w.closed)
	assert.Positive(t, w.updates)
	assert.Contains(t, w.names, "echo hej > out/hej.txt")
	assert.Contains(t, w.names, "false")
}

func TestNew(t *testing.T) {
	recorder := progrock.New()
	_, vertex := recorder.Record(context.Background(), "task")
	vertex.Complete(nil)
	require.NoError(t, recorder.Close())
}

func TestRecorder_Summary(t *testing.T) {
	w := &captureWriter{}
	recorder := progrock.NewRecorder(w)
	assert.Zero(t, recorder.Summary().Total())

	_, ran := recorder.Record(context.Background(), "echo hej > o:hej.txt")
	ran.Complete(nil)

	_, skipped := recorder.Record(context.Background(), "echo hej > o:hej.txt")
	skipped.Cached()
	skipped.Complete(nil)

	_, failed := recorder.Record(context.Background(), "exit 3")
	failed.Complete(errors.New("exit status 3"))

	// Still running, so not counted.
	_, _ = recorder.Record(context.Background(), "sleep 1")

	assert.Equal(t, domain.RunSummary{Executed: 1, Skipped: 1, Failed: 1}, recorder.Summary())
	assert.Equal(t, "1 executed, 1 skipped, 1 failed", recorder.Summary().String())
	assert.Contains(t, w.names, "exit 3")
}
