package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.trai.ch/sci/internal/adapters/telemetry"
	"go.trai.ch/sci/internal/core/domain"
	"go.trai.ch/sci/internal/core/ports"
	"go.trai.ch/sci/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type logLine struct {
	level domain.LogLevel
	msg   string
}

func recordingVertex(ctrl *gomock.Controller, lines *[]logLine) *mocks.MockVertex {
	vertex := mocks.NewMockVertex(ctrl)
	vertex.EXPECT().Log(gomock.Any(), gomock.Any()).Do(func(level domain.LogLevel, msg string) {
		*lines = append(*lines, logLine{level: level, msg: msg})
	}).AnyTimes()
	return vertex
}

func TestBridge_ReportsPhaseOnVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	var lines []logLine
	vertex := recordingVertex(ctrl, &lines)

	tp := telemetry.NewProvider(telemetry.NewBridge())
	ctx := ports.ContextWithVertex(context.Background(), vertex)

	_, span := tp.Tracer("test").Start(ctx, domain.SpanClassify)
	span.End()

	require.Len(t, lines, 1)
	assert.Equal(t, domain.LogLevelDebug, lines[0].level)
	assert.Contains(t, lines[0].msg, "classify done in")
}

func TestBridge_ReportsFailedPhase(t *testing.T) {
	ctrl := gomock.NewController(t)
	var lines []logLine
	vertex := recordingVertex(ctrl, &lines)

	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(telemetry.NewProvider(telemetry.NewBridge()))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	tracer := telemetry.NewOTelTracer(telemetry.InstrumentationName)
	ctx := ports.ContextWithVertex(context.Background(), vertex)

	_, span := tracer.Start(ctx, domain.SpanExecute, ports.WithAttribute("command", "exit 3"))
	span.RecordError(errors.New("exit status 3"))
	span.End()

	require.Len(t, lines, 1)
	assert.Equal(t, domain.LogLevelError, lines[0].level)
	assert.Contains(t, lines[0].msg, "execute failed after")
	assert.Contains(t, lines[0].msg, "exit status 3")
}

func TestBridge_IgnoresSpansOutsideVertex(t *testing.T) {
	ctrl := gomock.NewController(t)
	var lines []logLine
	vertex := recordingVertex(ctrl, &lines)

	tp := telemetry.NewProvider(telemetry.NewBridge())
	tracer := tp.Tracer("test")

	_, outside := tracer.Start(context.Background(), domain.SpanReconstruct)
	outside.End()

	// Each span reports once, on the vertex it started under.
	ctx := ports.ContextWithVertex(context.Background(), vertex)
	stageCtx, stage := tracer.Start(ctx, domain.SpanStage)
	_, execute := tracer.Start(stageCtx, domain.SpanExecute)
	execute.End()
	stage.End()

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0].msg, "execute done in")
	assert.Contains(t, lines[1].msg, "stage done in")
}

func TestBridge_FlushAndShutdown(t *testing.T) {
	bridge := telemetry.NewBridge()
	require.NoError(t, bridge.ForceFlush(context.Background()))
	require.NoError(t, bridge.Shutdown(context.Background()))
}
