package telemetry

import (
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewProvider returns a TracerProvider that hands every span to processors
// synchronously.
func NewProvider(processors ...sdktrace.SpanProcessor) *sdktrace.TracerProvider {
	opts := make([]sdktrace.TracerProviderOption, 0, len(processors))
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...)
}

// Install registers a provider feeding a new Bridge as the global provider.
func Install() *sdktrace.TracerProvider {
	tp := NewProvider(NewBridge())
	otel.SetTracerProvider(tp)
	return tp
}
