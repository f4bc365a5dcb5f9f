package session

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newTracerProvider exports every tick and system span as JSON to w.
func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)), nil
}

// shutdownTracing flushes pending spans. It is a no-op when tracing is off.
func (s *Session) shutdownTracing(ctx context.Context) {
	if s.tracer == nil {
		return
	}
	if err := s.tracer.Shutdown(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("Tracer shutdown failed.", "error", err)
	}
}
