package app

import (
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Observer receives timing for every system run and completed tick. Calls
// happen on the ticking goroutine, so implementations must be quick.
type Observer interface {
	SystemRan(system, plugin string, d time.Duration, err error)
	TickDone(tick uint64, d time.Duration)
}

// Option configures an App when it is built.
type Option func(*App)

// WithTracerProvider records a span per tick with a child span per system.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *App) {
		if tp != nil {
			a.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithObserver adds o to the app's observers.
func WithObserver(o Observer) Option {
	return func(a *App) {
		if o != nil {
			a.observers = append(a.observers, o)
		}
	}
}
