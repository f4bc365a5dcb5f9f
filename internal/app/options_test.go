package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/specialistvlad/burstworld/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recordingObserver struct {
	mu      sync.Mutex
	systems []string
	errs    []error
	ticks   []uint64
}

func (o *recordingObserver) SystemRan(system, plugin string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.systems = append(o.systems, plugin+"/"+system)
	o.errs = append(o.errs, err)
}

func (o *recordingObserver) TickDone(tick uint64, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ticks = append(o.ticks, tick)
}

func TestWithObserver(t *testing.T) {
	boom := errors.New("boom")
	fail := false

	b := newTestBuilder()
	b.AddPlugin(pluginX{})
	b.AddSystemFunc("flaky", func(context.Context, *world.World) error {
		if fail {
			return boom
		}
		return nil
	})

	obs := &recordingObserver{}
	a, err := b.Build(WithObserver(obs), WithObserver(nil))
	require.NoError(t, err)

	require.NoError(t, a.Tick(context.Background()))
	fail = true
	require.ErrorIs(t, a.Tick(context.Background()), boom)

	assert.Equal(t, []string{
		"app.pluginX/SystemA", "app.pluginX/SystemB", "/flaky",
		"app.pluginX/SystemA", "app.pluginX/SystemB", "/flaky",
	}, obs.systems)
	assert.ErrorIs(t, obs.errs[5], boom)
	assert.Equal(t, []uint64{1}, obs.ticks, "failed ticks are not reported as done")
}

func TestWithTracerProvider(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	boom := errors.New("boom")
	b := newTestBuilder()
	b.AddPlugin(pluginX{})
	b.AddSystemFunc("fails", func(context.Context, *world.World) error { return boom })

	a, err := b.Build(WithTracerProvider(tp))
	require.NoError(t, err)
	require.Error(t, a.Tick(context.Background()))

	spans := sr.Ended()
	require.Len(t, spans, 4)

	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"SystemA", "SystemB", "fails", "tick"}, names)

	tick := spans[3]
	assert.Equal(t, codes.Error, tick.Status().Code)
	for _, s := range spans[:3] {
		assert.Equal(t, tick.SpanContext().SpanID(), s.Parent().SpanID(), "%s should be a child of tick", s.Name())
	}
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}
