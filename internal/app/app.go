package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/world"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/specialistvlad/burstworld/internal/app"

// App runs a compiled schedule over a world, one tick at a time.
type App struct {
	logger    *slog.Logger
	world     *world.World
	schedule  *Schedule
	runID     string
	tracer    trace.Tracer
	observers []Observer

	mu    sync.Mutex // serializes ticks
	ticks atomic.Uint64
}

// RunOptions control App.Run.
type RunOptions struct {
	// Ticks is the number of ticks to run. Zero or less runs until the
	// context is cancelled.
	Ticks int
	// Interval is the minimum time between tick starts. Zero runs ticks
	// back to back.
	Interval time.Duration
}

func newApp(logger *slog.Logger, w *world.World, s *Schedule, opts ...Option) *App {
	a := &App{
		logger:   logger,
		world:    w,
		schedule: s,
		runID:    uuid.NewString(),
		tracer:   noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// World returns the world the app runs over.
func (a *App) World() *world.World { return a.world }

// Schedule returns the compiled schedule.
func (a *App) Schedule() *Schedule { return a.schedule }

// Ticks returns the number of completed ticks.
func (a *App) Ticks() uint64 { return a.ticks.Load() }

// RunID identifies this app instance in logs.
func (a *App) RunID() string { return a.runID }

// Tick runs every system once, in schedule order. The world's change tick is
// advanced around each system so a system sees changes made by every other
// system since its previous run but not its own writes. The first failing
// system aborts the tick. A tick always runs to completion: cancelling ctx is
// visible to systems but does not stop the schedule part way.
func (a *App) Tick(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := a.ticks.Load() + 1
	logger := a.logger.With("tick", n)
	ctx = ctxlog.WithLogger(ctx, logger)

	ctx, span := a.tracer.Start(ctx, "tick", trace.WithAttributes(
		attribute.Int64("burstworld.tick", int64(n)),
		attribute.String("burstworld.run_id", a.runID),
	))
	defer span.End()

	start := time.Now()
	for _, e := range a.schedule.entries {
		if err := a.runSystem(ctx, e); err != nil {
			logger.Error("System failed.", "system", e.System.Name(), "plugin", e.Plugin, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("tick %d: system %q: %w", n, e.System.Name(), err)
		}
	}

	a.ticks.Store(n)
	d := time.Since(start)
	for _, o := range a.observers {
		o.TickDone(n, d)
	}
	logger.Debug("Tick finished.", "systems", a.schedule.Len(), "duration", d)
	return nil
}

func (a *App) runSystem(ctx context.Context, e Entry) error {
	ctx, span := a.tracer.Start(ctx, e.System.Name(), trace.WithAttributes(
		attribute.String("burstworld.plugin", e.Plugin),
	))
	defer span.End()

	a.world.Advance()
	start := time.Now()
	err := e.System.Run(ctx, a.world)
	d := time.Since(start)
	a.world.Advance()

	for _, o := range a.observers {
		o.SystemRan(e.System.Name(), e.Plugin, d, err)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Run ticks until opts.Ticks ticks have completed or ctx is cancelled.
// Cancellation is checked between ticks and is a clean stop that returns nil.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	logger := a.logger.With("run_id", a.runID)
	logger.Info("App running.", "systems", a.schedule.Len(), "ticks", opts.Ticks, "interval", opts.Interval)

	var ticker *time.Ticker
	if opts.Interval > 0 {
		ticker = time.NewTicker(opts.Interval)
		defer ticker.Stop()
	}

	for i := 0; opts.Ticks <= 0 || i < opts.Ticks; i++ {
		if i > 0 && ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
		if ctx.Err() != nil {
			logger.Info("App stopped.", "ticks", a.Ticks())
			return nil
		}
		if err := a.Tick(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Info("App stopped.", "ticks", a.Ticks())
				return nil
			}
			return err
		}
	}

	logger.Info("App finished.", "ticks", a.Ticks())
	return nil
}
