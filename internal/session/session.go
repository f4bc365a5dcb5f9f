// Package session owns one process run: it configures logging, loads the
// manifest, resolves the enabled plugins from the catalog, builds the App and
// drives its tick loop next to an optional health check server.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/config"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/world"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Session encapsulates the dependencies, configuration and lifecycle of one run.
type Session struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	model   *config.Model
	catalog *catalog.Catalog
	app     *app.App
	opts    app.RunOptions
	metrics *metrics
	tracer  *sdktrace.TracerProvider
}

// New is the constructor for a session. It returns a ready-to-run session
// with its own isolated logger, catalog and world. When no modules are given
// the compiled-in core modules are used.
func New(ctx context.Context, outW io.Writer, cfg *Config, loader config.Loader, modules ...catalog.Module) (*Session, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	model, converter, err := loader.Load(ctx, cfg.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	logger.Debug("Manifest loaded.", "plugins", model.PluginNames())

	if len(modules) == 0 {
		modules = coreModules
	}
	cat := catalog.New(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "plugins", cat.Names())

	plugins, err := cat.Resolve(ctx, model, converter)
	if err != nil {
		return nil, err
	}
	if len(plugins) == 0 {
		logger.Warn("No plugins enabled, the app will run an empty schedule.", "manifest", cfg.ManifestPath)
	}

	m := newMetrics()
	buildOpts := []app.Option{app.WithObserver(m)}
	var tp *sdktrace.TracerProvider
	if cfg.Trace {
		if tp, err = newTracerProvider(outW); err != nil {
			return nil, err
		}
		buildOpts = append(buildOpts, app.WithTracerProvider(tp))
		logger.Debug("Tracing enabled.")
	}

	b := app.NewBuilder(ctx, world.New(nil))
	b.AddPlugins(plugins...)
	a, err := b.Build(buildOpts...)
	if err != nil {
		if tp != nil {
			_ = tp.Shutdown(ctx)
		}
		return nil, fmt.Errorf("failed to build app: %w", err)
	}

	opts := app.RunOptions{}
	if model.App != nil {
		opts.Ticks = model.App.Ticks
		opts.Interval = model.App.Interval
	}
	if cfg.Ticks > 0 {
		opts.Ticks = cfg.Ticks
	}

	logger.Info("Session ready.", "run_id", a.RunID(), "plugins", len(plugins), "systems", a.Schedule().Len())
	logger.Debug("Compiled schedule.", "systems", a.Schedule().Names())

	return &Session{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		model:   model,
		catalog: cat,
		app:     a,
		opts:    opts,
		metrics: m,
		tracer:  tp,
	}, nil
}

// App returns the compiled app. This is primarily for testing.
func (s *Session) App() *app.App { return s.app }

// Catalog returns the session's plugin catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// RunOptions returns the tick loop options resolved from manifest and flags.
func (s *Session) RunOptions() app.RunOptions { return s.opts }
