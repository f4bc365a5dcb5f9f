package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/typereg"
	"github.com/specialistvlad/burstworld/internal/world"
)

// Builder accumulates plugins and systems and compiles them into an App.
// It is not safe for concurrent use.
type Builder struct {
	ctx    context.Context
	logger *slog.Logger
	world  *world.World
	types  *typereg.Registry

	graph   *registrationGraph
	stack   []*pluginRecord
	entries []Entry

	err      error
	consumed bool
}

// NewBuilder returns an empty builder over w. The logger is taken from ctx.
func NewBuilder(ctx context.Context, w *world.World) *Builder {
	if w == nil {
		w = world.New(nil)
	}
	return &Builder{
		ctx:    ctx,
		logger: ctxlog.FromContext(ctx),
		world:  w,
		types:  w.Types(),
		graph:  newRegistrationGraph(),
	}
}

func (b *Builder) mustAccumulate(op string) {
	if b.consumed {
		panic(fmt.Errorf("%s: %w", op, ErrBuilderConsumed))
	}
}

// current returns the plugin being built, or nil at the root.
func (b *Builder) current() *pluginRecord {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// AddPlugin registers p and runs its Build step. Registering a plugin type
// that is already registered is a no-op unless the plugin allows multiple
// registrations. A plugin that re-enters its own registration records a
// *CycleError which Build returns.
func (b *Builder) AddPlugin(p Plugin) *Builder {
	b.mustAccumulate("add plugin")
	if b.err != nil {
		return b
	}
	if isNilPlugin(p) {
		b.fail(fmt.Errorf("add plugin: %w", ErrNilPlugin))
		return b
	}

	key := Identity(b.types, p)
	name, _ := b.types.Lookup(key)
	parent := b.current()

	for i, rec := range b.stack {
		if rec.key != key {
			continue
		}
		chain := make([]typereg.TypeKey, 0, len(b.stack)-i+1)
		for _, r := range b.stack[i:] {
			chain = append(chain, r.key)
		}
		err := newCycleError(b.types, append(chain, key))
		b.logger.Error("Cyclic plugin registration detected.", "chain", err.Names)
		b.fail(err)
		return b
	}

	multi := allowsMultiple(p)
	if !multi && b.graph.has(key) {
		b.logger.Debug("Plugin already registered, skipping.", "plugin", name)
		b.graph.link(parent, b.graph.first(key))
		return b
	}

	b.logger.Debug("Registering plugin.", "plugin", name, "depth", len(b.stack))
	rec := b.graph.add(key, name, multi)
	b.graph.link(parent, rec)

	b.stack = append(b.stack, rec)
	defer func() { b.stack = b.stack[:len(b.stack)-1] }()

	p.Build(b)
	return b
}

// AddPlugins registers each plugin in order.
func (b *Builder) AddPlugins(ps ...Plugin) *Builder {
	for _, p := range ps {
		b.AddPlugin(p)
	}
	return b
}

// AddSystem appends s to the schedule, attributed to the plugin currently
// building.
func (b *Builder) AddSystem(s System) *Builder {
	b.mustAccumulate("add system")
	if b.err != nil {
		return b
	}
	if s == nil {
		b.fail(fmt.Errorf("add system: %w: nil", ErrInvalidSystem))
		return b
	}

	var owner string
	if rec := b.current(); rec != nil {
		owner = rec.name
		rec.systems = append(rec.systems, s.Name())
	}
	b.logger.Debug("Registering system.", "system", s.Name(), "plugin", owner)
	b.entries = append(b.entries, Entry{System: s, Plugin: owner})
	return b
}

// AddSystemFunc is shorthand for AddSystem(Func(name, fn)).
func (b *Builder) AddSystemFunc(name string, fn SystemFunc) *Builder {
	return b.AddSystem(Func(name, fn))
}

// AddInjected schedules fn with parameters resolved from the world. See
// Inject for the accepted signatures.
func (b *Builder) AddInjected(name string, fn any) *Builder {
	b.mustAccumulate("add system")
	if b.err != nil {
		return b
	}
	s, err := Inject(name, fn)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.AddSystem(s)
}

// Err returns the first registration error, if any.
func (b *Builder) Err() error { return b.err }

// World returns the world the App will run over. Plugins use it to insert
// uniques and initial entities while building.
func (b *Builder) World() *world.World {
	b.mustAccumulate("world")
	return b.world
}

// Context returns the context the builder was created with.
func (b *Builder) Context() context.Context { return b.ctx }

// HasPlugin reports whether a plugin of p's type has been registered.
func (b *Builder) HasPlugin(p Plugin) bool {
	b.mustAccumulate("has plugin")
	if isNilPlugin(p) {
		return false
	}
	return b.graph.has(Identity(b.types, p))
}

// Plugins describes the registered plugin instances in registration order.
func (b *Builder) Plugins() []PluginInfo {
	b.mustAccumulate("plugins")
	out := make([]PluginInfo, 0, b.graph.len())
	for _, rec := range b.graph.records {
		out = append(out, rec.info())
	}
	return out
}

// Build compiles the registered systems into an App. The builder is consumed
// whether or not Build succeeds; calling Build again returns
// ErrBuilderConsumed and any other method panics.
func (b *Builder) Build(opts ...Option) (*App, error) {
	if b.consumed {
		return nil, fmt.Errorf("build: %w", ErrBuilderConsumed)
	}
	b.consumed = true

	graph, entries := b.graph, b.entries
	b.graph, b.entries, b.stack = nil, nil, nil

	if b.err != nil {
		return nil, b.err
	}
	if err := graph.detectCycles(b.types); err != nil {
		b.logger.Error("Cyclic plugin registration detected.", "error", err)
		return nil, err
	}

	a := newApp(b.logger, b.world, newSchedule(entries), opts...)
	b.logger.Debug("App built.", "plugins", graph.len(), "systems", a.schedule.Len(), "run_id", a.runID)
	return a, nil
}
