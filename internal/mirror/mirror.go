// Package mirror keeps derived components in sync with their sources.
//
// A mirror is a system built from a pure mapping function. On each run it
// visits only the entities whose source components changed since its
// previous run, recomputes the target, and writes it through distinct
// assignment so an unchanged result does not mark the target as changed.
//
//	b.AddSystem(mirror.TwoToOne(func(p Position, s Scale) LocalTransform {
//	    return Compose(p, s)
//	}))
//
// Mirrors never remove targets. An entity that loses its source keeps its
// last derived value; clean-up belongs to whichever system removes sources.
//
// A mirror remembers the tick of its previous run, so one instance must only
// ever be scheduled against a single world.
package mirror

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/specialistvlad/burstworld/internal/assign"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/world"
)

// Stats are cumulative counters over every run of a mirror.
type Stats struct {
	Runs    uint64
	Visited uint64 // entities whose sources changed and were all present
	Written uint64 // targets actually written
}

type applyFunc func(w *world.World, since world.Tick) (visited, written int)

// System is a mirroring rule ready to be scheduled. It satisfies the app
// package's System interface.
type System struct {
	name  string
	apply applyFunc

	mu    sync.Mutex
	last  world.Tick
	stats Stats
}

func newSystem(name string, apply applyFunc) *System {
	return &System{name: name, apply: apply}
}

// Name returns the system name used in schedules and logs.
func (m *System) Name() string { return m.name }

// Named overrides the derived name and returns m.
func (m *System) Named(name string) *System {
	m.name = name
	return m
}

// Stats returns a copy of the cumulative counters.
func (m *System) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Run applies the rule to every entity whose sources changed since the
// previous run. It never fails.
func (m *System) Run(ctx context.Context, w *world.World) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := w.ChangeTick()
	visited, written := m.apply(w, m.last)
	m.last = now

	m.stats.Runs++
	m.stats.Visited += uint64(visited)
	m.stats.Written += uint64(written)

	if visited > 0 {
		ctxlog.FromContext(ctx).Debug("Mirror applied.", "system", m.name, "visited", visited, "written", written)
	}
	return nil
}

// OneToOne mirrors S into T through f.
func OneToOne[S any, T comparable](f func(S) T) *System {
	return OneToOneFunc(f, equal[T])
}

// OneToOneFunc mirrors S into T through f, comparing targets with eq.
func OneToOneFunc[S, T any](f func(S) T, eq func(a, b T) bool) *System {
	name := fmt.Sprintf("mirror(%s->%s)", typeName[S](), typeName[T]())

	return newSystem(name, func(w *world.World, since world.Tick) (int, int) {
		src := world.StoreOf[S](w)
		dst := world.StoreOf[T](w)

		var visited, written int
		for e, s := range src.ChangedSince(since) {
			visited++
			if assign.DistinctFunc(dst, e, f(s), eq) {
				written++
			}
		}
		return visited, written
	})
}

// TwoToOne mirrors the pair (S1, S2) into T through f. It fires for an
// entity when either source changed, and only if both are present.
func TwoToOne[S1, S2 any, T comparable](f func(S1, S2) T) *System {
	return TwoToOneFunc(f, equal[T])
}

// TwoToOneFunc is TwoToOne with a custom target equality.
func TwoToOneFunc[S1, S2, T any](f func(S1, S2) T, eq func(a, b T) bool) *System {
	name := fmt.Sprintf("mirror(%s,%s->%s)", typeName[S1](), typeName[S2](), typeName[T]())

	return newSystem(name, func(w *world.World, since world.Tick) (int, int) {
		first := world.StoreOf[S1](w)
		second := world.StoreOf[S2](w)
		dst := world.StoreOf[T](w)

		var visited, written int
		seen := make(map[world.EntityID]struct{})
		visit := func(e world.EntityID) {
			if _, ok := seen[e]; ok {
				return
			}
			seen[e] = struct{}{}

			a, ok := first.Get(e)
			if !ok {
				return
			}
			b, ok := second.Get(e)
			if !ok {
				return
			}
			visited++
			if assign.DistinctFunc(dst, e, f(a, b), eq) {
				written++
			}
		}

		for e := range first.ChangedSince(since) {
			visit(e)
		}
		for e := range second.ChangedSince(since) {
			visit(e)
		}
		return visited, written
	})
}

func equal[T comparable](a, b T) bool { return a == b }

func typeName[T any]() string { return reflect.TypeFor[T]().String() }
