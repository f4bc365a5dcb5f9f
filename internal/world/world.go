package world

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/burstworld/internal/typereg"
)

// EntityID identifies an entity. IDs are never reused within a World.
type EntityID uint32

// Tick is a change-tracking timestamp.
type Tick uint64

// storage is the type-erased view of a Store used for whole-entity operations.
type storage interface {
	remove(e EntityID) bool
	name() string
	len() int
}

// World owns entities, component stores and unique resources.
type World struct {
	types *typereg.Registry

	mu       sync.RWMutex
	next     EntityID
	alive    map[EntityID]struct{}
	storages map[typereg.TypeKey]storage
	uniques  map[typereg.TypeKey]any

	tick atomic.Uint64
}

// New creates an empty world that interns its component types in types.
func New(types *typereg.Registry) *World {
	if types == nil {
		types = typereg.New()
	}
	w := &World{
		types:    types,
		alive:    make(map[EntityID]struct{}),
		storages: make(map[typereg.TypeKey]storage),
		uniques:  make(map[typereg.TypeKey]any),
	}
	w.tick.Store(1)
	return w
}

// Types returns the registry component and plugin types are interned in.
func (w *World) Types() *typereg.Registry { return w.types }

// ChangeTick returns the current change tick.
func (w *World) ChangeTick() Tick { return Tick(w.tick.Load()) }

// Advance moves the change tick forward and returns the new value.
func (w *World) Advance() Tick { return Tick(w.tick.Add(1)) }

// Spawn allocates a new entity.
func (w *World) Spawn() EntityID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next++
	w.alive[w.next] = struct{}{}
	return w.next
}

// Alive reports whether e was spawned and not yet despawned.
func (w *World) Alive(e EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.alive[e]
	return ok
}

// Despawn removes e and every component attached to it. Nothing about e is
// retained, so spawn and despawn churn does not grow the world.
func (w *World) Despawn(e EntityID) bool {
	w.mu.Lock()
	if _, ok := w.alive[e]; !ok {
		w.mu.Unlock()
		return false
	}
	delete(w.alive, e)
	stores := make([]storage, 0, len(w.storages))
	for _, s := range w.storages {
		stores = append(stores, s)
	}
	w.mu.Unlock()

	for _, s := range stores {
		s.remove(e)
	}
	return true
}

// Len returns the number of live entities.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.alive)
}

// Entities returns the live entities in ascending order.
func (w *World) Entities() []EntityID {
	w.mu.RLock()
	out := make([]EntityID, 0, len(w.alive))
	for e := range w.alive {
		out = append(out, e)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StoreStat describes one component store, for diagnostics.
type StoreStat struct {
	Component string
	Len       int
}

// Stats returns one entry per component store, ordered by component name.
func (w *World) Stats() []StoreStat {
	w.mu.RLock()
	stores := make([]storage, 0, len(w.storages))
	for _, s := range w.storages {
		stores = append(stores, s)
	}
	w.mu.RUnlock()

	out := make([]StoreStat, 0, len(stores))
	for _, s := range stores {
		out = append(out, StoreStat{Component: s.name(), Len: s.len()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Component < out[j].Component })
	return out
}

// StoreOf returns the store for component type T, creating it on first use.
func StoreOf[T any](w *World) *Store[T] {
	key := typereg.Of[T](w.types)

	w.mu.RLock()
	s, ok := w.storages[key]
	w.mu.RUnlock()
	if ok {
		return s.(*Store[T])
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if s, ok := w.storages[key]; ok {
		return s.(*Store[T])
	}
	st := newStore[T](w, key)
	w.storages[key] = st
	return st
}
