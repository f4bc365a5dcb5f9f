package world

import (
	"iter"
	"sync"

	"github.com/specialistvlad/burstworld/internal/typereg"
)

// Store holds every component of type T as a sparse set: a dense slice of
// entries plus an entity index. Iteration follows dense order, which is
// insertion order until a removal swaps the last entry into the hole.
type Store[T any] struct {
	world *World
	key   typereg.TypeKey

	mu      sync.RWMutex
	dense   []EntityID
	values  []T
	added   []Tick
	changed []Tick
	index   map[EntityID]int
}

func newStore[T any](w *World, key typereg.TypeKey) *Store[T] {
	return &Store[T]{
		world: w,
		key:   key,
		index: make(map[EntityID]int),
	}
}

// Key returns the TypeKey of T.
func (s *Store[T]) Key() typereg.TypeKey { return s.key }

// Insert sets the component for e, stamping it as changed at the current
// tick. It returns false if e is not alive.
func (s *Store[T]) Insert(e EntityID, v T) bool {
	return s.Update(e, func(T, bool) (T, bool) { return v, true })
}

// Update reads the current component of e, if any, and lets fn decide
// whether to write a new value. fn runs under the store's write lock, but not
// the world's: it may read the world, never this store. It returns true if a
// write happened.
func (s *Store[T]) Update(e EntityID, fn func(old T, ok bool) (T, bool)) bool {
	if !s.world.Alive(e) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var old T
	i, exists := s.index[e]
	if exists {
		old = s.values[i]
	}
	next, write := fn(old, exists)
	if !write {
		return false
	}
	// e may have been despawned while fn ran.
	if !s.world.Alive(e) {
		return false
	}

	now := s.world.ChangeTick()
	if exists {
		s.values[i] = next
		s.changed[i] = now
		return true
	}

	s.index[e] = len(s.dense)
	s.dense = append(s.dense, e)
	s.values = append(s.values, next)
	s.added = append(s.added, now)
	s.changed = append(s.changed, now)
	return true
}

// Get returns the component of e.
func (s *Store[T]) Get(e EntityID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[e]
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[i], true
}

// Has reports whether e has a component in this store.
func (s *Store[T]) Has(e EntityID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[e]
	return ok
}

// ChangeTick returns the tick of the last write to e's component.
func (s *Store[T]) ChangeTick(e EntityID) (Tick, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[e]
	if !ok {
		return 0, false
	}
	return s.changed[i], true
}

// Remove deletes e's component. No record of the removal is kept.
func (s *Store[T]) Remove(e EntityID) bool {
	return s.remove(e)
}

func (s *Store[T]) remove(e EntityID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[e]
	if !ok {
		return false
	}

	last := len(s.dense) - 1
	if i != last {
		moved := s.dense[last]
		s.dense[i] = moved
		s.values[i] = s.values[last]
		s.added[i] = s.added[last]
		s.changed[i] = s.changed[last]
		s.index[moved] = i
	}

	var zero T
	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.added = s.added[:last]
	s.changed = s.changed[:last]
	delete(s.index, e)
	return true
}

// Len returns the number of components in the store.
func (s *Store[T]) Len() int {
	return s.len()
}

func (s *Store[T]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dense)
}

func (s *Store[T]) name() string {
	name, _ := s.world.types.Lookup(s.key)
	return name
}

// All iterates every component in dense order.
func (s *Store[T]) All() iter.Seq2[EntityID, T] {
	return s.filter(func(int) bool { return true })
}

// ChangedSince iterates components added or written after t.
func (s *Store[T]) ChangedSince(t Tick) iter.Seq2[EntityID, T] {
	return s.filter(func(i int) bool { return s.changed[i] > t })
}

// AddedSince iterates components inserted after t.
func (s *Store[T]) AddedSince(t Tick) iter.Seq2[EntityID, T] {
	return s.filter(func(i int) bool { return s.added[i] > t })
}

// filter snapshots matching entries under the read lock; pred is called with
// the lock held.
func (s *Store[T]) filter(pred func(i int) bool) iter.Seq2[EntityID, T] {
	return func(yield func(EntityID, T) bool) {
		s.mu.RLock()
		ids := make([]EntityID, 0, len(s.dense))
		vals := make([]T, 0, len(s.dense))
		for i := range s.dense {
			if pred(i) {
				ids = append(ids, s.dense[i])
				vals = append(vals, s.values[i])
			}
		}
		s.mu.RUnlock()

		for i := range ids {
			if !yield(ids[i], vals[i]) {
				return
			}
		}
	}
}
