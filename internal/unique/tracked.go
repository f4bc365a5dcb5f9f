// Package unique provides Tracked, a singleton value paired with a change
// generation.
//
// Unlike component writes that go through distinct assignment, every
// exclusive access to a Tracked bumps its generation, whether or not the value
// actually changed. Readers that only care whether a singleton was touched
// cache the generation and compare it next time, which works for values that
// are expensive to compare or not comparable at all.
package unique

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Tracked holds a value of type T and a generation counter.
type Tracked[T any] struct {
	mu         sync.RWMutex
	value      T
	generation atomic.Uint64
}

// New wraps v. The generation starts at zero.
func New[T any](v T) *Tracked[T] {
	return &Tracked[T]{value: v}
}

// Get returns a copy of the current value under a shared lock.
func (t *Tracked[T]) Get() T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}

// Generation returns the number of completed exclusive accesses.
func (t *Tracked[T]) Generation() uint64 {
	return t.generation.Load()
}

// ChangedSince reports whether the generation moved past gen.
func (t *Tracked[T]) ChangedSince(gen uint64) bool {
	return t.Generation() > gen
}

// GetMut takes the exclusive lock and returns a guard over the value. The lock
// is held until Release, which also bumps the generation:
//
//	g := clock.GetMut()
//	defer g.Release()
//	g.Value().Frame++
func (t *Tracked[T]) GetMut() *Guard[T] {
	t.mu.Lock()
	return &Guard[T]{owner: t}
}

// Set replaces the value. The generation advances even if v equals the
// current value.
func (t *Tracked[T]) Set(v T) {
	g := t.GetMut()
	defer g.Release()
	*g.Value() = v
}

// Update applies fn to the value under the exclusive lock.
func (t *Tracked[T]) Update(fn func(*T)) {
	g := t.GetMut()
	defer g.Release()
	fn(g.Value())
}

// ValueType returns the reflect.Type of T. It does not dereference the
// receiver and may be called on a nil *Tracked[T].
func (*Tracked[T]) ValueType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Guard grants exclusive access to a Tracked value until Release.
type Guard[T any] struct {
	owner    *Tracked[T]
	released bool
}

// Value returns a pointer to the guarded value. It must not be retained after
// Release.
func (g *Guard[T]) Value() *T {
	if g.released {
		panic("unique: guard used after release")
	}
	return &g.owner.value
}

// Release bumps the generation and drops the exclusive lock. Releasing twice
// is a programming error and panics.
func (g *Guard[T]) Release() {
	if g.released {
		panic("unique: guard released twice")
	}
	g.released = true
	g.owner.generation.Add(1)
	g.owner.mu.Unlock()
}
