package world

import (
	"github.com/specialistvlad/burstworld/internal/typereg"
	"github.com/specialistvlad/burstworld/internal/unique"
)

// InsertUnique stores v as the singleton of type T, replacing any previous
// one, and returns its tracker.
func InsertUnique[T any](w *World, v T) *unique.Tracked[T] {
	key := typereg.Of[T](w.types)
	tr := unique.New(v)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.uniques[key] = tr
	return tr
}

// UniqueOf returns the singleton of type T.
func UniqueOf[T any](w *World) (*unique.Tracked[T], bool) {
	key, ok := w.types.Find(typeOf[T]())
	if !ok {
		return nil, false
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	tr, ok := w.uniques[key].(*unique.Tracked[T])
	return tr, ok
}

// RemoveUnique drops the singleton of type T.
func RemoveUnique[T any](w *World) bool {
	key, ok := w.types.Find(typeOf[T]())
	if !ok {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.uniques[key]; !ok {
		return false
	}
	delete(w.uniques, key)
	return true
}
