// Package assign writes components only when the value actually changes.
//
// A plain Store.Insert stamps the entry as changed even when the new value is
// identical, so any consumer of ChangedSince (a renderer re-uploading a
// transform, a mirror recomputing a derived component) would do redundant
// work. Distinct compares first and leaves the change tick alone on equal
// values. Its boolean result is the only signal that the tick moved.
package assign

import (
	"github.com/specialistvlad/burstworld/internal/world"
)

// Distinct sets e's component to v unless it already equals v. It returns
// true if a write happened: the component was absent or different.
func Distinct[T comparable](s *world.Store[T], e world.EntityID, v T) bool {
	return s.Update(e, func(old T, ok bool) (T, bool) {
		return v, !ok || old != v
	})
}

// DistinctFunc is Distinct for types that are not comparable or that need a
// looser notion of equality. eq is called under the store's write lock and
// must not touch s; reading the world is fine.
func DistinctFunc[T any](s *world.Store[T], e world.EntityID, v T, eq func(a, b T) bool) bool {
	return s.Update(e, func(old T, ok bool) (T, bool) {
		return v, !ok || !eq(old, v)
	})
}
