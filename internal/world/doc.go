// Package world is the in-process entity-component store the application
// layer runs against.
//
// # Why world Exists
//
// The composition layer only needs a narrow surface from a store: entity
// identity, typed component insert/get/remove, per-component change tracking,
// iteration over changed components, and singleton resources. This package
// implements exactly that surface and nothing more. It has no query planner,
// no archetypes and no parallel executor.
//
// # Change Ticks
//
// The world holds a monotonic change tick. Every component write is stamped
// with the tick current at the time of the write. A system remembers the tick
// of its previous run and asks a store for entries changed after it:
//
//	now := w.ChangeTick()
//	for e, pos := range world.StoreOf[Position](w).ChangedSince(last) {
//	    // ...
//	}
//	last = now
//
// The schedule advances the tick before and after each system run. A system
// therefore never sees its own writes as changes on its next run, while
// writes made by later systems, or from outside the schedule between ticks,
// are always newer than its remembered tick.
//
// Note that change tracking records writes, not value changes. Writing an
// identical value still stamps the entry; internal/assign exists to avoid
// exactly that.
//
// # Thread-Safety
//
// All methods are safe for concurrent use. Lock order is world, then store.
// Iterators snapshot under the store's read lock and yield outside of it, so a
// system may write to the store it is iterating.
package world
