// Package typereg interns Go types into small, totally ordered TypeKeys.
//
// # Why typereg Exists
//
// The builder deduplicates plugins by their concrete type and the world keys
// component storage by component type. Both need an identity that is cheap to
// compare, usable as a map key, and printable in diagnostics such as a cycle
// chain. reflect.Type already satisfies equality, but it has no order and its
// string form is not stable enough to act as a key. A TypeKey is assigned in
// interning order, so keys sort in the order types were first seen.
//
// # Concurrency
//
// Lookups take a shared lock. Interning a new type takes the exclusive lock
// after a double-checked miss, so steady-state lookups never contend with
// each other. The registry never calls user code while holding its lock.
//
// The registry is an explicit object. The world owns one and hands it to the
// builder; there is no process-wide instance.
package typereg
