// Package app composes plugins and systems into a runnable App.
//
// # Why app Exists
//
// Systems are plain functions over the world. On their own they say nothing
// about which other systems they need, in which order they run, or who is
// responsible for registering them. Plugins bundle systems (and other
// plugins) into reusable units, and the Builder turns a set of plugins into a
// single ordered Schedule. The App then runs that schedule once per tick.
//
// # Lifecycle
//
//  1. **Empty:** NewBuilder returns a builder bound to a world.
//  2. **Accumulating:** AddPlugin and AddSystem extend the registration
//     graph. A plugin's Build method may itself add plugins and systems.
//  3. **Compiled:** Build flattens the registered systems into a Schedule
//     and returns an App. The builder is spent; any further call on it is a
//     programming error.
//
// # Registration Rules
//
//   - A plugin's identity is its concrete Go type. `*P` and `P` are the same
//     plugin.
//   - Registering a plugin that is already registered is a silent no-op,
//     unless it implements MultiPlugin and allows multiple instances. Two
//     plugins that both depend on a third register it once.
//   - A plugin that, directly or through other plugins, registers itself
//     while its own Build is still running is a cycle. The builder records a
//     *CycleError naming the full chain and Build returns it. No App is
//     produced and no system ever runs.
//
// # Ordering
//
// Schedule order is registration order, nothing else. There is no
// dependency inference between systems: a producer must be registered
// before its consumers. A plugin that needs another plugin's output
// registers that plugin first.
//
// # Change Ticks
//
// App.Tick advances the world change tick before and after every system. See
// package world for why this makes change detection exact per system.
package app
