// Package catalog maps the plugin names used in manifests to the Go code that
// builds them.
//
// # Why Catalog Exists
//
// Plugins are Go values, but a manifest can only refer to them by name. Each
// compiled-in module registers one or more named factories here; at startup
// the session resolves every `plugin "<name>"` block through the catalog,
// decoding the block's settings onto the plugin before it is added to the
// builder. Unknown names and bad settings are reported together, before any
// plugin is built.
package catalog
