package config

import (
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of a manifest.
type Model struct {
	App     *AppSettings
	Plugins []*PluginRef
}

// AppSettings control the tick loop. Zero values mean "not set".
type AppSettings struct {
	Ticks    int
	Interval time.Duration
}

// PluginRef enables one catalog plugin. Plugins are registered in manifest
// order, so producers must be listed before their consumers.
type PluginRef struct {
	Name     string
	Settings cty.Value // cty.NilVal or an object
	Source   string    // file and line, for error messages
}

// PluginNames returns the enabled plugin names in manifest order.
func (m *Model) PluginNames() []string {
	names := make([]string, len(m.Plugins))
	for i, p := range m.Plugins {
		names[i] = p.Name
	}
	return names
}
