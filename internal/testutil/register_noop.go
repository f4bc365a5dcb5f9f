package testutil

import (
	"context"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/world"
)

// NoOpPlugin schedules a single system that does nothing.
type NoOpPlugin struct{}

// Build implements app.Plugin.
func (NoOpPlugin) Build(b *app.Builder) {
	b.AddSystemFunc("noop", func(context.Context, *world.World) error { return nil })
}

// NoOpModule registers NoOpPlugin as "noop". It is useful for manifests that
// need a valid plugin but whose test is about something else.
type NoOpModule struct{}

// Register implements the catalog.Module interface.
func (m *NoOpModule) Register(c *catalog.Catalog) {
	c.Register("noop", func(catalog.Decoder) (app.Plugin, error) {
		return NoOpPlugin{}, nil
	})
}
