// Package print logs a summary of the world every few frames.
package print

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/unique"
	"github.com/specialistvlad/burstworld/internal/world"
	"github.com/specialistvlad/burstworld/modules/clock"
)

// Plugin registers the report system.
type Plugin struct {
	Every int    `cty:"every"` // report on every Nth frame
	Level string `cty:"level"` // debug, info, warn or error
}

// Build implements app.Plugin.
func (p *Plugin) Build(b *app.Builder) {
	b.AddPlugin(clock.Default())
	b.AddInjected("print.report", p.report)
}

func (p *Plugin) report(ctx context.Context, w *world.World, c *unique.Tracked[clock.Clock]) {
	frame := c.Get().Frame
	if p.Every > 1 && frame%uint64(p.Every) != 0 {
		return
	}

	stores := w.Stats()
	parts := make([]string, 0, len(stores))
	for _, s := range stores {
		parts = append(parts, fmt.Sprintf("%s=%d", s.Component, s.Len))
	}

	ctxlog.FromContext(ctx).Log(ctx, parseLevel(p.Level), "World state.",
		"frame", frame,
		"entities", w.Len(),
		"stores", strings.Join(parts, " "),
	)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Register registers the "print" plugin.
func (m *Module) Register(c *catalog.Catalog) {
	c.Register("print", func(decode catalog.Decoder) (app.Plugin, error) {
		p := &Plugin{Every: 1, Level: "info"}
		if err := decode(p); err != nil {
			return nil, err
		}
		if p.Every < 1 {
			return nil, fmt.Errorf("every must be at least 1, got %d", p.Every)
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(p.Level)); err != nil {
			return nil, fmt.Errorf("invalid level %q", p.Level)
		}
		return p, nil
	})
}
