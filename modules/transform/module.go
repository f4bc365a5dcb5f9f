// Package transform keeps derived transform data in sync with entity
// positions and scales.
//
// Each tick it moves entities with a Velocity, then rebuilds LocalTransform
// for every entity whose Position or Scale changed, then Bounds for every
// entity whose LocalTransform changed. An entity that moved but ended at the
// same place does not touch its derived components.
package transform

import (
	"fmt"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/assign"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/mirror"
	"github.com/specialistvlad/burstworld/internal/unique"
	"github.com/specialistvlad/burstworld/internal/world"
	"github.com/specialistvlad/burstworld/modules/clock"
)

// Plugin registers the transform systems and, optionally, a grid of demo
// entities.
type Plugin struct {
	Spawn int     `cty:"spawn"` // demo entities to create
	Speed float64 `cty:"speed"` // demo entity speed, units per second
}

// Build implements app.Plugin.
func (p *Plugin) Build(b *app.Builder) {
	b.AddPlugin(clock.Default())

	w := b.World()
	for i := range p.Spawn {
		e := w.Spawn()
		world.StoreOf[Position](w).Insert(e, Position{X: float64(i)})
		world.StoreOf[Scale](w).Insert(e, Scale{X: 1, Y: 1, Z: 1})
		if i%2 == 0 {
			world.StoreOf[Velocity](w).Insert(e, Velocity{Y: p.Speed})
		}
	}

	b.AddInjected("transform.integrate", newIntegrator())
	b.AddSystem(mirror.TwoToOne(Compose).Named("transform.local"))
	b.AddSystem(mirror.OneToOne(BoundsOf).Named("transform.bounds"))
}

// newIntegrator returns a system that moves entities by Velocity once per
// clock step. It does nothing on ticks where the clock did not advance.
func newIntegrator() func(*unique.Tracked[clock.Clock], *world.Store[Velocity], *world.Store[Position]) {
	var seen uint64
	return func(c *unique.Tracked[clock.Clock], vel *world.Store[Velocity], pos *world.Store[Position]) {
		if !c.ChangedSince(seen) {
			return
		}
		seen = c.Generation()
		dt := c.Get().Seconds()

		for e, v := range vel.All() {
			p, ok := pos.Get(e)
			if !ok {
				continue
			}
			next := Vec3(p).Add(Vec3(v).Mul(dt))
			assign.Distinct(pos, e, Position(next))
		}
	}
}

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Register registers the "transform" plugin.
func (m *Module) Register(c *catalog.Catalog) {
	c.Register("transform", func(decode catalog.Decoder) (app.Plugin, error) {
		p := &Plugin{Speed: 1}
		if err := decode(p); err != nil {
			return nil, err
		}
		if p.Spawn < 0 {
			return nil, fmt.Errorf("spawn must not be negative, got %d", p.Spawn)
		}
		return p, nil
	})
}
