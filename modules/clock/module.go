// Package clock provides a fixed-step frame clock as a tracked unique.
package clock

import (
	"fmt"
	"time"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/unique"
	"github.com/specialistvlad/burstworld/internal/world"
)

// DefaultStep is the simulated time per tick when none is configured.
const DefaultStep = 16 * time.Millisecond

// Clock is the world's frame counter. It advances once per tick.
type Clock struct {
	Frame   uint64
	Step    time.Duration
	Elapsed time.Duration
}

// Seconds returns Step in seconds.
func (c Clock) Seconds() float64 { return c.Step.Seconds() }

// Plugin inserts the Clock unique and the system that advances it.
type Plugin struct {
	Step time.Duration `cty:"step"`
}

// Default returns the plugin with DefaultStep. Plugins that read the clock
// register it this way so the clock exists even when the manifest omits it.
func Default() *Plugin {
	return &Plugin{Step: DefaultStep}
}

// Build implements app.Plugin.
func (p *Plugin) Build(b *app.Builder) {
	step := p.Step
	if step == 0 {
		step = DefaultStep
	}
	if _, ok := world.UniqueOf[Clock](b.World()); !ok {
		world.InsertUnique(b.World(), Clock{Step: step})
	}
	b.AddInjected("clock.advance", Advance)
}

// Advance moves the clock one step forward.
func Advance(c *unique.Tracked[Clock]) {
	c.Update(func(v *Clock) {
		v.Frame++
		v.Elapsed += v.Step
	})
}

// Module implements the catalog.Module interface for this package.
type Module struct{}

// Register registers the "clock" plugin.
func (m *Module) Register(c *catalog.Catalog) {
	c.Register("clock", func(decode catalog.Decoder) (app.Plugin, error) {
		p := Default()
		if err := decode(p); err != nil {
			return nil, err
		}
		if p.Step <= 0 {
			return nil, fmt.Errorf("step must be positive, got %s", p.Step)
		}
		return p, nil
	})
}
