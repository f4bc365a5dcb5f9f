package clock

import (
	"context"
	"testing"
	"time"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/hcl_adapter"
	"github.com/specialistvlad/burstworld/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestPlugin_AdvancesEveryTick(t *testing.T) {
	ctx := context.Background()
	b := app.NewBuilder(ctx, nil)
	b.AddPlugin(Default()).AddPlugin(&Plugin{Step: time.Second})

	a, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, []string{"clock.advance"}, a.Schedule().Names())

	require.NoError(t, a.Run(ctx, app.RunOptions{Ticks: 3}))

	c, ok := world.UniqueOf[Clock](a.World())
	require.True(t, ok)
	assert.Equal(t, Clock{Frame: 3, Step: DefaultStep, Elapsed: 3 * DefaultStep}, c.Get())
	assert.Equal(t, uint64(3), c.Generation())
	assert.InDelta(t, 0.016, c.Get().Seconds(), 1e-9)
}

func TestPlugin_KeepsExistingClock(t *testing.T) {
	b := app.NewBuilder(context.Background(), nil)
	world.InsertUnique(b.World(), Clock{Frame: 100, Step: time.Second})
	b.AddPlugin(&Plugin{})

	a, err := b.Build()
	require.NoError(t, err)
	require.NoError(t, a.Tick(context.Background()))

	c, _ := world.UniqueOf[Clock](a.World())
	assert.Equal(t, uint64(101), c.Get().Frame)
}

func TestModule_Register(t *testing.T) {
	cat := catalog.New(&Module{})
	p, err := cat.Instantiate(context.Background(), "clock", cty.ObjectVal(map[string]cty.Value{
		"step": cty.StringVal("100ms"),
	}), hcl_adapter.NewConverter())
	require.NoError(t, err)
	assert.Equal(t, &Plugin{Step: 100 * time.Millisecond}, p)
}

func TestModule_RejectsNonPositiveStep(t *testing.T) {
	cat := catalog.New(&Module{})
	testCases := []struct {
		name string
		step cty.Value
	}{
		{name: "zero", step: cty.StringVal("0s")},
		{name: "negative string", step: cty.StringVal("-5ms")},
		{name: "negative millis", step: cty.NumberIntVal(-16)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cat.Instantiate(context.Background(), "clock", cty.ObjectVal(map[string]cty.Value{
				"step": tc.step,
			}), hcl_adapter.NewConverter())
			assert.ErrorContains(t, err, "step must be positive")
		})
	}
}
