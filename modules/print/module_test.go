package print

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/specialistvlad/burstworld/internal/app"
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/ctxlog"
	"github.com/specialistvlad/burstworld/internal/hcl_adapter"
	"github.com/specialistvlad/burstworld/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type marker struct{}

func TestPlugin_Reports(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	b := app.NewBuilder(ctx, nil)
	e := b.World().Spawn()
	world.StoreOf[marker](b.World()).Insert(e, marker{})
	b.AddPlugin(&Plugin{Every: 2, Level: "warn"})

	a, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"clock.advance", "print.report"}, a.Schedule().Names())

	require.NoError(t, a.Run(ctx, app.RunOptions{Ticks: 4}))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "World state."), out)
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "frame=2")
	assert.Contains(t, out, "frame=4")
	assert.Contains(t, out, "entities=1")
	assert.Contains(t, out, "print.marker=1")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestModule_Register(t *testing.T) {
	ctx := context.Background()
	conv := hcl_adapter.NewConverter()
	cat := catalog.New(&Module{})

	testCases := []struct {
		name     string
		settings cty.Value
		want     *Plugin
		wantErr  string
	}{
		{
			name:     "defaults",
			settings: cty.NilVal,
			want:     &Plugin{Every: 1, Level: "info"},
		},
		{
			name: "overrides",
			settings: cty.ObjectVal(map[string]cty.Value{
				"every": cty.NumberIntVal(10),
				"level": cty.StringVal("debug"),
			}),
			want: &Plugin{Every: 10, Level: "debug"},
		},
		{
			name:     "zero every",
			settings: cty.ObjectVal(map[string]cty.Value{"every": cty.NumberIntVal(0)}),
			wantErr:  "every must be at least 1",
		},
		{
			name:     "bad level",
			settings: cty.ObjectVal(map[string]cty.Value{"level": cty.StringVal("loud")}),
			wantErr:  `invalid level "loud"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := cat.Instantiate(ctx, "print", tc.settings, conv)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, p)
		})
	}
}
