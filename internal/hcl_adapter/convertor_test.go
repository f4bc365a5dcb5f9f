package hcl_adapter

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type sampleSettings struct {
	Every    int           `cty:"every"`
	Level    string        `cty:"level"`
	Verbose  bool          `cty:"verbose"`
	Tags     []string      `cty:"tags"`
	Interval time.Duration `cty:"interval"`
	internal int
}

func TestConverter_DecodeSettings(t *testing.T) {
	c := NewConverter()
	ctx := context.Background()

	t.Run("keeps defaults for omitted attributes", func(t *testing.T) {
		s := sampleSettings{Every: 5, Level: "debug"}
		err := c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"every": cty.NumberIntVal(10),
		}), &s)
		require.NoError(t, err)
		assert.Equal(t, 10, s.Every)
		assert.Equal(t, "debug", s.Level)
	})

	t.Run("converts compatible types", func(t *testing.T) {
		var s sampleSettings
		err := c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"every":   cty.StringVal("3"),
			"verbose": cty.StringVal("true"),
			"tags":    cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		}), &s)
		require.NoError(t, err)
		assert.Equal(t, 3, s.Every)
		assert.True(t, s.Verbose)
		assert.Equal(t, []string{"a", "b"}, s.Tags)
	})

	t.Run("durations", func(t *testing.T) {
		var s sampleSettings
		require.NoError(t, c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"interval": cty.StringVal("250ms"),
		}), &s))
		assert.Equal(t, 250*time.Millisecond, s.Interval)

		require.NoError(t, c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"interval": cty.NumberIntVal(40),
		}), &s))
		assert.Equal(t, 40*time.Millisecond, s.Interval)

		err := c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"interval": cty.StringVal("soon"),
		}), &s)
		assert.ErrorContains(t, err, `setting "interval"`)

		err = c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"interval": cty.NumberIntVal(math.MaxInt64 / 1000),
		}), &s)
		assert.ErrorContains(t, err, "out of range")
		assert.Equal(t, 40*time.Millisecond, s.Interval, "a rejected value leaves the field alone")

		err = c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"interval": cty.StringVal("9999999999h"),
		}), &s)
		assert.ErrorContains(t, err, `setting "interval"`)
	})

	t.Run("null settings are a no-op", func(t *testing.T) {
		s := sampleSettings{Every: 1}
		require.NoError(t, c.DecodeSettings(ctx, cty.NilVal, &s))
		require.NoError(t, c.DecodeSettings(ctx, cty.NullVal(cty.EmptyObject), &s))
		assert.Equal(t, 1, s.Every)
	})

	t.Run("reports every bad attribute", func(t *testing.T) {
		var s sampleSettings
		err := c.DecodeSettings(ctx, cty.ObjectVal(map[string]cty.Value{
			"every":    cty.StringVal("lots"),
			"internal": cty.NumberIntVal(1),
			"colour":   cty.StringVal("red"),
		}), &s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported setting "colour"`)
		assert.Contains(t, err.Error(), `unsupported setting "internal"`)
		assert.Contains(t, err.Error(), `setting "every"`)
	})

	t.Run("bad targets", func(t *testing.T) {
		obj := cty.EmptyObjectVal
		assert.Error(t, c.DecodeSettings(ctx, obj, nil))
		assert.Error(t, c.DecodeSettings(ctx, obj, sampleSettings{}))
		n := 3
		assert.Error(t, c.DecodeSettings(ctx, obj, &n))
		var s sampleSettings
		assert.ErrorContains(t, c.DecodeSettings(ctx, cty.StringVal("x"), &s), "must be an object")
	})
}

func TestConverter_ToCtyValue(t *testing.T) {
	c := NewConverter()

	v, err := c.ToCtyValue(nil)
	require.NoError(t, err)
	assert.Equal(t, cty.NilVal, v)

	v, err = c.ToCtyValue("hello")
	require.NoError(t, err)
	assert.True(t, v.RawEquals(cty.StringVal("hello")))
}
