package assign

import (
	"math"
	"slices"
	"testing"

	"github.com/specialistvlad/burstworld/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type color struct{ R, G, B uint8 }

type path struct{ Points []float64 }

func TestDistinct(t *testing.T) {
	tests := []struct {
		name     string
		existing *color
		value    color
		want     bool
	}{
		{name: "absent inserts", existing: nil, value: color{R: 1}, want: true},
		{name: "equal skips", existing: &color{R: 1}, value: color{R: 1}, want: false},
		{name: "different overwrites", existing: &color{R: 1}, value: color{G: 2}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.New(nil)
			s := world.StoreOf[color](w)
			e := w.Spawn()
			if tt.existing != nil {
				s.Insert(e, *tt.existing)
			}
			before, _ := s.ChangeTick(e)
			w.Advance()

			assert.Equal(t, tt.want, Distinct(s, e, tt.value))

			got, ok := s.Get(e)
			require.True(t, ok)
			assert.Equal(t, tt.value, got)

			after, _ := s.ChangeTick(e)
			if tt.want {
				assert.Greater(t, after, before, "a write must advance the change tick")
			} else {
				assert.Equal(t, before, after, "a skipped write must leave the change tick alone")
			}
		})
	}
}

func TestDistinct_SameValueTwice(t *testing.T) {
	w := world.New(nil)
	s := world.StoreOf[color](w)
	e := w.Spawn()

	assert.True(t, Distinct(s, e, color{R: 9}))
	assert.False(t, Distinct(s, e, color{R: 9}))
}

func TestDistinct_TwoDifferentValues(t *testing.T) {
	w := world.New(nil)
	s := world.StoreOf[color](w)
	e := w.Spawn()

	assert.True(t, Distinct(s, e, color{R: 1}))
	assert.True(t, Distinct(s, e, color{R: 2}))
}

func TestDistinct_DeadEntity(t *testing.T) {
	w := world.New(nil)
	s := world.StoreOf[color](w)

	assert.False(t, Distinct(s, world.EntityID(7), color{}))
	assert.Equal(t, 0, s.Len())
}

func TestDistinctFunc(t *testing.T) {
	w := world.New(nil)
	s := world.StoreOf[path](w)
	e := w.Spawn()
	eq := func(a, b path) bool {
		return slices.EqualFunc(a.Points, b.Points, func(x, y float64) bool {
			return math.Abs(x-y) < 1e-9
		})
	}

	assert.True(t, DistinctFunc(s, e, path{Points: []float64{1, 2}}, eq))
	assert.False(t, DistinctFunc(s, e, path{Points: []float64{1, 2 + 1e-12}}, eq))
	assert.True(t, DistinctFunc(s, e, path{Points: []float64{1, 3}}, eq))
}

func TestProperty_DistinctWritesOnlyOnChange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := world.New(nil)
		s := world.StoreOf[int](w)
		e := w.Spawn()
		values := rapid.SliceOfN(rapid.IntRange(0, 3), 1, 50).Draw(rt, "values")

		var (
			current int
			present bool
		)
		for i, v := range values {
			want := !present || current != v
			if got := Distinct(s, e, v); got != want {
				rt.Fatalf("step %d: Distinct(%d) = %v, want %v", i, v, got, want)
			}
			current, present = v, true
		}
	})
}
