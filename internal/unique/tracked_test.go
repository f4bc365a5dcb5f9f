package unique

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type settings struct {
	Gravity float64
	Tags    []string // not comparable
}

func TestTracked_GetAndGeneration(t *testing.T) {
	tr := New(settings{Gravity: 9.8})

	assert.Equal(t, 9.8, tr.Get().Gravity)
	assert.Equal(t, uint64(0), tr.Generation())
}

func TestTracked_GuardReleaseBumpsGeneration(t *testing.T) {
	tr := New(settings{Gravity: 9.8})

	g := tr.GetMut()
	g.Value().Gravity = 1.6
	g.Release()

	assert.Equal(t, 1.6, tr.Get().Gravity)
	assert.Equal(t, uint64(1), tr.Generation())
}

func TestTracked_UnchangedWriteStillBumps(t *testing.T) {
	tr := New(settings{Gravity: 9.8})

	g := tr.GetMut()
	g.Release()
	tr.Set(settings{Gravity: 9.8})
	tr.Update(func(*settings) {})

	assert.Equal(t, uint64(3), tr.Generation())
	assert.True(t, tr.ChangedSince(2))
	assert.False(t, tr.ChangedSince(3))
}

func TestGuard_Misuse(t *testing.T) {
	t.Run("double release panics", func(t *testing.T) {
		tr := New(1)
		g := tr.GetMut()
		g.Release()
		assert.Panics(t, func() { g.Release() })
		assert.Equal(t, uint64(1), tr.Generation())
	})

	t.Run("value after release panics", func(t *testing.T) {
		tr := New(1)
		g := tr.GetMut()
		g.Release()
		assert.Panics(t, func() { _ = g.Value() })
	})
}

func TestTracked_ValueTypeOnNil(t *testing.T) {
	var tr *Tracked[settings]
	assert.Equal(t, reflect.TypeFor[settings](), tr.ValueType())
}

func TestTracked_ConcurrentUpdates(t *testing.T) {
	tr := New(0)

	const workers, perWorker = 8, 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				tr.Update(func(v *int) { *v++ })
				_ = tr.Get()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, tr.Get())
	assert.Equal(t, uint64(workers*perWorker), tr.Generation())
}

func TestProperty_GenerationStrictlyIncreases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := New(rapid.Int().Draw(rt, "initial"))
		writes := rapid.SliceOf(rapid.IntRange(-3, 3)).Draw(rt, "writes")

		prev := tr.Generation()
		for _, v := range writes {
			g := tr.GetMut()
			*g.Value() = v
			g.Release()

			gen := tr.Generation()
			if gen <= prev {
				rt.Fatalf("generation did not increase: %d -> %d", prev, gen)
			}
			prev = gen
		}
		if tr.Generation() != uint64(len(writes)) {
			rt.Fatalf("generation %d, want %d", tr.Generation(), len(writes))
		}
	})
}
