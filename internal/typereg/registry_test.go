package typereg

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }

func TestIntern_StableKeys(t *testing.T) {
	r := New()

	a := Of[position](r)
	b := Of[velocity](r)
	again := Of[position](r)

	assert.True(t, a.Valid())
	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.True(t, a.Less(b), "keys follow interning order")
	assert.Equal(t, 2, r.Len())
}

func TestIntern_PointerIsDistinctType(t *testing.T) {
	r := New()
	assert.NotEqual(t, Of[position](r), Of[*position](r))
}

func TestIntern_NilPanics(t *testing.T) {
	r := New()
	assert.Panics(t, func() { r.Intern(nil) })
}

func TestLookup(t *testing.T) {
	r := New()

	t.Run("interned key", func(t *testing.T) {
		k := Of[position](r)
		name, ok := r.Lookup(k)
		require.True(t, ok)
		assert.Equal(t, "typereg.position", name)

		typ, ok := r.Type(k)
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[position](), typ)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, ok := r.Lookup(TypeKey(999))
		assert.False(t, ok)

		_, ok = r.Lookup(TypeKey(0))
		assert.False(t, ok)
	})
}

func TestFind_DoesNotIntern(t *testing.T) {
	r := New()

	_, ok := r.Find(reflect.TypeFor[position]())
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())

	k := Of[position](r)
	found, ok := r.Find(reflect.TypeFor[position]())
	assert.True(t, ok)
	assert.Equal(t, k, found)
}

func TestNames(t *testing.T) {
	r := New()
	a := Of[position](r)
	b := Of[velocity](r)

	assert.Equal(t,
		[]string{"typereg.position", "typereg.velocity", "<unknown:42>"},
		r.Names(a, b, TypeKey(42)),
	)
}

func TestEntries_Snapshot(t *testing.T) {
	r := New()
	Of[position](r)
	Of[velocity](r)

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, TypeKey(1), entries[0].Key)
	assert.Equal(t, "typereg.position", entries[0].Name)
	assert.Equal(t, TypeKey(2), entries[1].Key)

	// Later interning does not leak into an old snapshot.
	Of[int](r)
	assert.Len(t, entries, 2)
}

func TestIntern_Concurrent(t *testing.T) {
	r := New()
	types := []reflect.Type{
		reflect.TypeFor[position](),
		reflect.TypeFor[velocity](),
		reflect.TypeFor[int](),
		reflect.TypeFor[string](),
	}

	const workers = 16
	results := make([][]TypeKey, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			keys := make([]TypeKey, len(types))
			for i, typ := range types {
				keys[i] = r.Intern(typ)
				_, _ = r.Lookup(keys[i])
			}
			results[w] = keys
		}(w)
	}
	wg.Wait()

	assert.Equal(t, len(types), r.Len())
	for w := 1; w < workers; w++ {
		assert.Equal(t, results[0], results[w], "every goroutine must observe the same keys")
	}
}
