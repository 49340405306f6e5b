package machine

import (
	"fmt"
	"testing"

	"github.com/ohaddr/vesper/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalsGetSet(t *testing.T) {
	g := NewGlobals()
	key := value.NewString("x")

	_, ok := g.Get(key)
	assert.False(t, ok)

	g.Set(key, value.Number(42))
	v, ok := g.Get(key)
	require.True(t, ok)
	assert.Equal(t, 42.0, v.AsNumber())

	g.Set(key, value.Number(43))
	v, ok = g.Get(key)
	require.True(t, ok)
	assert.Equal(t, 43.0, v.AsNumber())
}

func TestGlobalsStartsAtCapacityEight(t *testing.T) {
	g := NewGlobals()
	g.Set(value.NewString("a"), value.Number(1))
	assert.Equal(t, 8, g.capacity)
}

func TestGlobalsDeleteLeavesTombstoneForProbing(t *testing.T) {
	g := NewGlobals()
	// Force a handful of keys into the same small table so some collide.
	keys := make([]*value.String, 6)
	for i := range keys {
		keys[i] = value.NewString(fmt.Sprintf("k%d", i))
		g.Set(keys[i], value.Number(float64(i)))
	}

	require.True(t, g.Delete(keys[2]))
	assert.False(t, g.Delete(keys[2]), "deleting twice reports no binding the second time")

	_, ok := g.Get(keys[2])
	assert.False(t, ok)

	// Every other key must still resolve despite the tombstone in its probe
	// chain.
	for i, k := range keys {
		if i == 2 {
			continue
		}
		v, ok := g.Get(k)
		require.True(t, ok, "key %d should still be found", i)
		assert.Equal(t, float64(i), v.AsNumber())
	}
}

func TestGlobalsGrowsPastLoadFactor(t *testing.T) {
	g := NewGlobals()
	keys := make([]*value.String, 7)
	for i := range keys {
		keys[i] = value.NewString(fmt.Sprintf("k%d", i))
		g.Set(keys[i], value.Number(float64(i)))
	}
	// 7 entries at capacity 8 exceeds 0.75 load factor, so capacity should
	// have doubled to 16 by now.
	assert.Equal(t, 16, g.capacity)

	for i, k := range keys {
		v, ok := g.Get(k)
		require.True(t, ok)
		assert.Equal(t, float64(i), v.AsNumber())
	}
}

func TestGlobalsLookupIsByContentNotIdentity(t *testing.T) {
	g := NewGlobals()
	a := value.NewString("dup")
	b := value.NewString("dup")
	g.Set(a, value.Number(1))

	v, ok := g.Get(b)
	require.True(t, ok, "two distinct String objects with equal content must resolve to the same global")
	assert.Equal(t, 1.0, v.AsNumber())
}
