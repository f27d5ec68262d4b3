package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaInsertGet(t *testing.T) {
	var a Arena[string]
	k := a.Insert("hello")

	v, ok := a.Get(k)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 1, a.Len())
}

func TestArenaNullKey(t *testing.T) {
	var a Arena[int]
	_, ok := a.Get(0)
	assert.False(t, ok)
	assert.False(t, a.Remove(0))
}

func TestArenaRemoveDetectsDoubleDestroy(t *testing.T) {
	var a Arena[int]
	k := a.Insert(42)

	assert.True(t, a.Remove(k))
	assert.False(t, a.Remove(k), "removing an already-removed key must report false")
	assert.Equal(t, 0, a.Len())
}

func TestArenaStaleKeyAfterReuse(t *testing.T) {
	var a Arena[int]
	k1 := a.Insert(1)
	a.Remove(k1)

	k2 := a.Insert(2)
	assert.NotEqual(t, k1, k2, "generation bump must make the reused index a distinct key")

	_, ok := a.Get(k1)
	assert.False(t, ok, "a stale key must not resolve to the slot it no longer owns")

	v2, ok := a.Get(k2)
	assert.True(t, ok)
	assert.Equal(t, 2, v2)
}

func TestArenaSetOverwritesInPlace(t *testing.T) {
	var a Arena[int]
	k := a.Insert(1)

	assert.True(t, a.Set(k, 99))
	v, ok := a.Get(k)
	assert.True(t, ok)
	assert.Equal(t, 99, v)
}

func TestArenaSetRejectsStaleOrNullKeys(t *testing.T) {
	var a Arena[int]
	assert.False(t, a.Set(0, 1))

	k := a.Insert(1)
	a.Remove(k)
	assert.False(t, a.Set(k, 2))
}

func TestArenaFreeListReusesIndices(t *testing.T) {
	var a Arena[int]
	k1 := a.Insert(1)
	k2 := a.Insert(2)
	a.Remove(k1)

	k3 := a.Insert(3)
	assert.Equal(t, k1.index(), k3.index(), "a freed index should be reused before the slice grows")
	assert.NotEqual(t, uint32(0), k3.gen())

	v2, ok := a.Get(k2)
	assert.True(t, ok)
	assert.Equal(t, 2, v2)
}
