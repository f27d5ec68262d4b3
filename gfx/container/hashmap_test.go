package container

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashMapSetGet(t *testing.T) {
	m := NewHashMap()
	m.Set("a", 1)
	m.Set("b", 2)

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, m.Count())
}

func TestHashMapOverwriteDoesNotIncreaseCount(t *testing.T) {
	m := NewHashMap()
	m.Set("a", 1)
	m.Set("a", 2)

	assert.Equal(t, 1, m.Count())
	v, _ := m.Get("a")
	assert.Equal(t, 2, v)
}

func TestHashMapMissingKey(t *testing.T) {
	m := NewHashMap()
	_, ok := m.Get("missing")
	assert.False(t, ok)
	assert.False(t, m.Has("missing"))
}

func TestHashMapRemoveLeavesTombstoneProbeChainIntact(t *testing.T) {
	m := NewHashMapSize(4)
	// Force several keys to collide on the same initial bucket before one is
	// removed, so Get on a later key must still walk past the tombstone.
	// With 16 slots the bucket is the low 4 bits of fnv1a, and these keys
	// differ only in the high nibble of their last byte: all land in bucket 14.
	keys := []string{"k0", "k@", "kP", "kp"}
	for i, k := range keys {
		m.Set(k, i)
	}

	assert.True(t, m.Remove("k@"))
	assert.False(t, m.Has("k@"))

	for i, k := range keys {
		if k == "k@" {
			continue
		}
		v, ok := m.Get(k)
		assert.True(t, ok, "probe chain through a tombstone must still find %s", k)
		assert.Equal(t, i, v)
	}
}

func TestHashMapRemoveMissingKey(t *testing.T) {
	m := NewHashMap()
	assert.False(t, m.Remove("nope"))
}

func TestHashMapGrowPreservesEntries(t *testing.T) {
	m := NewHashMap()
	n := initialCapacity * 2
	for i := 0; i < n; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}
	assert.Equal(t, n, m.Count())
	for i := 0; i < n; i++ {
		v, ok := m.Get(fmt.Sprintf("key-%d", i))
		assert.True(t, ok)
		assert.Equal(t, i, v)
	}
}

func TestHashMapKeys(t *testing.T) {
	m := NewHashMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Remove("a")

	assert.ElementsMatch(t, []string{"b"}, m.Keys())
}

func TestNewHashMapSizeRoundsUpToPowerOfTwo(t *testing.T) {
	m := NewHashMapSize(20)
	assert.Equal(t, 32, len(m.entries))
	for i := 0; i < 15; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
	}
	assert.Equal(t, 15, m.Count())
}
