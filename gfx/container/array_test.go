package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayPushPopStackOrder(t *testing.T) {
	a := NewArray()
	a.Push(1)
	a.Push(2)
	a.Push(3)
	assert.Equal(t, 3, a.Len())

	v, ok := a.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, a.Len())
}

func TestArrayPopEmpty(t *testing.T) {
	a := NewArray()
	_, ok := a.Pop()
	assert.False(t, ok)
}

func TestArrayInsertRemovePreservesOrder(t *testing.T) {
	a := NewArray()
	a.Push("a")
	a.Push("c")
	a.Insert(1, "b")

	assert.Equal(t, []any{"a", "b", "c"}, collect(a))

	a.Remove(0)
	assert.Equal(t, []any{"b", "c"}, collect(a))
}

func TestArrayRemoveSwapMovesLastElementIntoSlot(t *testing.T) {
	a := NewArray()
	a.Push("a")
	a.Push("b")
	a.Push("c")

	a.RemoveSwap(0)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, "c", a.Get(0), "RemoveSwap moves the last element into the removed slot")
	assert.Equal(t, "b", a.Get(1))
}

func TestArrayClear(t *testing.T) {
	a := NewArray()
	a.Push(1)
	a.Push(2)
	a.Clear()
	assert.Equal(t, 0, a.Len())
}

func TestArrayGrowsBeyondInitialCapacity(t *testing.T) {
	a := NewArray()
	for i := 0; i < initialArrayCapacity*3; i++ {
		a.Push(i)
	}
	assert.Equal(t, initialArrayCapacity*3, a.Len())
	for i := 0; i < initialArrayCapacity*3; i++ {
		assert.Equal(t, i, a.Get(i))
	}
}

func collect(a *Array) []any {
	out := make([]any, a.Len())
	for i := 0; i < a.Len(); i++ {
		out[i] = a.Get(i)
	}
	return out
}
