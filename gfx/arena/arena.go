// Package arena implements the generational resource arena spec.md §9
// recommends as the idiomatic-Go replacement for the C core's "opaque
// handle with a hidden pointer" pattern: "allocates backend records in a
// per-resource arena keyed by (generation, index) so handles are POD
// 64-bit values, double-destroy is detectable, and use-after-destroy is a
// runtime error rather than undefined behavior." Both the Vulkan and
// WebGPU backends use one Arena per resource class.
//
// The free-list is a gfx/container.Array used as a stack (Push/Pop), tying
// the core containers module (spec.md §2) directly into the backend's
// resource bookkeeping rather than letting it sit unexercised.
package arena

import "github.com/zirconengine/zircon/gfx/container"

type slot[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Arena is a generational slot allocator. The zero value is ready to use.
type Arena[T any] struct {
	slots []slot[T]
	free  *container.Array
}

// Key is the (generation, index) pair packed into a 64-bit handle: index in
// the low 32 bits, generation in the high 32 bits. A Key of 0 is never
// issued by Insert (generation starts at 1), so it doubles as the null
// sentinel spec.md §3 requires.
type Key uint64

func packKey(index, gen uint32) Key {
	return Key(uint64(gen)<<32 | uint64(index))
}

func (k Key) index() uint32 { return uint32(k) }
func (k Key) gen() uint32   { return uint32(k >> 32) }

func (a *Arena[T]) ensureFree() {
	if a.free == nil {
		a.free = container.NewArray()
	}
}

// Insert stores value in a free slot (or a freshly appended one),
// returning its key. A reused slot keeps the generation Remove already
// bumped, so any previously issued key referencing that index is stale.
func (a *Arena[T]) Insert(value T) Key {
	a.ensureFree()
	if a.free.Len() > 0 {
		idxAny, _ := a.free.Pop()
		idx := idxAny.(uint32)
		s := &a.slots[idx]
		s.value = value
		s.live = true
		return packKey(idx, s.gen)
	}
	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{value: value, gen: 1, live: true})
	return packKey(idx, 1)
}

// Get returns the value for key and whether it is still live — false for a
// null key, a stale (already-destroyed) key, or an out-of-range key.
func (a *Arena[T]) Get(key Key) (T, bool) {
	var zero T
	if key == 0 {
		return zero, false
	}
	idx := key.index()
	if int(idx) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[idx]
	if !s.live || s.gen != key.gen() {
		return zero, false
	}
	return s.value, true
}

// Set overwrites the value stored at key in place, without touching its
// generation. Used by backends whose handle refers to mutable state (a
// swapchain's current image index, its frame-ring cursor) rather than an
// immutable resource. Reports false for a null, stale, or out-of-range key.
func (a *Arena[T]) Set(key Key, value T) bool {
	if key == 0 {
		return false
	}
	idx := key.index()
	if int(idx) >= len(a.slots) {
		return false
	}
	s := &a.slots[idx]
	if !s.live || s.gen != key.gen() {
		return false
	}
	s.value = value
	return true
}

// Remove retires key's slot, bumping its generation so the index cannot be
// mistaken for the same handle if reused, and pushes the index onto the
// free list. Removing a null, stale, or already-removed key is a no-op and
// reports false — callers use this to detect double-destroy.
func (a *Arena[T]) Remove(key Key) bool {
	if key == 0 {
		return false
	}
	idx := key.index()
	if int(idx) >= len(a.slots) {
		return false
	}
	s := &a.slots[idx]
	if !s.live || s.gen != key.gen() {
		return false
	}
	var zero T
	s.value = zero
	s.live = false
	s.gen++
	a.ensureFree()
	a.free.Push(idx)
	return true
}

// Len returns the number of live entries.
func (a *Arena[T]) Len() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].live {
			n++
		}
	}
	return n
}
