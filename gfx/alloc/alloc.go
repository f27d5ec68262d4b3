// Package alloc defines the injectable allocator interface that the core
// uses for its own bookkeeping (resource records, container backing
// storage), separate from GPU memory allocation which the Vulkan backend
// delegates to its sub-allocator (see suballocator in gfx/vulkan/memory.go).
package alloc

// Allocator is the process-wide default allocator contract: alloc(size) and
// free(ptr) in spec.md §2. Go's runtime allocator and GC satisfy this
// trivially; the interface exists so a host embedding zircon in a
// constrained environment can supply an arena or pool allocator instead.
type Allocator interface {
	Alloc(size int) []byte
	Free(buf []byte)
}

// heapAllocator is the process-wide default allocator: a thin pass-through
// to the Go heap. Free is a no-op since the garbage collector reclaims the
// backing array once unreferenced; it exists to satisfy the Allocator
// contract for callers that swap in a pooled allocator.
type heapAllocator struct{}

func (heapAllocator) Alloc(size int) []byte { return make([]byte, size) }
func (heapAllocator) Free([]byte)            {}

// Default is the process-wide heap-backed allocator used when no allocator
// is explicitly injected.
var Default Allocator = heapAllocator{}
