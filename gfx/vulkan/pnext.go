package vulkan

import "unsafe"

// unsafePointerOf adapts a typed pointer to a chained Vulkan struct's PNext
// field, which this binding types as unsafe.Pointer — used wherever a
// feature/rendering-info struct needs to be threaded into a *CreateInfo,
// something legacy/asche and legacy/dieselvk never had to do since neither
// chains pNext structures.
func unsafePointerOf[T any](p *T) unsafe.Pointer {
	return unsafe.Pointer(p)
}
