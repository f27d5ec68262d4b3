// Package platform declares the external platform contract the core
// consumes (spec.md §6): window/native-handle access, required instance
// extensions, native surface construction, a Vulkan loader entry point, a
// presentation-support predicate, a monotonic clock and timestamp
// formatter, and a platform-preferred backend. It intentionally has no
// Vulkan or WebGPU import of its own — concrete implementations (e.g.
// platform/glfw) depend on the backend libraries, not this package.
package platform

import "github.com/zirconengine/zircon/gfx/glog"

// Backend identifies which render device a platform prefers or forces.
type Backend int

const (
	BackendAuto Backend = iota
	BackendVulkan
	BackendWebGPU
)

// Window is the minimal native-window surface the core needs: a handle
// opaque to the core (the concrete type is backend-specific — a GLFW
// *glfw.Window, a browser canvas reference, …) plus the handful of queries
// every render device's swapchain path needs.
type Window interface {
	// NativeHandle returns the platform-specific window handle (the
	// concrete type the surface-construction call expects).
	NativeHandle() any
	// FramebufferSize returns the current drawable size in pixels.
	FramebufferSize() (width, height int)
	// ShouldClose reports whether the platform has requested shutdown
	// (close button, OS signal, …).
	ShouldClose() bool
}

// Platform is the full external contract consumed by gfx.Init and by the
// Vulkan/WebGPU backends during adapter and swapchain setup.
type Platform interface {
	glog.ConsoleSink
	glog.Timestamper

	// RequiredInstanceExtensions returns the instance extensions the
	// window system needs (e.g. VK_KHR_surface plus a platform surface
	// extension).
	RequiredInstanceExtensions() []string

	// CreateSurface builds a native surface for window against the given
	// Vulkan instance (instance is a vk.Instance passed as `any` to keep
	// this package backend-agnostic); returns a backend-defined surface
	// handle as `any`.
	CreateSurface(instance any, window Window) (surface any, err error)

	// PresentationSupport reports whether the given queue family of the
	// given physical device can present to window's surface. Arguments
	// are passed as `any` for the same reason as CreateSurface.
	PresentationSupport(physicalDevice any, queueFamily uint32, window Window) bool

	// LoaderEntryPoint returns the Vulkan instance-proc-addr loader entry,
	// so the window system can do its own swapchain/surface work.
	LoaderEntryPoint() any

	// Monotonic returns seconds elapsed since an arbitrary epoch fixed at
	// process start (spec.md's get_time).
	Monotonic() float64

	// PreferredBackend returns the platform's preferred backend (e.g.
	// always BackendWebGPU when compiled for the web).
	PreferredBackend(requested Backend) Backend

	// PollEvents pumps the platform's event queue once per application
	// loop tick.
	PollEvents()
}
