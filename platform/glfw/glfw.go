// Package glfw is the concrete platform.Platform implementation backed by
// github.com/go-gl/glfw/v3.3/glfw, generalizing
// _examples/vulkan-go-asche/display.go's CoreDisplay (window handle plus
// CreateWindowSurface) into the full platform.Platform contract: required
// instance extensions, surface creation, presentation-support queries, a
// monotonic clock, and the console sink the application loop logs through.
package glfw

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx/glog"
	"github.com/zirconengine/zircon/platform"
)

// Window wraps a *glfw.Window to satisfy platform.Window.
type Window struct {
	win *glfw.Window
}

func (w *Window) NativeHandle() any { return w.win }

func (w *Window) FramebufferSize() (int, int) {
	return w.win.GetFramebufferSize()
}

func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// Platform is the GLFW-backed platform.Platform. start is recorded at
// construction so Monotonic() returns seconds since process start, matching
// spec.md's get_time contract rather than GLFW's own epoch.
type Platform struct {
	start    time.Time
	instance vk.Instance
	win      *glfw.Window
}

// BindInstance records the live vk.Instance so PresentationSupport can call
// GLFW's instance-scoped presentation query. gfx/vulkan.New calls this right
// after the instance is created and before adapter selection, since
// platform.Platform.PresentationSupport takes no instance argument of its
// own (spec.md's platform contract predates per-call instance threading).
func (p *Platform) BindInstance(instance any) {
	if vkInstance, ok := instance.(vk.Instance); ok {
		p.instance = vkInstance
	}
}

// New initializes GLFW. Callers must call Terminate when done; a single
// Platform is meant to outlive every window it creates.
func New() (*Platform, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: init failed: %w", err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw: vulkan not supported on this system")
	}
	return &Platform{start: time.Now()}, nil
}

func (p *Platform) Terminate() {
	glfw.Terminate()
}

// CreateWindow opens a GLFW window sized width x height, hinting
// ClientAPI=NoAPI since this repo never drives GLFW's own GL/GLES context.
func (p *Platform) CreateWindow(width, height int, title string) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw: CreateWindow failed: %w", err)
	}
	p.win = win
	return &Window{win: win}, nil
}

// RequiredInstanceExtensions mirrors every pack caller of this GLFW binding
// (_examples/vulkan-go-asche/core.go, cogentcore-core's desktop driver):
// the query is a method on a live *glfw.Window, not a package-level call, so
// this requires CreateWindow to have run first.
func (p *Platform) RequiredInstanceExtensions() []string {
	if p.win == nil {
		return nil
	}
	return p.win.GetRequiredInstanceExtensions()
}

// CreateSurface generalizes CoreDisplay.GetVulkanSurface: instance arrives as
// `any` (a vk.Instance) to keep the platform package free of a Vulkan
// import, and the returned surface is likewise `any` (a vk.Surface) for the
// vulkan package to type-assert back.
func (p *Platform) CreateSurface(instance any, window platform.Window) (any, error) {
	w, ok := window.(*Window)
	if !ok {
		return nil, fmt.Errorf("glfw: CreateSurface called with a non-glfw window")
	}
	vkInstance, ok := instance.(vk.Instance)
	if !ok {
		return nil, fmt.Errorf("glfw: CreateSurface called with a non-vulkan instance")
	}
	surfacePtr, err := w.win.CreateWindowSurface(vkInstance, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw: CreateWindowSurface failed: %w", err)
	}
	return vk.SurfaceFromPointer(surfacePtr), nil
}

func (p *Platform) PresentationSupport(physicalDevice any, queueFamily uint32, window platform.Window) bool {
	pd, ok := physicalDevice.(vk.PhysicalDevice)
	if !ok || p.instance == nil {
		return false
	}
	_ = window
	return glfw.GetPhysicalDevicePresentationSupport(p.instance, pd, queueFamily)
}

func (p *Platform) LoaderEntryPoint() any {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (p *Platform) Monotonic() float64 {
	return time.Since(p.start).Seconds()
}

func (p *Platform) PreferredBackend(requested platform.Backend) platform.Backend {
	if requested != platform.BackendAuto {
		return requested
	}
	return platform.BackendVulkan
}

func (p *Platform) PollEvents() {
	glfw.PollEvents()
}

// ConsoleLog and Timestamp satisfy glog.ConsoleSink and glog.Timestamper so
// the application loop can route gfx/glog.Global through the platform
// instead of (or in addition to) stdout/stderr, per spec.md §4.7's
// "console_log, get_timestamp" platform contract.
func (p *Platform) ConsoleLog(msg string, isError bool) {
	glog.DefaultSink.ConsoleLog(msg, isError)
}

func (p *Platform) Timestamp() string {
	return glog.DefaultClock.Timestamp()
}
