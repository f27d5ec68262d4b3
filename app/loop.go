package app

import (
	"fmt"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/glog"
	"github.com/zirconengine/zircon/gfx/vulkan"
	"github.com/zirconengine/zircon/platform"
	"github.com/zirconengine/zircon/platform/glfw"
)

// App is the client contract the loop drives, generalizing
// legacy/asche.Application's VulkanInit/prepare/invalidate hooks into the
// three-phase cycle spec.md §7 names: one-time setup against the bound
// gfx.Device and swapchain, a per-tick callback receiving elapsed seconds,
// and teardown.
type App interface {
	// Init runs once after the device and swapchain are ready.
	Init(swapchain gfx.Swapchain) error
	// Tick runs once per loop iteration in which a swapchain image was
	// acquired, after PollEvents, with dt the seconds elapsed since the
	// previous loop iteration (a skipped iteration still advances the clock).
	Tick(dt float64) error
	// Terminate runs once before the device is torn down.
	Terminate()
}

// Loop owns the platform, main window, bound gfx.Device, and main
// swapchain for the process lifetime — the "Application Loop" module of
// spec.md §7, kept separate from the gfx core itself (gfx knows nothing
// about windows or frame pacing).
type Loop struct {
	cfg      Config
	platform *glfw.Platform
	window   *glfw.Window
	swapchain gfx.Swapchain
}

// Run wires platform -> window -> gfx.Init -> swapchain -> app.Init, then
// drives poll+tick until the window requests close or app.Tick errors, and
// finally runs app.Terminate -> swapchain/device/platform teardown in
// reverse order. It is the single entry point cmd/triangle and any other
// executable built against this engine calls from main.
func Run(cfg Config, newApp func() App) error {
	glog.Global.Min = cfg.LogLevelValue()

	p, err := glfw.New()
	if err != nil {
		return fmt.Errorf("app: platform init failed: %w", err)
	}
	defer p.Terminate()

	win, err := p.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	if err != nil {
		return fmt.Errorf("app: window creation failed: %w", err)
	}

	vkCfg := cfg.VulkanConfig()
	if err := gfx.Init(func() (gfx.Device, error) {
		return vulkan.New(p, win, vkCfg)
	}); err != nil {
		return fmt.Errorf("app: gfx init failed: %w", err)
	}
	defer gfx.Terminate()

	width, height := win.FramebufferSize()
	swapchain := gfx.CreateSwapchain(gfx.SwapchainDesc{
		Window:          win.NativeHandle(),
		RequestedWidth:  uint32(width),
		RequestedHeight: uint32(height),
		Format:          gfx.FormatBGRA8Unorm,
		VSync:           cfg.VSync,
	})
	defer gfx.DestroySwapchain(swapchain)

	loop := &Loop{cfg: cfg, platform: p, window: win, swapchain: swapchain}

	application := newApp()
	if err := application.Init(swapchain); err != nil {
		return fmt.Errorf("app: Init failed: %w", err)
	}
	defer application.Terminate()

	return loop.drive(application)
}

func (l *Loop) drive(application App) error {
	last := l.platform.Monotonic()
	for !l.window.ShouldClose() {
		l.platform.PollEvents()

		now := l.platform.Monotonic()
		dt := now - last
		last = now

		// Acquire before Tick records anything: the index Tick renders
		// into (read back via gfx.SwapchainCurrentIndex) and the index
		// Present ships to the screen must be the same frame.
		idx, err := gfx.SwapchainAcquire(l.swapchain)
		if err != nil {
			return fmt.Errorf("app: SwapchainAcquire failed: %w", err)
		}
		if idx < 0 {
			// Out-of-date swapchain: SwapchainAcquire already resized it.
			// Skip this frame rather than Tick against a stale extent.
			continue
		}

		if err := application.Tick(dt); err != nil {
			return fmt.Errorf("app: Tick failed: %w", err)
		}
		if err := gfx.SwapchainPresent(l.swapchain); err != nil {
			glog.Global.Errorf("app: SwapchainPresent failed: %v", err)
		}
	}
	return nil
}

// PreferredBackend resolves a platform.Backend request the way
// spec.md's get_graphics_backend contract describes, deferring to the
// platform's own preference (this desktop platform always prefers Vulkan;
// a browser platform would always answer WebGPU regardless of request).
func PreferredBackend(p platform.Platform, requested platform.Backend) platform.Backend {
	return p.PreferredBackend(requested)
}
