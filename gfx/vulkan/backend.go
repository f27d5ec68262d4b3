// Package vulkan implements gfx.Device against the Vulkan 1.2 API via
// github.com/vulkan-go/vulkan, the binding legacy/asche and legacy/dieselvk
// both depend on. Every resource kind gets its own gfx/arena.Arena so a
// handle is a (generation, index) pair rather than a raw pointer — double
// destroy and use-after-destroy both fail safely instead of corrupting
// driver state, the idiomatic-Go generalization of the C core's opaque
// handle spec.md §9 calls for.
package vulkan

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
	"github.com/zirconengine/zircon/platform"
)

// Backend is the Vulkan realization of gfx.Device. Exactly one is bound to
// the package-level gfx vtable for the process lifetime (spec.md §3).
type Backend struct {
	platform platform.Platform
	cfg      Config

	instance       vk.Instance
	debug          *debugMessenger
	physicalDevice vk.PhysicalDevice
	memProps       vk.PhysicalDeviceMemoryProperties

	device         vk.Device
	graphicsQueue  vk.Queue
	presentQueue   vk.Queue
	graphicsFamily uint32
	presentFamily  uint32
	separateQueues bool

	descriptorPool vk.DescriptorPool
	alloc          *suballocator

	features gfx.DeviceFeatures
	limits   gfx.Limits

	buffers          arena.Arena[bufferResource]
	textures         arena.Arena[textureResource]
	textureViews     arena.Arena[textureViewResource]
	samplers         arena.Arena[samplerResource]
	shaders          arena.Arena[shaderResource]
	bindGroupLayouts arena.Arena[bindGroupLayoutResource]
	pipelineLayouts  arena.Arena[pipelineLayoutResource]
	pipelines        arena.Arena[pipelineResource]
	bindGroups       arena.Arena[bindGroupResource]
	renderPasses     arena.Arena[renderPassResource]
	framebuffers     arena.Arena[framebufferResource]
	commandBuffers   arena.Arena[commandBufferResource]
	swapchains       arena.Arena[swapchainResource]

	cbState map[gfx.CommandBuffer]cbTrackedState

	// pendingAcquire names the semaphore pair a just-completed
	// SwapchainAcquire is waiting to be bridged into a render-complete
	// signal. The next CmdSubmit call consumes it; see commandbuffer.go.
	pendingAcquire *pendingAcquire
}

type pendingAcquire struct {
	imageAcquired  vk.Semaphore
	renderComplete vk.Semaphore
}

// takePendingAcquire returns and clears the outstanding acquire, if any, so
// only the first submit after a SwapchainAcquire picks up its semaphores.
func (b *Backend) takePendingAcquire() *pendingAcquire {
	p := b.pendingAcquire
	if p == nil {
		return nil
	}
	b.pendingAcquire = nil
	return p
}

// New constructs a Vulkan Backend against window and returns it satisfying
// gfx.Device, matching the ctor signature gfx.Init expects. cfg supplies
// the frame-in-flight count and descriptor-pool sizing (app/config.go
// layers TOML overrides on top of vulkan.DefaultConfig()).
func New(p platform.Platform, window platform.Window, cfg Config) (gfx.Device, error) {
	if entry, ok := p.LoaderEntryPoint().(unsafe.Pointer); ok && entry != nil {
		vk.SetGetInstanceProcAddr(entry)
	}
	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vulkan: loader init failed: %w", err)
	}

	instance, debugEnabled, err := createInstance(p, cfg.EnableValidation)
	if err != nil {
		return nil, err
	}
	debug := createDebugMessenger(instance, debugEnabled)

	if binder, ok := p.(interface{ BindInstance(any) }); ok {
		binder.BindInstance(instance)
	}

	sel, err := selectPhysicalDevice(instance, p, window)
	if err != nil {
		debug.destroy()
		destroyInstance(instance)
		return nil, err
	}

	ld, err := createLogicalDevice(sel)
	if err != nil {
		debug.destroy()
		destroyInstance(instance)
		return nil, err
	}

	pool, err := createDescriptorPool(ld.device, cfg)
	if err != nil {
		destroyLogicalDevice(ld.device)
		debug.destroy()
		destroyInstance(instance)
		return nil, err
	}

	b := &Backend{
		platform:       p,
		cfg:            cfg,
		instance:       instance,
		debug:          debug,
		physicalDevice: sel.candidate.physicalDevice,
		memProps:       sel.candidate.memProperties,
		device:         ld.device,
		graphicsQueue:  ld.graphicsQueue,
		presentQueue:   ld.presentQueue,
		graphicsFamily: sel.graphicsFamily,
		presentFamily:  sel.presentFamily,
		separateQueues: sel.separateQueues,
		descriptorPool: pool,
		features:       ld.features,
		limits:         ld.limits,
	}
	b.alloc = newSuballocator(b.device, b.memProps)

	glog.Global.Infof("vulkan: backend ready (frames-in-flight=%d)", cfg.FramesInFlight)
	return b, nil
}

func (b *Backend) Terminate() {
	vk.DeviceWaitIdle(b.device)
	vk.DestroyDescriptorPool(b.device, b.descriptorPool, nil)
	destroyLogicalDevice(b.device)
	b.debug.destroy()
	destroyInstance(b.instance)
}

func (b *Backend) Features() gfx.DeviceFeatures { return b.features }
func (b *Backend) Limits() gfx.Limits           { return b.limits }
