package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
	"github.com/zirconengine/zircon/platform"
)

// chooseSurfaceFormat picks desired if the surface advertises it, otherwise
// falls back to the first advertised format, and to a fixed sRGB default
// when the surface reports FormatUndefined (meaning "any format"),
// generalizing legacy/dieselvk/swapchain.go's NewCoreSwapchain fallback.
func chooseSurfaceFormat(available []vk.SurfaceFormat, desired vk.Format) vk.SurfaceFormat {
	if len(available) == 0 {
		return vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorspaceSrgbNonlinear}
	}
	if len(available) == 1 && available[0].Format == vk.FormatUndefined {
		return vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: available[0].ColorSpace}
	}
	for _, f := range available {
		if f.Format == desired {
			return f
		}
	}
	return available[0]
}

// choosePresentMode prefers Mailbox when vsync is off and the surface
// supports it (lowest added latency without tearing), falls back to
// Immediate, and otherwise the always-available FIFO mode — the legacy
// render loop (legacy/dieselvk/swapchain.go) hard-codes FIFO only; this
// generalizes it to spec.md §4.1's PresentMode selection.
func choosePresentMode(available []vk.PresentMode, vsync bool) vk.PresentMode {
	if vsync {
		return vk.PresentModeFifo
	}
	hasMailbox, hasImmediate := false, false
	for _, m := range available {
		switch m {
		case vk.PresentModeMailbox:
			hasMailbox = true
		case vk.PresentModeImmediate:
			hasImmediate = true
		}
	}
	switch {
	case hasMailbox:
		return vk.PresentModeMailbox
	case hasImmediate:
		return vk.PresentModeImmediate
	default:
		return vk.PresentModeFifo
	}
}

// chooseExtent matches the surface's CurrentExtent when it is authoritative
// (not the sentinel MaxUint32), otherwise clamps the caller's requested size
// into [MinImageExtent, MaxImageExtent].
func chooseExtent(caps vk.SurfaceCapabilities, requestedWidth, requestedHeight uint32) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}
	clamp := func(v, lo, hi uint32) uint32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return vk.Extent2D{
		Width:  clamp(requestedWidth, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(requestedHeight, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// chooseImageCount requests one more than the minimum (to avoid stalling on
// the driver while it prepares the previous image) and clamps to the
// surface's maximum when the surface declares one (0 means unbounded).
func chooseImageCount(caps vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

type swapchainResource struct {
	window        platform.Window
	surface       vk.Surface
	swapchain     vk.Swapchain
	format        vk.SurfaceFormat
	extent        vk.Extent2D
	textures      []gfx.Texture
	views         []vk.ImageView
	frames        []frameSync
	frameIndex    int
	currentImage  uint32
	vsync         bool
}

// CreateSwapchain builds the native surface through the bound platform,
// queries its capabilities, negotiates format/present-mode/extent/image
// count with the pure helpers above, and wraps each resulting vk.Image as a
// foreign (non-owned) gfx.Texture via resources_texture.go's
// registerForeignTexture, the same pattern legacy/dieselvk/swapchain.go
// uses to bind its per-image views.
func (b *Backend) CreateSwapchain(desc gfx.SwapchainDesc) gfx.Swapchain {
	window, ok := desc.Window.(platform.Window)
	if !ok {
		glog.Global.Errorf("vulkan: CreateSwapchain requires a platform.Window")
		return 0
	}

	rawSurface, err := b.platform.CreateSurface(b.instance, window)
	if err != nil {
		glog.Global.Errorf("vulkan: CreateSurface failed: %v", err)
		return 0
	}
	surface, ok := rawSurface.(vk.Surface)
	if !ok {
		glog.Global.Errorf("vulkan: platform returned a surface of unexpected type %T", rawSurface)
		return 0
	}

	rec, err := b.buildSwapchain(window, surface, desc, vk.NullSwapchain)
	if err != nil {
		glog.Global.Errorf("vulkan: CreateSwapchain failed: %v", err)
		vk.DestroySurface(b.instance, surface, nil)
		return 0
	}

	key := b.swapchains.Insert(rec)
	glog.Global.Infof("vulkan: swapchain created (%dx%d, images=%d)", rec.extent.Width, rec.extent.Height, len(rec.textures))
	return gfx.Swapchain(key)
}

// buildSwapchain does the live work shared by CreateSwapchain and
// SwapchainResize: capability query, negotiation via the pure helpers
// above, swapchain/image-view/frame-sync creation. oldSwapchain chains
// into vk.SwapchainCreateInfo.OldSwapchain so the driver can recycle
// internal state across a resize, per the Vulkan spec's recommended resize
// path (legacy/dieselvk/swapchain.go's old_swapchain field, generalized
// here to actually thread the old handle through instead of leaving it
// unused).
func (b *Backend) buildSwapchain(window platform.Window, surface vk.Surface, desc gfx.SwapchainDesc, oldSwapchain vk.Swapchain) (swapchainResource, error) {
	var caps vk.SurfaceCapabilities
	vk.GetPhysicalDeviceSurfaceCapabilities(b.physicalDevice, surface, &caps)
	caps.Deref()

	var formatCount uint32
	vk.GetPhysicalDeviceSurfaceFormats(b.physicalDevice, surface, &formatCount, nil)
	formats := make([]vk.SurfaceFormat, formatCount)
	vk.GetPhysicalDeviceSurfaceFormats(b.physicalDevice, surface, &formatCount, formats)
	for i := range formats {
		formats[i].Deref()
	}

	var modeCount uint32
	vk.GetPhysicalDeviceSurfacePresentModes(b.physicalDevice, surface, &modeCount, nil)
	modes := make([]vk.PresentMode, modeCount)
	vk.GetPhysicalDeviceSurfacePresentModes(b.physicalDevice, surface, &modeCount, modes)

	format := chooseSurfaceFormat(formats, toVkFormat(desc.Format))
	presentMode := choosePresentMode(modes, desc.VSync)
	extent := chooseExtent(caps, desc.RequestedWidth, desc.RequestedHeight)
	imageCount := chooseImageCount(caps)

	sharing := vk.SharingModeExclusive
	queueFamilyIndices := []uint32{b.graphicsFamily}
	if b.separateQueues {
		sharing = vk.SharingModeConcurrent
		queueFamilyIndices = []uint32{b.graphicsFamily, b.presentFamily}
	}

	var swapchain vk.Swapchain
	ret := vk.CreateSwapchain(b.device, &vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               surface,
		MinImageCount:         imageCount,
		ImageFormat:           format.Format,
		ImageColorSpace:       format.ColorSpace,
		ImageExtent:           extent,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit) | vk.ImageUsageFlags(vk.ImageUsageTransferDstBit),
		ImageSharingMode:      sharing,
		QueueFamilyIndexCount: uint32(len(queueFamilyIndices)),
		PQueueFamilyIndices:   queueFamilyIndices,
		PreTransform:          caps.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           presentMode,
		Clipped:               vk.True,
		OldSwapchain:          oldSwapchain,
	}, nil, &swapchain)
	if isError(ret) {
		return swapchainResource{}, newError(ret)
	}
	if oldSwapchain != vk.NullSwapchain {
		vk.DestroySwapchain(b.device, oldSwapchain, nil)
	}

	var imageN uint32
	vk.GetSwapchainImages(b.device, swapchain, &imageN, nil)
	images := make([]vk.Image, imageN)
	vk.GetSwapchainImages(b.device, swapchain, &imageN, images)

	gfxFormat := fromVkFormat(format.Format)
	textures := make([]gfx.Texture, imageN)
	views := make([]vk.ImageView, imageN)
	for i, img := range images {
		textures[i] = b.registerForeignTexture(img, gfx.TextureDesc{
			Dimension: gfx.TextureDimension2D,
			Width:     extent.Width,
			Height:    extent.Height,
			Depth:     1,
			MipLevels: 1,
			ArrayLayers: 1,
			SampleCount: 1,
			Format:    gfxFormat,
			Usage:     gfx.TextureUsageColorAttachment,
		})

		var view vk.ImageView
		vkCheck(vk.CreateImageView(b.device, &vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    img,
			ViewType: vk.ImageViewType2d,
			Format:   format.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}, nil, &view))
		views[i] = view
	}

	frames, err := createFrameSync(b.device, b.cfg.FramesInFlight)
	if err != nil {
		vk.DestroySwapchain(b.device, swapchain, nil)
		return swapchainResource{}, err
	}

	return swapchainResource{
		window:    window,
		surface:   surface,
		swapchain: swapchain,
		format:    format,
		extent:    extent,
		textures:  textures,
		views:     views,
		frames:    frames,
		vsync:     desc.VSync,
	}, nil
}

func (b *Backend) destroySwapchainViews(rec swapchainResource) {
	for _, v := range rec.views {
		vk.DestroyImageView(b.device, v, nil)
	}
	for _, t := range rec.textures {
		b.DestroyTexture(t)
	}
}

func (b *Backend) DestroySwapchain(h gfx.Swapchain) {
	rec, ok := b.swapchains.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroySwapchain on unknown or already-destroyed handle")
		return
	}
	vk.DeviceWaitIdle(b.device)
	destroyFrameSync(b.device, rec.frames)
	b.destroySwapchainViews(rec)
	vk.DestroySwapchain(b.device, rec.swapchain, nil)
	vk.DestroySurface(b.instance, rec.surface, nil)
	b.swapchains.Remove(arena.Key(h))
}

// SwapchainResize tears down the old swapchain's views/frame-sync (but
// keeps its surface and chains its vk.Swapchain as OldSwapchain) and
// rebuilds in place from the given width and height (chooseExtent prefers
// the surface's current extent when it reports one), keeping the same
// handle (spec.md §4.1's resize semantics: callers never need a new
// Swapchain handle after a resize). If the rebuild fails, the handle is
// removed and the surface destroyed.
func (b *Backend) SwapchainResize(h gfx.Swapchain, width, height uint32) {
	rec, ok := b.swapchains.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: SwapchainResize on unknown or already-destroyed handle")
		return
	}
	vk.DeviceWaitIdle(b.device)
	destroyFrameSync(b.device, rec.frames)
	b.destroySwapchainViews(rec)

	newRec, err := b.buildSwapchain(rec.window, rec.surface, gfx.SwapchainDesc{
		RequestedWidth:  width,
		RequestedHeight: height,
		Format:          fromVkFormat(rec.format.Format),
		VSync:           rec.vsync,
	}, rec.swapchain)
	if err != nil {
		glog.Global.Errorf("vulkan: SwapchainResize failed: %v", err)
		b.swapchains.Remove(arena.Key(h))
		vk.DestroySurface(b.instance, rec.surface, nil)
		return
	}
	b.swapchains.Set(arena.Key(h), newRec)
	glog.Global.Infof("vulkan: swapchain resized (%dx%d)", newRec.extent.Width, newRec.extent.Height)
}

func (b *Backend) SwapchainTextureCount(h gfx.Swapchain) int {
	rec, ok := b.swapchains.Get(arena.Key(h))
	if !ok {
		return 0
	}
	return len(rec.textures)
}

func (b *Backend) SwapchainTexture(h gfx.Swapchain, index int) gfx.Texture {
	rec, ok := b.swapchains.Get(arena.Key(h))
	if !ok || index < 0 || index >= len(rec.textures) {
		return 0
	}
	return rec.textures[index]
}

func (b *Backend) SwapchainCurrentIndex(h gfx.Swapchain) int {
	rec, ok := b.swapchains.Get(arena.Key(h))
	if !ok {
		return -1
	}
	return int(rec.currentImage)
}

// SwapchainAcquire acquires the next image from the frame slot at the head
// of the FRAMES_IN_FLIGHT ring and records it as SwapchainCurrentIndex.
// Callers must acquire before recording the command buffer that renders
// into that index: the returned index is the one SwapchainPresent will
// present, so a render recorded against a different index than the one
// SwapchainAcquire just returned is out of sync with what reaches the
// screen. The acquire's completion is signaled on the frame's imageAcquired
// semaphore, which the matching CmdSubmit call waits on (see
// commandbuffer.go's pendingAcquire handoff) before signaling
// renderComplete for SwapchainPresent to wait on in turn.
func (b *Backend) SwapchainAcquire(h gfx.Swapchain) (int, error) {
	rec, ok := b.swapchains.Get(arena.Key(h))
	if !ok {
		return -1, newError(vk.ErrorUnknown)
	}
	frame := rec.frames[rec.frameIndex]

	var imageIndex uint32
	ret := vk.AcquireNextImage(b.device, rec.swapchain, vk.MaxUint64, frame.imageAcquired, vk.NullFence, &imageIndex)
	if ret == vk.ErrorOutOfDate {
		w, h2 := rec.window.FramebufferSize()
		b.SwapchainResize(h, uint32(w), uint32(h2))
		return -1, nil
	}
	if isError(ret) {
		return -1, newError(ret)
	}

	rec.currentImage = imageIndex
	b.swapchains.Set(arena.Key(h), rec)
	b.pendingAcquire = &pendingAcquire{imageAcquired: frame.imageAcquired, renderComplete: frame.renderComplete}
	return int(imageIndex), nil
}

// SwapchainPresent queues the image SwapchainAcquire most recently acquired,
// waiting on that frame's renderComplete semaphore — signaled by the
// client's own CmdSubmit, not by anything this call does — and advances the
// FRAMES_IN_FLIGHT ring. Calling Present without an intervening Acquire (or
// without the client having submitted since the last Acquire) waits on a
// semaphore nothing has signaled, which is a contract violation, not a
// state this call tries to paper over.
func (b *Backend) SwapchainPresent(h gfx.Swapchain) error {
	rec, ok := b.swapchains.Get(arena.Key(h))
	if !ok {
		return newError(vk.ErrorUnknown)
	}
	frame := rec.frames[rec.frameIndex]

	ret := vk.QueuePresent(b.presentQueue, &vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{frame.renderComplete},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{rec.swapchain},
		PImageIndices:      []uint32{rec.currentImage},
	})
	if ret == vk.ErrorOutOfDate || ret == vk.Suboptimal {
		w, h2 := rec.window.FramebufferSize()
		b.SwapchainResize(h, uint32(w), uint32(h2))
		return nil
	}
	if isError(ret) {
		return newError(ret)
	}

	rec2, _ := b.swapchains.Get(arena.Key(h))
	rec2.frameIndex = (rec2.frameIndex + 1) % len(rec2.frames)
	b.swapchains.Set(arena.Key(h), rec2)
	return nil
}
