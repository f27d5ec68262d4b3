package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/glog"
	"github.com/zirconengine/zircon/platform"
)

// physicalDeviceSelection is the live-handle result of running adapter.go's
// pure scoring/selection over a real instance.
type physicalDeviceSelection struct {
	candidate       adapterCandidate
	graphicsFamily  uint32
	presentFamily   uint32
	separateQueues  bool
}

func selectPhysicalDevice(instance vk.Instance, p platform.Platform, window platform.Window) (physicalDeviceSelection, error) {
	candidates, err := enumerateAdapters(instance, func(pd vk.PhysicalDevice, family uint32) bool {
		return p.PresentationSupport(pd, family, window)
	})
	if err != nil {
		return physicalDeviceSelection{}, err
	}
	best := pickBestAdapter(infosOf(candidates))
	if best < 0 {
		return physicalDeviceSelection{}, newError(vk.ErrorInitializationFailed)
	}
	c := candidates[best]
	graphics, present, ok := selectQueueFamilies(c.info.queueFamilies)
	if !ok {
		return physicalDeviceSelection{}, newError(vk.ErrorInitializationFailed)
	}
	glog.Global.Infof("vulkan: selected adapter %q (score=%d, graphics=%d, present=%d)",
		vk.ToString(c.properties.DeviceName[:]), scoreAdapter(c.info), graphics, present)
	return physicalDeviceSelection{
		candidate:      c,
		graphicsFamily: uint32(graphics),
		presentFamily:  uint32(present),
		separateQueues: graphics != present,
	}, nil
}

func infosOf(candidates []adapterCandidate) []adapterInfo {
	out := make([]adapterInfo, len(candidates))
	for i, c := range candidates {
		out[i] = c.info
	}
	return out
}

// logicalDevice bundles the created vk.Device, its queues, the extension
// set actually enabled, and the gfx.DeviceFeatures those extensions/feature
// bits translate to.
type logicalDevice struct {
	device         vk.Device
	graphicsQueue  vk.Queue
	presentQueue   vk.Queue
	features       gfx.DeviceFeatures
	limits         gfx.Limits
	descriptorIndexing bool
}

func createLogicalDevice(sel physicalDeviceSelection) (logicalDevice, error) {
	extSet, ok := buildDeviceExtensions(sel.candidate.extensions)
	if !ok {
		return logicalDevice{}, newError(vk.ErrorExtensionNotPresent)
	}

	f := sel.candidate.features
	enabled := vk.PhysicalDeviceFeatures{
		SamplerAnisotropy: f.SamplerAnisotropy,
		SampleRateShading: f.SampleRateShading,
		FillModeNonSolid:  f.FillModeNonSolid,
		WideLines:         f.WideLines,
		DepthClamp:        vk.True,
	}

	queueFamilies := map[uint32]bool{sel.graphicsFamily: true, sel.presentFamily: true}
	queueInfos := make([]vk.DeviceQueueCreateInfo, 0, len(queueFamilies))
	for family := range queueFamilies {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}

	createInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extSet.names())),
		PpEnabledExtensionNames: extSet.names(),
		PEnabledFeatures:        &enabled,
	}

	// Enable only the descriptor-indexing bits the adapter actually
	// advertised (sel.candidate.descriptorIndexing), not the mere presence
	// of the extension — requesting a bit the driver didn't report support
	// for is a validation error at device-creation time.
	di := sel.candidate.descriptorIndexing
	indexingFeatures := vk.PhysicalDeviceDescriptorIndexingFeatures{
		SType: vk.StructureTypePhysicalDeviceDescriptorIndexingFeatures,
		ShaderSampledImageArrayNonUniformIndexing:    boolToVk(di.nonUniformIndexing),
		DescriptorBindingPartiallyBound:               boolToVk(di.partiallyBound),
		RuntimeDescriptorArray:                        boolToVk(di.runtimeDescriptorArray),
		DescriptorBindingSampledImageUpdateAfterBind: boolToVk(di.updateAfterBindSampled),
	}
	if extSet.has(extExtDescriptorIndexing) {
		createInfo.PNext = unsafePointerOf(&indexingFeatures)
	}

	var device vk.Device
	ret := vk.CreateDevice(sel.candidate.physicalDevice, createInfo, nil, &device)
	if isError(ret) {
		return logicalDevice{}, newError(ret)
	}
	vk.InitDevice(device)

	var graphicsQueue, presentQueue vk.Queue
	vk.GetDeviceQueue(device, sel.graphicsFamily, 0, &graphicsQueue)
	vk.GetDeviceQueue(device, sel.presentFamily, 0, &presentQueue)

	limits := sel.candidate.properties.Limits
	gfxLimits := gfx.Limits{
		MaxImageDimension2D:            limits.MaxImageDimension2D,
		MaxPushConstantsSize:           limits.MaxPushConstantsSize,
		MaxBoundDescriptorSets:         limits.MaxBoundDescriptorSets,
		MinUniformBufferOffsetAlignment: uint64(limits.MinUniformBufferOffsetAlignment),
	}

	features := gfx.DeviceFeatures{
		SamplerAnisotropy:    bool(enabled.SamplerAnisotropy),
		SampleRateShading:    bool(enabled.SampleRateShading),
		FillModeNonSolid:     bool(enabled.FillModeNonSolid),
		WideLines:            bool(enabled.WideLines),
		DepthClamp:           true,
		BufferDeviceAddress:  extSet.has(extKhrBufferDeviceAddress),
		DrawIndirectCount:    extSet.has(extKhrDrawIndirectCount),
		PushDescriptor:       extSet.has(extKhrPushDescriptor),
		Maintenance4:         extSet.has(extKhrMaintenance4),
		DepthStencilResolve:  extSet.has(extKhrDepthStencilResolve),
		RayQuery:             extSet.has(extKhrRayQuery),
		RayTracing:           extSet.has(extKhrRayTracingPipeline) && extSet.has(extKhrAccelerationStructure),
		Multiview:            extSet.has(extKhrMultiview),
		ShaderDrawParameters: extSet.has(extKhrShaderDrawParameters),
	}
	descriptorIndexing := extSet.has(extExtDescriptorIndexing)
	di := sel.candidate.descriptorIndexing
	features.BindlessTexture = bindlessEligible(descriptorIndexing, di.nonUniformIndexing, di.partiallyBound)
	features.BindlessBuffer = features.BindlessTexture

	glog.Global.Infof("vulkan: logical device created (bindless=%v, raytracing=%v)", features.BindlessTexture, features.RayTracing)

	return logicalDevice{
		device:             device,
		graphicsQueue:       graphicsQueue,
		presentQueue:        presentQueue,
		features:            features,
		limits:              gfxLimits,
		descriptorIndexing:  descriptorIndexing,
	}, nil
}

func destroyLogicalDevice(d vk.Device) {
	vk.DeviceWaitIdle(d)
	vk.DestroyDevice(d, nil)
}

// createDescriptorPool sizes the pool per spec.md §4.2 — a flat count per
// descriptor type rather than per-binding tracking, with the
// free-descriptor-set flag set so individual bind groups can be
// destroyed without resetting the whole pool.
func createDescriptorPool(device vk.Device, cfg Config) (vk.DescriptorPool, error) {
	types := []vk.DescriptorType{
		vk.DescriptorTypeUniformBuffer,
		vk.DescriptorTypeStorageBuffer,
		vk.DescriptorTypeSampledImage,
		vk.DescriptorTypeStorageImage,
		vk.DescriptorTypeSampler,
		vk.DescriptorTypeCombinedImageSampler,
	}
	sizes := make([]vk.DescriptorPoolSize, len(types))
	for i, t := range types {
		sizes[i] = vk.DescriptorPoolSize{Type: t, DescriptorCount: cfg.DescriptorsPerTypePerPool}
	}
	var pool vk.DescriptorPool
	ret := vk.CreateDescriptorPool(device, &vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		MaxSets:       cfg.DescriptorSetsPerPool,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    sizes,
	}, nil, &pool)
	if isError(ret) {
		return vk.NullDescriptorPool, newError(ret)
	}
	return pool, nil
}

// frameSync is one slot of the FRAMES_IN_FLIGHT ring: just the
// acquire/submit semaphore pair bridging a SwapchainAcquire into the
// CmdSubmit and SwapchainPresent that follow it. The CPU-side reuse gate
// legacy/asche's FenceManager put here instead lives on each
// commandBufferResource's own completion fence (commandbuffer.go) — the
// frame a queue image belongs to and the command buffer that renders into
// it are reused together, so one fence does both jobs.
type frameSync struct {
	imageAcquired  vk.Semaphore
	renderComplete vk.Semaphore
}

func createFrameSync(device vk.Device, count int) ([]frameSync, error) {
	frames := make([]frameSync, count)
	for i := range frames {
		var acquired, complete vk.Semaphore
		if ret := vk.CreateSemaphore(device, &vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}, nil, &acquired); isError(ret) {
			return nil, newError(ret)
		}
		if ret := vk.CreateSemaphore(device, &vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}, nil, &complete); isError(ret) {
			return nil, newError(ret)
		}
		frames[i] = frameSync{imageAcquired: acquired, renderComplete: complete}
	}
	return frames, nil
}

func destroyFrameSync(device vk.Device, frames []frameSync) {
	for _, f := range frames {
		vk.DestroySemaphore(device, f.imageAcquired, nil)
		vk.DestroySemaphore(device, f.renderComplete, nil)
	}
}
