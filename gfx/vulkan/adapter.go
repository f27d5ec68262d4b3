package vulkan

import (
	vk "github.com/vulkan-go/vulkan"
)

// adapterInfo is the pure, GPU-independent projection of a vk.PhysicalDevice
// that scoreAdapter and selectQueueFamilies operate on — factored out so
// the selection policy spec.md §4.2 describes is unit-testable without a
// real Vulkan instance, per spec.md §8's "adapter scoring is deterministic
// given a fixed properties/queue-family table" testable property.
type adapterInfo struct {
	deviceType          vk.PhysicalDeviceType
	maxImageDimension2D uint32
	queueFamilies       []queueFamilyInfo
}

type queueFamilyInfo struct {
	graphics bool
	present  bool
	compute  bool
	transfer bool
}

// scoreAdapter implements spec.md §4.2's scoring rule: base score is
// maxImageDimension2D/1024, a discrete GPU gets +1000, an integrated GPU
// gets +500, a dedicated compute family (compute-capable, not also the
// graphics family) adds +100, a dedicated transfer family (transfer-capable,
// not also the graphics or compute family) adds another +100, and the
// adapter is scored 0 if it has neither a graphics-capable nor a
// present-capable queue family (it cannot possibly be selected, regardless
// of its raw limits).
func scoreAdapter(info adapterInfo) int {
	if !hasGraphicsOrPresent(info.queueFamilies) {
		return 0
	}
	score := int(info.maxImageDimension2D / 1024)
	switch info.deviceType {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		score += 1000
	case vk.PhysicalDeviceTypeIntegratedGpu:
		score += 500
	}
	if hasDedicatedCompute(info.queueFamilies) {
		score += 100
	}
	if hasDedicatedTransfer(info.queueFamilies) {
		score += 100
	}
	return score
}

// hasDedicatedCompute reports whether any queue family exposes compute but
// not graphics — an async-compute-capable family distinct from the
// graphics family.
func hasDedicatedCompute(families []queueFamilyInfo) bool {
	for _, f := range families {
		if f.compute && !f.graphics {
			return true
		}
	}
	return false
}

// hasDedicatedTransfer reports whether any queue family exposes transfer
// but neither graphics nor compute — a copy-only family suited to
// background uploads.
func hasDedicatedTransfer(families []queueFamilyInfo) bool {
	for _, f := range families {
		if f.transfer && !f.graphics && !f.compute {
			return true
		}
	}
	return false
}

func hasGraphicsOrPresent(families []queueFamilyInfo) bool {
	for _, f := range families {
		if f.graphics || f.present {
			return true
		}
	}
	return false
}

// selectQueueFamilies finds the lowest-index graphics family and the
// lowest-index present-capable family. Per spec.md §4.2 these may be the
// same index (the common case) or different, in which case the device is
// built with a second queue. Swapchain images are then created with
// VK_SHARING_MODE_CONCURRENT across the two families (swapchain.go's
// buildSwapchain); buffers and textures always use
// VK_SHARING_MODE_EXCLUSIVE, and no ownership-transfer barriers are
// recorded.
func selectQueueFamilies(families []queueFamilyInfo) (graphics, present int, ok bool) {
	graphics, present = -1, -1
	for i, f := range families {
		if f.graphics && graphics < 0 {
			graphics = i
		}
		if f.present && present < 0 {
			present = i
		}
	}
	return graphics, present, graphics >= 0 && present >= 0
}

// pickBestAdapter returns the index of the highest-scoring candidate, or -1
// if candidates is empty or every candidate scores 0.
func pickBestAdapter(candidates []adapterInfo) int {
	best := -1
	bestScore := 0
	for i, c := range candidates {
		s := scoreAdapter(c)
		if s > bestScore || (best == -1 && s > 0) {
			best = i
			bestScore = s
		}
	}
	return best
}

// adapterCandidate pairs the pure adapterInfo with the live handles needed
// once a candidate is actually selected.
type adapterCandidate struct {
	info                 adapterInfo
	physicalDevice       vk.PhysicalDevice
	properties           vk.PhysicalDeviceProperties
	memProperties        vk.PhysicalDeviceMemoryProperties
	extensions           map[string]bool
	features             vk.PhysicalDeviceFeatures
	descriptorIndexing   descriptorIndexingFeatures
}

// descriptorIndexingFeatures is the pure projection of
// vk.PhysicalDeviceDescriptorIndexingFeatures that bindlessEligible needs —
// queried through the chained vk.PhysicalDeviceFeatures2/pNext structure
// spec.md §4.2/§9 calls out as one of the two defining pieces of "the
// core", since VkPhysicalDeviceFeatures alone has no bits for it.
type descriptorIndexingFeatures struct {
	nonUniformIndexing       bool
	partiallyBound           bool
	runtimeDescriptorArray   bool
	updateAfterBindSampled   bool
}

// queryDescriptorIndexingFeatures chains a
// vk.PhysicalDeviceDescriptorIndexingFeatures off vk.PhysicalDeviceFeatures2
// and asks the driver to fill it in. Safe to call even when
// VK_EXT_descriptor_indexing is unsupported: the driver leaves every bit in
// the chained struct at its zero value, which bindlessEligible already
// treats as "not eligible".
func queryDescriptorIndexingFeatures(pd vk.PhysicalDevice) descriptorIndexingFeatures {
	indexing := vk.PhysicalDeviceDescriptorIndexingFeatures{
		SType: vk.StructureTypePhysicalDeviceDescriptorIndexingFeatures,
	}
	features2 := vk.PhysicalDeviceFeatures2{
		SType: vk.StructureTypePhysicalDeviceFeatures2,
		PNext: unsafePointerOf(&indexing),
	}
	vk.GetPhysicalDeviceFeatures2(pd, &features2)
	indexing.Deref()
	return descriptorIndexingFeatures{
		nonUniformIndexing:     bool(indexing.ShaderSampledImageArrayNonUniformIndexing),
		partiallyBound:         bool(indexing.DescriptorBindingPartiallyBound),
		runtimeDescriptorArray: bool(indexing.RuntimeDescriptorArray),
		updateAfterBindSampled: bool(indexing.DescriptorBindingSampledImageUpdateAfterBind),
	}
}

// enumerateAdapters queries every physical device visible to instance and
// builds the candidate table enumerateAndSelect picks from. presentSupport
// is supplied by the caller (it needs the platform's surface, which this
// package has no dependency on) and is evaluated per queue family.
func enumerateAdapters(instance vk.Instance, presentSupport func(vk.PhysicalDevice, uint32) bool) ([]adapterCandidate, error) {
	var count uint32
	vkCheck(vk.EnumeratePhysicalDevices(instance, &count, nil))
	if count == 0 {
		return nil, newError(vk.ErrorInitializationFailed)
	}
	devices := make([]vk.PhysicalDevice, count)
	vkCheck(vk.EnumeratePhysicalDevices(instance, &count, devices))

	candidates := make([]adapterCandidate, 0, count)
	for _, pd := range devices {
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &props)
		props.Deref()
		props.Limits.Deref()

		var memProps vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(pd, &memProps)

		var features vk.PhysicalDeviceFeatures
		vk.GetPhysicalDeviceFeatures(pd, &features)
		features.Deref()

		var famCount uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(pd, &famCount, nil)
		famProps := make([]vk.QueueFamilyProperties, famCount)
		vk.GetPhysicalDeviceQueueFamilyProperties(pd, &famCount, famProps)

		families := make([]queueFamilyInfo, famCount)
		for i := range famProps {
			famProps[i].Deref()
			flags := vk.QueueFlagBits(famProps[i].QueueFlags)
			graphics := flags&vk.QueueGraphicsBit != 0
			compute := flags&vk.QueueComputeBit != 0
			transfer := flags&vk.QueueTransferBit != 0
			present := presentSupport != nil && presentSupport(pd, uint32(i))
			families[i] = queueFamilyInfo{graphics: graphics, present: present, compute: compute, transfer: transfer}
		}

		var extCount uint32
		vk.EnumerateDeviceExtensionProperties(pd, "", &extCount, nil)
		extProps := make([]vk.ExtensionProperties, extCount)
		vk.EnumerateDeviceExtensionProperties(pd, "", &extCount, extProps)
		extensions := make(map[string]bool, extCount)
		for i := range extProps {
			extProps[i].Deref()
			extensions[vk.ToString(extProps[i].ExtensionName[:])] = true
		}

		candidates = append(candidates, adapterCandidate{
			info: adapterInfo{
				deviceType:          props.DeviceType,
				maxImageDimension2D: props.Limits.MaxImageDimension2D,
				queueFamilies:       families,
			},
			physicalDevice:     pd,
			properties:         props,
			memProperties:      memProps,
			extensions:         extensions,
			features:           features,
			descriptorIndexing: queryDescriptorIndexingFeatures(pd),
		})
	}
	return candidates, nil
}
