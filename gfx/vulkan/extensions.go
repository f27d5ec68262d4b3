package vulkan

// extensionSet generalizes legacy/dieselvk/extensions_2.go's
// BaseInstanceExtensions/BaseDeviceExtensions "wanted vs required vs
// actual" trio into a single incremental builder: spec.md §4.3 wants
// extensions added one at a time, each either mandatory (missing means
// adapter rejection) or optional-with-a-feature-flag (missing means the
// corresponding gfx.DeviceFeatures bit stays false, not an error).
type extensionSet struct {
	available map[string]bool
	enabled   []string
	enabledSet map[string]bool
}

func newExtensionSet(available map[string]bool) *extensionSet {
	return &extensionSet{available: available, enabledSet: map[string]bool{}}
}

func (e *extensionSet) has(name string) bool {
	return e.available[name]
}

// require adds name if the adapter advertises it and returns false
// otherwise — the caller rejects the adapter in that case.
func (e *extensionSet) require(name string) bool {
	if !e.available[name] {
		return false
	}
	e.add(name)
	return true
}

// optional adds name iff the adapter advertises it, returning whether it
// was added.
func (e *extensionSet) optional(name string) bool {
	if !e.available[name] {
		return false
	}
	e.add(name)
	return true
}

func (e *extensionSet) add(name string) {
	if e.enabledSet[name] {
		return
	}
	e.enabledSet[name] = true
	e.enabled = append(e.enabled, name)
}

func (e *extensionSet) names() []string { return e.enabled }

const (
	extKhrSwapchain              = "VK_KHR_swapchain"
	extKhrCreateRenderpass2      = "VK_KHR_create_renderpass2"
	extKhrDynamicRendering       = "VK_KHR_dynamic_rendering"
	extExtDescriptorIndexing     = "VK_EXT_descriptor_indexing"
	extKhrBufferDeviceAddress    = "VK_KHR_buffer_device_address"
	extKhrDrawIndirectCount      = "VK_KHR_draw_indirect_count"
	extKhrPushDescriptor         = "VK_KHR_push_descriptor"
	extKhrMaintenance4           = "VK_KHR_maintenance4"
	extKhrDepthStencilResolve    = "VK_KHR_depth_stencil_resolve"
	extKhrRayQuery               = "VK_KHR_ray_query"
	extKhrRayTracingPipeline     = "VK_KHR_ray_tracing_pipeline"
	extKhrAccelerationStructure  = "VK_KHR_acceleration_structure"
	extKhrMultiview              = "VK_KHR_multiview"
	extKhrShaderDrawParameters   = "VK_KHR_shader_draw_parameters"
	extExtDescriptorBuffer       = "VK_EXT_descriptor_buffer"

	extKhrSurface    = "VK_KHR_surface"
	extExtDebugUtils = "VK_EXT_debug_utils"
)

// requiredDeviceExtensions are the logical-device extensions spec.md §4.3
// calls mandatory. They play no part in adapter scoring (adapter.go's
// scoreAdapter): if the selected adapter lacks one, buildDeviceExtensions
// reports it and createLogicalDevice fails with ErrorExtensionNotPresent.
var requiredDeviceExtensions = []string{
	extKhrSwapchain,
	extKhrCreateRenderpass2,
}

// optionalDeviceExtensions are added when the adapter advertises them.
// Most gate the matching gfx.DeviceFeatures bit: VK_EXT_descriptor_indexing
// feeds BindlessTexture/BindlessBuffer, RayTracing needs both the
// ray-tracing-pipeline and acceleration-structure extensions, and
// VK_KHR_dynamic_rendering gates no bit.
var optionalDeviceExtensions = []string{
	extKhrDynamicRendering,
	extExtDescriptorIndexing,
	extKhrBufferDeviceAddress,
	extKhrDrawIndirectCount,
	extKhrPushDescriptor,
	extKhrMaintenance4,
	extKhrDepthStencilResolve,
	extKhrRayQuery,
	extKhrRayTracingPipeline,
	extKhrAccelerationStructure,
	extKhrMultiview,
	extKhrShaderDrawParameters,
}

// buildDeviceExtensions runs the mandatory/optional pass described above
// and returns the final enable list plus which optional extensions made
// it in. ok is false if any mandatory extension is missing.
func buildDeviceExtensions(available map[string]bool) (set *extensionSet, ok bool) {
	set = newExtensionSet(available)
	for _, name := range requiredDeviceExtensions {
		if !set.require(name) {
			return set, false
		}
	}
	for _, name := range optionalDeviceExtensions {
		set.optional(name)
	}
	return set, true
}

// bindlessEligible reports whether the descriptor-indexing gating spec.md
// §4.3 describes is satisfied: the extension must be enabled AND the
// adapter's descriptor-indexing feature struct must report both
// shaderSampledImageArrayNonUniformIndexing and
// descriptorBindingPartiallyBound, since bindless texturing needs both to
// be safe. This is a pure function over booleans precisely so spec.md §8's
// "descriptor-indexing gating is a pure function of capability booleans"
// test can exercise it without a GPU.
func bindlessEligible(extensionEnabled, nonUniformIndexing, partiallyBound bool) bool {
	return extensionEnabled && nonUniformIndexing && partiallyBound
}
