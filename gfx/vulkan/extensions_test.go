package vulkan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDeviceExtensionsRejectsMissingMandatory(t *testing.T) {
	available := map[string]bool{extKhrSwapchain: true}
	_, ok := buildDeviceExtensions(available)
	assert.False(t, ok, "missing VK_KHR_create_renderpass2 must reject the adapter")
}

func TestBuildDeviceExtensionsEnablesOptionalWhenAvailable(t *testing.T) {
	available := map[string]bool{
		extKhrSwapchain:          true,
		extKhrCreateRenderpass2:  true,
		extKhrDynamicRendering:   true,
		extExtDescriptorIndexing: true,
	}
	set, ok := buildDeviceExtensions(available)
	assert.True(t, ok)
	assert.Contains(t, set.names(), extKhrDynamicRendering)
	assert.Contains(t, set.names(), extExtDescriptorIndexing)
	assert.NotContains(t, set.names(), extKhrRayQuery)
}

func TestExtensionSetAddIsIdempotent(t *testing.T) {
	set := newExtensionSet(map[string]bool{extKhrSwapchain: true})
	assert.True(t, set.require(extKhrSwapchain))
	assert.True(t, set.require(extKhrSwapchain))
	assert.Equal(t, []string{extKhrSwapchain}, set.names())
}

func TestExtensionSetOptionalMissing(t *testing.T) {
	set := newExtensionSet(map[string]bool{})
	assert.False(t, set.optional(extKhrRayTracingPipeline))
	assert.Empty(t, set.names())
}

func TestBindlessEligibleRequiresAllThree(t *testing.T) {
	assert.True(t, bindlessEligible(true, true, true))
	assert.False(t, bindlessEligible(false, true, true))
	assert.False(t, bindlessEligible(true, false, true))
	assert.False(t, bindlessEligible(true, true, false))
}
