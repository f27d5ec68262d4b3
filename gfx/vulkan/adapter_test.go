package vulkan

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/stretchr/testify/assert"
)

func TestScoreAdapterDiscreteBeatsIntegrated(t *testing.T) {
	discrete := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeDiscreteGpu,
		maxImageDimension2D: 4096,
		queueFamilies:       []queueFamilyInfo{{graphics: true, present: true}},
	}
	integrated := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeIntegratedGpu,
		maxImageDimension2D: 16384,
		queueFamilies:       []queueFamilyInfo{{graphics: true, present: true}},
	}

	assert.Greater(t, scoreAdapter(discrete), scoreAdapter(integrated),
		"the +1000 discrete bonus must outweigh a smaller maxImageDimension2D")
}

func TestScoreAdapterIntegratedBonusBeatsNoBonus(t *testing.T) {
	integrated := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeIntegratedGpu,
		maxImageDimension2D: 4096,
		queueFamilies:       []queueFamilyInfo{{graphics: true, present: true}},
	}
	other := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeOther,
		maxImageDimension2D: 4096,
		queueFamilies:       []queueFamilyInfo{{graphics: true, present: true}},
	}
	assert.Equal(t, scoreAdapter(other)+500, scoreAdapter(integrated))
}

func TestScoreAdapterDedicatedComputeAndTransferBonuses(t *testing.T) {
	info := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeDiscreteGpu,
		maxImageDimension2D: 4096,
		queueFamilies: []queueFamilyInfo{
			{graphics: true, present: true, compute: true, transfer: true},
			{compute: true},
			{transfer: true},
		},
	}
	// base 4 + discrete 1000 + dedicated compute 100 + dedicated transfer 100.
	assert.Equal(t, 4+1000+100+100, scoreAdapter(info))
}

func TestHasDedicatedComputeRequiresComputeWithoutGraphics(t *testing.T) {
	assert.False(t, hasDedicatedCompute([]queueFamilyInfo{{graphics: true, compute: true}}))
	assert.True(t, hasDedicatedCompute([]queueFamilyInfo{{graphics: true}, {compute: true}}))
}

func TestHasDedicatedTransferRequiresNeitherGraphicsNorCompute(t *testing.T) {
	assert.False(t, hasDedicatedTransfer([]queueFamilyInfo{{transfer: true, compute: true}}))
	assert.False(t, hasDedicatedTransfer([]queueFamilyInfo{{transfer: true, graphics: true}}))
	assert.True(t, hasDedicatedTransfer([]queueFamilyInfo{{graphics: true, compute: true}, {transfer: true}}))
}

func TestScoreAdapterWithoutGraphicsOrPresentScoresZero(t *testing.T) {
	info := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeDiscreteGpu,
		maxImageDimension2D: 16384,
		queueFamilies:       []queueFamilyInfo{{graphics: false, present: false}},
	}
	assert.Equal(t, 0, scoreAdapter(info))
}

func TestScoreAdapterNoQueueFamiliesScoresZero(t *testing.T) {
	info := adapterInfo{deviceType: vk.PhysicalDeviceTypeDiscreteGpu, maxImageDimension2D: 16384}
	assert.Equal(t, 0, scoreAdapter(info))
}

func TestSelectQueueFamiliesPicksLowestIndex(t *testing.T) {
	families := []queueFamilyInfo{
		{graphics: false, present: true},
		{graphics: true, present: false},
		{graphics: true, present: true},
	}
	graphics, present, ok := selectQueueFamilies(families)
	assert.True(t, ok)
	assert.Equal(t, 1, graphics)
	assert.Equal(t, 0, present)
}

func TestSelectQueueFamiliesNoneCapable(t *testing.T) {
	families := []queueFamilyInfo{{graphics: false, present: false}}
	_, _, ok := selectQueueFamilies(families)
	assert.False(t, ok)
}

func TestPickBestAdapterEmpty(t *testing.T) {
	assert.Equal(t, -1, pickBestAdapter(nil))
}

func TestPickBestAdapterAllZeroScore(t *testing.T) {
	candidates := []adapterInfo{
		{deviceType: vk.PhysicalDeviceTypeDiscreteGpu, maxImageDimension2D: 4096},
		{deviceType: vk.PhysicalDeviceTypeDiscreteGpu, maxImageDimension2D: 8192},
	}
	assert.Equal(t, -1, pickBestAdapter(candidates), "every candidate lacks a usable queue family")
}

func TestPickBestAdapterPicksHighestScore(t *testing.T) {
	weak := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeIntegratedGpu,
		maxImageDimension2D: 4096,
		queueFamilies:       []queueFamilyInfo{{graphics: true, present: true}},
	}
	strong := adapterInfo{
		deviceType:          vk.PhysicalDeviceTypeDiscreteGpu,
		maxImageDimension2D: 8192,
		queueFamilies:       []queueFamilyInfo{{graphics: true, present: true}},
	}
	candidates := []adapterInfo{weak, strong}
	assert.Equal(t, 1, pickBestAdapter(candidates))
}
