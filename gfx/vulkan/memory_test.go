package vulkan

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/stretchr/testify/assert"

	"github.com/zirconengine/zircon/gfx"
)

func memProps(types ...vk.MemoryPropertyFlags) vk.PhysicalDeviceMemoryProperties {
	var p vk.PhysicalDeviceMemoryProperties
	p.MemoryTypeCount = uint32(len(types))
	for i, flags := range types {
		p.MemoryTypes[i] = vk.MemoryType{PropertyFlags: flags}
	}
	return p
}

func TestFindMemoryTypeExactMatch(t *testing.T) {
	props := memProps(
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit),
	)
	idx, ok := findMemoryType(props, 0b11, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit)|vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))
	assert.True(t, ok)
	assert.Equal(t, uint32(1), idx)
}

func TestFindMemoryTypeFallsBackToTypeBitsOnly(t *testing.T) {
	props := memProps(vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	idx, ok := findMemoryType(props, 0b1, vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit))
	assert.True(t, ok, "no type satisfies the wanted flags, but typeBits still selects one as fallback")
	assert.Equal(t, uint32(0), idx)
}

func TestFindMemoryTypeNoMatchingBit(t *testing.T) {
	props := memProps(vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	_, ok := findMemoryType(props, 0b0, 0)
	assert.False(t, ok)
}

func TestMemoryPropertyFlagsPerUsage(t *testing.T) {
	assert.Equal(t, vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit), memoryPropertyFlags(gfx.MemoryGpuOnly))

	cpuToGpu := memoryPropertyFlags(gfx.MemoryCpuToGpu)
	assert.NotZero(t, cpuToGpu&vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit))
	assert.NotZero(t, cpuToGpu&vk.MemoryPropertyFlags(vk.MemoryPropertyHostCoherentBit))

	gpuToCpu := memoryPropertyFlags(gfx.MemoryGpuToCpu)
	assert.NotZero(t, gpuToCpu&vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit))
	assert.NotZero(t, gpuToCpu&vk.MemoryPropertyFlags(vk.MemoryPropertyHostCachedBit))
}
