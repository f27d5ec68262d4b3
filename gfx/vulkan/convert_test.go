package vulkan

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/stretchr/testify/assert"

	"github.com/zirconengine/zircon/gfx"
)

func TestFormatRoundTripsForColorFormats(t *testing.T) {
	formats := []gfx.Format{
		gfx.FormatR8Unorm,
		gfx.FormatRG8Unorm,
		gfx.FormatRGBA8Unorm,
		gfx.FormatRGBA8Srgb,
		gfx.FormatBGRA8Unorm,
		gfx.FormatBGRA8Srgb,
	}
	for _, f := range formats {
		assert.Equal(t, f, fromVkFormat(toVkFormat(f)), "format %v must round-trip through vk.Format", f)
	}
}

func TestToVkFormatUnknownIsUndefined(t *testing.T) {
	assert.Equal(t, vk.FormatUndefined, toVkFormat(gfx.Format(999)))
}

func TestIsDepthFormat(t *testing.T) {
	assert.True(t, isDepthFormat(gfx.FormatD32Float))
	assert.True(t, isDepthFormat(gfx.FormatD24UnormS8Uint))
	assert.False(t, isDepthFormat(gfx.FormatRGBA8Unorm))
}

func TestHasStencil(t *testing.T) {
	assert.True(t, hasStencil(gfx.FormatD24UnormS8Uint))
	assert.True(t, hasStencil(gfx.FormatD32FloatS8Uint))
	assert.False(t, hasStencil(gfx.FormatD32Float))
}

func TestToVkBufferUsageCombinesFlags(t *testing.T) {
	u := gfx.UsageVertex | gfx.UsageCopyDst
	flags := toVkBufferUsage(u)
	assert.NotZero(t, flags&vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit))
	assert.NotZero(t, flags&vk.BufferUsageFlags(vk.BufferUsageTransferDstBit))
	assert.Zero(t, flags&vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit))
}

func TestToVkImageUsageCombinesFlags(t *testing.T) {
	u := gfx.TextureUsageSampled | gfx.TextureUsageColorAttachment
	flags := toVkImageUsage(u)
	assert.NotZero(t, flags&vk.ImageUsageFlags(vk.ImageUsageSampledBit))
	assert.NotZero(t, flags&vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit))
	assert.Zero(t, flags&vk.ImageUsageFlags(vk.ImageUsageStorageBit))
}

func TestToVkAspectDefaultsFromFormatWhenAuto(t *testing.T) {
	assert.Equal(t, vk.ImageAspectFlags(vk.ImageAspectColorBit), toVkAspect(gfx.AspectAuto, gfx.FormatRGBA8Unorm))
	assert.Equal(t, vk.ImageAspectFlags(vk.ImageAspectDepthBit), toVkAspect(gfx.AspectAuto, gfx.FormatD32Float))
	assert.Equal(t,
		vk.ImageAspectFlags(vk.ImageAspectDepthBit)|vk.ImageAspectFlags(vk.ImageAspectStencilBit),
		toVkAspect(gfx.AspectAuto, gfx.FormatD24UnormS8Uint),
	)
}

func TestToVkAspectExplicitOverridesFormat(t *testing.T) {
	assert.Equal(t, vk.ImageAspectFlags(vk.ImageAspectStencilBit), toVkAspect(gfx.AspectStencil, gfx.FormatRGBA8Unorm))
}

func TestToVkImageViewTypeCubeCompatible(t *testing.T) {
	got := toVkImageViewType(gfx.TextureDimension2D, true, 6)
	assert.Equal(t, vk.ImageViewTypeCube, got)
}

func TestToVkImageViewType2DArray(t *testing.T) {
	got := toVkImageViewType(gfx.TextureDimension2D, false, 4)
	assert.Equal(t, vk.ImageViewType2dArray, got)
}

func TestToVkFrontFace(t *testing.T) {
	assert.Equal(t, vk.FrontFaceCounterClockwise, toVkFrontFace(gfx.FrontFaceCCW))
	assert.Equal(t, vk.FrontFaceClockwise, toVkFrontFace(gfx.FrontFaceCW))
}

func TestToVkShaderStageCombinesFlags(t *testing.T) {
	s := gfx.StageVertex | gfx.StageFragment
	flags := toVkShaderStage(s)
	assert.NotZero(t, flags&vk.ShaderStageFlags(vk.ShaderStageVertexBit))
	assert.NotZero(t, flags&vk.ShaderStageFlags(vk.ShaderStageFragmentBit))
	assert.Zero(t, flags&vk.ShaderStageFlags(vk.ShaderStageComputeBit))
}

func TestToVkIndexType(t *testing.T) {
	assert.Equal(t, vk.IndexTypeUint16, toVkIndexType(gfx.IndexFormatUint16))
	assert.Equal(t, vk.IndexTypeUint32, toVkIndexType(gfx.IndexFormatUint32))
}

func TestSliceUint32LittleEndian(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0xff}
	got := sliceUint32(data)
	assert.Equal(t, []uint32{1, 0xffffffff}, got)
}

func TestSliceUint32TruncatesPartialWord(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x02}
	got := sliceUint32(data)
	assert.Equal(t, []uint32{1}, got)
}
