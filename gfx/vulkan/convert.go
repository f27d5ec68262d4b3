package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
)

// This file is the gfx<->vk enum translation layer. Every table is a plain
// switch rather than a parallel-array index, the same style legacy/dieselvk
// uses for its format/usage conversions — easy to scan, easy to extend when
// a new gfx.Format gains a Vulkan counterpart.

func toVkFormat(f gfx.Format) vk.Format {
	switch f {
	case gfx.FormatR8Unorm:
		return vk.FormatR8Unorm
	case gfx.FormatRG8Unorm:
		return vk.FormatR8g8Unorm
	case gfx.FormatRGBA8Unorm:
		return vk.FormatR8g8b8a8Unorm
	case gfx.FormatRGBA8Srgb:
		return vk.FormatR8g8b8a8Srgb
	case gfx.FormatBGRA8Unorm:
		return vk.FormatB8g8r8a8Unorm
	case gfx.FormatBGRA8Srgb:
		return vk.FormatB8g8r8a8Srgb
	case gfx.FormatR32Float:
		return vk.FormatR32Sfloat
	case gfx.FormatRG32Float:
		return vk.FormatR32g32Sfloat
	case gfx.FormatRGB32Float:
		return vk.FormatR32g32b32Sfloat
	case gfx.FormatRGBA32Float:
		return vk.FormatR32g32b32a32Sfloat
	case gfx.FormatD32Float:
		return vk.FormatD32Sfloat
	case gfx.FormatD24UnormS8Uint:
		return vk.FormatD24UnormS8Uint
	case gfx.FormatD32FloatS8Uint:
		return vk.FormatD32SfloatS8Uint
	default:
		return vk.FormatUndefined
	}
}

func fromVkFormat(f vk.Format) gfx.Format {
	switch f {
	case vk.FormatR8Unorm:
		return gfx.FormatR8Unorm
	case vk.FormatR8g8Unorm:
		return gfx.FormatRG8Unorm
	case vk.FormatR8g8b8a8Unorm:
		return gfx.FormatRGBA8Unorm
	case vk.FormatR8g8b8a8Srgb:
		return gfx.FormatRGBA8Srgb
	case vk.FormatB8g8r8a8Unorm:
		return gfx.FormatBGRA8Unorm
	case vk.FormatB8g8r8a8Srgb:
		return gfx.FormatBGRA8Srgb
	default:
		return gfx.FormatUndefined
	}
}

func isDepthFormat(f gfx.Format) bool {
	switch f {
	case gfx.FormatD32Float, gfx.FormatD24UnormS8Uint, gfx.FormatD32FloatS8Uint:
		return true
	default:
		return false
	}
}

func hasStencil(f gfx.Format) bool {
	return f == gfx.FormatD24UnormS8Uint || f == gfx.FormatD32FloatS8Uint
}

func toVkBufferUsage(u gfx.Usage) vk.BufferUsageFlags {
	var flags vk.BufferUsageFlags
	if u.Has(gfx.UsageVertex) {
		flags |= vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit)
	}
	if u.Has(gfx.UsageIndex) {
		flags |= vk.BufferUsageFlags(vk.BufferUsageIndexBufferBit)
	}
	if u.Has(gfx.UsageUniform) {
		flags |= vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit)
	}
	if u.Has(gfx.UsageStorage) {
		flags |= vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit)
	}
	if u.Has(gfx.UsageCopySrc) {
		flags |= vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit)
	}
	if u.Has(gfx.UsageCopyDst) {
		flags |= vk.BufferUsageFlags(vk.BufferUsageTransferDstBit)
	}
	return flags
}

func toVkImageUsage(u gfx.TextureUsage) vk.ImageUsageFlags {
	var flags vk.ImageUsageFlags
	if u.Has(gfx.TextureUsageCopySrc) {
		flags |= vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit)
	}
	if u.Has(gfx.TextureUsageCopyDst) {
		flags |= vk.ImageUsageFlags(vk.ImageUsageTransferDstBit)
	}
	if u.Has(gfx.TextureUsageSampled) {
		flags |= vk.ImageUsageFlags(vk.ImageUsageSampledBit)
	}
	if u.Has(gfx.TextureUsageStorage) {
		flags |= vk.ImageUsageFlags(vk.ImageUsageStorageBit)
	}
	if u.Has(gfx.TextureUsageColorAttachment) {
		flags |= vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit)
	}
	if u.Has(gfx.TextureUsageDepthStencilAttachment) {
		flags |= vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit)
	}
	return flags
}

func toVkImageType(d gfx.TextureDimension) vk.ImageType {
	switch d {
	case gfx.TextureDimension1D:
		return vk.ImageType1d
	case gfx.TextureDimension3D:
		return vk.ImageType3d
	default:
		return vk.ImageType2d
	}
}

func toVkImageViewType(d gfx.TextureDimension, cubeCompatible bool, arrayLayers uint32) vk.ImageViewType {
	switch d {
	case gfx.TextureDimension1D:
		if arrayLayers > 1 {
			return vk.ImageViewType1dArray
		}
		return vk.ImageViewType1d
	case gfx.TextureDimension3D:
		return vk.ImageViewType3d
	default:
		if cubeCompatible {
			return vk.ImageViewTypeCube
		}
		if arrayLayers > 1 {
			return vk.ImageViewType2dArray
		}
		return vk.ImageViewType2d
	}
}

func toVkAspect(a gfx.TextureAspect, format gfx.Format) vk.ImageAspectFlags {
	switch a {
	case gfx.AspectColor:
		return vk.ImageAspectFlags(vk.ImageAspectColorBit)
	case gfx.AspectDepth:
		return vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	case gfx.AspectStencil:
		return vk.ImageAspectFlags(vk.ImageAspectStencilBit)
	case gfx.AspectDepthStencil:
		return vk.ImageAspectFlags(vk.ImageAspectDepthBit) | vk.ImageAspectFlags(vk.ImageAspectStencilBit)
	default:
		if isDepthFormat(format) {
			if hasStencil(format) {
				return vk.ImageAspectFlags(vk.ImageAspectDepthBit) | vk.ImageAspectFlags(vk.ImageAspectStencilBit)
			}
			return vk.ImageAspectFlags(vk.ImageAspectDepthBit)
		}
		return vk.ImageAspectFlags(vk.ImageAspectColorBit)
	}
}

func toVkFilter(f gfx.FilterMode) vk.Filter {
	if f == gfx.FilterLinear {
		return vk.FilterLinear
	}
	return vk.FilterNearest
}

func toVkMipmapMode(f gfx.FilterMode) vk.SamplerMipmapMode {
	if f == gfx.FilterLinear {
		return vk.SamplerMipmapModeLinear
	}
	return vk.SamplerMipmapModeNearest
}

func toVkAddressMode(a gfx.AddressMode) vk.SamplerAddressMode {
	switch a {
	case gfx.AddressMirrorRepeat:
		return vk.SamplerAddressModeMirroredRepeat
	case gfx.AddressClampToEdge:
		return vk.SamplerAddressModeClampToEdge
	case gfx.AddressClampToBorder:
		return vk.SamplerAddressModeClampToBorder
	default:
		return vk.SamplerAddressModeRepeat
	}
}

func toVkCompareOp(c gfx.CompareFunc) vk.CompareOp {
	switch c {
	case gfx.CompareLess:
		return vk.CompareOpLess
	case gfx.CompareEqual:
		return vk.CompareOpEqual
	case gfx.CompareLessEqual:
		return vk.CompareOpLessOrEqual
	case gfx.CompareGreater:
		return vk.CompareOpGreater
	case gfx.CompareNotEqual:
		return vk.CompareOpNotEqual
	case gfx.CompareGreaterEqual:
		return vk.CompareOpGreaterOrEqual
	case gfx.CompareAlways:
		return vk.CompareOpAlways
	default:
		return vk.CompareOpNever
	}
}

func toVkTopology(t gfx.PrimitiveTopology) vk.PrimitiveTopology {
	switch t {
	case gfx.TopologyLineList:
		return vk.PrimitiveTopologyLineList
	case gfx.TopologyLineStrip:
		return vk.PrimitiveTopologyLineStrip
	case gfx.TopologyTriangleStrip:
		return vk.PrimitiveTopologyTriangleStrip
	case gfx.TopologyTriangleList:
		return vk.PrimitiveTopologyTriangleList
	default:
		return vk.PrimitiveTopologyPointList
	}
}

func toVkCullMode(c gfx.CullMode) vk.CullModeFlags {
	switch c {
	case gfx.CullFront:
		return vk.CullModeFlags(vk.CullModeFrontBit)
	case gfx.CullBack:
		return vk.CullModeFlags(vk.CullModeBackBit)
	case gfx.CullFrontAndBack:
		return vk.CullModeFlags(vk.CullModeFrontAndBack)
	default:
		return vk.CullModeFlags(vk.CullModeNone)
	}
}

func toVkFrontFace(f gfx.FrontFace) vk.FrontFace {
	if f == gfx.FrontFaceCW {
		return vk.FrontFaceClockwise
	}
	return vk.FrontFaceCounterClockwise
}

func toVkBlendFactor(b gfx.BlendFactor) vk.BlendFactor {
	switch b {
	case gfx.BlendFactorOne:
		return vk.BlendFactorOne
	case gfx.BlendFactorSrcAlpha:
		return vk.BlendFactorSrcAlpha
	case gfx.BlendFactorOneMinusSrcAlpha:
		return vk.BlendFactorOneMinusSrcAlpha
	case gfx.BlendFactorDstAlpha:
		return vk.BlendFactorDstAlpha
	case gfx.BlendFactorOneMinusDstAlpha:
		return vk.BlendFactorOneMinusDstAlpha
	case gfx.BlendFactorSrcColor:
		return vk.BlendFactorSrcColor
	case gfx.BlendFactorOneMinusSrcColor:
		return vk.BlendFactorOneMinusSrcColor
	case gfx.BlendFactorDstColor:
		return vk.BlendFactorDstColor
	case gfx.BlendFactorOneMinusDstColor:
		return vk.BlendFactorOneMinusDstColor
	default:
		return vk.BlendFactorZero
	}
}

func toVkBlendOp(b gfx.BlendOp) vk.BlendOp {
	switch b {
	case gfx.BlendOpSubtract:
		return vk.BlendOpSubtract
	case gfx.BlendOpReverseSubtract:
		return vk.BlendOpReverseSubtract
	case gfx.BlendOpMin:
		return vk.BlendOpMin
	case gfx.BlendOpMax:
		return vk.BlendOpMax
	default:
		return vk.BlendOpAdd
	}
}

func toVkLoadOp(l gfx.LoadOp) vk.AttachmentLoadOp {
	switch l {
	case gfx.LoadOpClear:
		return vk.AttachmentLoadOpClear
	case gfx.LoadOpDontCare:
		return vk.AttachmentLoadOpDontCare
	default:
		return vk.AttachmentLoadOpLoad
	}
}

func toVkStoreOp(s gfx.StoreOp) vk.AttachmentStoreOp {
	if s == gfx.StoreOpDontCare {
		return vk.AttachmentStoreOpDontCare
	}
	return vk.AttachmentStoreOpStore
}

func toVkShaderStage(s gfx.ShaderStage) vk.ShaderStageFlags {
	var flags vk.ShaderStageFlags
	if s.Has(gfx.StageVertex) {
		flags |= vk.ShaderStageFlags(vk.ShaderStageVertexBit)
	}
	if s.Has(gfx.StageFragment) {
		flags |= vk.ShaderStageFlags(vk.ShaderStageFragmentBit)
	}
	if s.Has(gfx.StageCompute) {
		flags |= vk.ShaderStageFlags(vk.ShaderStageComputeBit)
	}
	return flags
}

func toVkIndexType(f gfx.IndexFormat) vk.IndexType {
	if f == gfx.IndexFormatUint32 {
		return vk.IndexTypeUint32
	}
	return vk.IndexTypeUint16
}

func toVkPresentMode(p gfx.PresentMode) vk.PresentMode {
	switch p {
	case gfx.PresentModeMailbox:
		return vk.PresentModeMailbox
	case gfx.PresentModeImmediate:
		return vk.PresentModeImmediate
	default:
		return vk.PresentModeFifo
	}
}

func toVkDescriptorType(b gfx.BindingType) vk.DescriptorType {
	switch b {
	case gfx.BindingStorageBuffer:
		return vk.DescriptorTypeStorageBuffer
	case gfx.BindingSampledTexture:
		return vk.DescriptorTypeSampledImage
	case gfx.BindingStorageTexture:
		return vk.DescriptorTypeStorageImage
	case gfx.BindingSampler:
		return vk.DescriptorTypeSampler
	default:
		return vk.DescriptorTypeUniformBuffer
	}
}

// sliceUint32 reinterprets a byte slice holding SPIR-V as its uint32 words,
// the same cast legacy/dieselvk/util (sliceUint32) performs before handing
// code to vk.ShaderModuleCreateInfo.PCode.
func sliceUint32(data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = uint32(data[i*4]) | uint32(data[i*4+1])<<8 | uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
	}
	return out
}
