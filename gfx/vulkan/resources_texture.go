package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

// textureResource generalizes legacy/dieselvk/swapchain.go's raw
// image+memory+view construction (CreateFrameBuffer's depth image) into a
// reusable factory for any gfx.TextureDesc. owned is false for images the
// backend did not allocate itself (swapchain images), so DestroyTexture on
// one of those only releases the handle and leaves the image itself alone
// rather than double-freeing it.
type textureResource struct {
	image  vk.Image
	alloc  allocation
	desc   gfx.TextureDesc
	owned  bool
}

func (b *Backend) CreateTexture(desc gfx.TextureDesc) gfx.Texture {
	desc = desc.Normalized()
	var image vk.Image
	ret := vk.CreateImage(b.device, &vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: toVkImageType(desc.Dimension),
		Format:    toVkFormat(desc.Format),
		Extent: vk.Extent3D{
			Width:  desc.Width,
			Height: desc.Height,
			Depth:  desc.Depth,
		},
		MipLevels:   desc.MipLevels,
		ArrayLayers: desc.ArrayLayers,
		Samples:     sampleCountFlag(desc.SampleCount),
		Tiling:      vk.ImageTilingOptimal,
		Usage:       toVkImageUsage(desc.Usage),
		SharingMode: vk.SharingModeExclusive,
		Flags:       cubeFlag(desc.CubeCompatible()),
		InitialLayout: vk.ImageLayoutUndefined,
	}, nil, &image)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateTexture failed: %v", newError(ret))
		return 0
	}

	var reqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(b.device, image, &reqs)
	a, err := b.alloc.alloc(reqs, gfx.MemoryGpuOnly)
	if err != nil {
		vk.DestroyImage(b.device, image, nil)
		glog.Global.Errorf("vulkan: CreateTexture allocation failed: %v", err)
		return 0
	}
	if ret := vk.BindImageMemory(b.device, image, a.memory, 0); isError(ret) {
		b.alloc.free(a)
		vk.DestroyImage(b.device, image, nil)
		glog.Global.Errorf("vulkan: CreateTexture bind failed: %v", newError(ret))
		return 0
	}

	key := b.textures.Insert(textureResource{image: image, alloc: a, desc: desc, owned: true})
	h := gfx.Texture(key)
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeImage, uint64(image), desc.Label)
	}
	return h
}

func sampleCountFlag(count uint32) vk.SampleCountFlagBits {
	switch count {
	case 2:
		return vk.SampleCount2Bit
	case 4:
		return vk.SampleCount4Bit
	case 8:
		return vk.SampleCount8Bit
	case 16:
		return vk.SampleCount16Bit
	default:
		return vk.SampleCount1Bit
	}
}

func cubeFlag(cubeCompatible bool) vk.ImageCreateFlags {
	if cubeCompatible {
		return vk.ImageCreateFlags(vk.ImageCreateCubeCompatibleBit)
	}
	return 0
}

// registerForeignTexture wraps an externally-owned vk.Image (a swapchain
// image) in the texture arena so the rest of the backend can address it
// through the same gfx.Texture handle space as any other texture.
func (b *Backend) registerForeignTexture(image vk.Image, desc gfx.TextureDesc) gfx.Texture {
	key := b.textures.Insert(textureResource{image: image, desc: desc.Normalized(), owned: false})
	return gfx.Texture(key)
}

func (b *Backend) DestroyTexture(h gfx.Texture) {
	rec, ok := b.textures.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyTexture on unknown or already-destroyed handle")
		return
	}
	if rec.owned {
		b.alloc.free(rec.alloc)
		vk.DestroyImage(b.device, rec.image, nil)
	}
	b.textures.Remove(arena.Key(h))
}

type textureViewResource struct {
	view    vk.ImageView
	texture gfx.Texture
	format  gfx.Format
}

func (b *Backend) CreateTextureView(desc gfx.TextureViewDesc) gfx.TextureView {
	tex, ok := b.textures.Get(arena.Key(desc.Texture))
	if !ok {
		glog.Global.Errorf("vulkan: CreateTextureView against unknown texture")
		return 0
	}
	format := desc.Format
	if format == gfx.FormatUndefined {
		format = tex.desc.Format
	}
	mipCount := desc.MipLevelCount
	if mipCount == 0 {
		mipCount = tex.desc.MipLevels - desc.BaseMipLevel
	}
	layerCount := desc.ArrayLayerCount
	if layerCount == 0 {
		layerCount = tex.desc.ArrayLayers - desc.BaseArrayLayer
	}

	var view vk.ImageView
	ret := vk.CreateImageView(b.device, &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    tex.image,
		ViewType: toVkImageViewType(tex.desc.Dimension, tex.desc.CubeCompatible(), layerCount),
		Format:   toVkFormat(format),
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     toVkAspect(desc.Aspect, format),
			BaseMipLevel:   desc.BaseMipLevel,
			LevelCount:     mipCount,
			BaseArrayLayer: desc.BaseArrayLayer,
			LayerCount:     layerCount,
		},
	}, nil, &view)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateTextureView failed: %v", newError(ret))
		return 0
	}

	key := b.textureViews.Insert(textureViewResource{view: view, texture: desc.Texture, format: format})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeImageView, uint64(view), desc.Label)
	}
	return gfx.TextureView(key)
}

func (b *Backend) DestroyTextureView(h gfx.TextureView) {
	rec, ok := b.textureViews.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyTextureView on unknown or already-destroyed handle")
		return
	}
	vk.DestroyImageView(b.device, rec.view, nil)
	b.textureViews.Remove(arena.Key(h))
}
