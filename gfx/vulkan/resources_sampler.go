package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

type samplerResource struct {
	sampler vk.Sampler
}

func (b *Backend) CreateSampler(desc gfx.SamplerDesc) gfx.Sampler {
	anisotropyEnable := desc.MaxAnisotropy > 1.0 && b.features.SamplerAnisotropy
	maxAnisotropy := desc.MaxAnisotropy
	if !anisotropyEnable {
		maxAnisotropy = 1.0
	}
	compareEnable := desc.Compare != gfx.CompareAlways

	var sampler vk.Sampler
	ret := vk.CreateSampler(b.device, &vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               toVkFilter(desc.MagFilter),
		MinFilter:               toVkFilter(desc.MinFilter),
		MipmapMode:              toVkMipmapMode(desc.MipFilter),
		AddressModeU:            toVkAddressMode(desc.AddressModeU),
		AddressModeV:            toVkAddressMode(desc.AddressModeV),
		AddressModeW:            toVkAddressMode(desc.AddressModeW),
		MinLod:                  desc.LODMin,
		MaxLod:                  desc.LODMax,
		AnisotropyEnable:        vk.Bool32(boolToVk(anisotropyEnable)),
		MaxAnisotropy:           maxAnisotropy,
		CompareEnable:           vk.Bool32(boolToVk(compareEnable)),
		CompareOp:               toVkCompareOp(desc.Compare),
		BorderColor:             vk.BorderColorFloatTransparentBlack,
		UnnormalizedCoordinates: vk.False,
	}, nil, &sampler)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateSampler failed: %v", newError(ret))
		return 0
	}

	key := b.samplers.Insert(samplerResource{sampler: sampler})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeSampler, uint64(sampler), desc.Label)
	}
	return gfx.Sampler(key)
}

func (b *Backend) DestroySampler(h gfx.Sampler) {
	rec, ok := b.samplers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroySampler on unknown or already-destroyed handle")
		return
	}
	vk.DestroySampler(b.device, rec.sampler, nil)
	b.samplers.Remove(arena.Key(h))
}

func boolToVk(v bool) vk.Bool32 {
	if v {
		return vk.True
	}
	return vk.False
}
