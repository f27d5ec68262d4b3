package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

type bindGroupLayoutResource struct {
	layout  vk.DescriptorSetLayout
	entries []gfx.BindGroupLayoutEntry
}

func (b *Backend) CreateBindGroupLayout(desc gfx.BindGroupLayoutDesc) gfx.BindGroupLayout {
	bindings := make([]vk.DescriptorSetLayoutBinding, len(desc.Entries))
	for i, e := range desc.Entries {
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         e.Binding,
			DescriptorType:  toVkDescriptorType(e.Type),
			DescriptorCount: 1,
			StageFlags:      toVkShaderStage(e.Visibility),
		}
	}

	var layout vk.DescriptorSetLayout
	ret := vk.CreateDescriptorSetLayout(b.device, &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}, nil, &layout)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateBindGroupLayout failed: %v", newError(ret))
		return 0
	}

	key := b.bindGroupLayouts.Insert(bindGroupLayoutResource{layout: layout, entries: desc.Entries})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeDescriptorSetLayout, uint64(layout), desc.Label)
	}
	return gfx.BindGroupLayout(key)
}

func (b *Backend) DestroyBindGroupLayout(h gfx.BindGroupLayout) {
	rec, ok := b.bindGroupLayouts.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyBindGroupLayout on unknown or already-destroyed handle")
		return
	}
	vk.DestroyDescriptorSetLayout(b.device, rec.layout, nil)
	b.bindGroupLayouts.Remove(arena.Key(h))
}

type pipelineLayoutResource struct {
	layout vk.PipelineLayout
}

// CreatePipelineLayout always installs the single 128-byte, all-stages
// push-constant range spec.md §4.4 fixes (gfx.PushConstantRangeBytes),
// chained after the requested bind-group-layout set layouts.
func (b *Backend) CreatePipelineLayout(desc gfx.PipelineLayoutDesc) gfx.PipelineLayout {
	setLayouts := make([]vk.DescriptorSetLayout, len(desc.BindGroupLayouts))
	for i, h := range desc.BindGroupLayouts {
		rec, ok := b.bindGroupLayouts.Get(arena.Key(h))
		if !ok {
			glog.Global.Errorf("vulkan: CreatePipelineLayout references unknown bind-group layout")
			return 0
		}
		setLayouts[i] = rec.layout
	}

	pushRange := vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(vk.ShaderStageAllBit),
		Offset:     0,
		Size:       gfx.PushConstantRangeBytes,
	}

	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(b.device, &vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(setLayouts)),
		PSetLayouts:            setLayouts,
		PushConstantRangeCount: 1,
		PPushConstantRanges:    []vk.PushConstantRange{pushRange},
	}, nil, &layout)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreatePipelineLayout failed: %v", newError(ret))
		return 0
	}

	key := b.pipelineLayouts.Insert(pipelineLayoutResource{layout: layout})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypePipelineLayout, uint64(layout), desc.Label)
	}
	return gfx.PipelineLayout(key)
}

func (b *Backend) DestroyPipelineLayout(h gfx.PipelineLayout) {
	rec, ok := b.pipelineLayouts.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyPipelineLayout on unknown or already-destroyed handle")
		return
	}
	vk.DestroyPipelineLayout(b.device, rec.layout, nil)
	b.pipelineLayouts.Remove(arena.Key(h))
}

type bindGroupResource struct {
	set    vk.DescriptorSet
	layout gfx.BindGroupLayout
}

func (b *Backend) CreateBindGroup(desc gfx.BindGroupDesc) gfx.BindGroup {
	layoutRec, ok := b.bindGroupLayouts.Get(arena.Key(desc.Layout))
	if !ok {
		glog.Global.Errorf("vulkan: CreateBindGroup against unknown layout")
		return 0
	}

	sets := make([]vk.DescriptorSet, 1)
	ret := vk.AllocateDescriptorSets(b.device, &vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     b.descriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layoutRec.layout},
	}, sets)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateBindGroup allocation failed: %v", newError(ret))
		return 0
	}

	writes := make([]vk.WriteDescriptorSet, 0, len(desc.Entries))
	for _, e := range desc.Entries {
		entryType := bindingTypeFor(layoutRec.entries, e.Binding)
		write := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          sets[0],
			DstBinding:      e.Binding,
			DescriptorCount: 1,
			DescriptorType:  toVkDescriptorType(entryType),
		}
		switch {
		case !e.Buffer.IsNull():
			bufRec, ok := b.buffers.Get(arena.Key(e.Buffer))
			if !ok {
				glog.Global.Errorf("vulkan: CreateBindGroup references unknown buffer")
				continue
			}
			size := e.BufferSize
			if size == 0 {
				size = bufRec.size
			}
			write.PBufferInfo = []vk.DescriptorBufferInfo{{
				Buffer: bufRec.buffer,
				Offset: 0,
				Range:  vk.DeviceSize(size),
			}}
		case !e.TextureView.IsNull():
			viewRec, ok := b.textureViews.Get(arena.Key(e.TextureView))
			if !ok {
				glog.Global.Errorf("vulkan: CreateBindGroup references unknown texture view")
				continue
			}
			layout := vk.ImageLayoutShaderReadOnlyOptimal
			if entryType == gfx.BindingStorageTexture {
				layout = vk.ImageLayoutGeneral
			}
			write.PImageInfo = []vk.DescriptorImageInfo{{ImageView: viewRec.view, ImageLayout: layout}}
		case !e.Sampler.IsNull():
			samplerRec, ok := b.samplers.Get(arena.Key(e.Sampler))
			if !ok {
				glog.Global.Errorf("vulkan: CreateBindGroup references unknown sampler")
				continue
			}
			write.PImageInfo = []vk.DescriptorImageInfo{{Sampler: samplerRec.sampler}}
		}
		writes = append(writes, write)
	}
	if len(writes) > 0 {
		vk.UpdateDescriptorSets(b.device, uint32(len(writes)), writes, 0, nil)
	}

	key := b.bindGroups.Insert(bindGroupResource{set: sets[0], layout: desc.Layout})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeDescriptorSet, uint64(sets[0]), desc.Label)
	}
	return gfx.BindGroup(key)
}

func bindingTypeFor(entries []gfx.BindGroupLayoutEntry, binding uint32) gfx.BindingType {
	for _, e := range entries {
		if e.Binding == binding {
			return e.Type
		}
	}
	return gfx.BindingUniformBuffer
}

func (b *Backend) DestroyBindGroup(h gfx.BindGroup) {
	rec, ok := b.bindGroups.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyBindGroup on unknown or already-destroyed handle")
		return
	}
	vk.FreeDescriptorSets(b.device, b.descriptorPool, 1, []vk.DescriptorSet{rec.set})
	b.bindGroups.Remove(arena.Key(h))
}
