package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

type pipelineResource struct {
	pipeline  vk.Pipeline
	layout    vk.PipelineLayout
	bindPoint vk.PipelineBindPoint
}

// CreateGraphicsPipeline builds a dynamic-rendering pipeline (spec.md
// §4.1/§4.4): ColorFormat/DepthFormat feed a chained
// vk.PipelineRenderingCreateInfo instead of a vk.RenderPass handle, the
// generalization of legacy/dieselvk/pipeline.go's PipelineBuilder that
// spec.md's Open Questions call for without reconciling against the
// legacy render-pass path kept alongside it in resources_renderpass.go.
func (b *Backend) CreateGraphicsPipeline(desc gfx.GraphicsPipelineDesc) gfx.Pipeline {
	layoutRec, ok := b.pipelineLayouts.Get(arena.Key(desc.Layout))
	if !ok {
		glog.Global.Errorf("vulkan: CreateGraphicsPipeline against unknown layout")
		return 0
	}

	stages := make([]vk.PipelineShaderStageCreateInfo, 0, 2)
	if vs, ok := b.shaders.Get(arena.Key(desc.VertexShader)); ok {
		stages = append(stages, vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: vs.module,
			PName:  vs.entry,
		})
	}
	if !desc.FragmentShader.IsNull() {
		if fs, ok := b.shaders.Get(arena.Key(desc.FragmentShader)); ok {
			stages = append(stages, vk.PipelineShaderStageCreateInfo{
				SType:  vk.StructureTypePipelineShaderStageCreateInfo,
				Stage:  vk.ShaderStageFragmentBit,
				Module: fs.module,
				PName:  fs.entry,
			})
		}
	}

	bindings := make([]vk.VertexInputBindingDescription, len(desc.VertexBuffers))
	var attrs []vk.VertexInputAttributeDescription
	for i, vb := range desc.VertexBuffers {
		rate := vk.VertexInputRateVertex
		if vb.StepPerInstance {
			rate = vk.VertexInputRateInstance
		}
		bindings[i] = vk.VertexInputBindingDescription{
			Binding:   uint32(i),
			Stride:    vb.Stride,
			InputRate: rate,
		}
		for _, a := range vb.Attributes {
			attrs = append(attrs, vk.VertexInputAttributeDescription{
				Location: a.ShaderLocation,
				Binding:  uint32(i),
				Format:   toVkFormat(a.Format),
				Offset:   a.Offset,
			})
		}
	}

	vertexInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(bindings)),
		PVertexBindingDescriptions:      bindings,
		VertexAttributeDescriptionCount: uint32(len(attrs)),
		PVertexAttributeDescriptions:    attrs,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: toVkTopology(desc.Topology),
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	rasterizer := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: polygonMode(desc.Raster.Wireframe),
		CullMode:    toVkCullMode(desc.Raster.Cull),
		FrontFace:   toVkFrontFace(desc.Raster.Front),
		LineWidth:   1.0,
		DepthClampEnable: boolToVk(b.features.DepthClamp),
	}

	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		MinSampleShading:     1.0,
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:            vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:  boolToVk(desc.DepthStencil.TestEnable),
		DepthWriteEnable: boolToVk(desc.DepthStencil.WriteEnable),
		DepthCompareOp:   toVkCompareOp(desc.DepthStencil.Compare),
	}

	blendAttachment := vk.PipelineColorBlendAttachmentState{
		BlendEnable:         boolToVk(desc.Blend.Enable),
		SrcColorBlendFactor: toVkBlendFactor(desc.Blend.SrcColor),
		DstColorBlendFactor: toVkBlendFactor(desc.Blend.DstColor),
		ColorBlendOp:        toVkBlendOp(desc.Blend.ColorOp),
		SrcAlphaBlendFactor: toVkBlendFactor(desc.Blend.SrcAlpha),
		DstAlphaBlendFactor: toVkBlendFactor(desc.Blend.DstAlpha),
		AlphaBlendOp:        toVkBlendOp(desc.Blend.AlphaOp),
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit) | vk.ColorComponentFlags(vk.ColorComponentGBit) |
			vk.ColorComponentFlags(vk.ColorComponentBBit) | vk.ColorComponentFlags(vk.ColorComponentABit),
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{blendAttachment},
	}

	dynamicStates := []vk.DynamicState{vk.DynamicStateViewport, vk.DynamicStateScissor, vk.DynamicStateBlendConstants, vk.DynamicStateStencilReference}
	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}

	colorFormats := []vk.Format{toVkFormat(desc.ColorFormat)}
	renderingInfo := vk.PipelineRenderingCreateInfo{
		SType:                vk.StructureTypePipelineRenderingCreateInfo,
		ColorAttachmentCount: 1,
		PColorAttachmentFormats: colorFormats,
		DepthAttachmentFormat:   toVkFormat(desc.DepthFormat),
	}
	if hasStencil(desc.DepthFormat) {
		renderingInfo.StencilAttachmentFormat = toVkFormat(desc.DepthFormat)
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		PNext:                unsafePointerOf(&renderingInfo),
		StageCount:           uint32(len(stages)),
		PStages:              stages,
		PVertexInputState:    &vertexInput,
		PInputAssemblyState:  &inputAssembly,
		PViewportState:       &viewportState,
		PRasterizationState:  &rasterizer,
		PMultisampleState:    &multisample,
		PDepthStencilState:   &depthStencil,
		PColorBlendState:     &colorBlend,
		PDynamicState:        &dynamicState,
		Layout:               layoutRec.layout,
	}

	pipelines := make([]vk.Pipeline, 1)
	ret := vk.CreateGraphicsPipelines(b.device, vk.NullPipelineCache, 1, []vk.GraphicsPipelineCreateInfo{info}, nil, pipelines)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateGraphicsPipeline failed: %v", newError(ret))
		return 0
	}

	key := b.pipelines.Insert(pipelineResource{pipeline: pipelines[0], layout: layoutRec.layout, bindPoint: vk.PipelineBindPointGraphics})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypePipeline, uint64(pipelines[0]), desc.Label)
	}
	return gfx.Pipeline(key)
}

func (b *Backend) CreateComputePipeline(desc gfx.ComputePipelineDesc) gfx.Pipeline {
	layoutRec, ok := b.pipelineLayouts.Get(arena.Key(desc.Layout))
	if !ok {
		glog.Global.Errorf("vulkan: CreateComputePipeline against unknown layout")
		return 0
	}
	shaderRec, ok := b.shaders.Get(arena.Key(desc.Shader))
	if !ok {
		glog.Global.Errorf("vulkan: CreateComputePipeline against unknown shader")
		return 0
	}

	info := vk.ComputePipelineCreateInfo{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageComputeBit,
			Module: shaderRec.module,
			PName:  shaderRec.entry,
		},
		Layout: layoutRec.layout,
	}

	pipelines := make([]vk.Pipeline, 1)
	ret := vk.CreateComputePipelines(b.device, vk.NullPipelineCache, 1, []vk.ComputePipelineCreateInfo{info}, nil, pipelines)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateComputePipeline failed: %v", newError(ret))
		return 0
	}

	key := b.pipelines.Insert(pipelineResource{pipeline: pipelines[0], layout: layoutRec.layout, bindPoint: vk.PipelineBindPointCompute})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypePipeline, uint64(pipelines[0]), desc.Label)
	}
	return gfx.Pipeline(key)
}

func (b *Backend) DestroyPipeline(h gfx.Pipeline) {
	rec, ok := b.pipelines.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyPipeline on unknown or already-destroyed handle")
		return
	}
	vk.DestroyPipeline(b.device, rec.pipeline, nil)
	b.pipelines.Remove(arena.Key(h))
}

func polygonMode(wireframe bool) vk.PolygonMode {
	if wireframe {
		return vk.PolygonModeLine
	}
	return vk.PolygonModeFill
}
