package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

// The legacy render-pass/framebuffer path generalizes
// legacy/dieselvk/renderpass.go's CreateRenderPass: a single subpass, N
// color attachments plus an optional depth attachment, and a single
// external->subpass dependency covering color output and early fragment
// tests. spec.md's Open Questions leave this path un-reconciled against
// the dynamic-rendering pipelines in resources_pipeline.go — both are
// kept, exactly as asked.
type renderPassResource struct {
	pass       vk.RenderPass
	colorCount int
	hasDepth   bool
}

func (b *Backend) CreateRenderPass(desc gfx.RenderPassDesc) gfx.RenderPass {
	attachments := make([]vk.AttachmentDescription, 0, len(desc.ColorAttachments)+1)
	colorRefs := make([]vk.AttachmentReference, 0, len(desc.ColorAttachments))
	for _, c := range desc.ColorAttachments {
		attachments = append(attachments, vk.AttachmentDescription{
			Format:         toVkFormat(c.Format),
			Samples:        sampleCountFlag(c.SampleCount),
			LoadOp:         toVkLoadOp(c.LoadOp),
			StoreOp:        toVkStoreOp(c.StoreOp),
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutColorAttachmentOptimal,
		})
		colorRefs = append(colorRefs, vk.AttachmentReference{
			Attachment: uint32(len(attachments) - 1),
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		})
	}

	var depthRef *vk.AttachmentReference
	if desc.DepthAttachment != nil {
		d := *desc.DepthAttachment
		attachments = append(attachments, vk.AttachmentDescription{
			Format:         toVkFormat(d.Format),
			Samples:        sampleCountFlag(d.SampleCount),
			LoadOp:         toVkLoadOp(d.LoadOp),
			StoreOp:        toVkStoreOp(d.StoreOp),
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
			FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
		})
		depthRef = &vk.AttachmentReference{
			Attachment: uint32(len(attachments) - 1),
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		}
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    uint32(len(colorRefs)),
		PColorAttachments:       colorRefs,
		PDepthStencilAttachment: depthRef,
	}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit) | vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit) | vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit),
		SrcAccessMask: 0,
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit) | vk.AccessFlags(vk.AccessDepthStencilAttachmentWriteBit),
	}

	var pass vk.RenderPass
	ret := vk.CreateRenderPass(b.device, &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}, nil, &pass)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateRenderPass failed: %v", newError(ret))
		return 0
	}

	key := b.renderPasses.Insert(renderPassResource{pass: pass, colorCount: len(desc.ColorAttachments), hasDepth: desc.DepthAttachment != nil})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeRenderPass, uint64(pass), desc.Label)
	}
	return gfx.RenderPass(key)
}

func (b *Backend) DestroyRenderPass(h gfx.RenderPass) {
	rec, ok := b.renderPasses.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyRenderPass on unknown or already-destroyed handle")
		return
	}
	vk.DestroyRenderPass(b.device, rec.pass, nil)
	b.renderPasses.Remove(arena.Key(h))
}

type framebufferResource struct {
	fb     vk.Framebuffer
	width  uint32
	height uint32
}

func (b *Backend) CreateFramebuffer(desc gfx.FramebufferDesc) gfx.Framebuffer {
	passRec, ok := b.renderPasses.Get(arena.Key(desc.RenderPass))
	if !ok {
		glog.Global.Errorf("vulkan: CreateFramebuffer against unknown render pass")
		return 0
	}

	views := make([]vk.ImageView, 0, len(desc.ColorViews)+1)
	for _, v := range desc.ColorViews {
		rec, ok := b.textureViews.Get(arena.Key(v))
		if !ok {
			glog.Global.Errorf("vulkan: CreateFramebuffer references unknown color view")
			return 0
		}
		views = append(views, rec.view)
	}
	if !desc.DepthView.IsNull() {
		rec, ok := b.textureViews.Get(arena.Key(desc.DepthView))
		if !ok {
			glog.Global.Errorf("vulkan: CreateFramebuffer references unknown depth view")
			return 0
		}
		views = append(views, rec.view)
	}

	layers := desc.Layers
	if layers == 0 {
		layers = 1
	}

	var fb vk.Framebuffer
	ret := vk.CreateFramebuffer(b.device, &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      passRec.pass,
		AttachmentCount: uint32(len(views)),
		PAttachments:    views,
		Width:           desc.Width,
		Height:          desc.Height,
		Layers:          layers,
	}, nil, &fb)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateFramebuffer failed: %v", newError(ret))
		return 0
	}

	key := b.framebuffers.Insert(framebufferResource{fb: fb, width: desc.Width, height: desc.Height})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeFramebuffer, uint64(fb), desc.Label)
	}
	return gfx.Framebuffer(key)
}

func (b *Backend) DestroyFramebuffer(h gfx.Framebuffer) {
	rec, ok := b.framebuffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyFramebuffer on unknown or already-destroyed handle")
		return
	}
	vk.DestroyFramebuffer(b.device, rec.fb, nil)
	b.framebuffers.Remove(arena.Key(h))
}
