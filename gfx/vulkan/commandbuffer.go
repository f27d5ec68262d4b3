package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

// commandBufferResource owns its own command pool and completion fence
// rather than sharing Backend's pool, matching the one-buffer-per-pool
// ownership spec.md §4.5 calls for: destroying a command buffer destroys
// exactly the pool that allocated it, and submit always has a fence of its
// own to signal. recording tracks the begin/end lifecycle so a stray
// CmdSubmit or double CmdBegin is caught instead of handed to the driver.
type commandBufferResource struct {
	pool      vk.CommandPool
	buffer    vk.CommandBuffer
	fence     vk.Fence
	recording bool
}

// cbTrackedState is the per-command-buffer side table CmdSetPipeline
// populates and CmdSetBindGroup/CmdPushConstants read back. It is a map
// keyed by handle, kept beside the arena rather than in
// commandBufferResource; the pipeline layout changes on every
// CmdSetPipeline call within a single recording.
type cbTrackedState struct {
	layout    vk.PipelineLayout
	bindPoint vk.PipelineBindPoint
}

func (b *Backend) CreateCommandBuffer() gfx.CommandBuffer {
	var pool vk.CommandPool
	ret := vk.CreateCommandPool(b.device, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: b.graphicsFamily,
	}, nil, &pool)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateCommandBuffer pool failed: %v", newError(ret))
		return 0
	}

	buffers := make([]vk.CommandBuffer, 1)
	ret = vk.AllocateCommandBuffers(b.device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}, buffers)
	if isError(ret) {
		vk.DestroyCommandPool(b.device, pool, nil)
		glog.Global.Errorf("vulkan: CreateCommandBuffer failed: %v", newError(ret))
		return 0
	}

	// Created signaled: the first CmdBegin must not block waiting for a
	// submit that never happened.
	var fence vk.Fence
	ret = vk.CreateFence(b.device, &vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}, nil, &fence)
	if isError(ret) {
		vk.DestroyCommandPool(b.device, pool, nil)
		glog.Global.Errorf("vulkan: CreateCommandBuffer fence failed: %v", newError(ret))
		return 0
	}

	key := b.commandBuffers.Insert(commandBufferResource{pool: pool, buffer: buffers[0], fence: fence})
	return gfx.CommandBuffer(key)
}

func (b *Backend) DestroyCommandBuffer(h gfx.CommandBuffer) {
	rec, ok := b.commandBuffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyCommandBuffer on unknown or already-destroyed handle")
		return
	}
	vk.WaitForFences(b.device, 1, []vk.Fence{rec.fence}, vk.True, vk.MaxUint64)
	vk.DestroyFence(b.device, rec.fence, nil)
	vk.DestroyCommandPool(b.device, rec.pool, nil)
	b.commandBuffers.Remove(arena.Key(h))
}

func (b *Backend) cmdBuffer(h gfx.CommandBuffer) (vk.CommandBuffer, bool) {
	rec, ok := b.commandBuffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: command recorded against unknown or already-destroyed command buffer")
		return nil, false
	}
	return rec.buffer, true
}

// CmdBegin waits for the buffer's own completion fence (signaling the
// previous submit finished, so re-recording is safe), resets it, and opens
// a new one-time-submit recording.
func (b *Backend) CmdBegin(h gfx.CommandBuffer) {
	rec, ok := b.commandBuffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: CmdBegin against unknown or already-destroyed command buffer")
		return
	}
	if rec.recording {
		glog.Global.Warnf("vulkan: CmdBegin on a command buffer that is already recording")
		return
	}
	vk.WaitForFences(b.device, 1, []vk.Fence{rec.fence}, vk.True, vk.MaxUint64)
	vk.ResetFences(b.device, 1, []vk.Fence{rec.fence})
	vk.ResetCommandBuffer(rec.buffer, vk.CommandBufferResetFlags(0))

	ret := vk.BeginCommandBuffer(rec.buffer, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	})
	if isError(ret) {
		glog.Global.Errorf("vulkan: CmdBegin failed: %v", newError(ret))
		return
	}
	rec.recording = true
	b.commandBuffers.Set(arena.Key(h), rec)
}

func (b *Backend) CmdEnd(h gfx.CommandBuffer) {
	rec, ok := b.commandBuffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: CmdEnd against unknown or already-destroyed command buffer")
		return
	}
	ret := vk.EndCommandBuffer(rec.buffer)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CmdEnd failed: %v", newError(ret))
	}
	rec.recording = false
	b.commandBuffers.Set(arena.Key(h), rec)
}

// CmdSubmit posts to the graphics queue and returns immediately; completion
// is reported by the command buffer's own fence, which the next CmdBegin
// (or DestroyCommandBuffer) waits on instead of blocking the submitting
// thread here. The first CmdSubmit after a SwapchainAcquire, whichever
// command buffer it submits, also waits on that frame's image-acquired
// semaphore and signals its render-complete semaphore, bridging the
// acquire the client performed into the present that follows it.
func (b *Backend) CmdSubmit(h gfx.CommandBuffer) {
	rec, ok := b.commandBuffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: CmdSubmit against unknown or already-destroyed command buffer")
		return
	}
	if rec.recording {
		glog.Global.Warnf("vulkan: CmdSubmit on a command buffer that is still recording (CmdEnd not called)")
		return
	}

	info := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{rec.buffer},
	}
	if pending := b.takePendingAcquire(); pending != nil {
		waitStages := []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)}
		info.WaitSemaphoreCount = 1
		info.PWaitSemaphores = []vk.Semaphore{pending.imageAcquired}
		info.PWaitDstStageMask = waitStages
		info.SignalSemaphoreCount = 1
		info.PSignalSemaphores = []vk.Semaphore{pending.renderComplete}
	}

	ret := vk.QueueSubmit(b.graphicsQueue, 1, []vk.SubmitInfo{info}, rec.fence)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CmdSubmit failed: %v", newError(ret))
	}
}

func (b *Backend) CmdSetPipeline(h gfx.CommandBuffer, p gfx.Pipeline) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	rec, ok := b.pipelines.Get(arena.Key(p))
	if !ok {
		glog.Global.Errorf("vulkan: CmdSetPipeline against unknown pipeline")
		return
	}
	vk.CmdBindPipeline(cb, rec.bindPoint, rec.pipeline)

	if b.cbState == nil {
		b.cbState = make(map[gfx.CommandBuffer]cbTrackedState)
	}
	b.cbState[h] = cbTrackedState{layout: rec.layout, bindPoint: rec.bindPoint}
}

func (b *Backend) cmdLayout(h gfx.CommandBuffer) (vk.PipelineLayout, vk.PipelineBindPoint, bool) {
	st, ok := b.cbState[h]
	if !ok {
		return nil, 0, false
	}
	return st.layout, st.bindPoint, true
}

func (b *Backend) CmdSetBindGroup(h gfx.CommandBuffer, index uint32, bg gfx.BindGroup) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	layout, bindPoint, ok := b.cmdLayout(h)
	if !ok {
		glog.Global.Errorf("vulkan: CmdSetBindGroup before CmdSetPipeline")
		return
	}
	rec, ok := b.bindGroups.Get(arena.Key(bg))
	if !ok {
		glog.Global.Errorf("vulkan: CmdSetBindGroup against unknown bind group")
		return
	}
	vk.CmdBindDescriptorSets(cb, bindPoint, layout, index, 1, []vk.DescriptorSet{rec.set}, 0, nil)
}

func (b *Backend) CmdSetVertexBuffer(h gfx.CommandBuffer, slot uint32, buf gfx.Buffer, offset uint64) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	rec, ok := b.buffers.Get(arena.Key(buf))
	if !ok {
		glog.Global.Errorf("vulkan: CmdSetVertexBuffer against unknown buffer")
		return
	}
	vk.CmdBindVertexBuffers(cb, slot, 1, []vk.Buffer{rec.buffer}, []vk.DeviceSize{vk.DeviceSize(offset)})
}

func (b *Backend) CmdSetIndexBuffer(h gfx.CommandBuffer, buf gfx.Buffer, format gfx.IndexFormat, offset uint64) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	rec, ok := b.buffers.Get(arena.Key(buf))
	if !ok {
		glog.Global.Errorf("vulkan: CmdSetIndexBuffer against unknown buffer")
		return
	}
	vk.CmdBindIndexBuffer(cb, rec.buffer, vk.DeviceSize(offset), toVkIndexType(format))
}

// CmdPushConstants always targets the 128-byte all-stages range
// CreatePipelineLayout installs (spec.md §4.4); data longer than
// gfx.PushConstantRangeBytes is truncated, matching the layout's fixed
// range size.
func (b *Backend) CmdPushConstants(h gfx.CommandBuffer, data []byte) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	layout, _, ok := b.cmdLayout(h)
	if !ok {
		glog.Global.Errorf("vulkan: CmdPushConstants before CmdSetPipeline")
		return
	}
	size := len(data)
	if size > gfx.PushConstantRangeBytes {
		size = gfx.PushConstantRangeBytes
	}
	vk.CmdPushConstants(cb, layout, vk.ShaderStageFlags(vk.ShaderStageAllBit), 0, uint32(size), unsafePointerOf(&data[0]))
}

func (b *Backend) CmdSetViewport(h gfx.CommandBuffer, x, y, width, height, minDepth, maxDepth float32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdSetViewport(cb, 0, 1, []vk.Viewport{{X: x, Y: y, Width: width, Height: height, MinDepth: minDepth, MaxDepth: maxDepth}})
}

func (b *Backend) CmdSetScissor(h gfx.CommandBuffer, x, y, width, height int32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdSetScissor(cb, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{X: x, Y: y},
		Extent: vk.Extent2D{Width: uint32(width), Height: uint32(height)},
	}})
}

func (b *Backend) CmdSetBlendConstant(h gfx.CommandBuffer, r, g, bl, a float32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdSetBlendConstants(cb, [4]float32{r, g, bl, a})
}

func (b *Backend) CmdSetStencilReference(h gfx.CommandBuffer, front, back uint32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdSetStencilReference(cb, vk.StencilFaceFlags(vk.StencilFaceFrontBit), front)
	vk.CmdSetStencilReference(cb, vk.StencilFaceFlags(vk.StencilFaceBackBit), back)
}

func (b *Backend) CmdBeginRenderPass(h gfx.CommandBuffer, pass gfx.RenderPass, fb gfx.Framebuffer, clears []gfx.ClearValue) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	passRec, ok := b.renderPasses.Get(arena.Key(pass))
	if !ok {
		glog.Global.Errorf("vulkan: CmdBeginRenderPass against unknown render pass")
		return
	}
	fbRec, ok := b.framebuffers.Get(arena.Key(fb))
	if !ok {
		glog.Global.Errorf("vulkan: CmdBeginRenderPass against unknown framebuffer")
		return
	}

	vkClears := make([]vk.ClearValue, len(clears))
	for i, c := range clears {
		var cv vk.ClearValue
		if passRec.hasDepth && i == len(clears)-1 {
			cv.SetDepthStencil(c.Depth, c.Stencil)
		} else {
			cv.SetColor(c.Color[:])
		}
		vkClears[i] = cv
	}

	vk.CmdBeginRenderPass(cb, &vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  passRec.pass,
		Framebuffer: fbRec.fb,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{Width: fbRec.width, Height: fbRec.height},
		},
		ClearValueCount: uint32(len(vkClears)),
		PClearValues:    vkClears,
	}, vk.SubpassContentsInline)
}

func (b *Backend) CmdEndRenderPass(h gfx.CommandBuffer) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdEndRenderPass(cb)
}

func (b *Backend) CmdDraw(h gfx.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdDraw(cb, vertexCount, instanceCount, firstVertex, firstInstance)
}

func (b *Backend) CmdDrawIndexed(h gfx.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdDrawIndexed(cb, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

func (b *Backend) CmdDrawIndirect(h gfx.CommandBuffer, indirect gfx.Buffer, offset uint64) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	rec, ok := b.buffers.Get(arena.Key(indirect))
	if !ok {
		glog.Global.Errorf("vulkan: CmdDrawIndirect against unknown buffer")
		return
	}
	vk.CmdDrawIndirect(cb, rec.buffer, vk.DeviceSize(offset), 1, 0)
}

func (b *Backend) CmdDrawIndexedIndirect(h gfx.CommandBuffer, indirect gfx.Buffer, offset uint64) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	rec, ok := b.buffers.Get(arena.Key(indirect))
	if !ok {
		glog.Global.Errorf("vulkan: CmdDrawIndexedIndirect against unknown buffer")
		return
	}
	vk.CmdDrawIndexedIndirect(cb, rec.buffer, vk.DeviceSize(offset), 1, 0)
}

func (b *Backend) CmdDispatch(h gfx.CommandBuffer, x, y, z uint32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdDispatch(cb, x, y, z)
}

func (b *Backend) CmdDispatchIndirect(h gfx.CommandBuffer, indirect gfx.Buffer, offset uint64) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	rec, ok := b.buffers.Get(arena.Key(indirect))
	if !ok {
		glog.Global.Errorf("vulkan: CmdDispatchIndirect against unknown buffer")
		return
	}
	vk.CmdDispatchIndirect(cb, rec.buffer, vk.DeviceSize(offset))
}

func (b *Backend) CmdCopyBufferToBuffer(h gfx.CommandBuffer, src gfx.Buffer, srcOffset uint64, dst gfx.Buffer, dstOffset uint64, size uint64) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	srcRec, ok := b.buffers.Get(arena.Key(src))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyBufferToBuffer against unknown source buffer")
		return
	}
	dstRec, ok := b.buffers.Get(arena.Key(dst))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyBufferToBuffer against unknown destination buffer")
		return
	}
	vk.CmdCopyBuffer(cb, srcRec.buffer, dstRec.buffer, 1, []vk.BufferCopy{{
		SrcOffset: vk.DeviceSize(srcOffset),
		DstOffset: vk.DeviceSize(dstOffset),
		Size:      vk.DeviceSize(size),
	}})
}

func (b *Backend) CmdCopyTextureToTexture(h gfx.CommandBuffer, src, dst gfx.Texture) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	srcRec, ok := b.textures.Get(arena.Key(src))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyTextureToTexture against unknown source texture")
		return
	}
	dstRec, ok := b.textures.Get(arena.Key(dst))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyTextureToTexture against unknown destination texture")
		return
	}
	aspect := toVkAspect(gfx.AspectAuto, srcRec.desc.Format)
	w, h2, d := srcRec.desc.Width, srcRec.desc.Height, srcRec.desc.Depth
	vk.CmdCopyImage(cb, srcRec.image, vk.ImageLayoutTransferSrcOptimal, dstRec.image, vk.ImageLayoutTransferDstOptimal, 1, []vk.ImageCopy{{
		SrcSubresource: vk.ImageSubresourceLayers{AspectMask: aspect, MipLevel: 0, BaseArrayLayer: 0, LayerCount: 1},
		DstSubresource: vk.ImageSubresourceLayers{AspectMask: aspect, MipLevel: 0, BaseArrayLayer: 0, LayerCount: 1},
		Extent:         vk.Extent3D{Width: w, Height: h2, Depth: d},
	}})
}

func (b *Backend) CmdCopyBufferToTexture(h gfx.CommandBuffer, src gfx.Buffer, srcOffset uint64, dst gfx.Texture) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	srcRec, ok := b.buffers.Get(arena.Key(src))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyBufferToTexture against unknown buffer")
		return
	}
	dstRec, ok := b.textures.Get(arena.Key(dst))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyBufferToTexture against unknown texture")
		return
	}
	aspect := toVkAspect(gfx.AspectAuto, dstRec.desc.Format)
	vk.CmdCopyBufferToImage(cb, srcRec.buffer, dstRec.image, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{{
		BufferOffset:      vk.DeviceSize(srcOffset),
		ImageSubresource:  vk.ImageSubresourceLayers{AspectMask: aspect, MipLevel: 0, BaseArrayLayer: 0, LayerCount: 1},
		ImageExtent:       vk.Extent3D{Width: dstRec.desc.Width, Height: dstRec.desc.Height, Depth: dstRec.desc.Depth},
	}})
}

func (b *Backend) CmdCopyTextureToBuffer(h gfx.CommandBuffer, src gfx.Texture, dst gfx.Buffer, dstOffset uint64) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	srcRec, ok := b.textures.Get(arena.Key(src))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyTextureToBuffer against unknown texture")
		return
	}
	dstRec, ok := b.buffers.Get(arena.Key(dst))
	if !ok {
		glog.Global.Errorf("vulkan: CmdCopyTextureToBuffer against unknown buffer")
		return
	}
	aspect := toVkAspect(gfx.AspectAuto, srcRec.desc.Format)
	vk.CmdCopyImageToBuffer(cb, srcRec.image, vk.ImageLayoutTransferSrcOptimal, dstRec.buffer, 1, []vk.BufferImageCopy{{
		BufferOffset:      vk.DeviceSize(dstOffset),
		ImageSubresource:  vk.ImageSubresourceLayers{AspectMask: aspect, MipLevel: 0, BaseArrayLayer: 0, LayerCount: 1},
		ImageExtent:       vk.Extent3D{Width: srcRec.desc.Width, Height: srcRec.desc.Height, Depth: srcRec.desc.Depth},
	}})
}

// CmdSetObjectName accepts any typed gfx handle and forwards it to
// setObjectName with the matching vk.DebugReportObjectType. Unrecognized
// types are logged and otherwise ignored.
func (b *Backend) CmdSetObjectName(h any, name string) {
	switch v := h.(type) {
	case gfx.Buffer:
		if rec, ok := b.buffers.Get(arena.Key(v)); ok {
			b.setObjectName(vk.DebugReportObjectTypeBuffer, uint64(rec.buffer), name)
		}
	case gfx.Texture:
		if rec, ok := b.textures.Get(arena.Key(v)); ok {
			b.setObjectName(vk.DebugReportObjectTypeImage, uint64(rec.image), name)
		}
	case gfx.Pipeline:
		if rec, ok := b.pipelines.Get(arena.Key(v)); ok {
			b.setObjectName(vk.DebugReportObjectTypePipeline, uint64(rec.pipeline), name)
		}
	case gfx.CommandBuffer:
		if rec, ok := b.commandBuffers.Get(arena.Key(v)); ok {
			b.setObjectName(vk.DebugReportObjectTypeCommandBuffer, uint64(rec.buffer), name)
		}
	default:
		glog.Global.Warnf("vulkan: CmdSetObjectName against unsupported handle type %T", h)
	}
}

// CmdBeginDebugLabel/CmdEndDebugLabel bracket a region with
// vk.CmdDebugMarkerBegin/EndEXT, the legacy VK_EXT_debug_marker
// counterpart to the VK_EXT_debug_report callback debug.go installs.
func (b *Backend) CmdBeginDebugLabel(h gfx.CommandBuffer, name string, color [4]float32) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdDebugMarkerBegin(cb, &vk.DebugMarkerMarkerInfo{
		SType:       vk.StructureTypeDebugMarkerMarkerInfo,
		PMarkerName: name,
		Color:       color,
	})
}

func (b *Backend) CmdEndDebugLabel(h gfx.CommandBuffer) {
	cb, ok := b.cmdBuffer(h)
	if !ok {
		return
	}
	vk.CmdDebugMarkerEnd(cb)
}
