// Package webgpu implements gfx.Device against github.com/cogentcore/webgpu's
// wgpu binding. spec.md scopes this backend to the vtable-binding shape only
// ("WebGPU backend internals beyond the vtable-binding shape" is an explicit
// Non-goal) — instance/adapter/device bring-up and the buffer path are real.
// Of the rest, the create functions, BufferMap and SwapchainAcquire/
// SwapchainPresent log a warning through glog.Global and return a null
// handle, nil or an error; the destroy, Cmd* and remaining swapchain
// functions do nothing and return zero values.
package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

// Backend is the WebGPU realization of gfx.Device. Like vulkan.Backend,
// exactly one is bound to the package-level gfx vtable for the process
// lifetime (spec.md §3).
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	buffers arena.Arena[bufferResource]
}

type bufferResource struct {
	buffer *wgpu.Buffer
	size   uint64
}

// New requests the default adapter and device, with no surface
// (headless/offscreen use — spec.md's WebGPU target is the browser, where
// surface setup is driven by the host page, not this backend).
func New() (gfx.Device, error) {
	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: CreateInstance failed: %w", err)
	}

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: RequestAdapter failed: %w", err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: RequestDevice failed: %w", err)
	}

	b := &Backend{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    device.GetQueue(),
	}
	glog.Global.Infof("webgpu: backend ready")
	return b, nil
}

func (b *Backend) Terminate() {
	b.device.Release()
	b.adapter.Release()
	b.instance.Release()
}

// Features/Limits report a conservative, stage-0 subset: the WebGPU backend
// is a vtable-binding stub, so nothing beyond guaranteed baseline WebGPU
// behavior is advertised even when the underlying adapter supports more.
func (b *Backend) Features() gfx.DeviceFeatures { return gfx.DeviceFeatures{} }

func (b *Backend) Limits() gfx.Limits {
	return gfx.Limits{
		MaxImageDimension2D:   8192,
		MaxPushConstantsSize:  0,
		MaxBoundDescriptorSets: 4,
	}
}

func toWgpuUsage(u gfx.Usage) wgpu.BufferUsage {
	var out wgpu.BufferUsage
	if u.Has(gfx.UsageVertex) {
		out |= wgpu.BufferUsageVertex
	}
	if u.Has(gfx.UsageIndex) {
		out |= wgpu.BufferUsageIndex
	}
	if u.Has(gfx.UsageUniform) {
		out |= wgpu.BufferUsageUniform
	}
	if u.Has(gfx.UsageStorage) {
		out |= wgpu.BufferUsageStorage
	}
	if u.Has(gfx.UsageCopySrc) {
		out |= wgpu.BufferUsageCopySrc
	}
	if u.Has(gfx.UsageCopyDst) {
		out |= wgpu.BufferUsageCopyDst
	}
	return out
}

func (b *Backend) CreateBuffer(desc gfx.BufferDesc) gfx.Buffer {
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            desc.Label,
		Size:             desc.Size,
		Usage:            toWgpuUsage(desc.Usage),
		MappedAtCreation: false,
	})
	if err != nil {
		glog.Global.Errorf("webgpu: CreateBuffer failed: %v", err)
		return 0
	}
	key := b.buffers.Insert(bufferResource{buffer: buf, size: desc.Size})
	return gfx.Buffer(key)
}

func (b *Backend) DestroyBuffer(h gfx.Buffer) {
	rec, ok := b.buffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("webgpu: DestroyBuffer on unknown or already-destroyed handle")
		return
	}
	rec.buffer.Release()
	b.buffers.Remove(arena.Key(h))
}

func (b *Backend) BufferWrite(h gfx.Buffer, offset uint64, data []byte) {
	rec, ok := b.buffers.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("webgpu: BufferWrite against unknown handle")
		return
	}
	b.queue.WriteBuffer(rec.buffer, offset, data)
}

// BufferMap/BufferUnmap are stubbed per this backend's vtable-only scope:
// wgpu's mapping is asynchronous and callback-driven, which doesn't fit the
// core's synchronous BufferMap contract without a blocking poll loop this
// stub does not implement.
func (b *Backend) BufferMap(h gfx.Buffer, offset, size uint64) []byte {
	glog.Global.Warnf("webgpu: BufferMap not implemented in the vtable-binding stub")
	return nil
}

func (b *Backend) BufferUnmap(h gfx.Buffer) {}

func notImplemented(op string) {
	glog.Global.Warnf("webgpu: %s not implemented in the vtable-binding stub", op)
}

func (b *Backend) CreateTexture(desc gfx.TextureDesc) gfx.Texture { notImplemented("CreateTexture"); return 0 }
func (b *Backend) DestroyTexture(h gfx.Texture)                   {}

func (b *Backend) CreateTextureView(desc gfx.TextureViewDesc) gfx.TextureView {
	notImplemented("CreateTextureView")
	return 0
}
func (b *Backend) DestroyTextureView(h gfx.TextureView) {}

func (b *Backend) CreateSampler(desc gfx.SamplerDesc) gfx.Sampler { notImplemented("CreateSampler"); return 0 }
func (b *Backend) DestroySampler(h gfx.Sampler)                   {}

func (b *Backend) CreateShader(desc gfx.ShaderDesc) gfx.Shader { notImplemented("CreateShader"); return 0 }
func (b *Backend) DestroyShader(h gfx.Shader)                  {}

func (b *Backend) CreateBindGroupLayout(desc gfx.BindGroupLayoutDesc) gfx.BindGroupLayout {
	notImplemented("CreateBindGroupLayout")
	return 0
}
func (b *Backend) DestroyBindGroupLayout(h gfx.BindGroupLayout) {}

func (b *Backend) CreatePipelineLayout(desc gfx.PipelineLayoutDesc) gfx.PipelineLayout {
	notImplemented("CreatePipelineLayout")
	return 0
}
func (b *Backend) DestroyPipelineLayout(h gfx.PipelineLayout) {}

func (b *Backend) CreateGraphicsPipeline(desc gfx.GraphicsPipelineDesc) gfx.Pipeline {
	notImplemented("CreateGraphicsPipeline")
	return 0
}
func (b *Backend) CreateComputePipeline(desc gfx.ComputePipelineDesc) gfx.Pipeline {
	notImplemented("CreateComputePipeline")
	return 0
}
func (b *Backend) DestroyPipeline(h gfx.Pipeline) {}

func (b *Backend) CreateBindGroup(desc gfx.BindGroupDesc) gfx.BindGroup {
	notImplemented("CreateBindGroup")
	return 0
}
func (b *Backend) DestroyBindGroup(h gfx.BindGroup) {}

func (b *Backend) CreateRenderPass(desc gfx.RenderPassDesc) gfx.RenderPass {
	notImplemented("CreateRenderPass")
	return 0
}
func (b *Backend) DestroyRenderPass(h gfx.RenderPass) {}

func (b *Backend) CreateFramebuffer(desc gfx.FramebufferDesc) gfx.Framebuffer {
	notImplemented("CreateFramebuffer")
	return 0
}
func (b *Backend) DestroyFramebuffer(h gfx.Framebuffer) {}

func (b *Backend) CreateCommandBuffer() gfx.CommandBuffer { notImplemented("CreateCommandBuffer"); return 0 }
func (b *Backend) DestroyCommandBuffer(h gfx.CommandBuffer) {}
func (b *Backend) CmdBegin(h gfx.CommandBuffer)  {}
func (b *Backend) CmdEnd(h gfx.CommandBuffer)    {}
func (b *Backend) CmdSubmit(h gfx.CommandBuffer) {}

func (b *Backend) CmdSetPipeline(h gfx.CommandBuffer, p gfx.Pipeline)                   {}
func (b *Backend) CmdSetBindGroup(h gfx.CommandBuffer, index uint32, bg gfx.BindGroup)  {}
func (b *Backend) CmdSetVertexBuffer(h gfx.CommandBuffer, slot uint32, buf gfx.Buffer, offset uint64) {
}
func (b *Backend) CmdSetIndexBuffer(h gfx.CommandBuffer, buf gfx.Buffer, format gfx.IndexFormat, offset uint64) {
}
func (b *Backend) CmdPushConstants(h gfx.CommandBuffer, data []byte) {}
func (b *Backend) CmdSetViewport(h gfx.CommandBuffer, x, y, width, height, minDepth, maxDepth float32) {
}
func (b *Backend) CmdSetScissor(h gfx.CommandBuffer, x, y, width, height int32)  {}
func (b *Backend) CmdSetBlendConstant(h gfx.CommandBuffer, r, g, bl, a float32)  {}
func (b *Backend) CmdSetStencilReference(h gfx.CommandBuffer, front, back uint32) {}

func (b *Backend) CmdBeginRenderPass(h gfx.CommandBuffer, pass gfx.RenderPass, fb gfx.Framebuffer, clears []gfx.ClearValue) {
}
func (b *Backend) CmdEndRenderPass(h gfx.CommandBuffer) {}

func (b *Backend) CmdDraw(h gfx.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
}
func (b *Backend) CmdDrawIndexed(h gfx.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
}
func (b *Backend) CmdDrawIndirect(h gfx.CommandBuffer, indirect gfx.Buffer, offset uint64)        {}
func (b *Backend) CmdDrawIndexedIndirect(h gfx.CommandBuffer, indirect gfx.Buffer, offset uint64) {}

func (b *Backend) CmdDispatch(h gfx.CommandBuffer, x, y, z uint32)                          {}
func (b *Backend) CmdDispatchIndirect(h gfx.CommandBuffer, indirect gfx.Buffer, offset uint64) {}

func (b *Backend) CmdCopyBufferToBuffer(h gfx.CommandBuffer, src gfx.Buffer, srcOffset uint64, dst gfx.Buffer, dstOffset uint64, size uint64) {
}
func (b *Backend) CmdCopyTextureToTexture(h gfx.CommandBuffer, src, dst gfx.Texture) {}
func (b *Backend) CmdCopyBufferToTexture(h gfx.CommandBuffer, src gfx.Buffer, srcOffset uint64, dst gfx.Texture) {
}
func (b *Backend) CmdCopyTextureToBuffer(h gfx.CommandBuffer, src gfx.Texture, dst gfx.Buffer, dstOffset uint64) {
}

func (b *Backend) CmdSetObjectName(h any, name string)                             {}
func (b *Backend) CmdBeginDebugLabel(h gfx.CommandBuffer, name string, color [4]float32) {}
func (b *Backend) CmdEndDebugLabel(h gfx.CommandBuffer)                            {}

func (b *Backend) CreateSwapchain(desc gfx.SwapchainDesc) gfx.Swapchain {
	notImplemented("CreateSwapchain")
	return 0
}
func (b *Backend) DestroySwapchain(h gfx.Swapchain)                    {}
func (b *Backend) SwapchainResize(h gfx.Swapchain, width, height uint32) {}
func (b *Backend) SwapchainAcquire(h gfx.Swapchain) (int, error) {
	notImplemented("SwapchainAcquire")
	return -1, fmt.Errorf("webgpu: swapchain acquire not implemented in the vtable-binding stub")
}
func (b *Backend) SwapchainPresent(h gfx.Swapchain) error {
	notImplemented("SwapchainPresent")
	return fmt.Errorf("webgpu: swapchain present not implemented in the vtable-binding stub")
}
func (b *Backend) SwapchainTextureCount(h gfx.Swapchain) int { return 0 }
func (b *Backend) SwapchainTexture(h gfx.Swapchain, index int) gfx.Texture { return 0 }
func (b *Backend) SwapchainCurrentIndex(h gfx.Swapchain) int { return 0 }
