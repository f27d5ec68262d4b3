package gfx

import "github.com/zirconengine/zircon/gfx/glog"

// This file is the free-function surface spec.md §4.1 requires: "Expose one
// free function per operation... Each function forwards to the
// corresponding vtable slot." Every function below does exactly that
// against the package-scope device. When no backend is bound, the create
// functions and SwapchainAcquire/SwapchainPresent log an error and return
// the null handle (or an error); every other function returns silently
// with no effect (or a zero value) — matching spec.md §7's
// "a failed init leaves get_device_limits and all create functions
// producing nulls indefinitely".

func unbound(op string) {
	glog.Global.Errorf("gfx.%s: called with no active device (Init not called or already Terminated)", op)
}

func CreateBuffer(desc BufferDesc) Buffer {
	if device == nil {
		unbound("CreateBuffer")
		return 0
	}
	return device.CreateBuffer(desc)
}

func DestroyBuffer(h Buffer) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyBuffer(h)
}

func BufferWrite(h Buffer, offset uint64, data []byte) {
	if device == nil || h.IsNull() {
		return
	}
	device.BufferWrite(h, offset, data)
}

func BufferMap(h Buffer, offset, size uint64) []byte {
	if device == nil || h.IsNull() {
		return nil
	}
	return device.BufferMap(h, offset, size)
}

func BufferUnmap(h Buffer) {
	if device == nil || h.IsNull() {
		return
	}
	device.BufferUnmap(h)
}

func CreateTexture(desc TextureDesc) Texture {
	if device == nil {
		unbound("CreateTexture")
		return 0
	}
	return device.CreateTexture(desc)
}

func DestroyTexture(h Texture) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyTexture(h)
}

func CreateTextureView(desc TextureViewDesc) TextureView {
	if device == nil {
		unbound("CreateTextureView")
		return 0
	}
	return device.CreateTextureView(desc)
}

func DestroyTextureView(h TextureView) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyTextureView(h)
}

func CreateSampler(desc SamplerDesc) Sampler {
	if device == nil {
		unbound("CreateSampler")
		return 0
	}
	return device.CreateSampler(desc)
}

func DestroySampler(h Sampler) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroySampler(h)
}

func CreateShader(desc ShaderDesc) Shader {
	if device == nil {
		unbound("CreateShader")
		return 0
	}
	return device.CreateShader(desc)
}

func DestroyShader(h Shader) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyShader(h)
}

func CreateBindGroupLayout(desc BindGroupLayoutDesc) BindGroupLayout {
	if device == nil {
		unbound("CreateBindGroupLayout")
		return 0
	}
	return device.CreateBindGroupLayout(desc)
}

func DestroyBindGroupLayout(h BindGroupLayout) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyBindGroupLayout(h)
}

func CreatePipelineLayout(desc PipelineLayoutDesc) PipelineLayout {
	if device == nil {
		unbound("CreatePipelineLayout")
		return 0
	}
	return device.CreatePipelineLayout(desc)
}

func DestroyPipelineLayout(h PipelineLayout) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyPipelineLayout(h)
}

func CreateGraphicsPipeline(desc GraphicsPipelineDesc) Pipeline {
	if device == nil {
		unbound("CreateGraphicsPipeline")
		return 0
	}
	return device.CreateGraphicsPipeline(desc)
}

func CreateComputePipeline(desc ComputePipelineDesc) Pipeline {
	if device == nil {
		unbound("CreateComputePipeline")
		return 0
	}
	return device.CreateComputePipeline(desc)
}

func DestroyPipeline(h Pipeline) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyPipeline(h)
}

func CreateBindGroup(desc BindGroupDesc) BindGroup {
	if device == nil {
		unbound("CreateBindGroup")
		return 0
	}
	return device.CreateBindGroup(desc)
}

func DestroyBindGroup(h BindGroup) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyBindGroup(h)
}

func CreateRenderPass(desc RenderPassDesc) RenderPass {
	if device == nil {
		unbound("CreateRenderPass")
		return 0
	}
	return device.CreateRenderPass(desc)
}

func DestroyRenderPass(h RenderPass) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyRenderPass(h)
}

func CreateFramebuffer(desc FramebufferDesc) Framebuffer {
	if device == nil {
		unbound("CreateFramebuffer")
		return 0
	}
	return device.CreateFramebuffer(desc)
}

func DestroyFramebuffer(h Framebuffer) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyFramebuffer(h)
}

func CreateCommandBuffer() CommandBuffer {
	if device == nil {
		unbound("CreateCommandBuffer")
		return 0
	}
	return device.CreateCommandBuffer()
}

func DestroyCommandBuffer(h CommandBuffer) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroyCommandBuffer(h)
}

func CmdBegin(h CommandBuffer) {
	if device == nil {
		return
	}
	device.CmdBegin(h)
}

func CmdEnd(h CommandBuffer) {
	if device == nil {
		return
	}
	device.CmdEnd(h)
}

func CmdSubmit(h CommandBuffer) {
	if device == nil {
		return
	}
	device.CmdSubmit(h)
}

func CmdSetPipeline(h CommandBuffer, p Pipeline) {
	if device == nil {
		return
	}
	device.CmdSetPipeline(h, p)
}

func CmdSetBindGroup(h CommandBuffer, index uint32, bg BindGroup) {
	if device == nil {
		return
	}
	device.CmdSetBindGroup(h, index, bg)
}

func CmdSetVertexBuffer(h CommandBuffer, slot uint32, b Buffer, offset uint64) {
	if device == nil {
		return
	}
	device.CmdSetVertexBuffer(h, slot, b, offset)
}

func CmdSetIndexBuffer(h CommandBuffer, b Buffer, format IndexFormat, offset uint64) {
	if device == nil {
		return
	}
	device.CmdSetIndexBuffer(h, b, format, offset)
}

func CmdPushConstants(h CommandBuffer, data []byte) {
	if device == nil {
		return
	}
	device.CmdPushConstants(h, data)
}

func CmdSetViewport(h CommandBuffer, x, y, width, height, minDepth, maxDepth float32) {
	if device == nil {
		return
	}
	device.CmdSetViewport(h, x, y, width, height, minDepth, maxDepth)
}

func CmdSetScissor(h CommandBuffer, x, y, width, height int32) {
	if device == nil {
		return
	}
	device.CmdSetScissor(h, x, y, width, height)
}

func CmdSetBlendConstant(h CommandBuffer, r, g, b, a float32) {
	if device == nil {
		return
	}
	device.CmdSetBlendConstant(h, r, g, b, a)
}

func CmdSetStencilReference(h CommandBuffer, front, back uint32) {
	if device == nil {
		return
	}
	device.CmdSetStencilReference(h, front, back)
}

func CmdBeginRenderPass(h CommandBuffer, pass RenderPass, fb Framebuffer, clears []ClearValue) {
	if device == nil {
		return
	}
	device.CmdBeginRenderPass(h, pass, fb, clears)
}

func CmdEndRenderPass(h CommandBuffer) {
	if device == nil {
		return
	}
	device.CmdEndRenderPass(h)
}

func CmdDraw(h CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if device == nil {
		return
	}
	device.CmdDraw(h, vertexCount, instanceCount, firstVertex, firstInstance)
}

func CmdDrawIndexed(h CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	if device == nil {
		return
	}
	device.CmdDrawIndexed(h, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

func CmdDrawIndirect(h CommandBuffer, indirect Buffer, offset uint64) {
	if device == nil {
		return
	}
	device.CmdDrawIndirect(h, indirect, offset)
}

func CmdDrawIndexedIndirect(h CommandBuffer, indirect Buffer, offset uint64) {
	if device == nil {
		return
	}
	device.CmdDrawIndexedIndirect(h, indirect, offset)
}

func CmdDispatch(h CommandBuffer, x, y, z uint32) {
	if device == nil {
		return
	}
	device.CmdDispatch(h, x, y, z)
}

func CmdDispatchIndirect(h CommandBuffer, indirect Buffer, offset uint64) {
	if device == nil {
		return
	}
	device.CmdDispatchIndirect(h, indirect, offset)
}

func CmdCopyBufferToBuffer(h CommandBuffer, src Buffer, srcOffset uint64, dst Buffer, dstOffset uint64, size uint64) {
	if device == nil {
		return
	}
	device.CmdCopyBufferToBuffer(h, src, srcOffset, dst, dstOffset, size)
}

func CmdCopyTextureToTexture(h CommandBuffer, src, dst Texture) {
	if device == nil {
		return
	}
	device.CmdCopyTextureToTexture(h, src, dst)
}

func CmdCopyBufferToTexture(h CommandBuffer, src Buffer, srcOffset uint64, dst Texture) {
	if device == nil {
		return
	}
	device.CmdCopyBufferToTexture(h, src, srcOffset, dst)
}

func CmdCopyTextureToBuffer(h CommandBuffer, src Texture, dst Buffer, dstOffset uint64) {
	if device == nil {
		return
	}
	device.CmdCopyTextureToBuffer(h, src, dst, dstOffset)
}

func CmdSetObjectName(h any, name string) {
	if device == nil {
		return
	}
	device.CmdSetObjectName(h, name)
}

func CmdBeginDebugLabel(h CommandBuffer, name string, color [4]float32) {
	if device == nil {
		return
	}
	device.CmdBeginDebugLabel(h, name, color)
}

func CmdEndDebugLabel(h CommandBuffer) {
	if device == nil {
		return
	}
	device.CmdEndDebugLabel(h)
}

func CreateSwapchain(desc SwapchainDesc) Swapchain {
	if device == nil {
		unbound("CreateSwapchain")
		return 0
	}
	return device.CreateSwapchain(desc)
}

func DestroySwapchain(h Swapchain) {
	if device == nil || h.IsNull() {
		return
	}
	device.DestroySwapchain(h)
}

func SwapchainResize(h Swapchain, width, height uint32) {
	if device == nil {
		return
	}
	device.SwapchainResize(h, width, height)
}

// SwapchainAcquire acquires the swapchain's next image and returns its
// index, which SwapchainCurrentIndex also reports from this point until the
// next acquire. It must be called before recording the command buffer that
// renders the frame, and that command buffer's CmdSubmit call is what
// actually bridges the acquire into the SwapchainPresent that follows it.
func SwapchainAcquire(h Swapchain) (int, error) {
	if device == nil {
		unbound("SwapchainAcquire")
		return -1, errNoBackend
	}
	return device.SwapchainAcquire(h)
}

func SwapchainPresent(h Swapchain) error {
	if device == nil {
		unbound("SwapchainPresent")
		return errNoBackend
	}
	return device.SwapchainPresent(h)
}

func SwapchainTextureCount(h Swapchain) int {
	if device == nil {
		return 0
	}
	return device.SwapchainTextureCount(h)
}

func SwapchainTexture(h Swapchain, index int) Texture {
	if device == nil {
		return 0
	}
	return device.SwapchainTexture(h, index)
}

func SwapchainCurrentIndex(h Swapchain) int {
	if device == nil {
		return 0
	}
	return device.SwapchainCurrentIndex(h)
}

// GetDeviceLimits returns the active device's limits, or the zero value
// when unbound.
func GetDeviceLimits() Limits {
	if device == nil {
		return Limits{}
	}
	return device.Limits()
}

// GetDeviceFeatures returns the active device's enabled-feature set, or the
// zero value when unbound.
func GetDeviceFeatures() DeviceFeatures {
	if device == nil {
		return DeviceFeatures{}
	}
	return device.Features()
}
