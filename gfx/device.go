package gfx

import "github.com/zirconengine/zircon/gfx/glog"

// Device is the render-device vtable (spec.md §2/§4.1): a flat interface of
// every create/destroy, recording, and swapchain operation. Exactly one
// implementation is bound to the package-level device for the process
// lifetime (spec.md §3's single-active-backend invariant). In C this was a
// struct of function pointers populated once at init; in Go, the same
// contract is an interface satisfied by *vulkan.Backend or *webgpu.Backend,
// with the package-level vtable variable playing the role of the process-
// scope dependency-injection root spec.md §9 calls for.
//
// Every method except SwapchainAcquire and SwapchainPresent follows the
// spec's error-handling policy: on failure it logs through glog.Global and
// returns the null handle (zero value) rather than an error, since the
// client contract is "check handle validity at use sites" (spec.md §7).
// SwapchainAcquire and SwapchainPresent also return an error value.
type Device interface {
	// Lifecycle
	Terminate()
	Features() DeviceFeatures
	Limits() Limits

	// Resource factories
	CreateBuffer(desc BufferDesc) Buffer
	DestroyBuffer(h Buffer)
	BufferWrite(h Buffer, offset uint64, data []byte)
	BufferMap(h Buffer, offset, size uint64) []byte
	BufferUnmap(h Buffer)

	CreateTexture(desc TextureDesc) Texture
	DestroyTexture(h Texture)

	CreateTextureView(desc TextureViewDesc) TextureView
	DestroyTextureView(h TextureView)

	CreateSampler(desc SamplerDesc) Sampler
	DestroySampler(h Sampler)

	CreateShader(desc ShaderDesc) Shader
	DestroyShader(h Shader)

	CreateBindGroupLayout(desc BindGroupLayoutDesc) BindGroupLayout
	DestroyBindGroupLayout(h BindGroupLayout)

	CreatePipelineLayout(desc PipelineLayoutDesc) PipelineLayout
	DestroyPipelineLayout(h PipelineLayout)

	CreateGraphicsPipeline(desc GraphicsPipelineDesc) Pipeline
	CreateComputePipeline(desc ComputePipelineDesc) Pipeline
	DestroyPipeline(h Pipeline)

	CreateBindGroup(desc BindGroupDesc) BindGroup
	DestroyBindGroup(h BindGroup)

	CreateRenderPass(desc RenderPassDesc) RenderPass
	DestroyRenderPass(h RenderPass)

	CreateFramebuffer(desc FramebufferDesc) Framebuffer
	DestroyFramebuffer(h Framebuffer)

	// Command buffers
	CreateCommandBuffer() CommandBuffer
	DestroyCommandBuffer(h CommandBuffer)
	CmdBegin(h CommandBuffer)
	CmdEnd(h CommandBuffer)
	CmdSubmit(h CommandBuffer)

	CmdSetPipeline(h CommandBuffer, p Pipeline)
	CmdSetBindGroup(h CommandBuffer, index uint32, bg BindGroup)
	CmdSetVertexBuffer(h CommandBuffer, slot uint32, b Buffer, offset uint64)
	CmdSetIndexBuffer(h CommandBuffer, b Buffer, format IndexFormat, offset uint64)
	CmdPushConstants(h CommandBuffer, data []byte)
	CmdSetViewport(h CommandBuffer, x, y, width, height, minDepth, maxDepth float32)
	CmdSetScissor(h CommandBuffer, x, y, width, height int32)
	CmdSetBlendConstant(h CommandBuffer, r, g, b, a float32)
	CmdSetStencilReference(h CommandBuffer, front, back uint32)

	CmdBeginRenderPass(h CommandBuffer, pass RenderPass, fb Framebuffer, clears []ClearValue)
	CmdEndRenderPass(h CommandBuffer)

	CmdDraw(h CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32)
	CmdDrawIndexed(h CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	CmdDrawIndirect(h CommandBuffer, indirect Buffer, offset uint64)
	CmdDrawIndexedIndirect(h CommandBuffer, indirect Buffer, offset uint64)

	CmdDispatch(h CommandBuffer, x, y, z uint32)
	CmdDispatchIndirect(h CommandBuffer, indirect Buffer, offset uint64)

	CmdCopyBufferToBuffer(h CommandBuffer, src Buffer, srcOffset uint64, dst Buffer, dstOffset uint64, size uint64)
	CmdCopyTextureToTexture(h CommandBuffer, src, dst Texture)
	CmdCopyBufferToTexture(h CommandBuffer, src Buffer, srcOffset uint64, dst Texture)
	CmdCopyTextureToBuffer(h CommandBuffer, src Texture, dst Buffer, dstOffset uint64)

	CmdSetObjectName(h any, name string)
	CmdBeginDebugLabel(h CommandBuffer, name string, color [4]float32)
	CmdEndDebugLabel(h CommandBuffer)

	// Swapchain
	CreateSwapchain(desc SwapchainDesc) Swapchain
	DestroySwapchain(h Swapchain)
	SwapchainResize(h Swapchain, width, height uint32)
	SwapchainAcquire(h Swapchain) (int, error)
	SwapchainPresent(h Swapchain) error
	SwapchainTextureCount(h Swapchain) int
	SwapchainTexture(h Swapchain, index int) Texture
	SwapchainCurrentIndex(h Swapchain) int
}

// device is the package-scope vtable populated once by Init. It is
// process-wide mutable state by design (spec.md §5): a single backend is
// bound for the life of the process and every package-level function below
// forwards to it.
var device Device

// Active returns the currently bound Device, or nil if Init has not been
// called (or Terminate has already run).
func Active() Device { return device }

// Init constructs the backend's device singletons and binds the package
// vtable. Exactly one backend may be active for the process lifetime
// (spec.md §3). Passing a nil ctor logs an Error and leaves the vtable
// unbound; every subsequent create call then returns a null handle.
func Init(ctor func() (Device, error)) error {
	if ctor == nil {
		glog.Global.Errorf("graphics init: no backend constructor supplied")
		return errNoBackend
	}
	d, err := ctor()
	if err != nil {
		glog.Global.Errorf("graphics init: %v", err)
		return err
	}
	device = d
	return nil
}

// Terminate tears down the active device's singletons in reverse order and
// unbinds the vtable. After Terminate, no GPU operation is legal; every
// forwarding function below is a safe no-op against a nil device.
func Terminate() {
	if device == nil {
		return
	}
	device.Terminate()
	device = nil
}

var errNoBackend = noBackendError{}

type noBackendError struct{}

func (noBackendError) Error() string { return "gfx: no backend constructor supplied" }
