package gfx

// BufferDesc describes a buffer creation request (spec.md §4.1).
type BufferDesc struct {
	Size   uint64
	Usage  Usage
	Memory MemoryUsage
	// Label is an optional debug name, forwarded to SetObjectName when the
	// backend supports it.
	Label string
}

// TextureDesc describes a texture creation request. Height and Depth
// default to 1 for lower-dimensional textures; MipLevels, ArrayLayers, and
// SampleCount default to 1 when zero.
type TextureDesc struct {
	Dimension   TextureDimension
	Width       uint32
	Height      uint32
	Depth       uint32
	MipLevels   uint32
	ArrayLayers uint32
	SampleCount uint32
	Format      Format
	Usage       TextureUsage
	Label       string
}

// Normalized applies spec.md §4.1's defaulting rules to a copy of d and
// returns that copy (d itself is unchanged), shared by every backend's
// texture factory so the
// defaulting logic lives in exactly one place.
func (d TextureDesc) Normalized() TextureDesc {
	if d.Dimension != TextureDimension1D && d.Height == 0 {
		d.Height = 1
	}
	if d.Dimension == TextureDimension1D {
		d.Height = 1
	}
	if d.Depth == 0 {
		d.Depth = 1
	}
	if d.MipLevels == 0 {
		d.MipLevels = 1
	}
	if d.ArrayLayers == 0 {
		d.ArrayLayers = 1
	}
	if d.SampleCount == 0 {
		d.SampleCount = 1
	}
	return d
}

// CubeCompatible reports whether the normalized descriptor should be
// marked cube-compatible: 2D with 6 or more array layers.
func (d TextureDesc) CubeCompatible() bool {
	return d.Dimension == TextureDimension2D && d.ArrayLayers >= 6
}

// TextureViewDesc describes a texture-view creation request. Format of
// FormatUndefined falls back to the parent texture's format; MipLevelCount
// / ArrayLayerCount of 0 means "remaining".
type TextureViewDesc struct {
	Texture         Texture
	Format          Format
	Aspect          TextureAspect
	BaseMipLevel    uint32
	MipLevelCount   uint32
	BaseArrayLayer  uint32
	ArrayLayerCount uint32
	Label           string
}

// SamplerDesc describes a sampler creation request. Anisotropy is enabled
// iff MaxAnisotropy > 1.0; compare-mode is enabled iff Compare != CompareAlways.
type SamplerDesc struct {
	MinFilter    FilterMode
	MagFilter    FilterMode
	MipFilter    FilterMode
	AddressModeU AddressMode
	AddressModeV AddressMode
	AddressModeW AddressMode
	LODMin       float32
	LODMax       float32
	MaxAnisotropy float32
	Compare      CompareFunc
	Label        string
}

// ShaderDesc describes a shader-module creation request. Code is consumed
// as-is (SPIR-V or equivalent bytecode); EntryPoint defaults to "main" and
// must out-live the returned Shader handle.
type ShaderDesc struct {
	Code       []byte
	Stage      ShaderStage
	EntryPoint string
	Label      string
}

func (d ShaderDesc) entryPoint() string {
	if d.EntryPoint == "" {
		return "main"
	}
	return d.EntryPoint
}

// EntryPointOrDefault returns the effective entry-point name, defaulting to "main".
func (d ShaderDesc) EntryPointOrDefault() string { return d.entryPoint() }

// VertexAttribute describes one attribute within a VertexBufferLayout.
type VertexAttribute struct {
	Format         Format
	Offset         uint32
	ShaderLocation uint32
}

// VertexBufferLayout describes one vertex-buffer binding's stride and the
// attributes it supplies.
type VertexBufferLayout struct {
	Stride     uint32
	StepPerInstance bool
	Attributes []VertexAttribute
}

// DepthStencilState describes the graphics pipeline's depth test.
type DepthStencilState struct {
	Format      Format
	TestEnable  bool
	WriteEnable bool
	Compare     CompareFunc
}

// BlendState describes the graphics pipeline's single color-attachment
// blend equation (spec.md §4.4 — "single color-blend attachment").
type BlendState struct {
	Enable        bool
	SrcColor      BlendFactor
	DstColor      BlendFactor
	ColorOp       BlendOp
	SrcAlpha      BlendFactor
	DstAlpha      BlendFactor
	AlphaOp       BlendOp
}

// RasterState describes the graphics pipeline's rasterizer configuration.
type RasterState struct {
	Cull      CullMode
	Front     FrontFace
	Wireframe bool
}

// GraphicsPipelineDesc describes a graphics-pipeline creation request.
// Pipelines are built for dynamic rendering (spec.md §4.1): ColorFormat and
// DepthFormat define the output surface directly, with no RenderPass
// handle. Viewport and scissor are always dynamic state.
type GraphicsPipelineDesc struct {
	Layout         PipelineLayout
	VertexShader   Shader
	FragmentShader Shader // optional: zero value means depth-only pipeline
	VertexBuffers  []VertexBufferLayout
	Topology       PrimitiveTopology
	Raster         RasterState
	DepthStencil   DepthStencilState
	Blend          BlendState
	ColorFormat    Format
	DepthFormat    Format
	Label          string
}

// ComputePipelineDesc describes a compute-pipeline creation request.
type ComputePipelineDesc struct {
	Layout Layout
	Shader Shader
	Label  string
}

// Layout is an alias used only by ComputePipelineDesc to keep the field
// name self-describing without importing a new type.
type Layout = PipelineLayout

// BindGroupLayoutEntry describes one binding slot within a bind-group
// layout.
type BindGroupLayoutEntry struct {
	Binding    uint32
	Visibility ShaderStage
	Type       BindingType
}

// BindGroupLayoutDesc describes a bind-group-layout creation request: an
// ordered list of binding entries.
type BindGroupLayoutDesc struct {
	Entries []BindGroupLayoutEntry
	Label   string
}

// PipelineLayoutDesc gathers the bind-group layouts a pipeline layout
// chains together. A single 128-byte, all-stages push-constant range is
// always installed (spec.md §4.4) — callers passing larger pushes will
// exceed device limits silently, as noted in spec.md's Open Questions.
type PipelineLayoutDesc struct {
	BindGroupLayouts []BindGroupLayout
	Label            string
}

// PushConstantRangeBytes is the hard-coded push-constant range size every
// pipeline layout installs across all shader stages.
const PushConstantRangeBytes = 128

// BindGroupEntry binds one resource to a binding index. At most one of
// Buffer, TextureView, Sampler is non-null; that field selects the
// descriptor type at write time (spec.md §4.1).
type BindGroupEntry struct {
	Binding     uint32
	Buffer      Buffer
	BufferSize  uint64 // 0 means "whole buffer"
	TextureView TextureView
	Sampler     Sampler
}

// BindGroupDesc describes a bind-group creation request.
type BindGroupDesc struct {
	Layout  BindGroupLayout
	Entries []BindGroupEntry
	Label   string
}

// AttachmentDesc describes one render-pass attachment (spec.md §4.1's
// legacy render-pass path, used by the Framebuffer path).
type AttachmentDesc struct {
	Format      Format
	SampleCount uint32
	LoadOp      LoadOp
	StoreOp     StoreOp
}

// RenderPassDesc describes a legacy render-pass creation request: color
// attachments plus an optional depth attachment, a single subpass, and a
// single external→subpass dependency covering color output plus
// early-fragment tests (spec.md §4.1/§4.4).
type RenderPassDesc struct {
	ColorAttachments []AttachmentDesc
	DepthAttachment  *AttachmentDesc
	Label            string
}

// FramebufferDesc describes a framebuffer creation request. Layers defaults
// to 1 when zero.
type FramebufferDesc struct {
	RenderPass  RenderPass
	ColorViews  []TextureView
	DepthView   TextureView // zero value means no depth attachment
	Width       uint32
	Height      uint32
	Layers      uint32
	Label       string
}

// SwapchainDesc describes a swapchain creation request against a native
// window handle.
type SwapchainDesc struct {
	Window         any
	RequestedWidth  uint32
	RequestedHeight uint32
	Format         Format
	VSync          bool
}

// ClearValue is one render-pass-begin clear color or depth/stencil value.
type ClearValue struct {
	Color        [4]float32
	Depth        float32
	Stencil      uint32
}
