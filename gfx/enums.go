package gfx

// Format enumerates the pixel/vertex-attribute formats the core
// understands. The Vulkan backend translates these to vk.Format; the
// WebGPU backend to wgpu.TextureFormat.
type Format int

const (
	FormatUndefined Format = iota
	FormatR8Unorm
	FormatRG8Unorm
	FormatRGBA8Unorm
	FormatRGBA8Srgb
	FormatBGRA8Unorm
	FormatBGRA8Srgb
	FormatR32Float
	FormatRG32Float
	FormatRGB32Float
	FormatRGBA32Float
	FormatD32Float
	FormatD24UnormS8Uint
	FormatD32FloatS8Uint
)

// Usage is a non-empty bitmask describing how a buffer may be used.
type Usage uint32

const (
	UsageVertex Usage = 1 << iota
	UsageIndex
	UsageUniform
	UsageStorage
	UsageCopySrc
	UsageCopyDst
)

func (u Usage) Has(flag Usage) bool { return u&flag != 0 }

// TextureUsage is a non-empty bitmask describing how a texture may be used.
type TextureUsage uint32

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageSampled
	TextureUsageStorage
	TextureUsageColorAttachment
	TextureUsageDepthStencilAttachment
)

func (u TextureUsage) Has(flag TextureUsage) bool { return u&flag != 0 }

// MemoryUsage classes map to the sub-allocator's usage hint (spec.md §4.1).
type MemoryUsage int

const (
	MemoryGpuOnly MemoryUsage = iota
	MemoryCpuToGpu
	MemoryGpuToCpu
)

// TextureDimension is the image's addressing dimensionality.
type TextureDimension int

const (
	TextureDimension1D TextureDimension = iota
	TextureDimension2D
	TextureDimension3D
)

// TextureAspect selects which planes of a (possibly combined depth/stencil)
// format a view addresses.
type TextureAspect int

const (
	AspectAuto TextureAspect = iota
	AspectColor
	AspectDepth
	AspectStencil
	AspectDepthStencil
)

// FilterMode is a sampler minification/magnification filter.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// AddressMode is a sampler's out-of-[0,1] UV behavior.
type AddressMode int

const (
	AddressRepeat AddressMode = iota
	AddressMirrorRepeat
	AddressClampToEdge
	AddressClampToBorder
)

// CompareFunc is used both for sampler compare-mode and depth testing.
type CompareFunc int

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// PrimitiveTopology selects how vertices assemble into primitives.
type PrimitiveTopology int

const (
	TopologyPointList PrimitiveTopology = iota
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
)

// CullMode selects which primitive winding is culled.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
	CullFrontAndBack
)

// FrontFace selects which vertex winding is considered front-facing.
type FrontFace int

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// BlendFactor is a source/destination blend-equation operand.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
)

// BlendOp is a blend-equation combine operator.
type BlendOp int

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// LoadOp selects how a render-pass attachment is initialized on pass start.
type LoadOp int

const (
	LoadOpLoad LoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// StoreOp selects whether an attachment's contents are kept after the pass.
type StoreOp int

const (
	StoreOpStore StoreOp = iota
	StoreOpDontCare
)

// BindingType names the descriptor kind a bind-group-layout entry declares.
type BindingType int

const (
	BindingUniformBuffer BindingType = iota
	BindingStorageBuffer
	BindingSampledTexture
	BindingStorageTexture
	BindingSampler
)

// ShaderStage is a bitmask of shader stages a binding or push-constant
// range is visible to.
type ShaderStage uint32

const (
	StageVertex ShaderStage = 1 << iota
	StageFragment
	StageCompute
)

func (s ShaderStage) Has(flag ShaderStage) bool { return s&flag != 0 }

// PresentMode selects the swapchain's presentation-engine behavior.
type PresentMode int

const (
	PresentModeFIFO PresentMode = iota
	PresentModeMailbox
	PresentModeImmediate
)

// IndexFormat is the bit width of an index buffer's elements.
type IndexFormat int

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// PipelineBindPoint distinguishes graphics from compute pipelines.
type PipelineBindPoint int

const (
	BindPointGraphics PipelineBindPoint = iota
	BindPointCompute
)
