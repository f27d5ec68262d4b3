package gfx

// DeviceFeatures reflects what was actually enabled on the logical device,
// never merely what the adapter advertised (spec.md §3 invariants).
type DeviceFeatures struct {
	SamplerAnisotropy      bool
	SampleRateShading      bool
	FillModeNonSolid       bool
	WideLines              bool
	DepthClamp             bool
	BufferDeviceAddress    bool
	DrawIndirectCount      bool
	PushDescriptor         bool
	Maintenance4           bool
	DepthStencilResolve    bool
	RayQuery               bool
	RayTracing             bool
	BindlessTexture        bool
	BindlessBuffer         bool
	Multiview              bool
	ShaderDrawParameters   bool
}

// Limits is the subset of device limits clients can query after init.
type Limits struct {
	MaxImageDimension2D   uint32
	MaxPushConstantsSize  uint32
	MaxBoundDescriptorSets uint32
	MinUniformBufferOffsetAlignment uint64
}
