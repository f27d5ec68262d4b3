// Package gfx is the device abstraction layer: opaque handles, enum
// taxonomies, descriptor structs, and the render-device vtable that every
// backend (gfx/vulkan, gfx/webgpu) implements. Every exported zi_*-style
// free function in spec.md §4.1 is a package-level function here that
// forwards to the single active Device bound by Init.
//
// Grounded on legacy/asche's Platform/Context split and the enrichment
// driver.GPU/CmdBuffer interface taxonomy
// (_examples/other_examples/ca6675a7_gviegas-neo3__driver-core.go.go):
// this package plays the role gviegas-neo3's "driver" package plays,
// generalized to match spec.md's resource and vtable shape exactly.
package gfx

// Handle is the opaque, POD reference to a GPU resource described in
// spec.md §3. The zero value is the null handle and compares equal across
// every resource kind; backends store the real record behind the index.
type Handle uint64

// IsNull reports whether h is the null/sentinel handle.
func (h Handle) IsNull() bool { return h == 0 }

// Typed handle wrappers give call sites compile-time protection against
// passing e.g. a Sampler where a Texture is expected, while still being
// backed by the same POD Handle the backend hands back from *_create.
type (
	Buffer          Handle
	Texture         Handle
	TextureView     Handle
	Sampler         Handle
	Shader          Handle
	BindGroupLayout Handle
	PipelineLayout  Handle
	Pipeline        Handle
	BindGroup       Handle
	RenderPass      Handle
	Framebuffer     Handle
	CommandBuffer   Handle
	Swapchain       Handle
)

func (h Buffer) IsNull() bool          { return h == 0 }
func (h Texture) IsNull() bool         { return h == 0 }
func (h TextureView) IsNull() bool     { return h == 0 }
func (h Sampler) IsNull() bool         { return h == 0 }
func (h Shader) IsNull() bool          { return h == 0 }
func (h BindGroupLayout) IsNull() bool { return h == 0 }
func (h PipelineLayout) IsNull() bool  { return h == 0 }
func (h Pipeline) IsNull() bool        { return h == 0 }
func (h BindGroup) IsNull() bool       { return h == 0 }
func (h RenderPass) IsNull() bool      { return h == 0 }
func (h Framebuffer) IsNull() bool     { return h == 0 }
func (h CommandBuffer) IsNull() bool   { return h == 0 }
func (h Swapchain) IsNull() bool       { return h == 0 }
