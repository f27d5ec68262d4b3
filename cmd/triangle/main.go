// Command triangle drives the full zircon stack end to end: platform/glfw
// opens a window, app.Run binds the Vulkan backend and a swapchain, and
// triangleApp records one hard-coded, rotating triangle every tick. It is
// the idiomatic-Go descendant of _examples/vulkan-go-asche/test/render_test.go's
// bring-up sequence, generalized from a bare poll loop into a real
// app.App implementation driving gfx's Cmd* surface.
package main

import (
	"log"
	"math"
	"os"
	"runtime"

	lin "github.com/xlab/linmath"

	"github.com/zirconengine/zircon/app"
	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/alloc"
	"github.com/zirconengine/zircon/legacy/asche"
)

func init() {
	// GLFW and the Vulkan queue submissions it drives must run on the OS
	// thread that opened the window, matching every pack example.
	runtime.LockOSThread()
}

func main() {
	cfg := app.DefaultConfig()
	cfg.Window.Title = "zircon triangle"

	if err := app.Run(cfg, func() app.App { return &triangleApp{} }); err != nil {
		log.Fatalf("triangle: %v", err)
	}
}

// vertex is the interleaved position+color layout the vertex shader expects:
// vec3 position at offset 0, vec3 color at offset 12.
type vertex struct {
	pos   [3]float32
	color [3]float32
}

var triangleVertices = []vertex{
	{pos: [3]float32{0.0, -0.5, 0.0}, color: [3]float32{1, 0, 0}},
	{pos: [3]float32{0.5, 0.5, 0.0}, color: [3]float32{0, 1, 0}},
	{pos: [3]float32{-0.5, 0.5, 0.0}, color: [3]float32{0, 0, 1}},
}

// vertexBytes serializes vs into the host-side staging buffer the vertex
// buffer upload reads from, drawn from the process's injectable allocator
// (alloc.Default) rather than a bare make, so an embedder that swaps in a
// pooled allocator also covers this one-time scratch allocation in Init.
func vertexBytes(vs []vertex) []byte {
	buf := alloc.Default.Alloc(len(vs) * 24)
	off := 0
	for _, v := range vs {
		for _, f := range v.pos {
			off = putFloat32(buf, off, f)
		}
		for _, f := range v.color {
			off = putFloat32(buf, off, f)
		}
	}
	return buf
}

func putFloat32(buf []byte, off int, f float32) int {
	bits := math.Float32bits(f)
	buf[off], buf[off+1], buf[off+2], buf[off+3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
	return off + 4
}

// triangleApp implements app.App. It owns every resource the pipeline
// needs and rebuilds none of it per-frame — only the push-constant MVP
// matrix and the recorded command buffer change per tick.
type triangleApp struct {
	swapchain gfx.Swapchain

	vertexShader   gfx.Shader
	fragmentShader gfx.Shader
	pipelineLayout gfx.PipelineLayout
	pipeline       gfx.Pipeline
	renderPass     gfx.RenderPass

	vbuf gfx.Buffer

	colorViews   []gfx.TextureView
	framebuffers []gfx.Framebuffer
	width        uint32
	height       uint32

	cmd gfx.CommandBuffer

	elapsed float32
}

func (t *triangleApp) Init(swapchain gfx.Swapchain) error {
	t.swapchain = swapchain

	vsCode, err := os.ReadFile("cmd/triangle/shaders/triangle.vert.spv")
	if err != nil {
		return err
	}
	fsCode, err := os.ReadFile("cmd/triangle/shaders/triangle.frag.spv")
	if err != nil {
		return err
	}
	t.vertexShader = gfx.CreateShader(gfx.ShaderDesc{Code: vsCode, Stage: gfx.StageVertex, Label: "triangle.vert"})
	t.fragmentShader = gfx.CreateShader(gfx.ShaderDesc{Code: fsCode, Stage: gfx.StageFragment, Label: "triangle.frag"})

	t.pipelineLayout = gfx.CreatePipelineLayout(gfx.PipelineLayoutDesc{Label: "triangle"})

	colorFormat := gfx.FormatBGRA8Unorm
	t.renderPass = gfx.CreateRenderPass(gfx.RenderPassDesc{
		ColorAttachments: []gfx.AttachmentDesc{
			{Format: colorFormat, SampleCount: 1, LoadOp: gfx.LoadOpClear, StoreOp: gfx.StoreOpStore},
		},
		Label: "triangle",
	})

	t.pipeline = gfx.CreateGraphicsPipeline(gfx.GraphicsPipelineDesc{
		Layout:         t.pipelineLayout,
		VertexShader:   t.vertexShader,
		FragmentShader: t.fragmentShader,
		VertexBuffers: []gfx.VertexBufferLayout{
			{
				Stride: 24,
				Attributes: []gfx.VertexAttribute{
					{Format: gfx.FormatRGB32Float, Offset: 0, ShaderLocation: 0},
					{Format: gfx.FormatRGB32Float, Offset: 12, ShaderLocation: 1},
				},
			},
		},
		Topology:    gfx.TopologyTriangleList,
		Raster:      gfx.RasterState{Cull: gfx.CullNone, Front: gfx.FrontFaceCCW},
		Blend:       gfx.BlendState{Enable: false},
		ColorFormat: colorFormat,
		Label:       "triangle",
	})

	data := vertexBytes(triangleVertices)
	t.vbuf = gfx.CreateBuffer(gfx.BufferDesc{
		Size:   uint64(len(data)),
		Usage:  gfx.UsageVertex | gfx.UsageCopyDst,
		Memory: gfx.MemoryCpuToGpu,
		Label:  "triangle-vertices",
	})
	gfx.BufferWrite(t.vbuf, 0, data)
	alloc.Default.Free(data)

	if err := t.buildFramebuffers(); err != nil {
		return err
	}

	t.cmd = gfx.CreateCommandBuffer()
	return nil
}

// buildFramebuffers creates one texture view and framebuffer per swapchain
// image, the render-target set Tick indexes with SwapchainCurrentIndex.
func (t *triangleApp) buildFramebuffers() error {
	count := gfx.SwapchainTextureCount(t.swapchain)
	t.colorViews = make([]gfx.TextureView, count)
	t.framebuffers = make([]gfx.Framebuffer, count)

	for i := 0; i < count; i++ {
		tex := gfx.SwapchainTexture(t.swapchain, i)
		view := gfx.CreateTextureView(gfx.TextureViewDesc{Texture: tex, Aspect: gfx.AspectColor})
		t.colorViews[i] = view
	}

	// Framebuffer extent is fixed at 1280x720, the default window size; it
	// does not follow the window's actual framebuffer size, and nothing here
	// rebuilds the framebuffers after a swapchain resize.
	width, height := uint32(1280), uint32(720)
	t.width, t.height = width, height
	for i := 0; i < count; i++ {
		t.framebuffers[i] = gfx.CreateFramebuffer(gfx.FramebufferDesc{
			RenderPass: t.renderPass,
			ColorViews: []gfx.TextureView{t.colorViews[i]},
			Width:      width,
			Height:     height,
			Layers:     1,
			Label:      "triangle",
		})
	}
	return nil
}

// Tick rotates the triangle about Z using a Vulkan-corrected perspective
// projection (legacy/asche.VulkanProjectionMat's Y-flip/depth fixup) and
// records one render pass against the swapchain's currently acquired image.
func (t *triangleApp) Tick(dt float64) error {
	t.elapsed += float32(dt)

	var model, proj, mvp lin.Mat4x4
	model.Identity()
	model.RotateZ(&model, t.elapsed)

	var rawProj lin.Mat4x4
	rawProj.Perspective(1.0, float32(t.width)/float32(t.height), 0.1, 10.0)
	asche.VulkanProjectionMat(&proj, &rawProj)

	mvp.Mult(&proj, &model)

	idx := gfx.SwapchainCurrentIndex(t.swapchain)
	if idx < 0 || idx >= len(t.framebuffers) {
		return nil
	}

	gfx.CmdBegin(t.cmd)
	gfx.CmdSetViewport(t.cmd, 0, 0, float32(t.width), float32(t.height), 0, 1)
	gfx.CmdSetScissor(t.cmd, 0, 0, int32(t.width), int32(t.height))
	gfx.CmdBeginRenderPass(t.cmd, t.renderPass, t.framebuffers[idx], []gfx.ClearValue{
		{Color: [4]float32{0.02, 0.02, 0.05, 1.0}},
	})
	gfx.CmdSetPipeline(t.cmd, t.pipeline)
	gfx.CmdSetVertexBuffer(t.cmd, 0, t.vbuf, 0)
	mvpBytes := mat4Bytes(&mvp)
	gfx.CmdPushConstants(t.cmd, mvpBytes)
	alloc.Default.Free(mvpBytes)
	gfx.CmdDraw(t.cmd, uint32(len(triangleVertices)), 1, 0, 0)
	gfx.CmdEndRenderPass(t.cmd)
	gfx.CmdEnd(t.cmd)
	gfx.CmdSubmit(t.cmd)

	return nil
}

func mat4Bytes(m *lin.Mat4x4) []byte {
	buf := alloc.Default.Alloc(64)
	off := 0
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			off = putFloat32(buf, off, m[col][row])
		}
	}
	return buf
}

func (t *triangleApp) Terminate() {
	gfx.DestroyCommandBuffer(t.cmd)
	for _, fb := range t.framebuffers {
		gfx.DestroyFramebuffer(fb)
	}
	for _, v := range t.colorViews {
		gfx.DestroyTextureView(v)
	}
	gfx.DestroyBuffer(t.vbuf)
	gfx.DestroyPipeline(t.pipeline)
	gfx.DestroyRenderPass(t.renderPass)
	gfx.DestroyPipelineLayout(t.pipelineLayout)
	gfx.DestroyShader(t.fragmentShader)
	gfx.DestroyShader(t.vertexShader)
}
