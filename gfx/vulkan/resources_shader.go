package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx"
	"github.com/zirconengine/zircon/gfx/arena"
	"github.com/zirconengine/zircon/gfx/glog"
)

// shaderResource is grounded on legacy/dieselvk/util.go's LoadShaderModule:
// a vk.ShaderModule built straight from the SPIR-V bytes, reinterpreted as
// uint32 words via sliceUint32 (convert.go).
type shaderResource struct {
	module vk.ShaderModule
	stage  gfx.ShaderStage
	entry  string
}

func (b *Backend) CreateShader(desc gfx.ShaderDesc) gfx.Shader {
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(b.device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(desc.Code)),
		PCode:    sliceUint32(desc.Code),
	}, nil, &module)
	if isError(ret) {
		glog.Global.Errorf("vulkan: CreateShader failed: %v", newError(ret))
		return 0
	}

	key := b.shaders.Insert(shaderResource{module: module, stage: desc.Stage, entry: desc.EntryPointOrDefault()})
	if desc.Label != "" {
		b.setObjectName(vk.DebugReportObjectTypeShaderModule, uint64(module), desc.Label)
	}
	return gfx.Shader(key)
}

func (b *Backend) DestroyShader(h gfx.Shader) {
	rec, ok := b.shaders.Get(arena.Key(h))
	if !ok {
		glog.Global.Warnf("vulkan: DestroyShader on unknown or already-destroyed handle")
		return
	}
	vk.DestroyShaderModule(b.device, rec.module, nil)
	b.shaders.Remove(arena.Key(h))
}
