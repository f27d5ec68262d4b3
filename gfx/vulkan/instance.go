package vulkan

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx/glog"
	"github.com/zirconengine/zircon/platform"
)

const (
	engineName = "zircon"
	appName    = "zircon-app"

	validationLayerName = "VK_LAYER_KHRONOS_validation"
	debugReportExtName  = "VK_EXT_debug_report"
)

// createInstance builds the vk.Instance, generalizing legacy/asche's
// InstanceExtensions/ValidationLayers helpers (util.go) into a single call
// that also folds in the platform's required surface extensions
// (platform.Platform.RequiredInstanceExtensions) and, when debug is
// requested, the validation layer plus VK_EXT_debug_report (the extension
// debug.go's callback is created through).
func createInstance(p platform.Platform, debug bool) (vk.Instance, bool, error) {
	required := p.RequiredInstanceExtensions()

	var availCount uint32
	vkCheck(vk.EnumerateInstanceExtensionProperties("", &availCount, nil))
	availProps := make([]vk.ExtensionProperties, availCount)
	vkCheck(vk.EnumerateInstanceExtensionProperties("", &availCount, availProps))
	available := make(map[string]bool, availCount)
	for i := range availProps {
		availProps[i].Deref()
		available[vk.ToString(availProps[i].ExtensionName[:])] = true
	}

	set := newExtensionSet(available)
	for _, name := range required {
		if !set.require(name) {
			return vk.NullInstance, false, newError(vk.ErrorExtensionNotPresent)
		}
	}
	debugEnabled := false
	if debug {
		debugEnabled = set.optional(debugReportExtName)
	}

	layers := []string{}
	if debug {
		var layerCount uint32
		vkCheck(vk.EnumerateInstanceLayerProperties(&layerCount, nil))
		layerProps := make([]vk.LayerProperties, layerCount)
		vkCheck(vk.EnumerateInstanceLayerProperties(&layerCount, layerProps))
		for i := range layerProps {
			layerProps[i].Deref()
			if vk.ToString(layerProps[i].LayerName[:]) == validationLayerName {
				layers = append(layers, validationLayerName)
				break
			}
		}
	}

	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   appName,
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		PEngineName:        engineName,
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		ApiVersion:         vk.MakeVersion(1, 2, 0),
	}

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(set.names())),
		PpEnabledExtensionNames: set.names(),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}, nil, &instance)
	if isError(ret) {
		return vk.NullInstance, false, newError(ret)
	}

	vk.InitInstance(instance)
	glog.Global.Infof("vulkan: instance created (%d extensions, %d layers, debug=%v)", len(set.names()), len(layers), debugEnabled)
	return instance, debugEnabled, nil
}

func destroyInstance(instance vk.Instance) {
	vk.DestroyInstance(instance, nil)
}
