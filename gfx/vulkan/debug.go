package vulkan

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"github.com/zirconengine/zircon/gfx/glog"
)

// debugMessenger wraps the VK_EXT_debug_report callback spec.md's Open
// Questions call "best-effort": present when the extension was negotiated,
// silently absent otherwise, with every validation message routed through
// glog.Global rather than a dedicated sink.
type debugMessenger struct {
	instance  vk.Instance
	messenger vk.DebugReportCallback
}

func createDebugMessenger(instance vk.Instance, enabled bool) *debugMessenger {
	if !enabled {
		return nil
	}
	d := &debugMessenger{instance: instance}
	ret := vk.CreateDebugReportCallback(instance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit) | vk.DebugReportFlags(vk.DebugReportWarningBit) | vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit),
		PfnCallback: debugCallback,
	}, nil, &d.messenger)
	if isError(ret) {
		glog.Global.Warnf("vulkan: failed to install debug report callback: %v", newError(ret))
		return nil
	}
	glog.Global.Infof("vulkan: validation messenger installed")
	return d
}

func (d *debugMessenger) destroy() {
	if d == nil || d.messenger == vk.NullDebugReportCallback {
		return
	}
	vk.DestroyDebugReportCallback(d.instance, d.messenger, nil)
}

func debugCallback(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		glog.Global.Errorf("vulkan [%s]: %s", pLayerPrefix, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		glog.Global.Warnf("vulkan [%s]: %s", pLayerPrefix, pMessage)
	default:
		glog.Global.Debugf("vulkan [%s]: %s", pLayerPrefix, pMessage)
	}
	return vk.Bool32(vk.False)
}

// setObjectName reports name for an arbitrary Vulkan handle as an
// information-level VK_EXT_debug_report message when the messenger is
// active, and is a no-op otherwise. The name is not attached to the object
// itself.
func (b *Backend) setObjectName(objectType vk.DebugReportObjectType, handle uint64, name string) {
	if b.debug == nil || name == "" {
		return
	}
	vk.DebugReportMessage(b.instance, vk.DebugReportFlags(vk.DebugReportInformationBit), objectType, handle, 0, 0, "zircon", name)
}
