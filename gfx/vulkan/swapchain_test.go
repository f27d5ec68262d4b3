package vulkan

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/stretchr/testify/assert"
)

func TestChooseSurfaceFormatPrefersDesired(t *testing.T) {
	available := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorspaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorspaceSrgbNonlinear},
	}
	got := chooseSurfaceFormat(available, vk.FormatB8g8r8a8Unorm)
	assert.Equal(t, vk.FormatB8g8r8a8Unorm, got.Format)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	available := []vk.SurfaceFormat{{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorspaceSrgbNonlinear}}
	got := chooseSurfaceFormat(available, vk.FormatB8g8r8a8Unorm)
	assert.Equal(t, vk.FormatR8g8b8a8Unorm, got.Format)
}

func TestChooseSurfaceFormatUndefinedMeansAny(t *testing.T) {
	available := []vk.SurfaceFormat{{Format: vk.FormatUndefined, ColorSpace: vk.ColorspaceSrgbNonlinear}}
	got := chooseSurfaceFormat(available, vk.FormatB8g8r8a8Unorm)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, got.Format)
}

func TestChooseSurfaceFormatEmptyFallsBackToDefault(t *testing.T) {
	got := chooseSurfaceFormat(nil, vk.FormatB8g8r8a8Unorm)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, got.Format)
}

func TestChoosePresentModeVSyncAlwaysFifo(t *testing.T) {
	available := []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(available, true))
}

func TestChoosePresentModePrefersMailboxOverImmediate(t *testing.T) {
	available := []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeMailbox}
	assert.Equal(t, vk.PresentModeMailbox, choosePresentMode(available, false))
}

func TestChoosePresentModeFallsBackToImmediate(t *testing.T) {
	available := []vk.PresentMode{vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeImmediate, choosePresentMode(available, false))
}

func TestChoosePresentModeFallsBackToFifoWhenNeitherAvailable(t *testing.T) {
	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(nil, false))
}

func TestChooseExtentUsesCurrentExtentWhenAuthoritative(t *testing.T) {
	caps := vk.SurfaceCapabilities{CurrentExtent: vk.Extent2D{Width: 800, Height: 600}}
	got := chooseExtent(caps, 1920, 1080)
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, got)
}

func TestChooseExtentClampsRequestedSize(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 1024, Height: 1024},
	}
	got := chooseExtent(caps, 2000, 32)
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 64}, got)
}

func TestChooseImageCountRequestsOneMoreThanMinimum(t *testing.T) {
	caps := vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 0}
	assert.Equal(t, uint32(3), chooseImageCount(caps))
}

func TestChooseImageCountClampsToMaximum(t *testing.T) {
	caps := vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 2}
	assert.Equal(t, uint32(2), chooseImageCount(caps))
}
