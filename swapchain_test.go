package vkr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestChooseSurfaceFormatPrefersSRGB(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := chooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, chosen.Format)
	assert.Equal(t, vk.ColorSpaceSrgbNonlinear, chosen.ColorSpace)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := chooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatR8g8b8a8Unorm, chosen.Format)
}

func TestChoosePresentModePrefersMailbox(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox, vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeMailbox, choosePresentMode(modes))
}

func TestChoosePresentModeFallsBackToFifo(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifoRelaxed}
	assert.Equal(t, vk.PresentModeFifo, choosePresentMode(modes))
}

func TestChooseExtentUsesCurrentWhenFixed(t *testing.T) {
	caps := &vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 800, Height: 600},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}

	extent := chooseExtent(caps, 1920, 1080)
	assert.Equal(t, vk.Extent2D{Width: 800, Height: 600}, extent)
}

func TestChooseExtentClampsWhenIndeterminate(t *testing.T) {
	caps := &vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 64, Height: 64},
		MaxImageExtent: vk.Extent2D{Width: 1024, Height: 768},
	}

	extent := chooseExtent(caps, 1920, 1080)
	assert.Equal(t, vk.Extent2D{Width: 1024, Height: 768}, extent)

	extent = chooseExtent(caps, 10, 10)
	assert.Equal(t, vk.Extent2D{Width: 64, Height: 64}, extent)

	extent = chooseExtent(caps, 640, 480)
	assert.Equal(t, vk.Extent2D{Width: 640, Height: 480}, extent)
}

func TestChooseImageCountAddsOne(t *testing.T) {
	caps := &vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 0}
	assert.Equal(t, uint32(3), chooseImageCount(caps))
}

func TestChooseImageCountClampsToMax(t *testing.T) {
	caps := &vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 2}
	assert.Equal(t, uint32(2), chooseImageCount(caps))
}
