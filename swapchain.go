package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// SwapchainSupport captures everything the surface and device report about
// presentation, queried fresh each time a swapchain is built.
type SwapchainSupport struct {
	Capabilities *vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

func GetSwapchainSupport(p *PhysicalDevice, surface vk.Surface) (*SwapchainSupport, error) {
	caps, err := p.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, fmt.Errorf("unable to get surface capabilities: %w", err)
	}

	formats, err := p.GetSurfaceFormats(surface)
	if err != nil {
		return nil, fmt.Errorf("unable to get surface formats: %w", err)
	}

	modes, err := p.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, fmt.Errorf("unable to get surface present modes: %w", err)
	}

	return &SwapchainSupport{Capabilities: caps, Formats: formats, PresentModes: modes}, nil
}

// chooseSurfaceFormat prefers B8G8R8A8 sRGB with the sRGB nonlinear color
// space and otherwise settles for the first supported format.
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, f := range formats {
		if f.Format == vk.FormatB8g8r8a8Srgb && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return f
		}
	}
	return formats[0]
}

// choosePresentMode prefers mailbox and falls back to FIFO, the only mode
// every device must support.
func choosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, m := range modes {
		if m == vk.PresentModeMailbox {
			return m
		}
	}
	return vk.PresentModeFifo
}

// chooseExtent uses the surface's current extent when the platform fixes
// it; a current width of MaxUint32 means the surface takes its size from
// the swapchain, so the window's framebuffer size is clamped into the
// allowed range instead.
func chooseExtent(caps *vk.SurfaceCapabilities, width, height uint32) vk.Extent2D {
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}

	clamp := func(v, lo, hi uint32) uint32 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	return vk.Extent2D{
		Width:  clamp(width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// chooseImageCount requests one image more than the driver's minimum so
// acquisition rarely blocks, clamped to the maximum when the driver
// reports one. A maximum of zero means unbounded.
func chooseImageCount(caps *vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

type Swapchain struct {
	Device      *Device
	VKSwapchain vk.Swapchain
	Format      vk.SurfaceFormat
	Extent      vk.Extent2D
}

// CreateSwapchain builds a swapchain for the surface sized to the given
// framebuffer dimensions. When the graphics and presentation families
// differ the images use concurrent sharing between the two, otherwise
// exclusive.
func (d *Device) CreateSwapchain(surface vk.Surface, graphics, present *QueueFamily, width, height uint32) (*Swapchain, error) {
	support, err := GetSwapchainSupport(d.PhysicalDevice, surface)
	if err != nil {
		return nil, err
	}

	format := chooseSurfaceFormat(support.Formats)
	mode := choosePresentMode(support.PresentModes)
	extent := chooseExtent(support.Capabilities, width, height)
	imageCount := chooseImageCount(support.Capabilities)

	createInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     support.Capabilities.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      mode,
		Clipped:          vk.True,
		OldSwapchain:     vk.NullSwapchain,
	}

	if graphics.Index != present.Index {
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{uint32(graphics.Index), uint32(present.Index)}
	} else {
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var vkSwapchain vk.Swapchain

	err = vkErrorf(vk.CreateSwapchain(d.VKDevice, &createInfo, nil, &vkSwapchain), "unable to create swapchain")
	if err != nil {
		return nil, err
	}

	return &Swapchain{Device: d, VKSwapchain: vkSwapchain, Format: format, Extent: extent}, nil
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

// GetImages returns the presentable images owned by the swapchain.
func (s *Swapchain) GetImages() ([]vk.Image, error) {
	var count uint32
	err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, nil))
	if err != nil {
		return nil, err
	}

	images := make([]vk.Image, count)
	err = vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, images))
	if err != nil {
		return nil, err
	}

	return images, nil
}

// Acquire fetches the index of the next presentable image, signaling the
// semaphore once the image is ready to be rendered to. The raw result is
// returned so callers can react to ErrorOutOfDate and Suboptimal.
func (s *Swapchain) Acquire(semaphore *Semaphore) (uint32, vk.Result) {
	var imageIndex uint32
	res := vk.AcquireNextImage(s.Device.VKDevice, s.VKSwapchain, vk.MaxUint64, semaphore.VKSemaphore, vk.NullFence, &imageIndex)
	return imageIndex, res
}

// Present queues the image for presentation once the semaphore signals.
func (s *Swapchain) Present(queue *Queue, imageIndex uint32, wait *Semaphore) vk.Result {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{wait.VKSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.VKSwapchain},
		PImageIndices:      []uint32{imageIndex},
	}

	return vk.QueuePresent(queue.VKQueue, &presentInfo)
}
