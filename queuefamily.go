package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type QueueFamily struct {
	Index                   int
	PhysicalDevice          *PhysicalDevice
	VKQueueFamilyProperties vk.QueueFamilyProperties
}

// SupportsPresent reports whether this family can present to the surface.
func (q *QueueFamily) SupportsPresent(surface vk.Surface) bool {
	var supported vk.Bool32
	err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(q.PhysicalDevice.VKPhysicalDevice, uint32(q.Index), surface, &supported))
	if err != nil {
		return false
	}
	return supported == vk.True
}

func (q *QueueFamily) IsGraphics() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0
}

func (q *QueueFamily) IsTransfer() bool {
	return q.VKQueueFamilyProperties.QueueFlags&vk.QueueFlags(vk.QueueTransferBit) != 0
}

type QueueFamilySlice []*QueueFamily

// Filter returns the families for which test returns true.
func (qfs QueueFamilySlice) Filter(test func(q *QueueFamily) bool) QueueFamilySlice {
	var ret QueueFamilySlice
	for _, q := range qfs {
		if test(q) {
			ret = append(ret, q)
		}
	}
	return ret
}

func (qfs QueueFamilySlice) FilterGraphics() QueueFamilySlice {
	return qfs.Filter(func(q *QueueFamily) bool {
		return q.IsGraphics()
	})
}

func (qfs QueueFamilySlice) FilterPresent(surface vk.Surface) QueueFamilySlice {
	return qfs.Filter(func(q *QueueFamily) bool {
		return q.SupportsPresent(surface)
	})
}

// FilterGraphicsAndPresent returns families able to both draw and present,
// which lets the swapchain use exclusive sharing.
func (qfs QueueFamilySlice) FilterGraphicsAndPresent(surface vk.Surface) QueueFamilySlice {
	return qfs.Filter(func(q *QueueFamily) bool {
		return q.IsGraphics() && q.SupportsPresent(surface)
	})
}
