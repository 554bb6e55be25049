package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

// CreateFence creates a fence, already signaled when signaled is true.
// Frame slot fences start signaled so the first wait on each slot returns
// immediately.
func (d *Device) CreateFence(signaled bool) (*Fence, error) {
	createInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		createInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var vkFence vk.Fence

	err := vk.Error(vk.CreateFence(d.VKDevice, &createInfo, nil, &vkFence))
	if err != nil {
		return nil, err
	}

	return &Fence{Device: d, VKFence: vkFence}, nil
}

func (f *Fence) Destroy() {
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
}

// Wait blocks without timeout until the fence signals.
func (f *Fence) Wait() error {
	return vk.Error(vk.WaitForFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}, vk.True, vk.MaxUint64))
}

// Reset returns the fence to the unsignaled state.
func (f *Fence) Reset() error {
	return vk.Error(vk.ResetFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}))
}
