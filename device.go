package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

// WaitIdle blocks until every queue on the device finishes its work. It is
// required before tearing down or rebuilding the swapchain.
func (d *Device) WaitIdle() error {
	return vk.Error(vk.DeviceWaitIdle(d.VKDevice))
}

// GetQueue returns the first queue of the given family.
func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkQueue vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkQueue)

	return &Queue{Device: d, QueueFamily: qf, VKQueue: vkQueue}
}

// Allocate allocates device memory of the given size from the given memory
// type index.
func (d *Device) Allocate(size uint64, memoryTypeIndex uint32) (*DeviceMemory, error) {
	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(size),
		MemoryTypeIndex: memoryTypeIndex,
	}

	var vkDeviceMemory vk.DeviceMemory

	err := vk.Error(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &vkDeviceMemory))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrAllocation)
	}

	return &DeviceMemory{Device: d, VKDeviceMemory: vkDeviceMemory, Size: size}, nil
}

// AllocateForRequirements picks a memory type matching the requirements and
// property flags and allocates from it.
func (d *Device) AllocateForRequirements(reqs vk.MemoryRequirements, properties vk.MemoryPropertyFlagBits) (*DeviceMemory, error) {
	memoryTypeIndex, err := d.PhysicalDevice.FindMemoryType(reqs.MemoryTypeBits, properties)
	if err != nil {
		return nil, err
	}
	return d.Allocate(uint64(reqs.Size), memoryTypeIndex)
}
