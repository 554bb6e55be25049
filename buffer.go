package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
}

// CreateBufferOptions controls buffer creation beyond size and usage.
type CreateBufferOptions struct {
	SharingMode vk.SharingMode
}

// CreateBuffer creates an unbound buffer with exclusive sharing.
func (d *Device) CreateBuffer(size uint64, usage vk.BufferUsageFlagBits) (*Buffer, error) {
	return d.CreateBufferWithOptions(size, usage, &CreateBufferOptions{SharingMode: vk.SharingModeExclusive})
}

func (d *Device) CreateBufferWithOptions(size uint64, usage vk.BufferUsageFlagBits, options *CreateBufferOptions) (*Buffer, error) {
	createInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       vk.BufferUsageFlags(usage),
		SharingMode: options.SharingMode,
	}

	var vkBuffer vk.Buffer

	err := vk.Error(vk.CreateBuffer(d.VKDevice, &createInfo, nil, &vkBuffer))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrResourceCreation)
	}

	return &Buffer{Device: d, VKBuffer: vkBuffer, Size: size}, nil
}

func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
}

// VKMemoryRequirements returns the buffer's memory requirements with all
// fields dereferenced.
func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var reqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &reqs)
	reqs.Deref()
	return reqs
}

// Bind attaches the buffer to device memory at the given offset.
func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return vk.Error(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)))
}
