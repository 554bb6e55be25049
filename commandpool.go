package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type CommandPool struct {
	Device        *Device
	QueueFamily   *QueueFamily
	VKCommandPool vk.CommandPool
}

// CreateCommandPool creates a command pool for the queue family whose
// buffers can be individually reset.
func (d *Device) CreateCommandPool(qf *QueueFamily) (*CommandPool, error) {
	createInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: uint32(qf.Index),
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}

	var vkCommandPool vk.CommandPool

	err := vk.Error(vk.CreateCommandPool(d.VKDevice, &createInfo, nil, &vkCommandPool))
	if err != nil {
		return nil, err
	}

	return &CommandPool{Device: d, QueueFamily: qf, VKCommandPool: vkCommandPool}, nil
}

func (p *CommandPool) Destroy() {
	vk.DestroyCommandPool(p.Device.VKDevice, p.VKCommandPool, nil)
}

// AllocateBuffer allocates a single primary command buffer.
func (p *CommandPool) AllocateBuffer() (*CommandBuffer, error) {
	buffers, err := p.AllocateBuffers(1)
	if err != nil {
		return nil, err
	}
	return buffers[0], nil
}

// AllocateBuffers allocates count primary command buffers.
func (p *CommandPool) AllocateBuffers(count int) ([]*CommandBuffer, error) {
	allocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        p.VKCommandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}

	vkBuffers := make([]vk.CommandBuffer, count)
	err := vk.Error(vk.AllocateCommandBuffers(p.Device.VKDevice, &allocateInfo, vkBuffers))
	if err != nil {
		return nil, err
	}

	ret := make([]*CommandBuffer, count)
	for i, b := range vkBuffers {
		ret[i] = &CommandBuffer{Pool: p, VKCommandBuffer: b}
	}
	return ret, nil
}

// FreeBuffer returns a command buffer to the pool.
func (p *CommandPool) FreeBuffer(buffer *CommandBuffer) {
	vk.FreeCommandBuffers(p.Device.VKDevice, p.VKCommandPool, 1, []vk.CommandBuffer{buffer.VKCommandBuffer})
}

// FreeBuffers returns several command buffers to the pool at once.
func (p *CommandPool) FreeBuffers(buffers []*CommandBuffer) {
	vkBuffers := make([]vk.CommandBuffer, len(buffers))
	for i, b := range buffers {
		vkBuffers[i] = b.VKCommandBuffer
	}
	vk.FreeCommandBuffers(p.Device.VKDevice, p.VKCommandPool, uint32(len(vkBuffers)), vkBuffers)
}
