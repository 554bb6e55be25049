package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// BoundBuffer pairs a buffer with the device memory backing it. The memory
// belongs to the bound buffer alone; Destroy releases both, buffer first.
type BoundBuffer struct {
	Buffer *Buffer
	Memory *DeviceMemory
}

func (b *BoundBuffer) Destroy() {
	b.Buffer.Destroy()
	b.Memory.Destroy()
}

// CreateBoundBuffer creates a buffer, allocates memory satisfying its
// requirements with the given property flags, and binds the two at offset
// zero.
func (d *Device) CreateBoundBuffer(size uint64, usage vk.BufferUsageFlagBits, properties vk.MemoryPropertyFlagBits) (*BoundBuffer, error) {
	buffer, err := d.CreateBuffer(size, usage)
	if err != nil {
		return nil, fmt.Errorf("unable to create buffer: %w", err)
	}

	memory, err := d.AllocateForRequirements(buffer.VKMemoryRequirements(), properties)
	if err != nil {
		buffer.Destroy()
		return nil, fmt.Errorf("unable to allocate buffer memory: %w", err)
	}

	err = buffer.Bind(memory, 0)
	if err != nil {
		buffer.Destroy()
		memory.Destroy()
		return nil, fmt.Errorf("unable to bind buffer memory: %w", err)
	}

	return &BoundBuffer{Buffer: buffer, Memory: memory}, nil
}

// CreateFilledBuffer creates a host visible, host coherent bound buffer
// sized to data and copies data into it. On return the buffer contents are
// a byte for byte copy of data and the memory is unmapped.
func (d *Device) CreateFilledBuffer(data []byte, usage vk.BufferUsageFlagBits) (*BoundBuffer, error) {
	bound, err := d.CreateBoundBuffer(uint64(len(data)), usage,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit)
	if err != nil {
		return nil, err
	}

	err = bound.Memory.MapCopyUnmap(data)
	if err != nil {
		bound.Destroy()
		return nil, fmt.Errorf("unable to fill buffer: %w", err)
	}

	return bound, nil
}

// CreateStagingBuffer creates a filled host visible buffer flagged as a
// transfer source, for one-shot uploads into device local resources.
func (d *Device) CreateStagingBuffer(data []byte) (*BoundBuffer, error) {
	return d.CreateFilledBuffer(data, vk.BufferUsageTransferSrcBit)
}
