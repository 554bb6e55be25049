package vkr

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// BufferArena suballocates buffers out of a single device memory block.
// All buffers in an arena share usage flags and memory properties; the
// block stays mapped for its whole lifetime when the memory is host
// visible, so arena buffers can be written through Bytes without repeated
// map calls.
type BufferArena struct {
	Device    *Device
	Memory    *DeviceMemory
	usage     vk.BufferUsageFlagBits
	allocator *LinearAllocator
	mapped    unsafe.Pointer
}

// ArenaBuffer is a buffer bound into a BufferArena at a fixed offset.
type ArenaBuffer struct {
	Arena  *BufferArena
	Buffer *Buffer
	Offset uint64
}

// CreateBufferArena allocates a memory block able to back size bytes of
// buffers with the given usage. The memory type is chosen from the
// requirements of a probe buffer carrying the same usage flags.
func (d *Device) CreateBufferArena(size uint64, usage vk.BufferUsageFlagBits, properties vk.MemoryPropertyFlagBits) (*BufferArena, error) {
	probe, err := d.CreateBuffer(size, usage)
	if err != nil {
		return nil, fmt.Errorf("unable to probe arena requirements: %w", err)
	}
	reqs := probe.VKMemoryRequirements()
	probe.Destroy()

	memory, err := d.AllocateForRequirements(reqs, properties)
	if err != nil {
		return nil, fmt.Errorf("unable to allocate arena memory: %w", err)
	}

	arena := &BufferArena{
		Device:    d,
		Memory:    memory,
		usage:     usage,
		allocator: NewLinearAllocator(uint64(reqs.Size)),
	}

	if properties&vk.MemoryPropertyHostVisibleBit != 0 {
		arena.mapped, err = memory.Map()
		if err != nil {
			memory.Destroy()
			return nil, fmt.Errorf("unable to map arena memory: %w", err)
		}
	}

	return arena, nil
}

// CreateBuffer carves a buffer of the given size out of the arena.
func (a *BufferArena) CreateBuffer(size uint64) (*ArenaBuffer, error) {
	buffer, err := a.Device.CreateBuffer(size, a.usage)
	if err != nil {
		return nil, err
	}

	reqs := buffer.VKMemoryRequirements()

	offset, err := a.allocator.Allocate(uint64(reqs.Size), uint64(reqs.Alignment))
	if err != nil {
		buffer.Destroy()
		return nil, err
	}

	err = buffer.Bind(a.Memory, offset)
	if err != nil {
		buffer.Destroy()
		a.allocator.Free(offset)
		return nil, fmt.Errorf("unable to bind arena buffer: %w", err)
	}

	return &ArenaBuffer{Arena: a, Buffer: buffer, Offset: offset}, nil
}

// CreateFilledBuffer carves a buffer out of the arena and copies data into
// it through the mapped block. The arena must be host visible.
func (a *BufferArena) CreateFilledBuffer(data []byte) (*ArenaBuffer, error) {
	buffer, err := a.CreateBuffer(uint64(len(data)))
	if err != nil {
		return nil, err
	}

	dst, err := buffer.Bytes()
	if err != nil {
		buffer.Destroy()
		return nil, err
	}
	copy(dst, data)

	return buffer, nil
}

// Bytes returns a writable view of the buffer's bytes in the arena's
// mapped block.
func (b *ArenaBuffer) Bytes() ([]byte, error) {
	if b.Arena.mapped == nil {
		return nil, fmt.Errorf("arena memory is not host visible")
	}
	ptr := unsafe.Pointer(uintptr(b.Arena.mapped) + uintptr(b.Offset))
	return unsafe.Slice((*byte)(ptr), b.Buffer.Size), nil
}

// Destroy releases the buffer handle. The arena memory behind it is only
// reclaimed when the whole arena is destroyed or reset.
func (b *ArenaBuffer) Destroy() {
	b.Buffer.Destroy()
	b.Arena.allocator.Free(b.Offset)
}

func (a *BufferArena) Destroy() {
	if a.mapped != nil {
		a.Memory.Unmap()
		a.mapped = nil
	}
	a.Memory.Destroy()
}
