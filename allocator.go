package vkr

import (
	"fmt"
)

// LinearAllocator hands out aligned offsets from a fixed span of memory.
// Allocations are only reclaimed all at once with Reset; Free of the most
// recent allocation rewinds the cursor, anything else is a no-op.
type LinearAllocator struct {
	size   uint64
	offset uint64
	last   uint64
}

func NewLinearAllocator(size uint64) *LinearAllocator {
	return &LinearAllocator{size: size}
}

func alignUp(offset, alignment uint64) uint64 {
	if alignment == 0 {
		return offset
	}
	return (offset + alignment - 1) / alignment * alignment
}

// Allocate reserves size bytes at an offset aligned to alignment.
func (a *LinearAllocator) Allocate(size, alignment uint64) (uint64, error) {
	offset := alignUp(a.offset, alignment)
	if offset+size > a.size {
		return 0, fmt.Errorf("linear allocator exhausted (%d of %d bytes used): %w", a.offset, a.size, ErrAllocation)
	}

	a.last = offset
	a.offset = offset + size
	return offset, nil
}

// Free rewinds the cursor if offset is the most recent allocation.
func (a *LinearAllocator) Free(offset uint64) {
	if offset == a.last && offset < a.offset {
		a.offset = offset
	}
}

// Reset discards every allocation.
func (a *LinearAllocator) Reset() {
	a.offset = 0
	a.last = 0
}

// Remaining returns the bytes left before exhaustion, ignoring alignment.
func (a *LinearAllocator) Remaining() uint64 {
	return a.size - a.offset
}
