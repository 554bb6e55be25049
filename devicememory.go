package vkr

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64
}

func (m *DeviceMemory) Destroy() {
	vk.FreeMemory(m.Device.VKDevice, m.VKDeviceMemory, nil)
}

// Map maps the whole allocation into host address space.
func (m *DeviceMemory) Map() (unsafe.Pointer, error) {
	return m.MapWithSize(0, m.Size)
}

// MapWithSize maps size bytes starting at offset.
func (m *DeviceMemory) MapWithSize(offset, size uint64) (unsafe.Pointer, error) {
	var ptr unsafe.Pointer
	err := vk.Error(vk.MapMemory(m.Device.VKDevice, m.VKDeviceMemory, vk.DeviceSize(offset), vk.DeviceSize(size), 0, &ptr))
	if err != nil {
		return nil, err
	}
	return ptr, nil
}

func (m *DeviceMemory) Unmap() {
	vk.UnmapMemory(m.Device.VKDevice, m.VKDeviceMemory)
}

// MapCopyUnmap maps the allocation, copies data into it byte for byte, and
// unmaps. The memory must be host visible; with host coherent memory no
// explicit flush is needed.
func (m *DeviceMemory) MapCopyUnmap(data []byte) error {
	ptr, err := m.MapWithSize(0, uint64(len(data)))
	if err != nil {
		return err
	}

	dst := unsafe.Slice((*byte)(ptr), len(data))
	copy(dst, data)

	m.Unmap()
	return nil
}
