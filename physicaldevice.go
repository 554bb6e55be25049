package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type PhysicalDevice struct {
	DeviceName                 string
	VKPhysicalDevice           vk.PhysicalDevice
	VKPhysicalDeviceProperties vk.PhysicalDeviceProperties
}

func (p *PhysicalDevice) String() string {
	return p.DeviceName
}

// QueueFamilies returns every queue family the device exposes.
func (p *PhysicalDevice) QueueFamilies() (QueueFamilySlice, error) {
	var queueFamilyCount uint32

	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, nil)

	if queueFamilyCount == 0 {
		return nil, nil
	}

	queues := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.VKPhysicalDevice, &queueFamilyCount, queues)

	ret := make(QueueFamilySlice, queueFamilyCount)
	for i, queue := range queues {
		ret[i] = &QueueFamily{Index: i, PhysicalDevice: p, VKQueueFamilyProperties: queue}
		ret[i].VKQueueFamilyProperties.Deref()
	}

	return ret, nil
}

// SupportedExtensionNames returns the names of every device extension the
// device supports.
func (p *PhysicalDevice) SupportedExtensionNames() ([]string, error) {
	var count uint32
	err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, nil))
	if err != nil {
		return nil, err
	}

	ext := make([]vk.ExtensionProperties, count)
	err = vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, "", &count, ext))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, count)
	for _, e := range ext {
		e.Deref()
		names = append(names, vk.ToString(e.ExtensionName[:]))
	}
	return names, nil
}

// Suitable reports whether this device can drive the given surface: it must
// have a graphics queue family, a queue family that can present to the
// surface, support for every required extension, and at least one surface
// format and presentation mode. A nil error means suitable; otherwise the
// error names the first missing capability.
func (p *PhysicalDevice) Suitable(surface vk.Surface, requiredExtensions []string) error {
	families, err := p.QueueFamilies()
	if err != nil {
		return fmt.Errorf("unable to load queue families: %w", err)
	}

	if len(families.FilterGraphics()) == 0 {
		return fmt.Errorf("missing graphics queue family: %w", ErrNoSuitableQueueFamily)
	}
	if len(families.FilterPresent(surface)) == 0 {
		return fmt.Errorf("missing presentation queue family: %w", ErrNoSuitableQueueFamily)
	}

	supported, err := p.SupportedExtensionNames()
	if err != nil {
		return fmt.Errorf("unable to enumerate device extensions: %w", err)
	}
	for _, required := range requiredExtensions {
		if !hasString(supported, required) {
			return fmt.Errorf("missing required device extension %q", required)
		}
	}

	support, err := GetSwapchainSupport(p, surface)
	if err != nil {
		return fmt.Errorf("unable to query swapchain support: %w", err)
	}
	if len(support.Formats) == 0 {
		return fmt.Errorf("no supported surface formats")
	}
	if len(support.PresentModes) == 0 {
		return fmt.Errorf("no supported presentation modes")
	}

	return nil
}

// GetSurfaceCapabilities returns the surface capabilities with all nested
// fields dereferenced.
func (p *PhysicalDevice) GetSurfaceCapabilities(surface vk.Surface) (*vk.SurfaceCapabilities, error) {
	var caps vk.SurfaceCapabilities
	err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(p.VKPhysicalDevice, surface, &caps))
	if err != nil {
		return nil, err
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	return &caps, nil
}

// GetSurfaceFormats returns the supported surface formats, dereferenced.
func (p *PhysicalDevice) GetSurfaceFormats(surface vk.Surface) ([]vk.SurfaceFormat, error) {
	var count uint32
	err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	formats := make([]vk.SurfaceFormat, count)
	err = vk.Error(vk.GetPhysicalDeviceSurfaceFormats(p.VKPhysicalDevice, surface, &count, formats))
	if err != nil {
		return nil, err
	}

	for i := range formats {
		formats[i].Deref()
	}
	return formats, nil
}

// GetSurfacePresentModes returns the supported presentation modes.
func (p *PhysicalDevice) GetSurfacePresentModes(surface vk.Surface) ([]vk.PresentMode, error) {
	var count uint32
	err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, nil))
	if err != nil {
		return nil, err
	}

	modes := make([]vk.PresentMode, count)
	err = vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(p.VKPhysicalDevice, surface, &count, modes))
	if err != nil {
		return nil, err
	}

	return modes, nil
}

// MemoryTypes returns the device's memory types, dereferenced.
func (p *PhysicalDevice) MemoryTypes() []vk.MemoryType {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(p.VKPhysicalDevice, &memoryProperties)
	memoryProperties.Deref()

	ret := make([]vk.MemoryType, 0, memoryProperties.MemoryTypeCount)
	for i := uint32(0); i < memoryProperties.MemoryTypeCount; i++ {
		mt := memoryProperties.MemoryTypes[i]
		mt.Deref()
		ret = append(ret, mt)
	}
	return ret
}

// FindMemoryTypeIndex returns the first index i in [0, len(types)) such
// that bit i of typeBits is set and types[i] has every flag in properties.
// It fails with ErrNoSuitableMemoryType when no index qualifies; callers
// must treat that as a fatal setup error, there is no fallback.
func FindMemoryTypeIndex(types []vk.MemoryType, typeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, error) {
	for i := uint32(0); i < uint32(len(types)); i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		if vk.MemoryPropertyFlagBits(types[i].PropertyFlags)&properties == properties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("mask 0x%x properties 0x%x: %w", typeBits, properties, ErrNoSuitableMemoryType)
}

// FindMemoryType selects a memory type of this device satisfying both the
// hardware mask and the requested property flags.
func (p *PhysicalDevice) FindMemoryType(typeBits uint32, properties vk.MemoryPropertyFlagBits) (uint32, error) {
	return FindMemoryTypeIndex(p.MemoryTypes(), typeBits, properties)
}

// VKPhysicalDeviceFeatures queries the device feature set.
func (p *PhysicalDevice) VKPhysicalDeviceFeatures() vk.PhysicalDeviceFeatures {
	var deviceFeatures vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(p.VKPhysicalDevice, &deviceFeatures)
	return deviceFeatures
}

// CreateDeviceOptions control logical device creation.
type CreateDeviceOptions struct {
	EnabledExtensions []string
	EnabledLayers     []string
}

// CreateLogicalDeviceWithOptions creates a logical device with one queue
// from each of the given queue families.
func (p *PhysicalDevice) CreateLogicalDeviceWithOptions(qfs QueueFamilySlice, options *CreateDeviceOptions) (*Device, error) {
	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(qfs))
	for j, q := range qfs {
		queueCreateInfos[j] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uint32(q.Index),
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}

	deviceFeatures := p.VKPhysicalDeviceFeatures()

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: uint32(len(qfs)),
		PQueueCreateInfos:    queueCreateInfos,
		PEnabledFeatures:     []vk.PhysicalDeviceFeatures{deviceFeatures},
	}

	if options != nil {
		if options.EnabledExtensions != nil {
			deviceCreateInfo.EnabledExtensionCount = uint32(len(options.EnabledExtensions))
			deviceCreateInfo.PpEnabledExtensionNames = safeStrings(options.EnabledExtensions)
		}
		if options.EnabledLayers != nil {
			deviceCreateInfo.EnabledLayerCount = uint32(len(options.EnabledLayers))
			deviceCreateInfo.PpEnabledLayerNames = safeStrings(options.EnabledLayers)
		}
	}

	var ldevice vk.Device

	err := vk.Error(vk.CreateDevice(p.VKPhysicalDevice, &deviceCreateInfo, nil, &ldevice))
	if err != nil {
		return nil, err
	}

	return &Device{PhysicalDevice: p, VKDevice: ldevice}, nil
}

// CreateLogicalDevice creates a logical device with default options.
func (p *PhysicalDevice) CreateLogicalDevice(qfs QueueFamilySlice) (*Device, error) {
	return p.CreateLogicalDeviceWithOptions(qfs, nil)
}
