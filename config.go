package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// DefaultFramesInFlight is the number of frames that may have outstanding
// GPU work at any time.
const DefaultFramesInFlight = 2

// SwapchainExtensionName must be supported by a device before it can
// present to a surface.
const SwapchainExtensionName = "VK_KHR_swapchain"

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// VKVersion returns a Vulkan compatible version representation
func (v *Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

// Config carries everything that used to be compile-time state: the
// application identity, the validation toggle and the fixed extension
// lists. It is built once at startup and passed by reference into every
// component; nothing mutates it after NewRenderer.
type Config struct {
	// Name the name of the application
	Name string
	// EngineName the name of the engine associated with the application
	EngineName string
	// Version the version of the application
	Version Version
	// APIVersion the expected minimum version of the Vulkan API
	APIVersion Version

	// Debug enables the Khronos validation layer and debug reporting
	// when the local Vulkan runtime supports them.
	Debug bool

	// DeviceExtensions a device must support every extension listed
	// here to be considered suitable. The swapchain extension is always
	// included.
	DeviceExtensions []string

	// FramesInFlight bounds the number of frames with outstanding GPU
	// work. Zero means DefaultFramesInFlight.
	FramesInFlight int
}

// NewConfig returns a Config with the defaults every renderer needs: the
// swapchain device extension and two frames in flight.
func NewConfig(name string) *Config {
	return &Config{
		Name:             name,
		Version:          Version{1, 0, 0},
		APIVersion:       Version{1, 0, 0},
		DeviceExtensions: []string{SwapchainExtensionName},
		FramesInFlight:   DefaultFramesInFlight,
	}
}

func (c *Config) framesInFlight() int {
	if c.FramesInFlight <= 0 {
		return DefaultFramesInFlight
	}
	return c.FramesInFlight
}

func (c *Config) deviceExtensions() []string {
	for _, e := range c.DeviceExtensions {
		if e == SwapchainExtensionName {
			return c.DeviceExtensions
		}
	}
	return append([]string{SwapchainExtensionName}, c.DeviceExtensions...)
}

// VKApplicationInfo creates a structure representing this application in a
// Vulkan friendly format
func (c *Config) VKApplicationInfo() vk.ApplicationInfo {
	api := c.APIVersion
	if api.Major < 1 {
		api.Major = 1
	}

	return vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         api.VKVersion(),
		ApplicationVersion: c.Version.VKVersion(),
		PApplicationName:   safeString(c.Name),
		PEngineName:        safeString(c.EngineName),
	}
}
