package vkr

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Fatal setup errors. Each aborts initialization and is reported to the
// caller; none of them is retried.
var (
	// ErrNoSuitableDevice is returned when no enumerated physical device
	// passes the suitability checks.
	ErrNoSuitableDevice = errors.New("no suitable physical device found")

	// ErrNoSuitableMemoryType is returned when no memory type index
	// satisfies both the hardware mask and the requested property flags.
	ErrNoSuitableMemoryType = errors.New("no suitable memory type found")

	// ErrNoSuitableQueueFamily is returned when a device lacks a queue
	// family with a required capability.
	ErrNoSuitableQueueFamily = errors.New("no suitable queue family found")

	// ErrResourceCreation wraps a failed buffer or image creation.
	ErrResourceCreation = errors.New("resource creation failed")

	// ErrAllocation wraps a failed device memory allocation.
	ErrAllocation = errors.New("device memory allocation failed")
)

// ErrRendererDestroyed is returned by RenderFrame after Destroy has run.
var ErrRendererDestroyed = errors.New("renderer has been destroyed")

// vkErrorf wraps a non-success vulkan result together with context about the
// call that produced it. It returns nil for vk.Success so it can wrap call
// sites directly.
func vkErrorf(res vk.Result, format string, args ...interface{}) error {
	if res == vk.Success {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, vk.Error(res))...)
}
