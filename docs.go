/*
Package vkr is a minimal real-time rendering front end for Vulkan. It owns
the parts of a Vulkan application that are genuinely hard to get right: the
swapchain lifecycle, the per-frame fence and semaphore protocol, and the
memory allocation and staging routines. Windowing, shader compilation and
image decoding are left to the caller, which hands the package well formed
inputs (a window, compiled SPIR-V blobs, decoded RGBA pixels).

The central object is the Renderer, which selects a physical device, builds
the logical device and presentation surface, and exposes three lifecycle
entry points to the windowing loop:

	r := vkr.NewRenderer(vkr.NewConfig("demo"))
	r.SetWindow(window)
	err := r.Init()
	...configure pipeline, upload geometry and textures...
	err = r.PrepareToDraw()
	for !window.ShouldClose() {
		glfw.PollEvents()
		err = r.RenderFrame()
	}
	r.Destroy()

The swapchain, its image views, render pass, pipeline and framebuffers form
one bundle that is destroyed and rebuilt as a whole whenever the surface is
reported out of date or the window is resized. Two frames may be in flight
at once; a per-image claim table prevents the CPU from rewriting a command
buffer the GPU is still reading.

Native Vulkan handles are exposed on every wrapper type with a VK prefix
(Device.VKDevice, Swapchain.VKSwapchain, ...) so applications are never
limited by what this package wraps.
*/
package vkr
