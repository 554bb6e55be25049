package vkr

import (
	"fmt"
	"log"

	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Renderer ties the whole stack together: instance, surface, device,
// swapchain bundle and frame synchronization. The embedding application
// supplies pipeline configuration and command recording through the
// callback fields, which must be set before PrepareToDraw.
//
// The swapchain bundle is everything rebuilt together on resize: the
// swapchain, its image views, the render pass, pipeline layout, pipeline,
// framebuffers and pre-recorded command buffers.
type Renderer struct {
	Config *Config

	// ConfigurePipeline registers shaders and vertex layout on the config.
	// It runs on every swapchain build, including recreations.
	ConfigurePipeline func(cfg *GraphicsPipelineConfig) error

	// MakeCommandBuffer records the draw commands for one swapchain image.
	// The render pass is already begun on the buffer when it runs.
	MakeCommandBuffer func(buffer *CommandBuffer, image int) error

	// OnSwapchainCreate, when set, runs after each swapchain build with
	// the new extent. Use it to refresh projection aspect ratios.
	OnSwapchainCreate func(extent vk.Extent2D)

	// OnFrame, when set, runs each frame after the image is claimed and
	// before submission. Use it to update per-frame uniform data.
	OnFrame func(image int) error

	ClearColor [4]float32

	window         *glfw.Window
	instance       *Instance
	surface        vk.Surface
	physicalDevice *PhysicalDevice
	device         *Device
	graphicsFamily *QueueFamily
	presentFamily  *QueueFamily
	graphicsQueue  *Queue
	presentQueue   *Queue
	commandPool    *CommandPool
	pipelineCache  *PipelineCache
	frames         *FrameSync

	setLayouts []*DescriptorSetLayout

	swapchain      *Swapchain
	imageViews     []*ImageView
	renderPass     *RenderPass
	pipelineLayout *PipelineLayout
	pipeline       *Pipeline
	framebuffers   []*Framebuffer
	commandBuffers []*CommandBuffer

	resized   bool
	destroyed bool
}

func NewRenderer(cfg *Config) *Renderer {
	return &Renderer{
		Config:     cfg,
		ClearColor: [4]float32{0, 0, 0, 1},
	}
}

// SetWindow attaches the GLFW window the renderer presents to. Must be
// called before Init.
func (r *Renderer) SetWindow(window *glfw.Window) {
	r.window = window
}

// Device exposes the logical device for resource creation once Init has
// run.
func (r *Renderer) Device() *Device {
	return r.device
}

func (r *Renderer) GraphicsQueue() *Queue {
	return r.graphicsQueue
}

func (r *Renderer) CommandPool() *CommandPool {
	return r.commandPool
}

// Extent returns the current swapchain extent.
func (r *Renderer) Extent() vk.Extent2D {
	return r.swapchain.Extent
}

// PipelineLayout returns the layout of the current swapchain bundle, for
// descriptor binds recorded in MakeCommandBuffer.
func (r *Renderer) PipelineLayout() *PipelineLayout {
	return r.pipelineLayout
}

// SetDescriptorSetLayouts registers the layouts the pipeline layout is
// built over. Must be called before PrepareToDraw.
func (r *Renderer) SetDescriptorSetLayouts(layouts ...*DescriptorSetLayout) {
	r.setLayouts = layouts
}

// Init brings up the instance, surface, device, queues, command pool and
// frame synchronization. The swapchain bundle comes later, in
// PrepareToDraw, so resources such as textures and vertex buffers can be
// created in between.
func (r *Renderer) Init() error {
	if r.window == nil {
		return fmt.Errorf("no window set")
	}

	instance, err := r.Config.CreateInstance(r.window.GetRequiredInstanceExtensions())
	if err != nil {
		return fmt.Errorf("unable to create instance: %w", err)
	}
	r.instance = instance

	surfacePtr, err := r.window.CreateWindowSurface(r.instance.VKInstance, nil)
	if err != nil {
		return fmt.Errorf("unable to create window surface: %w", err)
	}
	r.surface = vk.SurfaceFromPointer(surfacePtr)

	err = r.pickPhysicalDevice()
	if err != nil {
		return err
	}

	err = r.createDeviceAndQueues()
	if err != nil {
		return err
	}

	r.commandPool, err = r.device.CreateCommandPool(r.graphicsFamily)
	if err != nil {
		return fmt.Errorf("unable to create command pool: %w", err)
	}

	r.pipelineCache, err = r.device.CreatePipelineCache()
	if err != nil {
		return fmt.Errorf("unable to create pipeline cache: %w", err)
	}

	r.frames, err = NewFrameSync(r.device, r.Config.framesInFlight())
	if err != nil {
		return fmt.Errorf("unable to create frame synchronization: %w", err)
	}

	return nil
}

// pickPhysicalDevice selects the first suitable device, logging each
// rejection with its reason.
func (r *Renderer) pickPhysicalDevice() error {
	devices, err := r.instance.PhysicalDevices()
	if err != nil {
		return fmt.Errorf("unable to enumerate physical devices: %w", err)
	}

	for _, d := range devices {
		err = d.Suitable(r.surface, r.Config.deviceExtensions())
		if err != nil {
			log.Printf("skipping %s: %v", d.DeviceName, err)
			continue
		}
		log.Printf("selected physical device %s", d.DeviceName)
		r.physicalDevice = d
		return nil
	}

	return ErrNoSuitableDevice
}

func (r *Renderer) createDeviceAndQueues() error {
	families, err := r.physicalDevice.QueueFamilies()
	if err != nil {
		return fmt.Errorf("unable to load queue families: %w", err)
	}

	// A family that both draws and presents lets the swapchain stay
	// exclusive; otherwise take one of each.
	both := families.FilterGraphicsAndPresent(r.surface)
	if len(both) > 0 {
		r.graphicsFamily = both[0]
		r.presentFamily = both[0]
	} else {
		r.graphicsFamily = families.FilterGraphics()[0]
		r.presentFamily = families.FilterPresent(r.surface)[0]
	}

	deviceFamilies := QueueFamilySlice{r.graphicsFamily}
	if r.presentFamily != r.graphicsFamily {
		deviceFamilies = append(deviceFamilies, r.presentFamily)
	}

	options := &CreateDeviceOptions{EnabledExtensions: r.Config.deviceExtensions()}
	if r.Config.Debug {
		options.EnabledLayers = []string{ValidationLayerName}
	}

	r.device, err = r.physicalDevice.CreateLogicalDeviceWithOptions(deviceFamilies, options)
	if err != nil {
		return fmt.Errorf("unable to create logical device: %w", err)
	}

	r.graphicsQueue = r.device.GetQueue(r.graphicsFamily)
	r.presentQueue = r.device.GetQueue(r.presentFamily)
	return nil
}

// PrepareToDraw builds the first swapchain bundle. Call after Init and
// after creating the resources the command buffers reference.
func (r *Renderer) PrepareToDraw() error {
	return r.createSwapchainBundle()
}

func (r *Renderer) createSwapchainBundle() error {
	width, height := r.window.GetFramebufferSize()

	swapchain, err := r.device.CreateSwapchain(r.surface, r.graphicsFamily, r.presentFamily, uint32(width), uint32(height))
	if err != nil {
		return err
	}
	r.swapchain = swapchain

	images, err := swapchain.GetImages()
	if err != nil {
		return fmt.Errorf("unable to get swapchain images: %w", err)
	}

	for _, image := range images {
		view, err := r.device.CreateImageView(image, swapchain.Format.Format)
		if err != nil {
			return fmt.Errorf("unable to create swapchain image view: %w", err)
		}
		r.imageViews = append(r.imageViews, view)
	}

	r.renderPass, err = r.device.CreateRenderPass(swapchain.Format.Format)
	if err != nil {
		return fmt.Errorf("unable to create render pass: %w", err)
	}

	r.pipelineLayout, err = r.device.CreatePipelineLayout(r.setLayouts...)
	if err != nil {
		return fmt.Errorf("unable to create pipeline layout: %w", err)
	}

	pipelineConfig := r.device.NewGraphicsPipelineConfig()
	err = r.ConfigurePipeline(pipelineConfig)
	if err != nil {
		return fmt.Errorf("pipeline configuration failed: %w", err)
	}

	r.pipeline, err = pipelineConfig.Build(r.renderPass, r.pipelineLayout, swapchain.Extent, r.pipelineCache)
	if err != nil {
		return err
	}

	for _, view := range r.imageViews {
		framebuffer, err := r.device.CreateFramebuffer(r.renderPass, view, swapchain.Extent)
		if err != nil {
			return fmt.Errorf("unable to create framebuffer: %w", err)
		}
		r.framebuffers = append(r.framebuffers, framebuffer)
	}

	r.commandBuffers, err = r.commandPool.AllocateBuffers(len(images))
	if err != nil {
		return fmt.Errorf("unable to allocate command buffers: %w", err)
	}

	for i, buffer := range r.commandBuffers {
		err = r.recordCommandBuffer(buffer, i)
		if err != nil {
			return fmt.Errorf("unable to record command buffer %d: %w", i, err)
		}
	}

	r.frames.ResetImages(len(images))

	if r.OnSwapchainCreate != nil {
		r.OnSwapchainCreate(swapchain.Extent)
	}

	return nil
}

func (r *Renderer) recordCommandBuffer(buffer *CommandBuffer, image int) error {
	err := buffer.Begin()
	if err != nil {
		return err
	}

	buffer.BeginRenderPass(r.renderPass, r.framebuffers[image], r.swapchain.Extent, r.ClearColor)
	buffer.BindPipeline(r.pipeline)

	err = r.MakeCommandBuffer(buffer, image)
	if err != nil {
		return err
	}

	buffer.EndRenderPass()
	return buffer.End()
}

// destroySwapchainBundle tears the bundle down in the reverse of build
// order.
func (r *Renderer) destroySwapchainBundle() {
	if r.commandBuffers != nil {
		r.commandPool.FreeBuffers(r.commandBuffers)
		r.commandBuffers = nil
	}
	for _, f := range r.framebuffers {
		f.Destroy()
	}
	r.framebuffers = nil
	if r.pipeline != nil {
		r.pipeline.Destroy()
		r.pipeline = nil
	}
	if r.pipelineLayout != nil {
		r.pipelineLayout.Destroy()
		r.pipelineLayout = nil
	}
	if r.renderPass != nil {
		r.renderPass.Destroy()
		r.renderPass = nil
	}
	for _, v := range r.imageViews {
		v.Destroy()
	}
	r.imageViews = nil
	if r.swapchain != nil {
		r.swapchain.Destroy()
		r.swapchain = nil
	}
}

// RecreateSwapchain waits for the device to go idle, tears the bundle
// down and builds it again at the window's current size.
func (r *Renderer) RecreateSwapchain() error {
	err := r.device.WaitIdle()
	if err != nil {
		return fmt.Errorf("wait idle before swapchain rebuild failed: %w", err)
	}

	r.destroySwapchainBundle()
	return r.createSwapchainBundle()
}

// Resize tells the renderer the window size changed. The swapchain is
// rebuilt after the next presented frame.
func (r *Renderer) Resize() {
	r.resized = true
}

// RenderFrame runs one iteration of the frame loop: wait for the current
// slot, acquire an image, wait out the image's previous owner, submit and
// present. An out of date swapchain at acquire or present triggers one
// rebuild; the frame slot advances exactly once per call either way. A
// minimized window makes the call return immediately without touching the
// device.
func (r *Renderer) RenderFrame() error {
	if r.destroyed {
		return ErrRendererDestroyed
	}

	width, height := r.window.GetFramebufferSize()
	if width == 0 || height == 0 {
		return nil
	}

	err := r.frames.WaitCurrent()
	if err != nil {
		return fmt.Errorf("wait for frame fence failed: %w", err)
	}
	defer r.frames.Advance()

	imageIndex, res := r.swapchain.Acquire(r.frames.CurrentImageAvailable())
	if res == vk.ErrorOutOfDate {
		return r.RecreateSwapchain()
	}
	if res != vk.Success && res != vk.Suboptimal {
		return fmt.Errorf("unable to acquire swapchain image: %w", vk.Error(res))
	}

	err = r.frames.WaitImageOwner(int(imageIndex))
	if err != nil {
		return fmt.Errorf("wait for image owner failed: %w", err)
	}

	err = r.frames.ClaimCurrent(int(imageIndex))
	if err != nil {
		return fmt.Errorf("unable to reset frame fence: %w", err)
	}

	if r.OnFrame != nil {
		err = r.OnFrame(int(imageIndex))
		if err != nil {
			return err
		}
	}

	err = r.graphicsQueue.SubmitWithSync(r.commandBuffers[imageIndex],
		r.frames.CurrentImageAvailable(), r.frames.CurrentRenderFinished(), r.frames.CurrentFence())
	if err != nil {
		return err
	}

	res = r.swapchain.Present(r.presentQueue, imageIndex, r.frames.CurrentRenderFinished())
	if res == vk.ErrorOutOfDate || res == vk.Suboptimal || r.resized {
		r.resized = false
		return r.RecreateSwapchain()
	}
	if res != vk.Success {
		return fmt.Errorf("unable to present swapchain image: %w", vk.Error(res))
	}

	return nil
}

// Destroy waits for the device to go idle and releases everything in the
// reverse of creation order. Further RenderFrame calls return
// ErrRendererDestroyed.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true

	if r.device != nil {
		err := r.device.WaitIdle()
		if err != nil {
			log.Printf("wait idle before teardown failed: %v", err)
		}

		r.destroySwapchainBundle()

		if r.frames != nil {
			r.frames.Destroy()
		}
		if r.pipelineCache != nil {
			r.pipelineCache.Destroy()
		}
		if r.commandPool != nil {
			r.commandPool.Destroy()
		}
		r.device.Destroy()
	}

	if r.surface != vk.NullSurface {
		vk.DestroySurface(r.instance.VKInstance, r.surface, nil)
	}
	if r.instance != nil {
		r.instance.Destroy()
	}
}
