package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type RenderPass struct {
	Device       *Device
	VKRenderPass vk.RenderPass
}

// CreateRenderPass creates a single-subpass render pass with one color
// attachment in the given format. The attachment is cleared on load and
// finishes in the presentation layout; an external subpass dependency
// orders the clear behind the acquire semaphore's color output wait.
func (d *Device) CreateRenderPass(format vk.Format) (*RenderPass, error) {
	colorAttachment := vk.AttachmentDescription{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}

	colorAttachmentRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    []vk.AttachmentReference{colorAttachmentRef},
	}

	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}

	createInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}

	var vkRenderPass vk.RenderPass

	err := vk.Error(vk.CreateRenderPass(d.VKDevice, &createInfo, nil, &vkRenderPass))
	if err != nil {
		return nil, err
	}

	return &RenderPass{Device: d, VKRenderPass: vkRenderPass}, nil
}

func (r *RenderPass) Destroy() {
	vk.DestroyRenderPass(r.Device.VKDevice, r.VKRenderPass, nil)
}

type Framebuffer struct {
	Device        *Device
	VKFramebuffer vk.Framebuffer
}

// CreateFramebuffer wraps a single image view into a framebuffer for the
// render pass at the given extent.
func (d *Device) CreateFramebuffer(renderPass *RenderPass, view *ImageView, extent vk.Extent2D) (*Framebuffer, error) {
	createInfo := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderPass.VKRenderPass,
		AttachmentCount: 1,
		PAttachments:    []vk.ImageView{view.VKImageView},
		Width:           extent.Width,
		Height:          extent.Height,
		Layers:          1,
	}

	var vkFramebuffer vk.Framebuffer

	err := vk.Error(vk.CreateFramebuffer(d.VKDevice, &createInfo, nil, &vkFramebuffer))
	if err != nil {
		return nil, err
	}

	return &Framebuffer{Device: d, VKFramebuffer: vkFramebuffer}, nil
}

func (f *Framebuffer) Destroy() {
	vk.DestroyFramebuffer(f.Device.VKDevice, f.VKFramebuffer, nil)
}
