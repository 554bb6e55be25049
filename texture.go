package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Texture is a device local sampled image together with its view.
type Texture struct {
	Bound *BoundImage
	View  *ImageView
}

func (t *Texture) Destroy() {
	t.View.Destroy()
	t.Bound.Destroy()
}

// TransitionImageLayout records a pipeline barrier moving the image between
// the two layout transitions the upload path needs: undefined to transfer
// destination, and transfer destination to shader read only.
func (c *CommandBuffer) TransitionImageLayout(image *Image, oldLayout, newLayout vk.ImageLayout) error {
	var srcAccess, dstAccess vk.AccessFlagBits
	var srcStage, dstStage vk.PipelineStageFlagBits

	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		srcAccess = 0
		dstAccess = vk.AccessTransferWriteBit
		srcStage = vk.PipelineStageTopOfPipeBit
		dstStage = vk.PipelineStageTransferBit
	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		srcAccess = vk.AccessTransferWriteBit
		dstAccess = vk.AccessShaderReadBit
		srcStage = vk.PipelineStageTransferBit
		dstStage = vk.PipelineStageFragmentShaderBit
	default:
		return fmt.Errorf("unsupported layout transition %d -> %d", oldLayout, newLayout)
	}

	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               image.VKImage,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
		SrcAccessMask: vk.AccessFlags(srcAccess),
		DstAccessMask: vk.AccessFlags(dstAccess),
	}

	vk.CmdPipelineBarrier(c.VKCommandBuffer,
		vk.PipelineStageFlags(srcStage), vk.PipelineStageFlags(dstStage),
		0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})

	return nil
}

// CopyBufferToImage records a full-extent copy from the buffer into the
// image, which must be in the transfer destination layout.
func (c *CommandBuffer) CopyBufferToImage(buffer *Buffer, image *Image) {
	region := vk.BufferImageCopy{
		BufferOffset:      0,
		BufferRowLength:   0,
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:       0,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
		ImageOffset: vk.Offset3D{X: 0, Y: 0, Z: 0},
		ImageExtent: vk.Extent3D{Width: image.Width, Height: image.Height, Depth: 1},
	}

	vk.CmdCopyBufferToImage(c.VKCommandBuffer, buffer.VKBuffer, image.VKImage,
		vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{region})
}

// StageTexture uploads RGBA pixel data into a new device local sampled
// texture. The pixels travel through a host visible staging buffer and a
// one-shot command buffer; the call blocks until the queue drains and the
// staging buffer is destroyed before returning.
func (d *Device) StageTexture(pixels []byte, width, height uint32, pool *CommandPool, queue *Queue) (*Texture, error) {
	staging, err := d.CreateStagingBuffer(pixels)
	if err != nil {
		return nil, fmt.Errorf("unable to create staging buffer: %w", err)
	}
	defer staging.Destroy()

	bound, err := d.CreateBoundImage(width, height, &CreateImageOptions{
		Format:  vk.FormatR8g8b8a8Srgb,
		Usage:   vk.ImageUsageTransferDstBit | vk.ImageUsageSampledBit,
		Tiling:  vk.ImageTilingOptimal,
		Samples: vk.SampleCount1Bit,
	}, vk.MemoryPropertyDeviceLocalBit)
	if err != nil {
		return nil, err
	}

	buffer, err := pool.AllocateBuffer()
	if err != nil {
		bound.Destroy()
		return nil, err
	}
	defer pool.FreeBuffer(buffer)

	err = buffer.BeginOneTime()
	if err != nil {
		bound.Destroy()
		return nil, err
	}

	err = buffer.TransitionImageLayout(bound.Image, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal)
	if err != nil {
		bound.Destroy()
		return nil, err
	}
	buffer.CopyBufferToImage(staging.Buffer, bound.Image)
	err = buffer.TransitionImageLayout(bound.Image, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal)
	if err != nil {
		bound.Destroy()
		return nil, err
	}

	err = buffer.End()
	if err != nil {
		bound.Destroy()
		return nil, err
	}

	err = queue.SubmitWaitIdle(buffer)
	if err != nil {
		bound.Destroy()
		return nil, fmt.Errorf("texture upload failed: %w", err)
	}

	view, err := bound.Image.CreateImageView()
	if err != nil {
		bound.Destroy()
		return nil, fmt.Errorf("unable to create texture view: %w", err)
	}

	return &Texture{Bound: bound, View: view}, nil
}

type Sampler struct {
	Device    *Device
	VKSampler vk.Sampler
}

// CreateSampler creates a nearest-filtered sampler with repeat addressing
// on every axis.
func (d *Device) CreateSampler() (*Sampler, error) {
	createInfo := vk.SamplerCreateInfo{
		SType:                   vk.StructureTypeSamplerCreateInfo,
		MagFilter:               vk.FilterNearest,
		MinFilter:               vk.FilterNearest,
		AddressModeU:            vk.SamplerAddressModeRepeat,
		AddressModeV:            vk.SamplerAddressModeRepeat,
		AddressModeW:            vk.SamplerAddressModeRepeat,
		AnisotropyEnable:        vk.False,
		MaxAnisotropy:           1.0,
		BorderColor:             vk.BorderColorIntOpaqueBlack,
		UnnormalizedCoordinates: vk.False,
		CompareEnable:           vk.False,
		CompareOp:               vk.CompareOpAlways,
		MipmapMode:              vk.SamplerMipmapModeNearest,
	}

	var vkSampler vk.Sampler

	err := vk.Error(vk.CreateSampler(d.VKDevice, &createInfo, nil, &vkSampler))
	if err != nil {
		return nil, err
	}

	return &Sampler{Device: d, VKSampler: vkSampler}, nil
}

func (s *Sampler) Destroy() {
	vk.DestroySampler(s.Device.VKDevice, s.VKSampler, nil)
}
