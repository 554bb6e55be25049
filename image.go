package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
	Width    uint32
	Height   uint32
}

// CreateImageOptions control 2D image creation.
type CreateImageOptions struct {
	Format  vk.Format
	Usage   vk.ImageUsageFlagBits
	Tiling  vk.ImageTiling
	Samples vk.SampleCountFlagBits
}

// CreateImage creates a 2D image in the undefined layout.
func (d *Device) CreateImage(width, height uint32, options *CreateImageOptions) (*Image, error) {
	createInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  width,
			Height: height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        options.Format,
		Tiling:        options.Tiling,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(options.Usage),
		SharingMode:   vk.SharingModeExclusive,
		Samples:       options.Samples,
	}

	var vkImage vk.Image

	err := vk.Error(vk.CreateImage(d.VKDevice, &createInfo, nil, &vkImage))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, ErrResourceCreation)
	}

	return &Image{Device: d, VKImage: vkImage, VKFormat: options.Format, Width: width, Height: height}, nil
}

func (i *Image) Destroy() {
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
}

// VKMemoryRequirements returns the image's memory requirements,
// dereferenced.
func (i *Image) VKMemoryRequirements() vk.MemoryRequirements {
	var reqs vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &reqs)
	reqs.Deref()
	return reqs
}

// Bind attaches the image to device memory at the given offset.
func (i *Image) Bind(memory *DeviceMemory, offset uint64) error {
	return vk.Error(vk.BindImageMemory(i.Device.VKDevice, i.VKImage, memory.VKDeviceMemory, vk.DeviceSize(offset)))
}

type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

// CreateImageView creates a color view of the image with identity
// component swizzles, covering the single mip level and array layer.
func (i *Image) CreateImageView() (*ImageView, error) {
	return i.Device.CreateImageView(i.VKImage, i.VKFormat)
}

func (d *Device) CreateImageView(image vk.Image, format vk.Format) (*ImageView, error) {
	createInfo := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}

	var vkImageView vk.ImageView

	err := vk.Error(vk.CreateImageView(d.VKDevice, &createInfo, nil, &vkImageView))
	if err != nil {
		return nil, err
	}

	return &ImageView{Device: d, VKImageView: vkImageView}, nil
}

func (v *ImageView) Destroy() {
	vk.DestroyImageView(v.Device.VKDevice, v.VKImageView, nil)
}

// BoundImage pairs an image with the device memory backing it.
type BoundImage struct {
	Image  *Image
	Memory *DeviceMemory
}

func (b *BoundImage) Destroy() {
	b.Image.Destroy()
	b.Memory.Destroy()
}

// CreateBoundImage creates an image, allocates memory satisfying its
// requirements with the given property flags, and binds the two.
func (d *Device) CreateBoundImage(width, height uint32, options *CreateImageOptions, properties vk.MemoryPropertyFlagBits) (*BoundImage, error) {
	image, err := d.CreateImage(width, height, options)
	if err != nil {
		return nil, fmt.Errorf("unable to create image: %w", err)
	}

	memory, err := d.AllocateForRequirements(image.VKMemoryRequirements(), properties)
	if err != nil {
		image.Destroy()
		return nil, fmt.Errorf("unable to allocate image memory: %w", err)
	}

	err = image.Bind(memory, 0)
	if err != nil {
		image.Destroy()
		memory.Destroy()
		return nil, fmt.Errorf("unable to bind image memory: %w", err)
	}

	return &BoundImage{Image: image, Memory: memory}, nil
}
