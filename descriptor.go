package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type DescriptorSetLayout struct {
	Device                *Device
	VKDescriptorSetLayout vk.DescriptorSetLayout
}

// CreateDescriptorSetLayout creates a layout from the given bindings.
func (d *Device) CreateDescriptorSetLayout(bindings []vk.DescriptorSetLayoutBinding) (*DescriptorSetLayout, error) {
	createInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}

	var vkLayout vk.DescriptorSetLayout

	err := vk.Error(vk.CreateDescriptorSetLayout(d.VKDevice, &createInfo, nil, &vkLayout))
	if err != nil {
		return nil, err
	}

	return &DescriptorSetLayout{Device: d, VKDescriptorSetLayout: vkLayout}, nil
}

// UniformBinding describes a uniform buffer visible to the vertex stage.
func UniformBinding(binding uint32) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		Binding:         binding,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageVertexBit),
	}
}

// SamplerBinding describes a combined image sampler visible to the
// fragment stage.
func SamplerBinding(binding uint32) vk.DescriptorSetLayoutBinding {
	return vk.DescriptorSetLayoutBinding{
		Binding:         binding,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
	}
}

func (l *DescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(l.Device.VKDevice, l.VKDescriptorSetLayout, nil)
}

type DescriptorPool struct {
	Device           *Device
	VKDescriptorPool vk.DescriptorPool
}

// CreateDescriptorPool creates a pool able to hold maxSets sets drawn from
// the given pool sizes.
func (d *Device) CreateDescriptorPool(maxSets uint32, sizes []vk.DescriptorPoolSize) (*DescriptorPool, error) {
	createInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       maxSets,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    sizes,
	}

	var vkPool vk.DescriptorPool

	err := vk.Error(vk.CreateDescriptorPool(d.VKDevice, &createInfo, nil, &vkPool))
	if err != nil {
		return nil, err
	}

	return &DescriptorPool{Device: d, VKDescriptorPool: vkPool}, nil
}

func (p *DescriptorPool) Destroy() {
	vk.DestroyDescriptorPool(p.Device.VKDevice, p.VKDescriptorPool, nil)
}

type DescriptorSet struct {
	Device          *Device
	Pool            *DescriptorPool
	VKDescriptorSet vk.DescriptorSet
}

// Allocate carves one descriptor set with the given layout out of the
// pool. Sets are reclaimed when the pool is destroyed or reset.
func (p *DescriptorPool) Allocate(layout *DescriptorSetLayout) (*DescriptorSet, error) {
	allocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     p.VKDescriptorPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{layout.VKDescriptorSetLayout},
	}

	sets := make([]vk.DescriptorSet, 1)
	err := vk.Error(vk.AllocateDescriptorSets(p.Device.VKDevice, &allocateInfo, &sets[0]))
	if err != nil {
		return nil, err
	}

	return &DescriptorSet{Device: p.Device, Pool: p, VKDescriptorSet: sets[0]}, nil
}

// WriteUniformBuffer points the binding at the whole of the given buffer.
func (s *DescriptorSet) WriteUniformBuffer(binding uint32, buffer *Buffer) {
	bufferInfo := vk.DescriptorBufferInfo{
		Buffer: buffer.VKBuffer,
		Offset: 0,
		Range:  vk.DeviceSize(buffer.Size),
	}

	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          s.VKDescriptorSet,
		DstBinding:      binding,
		DstArrayElement: 0,
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		PBufferInfo:     []vk.DescriptorBufferInfo{bufferInfo},
	}

	vk.UpdateDescriptorSets(s.Device.VKDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)
}

// WriteCombinedImageSampler points the binding at the texture view sampled
// through the given sampler.
func (s *DescriptorSet) WriteCombinedImageSampler(binding uint32, view *ImageView, sampler *Sampler) {
	imageInfo := vk.DescriptorImageInfo{
		ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
		ImageView:   view.VKImageView,
		Sampler:     sampler.VKSampler,
	}

	write := vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstSet:          s.VKDescriptorSet,
		DstBinding:      binding,
		DstArrayElement: 0,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: 1,
		PImageInfo:      []vk.DescriptorImageInfo{imageInfo},
	}

	vk.UpdateDescriptorSets(s.Device.VKDevice, 1, []vk.WriteDescriptorSet{write}, 0, nil)
}
