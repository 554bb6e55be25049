package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type PipelineLayout struct {
	Device           *Device
	VKPipelineLayout vk.PipelineLayout
}

// CreatePipelineLayout creates a pipeline layout over the given descriptor
// set layouts. Pass none for a layout without descriptors.
func (d *Device) CreatePipelineLayout(setLayouts ...*DescriptorSetLayout) (*PipelineLayout, error) {
	vkLayouts := make([]vk.DescriptorSetLayout, len(setLayouts))
	for i, l := range setLayouts {
		vkLayouts[i] = l.VKDescriptorSetLayout
	}

	createInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: uint32(len(vkLayouts)),
		PSetLayouts:    vkLayouts,
	}

	var vkPipelineLayout vk.PipelineLayout

	err := vk.Error(vk.CreatePipelineLayout(d.VKDevice, &createInfo, nil, &vkPipelineLayout))
	if err != nil {
		return nil, err
	}

	return &PipelineLayout{Device: d, VKPipelineLayout: vkPipelineLayout}, nil
}

func (p *PipelineLayout) Destroy() {
	vk.DestroyPipelineLayout(p.Device.VKDevice, p.VKPipelineLayout, nil)
}

type PipelineCache struct {
	Device          *Device
	VKPipelineCache vk.PipelineCache
}

func (d *Device) CreatePipelineCache() (*PipelineCache, error) {
	createInfo := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}

	var vkPipelineCache vk.PipelineCache

	err := vk.Error(vk.CreatePipelineCache(d.VKDevice, &createInfo, nil, &vkPipelineCache))
	if err != nil {
		return nil, err
	}

	return &PipelineCache{Device: d, VKPipelineCache: vkPipelineCache}, nil
}

func (p *PipelineCache) Destroy() {
	vk.DestroyPipelineCache(p.Device.VKDevice, p.VKPipelineCache, nil)
}

// GraphicsPipelineConfig accumulates the state needed to build a graphics
// pipeline. Shader stages and vertex input are supplied by the caller;
// viewport and scissor come from the swapchain extent at build time.
type GraphicsPipelineConfig struct {
	Device *Device

	shaderStages      []vk.PipelineShaderStageCreateInfo
	vertexBindings    []vk.VertexInputBindingDescription
	vertexAttributes  []vk.VertexInputAttributeDescription
	primitiveTopology vk.PrimitiveTopology
	shadersToDestroy  []*ShaderModule
}

func (d *Device) NewGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return &GraphicsPipelineConfig{
		Device:            d,
		primitiveTopology: vk.PrimitiveTopologyTriangleList,
	}
}

// AddVertexShaderFromBytes compiles the bytecode into a module owned by
// the config and registers it as the vertex stage.
func (g *GraphicsPipelineConfig) AddVertexShaderFromBytes(code []byte) error {
	return g.addShaderFromBytes(code, vk.ShaderStageVertexBit)
}

// AddFragmentShaderFromBytes compiles the bytecode into a module owned by
// the config and registers it as the fragment stage.
func (g *GraphicsPipelineConfig) AddFragmentShaderFromBytes(code []byte) error {
	return g.addShaderFromBytes(code, vk.ShaderStageFragmentBit)
}

func (g *GraphicsPipelineConfig) addShaderFromBytes(code []byte, stage vk.ShaderStageFlagBits) error {
	module, err := g.Device.CreateShaderModule(code)
	if err != nil {
		return fmt.Errorf("unable to create shader module: %w", err)
	}
	g.shadersToDestroy = append(g.shadersToDestroy, module)
	g.shaderStages = append(g.shaderStages, module.VKStageCreateInfo(stage, "main"))
	return nil
}

// AddVertexDescriptor registers the binding and attribute layout of a
// vertex source.
func (g *GraphicsPipelineConfig) AddVertexDescriptor(binding vk.VertexInputBindingDescription, attributes []vk.VertexInputAttributeDescription) {
	g.vertexBindings = append(g.vertexBindings, binding)
	g.vertexAttributes = append(g.vertexAttributes, attributes...)
}

func (g *GraphicsPipelineConfig) SetPrimitiveTopology(topology vk.PrimitiveTopology) {
	g.primitiveTopology = topology
}

type Pipeline struct {
	Device     *Device
	VKPipeline vk.Pipeline
}

func (p *Pipeline) Destroy() {
	vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
}

// Build creates the graphics pipeline for the given render pass, layout
// and extent. Shader modules registered on the config are destroyed once
// the pipeline exists; the config can be reused to rebuild the pipeline
// only after adding shaders again.
func (g *GraphicsPipelineConfig) Build(renderPass *RenderPass, layout *PipelineLayout, extent vk.Extent2D, cache *PipelineCache) (*Pipeline, error) {
	vertexInputState := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(g.vertexBindings)),
		PVertexBindingDescriptions:      g.vertexBindings,
		VertexAttributeDescriptionCount: uint32(len(g.vertexAttributes)),
		PVertexAttributeDescriptions:    g.vertexAttributes,
	}

	inputAssemblyState := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               g.primitiveTopology,
		PrimitiveRestartEnable: vk.False,
	}

	viewport := vk.Viewport{
		X:        0,
		Y:        0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}

	scissor := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{scissor},
	}

	rasterizationState := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		LineWidth:               1.0,
		CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
		FrontFace:               vk.FrontFaceCounterClockwise,
		DepthBiasEnable:         vk.False,
	}

	multisampleState := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	colorBlendAttachment := vk.PipelineColorBlendAttachmentState{
		ColorWriteMask: vk.ColorComponentFlags(
			vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
		BlendEnable:         vk.True,
		SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
		DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
		ColorBlendOp:        vk.BlendOpAdd,
		SrcAlphaBlendFactor: vk.BlendFactorOne,
		DstAlphaBlendFactor: vk.BlendFactorZero,
		AlphaBlendOp:        vk.BlendOpAdd,
	}

	colorBlendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachment},
	}

	createInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.shaderStages)),
		PStages:             g.shaderStages,
		PVertexInputState:   &vertexInputState,
		PInputAssemblyState: &inputAssemblyState,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizationState,
		PMultisampleState:   &multisampleState,
		PColorBlendState:    &colorBlendState,
		Layout:              layout.VKPipelineLayout,
		RenderPass:          renderPass.VKRenderPass,
		Subpass:             0,
	}

	vkCache := vk.NullPipelineCache
	if cache != nil {
		vkCache = cache.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, 1)
	err := vkErrorf(vk.CreateGraphicsPipelines(g.Device.VKDevice, vkCache, 1,
		[]vk.GraphicsPipelineCreateInfo{createInfo}, nil, pipelines), "unable to create graphics pipeline")
	if err != nil {
		return nil, err
	}

	for _, s := range g.shadersToDestroy {
		s.Destroy()
	}
	g.shadersToDestroy = nil
	g.shaderStages = nil

	return &Pipeline{Device: g.Device, VKPipeline: pipelines[0]}, nil
}
