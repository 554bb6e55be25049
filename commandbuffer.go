package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type CommandBuffer struct {
	Pool            *CommandPool
	VKCommandBuffer vk.CommandBuffer
}

func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// BeginOneTime starts recording a buffer that will be submitted once and
// then freed or reset.
func (c *CommandBuffer) BeginOneTime() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

func (c *CommandBuffer) End() error {
	return vk.Error(vk.EndCommandBuffer(c.VKCommandBuffer))
}

func (c *CommandBuffer) Reset() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

// BeginRenderPass starts the render pass on the framebuffer, clearing the
// color attachment to the given RGBA value.
func (c *CommandBuffer) BeginRenderPass(renderPass *RenderPass, framebuffer *Framebuffer, extent vk.Extent2D, clearColor [4]float32) {
	clearValues := make([]vk.ClearValue, 1)
	clearValues[0].SetColor(clearColor[:])

	beginInfo := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  renderPass.VKRenderPass,
		Framebuffer: framebuffer.VKFramebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		},
		ClearValueCount: 1,
		PClearValues:    clearValues,
	}

	vk.CmdBeginRenderPass(c.VKCommandBuffer, &beginInfo, vk.SubpassContentsInline)
}

func (c *CommandBuffer) EndRenderPass() {
	vk.CmdEndRenderPass(c.VKCommandBuffer)
}

func (c *CommandBuffer) BindPipeline(pipeline *Pipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointGraphics, pipeline.VKPipeline)
}

// BindVertexBuffer binds the buffer as vertex source zero.
func (c *CommandBuffer) BindVertexBuffer(buffer *Buffer) {
	vk.CmdBindVertexBuffers(c.VKCommandBuffer, 0, 1,
		[]vk.Buffer{buffer.VKBuffer}, []vk.DeviceSize{0})
}

func (c *CommandBuffer) BindIndexBuffer(buffer *Buffer, indexType vk.IndexType) {
	vk.CmdBindIndexBuffer(c.VKCommandBuffer, buffer.VKBuffer, 0, indexType)
}

func (c *CommandBuffer) BindDescriptorSet(layout *PipelineLayout, set *DescriptorSet) {
	vk.CmdBindDescriptorSets(c.VKCommandBuffer, vk.PipelineBindPointGraphics,
		layout.VKPipelineLayout, 0, 1, []vk.DescriptorSet{set.VKDescriptorSet}, 0, nil)
}

func (c *CommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	vk.CmdDraw(c.VKCommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance)
}

func (c *CommandBuffer) DrawIndexed(indexCount uint32) {
	vk.CmdDrawIndexed(c.VKCommandBuffer, indexCount, 1, 0, 0, 0)
}

// CopyBuffer records a copy of size bytes from src to dst at offset zero.
func (c *CommandBuffer) CopyBuffer(src, dst *Buffer, size uint64) {
	region := vk.BufferCopy{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(size),
	}
	vk.CmdCopyBuffer(c.VKCommandBuffer, src.VKBuffer, dst.VKBuffer, 1, []vk.BufferCopy{region})
}
