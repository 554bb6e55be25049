package vkr

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return vk.Error(vk.QueueWaitIdle(q.VKQueue))
}

// SubmitWaitIdle submits the command buffer and blocks until the queue
// drains. Use this for one-shot transfer work, never inside the frame loop.
func (q *Queue) SubmitWaitIdle(buffer *CommandBuffer) error {
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{buffer.VKCommandBuffer},
	}

	err := vk.Error(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, vk.NullFence))
	if err != nil {
		return fmt.Errorf("queue submit failed: %w", err)
	}

	return q.WaitIdle()
}

// SubmitWithSync submits the command buffer with the full frame protocol:
// execution waits for waitSemaphore at the color attachment output stage,
// signalSemaphore is signaled when the buffer finishes, and fence is
// signaled when all submitted work completes.
func (q *Queue) SubmitWithSync(buffer *CommandBuffer, waitSemaphore *Semaphore, signalSemaphore *Semaphore, fence *Fence) error {
	submitInfo := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{waitSemaphore.VKSemaphore},
		PWaitDstStageMask:    []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{buffer.VKCommandBuffer},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{signalSemaphore.VKSemaphore},
	}

	err := vk.Error(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence.VKFence))
	if err != nil {
		return fmt.Errorf("queue submit failed: %w", err)
	}
	return nil
}
