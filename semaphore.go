package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

type Semaphore struct {
	Device      *Device
	VKSemaphore vk.Semaphore
}

func (d *Device) CreateSemaphore() (*Semaphore, error) {
	createInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var vkSemaphore vk.Semaphore

	err := vk.Error(vk.CreateSemaphore(d.VKDevice, &createInfo, nil, &vkSemaphore))
	if err != nil {
		return nil, err
	}

	return &Semaphore{Device: d, VKSemaphore: vkSemaphore}, nil
}

func (s *Semaphore) Destroy() {
	vk.DestroySemaphore(s.Device.VKDevice, s.VKSemaphore, nil)
}
