package vkr

import (
	"fmt"
	"os"

	vk "github.com/vulkan-go/vulkan"
)

type ShaderModule struct {
	Device         *Device
	VKShaderModule vk.ShaderModule
}

// CreateShaderModule builds a shader module from SPIR-V bytecode. The
// byte length must be a multiple of four.
func (d *Device) CreateShaderModule(code []byte) (*ShaderModule, error) {
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("shader bytecode length %d is not a multiple of 4", len(code))
	}

	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}

	var vkShaderModule vk.ShaderModule

	err := vk.Error(vk.CreateShaderModule(d.VKDevice, &createInfo, nil, &vkShaderModule))
	if err != nil {
		return nil, err
	}

	return &ShaderModule{Device: d, VKShaderModule: vkShaderModule}, nil
}

// CreateShaderModuleFromFile loads SPIR-V bytecode from disk.
func (d *Device) CreateShaderModuleFromFile(path string) (*ShaderModule, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read shader %q: %w", path, err)
	}
	return d.CreateShaderModule(code)
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}

// VKStageCreateInfo describes this module as a pipeline stage with the
// given entry point.
func (s *ShaderModule) VKStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString(entryPoint),
	}
}
