package vkr

import (
	vk "github.com/vulkan-go/vulkan"
)

// Float32SliceBytes serializes the floats little endian, the layout vertex
// buffers use on every platform Vulkan targets.
func Float32SliceBytes(data []float32) []byte {
	out := make([]byte, 0, len(data)*4)
	for _, f := range data {
		out = append(out, float32Bytes(f)...)
	}
	return out
}

// Uint16SliceBytes serializes the values little endian for use as a 16 bit
// index buffer.
func Uint16SliceBytes(data []uint16) []byte {
	out := make([]byte, 0, len(data)*2)
	for _, v := range data {
		out = append(out, byte(v), byte(v>>8))
	}
	return out
}

// Uint32SliceBytes serializes the values little endian for use as a 32 bit
// index buffer.
func Uint32SliceBytes(data []uint32) []byte {
	out := make([]byte, 0, len(data)*4)
	for _, v := range data {
		out = append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
	return out
}

// VertexPos2Color3Tex2 describes the interleaved vertex layout used by the
// examples: two position floats, three color floats and two texture
// coordinates per vertex, tightly packed.
func VertexPos2Color3Tex2(binding uint32) (vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription) {
	const stride = (2 + 3 + 2) * 4

	bindingDesc := vk.VertexInputBindingDescription{
		Binding:   binding,
		Stride:    stride,
		InputRate: vk.VertexInputRateVertex,
	}

	attributes := []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: binding, Format: vk.FormatR32g32Sfloat, Offset: 0},
		{Location: 1, Binding: binding, Format: vk.FormatR32g32b32Sfloat, Offset: 2 * 4},
		{Location: 2, Binding: binding, Format: vk.FormatR32g32Sfloat, Offset: (2 + 3) * 4},
	}

	return bindingDesc, attributes
}
