package vkr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestFloat32SliceBytes(t *testing.T) {
	out := Float32SliceBytes([]float32{1.0})
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, out)
	assert.Len(t, Float32SliceBytes(make([]float32, 7)), 28)
}

func TestUint16SliceBytes(t *testing.T) {
	out := Uint16SliceBytes([]uint16{0x0102, 0x0304})
	assert.Equal(t, []byte{0x02, 0x01, 0x04, 0x03}, out)
}

func TestUint32SliceBytes(t *testing.T) {
	out := Uint32SliceBytes([]uint32{0x01020304})
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, out)
}

func TestVertexPos2Color3Tex2Layout(t *testing.T) {
	binding, attributes := VertexPos2Color3Tex2(0)

	assert.Equal(t, uint32(28), binding.Stride)
	assert.Equal(t, vk.VertexInputRateVertex, binding.InputRate)

	assert.Len(t, attributes, 3)
	assert.Equal(t, uint32(0), attributes[0].Offset)
	assert.Equal(t, uint32(8), attributes[1].Offset)
	assert.Equal(t, uint32(20), attributes[2].Offset)
	assert.Equal(t, vk.FormatR32g32b32Sfloat, attributes[1].Format)
}

func TestSliceUint32(t *testing.T) {
	words := sliceUint32([]byte{0x04, 0x03, 0x02, 0x01, 0x08, 0x07, 0x06, 0x05})
	assert.Equal(t, []uint32{0x01020304, 0x05060708}, words)
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "abc\x00", safeString("abc"))
	assert.Equal(t, "abc\x00", safeString("abc\x00"))
	assert.Equal(t, "\x00", safeString(""))
}
