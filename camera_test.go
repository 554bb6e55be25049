package vkr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformMatricesBytesLayout(t *testing.T) {
	var u UniformMatrices
	u.Model.Identity()
	u.View.Identity()
	u.Proj.Identity()

	out := u.Bytes()
	assert.Len(t, out, 192)

	// Column-major identity starts with 1.0f.
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3f}, out[:4])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, out[4:8])
}

func TestCameraFlipsClipSpaceY(t *testing.T) {
	camera := NewCamera()
	camera.SetAspect(800, 600)

	u := camera.Matrices(0)
	assert.Less(t, u.Proj[1][1], float32(0))
}

func TestCameraSetAspect(t *testing.T) {
	camera := NewCamera()

	camera.SetAspect(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, float64(camera.Aspect), 1e-6)

	// A zero height, as reported while minimized, leaves the aspect alone.
	camera.SetAspect(100, 0)
	assert.InDelta(t, 1920.0/1080.0, float64(camera.Aspect), 1e-6)
}
