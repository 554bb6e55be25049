package vkr

import (
	lin "github.com/xlab/linmath"
)

// UniformMatrices is the model/view/projection block handed to the vertex
// shader, laid out as three consecutive column-major 4x4 float matrices.
type UniformMatrices struct {
	Model lin.Mat4x4
	View  lin.Mat4x4
	Proj  lin.Mat4x4
}

// Bytes renders the block into the byte layout the shader expects.
func (u *UniformMatrices) Bytes() []byte {
	out := make([]byte, 0, 3*64)
	for _, m := range []*lin.Mat4x4{&u.Model, &u.View, &u.Proj} {
		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				out = append(out, float32Bytes(m[col][row])...)
			}
		}
	}
	return out
}

// Camera produces view and projection matrices for a fixed eye looking at
// a center point, with a perspective projection corrected for Vulkan's
// inverted clip space Y.
type Camera struct {
	Eye    lin.Vec3
	Center lin.Vec3
	Up     lin.Vec3

	FovY   float32
	Near   float32
	Far    float32
	Aspect float32
}

func NewCamera() *Camera {
	return &Camera{
		Eye:    lin.Vec3{2, 2, 2},
		Center: lin.Vec3{0, 0, 0},
		Up:     lin.Vec3{0, 0, 1},
		FovY:   lin.DegreesToRadians(45),
		Near:   0.1,
		Far:    10,
		Aspect: 1,
	}
}

// SetAspect updates the projection aspect ratio, typically from the
// swapchain extent after a resize.
func (c *Camera) SetAspect(width, height uint32) {
	if height == 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Matrices computes the uniform block for the given model rotation angle
// in radians around the Z axis.
func (c *Camera) Matrices(angle float32) UniformMatrices {
	var u UniformMatrices

	u.Model.Identity()
	var rotated lin.Mat4x4
	rotated.Rotate(&u.Model, 0, 0, 1, angle)
	u.Model = rotated

	u.View.LookAt(&c.Eye, &c.Center, &c.Up)

	u.Proj.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
	u.Proj[1][1] *= -1

	return u
}
