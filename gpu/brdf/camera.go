// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brdf

import (
	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/xyz"
	"github.com/go-gl/mathgl/mgl32"
)

// CameraUniforms contains the camera matrices, for uniform uploading
// to the CameraBinding block.
type CameraUniforms struct {
	// InverseView transforms camera coordinates into world coordinates.
	InverseView mgl32.Mat4

	// View transforms world into camera-centered, 3D coordinates.
	View mgl32.Mat4

	// Projection transforms camera coords into clip coordinates.
	Projection mgl32.Mat4
}

// SetCamera sets the matrices from cam, recomputing them if needed.
func (cu *CameraUniforms) SetCamera(cam *xyz.Camera) {
	cu.InverseView = cam.InverseView()
	cu.View = cam.View()
	cu.Projection = cam.Projection()
}

// Frame holds the per frame camera uniform buffer bound to CameraBinding.
// All programs of the pipeline read the same block, so one Frame is
// shared by every draw.
type Frame struct {
	buf gpu.TypedBuffer[CameraUniforms]
}

// NewFrame allocates the camera uniform buffer, initialized from a
// default [xyz.Camera], and binds it.
func NewFrame(dev gpu.Device) (*Frame, error) {
	buf, err := gpu.NewTypedBuffer[CameraUniforms](dev, 1, nil)
	if err != nil {
		return nil, err
	}
	buf.At(0).SetCamera(xyz.NewCamera())
	fr := &Frame{buf: buf}
	fr.Use()
	return fr, nil
}

// Uniforms returns the mapped camera block.
func (fr *Frame) Uniforms() *CameraUniforms {
	return fr.buf.At(0)
}

// SetCamera writes the camera matrices for the next draws.
func (fr *Frame) SetCamera(cam *xyz.Camera) {
	fr.Uniforms().SetCamera(cam)
}

// Buffer returns the current camera buffer, without adding a reference.
func (fr *Frame) Buffer() gpu.TypedBuffer[CameraUniforms] {
	return fr.buf
}

// SwapBuffer makes buf the camera buffer, taking a reference to it, and
// binds it. The previous buffer is returned along with its reference,
// which the caller must release.
func (fr *Frame) SwapBuffer(buf gpu.TypedBuffer[CameraUniforms]) gpu.TypedBuffer[CameraUniforms] {
	old := fr.buf.Take()
	fr.buf = buf.Ref()
	fr.Use()
	return old
}

// Use binds the camera buffer to CameraBinding.
func (fr *Frame) Use() {
	fr.buf.BindUniform(CameraBinding)
}

func (fr *Frame) Release() {
	fr.buf.Release()
}
