// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brdf

import (
	"cogentcore.org/glrender/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// LightUniforms is the directional light, with padding for direct
// uploading to the LightBinding block.
type LightUniforms struct {
	// Ambient is the color added to every surface regardless of orientation.
	Ambient mgl32.Vec3
	_       float32

	// Color of the directional light.
	Color mgl32.Vec3
	_     float32

	// ViewDirection is the direction the light travels, in camera coordinates.
	ViewDirection mgl32.Vec3
	_             float32
}

// Lighting owns the light uniform buffer.
type Lighting struct {
	buf gpu.TypedBuffer[LightUniforms]
}

// NewLighting allocates a light buffer with a white light shining down -Z
// and no ambient light.
func NewLighting(dev gpu.Device) (*Lighting, error) {
	buf, err := gpu.NewTypedBuffer(dev, 1, []LightUniforms{{
		Color:         mgl32.Vec3{1, 1, 1},
		ViewDirection: mgl32.Vec3{0, 0, -1},
	}})
	if err != nil {
		return nil, err
	}
	return &Lighting{buf: buf}, nil
}

// Uniforms returns the mapped light block.
func (lt *Lighting) Uniforms() *LightUniforms {
	return lt.buf.At(0)
}

func (lt *Lighting) SetAmbient(c mgl32.Vec3) { lt.Uniforms().Ambient = c }

func (lt *Lighting) SetColor(c mgl32.Vec3) { lt.Uniforms().Color = c }

// SetViewDirection sets the light direction in camera coordinates.
func (lt *Lighting) SetViewDirection(dir mgl32.Vec3) {
	lt.Uniforms().ViewDirection = dir.Normalize()
}

// SetWorldDirection sets the light direction from world coordinates,
// rotating it by the given view matrix.
func (lt *Lighting) SetWorldDirection(dir mgl32.Vec3, view mgl32.Mat4) {
	lt.SetViewDirection(view.Mat3().Mul3x1(dir))
}

// Use binds the light buffer to LightBinding.
func (lt *Lighting) Use() {
	lt.buf.BindUniform(LightBinding)
}

func (lt *Lighting) Release() {
	lt.buf.Release()
}
