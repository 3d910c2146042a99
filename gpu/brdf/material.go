// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package brdf

import (
	"fmt"

	"cogentcore.org/glrender/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureUnit is the texture unit a material map is bound to.
// Bit n of [MaterialUniforms.ActiveTextures] is set when unit n has a texture.
type TextureUnit uint32

const (
	AlbedoUnit TextureUnit = iota
	RoughnessUnit
	MetallicUnit
	NormalUnit
	AOUnit

	// NumTextureUnits is the number of material texture units.
	NumTextureUnits
)

func (u TextureUnit) String() string {
	switch u {
	case AlbedoUnit:
		return "albedo"
	case RoughnessUnit:
		return "roughness"
	case MetallicUnit:
		return "metallic"
	case NormalUnit:
		return "normal"
	case AOUnit:
		return "ambient occlusion"
	}
	return fmt.Sprintf("TextureUnit(%d)", uint32(u))
}

// MaterialUniforms are the material factors with padding for direct
// uploading to the MaterialBinding block. Each factor multiplies the
// value read from the matching texture, or is used as is when that
// texture is absent.
type MaterialUniforms struct {
	// ColorMod multiplies the albedo color. Alpha determines transparency.
	ColorMod mgl32.Vec4

	RoughnessMod float32
	MetallicMod  float32
	AOMod        float32

	// NormalMod is how much the normal map bends the surface normal, in [0, 1].
	NormalMod float32

	// ActiveTextures is the bitfield of bound texture units, set by [Material.Use].
	ActiveTextures uint32
	_              [3]uint32
}

// DefaultMaterialUniforms returns factors that leave textures unchanged.
func DefaultMaterialUniforms() MaterialUniforms {
	return MaterialUniforms{
		ColorMod:     mgl32.Vec4{1, 1, 1, 1},
		RoughnessMod: 1,
		MetallicMod:  1,
		AOMod:        1,
		NormalMod:    1,
	}
}

// Material is a set of surface textures and the uniform buffer of
// their factors. It holds a reference to each texture it is given.
type Material struct {
	dev      gpu.Device
	buf      gpu.TypedBuffer[MaterialUniforms]
	textures [NumTextureUnits]gpu.Texture
}

// NewMaterial allocates a material with default factors and no textures.
func NewMaterial(dev gpu.Device) (*Material, error) {
	buf, err := gpu.NewTypedBuffer(dev, 1, []MaterialUniforms{DefaultMaterialUniforms()})
	if err != nil {
		return nil, err
	}
	return &Material{dev: dev, buf: buf}, nil
}

// Uniforms returns the mapped material block.
func (mt *Material) Uniforms() *MaterialUniforms {
	return mt.buf.At(0)
}

// SetTexture sets the texture for unit, releasing the one it replaces.
// The zero Texture clears the unit.
func (mt *Material) SetTexture(unit TextureUnit, tx gpu.Texture) {
	mt.textures[unit].Set(tx)
}

// Texture returns the texture of unit, without adding a reference.
func (mt *Material) Texture(unit TextureUnit) gpu.Texture {
	return mt.textures[unit]
}

// ActiveTextures returns the bitfield of units that have a texture.
func (mt *Material) ActiveTextures() uint32 {
	var bits uint32
	for i, tx := range mt.textures {
		if tx.Valid() {
			bits |= 1 << i
		}
	}
	return bits
}

// Use updates the active texture bitfield, binds every texture unit
// (clearing the ones without a texture) and binds the material buffer
// to MaterialBinding.
func (mt *Material) Use() {
	mt.Uniforms().ActiveTextures = mt.ActiveTextures()
	for i, tx := range mt.textures {
		if tx.Valid() {
			tx.Bind(uint32(i))
		} else {
			gpu.UnbindTextureUnit(mt.dev, uint32(i))
		}
	}
	mt.buf.BindUniform(MaterialBinding)
}

// Release releases the textures and the material buffer.
func (mt *Material) Release() {
	for i := range mt.textures {
		mt.textures[i].Release()
	}
	mt.buf.Release()
}
