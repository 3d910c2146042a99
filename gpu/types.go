// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// The enum values below are the OpenGL numeric constants, so a [Device]
// backed by OpenGL can pass them through without translation.

// ShaderType is the pipeline stage a [Shader] is compiled for.
type ShaderType uint32

const (
	VertexShader         ShaderType = 0x8B31
	FragmentShader       ShaderType = 0x8B30
	GeometryShader       ShaderType = 0x8DD9
	TessControlShader    ShaderType = 0x8E88
	TessEvaluationShader ShaderType = 0x8E87
	ComputeShader        ShaderType = 0x91B9
)

// String returns the lower case stage name used in diagnostics.
func (st ShaderType) String() string {
	switch st {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	case GeometryShader:
		return "geometry"
	case TessControlShader:
		return "tesselation control"
	case TessEvaluationShader:
		return "tesselation evaluation"
	case ComputeShader:
		return "compute"
	}
	return "unknown"
}

// CompType is the scalar type of one pixel component.
type CompType uint32

const (
	UnsignedByte  CompType = 0x1401
	UnsignedShort CompType = 0x1403
	Float         CompType = 0x1406
)

// Size returns the number of bytes of one component, or 0 if unknown.
func (ct CompType) Size() int {
	switch ct {
	case UnsignedByte:
		return 1
	case UnsignedShort:
		return 2
	case Float:
		return 4
	}
	return 0
}

func (ct CompType) String() string {
	switch ct {
	case UnsignedByte:
		return "UNSIGNED_BYTE"
	case UnsignedShort:
		return "UNSIGNED_SHORT"
	case Float:
		return "FLOAT"
	}
	return "UNKNOWN"
}

// PixelFormat is the channel layout of client pixel data.
type PixelFormat uint32

const (
	UnknownFormat PixelFormat = 0
	Red           PixelFormat = 0x1903
	RG            PixelFormat = 0x8227
	RGB           PixelFormat = 0x1907
	RGBA          PixelFormat = 0x1908
)

var componentFormats = [...]PixelFormat{UnknownFormat, Red, RG, RGB, RGBA}

// FormatForComponents returns the [PixelFormat] holding n components,
// or [UnknownFormat] if n is not in 1..4.
func FormatForComponents(n int) PixelFormat {
	if n < 0 || n >= len(componentFormats) {
		return UnknownFormat
	}
	return componentFormats[n]
}

// Components returns the number of channels in the format.
func (pf PixelFormat) Components() int {
	for i, f := range componentFormats {
		if i > 0 && f == pf {
			return i
		}
	}
	return 0
}

// InternalFormat is the sized storage format of a texture.
type InternalFormat uint32

const (
	R8          InternalFormat = 0x8229
	RG8         InternalFormat = 0x822B
	RGB8        InternalFormat = 0x8051
	RGBA8       InternalFormat = 0x8058
	SRGB8       InternalFormat = 0x8C41
	SRGB8Alpha8 InternalFormat = 0x8C43
	R16         InternalFormat = 0x822A
	RGB16F      InternalFormat = 0x881B
	RGBA16F     InternalFormat = 0x881A
	RGBA32F     InternalFormat = 0x8814
)

// TextureTarget is the dimensionality of a texture object.
type TextureTarget uint32

const (
	Target1D      TextureTarget = 0x0DE0
	Target2D      TextureTarget = 0x0DE1
	Target3D      TextureTarget = 0x806F
	Target2DArray TextureTarget = 0x8C1A
)

// DrawMode is the primitive topology of a draw call.
type DrawMode uint32

const (
	Points        DrawMode = 0x0000
	Lines         DrawMode = 0x0001
	LineStrip     DrawMode = 0x0003
	Triangles     DrawMode = 0x0004
	TriangleStrip DrawMode = 0x0005
	TriangleFan   DrawMode = 0x0006
)
