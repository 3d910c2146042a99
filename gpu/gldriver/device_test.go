// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gldriver

import (
	"testing"

	"cogentcore.org/glrender/gpu"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stretchr/testify/assert"
)

// The gpu enums are passed to OpenGL unchanged.
func TestEnumValues(t *testing.T) {
	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"VertexShader", uint32(gpu.VertexShader), gl.VERTEX_SHADER},
		{"FragmentShader", uint32(gpu.FragmentShader), gl.FRAGMENT_SHADER},
		{"GeometryShader", uint32(gpu.GeometryShader), gl.GEOMETRY_SHADER},
		{"TessControlShader", uint32(gpu.TessControlShader), gl.TESS_CONTROL_SHADER},
		{"TessEvaluationShader", uint32(gpu.TessEvaluationShader), gl.TESS_EVALUATION_SHADER},
		{"ComputeShader", uint32(gpu.ComputeShader), gl.COMPUTE_SHADER},

		{"UnsignedByte", uint32(gpu.UnsignedByte), gl.UNSIGNED_BYTE},
		{"UnsignedShort", uint32(gpu.UnsignedShort), gl.UNSIGNED_SHORT},
		{"Float", uint32(gpu.Float), gl.FLOAT},

		{"Red", uint32(gpu.Red), gl.RED},
		{"RG", uint32(gpu.RG), gl.RG},
		{"RGB", uint32(gpu.RGB), gl.RGB},
		{"RGBA", uint32(gpu.RGBA), gl.RGBA},

		{"R8", uint32(gpu.R8), gl.R8},
		{"RG8", uint32(gpu.RG8), gl.RG8},
		{"RGB8", uint32(gpu.RGB8), gl.RGB8},
		{"RGBA8", uint32(gpu.RGBA8), gl.RGBA8},
		{"SRGB8", uint32(gpu.SRGB8), gl.SRGB8},
		{"SRGB8Alpha8", uint32(gpu.SRGB8Alpha8), gl.SRGB8_ALPHA8},
		{"R16", uint32(gpu.R16), gl.R16},
		{"RGB16F", uint32(gpu.RGB16F), gl.RGB16F},
		{"RGBA16F", uint32(gpu.RGBA16F), gl.RGBA16F},
		{"RGBA32F", uint32(gpu.RGBA32F), gl.RGBA32F},

		{"Target1D", uint32(gpu.Target1D), gl.TEXTURE_1D},
		{"Target2D", uint32(gpu.Target2D), gl.TEXTURE_2D},
		{"Target3D", uint32(gpu.Target3D), gl.TEXTURE_3D},
		{"Target2DArray", uint32(gpu.Target2DArray), gl.TEXTURE_2D_ARRAY},

		{"Points", uint32(gpu.Points), gl.POINTS},
		{"Lines", uint32(gpu.Lines), gl.LINES},
		{"LineStrip", uint32(gpu.LineStrip), gl.LINE_STRIP},
		{"Triangles", uint32(gpu.Triangles), gl.TRIANGLES},
		{"TriangleStrip", uint32(gpu.TriangleStrip), gl.TRIANGLE_STRIP},
		{"TriangleFan", uint32(gpu.TriangleFan), gl.TRIANGLE_FAN},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got, tt.name)
	}
}
