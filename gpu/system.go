// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Device is the set of driver calls that the resource handles in this
// package are built on. Names are the driver's object names: 0 is never
// a live object and binding 0 unbinds.
//
// A Device is bound to the thread that owns the graphics context; none of
// its methods are safe for concurrent use, and neither are the handles
// created from it.
type Device interface {
	// CreateBuffer allocates immutable storage of size bytes, initialized
	// from data when non-nil, and maps the whole range persistently and
	// coherently for writing. The returned slice aliases the mapping.
	CreateBuffer(size int, data []byte) (name uint32, mapped []byte, err error)

	// DeleteBuffer unmaps and deletes the buffer.
	DeleteBuffer(name uint32)

	// BindUniformBuffer binds the buffer to a uniform buffer binding point.
	BindUniformBuffer(index, name uint32)

	// CreateShader compiles src as a shader of the given type. On failure
	// the shader object is deleted and the compile log is returned.
	CreateShader(typ ShaderType, src string) (uint32, error)
	DeleteShader(name uint32)

	// CreateProgram links the given shaders. On failure the program
	// object is deleted and the link log is returned.
	CreateProgram(shaders ...uint32) (uint32, error)
	DeleteProgram(name uint32)
	UseProgram(name uint32)

	// CreateTexture creates a texture and allocates immutable storage.
	CreateTexture(target TextureTarget, levels int, format InternalFormat, width, height, depth int) (uint32, error)
	DeleteTexture(name uint32)
	TextureSubImage2D(name uint32, level, x, y, width, height int, format PixelFormat, typ CompType, pixels []byte)
	GetTextureImage(name uint32, level int, format PixelFormat, typ CompType, buf []byte)
	GenerateMipmap(name uint32)
	BindTextureUnit(unit, name uint32)

	CreateVertexArray() (uint32, error)
	DeleteVertexArray(name uint32)
	VertexAttribFormat(vao, index uint32, size int, offset int)
	VertexAttribBinding(vao, index, binding uint32)
	EnableVertexAttrib(vao, index uint32)
	DisableVertexAttrib(vao, index uint32)
	VertexBuffer(vao, binding, buffer uint32, offset, stride int)
	ElementBuffer(vao, buffer uint32)
	BindingDivisor(vao, binding, divisor uint32)
	BindVertexArray(vao uint32)

	// DrawArrays issues an instanced non-indexed draw.
	DrawArrays(mode DrawMode, first, count, instances int)

	// DrawElements issues an instanced draw with uint32 indices
	// from the bound element buffer.
	DrawElements(mode DrawMode, count, instances int)
}
