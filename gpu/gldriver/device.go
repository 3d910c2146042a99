// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gldriver implements [gpu.Device] on OpenGL 4.6 with direct
// state access, and creates the GLFW window and context it runs in.
//
// All methods must be called on the thread the context is current on.
package gldriver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"cogentcore.org/glrender/gpu"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var _ gpu.Device = (*Device)(nil)

// bufferFlags are the storage and mapping flags of every buffer:
// persistently and coherently mapped for reading and writing.
const bufferFlags = gl.MAP_READ_BIT | gl.MAP_WRITE_BIT | gl.MAP_PERSISTENT_BIT | gl.MAP_COHERENT_BIT

// Device is the OpenGL [gpu.Device] of the current context.
type Device struct{}

// NewDevice loads the OpenGL functions of the current context.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldriver: initializing OpenGL: %w", err)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	slog.Info("gldriver: context", "version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{}, nil
}

func ptr(b []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(b))
}

func (d *Device) CreateBuffer(size int, data []byte) (uint32, []byte, error) {
	var name uint32
	gl.CreateBuffers(1, &name)
	if name == 0 {
		return 0, nil, errors.New("glCreateBuffers returned no buffer")
	}
	gl.NamedBufferStorage(name, size, ptr(data), bufferFlags)
	p := gl.MapNamedBufferRange(name, 0, size, bufferFlags)
	if p == nil {
		gl.DeleteBuffers(1, &name)
		return 0, nil, fmt.Errorf("mapping buffer %d of %d bytes failed", name, size)
	}
	return name, unsafe.Slice((*byte)(p), size), nil
}

func (d *Device) DeleteBuffer(name uint32) {
	gl.UnmapNamedBuffer(name)
	gl.DeleteBuffers(1, &name)
}

func (d *Device) BindUniformBuffer(index, name uint32) {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, index, name)
}

// infoLog returns the info log of a shader or program.
func infoLog(name uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var n int32
	getiv(name, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return "no info log"
	}
	buf := make([]byte, n)
	getLog(name, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

func (d *Device) CreateShader(typ gpu.ShaderType, src string) (uint32, error) {
	sh := gl.CreateShader(uint32(typ))
	if sh == 0 {
		return 0, fmt.Errorf("glCreateShader(%s) returned no shader", typ)
	}
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(sh, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(sh)
		return 0, errors.New(log)
	}
	return sh, nil
}

func (d *Device) DeleteShader(name uint32) {
	gl.DeleteShader(name)
}

// CreateProgram links the shaders and detaches them again, so deleting
// a shader frees it even while the program lives.
func (d *Device) CreateProgram(shaders ...uint32) (uint32, error) {
	prog := gl.CreateProgram()
	if prog == 0 {
		return 0, errors.New("glCreateProgram returned no program")
	}
	for _, sh := range shaders {
		gl.AttachShader(prog, sh)
	}
	gl.LinkProgram(prog)
	for _, sh := range shaders {
		gl.DetachShader(prog, sh)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := infoLog(prog, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(prog)
		return 0, errors.New(log)
	}
	return prog, nil
}

func (d *Device) DeleteProgram(name uint32) {
	gl.DeleteProgram(name)
}

func (d *Device) UseProgram(name uint32) {
	gl.UseProgram(name)
}

func (d *Device) CreateTexture(target gpu.TextureTarget, levels int, format gpu.InternalFormat, w, h, depth int) (uint32, error) {
	var name uint32
	gl.CreateTextures(uint32(target), 1, &name)
	if name == 0 {
		return 0, errors.New("glCreateTextures returned no texture")
	}
	switch target {
	case gpu.Target1D:
		gl.TextureStorage1D(name, int32(levels), uint32(format), int32(w))
	case gpu.Target2D:
		gl.TextureStorage2D(name, int32(levels), uint32(format), int32(w), int32(h))
	case gpu.Target3D, gpu.Target2DArray:
		gl.TextureStorage3D(name, int32(levels), uint32(format), int32(w), int32(h), int32(depth))
	default:
		gl.DeleteTextures(1, &name)
		return 0, fmt.Errorf("unsupported texture target 0x%X", uint32(target))
	}
	minFilter := int32(gl.LINEAR)
	if levels > 1 {
		minFilter = gl.LINEAR_MIPMAP_LINEAR
	}
	gl.TextureParameteri(name, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TextureParameteri(name, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TextureParameteri(name, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TextureParameteri(name, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return name, nil
}

func (d *Device) DeleteTexture(name uint32) {
	gl.DeleteTextures(1, &name)
}

func (d *Device) TextureSubImage2D(name uint32, level, x, y, w, h int, format gpu.PixelFormat, typ gpu.CompType, pixels []byte) {
	gl.TextureSubImage2D(name, int32(level), int32(x), int32(y), int32(w), int32(h), uint32(format), uint32(typ), ptr(pixels))
}

func (d *Device) GetTextureImage(name uint32, level int, format gpu.PixelFormat, typ gpu.CompType, buf []byte) {
	gl.GetTextureImage(name, int32(level), uint32(format), uint32(typ), int32(len(buf)), ptr(buf))
}

func (d *Device) GenerateMipmap(name uint32) {
	gl.GenerateTextureMipmap(name)
}

func (d *Device) BindTextureUnit(unit, name uint32) {
	gl.BindTextureUnit(unit, name)
}

func (d *Device) CreateVertexArray() (uint32, error) {
	var name uint32
	gl.CreateVertexArrays(1, &name)
	if name == 0 {
		return 0, errors.New("glCreateVertexArrays returned no vertex array")
	}
	return name, nil
}

func (d *Device) DeleteVertexArray(name uint32) {
	gl.DeleteVertexArrays(1, &name)
}

func (d *Device) VertexAttribFormat(vao, index uint32, size, offset int) {
	gl.VertexArrayAttribFormat(vao, index, int32(size), gl.FLOAT, false, uint32(offset))
}

func (d *Device) VertexAttribBinding(vao, index, binding uint32) {
	gl.VertexArrayAttribBinding(vao, index, binding)
}

func (d *Device) EnableVertexAttrib(vao, index uint32) {
	gl.EnableVertexArrayAttrib(vao, index)
}

func (d *Device) DisableVertexAttrib(vao, index uint32) {
	gl.DisableVertexArrayAttrib(vao, index)
}

func (d *Device) VertexBuffer(vao, binding, buffer uint32, offset, stride int) {
	gl.VertexArrayVertexBuffer(vao, binding, buffer, offset, int32(stride))
}

func (d *Device) ElementBuffer(vao, buffer uint32) {
	gl.VertexArrayElementBuffer(vao, buffer)
}

func (d *Device) BindingDivisor(vao, binding, divisor uint32) {
	gl.VertexArrayBindingDivisor(vao, binding, divisor)
}

func (d *Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Device) DrawArrays(mode gpu.DrawMode, first, count, instances int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (d *Device) DrawElements(mode gpu.DrawMode, count, instances int) {
	gl.DrawElementsInstanced(uint32(mode), int32(count), gl.UNSIGNED_INT, nil, int32(instances))
}

// EnableDepthAndCulling enables depth testing with LESS, and culling
// of back faces with counter-clockwise front faces.
func (d *Device) EnableDepthAndCulling() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
}

// SetClearColor sets the color [Device.Clear] fills the frame with.
func (d *Device) SetClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

// Clear clears the color and depth buffers.
func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Viewport sets the viewport to the given framebuffer size.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// EnableDebugOutput routes driver debug messages to slog: errors at
// error level, everything else except notifications at debug level.
func (d *Device) EnableDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	gl.DebugMessageCallback(debugMessage, nil)
}

func debugMessage(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
	switch {
	case gltype == gl.DEBUG_TYPE_ERROR:
		slog.Error("gl: error", "id", id, "severity", fmt.Sprintf("0x%X", severity), "msg", message)
	case severity != gl.DEBUG_SEVERITY_NOTIFICATION:
		slog.Debug("gl: debug", "type", fmt.Sprintf("0x%X", gltype), "id", id, "msg", message)
	}
}
