// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides an in-memory [gpu.Device] that records
// the calls made to it, for testing code built on package gpu without
// a graphics context.
package gputest

import (
	"errors"
	"fmt"
	"strings"

	"cogentcore.org/glrender/gpu"
)

var _ gpu.Device = (*Device)(nil)

// Kind is the category of a driver object.
type Kind int

const (
	Buffer Kind = iota
	Shader
	Program
	Texture
	VertexArray
)

func (k Kind) String() string {
	return [...]string{"buffer", "shader", "program", "texture", "vertex array"}[k]
}

// Attrib is the recorded state of one vertex attribute.
type Attrib struct {
	Enabled bool
	Size    int
	Offset  int
	Binding uint32
}

// VertexBinding is the recorded state of one vertex buffer binding.
type VertexBinding struct {
	Buffer  uint32
	Offset  int
	Stride  int
	Divisor uint32
}

// VAOState is the recorded state of a vertex array object.
type VAOState struct {
	Attribs  map[uint32]*Attrib
	Bindings map[uint32]*VertexBinding
	Elements uint32
}

// Draw is one recorded draw call.
type Draw struct {
	VAO       uint32
	Program   uint32
	Indexed   bool
	Mode      gpu.DrawMode
	First     int
	Count     int
	Instances int
}

// Device is a fake [gpu.Device]. Names are allocated from one counter
// across all kinds, so a name identifies an object uniquely.
// Set FailCompile or FailLink to make shader creation fail; a source
// containing "#error" also fails to compile.
type Device struct {
	FailCompile bool
	FailLink    bool
	FailBuffer  bool

	next    uint32
	live    map[uint32]Kind
	deleted map[uint32]int

	Buffers  map[uint32][]byte
	Shaders  map[uint32]gpu.ShaderType
	Programs map[uint32][]uint32
	Textures map[uint32]gpu.TextureInfo
	Pixels   map[uint32]map[int][]byte
	VAOs     map[uint32]*VAOState

	Uniforms     map[uint32]uint32
	TextureUnits map[uint32]uint32
	Mipmaps      map[uint32]int
	CurrentProg  uint32
	CurrentVAO   uint32
	Draws        []Draw
}

// NewDevice returns an empty fake device.
func NewDevice() *Device {
	return &Device{
		live:         map[uint32]Kind{},
		deleted:      map[uint32]int{},
		Buffers:      map[uint32][]byte{},
		Shaders:      map[uint32]gpu.ShaderType{},
		Programs:     map[uint32][]uint32{},
		Textures:     map[uint32]gpu.TextureInfo{},
		Pixels:       map[uint32]map[int][]byte{},
		VAOs:         map[uint32]*VAOState{},
		Uniforms:     map[uint32]uint32{},
		TextureUnits: map[uint32]uint32{},
		Mipmaps:      map[uint32]int{},
	}
}

func (d *Device) alloc(k Kind) uint32 {
	d.next++
	d.live[d.next] = k
	return d.next
}

func (d *Device) free(name uint32, k Kind) {
	if name == 0 {
		return
	}
	if got, ok := d.live[name]; !ok || got != k {
		panic(fmt.Sprintf("gputest: delete of %v %d that is not live", k, name))
	}
	delete(d.live, name)
	d.deleted[name]++
}

// Live returns the number of live objects of the given kind.
func (d *Device) Live(k Kind) int {
	n := 0
	for _, lk := range d.live {
		if lk == k {
			n++
		}
	}
	return n
}

// IsLive reports whether the named object exists.
func (d *Device) IsLive(name uint32) bool {
	_, ok := d.live[name]
	return ok
}

// Deleted returns how many times the named object was deleted.
func (d *Device) Deleted(name uint32) int {
	return d.deleted[name]
}

func (d *Device) CreateBuffer(size int, data []byte) (uint32, []byte, error) {
	if d.FailBuffer {
		return 0, nil, errors.New("buffer storage failed")
	}
	name := d.alloc(Buffer)
	mem := make([]byte, size)
	copy(mem, data)
	d.Buffers[name] = mem
	return name, mem, nil
}

func (d *Device) DeleteBuffer(name uint32) {
	d.free(name, Buffer)
	delete(d.Buffers, name)
}

func (d *Device) BindUniformBuffer(index, name uint32) {
	d.Uniforms[index] = name
}

func (d *Device) CreateShader(typ gpu.ShaderType, src string) (uint32, error) {
	if d.FailCompile || strings.Contains(src, "#error") {
		return 0, fmt.Errorf("0:1(1): error: syntax error in %s source", typ)
	}
	name := d.alloc(Shader)
	d.Shaders[name] = typ
	return name, nil
}

func (d *Device) DeleteShader(name uint32) {
	d.free(name, Shader)
	delete(d.Shaders, name)
}

func (d *Device) CreateProgram(shaders ...uint32) (uint32, error) {
	for _, s := range shaders {
		if k, ok := d.live[s]; !ok || k != Shader {
			return 0, fmt.Errorf("error: shader %d is not a shader object", s)
		}
	}
	if d.FailLink {
		return 0, errors.New("error: linking failed")
	}
	name := d.alloc(Program)
	d.Programs[name] = append([]uint32(nil), shaders...)
	return name, nil
}

func (d *Device) DeleteProgram(name uint32) {
	d.free(name, Program)
	delete(d.Programs, name)
}

func (d *Device) UseProgram(name uint32) {
	d.CurrentProg = name
}

func (d *Device) CreateTexture(target gpu.TextureTarget, levels int, format gpu.InternalFormat, w, h, depth int) (uint32, error) {
	name := d.alloc(Texture)
	d.Textures[name] = gpu.TextureInfo{Name: name, Target: target, InternalFormat: format, Width: w, Height: h, Depth: depth, Levels: levels}
	d.Pixels[name] = map[int][]byte{}
	return name, nil
}

func (d *Device) DeleteTexture(name uint32) {
	d.free(name, Texture)
	delete(d.Textures, name)
	delete(d.Pixels, name)
}

// TextureSubImage2D stores the uploaded bytes for the level, ignoring the
// region offset, so tests can inspect the last upload.
func (d *Device) TextureSubImage2D(name uint32, level, x, y, w, h int, format gpu.PixelFormat, typ gpu.CompType, pixels []byte) {
	n := w * h * format.Components() * typ.Size()
	d.Pixels[name][level] = append([]byte(nil), pixels[:n]...)
}

func (d *Device) GetTextureImage(name uint32, level int, format gpu.PixelFormat, typ gpu.CompType, buf []byte) {
	copy(buf, d.Pixels[name][level])
}

func (d *Device) GenerateMipmap(name uint32) {
	d.Mipmaps[name]++
}

func (d *Device) BindTextureUnit(unit, name uint32) {
	d.TextureUnits[unit] = name
}

func (d *Device) CreateVertexArray() (uint32, error) {
	name := d.alloc(VertexArray)
	d.VAOs[name] = &VAOState{Attribs: map[uint32]*Attrib{}, Bindings: map[uint32]*VertexBinding{}}
	return name, nil
}

func (d *Device) DeleteVertexArray(name uint32) {
	d.free(name, VertexArray)
	delete(d.VAOs, name)
}

func (d *Device) attrib(vao, index uint32) *Attrib {
	st := d.VAOs[vao]
	a, ok := st.Attribs[index]
	if !ok {
		a = &Attrib{}
		st.Attribs[index] = a
	}
	return a
}

func (d *Device) binding(vao, binding uint32) *VertexBinding {
	st := d.VAOs[vao]
	b, ok := st.Bindings[binding]
	if !ok {
		b = &VertexBinding{}
		st.Bindings[binding] = b
	}
	return b
}

func (d *Device) VertexAttribFormat(vao, index uint32, size, offset int) {
	a := d.attrib(vao, index)
	a.Size, a.Offset = size, offset
}

func (d *Device) VertexAttribBinding(vao, index, binding uint32) {
	d.attrib(vao, index).Binding = binding
}

func (d *Device) EnableVertexAttrib(vao, index uint32) {
	d.attrib(vao, index).Enabled = true
}

func (d *Device) DisableVertexAttrib(vao, index uint32) {
	d.attrib(vao, index).Enabled = false
}

func (d *Device) VertexBuffer(vao, binding, buffer uint32, offset, stride int) {
	b := d.binding(vao, binding)
	b.Buffer, b.Offset, b.Stride = buffer, offset, stride
}

func (d *Device) ElementBuffer(vao, buffer uint32) {
	d.VAOs[vao].Elements = buffer
}

func (d *Device) BindingDivisor(vao, binding, divisor uint32) {
	d.binding(vao, binding).Divisor = divisor
}

func (d *Device) BindVertexArray(vao uint32) {
	d.CurrentVAO = vao
}

func (d *Device) DrawArrays(mode gpu.DrawMode, first, count, instances int) {
	d.Draws = append(d.Draws, Draw{VAO: d.CurrentVAO, Program: d.CurrentProg, Mode: mode, First: first, Count: count, Instances: instances})
}

func (d *Device) DrawElements(mode gpu.DrawMode, count, instances int) {
	d.Draws = append(d.Draws, Draw{VAO: d.CurrentVAO, Program: d.CurrentProg, Indexed: true, Mode: mode, Count: count, Instances: instances})
}
