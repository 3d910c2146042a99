// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// MaxVertexAttribs is the number of attribute indexes tracked by a
// [VertexArray]; it is the minimum the driver guarantees. Larger
// indexes panic.
const MaxVertexAttribs = 16

func checkAttrib(index uint32) {
	if index >= MaxVertexAttribs {
		panic(fmt.Sprintf("gpu: vertex attribute %d out of range [0, %d)", index, MaxVertexAttribs))
	}
}

// VertexArray is a uniquely owned vertex array object, together with
// the set of attribute indexes it has enabled. It is not shared: pass
// it by pointer and use [VertexArray.Take] to move ownership.
type VertexArray struct {
	dev    Device
	name   uint32
	active uint32
}

// NewVertexArray creates an empty vertex array object.
func NewVertexArray(dev Device) (*VertexArray, error) {
	name, err := dev.CreateVertexArray()
	if err != nil {
		return nil, fmt.Errorf("gpu: creating vertex array: %w", err)
	}
	return &VertexArray{dev: dev, name: name}, nil
}

func (va *VertexArray) Valid() bool { return va != nil && va.name != 0 }

func (va *VertexArray) Name() uint32 {
	if va == nil {
		return 0
	}
	return va.name
}

// Release deletes the vertex array object. It is safe to call more than once.
func (va *VertexArray) Release() {
	if va == nil || va.name == 0 {
		return
	}
	va.dev.DeleteVertexArray(va.name)
	va.name = 0
	va.active = 0
}

// Take moves the vertex array out of va, leaving it empty.
func (va *VertexArray) Take() *VertexArray {
	o := *va
	va.name = 0
	va.active = 0
	return &o
}

// ActiveAttribs returns the bitfield of enabled attribute indexes.
func (va *VertexArray) ActiveAttribs() uint32 { return va.active }

// IsAttribActive reports whether the attribute index is enabled.
func (va *VertexArray) IsAttribActive(index uint32) bool {
	if index >= MaxVertexAttribs {
		return false
	}
	return va.active&(1<<index) != 0
}

// EnableAttrib enables reading the attribute index from its buffer binding.
func (va *VertexArray) EnableAttrib(index uint32) {
	checkAttrib(index)
	va.active |= 1 << index
	va.dev.EnableVertexAttrib(va.name, index)
}

// DisableAttrib disables the attribute index; the shader then sees
// the current generic attribute value.
func (va *VertexArray) DisableAttrib(index uint32) {
	checkAttrib(index)
	va.active &^= 1 << index
	va.dev.DisableVertexAttrib(va.name, index)
}

// AttribFormat declares index as size float32 components at offset
// bytes from the start of each element, read from the given binding.
func (va *VertexArray) AttribFormat(index, binding uint32, size, offset int) {
	checkAttrib(index)
	va.dev.VertexAttribFormat(va.name, index, size, offset)
	va.dev.VertexAttribBinding(va.name, index, binding)
}

// BindVertexBuffer attaches buf to a buffer binding. The zero buffer detaches it.
func (va *VertexArray) BindVertexBuffer(binding uint32, buf Buffer, offset, stride int) {
	va.dev.VertexBuffer(va.name, binding, buf.Name(), offset, stride)
}

// BindElementBuffer attaches the index buffer. The zero buffer detaches it.
func (va *VertexArray) BindElementBuffer(buf Buffer) {
	va.dev.ElementBuffer(va.name, buf.Name())
}

// BindingDivisor sets the instance divisor of a buffer binding.
func (va *VertexArray) BindingDivisor(binding, divisor uint32) {
	va.dev.BindingDivisor(va.name, binding, divisor)
}

// Draw draws count vertices starting at first.
func (va *VertexArray) Draw(first, count int, mode DrawMode) {
	va.DrawInstanced(first, count, 1, mode)
}

// DrawInstanced draws count vertices starting at first, instances times.
func (va *VertexArray) DrawInstanced(first, count, instances int, mode DrawMode) {
	va.dev.BindVertexArray(va.name)
	va.dev.DrawArrays(mode, first, count, instances)
}

// DrawElements draws count indices of the element buffer, instances times.
func (va *VertexArray) DrawElements(count, instances int, mode DrawMode) {
	va.dev.BindVertexArray(va.name)
	va.dev.DrawElements(mode, count, instances)
}
