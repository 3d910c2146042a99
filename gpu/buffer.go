// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"unsafe"
)

type bufferObject struct {
	refs
	dev  Device
	name uint32
	data []byte
}

// Buffer is a shared handle to a persistently mapped GPU buffer.
// Writes to [Buffer.Bytes] are visible to the device without any
// explicit flush. The zero Buffer is valid and refers to nothing.
//
// Copying a Buffer value does not add a reference; use [Buffer.Ref]
// for a second owner, and [Buffer.Release] once per owner.
type Buffer struct {
	obj *bufferObject
}

// NewBuffer allocates size bytes of mapped storage, initialized from
// initial when non-nil. If initial is shorter than size the rest is zero.
func NewBuffer(dev Device, size int, initial []byte) (Buffer, error) {
	if size <= 0 {
		return Buffer{}, fmt.Errorf("gpu: buffer size must be positive, got %d", size)
	}
	if initial != nil && len(initial) < size {
		pad := make([]byte, size)
		copy(pad, initial)
		initial = pad
	} else if len(initial) > size {
		initial = initial[:size]
	}
	name, data, err := dev.CreateBuffer(size, initial)
	if err != nil {
		return Buffer{}, fmt.Errorf("gpu: creating %d byte buffer: %w", size, err)
	}
	ob := &bufferObject{dev: dev, name: name, data: data}
	ob.init(func() { dev.DeleteBuffer(name) })
	return Buffer{obj: ob}, nil
}

// Valid reports whether the handle refers to a live buffer.
func (b Buffer) Valid() bool { return b.obj != nil }

// Name returns the driver name of the buffer, 0 for the zero handle.
func (b Buffer) Name() uint32 {
	if b.obj == nil {
		return 0
	}
	return b.obj.name
}

// Size returns the size of the buffer in bytes.
func (b Buffer) Size() int {
	if b.obj == nil {
		return 0
	}
	return len(b.obj.data)
}

// Bytes returns the mapped storage of the buffer.
func (b Buffer) Bytes() []byte {
	if b.obj == nil {
		return nil
	}
	return b.obj.data
}

// Refs returns the number of live handles to the buffer.
func (b Buffer) Refs() int {
	if b.obj == nil {
		return 0
	}
	return b.obj.count
}

// Ref returns a new owning handle to the same buffer.
func (b Buffer) Ref() Buffer {
	if b.obj != nil {
		b.obj.acquire()
	}
	return b
}

// Release drops this handle's reference and zeroes it. The buffer is
// unmapped and deleted when the last reference is released.
func (b *Buffer) Release() {
	if b.obj == nil {
		return
	}
	ob := b.obj
	b.obj = nil
	ob.release()
}

// Set makes b refer to the same buffer as o, releasing the buffer it
// previously referred to.
func (b *Buffer) Set(o Buffer) {
	if b.obj == o.obj {
		return
	}
	b.Release()
	*b = o.Ref()
}

// Take moves the reference out of b, leaving it zero.
func (b *Buffer) Take() Buffer {
	o := *b
	b.obj = nil
	return o
}

// BindUniform binds the buffer to the given uniform buffer binding point.
// It does nothing for the zero handle, which has no device.
func (b Buffer) BindUniform(index uint32) {
	if b.obj == nil {
		return
	}
	b.obj.dev.BindUniformBuffer(index, b.obj.name)
}

// TypedBuffer is a [Buffer] holding an array of T, which must be a
// plain data type with the memory layout the shader expects.
type TypedBuffer[T any] struct {
	Buffer
}

// NewTypedBuffer allocates a buffer for count elements, initialized
// from initial (which may be shorter than count, or nil).
func NewTypedBuffer[T any](dev Device, count int, initial []T) (TypedBuffer[T], error) {
	var zero T
	esz := int(unsafe.Sizeof(zero))
	if esz == 0 {
		return TypedBuffer[T]{}, fmt.Errorf("gpu: typed buffer of zero sized %T", zero)
	}
	if len(initial) > count {
		return TypedBuffer[T]{}, fmt.Errorf("gpu: %d initial elements exceed buffer count %d", len(initial), count)
	}
	var init []byte
	if len(initial) > 0 {
		init = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(initial))), len(initial)*esz)
	}
	buf, err := NewBuffer(dev, count*esz, init)
	if err != nil {
		return TypedBuffer[T]{}, err
	}
	return TypedBuffer[T]{Buffer: buf}, nil
}

// Count returns the number of elements in the buffer.
func (tb TypedBuffer[T]) Count() int {
	var zero T
	return tb.Size() / int(unsafe.Sizeof(zero))
}

// Slice returns the mapped elements. It is nil for the zero handle.
func (tb TypedBuffer[T]) Slice() []T {
	n := tb.Count()
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&tb.obj.data[0])), n)
}

// At returns a pointer to element i of the mapped storage.
func (tb TypedBuffer[T]) At(i int) *T {
	return &tb.Slice()[i]
}

// Ref returns a new owning handle to the same buffer.
func (tb TypedBuffer[T]) Ref() TypedBuffer[T] {
	return TypedBuffer[T]{Buffer: tb.Buffer.Ref()}
}

// Set makes tb refer to the same buffer as o.
func (tb *TypedBuffer[T]) Set(o TypedBuffer[T]) {
	tb.Buffer.Set(o.Buffer)
}

// Take moves the reference out of tb, leaving it zero.
func (tb *TypedBuffer[T]) Take() TypedBuffer[T] {
	return TypedBuffer[T]{Buffer: tb.Buffer.Take()}
}
