// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"unsafe"

	"cogentcore.org/glrender/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// InstanceData is the per instance input of a mesh draw: the model
// matrix and its inverse, as a [Transform] stores them.
type InstanceData struct {
	Matrix  mgl32.Mat4
	Inverse mgl32.Mat4
}

// Vertex buffer bindings of a [MeshVAO].
const (
	PositionBinding uint32 = iota
	ColorBinding
	UVBinding
	NormalBinding
	TangentBinding
	InstanceBinding
)

// Vertex attribute indexes of a [MeshVAO], matching the layout
// locations of the vertex shader.
const (
	PositionAttrib uint32 = iota
	ColorAttrib
	UVAttrib
	NormalAttrib
	TangentAttrib

	// MatrixAttrib is the first of the four model matrix columns.
	MatrixAttrib

	// InverseAttrib is the first of the four inverse model matrix columns.
	InverseAttrib = MatrixAttrib + 4
)

// MeshVAO is a [gpu.VertexArray] with the attribute layout of a [Mesh]:
// one buffer binding per vertex attribute, and one instance binding
// with divisor 1 holding [InstanceData].
// Position and the instance matrices are always enabled.
type MeshVAO struct {
	*gpu.VertexArray
}

// NewMeshVAO creates a vertex array with the mesh attribute layout.
func NewMeshVAO(dev gpu.Device) (MeshVAO, error) {
	va, err := gpu.NewVertexArray(dev)
	if err != nil {
		return MeshVAO{}, err
	}
	va.AttribFormat(PositionAttrib, PositionBinding, 3, 0)
	va.AttribFormat(ColorAttrib, ColorBinding, 4, 0)
	va.AttribFormat(UVAttrib, UVBinding, 2, 0)
	va.AttribFormat(NormalAttrib, NormalBinding, 3, 0)
	va.AttribFormat(TangentAttrib, TangentBinding, 3, 0)
	va.EnableAttrib(PositionAttrib)

	col := int(unsafe.Sizeof(mgl32.Vec4{}))
	inv := int(unsafe.Offsetof(InstanceData{}.Inverse))
	for i := range uint32(4) {
		va.AttribFormat(MatrixAttrib+i, InstanceBinding, 4, int(i)*col)
		va.AttribFormat(InverseAttrib+i, InstanceBinding, 4, inv+int(i)*col)
		va.EnableAttrib(MatrixAttrib + i)
		va.EnableAttrib(InverseAttrib + i)
	}
	va.BindingDivisor(InstanceBinding, 1)
	return MeshVAO{VertexArray: va}, nil
}

// Mesh is a set of vertices with optional per vertex colors, normals,
// tangents and texture coordinates, each in its own shared buffer, and
// optional element indexes. The buffers are mapped, so their contents
// can be edited in place through [gpu.TypedBuffer.Slice].
type Mesh struct {
	Vertices gpu.TypedBuffer[mgl32.Vec3]
	Colors   gpu.TypedBuffer[mgl32.Vec4]
	Normals  gpu.TypedBuffer[mgl32.Vec3]
	Tangents gpu.TypedBuffer[mgl32.Vec3]
	UVs      gpu.TypedBuffer[mgl32.Vec2]
	Elements gpu.TypedBuffer[uint32]

	// Mode is the primitive topology drawn, Triangles by default.
	Mode gpu.DrawMode

	dev gpu.Device
	vao MeshVAO
}

// NewMesh creates a mesh from the given vertex positions.
func NewMesh(dev gpu.Device, verts []mgl32.Vec3) (*Mesh, error) {
	if len(verts) == 0 {
		return nil, fmt.Errorf("xyz: mesh needs vertices")
	}
	vao, err := NewMeshVAO(dev)
	if err != nil {
		return nil, err
	}
	vb, err := gpu.NewTypedBuffer(dev, len(verts), verts)
	if err != nil {
		vao.Release()
		return nil, err
	}
	ms := &Mesh{Vertices: vb, Mode: gpu.Triangles, dev: dev, vao: vao}
	vao.BindVertexBuffer(PositionBinding, vb.Buffer, 0, vertexStride[mgl32.Vec3]())
	return ms, nil
}

// VAO returns the vertex array of the mesh.
func (ms *Mesh) VAO() MeshVAO { return ms.vao }

// VertexCount returns the number of vertices.
func (ms *Mesh) VertexCount() int { return ms.Vertices.Count() }

func vertexStride[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// initAttrib replaces dst with a buffer of one T per vertex, initialized
// from initial, and reads attribute index from it.
func initAttrib[T any](ms *Mesh, dst *gpu.TypedBuffer[T], index, binding uint32, initial []T) error {
	tb, err := gpu.NewTypedBuffer(ms.dev, ms.VertexCount(), initial)
	if err != nil {
		return err
	}
	dst.Release()
	*dst = tb
	ms.vao.BindVertexBuffer(binding, tb.Buffer, 0, vertexStride[T]())
	ms.vao.EnableAttrib(index)
	return nil
}

func deinitAttrib[T any](ms *Mesh, dst *gpu.TypedBuffer[T], index, binding uint32) {
	ms.vao.DisableAttrib(index)
	ms.vao.BindVertexBuffer(binding, gpu.Buffer{}, 0, vertexStride[T]())
	dst.Release()
}

// InitColors adds per vertex colors, initialized from initial when non-nil.
func (ms *Mesh) InitColors(initial []mgl32.Vec4) error {
	return initAttrib(ms, &ms.Colors, ColorAttrib, ColorBinding, initial)
}

func (ms *Mesh) DeinitColors() {
	deinitAttrib(ms, &ms.Colors, ColorAttrib, ColorBinding)
}

// InitNormals adds per vertex normals, initialized from initial when non-nil.
func (ms *Mesh) InitNormals(initial []mgl32.Vec3) error {
	return initAttrib(ms, &ms.Normals, NormalAttrib, NormalBinding, initial)
}

func (ms *Mesh) DeinitNormals() {
	deinitAttrib(ms, &ms.Normals, NormalAttrib, NormalBinding)
}

// InitTangents adds per vertex tangents, initialized from initial when non-nil.
func (ms *Mesh) InitTangents(initial []mgl32.Vec3) error {
	return initAttrib(ms, &ms.Tangents, TangentAttrib, TangentBinding, initial)
}

func (ms *Mesh) DeinitTangents() {
	deinitAttrib(ms, &ms.Tangents, TangentAttrib, TangentBinding)
}

// InitUVs adds per vertex texture coordinates, initialized from initial when non-nil.
func (ms *Mesh) InitUVs(initial []mgl32.Vec2) error {
	return initAttrib(ms, &ms.UVs, UVAttrib, UVBinding, initial)
}

func (ms *Mesh) DeinitUVs() {
	deinitAttrib(ms, &ms.UVs, UVAttrib, UVBinding)
}

// InitElements adds count element indexes, initialized from initial
// when non-nil. Draws are then indexed.
func (ms *Mesh) InitElements(count int, initial []uint32) error {
	tb, err := gpu.NewTypedBuffer(ms.dev, count, initial)
	if err != nil {
		return err
	}
	ms.Elements.Release()
	ms.Elements = tb
	ms.vao.BindElementBuffer(tb.Buffer)
	return nil
}

func (ms *Mesh) DeinitElements() {
	ms.vao.BindElementBuffer(gpu.Buffer{})
	ms.Elements.Release()
}

// Draw draws one instance of the mesh per element of instances.
func (ms *Mesh) Draw(instances gpu.TypedBuffer[InstanceData]) {
	n := instances.Count()
	if n == 0 {
		return
	}
	ms.vao.BindVertexBuffer(InstanceBinding, instances.Buffer, 0, vertexStride[InstanceData]())
	if ms.Elements.Valid() {
		ms.vao.DrawElements(ms.Elements.Count(), n, ms.Mode)
		return
	}
	ms.vao.DrawInstanced(0, ms.VertexCount(), n, ms.Mode)
}

// Release releases the vertex array and this mesh's references to its buffers.
func (ms *Mesh) Release() {
	ms.vao.Release()
	ms.Vertices.Release()
	ms.Colors.Release()
	ms.Normals.Release()
	ms.Tangents.Release()
	ms.UVs.Release()
	ms.Elements.Release()
}
