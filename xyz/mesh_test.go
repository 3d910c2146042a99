// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var triangle = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}

func TestMeshVAOLayout(t *testing.T) {
	dev := gputest.NewDevice()
	vao, err := NewMeshVAO(dev)
	require.NoError(t, err)
	defer vao.Release()
	st := dev.VAOs[vao.Name()]

	assert.Equal(t, &gputest.Attrib{Enabled: true, Size: 3, Binding: PositionBinding}, st.Attribs[PositionAttrib])
	assert.Equal(t, &gputest.Attrib{Size: 4, Binding: ColorBinding}, st.Attribs[ColorAttrib])
	assert.Equal(t, &gputest.Attrib{Size: 2, Binding: UVBinding}, st.Attribs[UVAttrib])
	assert.Equal(t, &gputest.Attrib{Size: 3, Binding: NormalBinding}, st.Attribs[NormalAttrib])
	assert.Equal(t, &gputest.Attrib{Size: 3, Binding: TangentBinding}, st.Attribs[TangentAttrib])
	for i := range uint32(4) {
		assert.Equal(t, &gputest.Attrib{Enabled: true, Size: 4, Offset: int(i) * 16, Binding: InstanceBinding}, st.Attribs[MatrixAttrib+i])
		assert.Equal(t, &gputest.Attrib{Enabled: true, Size: 4, Offset: 64 + int(i)*16, Binding: InstanceBinding}, st.Attribs[InverseAttrib+i])
	}
	assert.Equal(t, uint32(1), st.Bindings[InstanceBinding].Divisor)
	assert.Equal(t, uint32(12), InverseAttrib+3)
	assert.Equal(t, uint32(0x1fe1), vao.ActiveAttribs())
}

func TestMeshAttributes(t *testing.T) {
	dev := gputest.NewDevice()
	ms, err := NewMesh(dev, triangle)
	require.NoError(t, err)
	defer ms.Release()
	st := dev.VAOs[ms.VAO().Name()]

	assert.Equal(t, 3, ms.VertexCount())
	assert.Equal(t, triangle, ms.Vertices.Slice())
	assert.Equal(t, &gputest.VertexBinding{Buffer: ms.Vertices.Name(), Stride: 12}, st.Bindings[PositionBinding])

	require.NoError(t, ms.InitNormals([]mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}))
	require.NoError(t, ms.InitUVs(nil))
	require.NoError(t, ms.InitTangents(nil))
	require.NoError(t, ms.InitColors([]mgl32.Vec4{{1, 0, 0, 1}}))

	assert.Equal(t, &gputest.VertexBinding{Buffer: ms.Normals.Name(), Stride: 12}, st.Bindings[NormalBinding])
	assert.Equal(t, &gputest.VertexBinding{Buffer: ms.UVs.Name(), Stride: 8}, st.Bindings[UVBinding])
	assert.Equal(t, &gputest.VertexBinding{Buffer: ms.Tangents.Name(), Stride: 12}, st.Bindings[TangentBinding])
	assert.Equal(t, &gputest.VertexBinding{Buffer: ms.Colors.Name(), Stride: 16}, st.Bindings[ColorBinding])
	for _, a := range []uint32{NormalAttrib, UVAttrib, TangentAttrib, ColorAttrib} {
		assert.True(t, ms.VAO().IsAttribActive(a), "attrib %d", a)
	}
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, ms.Normals.Slice()[2])
	assert.Equal(t, []mgl32.Vec4{{1, 0, 0, 1}, {}, {}}, ms.Colors.Slice())
	assert.Len(t, ms.UVs.Slice(), 3)

	// re-initializing replaces the buffer
	old := ms.Colors.Name()
	require.NoError(t, ms.InitColors(nil))
	assert.False(t, dev.IsLive(old))
	assert.Equal(t, ms.Colors.Name(), st.Bindings[ColorBinding].Buffer)

	normals := ms.Normals.Name()
	ms.DeinitNormals()
	assert.False(t, ms.Normals.Valid())
	assert.False(t, dev.IsLive(normals))
	assert.False(t, ms.VAO().IsAttribActive(NormalAttrib))
	assert.Zero(t, st.Bindings[NormalBinding].Buffer)
}

func TestMeshSharedBuffer(t *testing.T) {
	dev := gputest.NewDevice()
	ms, err := NewMesh(dev, triangle)
	require.NoError(t, err)

	verts := ms.Vertices.Ref()
	ms.Release()
	assert.Equal(t, 1, verts.Refs())
	assert.Zero(t, dev.Live(gputest.VertexArray))
	assert.Equal(t, triangle, verts.Slice())
	verts.Release()
	assert.Zero(t, dev.Live(gputest.Buffer))
}

func TestMeshDraw(t *testing.T) {
	dev := gputest.NewDevice()
	ms, err := NewMesh(dev, triangle)
	require.NoError(t, err)
	defer ms.Release()
	instances, err := gpu.NewTypedBuffer[InstanceData](dev, 2, nil)
	require.NoError(t, err)
	defer instances.Release()

	ms.Draw(gpu.TypedBuffer[InstanceData]{})
	assert.Empty(t, dev.Draws)

	ms.Draw(instances)
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, gputest.Draw{VAO: ms.VAO().Name(), Mode: gpu.Triangles, Count: 3, Instances: 2}, dev.Draws[0])
	st := dev.VAOs[ms.VAO().Name()]
	assert.Equal(t, &gputest.VertexBinding{Buffer: instances.Name(), Stride: 128, Divisor: 1}, st.Bindings[InstanceBinding])

	require.NoError(t, ms.InitElements(6, []uint32{0, 1, 2, 2, 1, 0}))
	assert.Equal(t, ms.Elements.Name(), st.Elements)
	ms.Draw(instances)
	require.Len(t, dev.Draws, 2)
	assert.Equal(t, gputest.Draw{VAO: ms.VAO().Name(), Indexed: true, Mode: gpu.Triangles, Count: 6, Instances: 2}, dev.Draws[1])

	ms.DeinitElements()
	assert.Zero(t, st.Elements)
	ms.Draw(instances)
	assert.False(t, dev.Draws[2].Indexed)
}
