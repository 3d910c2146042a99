// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape provides the vertex data of simple shapes and builds
// [xyz.Mesh] values from it.
package shape

import (
	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/xyz"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Data is the vertex data of a shape, indexed by Indices as triangles
// with counter-clockwise front faces. UVs is nil for shapes without
// texture coordinates.
type Data struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
	Indices  []uint32
}

// golden ratio
var phi = (1 + math32.Sqrt(5)) / 2

// Icosahedron returns a regular icosahedron of 12 vertices and 20 faces,
// with vertices at distance sqrt(1+phi^2) from the origin.
func Icosahedron() Data {
	f := phi
	verts := []mgl32.Vec3{
		{-1, f, 0}, {1, f, 0}, {-1, -f, 0}, {1, -f, 0},
		{0, -1, f}, {0, 1, f}, {0, -1, -f}, {0, 1, -f},
		{f, 0, -1}, {f, 0, 1}, {-f, 0, -1}, {-f, 0, 1},
	}
	return Data{
		Vertices: verts,
		Normals:  radialNormals(verts),
		Indices: []uint32{
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			11, 10, 2, 5, 11, 4, 1, 5, 9, 7, 1, 8, 10, 7, 6,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			9, 8, 1, 4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7,
		},
	}
}

// Plane returns a 2x2 square in the XY plane facing +Z.
func Plane() Data {
	return Data{
		Vertices: []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
		Normals:  []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:      []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Cube returns a 2x2x2 cube centered on the origin. Its corners are
// shared between faces, with four extra vertices so the texture wraps
// around the sides; normals point out of the corners.
func Cube() Data {
	verts := []mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
		{-1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {-1, 1, 1},

		{-1, -1, 1}, {1, -1, 1}, {-1, 1, 1}, {1, 1, 1},
	}
	return Data{
		Vertices: verts,
		Normals:  radialNormals(verts),
		UVs: []mgl32.Vec2{
			{1, 1}, {0, 1}, {1, 1}, {0, 1},
			{1, 0}, {0, 0}, {1, 0}, {0, 0},
			{1, 0}, {0, 0}, {1, 1}, {0, 1},
		},
		Indices: []uint32{
			0, 1, 9, 0, 9, 8,
			4, 11, 5, 4, 10, 11,

			0, 5, 1, 0, 4, 5,
			1, 6, 2, 1, 5, 6,
			2, 7, 3, 2, 6, 7,
			3, 4, 0, 3, 7, 4,
		},
	}
}

func radialNormals(verts []mgl32.Vec3) []mgl32.Vec3 {
	ns := make([]mgl32.Vec3, len(verts))
	for i, v := range verts {
		ns[i] = v.Normalize()
	}
	return ns
}

// Tangents returns per vertex tangents pointing along increasing U,
// accumulated over the triangles using each vertex and made
// orthogonal to its normal. It returns nil if there are no UVs.
func (d Data) Tangents() []mgl32.Vec3 {
	if d.UVs == nil {
		return nil
	}
	ts := make([]mgl32.Vec3, len(d.Vertices))
	for i := 0; i+2 < len(d.Indices); i += 3 {
		a, b, c := d.Indices[i], d.Indices[i+1], d.Indices[i+2]
		e1, e2 := d.Vertices[b].Sub(d.Vertices[a]), d.Vertices[c].Sub(d.Vertices[a])
		u1, u2 := d.UVs[b].Sub(d.UVs[a]), d.UVs[c].Sub(d.UVs[a])
		det := u1[0]*u2[1] - u2[0]*u1[1]
		if det == 0 {
			continue
		}
		t := e1.Mul(u2[1]).Sub(e2.Mul(u1[1])).Mul(1 / det)
		for _, v := range []uint32{a, b, c} {
			ts[v] = ts[v].Add(t)
		}
	}
	for i, t := range ts {
		if d.Normals != nil {
			n := d.Normals[i]
			t = t.Sub(n.Mul(n.Dot(t)))
		}
		if t.Len() > 0 {
			ts[i] = t.Normalize()
		}
	}
	return ts
}

// NewMesh creates a mesh with the vertices, elements, normals, and
// when the shape has them, texture coordinates and tangents.
func NewMesh(dev gpu.Device, d Data) (*xyz.Mesh, error) {
	ms, err := xyz.NewMesh(dev, d.Vertices)
	if err != nil {
		return nil, err
	}
	err = ms.InitElements(len(d.Indices), d.Indices)
	if err == nil {
		err = ms.InitNormals(d.Normals)
	}
	if err == nil && d.UVs != nil {
		err = ms.InitUVs(d.UVs)
		if err == nil {
			err = ms.InitTangents(d.Tangents())
		}
	}
	if err != nil {
		ms.Release()
		return nil, err
	}
	return ms, nil
}

// HSVToRGB returns the opaque color of hue h in degrees,
// saturation s and value v, both in [0, 1]. Hues between the six
// primary and secondary colors blend them linearly.
func HSVToRGB(h, s, v float32) mgl32.Vec4 {
	wheel := [6]mgl32.Vec4{
		{1, 0, 0, 1}, {1, 1, 0, 1}, {0, 1, 0, 1},
		{0, 1, 1, 1}, {0, 0, 1, 1}, {1, 0, 1, 1},
	}
	h = math32.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	seg := int(h / 60)
	wb := (h - float32(seg)*60) / 60
	c := wheel[seg%6].Mul(1 - wb).Add(wheel[(seg+1)%6].Mul(wb))
	c = c.Mul(s).Add(mgl32.Vec4{1, 1, 1, 1}.Mul(1 - s))
	c = c.Mul(v)
	c[3] = 1
	return c
}
