// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()
	assert.Equal(t, Perspective, cam.Kind())
	fov, aspect := cam.PerspectiveParams()
	assert.Equal(t, float32(60), fov)
	assert.Equal(t, float32(16.0/9.0), aspect)
	near, far := cam.NearFar()
	assert.Equal(t, float32(0.1), near)
	assert.Equal(t, float32(1000), far)

	assertMat(t, mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 1000), cam.Projection())
	assertMat(t, cam.Projection(), cam.PV())
}

func TestCameraPVFollowsTransform(t *testing.T) {
	cam := NewCamera()
	pv := cam.PV()
	cam.Transform.SetPosition(mgl32.Vec3{0, 0, 5})
	moved := cam.PV()
	assert.NotEqual(t, pv, moved)
	assertMat(t, cam.Projection().Mul4(mgl32.Translate3D(0, 0, -5)), moved)
	assertMat(t, mgl32.Translate3D(0, 0, 5), cam.InverseView())
}

func TestCameraPVFollowsTransformSwap(t *testing.T) {
	cam := NewCamera()
	cam.Transform.SetPosition(mgl32.Vec3{0, 0, 5})
	assert.Equal(t, uint64(1), cam.Transform.Version())
	cam.PV()

	tr := NewTransform()
	tr.SetPosition(mgl32.Vec3{3, 0, 1})
	assert.Equal(t, cam.Transform.Version(), tr.Version())
	cam.Transform = tr
	assertMat(t, cam.Projection().Mul4(mgl32.Translate3D(-3, 0, -1)), cam.PV())
}

func TestCameraPVFollowsProjection(t *testing.T) {
	cam := NewCamera()
	cam.Transform.SetPosition(mgl32.Vec3{1, 2, 3})
	cam.PV()

	cam.SetNearFar(1, 100)
	want := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 1, 100).Mul4(cam.View())
	assertMat(t, want, cam.PV())

	cam.Perspective(90, 1)
	want = mgl32.Perspective(mgl32.DegToRad(90), 1, 1, 100).Mul4(cam.View())
	assertMat(t, want, cam.PV())
}

func TestCameraOrtho(t *testing.T) {
	cam := NewCamera()
	cam.Ortho(-2, 2, -1, 1)
	assert.Equal(t, Orthographic, cam.Kind())
	l, r, b, tp := cam.OrthoParams()
	assert.Equal(t, []float32{-2, 2, -1, 1}, []float32{l, r, b, tp})
	assertMat(t, mgl32.Ortho(-2, 2, -1, 1, 0.1, 1000), cam.Projection())

	// switching back recomputes even with unchanged perspective parameters
	cam.Perspective(60, 16.0/9.0)
	assertMat(t, mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 1000), cam.Projection())
}

func TestCameraCustom(t *testing.T) {
	cam := NewCamera()
	cam.Transform.SetPosition(mgl32.Vec3{0, 1, 0})
	cam.PV()

	proj := mgl32.Scale3D(2, 2, 2)
	cam.SetCustomProjection(proj)
	assert.Equal(t, Custom, cam.Kind())
	assertMat(t, proj.Mul4(cam.View()), cam.PV())

	// the planes do not apply to a custom projection
	cam.SetNearFar(5, 50)
	assert.Equal(t, proj, cam.Projection())
}

func TestCameraLookAt(t *testing.T) {
	cam := NewCamera()
	cam.Transform.SetPosition(mgl32.Vec3{0, 0, 5})
	cam.LookAt(mgl32.Vec3{}, yAxis)
	assert.True(t, cam.Transform.Orientation().ApproxEqualThreshold(mgl32.QuatIdent(), tol))

	cam.Transform.SetPosition(mgl32.Vec3{5, 0, 0})
	cam.LookAt(mgl32.Vec3{}, yAxis)
	v := cam.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.True(t, v.ApproxEqualThreshold(mgl32.Vec4{0, 0, -5, 1}, 1e-4), "got %v", v)
}
