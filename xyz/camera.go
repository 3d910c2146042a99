// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Projections are the kinds of camera projection.
type Projections int32

const (
	// Perspective is a perspective projection from a field of view and aspect ratio.
	Perspective Projections = iota

	// Orthographic is a parallel projection of a left, right, bottom, top box.
	Orthographic

	// Custom is a projection matrix set directly with [Camera.SetCustomProjection].
	Custom
)

func (p Projections) String() string {
	switch p {
	case Perspective:
		return "Perspective"
	case Orthographic:
		return "Orthographic"
	case Custom:
		return "Custom"
	}
	return "Projections(?)"
}

// Camera defines the viewing parameters of a scene: a [Transform]
// placing the eye in the world, and a projection. The projection and
// the combined projection-view matrix are cached and recomputed only
// when their inputs change.
type Camera struct {

	// Transform positions and orients the camera. The view matrix is its inverse.
	Transform *Transform

	kind Projections

	near, far   float32
	fov, aspect float32

	left, right, bottom, top float32

	projection mgl32.Mat4
	pv         mgl32.Mat4

	lastTransform   *Transform
	lastVersion     uint64
	projectionDirty bool
	pvDirty         bool
}

// NewCamera returns a perspective camera at the origin looking down -Z,
// with a 60 degree field of view, a 16:9 aspect ratio and near and far
// planes at 0.1 and 1000.
func NewCamera() *Camera {
	return &Camera{
		Transform:       NewTransform(),
		kind:            Perspective,
		near:            0.1,
		far:             1000,
		fov:             60,
		aspect:          16.0 / 9.0,
		projectionDirty: true,
		pvDirty:         true,
	}
}

// Kind returns the kind of projection in use.
func (cm *Camera) Kind() Projections { return cm.kind }

// Perspective switches to a perspective projection with the vertical field
// of view in degrees and the width / height aspect ratio.
func (cm *Camera) Perspective(fov, aspect float32) {
	if cm.kind == Perspective && fov == cm.fov && aspect == cm.aspect {
		return
	}
	cm.fov, cm.aspect = fov, aspect
	cm.kind = Perspective
	cm.projectionDirty = true
}

// PerspectiveParams returns the field of view in degrees and the aspect ratio.
func (cm *Camera) PerspectiveParams() (fov, aspect float32) {
	return cm.fov, cm.aspect
}

// Ortho switches to an orthographic projection of the given box.
func (cm *Camera) Ortho(left, right, bottom, top float32) {
	if cm.kind == Orthographic && left == cm.left && right == cm.right && bottom == cm.bottom && top == cm.top {
		return
	}
	cm.left, cm.right, cm.bottom, cm.top = left, right, bottom, top
	cm.kind = Orthographic
	cm.projectionDirty = true
}

// OrthoParams returns the orthographic box.
func (cm *Camera) OrthoParams() (left, right, bottom, top float32) {
	return cm.left, cm.right, cm.bottom, cm.top
}

// SetCustomProjection uses m as the projection matrix as is.
// The near and far planes do not apply to it.
func (cm *Camera) SetCustomProjection(m mgl32.Mat4) {
	if cm.kind == Custom && m == cm.projection {
		return
	}
	cm.projection = m
	cm.kind = Custom
	cm.projectionDirty = false
	cm.pvDirty = true
}

// SetNearFar sets the distances of the near and far clipping planes.
func (cm *Camera) SetNearFar(near, far float32) {
	if near == cm.near && far == cm.far {
		return
	}
	cm.near, cm.far = near, far
	cm.projectionDirty = true
}

// NearFar returns the distances of the near and far clipping planes.
func (cm *Camera) NearFar() (near, far float32) {
	return cm.near, cm.far
}

// Projection returns the projection matrix, recomputing it if needed.
func (cm *Camera) Projection() mgl32.Mat4 {
	if !cm.projectionDirty {
		return cm.projection
	}
	switch cm.kind {
	case Perspective:
		cm.projection = mgl32.Perspective(mgl32.DegToRad(cm.fov), cm.aspect, cm.near, cm.far)
	case Orthographic:
		cm.projection = mgl32.Ortho(cm.left, cm.right, cm.bottom, cm.top, cm.near, cm.far)
	}
	cm.projectionDirty = false
	cm.pvDirty = true
	return cm.projection
}

// View returns the view matrix, the inverse of the camera transform.
func (cm *Camera) View() mgl32.Mat4 {
	return cm.Transform.Inverse()
}

// InverseView returns the camera transform matrix.
func (cm *Camera) InverseView() mgl32.Mat4 {
	return cm.Transform.Matrix()
}

// PV returns projection * view, recomputing it when the projection or
// the camera transform changed since the last call. Assigning another
// [Transform] to the camera counts as a change.
func (cm *Camera) PV() mgl32.Mat4 {
	proj := cm.Projection()
	if v := cm.Transform.Version(); cm.Transform != cm.lastTransform || v != cm.lastVersion {
		cm.lastTransform = cm.Transform
		cm.lastVersion = v
		cm.pvDirty = true
	}
	if cm.pvDirty {
		cm.pv = proj.Mul4(cm.View())
		cm.pvDirty = false
	}
	return cm.pv
}

// LookAt orients the camera to look from its current position toward
// target, with up as the approximate up direction.
func (cm *Camera) LookAt(target, up mgl32.Vec3) {
	eye := cm.Transform.Position()
	if eye.ApproxEqual(target) {
		return
	}
	view := mgl32.LookAtV(eye, target, up)
	cm.Transform.SetOrientation(mgl32.Mat4ToQuat(view.Inv()).Normalize())
}
