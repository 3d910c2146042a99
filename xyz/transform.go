// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"unsafe"

	"cogentcore.org/glrender/gpu"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MatrixPairSize is the number of bytes a [Transform] occupies in a
// buffer: its matrix followed by its inverse.
const MatrixPairSize = int(unsafe.Sizeof([2]mgl32.Mat4{}))

// Transform is a position, orientation and scale, with the derived
// model matrix and its inverse cached until one of them changes.
// Every change bumps [Transform.Version], which dependents such as
// [Camera] compare to know when their own caches are stale.
//
// The cached matrices either live in memory owned by the Transform,
// or in a mapped [gpu.Buffer] (see [NewTransformIn]) where shaders read
// them directly; in that case call [Transform.Update] after changes and
// before drawing.
type Transform struct {
	buf  gpu.Buffer
	mats *[2]mgl32.Mat4

	position    mgl32.Vec3
	orientation mgl32.Quat
	scale       mgl32.Vec3

	version      uint64
	matrixDirty  bool
	inverseDirty bool
}

// NewTransform returns an identity transform with its own matrix storage.
func NewTransform() *Transform {
	tr := &Transform{mats: new([2]mgl32.Mat4)}
	tr.init()
	return tr
}

// NewTransformIn returns an identity transform whose matrix and inverse
// are stored in buf at the given byte offset, taking [MatrixPairSize]
// bytes. The transform holds a reference to buf until [Transform.Release].
func NewTransformIn(buf gpu.Buffer, offset int) (*Transform, error) {
	if !buf.Valid() {
		return nil, fmt.Errorf("xyz: transform storage: %w", gpu.ErrInvalid)
	}
	if offset < 0 || offset%4 != 0 || offset+MatrixPairSize > buf.Size() {
		return nil, fmt.Errorf("xyz: transform at offset %d does not fit %d byte buffer", offset, buf.Size())
	}
	tr := &Transform{buf: buf.Ref()}
	tr.mats = (*[2]mgl32.Mat4)(unsafe.Pointer(&buf.Bytes()[offset]))
	tr.init()
	return tr, nil
}

func (tr *Transform) init() {
	tr.orientation = mgl32.QuatIdent()
	tr.scale = mgl32.Vec3{1, 1, 1}
	tr.matrixDirty = true
	tr.inverseDirty = true
	tr.Update()
}

// Release drops the reference to the storage buffer, if any.
// The transform must not be used afterwards.
func (tr *Transform) Release() {
	if tr.buf.Valid() {
		tr.buf.Release()
		tr.mats = nil
	}
}

// Version increases every time the position, orientation or scale changes.
func (tr *Transform) Version() uint64 { return tr.version }

// Update recomputes any stale cached matrix.
func (tr *Transform) Update() {
	tr.Matrix()
	tr.Inverse()
}

func (tr *Transform) changed() {
	tr.matrixDirty = true
	tr.inverseDirty = true
	tr.version++
}

// Matrix returns the model matrix: translation * rotation * scale.
func (tr *Transform) Matrix() mgl32.Mat4 {
	if tr.matrixDirty {
		p, s := tr.position, tr.scale
		tr.mats[0] = mgl32.Translate3D(p[0], p[1], p[2]).
			Mul4(tr.orientation.Mat4()).
			Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
		tr.matrixDirty = false
	}
	return tr.mats[0]
}

// Inverse returns the inverse model matrix, composed from the inverse
// of each component rather than by a general matrix inversion.
func (tr *Transform) Inverse() mgl32.Mat4 {
	if tr.inverseDirty {
		p, s := tr.position, tr.scale
		tr.mats[1] = mgl32.Scale3D(1/s[0], 1/s[1], 1/s[2]).
			Mul4(tr.orientation.Inverse().Mat4()).
			Mul4(mgl32.Translate3D(-p[0], -p[1], -p[2]))
		tr.inverseDirty = false
	}
	return tr.mats[1]
}

func (tr *Transform) Position() mgl32.Vec3 { return tr.position }

// SetPosition sets the position. Setting the current value is a no-op.
func (tr *Transform) SetPosition(pos mgl32.Vec3) {
	if pos == tr.position {
		return
	}
	tr.position = pos
	tr.changed()
}

func (tr *Transform) Orientation() mgl32.Quat { return tr.orientation }

// SetOrientation sets the orientation. Setting the current value is a no-op.
func (tr *Transform) SetOrientation(q mgl32.Quat) {
	if q == tr.orientation {
		return
	}
	tr.orientation = q
	tr.changed()
}

// Rotate applies q on top of the current orientation.
func (tr *Transform) Rotate(q mgl32.Quat) {
	tr.SetOrientation(q.Mul(tr.orientation).Normalize())
}

func (tr *Transform) Scale() mgl32.Vec3 { return tr.scale }

// SetScale sets the scale. Setting the current value is a no-op.
func (tr *Transform) SetScale(scale mgl32.Vec3) {
	if scale == tr.scale {
		return
	}
	tr.scale = scale
	tr.changed()
}

// Rotation returns the orientation as Euler angles in radians, for
// a rotation applied as yaw (Y), then pitch (X), then roll (Z).
func (tr *Transform) Rotation() mgl32.Vec3 {
	m := tr.orientation.Mat4()
	// m[c*4+r] is column c, row r
	t1 := math32.Atan2(m[8], m[10])
	c2 := math32.Sqrt(m[1]*m[1] + m[5]*m[5])
	t2 := math32.Atan2(-m[9], c2)
	s1, c1 := math32.Sincos(t1)
	t3 := math32.Atan2(s1*m[6]-c1*m[4], c1*m[0]-s1*m[2])
	return mgl32.Vec3{t2, t1, t3}
}

// RotationDegrees is [Transform.Rotation] in degrees.
func (tr *Transform) RotationDegrees() mgl32.Vec3 {
	r := tr.Rotation()
	return mgl32.Vec3{mgl32.RadToDeg(r[0]), mgl32.RadToDeg(r[1]), mgl32.RadToDeg(r[2])}
}

// QuatEuler returns the orientation for Euler angles in radians,
// applied about X first, then Y, then Z.
func QuatEuler(x, y, z float32) mgl32.Quat {
	qx := mgl32.QuatRotate(x, mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(y, mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(z, mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}
