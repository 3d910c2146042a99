// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "errors"

// ErrInvalid is returned when an operation needs a live resource
// and was given a zero handle.
var ErrInvalid = errors.New("gpu: invalid (zero) resource handle")

// refs is the reference count shared by all handles to one driver
// object. The object is freed exactly once, when the count drops to zero.
type refs struct {
	count int
	free  func()
}

func (r *refs) init(free func()) {
	r.count = 1
	r.free = free
}

func (r *refs) acquire() {
	if r.count <= 0 {
		panic("gpu: acquire of a freed resource")
	}
	r.count++
}

// release drops one reference and reports whether it was the last.
func (r *refs) release() bool {
	if r.count <= 0 {
		panic("gpu: release of a freed resource")
	}
	r.count--
	if r.count > 0 {
		return false
	}
	if r.free != nil {
		r.free()
		r.free = nil
	}
	return true
}
