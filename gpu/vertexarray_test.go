// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"testing"

	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexArray(t *testing.T) {
	dev := gputest.NewDevice()
	va, err := gpu.NewVertexArray(dev)
	require.NoError(t, err)
	name := va.Name()

	va.AttribFormat(2, 1, 4, 16)
	va.EnableAttrib(2)
	va.EnableAttrib(0)
	assert.True(t, va.IsAttribActive(2))
	assert.Equal(t, uint32(0b101), va.ActiveAttribs())
	va.DisableAttrib(2)
	assert.False(t, va.IsAttribActive(2))

	at := dev.VAOs[name].Attribs[2]
	assert.Equal(t, 4, at.Size)
	assert.Equal(t, 16, at.Offset)
	assert.Equal(t, uint32(1), at.Binding)
	assert.False(t, at.Enabled)

	buf, err := gpu.NewBuffer(dev, 48, nil)
	require.NoError(t, err)
	va.BindVertexBuffer(1, buf, 0, 12)
	va.BindingDivisor(1, 1)
	bd := dev.VAOs[name].Bindings[1]
	assert.Equal(t, buf.Name(), bd.Buffer)
	assert.Equal(t, 12, bd.Stride)
	assert.Equal(t, uint32(1), bd.Divisor)

	va.DrawInstanced(0, 3, 2, gpu.Triangles)
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, gputest.Draw{VAO: name, Mode: gpu.Triangles, Count: 3, Instances: 2}, dev.Draws[0])

	moved := va.Take()
	assert.False(t, va.Valid())
	va.Release() // empty: no-op
	assert.True(t, dev.IsLive(name))
	moved.Release()
	moved.Release()
	assert.Equal(t, 1, dev.Deleted(name))
	buf.Release()
}

func TestVertexArrayAttribRange(t *testing.T) {
	dev := gputest.NewDevice()
	va, err := gpu.NewVertexArray(dev)
	require.NoError(t, err)
	defer va.Release()

	last := uint32(gpu.MaxVertexAttribs - 1)
	va.EnableAttrib(last)
	assert.True(t, va.IsAttribActive(last))

	assert.Panics(t, func() { va.EnableAttrib(gpu.MaxVertexAttribs) })
	assert.Panics(t, func() { va.EnableAttrib(40) })
	assert.Panics(t, func() { va.DisableAttrib(gpu.MaxVertexAttribs) })
	assert.Panics(t, func() { va.AttribFormat(gpu.MaxVertexAttribs, 0, 3, 0) })
	assert.False(t, va.IsAttribActive(40))
	assert.Equal(t, uint32(1)<<last, va.ActiveAttribs())
	_, enabled := dev.VAOs[va.Name()].Attribs[gpu.MaxVertexAttribs]
	assert.False(t, enabled)
}
