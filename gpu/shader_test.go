// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderTypeString(t *testing.T) {
	assert.Equal(t, "vertex", gpu.VertexShader.String())
	assert.Equal(t, "fragment", gpu.FragmentShader.String())
	assert.Equal(t, "tesselation control", gpu.TessControlShader.String())
	assert.Equal(t, "compute", gpu.ComputeShader.String())
	assert.Equal(t, "unknown", gpu.ShaderType(1).String())
}

func TestShaderCompileError(t *testing.T) {
	dev := gputest.NewDevice()
	sh, err := gpu.NewShader(dev, gpu.FragmentShader, "#error nope")
	assert.ErrorContains(t, err, "fragment shader compilation error")
	assert.False(t, sh.Valid())
	assert.Zero(t, dev.Live(gputest.Shader))
}

func TestShaderFromFile(t *testing.T) {
	dev := gputest.NewDevice()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.vert")
	require.NoError(t, os.WriteFile(path, []byte("void main() {}"), 0o644))

	sh, err := gpu.ShaderFromFile(dev, gpu.VertexShader, path)
	require.NoError(t, err)
	assert.Equal(t, gpu.VertexShader, sh.Type())
	sh.Release()

	_, err = gpu.ShaderFromFile(dev, gpu.VertexShader, filepath.Join(dir, "missing.vert"))
	assert.ErrorContains(t, err, "missing.vert")
}

func TestProgramOwnership(t *testing.T) {
	dev := gputest.NewDevice()
	vs, err := gpu.NewShader(dev, gpu.VertexShader, "void main() {}")
	require.NoError(t, err)
	fs, err := gpu.NewShader(dev, gpu.FragmentShader, "void main() {}")
	require.NoError(t, err)

	vs2 := vs.Ref()
	assert.Equal(t, 2, vs.Refs())

	pr, err := gpu.NewProgram(dev, vs, fs)
	require.NoError(t, err)
	assert.Equal(t, []uint32{vs.Name(), fs.Name()}, dev.Programs[pr.Name()])

	vsn := vs.Name()
	vs.Release()
	assert.True(t, dev.IsLive(vsn))
	vs2.Release()
	fs.Release()
	assert.False(t, dev.IsLive(vsn))
	assert.Zero(t, dev.Live(gputest.Shader))

	// program outlives its shaders
	pr.Use()
	assert.Equal(t, pr.Name(), dev.CurrentProg)

	other := pr.Ref()
	pn := pr.Name()
	pr.Release()
	assert.True(t, dev.IsLive(pn))
	other.Release()
	assert.False(t, dev.IsLive(pn))
	assert.Equal(t, 1, dev.Deleted(pn))
}

func TestProgramErrors(t *testing.T) {
	dev := gputest.NewDevice()
	_, err := gpu.NewProgram(dev)
	assert.Error(t, err)

	_, err = gpu.NewProgram(dev, gpu.Shader{})
	assert.ErrorIs(t, err, gpu.ErrInvalid)

	vs, err := gpu.NewShader(dev, gpu.VertexShader, "void main() {}")
	require.NoError(t, err)
	dev.FailLink = true
	pr, err := gpu.NewProgram(dev, vs)
	assert.ErrorContains(t, err, "linking")
	assert.False(t, pr.Valid())
	pr.Use() // zero handle: no-op
	assert.Zero(t, dev.CurrentProg)
	vs.Release()
}
