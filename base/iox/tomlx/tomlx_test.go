// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name  string    `toml:"name"`
	Sizes []int     `toml:"sizes"`
	Inner testInner `toml:"inner"`
}

type testInner struct {
	On    bool    `toml:"on"`
	Scale float32 `toml:"scale"`
}

func TestSaveOpen(t *testing.T) {
	want := testStruct{Name: "cube", Sizes: []int{1, 2}, Inner: testInner{On: true, Scale: 0.5}}
	path := filepath.Join(t.TempDir(), "test.toml")
	require.NoError(t, Save(&want, path))

	var got testStruct
	require.NoError(t, Open(&got, path))
	assert.Equal(t, want, got)
}

func TestUnknownField(t *testing.T) {
	var got testStruct
	err := ReadBytes(&got, []byte("name = \"plane\"\n[inner]\nscael = 2.0\n"))
	assert.Error(t, err)

	require.NoError(t, ReadBytes(&got, []byte("name = \"plane\"\n")))
	assert.Equal(t, "plane", got.Name)
}

func TestWriteBytes(t *testing.T) {
	b, err := WriteBytes(&testStruct{Name: "ico", Inner: testInner{Scale: 2}})
	require.NoError(t, err)
	assert.Contains(t, string(b), "ico")
	assert.Contains(t, string(b), "inner]")
}

func TestReadWrite(t *testing.T) {
	want := testStruct{Name: "plane", Sizes: []int{3}}
	var b bytes.Buffer
	require.NoError(t, Write(&want, &b))

	var got testStruct
	require.NoError(t, Read(&got, strings.NewReader(b.String())))
	assert.Equal(t, want, got)
}

func TestOpenFS(t *testing.T) {
	fsys := fstest.MapFS{"demo.toml": {Data: []byte("name = \"cube\"\n[inner]\nscale = 1.5\n")}}
	var got testStruct
	require.NoError(t, OpenFS(&got, fsys, "demo.toml"))
	assert.Equal(t, "cube", got.Name)
	assert.Equal(t, float32(1.5), got.Inner.Scale)

	assert.Error(t, OpenFS(&got, fsys, "missing.toml"))
}
