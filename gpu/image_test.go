// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/glrender/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompType(t *testing.T) {
	assert.Equal(t, 1, gpu.UnsignedByte.Size())
	assert.Equal(t, 2, gpu.UnsignedShort.Size())
	assert.Equal(t, 4, gpu.Float.Size())
	assert.Equal(t, 0, gpu.CompType(0).Size())
	assert.Equal(t, gpu.RGB, gpu.FormatForComponents(3))
	assert.Equal(t, gpu.UnknownFormat, gpu.FormatForComponents(5))
	assert.Equal(t, 2, gpu.RG.Components())
}

func TestNewImage(t *testing.T) {
	im, err := gpu.NewImage(gpu.UnsignedShort, 3, 2, 1, 2, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 24, im.StorageSize())
	assert.Equal(t, []byte{1, 2, 3, 0}, im.Pix[:4])
	assert.Equal(t, "width: 3; height: 2; depth: 1; comp_num: 2; comp_type: UNSIGNED_SHORT", im.String())

	big := make([]byte, 100)
	assert.Equal(t, 24, im.Store(big))

	_, err = gpu.NewImage(gpu.UnsignedByte, 0, 1, 1, 1, nil)
	assert.Error(t, err)
	_, err = gpu.NewImage(gpu.UnsignedByte, 1, 1, 1, 5, nil)
	assert.Error(t, err)
	_, err = gpu.NewImage(gpu.CompType(7), 1, 1, 1, 1, nil)
	assert.Error(t, err)
}

func TestImageFlip(t *testing.T) {
	im, err := gpu.NewImage(gpu.UnsignedByte, 1, 3, 1, 1, []byte{1, 2, 3})
	require.NoError(t, err)
	im.FlipVertical()
	assert.Equal(t, []byte{3, 2, 1}, im.Pix)
}

func testPNG(t *testing.T) string {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	src.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	src.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	src.Set(1, 1, color.NRGBA{255, 255, 255, 128})
	path := filepath.Join(t.TempDir(), "px.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())
	return path
}

func TestImageFromFile(t *testing.T) {
	path := testPNG(t)

	im, err := gpu.ImageFromFile(path, gpu.UnsignedByte, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 4, im.Components) // not opaque
	assert.Equal(t, []byte{255, 0, 0, 255}, im.Pix[:4])
	assert.Equal(t, []byte{255, 255, 255, 128}, im.Pix[12:16])

	im, err = gpu.ImageFromFile(path, gpu.UnsignedByte, 3, true)
	require.NoError(t, err)
	// flipped: bottom row first
	assert.Equal(t, []byte{0, 0, 255}, im.Pix[:3])
	assert.Equal(t, []byte{255, 0, 0}, im.Pix[6:9])

	im, err = gpu.ImageFromFile(path, gpu.UnsignedByte, 1, false)
	require.NoError(t, err)
	assert.Equal(t, byte(255*77>>8), im.Pix[0])

	im, err = gpu.ImageFromFile(path, gpu.UnsignedShort, 4, false)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xffff), binary.NativeEndian.Uint16(im.Pix[0:2]))

	im, err = gpu.ImageFromFile(path, gpu.Float, 4, false)
	require.NoError(t, err)
	r := math.Float32frombits(binary.NativeEndian.Uint32(im.Pix[0:4]))
	assert.InDelta(t, 1.0, r, 1e-5)
	a := math.Float32frombits(binary.NativeEndian.Uint32(im.Pix[60:64]))
	assert.InDelta(t, 128.0/255.0, a, 1e-3)
}

func TestImageFromFileNotImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just some text, not pixels"), 0o644))
	_, err := gpu.ImageFromFile(path, gpu.UnsignedByte, 3, false)
	assert.ErrorContains(t, err, "not an image")

	_, err = gpu.ImageFromFile(filepath.Join(t.TempDir(), "none.png"), gpu.UnsignedByte, 3, false)
	assert.Error(t, err)
}

func TestImageResize(t *testing.T) {
	im, err := gpu.NewImage(gpu.UnsignedByte, 4, 4, 1, 3, nil)
	require.NoError(t, err)
	for i := range im.Pix {
		im.Pix[i] = 200
	}
	sm, err := im.Resize(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, sm.Width)
	assert.Equal(t, 3, sm.Components)
	assert.Len(t, sm.Pix, 12)
	for _, v := range sm.Pix {
		assert.InDelta(t, 200, int(v), 1)
	}

	f, err := gpu.NewImage(gpu.Float, 2, 2, 1, 1, nil)
	require.NoError(t, err)
	_, err = f.Resize(1, 1)
	assert.Error(t, err)
}
