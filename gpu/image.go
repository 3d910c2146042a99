// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a CPU side block of pixels laid out the way the driver
// consumes them: rows of Width pixels, each of Components components of
// Type, tightly packed, in native byte order. Pix is ordinary Go memory,
// so copies of an *Image share their pixels without any manual counting.
type Image struct {
	Type       CompType
	Width      int
	Height     int
	Depth      int
	Components int
	Pix        []byte
}

// NewImage allocates an image and copies initial into it when non-nil.
func NewImage(typ CompType, width, height, depth, components int, initial []byte) (*Image, error) {
	if typ.Size() == 0 {
		return nil, fmt.Errorf("gpu: unknown image component type %#x", uint32(typ))
	}
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("gpu: invalid image size %dx%dx%d", width, height, depth)
	}
	if components < 1 || components > 4 {
		return nil, fmt.Errorf("gpu: image must have 1 to 4 components, got %d", components)
	}
	im := &Image{Type: typ, Width: width, Height: height, Depth: depth, Components: components}
	im.Pix = make([]byte, im.StorageSize())
	if initial != nil {
		im.Store(initial)
	}
	return im, nil
}

// PixelSize returns the number of bytes of one pixel.
func (im *Image) PixelSize() int {
	return im.Components * im.Type.Size()
}

// RowSize returns the number of bytes of one row.
func (im *Image) RowSize() int {
	return im.Width * im.PixelSize()
}

// StorageSize returns the number of bytes of all pixels.
func (im *Image) StorageSize() int {
	return im.RowSize() * im.Height * im.Depth
}

// Format returns the [PixelFormat] matching the number of components.
func (im *Image) Format() PixelFormat {
	return FormatForComponents(im.Components)
}

// Store copies data into the pixels, truncating at the storage size.
// It returns the number of bytes copied.
func (im *Image) Store(data []byte) int {
	return copy(im.Pix, data)
}

// FlipVertical reverses the order of the rows in every layer.
func (im *Image) FlipVertical() {
	rs := im.RowSize()
	tmp := make([]byte, rs)
	layer := rs * im.Height
	for d := 0; d < im.Depth; d++ {
		base := d * layer
		for top, bot := 0, im.Height-1; top < bot; top, bot = top+1, bot-1 {
			a := im.Pix[base+top*rs : base+(top+1)*rs]
			b := im.Pix[base+bot*rs : base+(bot+1)*rs]
			copy(tmp, a)
			copy(a, b)
			copy(b, tmp)
		}
	}
}

func (im *Image) String() string {
	return fmt.Sprintf("width: %d; height: %d; depth: %d; comp_num: %d; comp_type: %s",
		im.Width, im.Height, im.Depth, im.Components, im.Type)
}

// ImageFromFile decodes the image file at path into an [Image] with the
// given component type. channels selects the number of components
// (1 = luminance, 2 = luminance + alpha, 3 = RGB, 4 = RGBA); 0 keeps the
// file's own channel count. If flip is set the rows are stored bottom up,
// matching the texture coordinate origin of the driver.
func ImageFromFile(path string, typ CompType, channels int, flip bool) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gpu: reading image %q: %w", path, err)
	}
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("gpu: %q is not an image (detected %q)", path, kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gpu: decoding image %q: %w", path, err)
	}
	return ImageFromGo(img, typ, channels, flip)
}

// ImageFromGo converts a standard library image, see [ImageFromFile].
// Float images are converted from sRGB to linear values.
func ImageFromGo(img image.Image, typ CompType, channels int, flip bool) (*Image, error) {
	if channels == 0 {
		channels = nativeChannels(img)
	}
	bnd := img.Bounds()
	im, err := NewImage(typ, bnd.Dx(), bnd.Dy(), 1, channels, nil)
	if err != nil {
		return nil, err
	}
	var comps [4]uint16
	off := 0
	for y := bnd.Min.Y; y < bnd.Max.Y; y++ {
		for x := bnd.Min.X; x < bnd.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			switch channels {
			case 1:
				comps[0] = luminance(c)
			case 2:
				comps[0], comps[1] = luminance(c), c.A
			case 3:
				comps[0], comps[1], comps[2] = c.R, c.G, c.B
			case 4:
				comps[0], comps[1], comps[2], comps[3] = c.R, c.G, c.B, c.A
			}
			for i := 0; i < channels; i++ {
				off += putComponent(im.Pix[off:], typ, comps[i], i == 3 || (channels == 2 && i == 1))
			}
		}
	}
	if flip {
		im.FlipVertical()
	}
	return im, nil
}

// Resize returns a copy of an [UnsignedByte] image scaled to the given
// size with bilinear filtering. Only single layer images are supported.
func (im *Image) Resize(width, height int) (*Image, error) {
	if im.Type != UnsignedByte || im.Depth != 1 {
		return nil, fmt.Errorf("gpu: resize needs a single layer UNSIGNED_BYTE image, have %s", im)
	}
	if width == im.Width && height == im.Height {
		cp := *im
		cp.Pix = bytes.Clone(im.Pix)
		return &cp, nil
	}
	res := transform.Resize(im.toNRGBA(), width, height, transform.Linear)
	return ImageFromGo(res, UnsignedByte, im.Components, false)
}

// toNRGBA expands an 8 bit image to a standard library image.
func (im *Image) toNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	n := im.Components
	for i := 0; i < im.Width*im.Height; i++ {
		src := im.Pix[i*n : i*n+n]
		dst := out.Pix[i*4 : i*4+4]
		switch n {
		case 1:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 0xff
		case 2:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], src[1]
		case 3:
			dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 0xff
		case 4:
			copy(dst, src)
		}
	}
	return out
}

func nativeChannels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	}
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return 3
	}
	return 4
}

// luminance uses the same integer weights as common image loaders.
func luminance(c color.NRGBA64) uint16 {
	return uint16((uint32(c.R)*77 + uint32(c.G)*150 + uint32(c.B)*29) >> 8)
}

// putComponent writes one 16 bit component as typ and returns the bytes written.
func putComponent(dst []byte, typ CompType, v uint16, alpha bool) int {
	switch typ {
	case UnsignedByte:
		dst[0] = uint8(v >> 8)
		return 1
	case UnsignedShort:
		binary.NativeEndian.PutUint16(dst, v)
		return 2
	default:
		f := float32(v) / 0xffff
		if !alpha {
			f = SRGBToLinearComp(f)
		}
		binary.NativeEndian.PutUint32(dst, math.Float32bits(f))
		return 4
	}
}

// SRGBToLinearComp converts an sRGB rgb component to linear space (removes gamma).
func SRGBToLinearComp(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return math32.Pow((srgb+0.055)/1.055, 2.4)
}
