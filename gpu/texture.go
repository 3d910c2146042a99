// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
)

// TextureInfo is the immutable description of a texture object.
// Width, Height, Depth are the level 0 size, Components the number of
// channels and Levels the number of mipmap levels.
type TextureInfo struct {
	Name           uint32
	Target         TextureTarget
	InternalFormat InternalFormat
	Width          int
	Height         int
	Depth          int
	Components     int
	Levels         int
}

type textureObject struct {
	refs
	dev Device
	TextureInfo
}

// Texture is a shared handle to a texture object of any target.
// The zero Texture is valid and refers to nothing; its [Texture.Info]
// is all zero.
type Texture struct {
	obj *textureObject
}

func newTexture(dev Device, target TextureTarget, levels int, format InternalFormat, comps, w, h, d int) (Texture, error) {
	if levels < 1 {
		return Texture{}, fmt.Errorf("gpu: texture needs at least one level, got %d", levels)
	}
	if w <= 0 || h <= 0 || d <= 0 {
		return Texture{}, fmt.Errorf("gpu: invalid texture size %dx%dx%d", w, h, d)
	}
	name, err := dev.CreateTexture(target, levels, format, w, h, d)
	if err != nil {
		return Texture{}, fmt.Errorf("gpu: creating texture: %w", err)
	}
	ob := &textureObject{dev: dev, TextureInfo: TextureInfo{
		Name: name, Target: target, InternalFormat: format,
		Width: w, Height: h, Depth: d, Components: comps, Levels: levels,
	}}
	ob.init(func() { dev.DeleteTexture(name) })
	return Texture{obj: ob}, nil
}

func (t Texture) Valid() bool { return t.obj != nil }

func (t Texture) Name() uint32 {
	if t.obj == nil {
		return 0
	}
	return t.obj.Name
}

// Info returns the texture description.
func (t Texture) Info() TextureInfo {
	if t.obj == nil {
		return TextureInfo{}
	}
	return t.obj.TextureInfo
}

func (t Texture) Refs() int {
	if t.obj == nil {
		return 0
	}
	return t.obj.count
}

// Bind binds the texture to the given texture unit. It does nothing for
// the zero handle, which has no device; clear a unit with
// [UnbindTextureUnit].
func (t Texture) Bind(unit uint32) {
	if t.obj == nil {
		return
	}
	t.obj.dev.BindTextureUnit(unit, t.obj.Name)
}

// UnbindTextureUnit clears the given texture unit.
func UnbindTextureUnit(dev Device, unit uint32) {
	dev.BindTextureUnit(unit, 0)
}

func (t Texture) Ref() Texture {
	if t.obj != nil {
		t.obj.acquire()
	}
	return t
}

func (t *Texture) Release() {
	if t.obj == nil {
		return
	}
	ob := t.obj
	t.obj = nil
	ob.release()
}

func (t *Texture) Set(o Texture) {
	if t.obj == o.obj {
		return
	}
	t.Release()
	*t = o.Ref()
}

func (t *Texture) Take() Texture {
	o := *t
	t.obj = nil
	return o
}

// Texture2D is a [Texture] with a 2D target and pixel transfer methods.
type Texture2D struct {
	Texture
}

// NewTexture2D allocates storage for a 2D texture.
func NewTexture2D(dev Device, levels int, format InternalFormat, comps, width, height int) (Texture2D, error) {
	tx, err := newTexture(dev, Target2D, levels, format, comps, width, height, 1)
	if err != nil {
		return Texture2D{}, err
	}
	return Texture2D{Texture: tx}, nil
}

// NewTexture2DFromImage allocates a texture the size of img and uploads
// it to level 0. Further levels are generated from it.
func NewTexture2DFromImage(dev Device, img *Image, levels int, format InternalFormat) (Texture2D, error) {
	tx, err := NewTexture2D(dev, levels, format, img.Components, img.Width, img.Height)
	if err != nil {
		return Texture2D{}, err
	}
	if err := tx.LoadImage(img, 0, 0, 0); err != nil {
		tx.Release()
		return Texture2D{}, err
	}
	if levels > 1 {
		dev.GenerateMipmap(tx.Name())
	}
	return tx, nil
}

// Load uploads a w x h region at (x, y) of the given level.
func (t Texture2D) Load(format PixelFormat, typ CompType, pixels []byte, level, x, y, w, h int) error {
	if t.obj == nil {
		return ErrInvalid
	}
	if err := t.checkRegion(level, x, y, w, h); err != nil {
		return err
	}
	need := w * h * format.Components() * typ.Size()
	if need == 0 || len(pixels) < need {
		return fmt.Errorf("gpu: texture upload needs %d bytes of %v, have %d", need, typ, len(pixels))
	}
	t.obj.dev.TextureSubImage2D(t.obj.Name, level, x, y, w, h, format, typ, pixels)
	return nil
}

// LoadAll uploads the whole of the given level.
func (t Texture2D) LoadAll(format PixelFormat, typ CompType, pixels []byte, level int) error {
	if t.obj == nil {
		return ErrInvalid
	}
	if err := t.checkLevel(level); err != nil {
		return err
	}
	w, h := t.LevelSize(level)
	return t.Load(format, typ, pixels, level, 0, 0, w, h)
}

// LoadImage uploads img with its top left corner at (x, y) of the given level.
func (t Texture2D) LoadImage(img *Image, level, x, y int) error {
	return t.Load(img.Format(), img.Type, img.Pix, level, x, y, img.Width, img.Height)
}

// Fetch reads back the given level into buf.
func (t Texture2D) Fetch(format PixelFormat, typ CompType, level int, buf []byte) error {
	if t.obj == nil {
		return ErrInvalid
	}
	if err := t.checkLevel(level); err != nil {
		return err
	}
	w, h := t.LevelSize(level)
	need := w * h * format.Components() * typ.Size()
	if need == 0 || len(buf) < need {
		return fmt.Errorf("gpu: texture fetch needs %d bytes, have %d", need, len(buf))
	}
	t.obj.dev.GetTextureImage(t.obj.Name, level, format, typ, buf)
	return nil
}

// LevelSize returns the size of the given mipmap level, or 0, 0 for a
// level the texture does not have.
func (t Texture2D) LevelSize(level int) (w, h int) {
	if t.obj == nil || t.checkLevel(level) != nil {
		return 0, 0
	}
	w, h = t.obj.Width>>level, t.obj.Height>>level
	return max(w, 1), max(h, 1)
}

func (t Texture2D) checkLevel(level int) error {
	if level < 0 || level >= t.obj.Levels {
		return fmt.Errorf("gpu: texture level %d out of range [0, %d)", level, t.obj.Levels)
	}
	return nil
}

func (t Texture2D) checkRegion(level, x, y, w, h int) error {
	if err := t.checkLevel(level); err != nil {
		return err
	}
	lw, lh := t.LevelSize(level)
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > lw || y+h > lh {
		return fmt.Errorf("gpu: region %dx%d at (%d, %d) outside %dx%d level %d", w, h, x, y, lw, lh, level)
	}
	return nil
}

func (t Texture2D) Ref() Texture2D {
	return Texture2D{Texture: t.Texture.Ref()}
}

func (t *Texture2D) Take() Texture2D {
	return Texture2D{Texture: t.Texture.Take()}
}
