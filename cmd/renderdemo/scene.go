// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"cogentcore.org/glrender/config"
	"cogentcore.org/glrender/gpu"
	"cogentcore.org/glrender/gpu/brdf"
	"cogentcore.org/glrender/gpu/shape"
	"cogentcore.org/glrender/xyz"
	"github.com/go-gl/mathgl/mgl32"
)

// scene is everything drawn by the demo: one instanced shape under a
// directional light, seen by a perspective camera.
type scene struct {
	camera    *xyz.Camera
	frame     *brdf.Frame
	lighting  *brdf.Lighting
	material  *brdf.Material
	pipeline  *brdf.Pipeline
	mesh      *xyz.Mesh
	instances gpu.TypedBuffer[xyz.InstanceData]
	transform *xyz.Transform
	spin      mgl32.Quat
}

// textureSpec describes one material map loaded from an image file.
type textureSpec struct {
	unit     brdf.TextureUnit
	path     string
	channels int
	format   gpu.InternalFormat
	levels   int
}

func shapeData(name string) shape.Data {
	switch name {
	case "plane":
		return shape.Plane()
	case "icosahedron":
		return shape.Icosahedron()
	}
	return shape.Cube()
}

// newScene builds the scene described by cfg. Textures that fail to
// load are logged and left out of the material.
func newScene(dev gpu.Device, cfg *config.Config) (sc *scene, err error) {
	sc = &scene{}
	defer func() {
		if err != nil {
			sc.release()
			sc = nil
		}
	}()

	sc.camera = xyz.NewCamera()
	sc.camera.Perspective(cfg.Camera.FOV, cfg.Aspect())
	sc.camera.SetNearFar(cfg.Camera.Near, cfg.Camera.Far)
	sc.camera.Transform.SetPosition(cfg.Camera.Position)
	rot := cfg.Camera.Rotation
	sc.camera.Transform.SetOrientation(xyz.QuatEuler(mgl32.DegToRad(rot[0]), mgl32.DegToRad(rot[1]), mgl32.DegToRad(rot[2])))

	if sc.frame, err = brdf.NewFrame(dev); err != nil {
		return
	}
	sc.frame.SetCamera(sc.camera)

	if sc.mesh, err = shape.NewMesh(dev, shapeData(cfg.Scene.Shape)); err != nil {
		return
	}
	if sc.instances, err = gpu.NewTypedBuffer[xyz.InstanceData](dev, 1, nil); err != nil {
		return
	}
	if sc.transform, err = xyz.NewTransformIn(sc.instances.Buffer, 0); err != nil {
		return
	}
	sc.transform.SetPosition(cfg.Scene.Position)
	sc.transform.Update()
	sc.spin = mgl32.QuatRotate(mgl32.DegToRad(cfg.Scene.Spin), mgl32.Vec3{0, 1, 0})

	if sc.lighting, err = brdf.NewLighting(dev); err != nil {
		return
	}
	sc.lighting.SetAmbient(cfg.Light.Ambient)
	sc.lighting.SetColor(cfg.Light.Color)
	sc.lighting.SetViewDirection(cfg.Light.Direction)

	if sc.material, err = brdf.NewMaterial(dev); err != nil {
		return
	}
	mu := sc.material.Uniforms()
	hsv := cfg.Material.HSV
	mu.ColorMod = shape.HSVToRGB(hsv[0], hsv[1], hsv[2])
	mu.RoughnessMod = cfg.Material.Roughness
	mu.MetallicMod = cfg.Material.Metallic
	mu.NormalMod = cfg.Material.Normal
	mc := cfg.Material
	for _, ts := range []textureSpec{
		{brdf.AlbedoUnit, mc.Albedo, 3, gpu.SRGB8, mc.MipLevels},
		{brdf.NormalUnit, mc.NormalMap, 3, gpu.RGB8, 1},
		{brdf.RoughnessUnit, mc.RoughnessMap, 1, gpu.R8, 1},
		{brdf.MetallicUnit, mc.MetallicMap, 1, gpu.R8, 1},
		{brdf.AOUnit, mc.AOMap, 1, gpu.R8, 1},
	} {
		if ts.path == "" {
			continue
		}
		tx, terr := loadTexture(dev, ts, mc.MaxTextureSize)
		if terr != nil {
			slog.Warn("renderdemo: texture not loaded", "unit", ts.unit, "err", terr)
			continue
		}
		sc.material.SetTexture(ts.unit, tx.Texture)
		tx.Release()
	}

	if sc.pipeline, err = brdf.NewPipeline(dev, cfg.Shaders.Vertex, cfg.Shaders.Fragment); err != nil {
		return
	}
	sc.lighting.Use()
	sc.pipeline.Use()
	return
}

// loadTexture reads an image, scaling it down to fit maxSize, into a
// new texture with the image rows bottom up.
func loadTexture(dev gpu.Device, ts textureSpec, maxSize int) (gpu.Texture2D, error) {
	img, err := gpu.ImageFromFile(ts.path, gpu.UnsignedByte, ts.channels, true)
	if err != nil {
		return gpu.Texture2D{}, err
	}
	if w, h := img.Width, img.Height; w > maxSize || h > maxSize {
		scale := float32(maxSize) / float32(max(w, h))
		img, err = img.Resize(max(int(float32(w)*scale), 1), max(int(float32(h)*scale), 1))
		if err != nil {
			return gpu.Texture2D{}, err
		}
		slog.Info("renderdemo: scaled texture", "file", ts.path, "from", fmt.Sprintf("%dx%d", w, h), "to", fmt.Sprintf("%dx%d", img.Width, img.Height))
	}
	slog.Debug("renderdemo: loaded texture", "file", ts.path, "image", img.String())
	return gpu.NewTexture2DFromImage(dev, img, ts.levels, ts.format)
}

// draw issues the draw calls of one frame and advances the animation.
// The caller clears and swaps.
func (sc *scene) draw() {
	if sc.pipeline.ReloadPending() {
		// Reload logs a failure and keeps the previous program.
		_ = sc.pipeline.Reload()
		sc.pipeline.Use()
	}
	sc.frame.SetCamera(sc.camera)
	sc.material.Use()
	sc.mesh.Draw(sc.instances)

	sc.transform.Rotate(sc.spin)
	sc.transform.Update()
}

func (sc *scene) release() {
	if sc.pipeline != nil {
		sc.pipeline.Release()
	}
	if sc.material != nil {
		sc.material.Release()
	}
	if sc.lighting != nil {
		sc.lighting.Release()
	}
	if sc.transform != nil {
		sc.transform.Release()
	}
	sc.instances.Release()
	if sc.mesh != nil {
		sc.mesh.Release()
	}
	if sc.frame != nil {
		sc.frame.Release()
	}
}
