// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// structs for the render demo.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"cogentcore.org/glrender/base/iox/tomlx"
	"cogentcore.org/glrender/base/iox/yamlx"
	"cogentcore.org/glrender/base/logx"
	"github.com/go-gl/mathgl/mgl32"
)

// Config is the main config struct
// that contains all of the configuration
// options for the render demo
type Config struct {

	// the level of log messages to print: debug, info, warn or error
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// the window to render in
	Window Window `toml:"window" yaml:"window"`

	// the OpenGL context options
	GL GL `toml:"gl" yaml:"gl"`

	// the shader files to use instead of the built-in ones
	Shaders Shaders `toml:"shaders" yaml:"shaders"`

	// the viewing camera
	Camera Camera `toml:"camera" yaml:"camera"`

	// the directional light
	Light Light `toml:"light" yaml:"light"`

	// the surface of the rendered object
	Material Material `toml:"material" yaml:"material"`

	// the rendered object and its animation
	Scene Scene `toml:"scene" yaml:"scene"`
}

type Window struct {

	// the title of the window
	Title string `toml:"title" yaml:"title"`

	// the width of the window in screen coordinates
	Width int `toml:"width" yaml:"width"`

	// the height of the window in screen coordinates
	Height int `toml:"height" yaml:"height"`

	// synchronize buffer swaps with the display refresh
	VSync bool `toml:"vsync" yaml:"vsync"`
}

type GL struct {

	// the major version of the requested context
	Major int `toml:"major" yaml:"major"`

	// the minor version of the requested context
	Minor int `toml:"minor" yaml:"minor"`

	// request a debug context and log driver errors
	Debug bool `toml:"debug" yaml:"debug"`
}

type Shaders struct {

	// the vertex shader file; empty for the built-in general shader
	Vertex string `toml:"vertex" yaml:"vertex"`

	// the fragment shader file; empty for the built-in BRDF shader
	Fragment string `toml:"fragment" yaml:"fragment"`

	// reload the shader files when they change
	Watch bool `toml:"watch" yaml:"watch"`
}

type Camera struct {

	// the vertical field of view in degrees
	FOV float32 `toml:"fov" yaml:"fov"`

	// the distance of the near clipping plane
	Near float32 `toml:"near" yaml:"near"`

	// the distance of the far clipping plane
	Far float32 `toml:"far" yaml:"far"`

	// the position of the camera
	Position mgl32.Vec3 `toml:"position" yaml:"position"`

	// the rotation of the camera about X, Y and Z, in degrees
	Rotation mgl32.Vec3 `toml:"rotation" yaml:"rotation"`
}

type Light struct {

	// the ambient light color
	Ambient mgl32.Vec3 `toml:"ambient" yaml:"ambient"`

	// the directional light color
	Color mgl32.Vec3 `toml:"color" yaml:"color"`

	// the direction the light travels, in camera coordinates
	Direction mgl32.Vec3 `toml:"direction" yaml:"direction"`
}

type Material struct {

	// the albedo color multiplier, as hue in degrees, saturation and value
	HSV mgl32.Vec3 `toml:"hsv" yaml:"hsv"`

	// the roughness multiplier
	Roughness float32 `toml:"roughness" yaml:"roughness"`

	// the metalness multiplier
	Metallic float32 `toml:"metallic" yaml:"metallic"`

	// the strength of the normal map
	Normal float32 `toml:"normal" yaml:"normal"`

	// the albedo (base color) texture image
	Albedo string `toml:"albedo" yaml:"albedo"`

	// the roughness texture image
	RoughnessMap string `toml:"roughness_map" yaml:"roughness_map"`

	// the metalness texture image
	MetallicMap string `toml:"metallic_map" yaml:"metallic_map"`

	// the tangent space normal map image
	NormalMap string `toml:"normal_map" yaml:"normal_map"`

	// the ambient occlusion texture image
	AOMap string `toml:"ao_map" yaml:"ao_map"`

	// the largest texture width or height; larger images are scaled down
	MaxTextureSize int `toml:"max_texture_size" yaml:"max_texture_size"`

	// the number of mipmap levels of color textures
	MipLevels int `toml:"mip_levels" yaml:"mip_levels"`
}

type Scene struct {

	// the shape to render: cube, plane or icosahedron
	Shape string `toml:"shape" yaml:"shape"`

	// the position of the shape
	Position mgl32.Vec3 `toml:"position" yaml:"position"`

	// the rotation about Y applied every frame, in degrees
	Spin float32 `toml:"spin" yaml:"spin"`

	// the color the frame is cleared to
	ClearColor mgl32.Vec4 `toml:"clear_color" yaml:"clear_color"`
}

// Defaults returns the configuration of the brick cube demo.
func Defaults() *Config {
	return &Config{
		LogLevel: "info",
		Window:   Window{Title: "renderer demo", Width: 1280, Height: 720, VSync: true},
		GL:       GL{Major: 4, Minor: 6, Debug: true},
		Camera: Camera{
			FOV:      60,
			Near:     0.1,
			Far:      1000,
			Position: mgl32.Vec3{0, 2.5, 0},
			Rotation: mgl32.Vec3{-45, 0, 0},
		},
		Light: Light{
			Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
			Color:     mgl32.Vec3{1, 1, 1},
			Direction: mgl32.Vec3{-1, -1, -1},
		},
		Material: Material{
			HSV:            mgl32.Vec3{0, 0, 1},
			Roughness:      1,
			Metallic:       0.1,
			Normal:         1,
			Albedo:         "assets/bricks/Bricks101_1K-PNG_Color.png",
			RoughnessMap:   "assets/bricks/Bricks101_1K-PNG_Roughness.png",
			NormalMap:      "assets/bricks/Bricks101_1K-PNG_NormalGL.png",
			AOMap:          "assets/bricks/Bricks101_1K-PNG_AmbientOcclusion.png",
			MaxTextureSize: 2048,
			MipLevels:      1,
		},
		Scene: Scene{
			Shape:      "cube",
			Position:   mgl32.Vec3{0, 0, -2.5},
			Spin:       0.2,
			ClearColor: mgl32.Vec4{0.5, 0.5, 0.5, 1},
		},
	}
}

// Open reads the config file over the defaults. The format is chosen
// by extension: .toml, or .yaml / .yml. Relative texture and shader
// paths are resolved against the directory of the file.
func Open(filename string) (*Config, error) {
	cfg := Defaults()
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		err = tomlx.Open(cfg, filename)
	case ".yaml", ".yml":
		err = yamlx.Open(cfg, filename)
	default:
		return nil, fmt.Errorf("config: unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", filename, err)
	}
	cfg.resolve(filepath.Dir(filename))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	slog.Debug("config: loaded", "file", filename)
	return cfg, nil
}

func (cfg *Config) resolve(dir string) {
	for _, p := range []*string{
		&cfg.Shaders.Vertex, &cfg.Shaders.Fragment,
		&cfg.Material.Albedo, &cfg.Material.RoughnessMap, &cfg.Material.MetallicMap,
		&cfg.Material.NormalMap, &cfg.Material.AOMap,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Save writes the config as TOML.
func (cfg *Config) Save(filename string) error {
	return tomlx.Save(cfg, filename)
}

// Validate reports the first invalid setting.
func (cfg *Config) Validate() error {
	if _, err := cfg.Level(); err != nil {
		return err
	}
	switch {
	case cfg.Window.Width <= 0 || cfg.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", cfg.Window.Width, cfg.Window.Height)
	case cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near:
		return fmt.Errorf("camera planes near %g far %g must satisfy 0 < near < far", cfg.Camera.Near, cfg.Camera.Far)
	case cfg.Camera.FOV <= 0 || cfg.Camera.FOV >= 180:
		return fmt.Errorf("camera field of view %g must be in (0, 180)", cfg.Camera.FOV)
	case cfg.Material.MipLevels < 1:
		return fmt.Errorf("material mip levels %d must be at least 1", cfg.Material.MipLevels)
	case cfg.Material.MaxTextureSize < 1:
		return fmt.Errorf("material max texture size %d must be positive", cfg.Material.MaxTextureSize)
	}
	switch cfg.Scene.Shape {
	case "cube", "plane", "icosahedron":
	default:
		return fmt.Errorf("unknown scene shape %q", cfg.Scene.Shape)
	}
	return nil
}

// Level returns the parsed log level.
func (cfg *Config) Level() (slog.Level, error) {
	return logx.ParseLevel(cfg.LogLevel)
}

// Aspect returns the window aspect ratio.
func (cfg *Config) Aspect() float32 {
	return float32(cfg.Window.Width) / float32(cfg.Window.Height)
}
