// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package brdf implements a physically based rendering pipeline: a
// general vertex shader for [xyz.Mesh] instances and a Cook-Torrance
// BRDF fragment shader lit by one directional light.
//
// The shaders read three uniform blocks, each with a fixed binding:
// the camera ([Frame]), the light ([Lighting]) and the surface
// ([Material]). Rendering a frame is then:
//
//	pl.Use()
//	frame.SetCamera(cam)
//	lighting.Use()
//	material.Use()
//	mesh.Draw(instances)
package brdf

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"cogentcore.org/glrender/base/errors"
	"cogentcore.org/glrender/gpu"
	"github.com/fsnotify/fsnotify"
)

//go:embed shaders/*.glsl
var shaders embed.FS

// Uniform buffer binding points of the pipeline blocks.
const (
	CameraBinding   uint32 = 0
	LightBinding    uint32 = 1
	MaterialBinding uint32 = 2
)

// Paths of the built-in shaders in the embedded file system.
const (
	GeneralVertexShader = "shaders/general.vert.glsl"
	BRDFFragmentShader  = "shaders/brdf.frag.glsl"
)

// Pipeline is the linked BRDF program. The shaders are the built-in
// ones unless VertexFile or FragmentFile name a file to load instead;
// those files can be watched and reloaded while running.
type Pipeline struct {
	// VertexFile overrides the built-in vertex shader when set.
	VertexFile string

	// FragmentFile overrides the built-in fragment shader when set.
	FragmentFile string

	dev     gpu.Device
	program gpu.Program
	pending atomic.Bool
}

// NewPipeline compiles and links the pipeline program, reading the
// shaders from the given files, or the built-in ones for empty paths.
func NewPipeline(dev gpu.Device, vertexFile, fragmentFile string) (*Pipeline, error) {
	pl := &Pipeline{VertexFile: vertexFile, FragmentFile: fragmentFile, dev: dev}
	prog, err := pl.build()
	if err != nil {
		return nil, err
	}
	pl.program = prog
	return pl, nil
}

func (pl *Pipeline) shader(typ gpu.ShaderType, file, builtin string) (gpu.Shader, error) {
	if file != "" {
		return gpu.ShaderFromFile(pl.dev, typ, file)
	}
	src, err := shaders.ReadFile(builtin)
	if err != nil {
		return gpu.Shader{}, err
	}
	return gpu.NewShader(pl.dev, typ, string(src))
}

func (pl *Pipeline) build() (gpu.Program, error) {
	vs, err := pl.shader(gpu.VertexShader, pl.VertexFile, GeneralVertexShader)
	if err != nil {
		return gpu.Program{}, err
	}
	defer vs.Release()
	fs, err := pl.shader(gpu.FragmentShader, pl.FragmentFile, BRDFFragmentShader)
	if err != nil {
		return gpu.Program{}, err
	}
	defer fs.Release()
	return gpu.NewProgram(pl.dev, vs, fs)
}

// Program returns the current program, without adding a reference.
func (pl *Pipeline) Program() gpu.Program {
	return pl.program
}

// Use makes the pipeline program current.
func (pl *Pipeline) Use() {
	pl.program.Use()
}

// Reload recompiles the program from its sources. On failure the
// error is logged and returned, and the previous program stays in use.
func (pl *Pipeline) Reload() error {
	prog, err := pl.build()
	if err != nil {
		return errors.Log(fmt.Errorf("brdf: reload failed, keeping previous program: %w", err))
	}
	pl.program.Release()
	pl.program = prog
	slog.Info("brdf: reloaded shaders", "program", prog.Name())
	return nil
}

// ReloadPending reports whether a watched shader file changed since the
// last call. Reloading must happen on the thread owning the context, so
// the render loop polls this and calls [Pipeline.Reload].
func (pl *Pipeline) ReloadPending() bool {
	return pl.pending.Swap(false)
}

// Watch watches the shader override files until ctx is done, flagging
// a reload when one of them is written or replaced. The directories are
// watched rather than the files, so editors that save by renaming a new
// file into place are seen too.
func (pl *Pipeline) Watch(ctx context.Context) error {
	files := map[string]bool{}
	for _, f := range []string{pl.VertexFile, pl.FragmentFile} {
		if f != "" {
			files[filepath.Clean(f)] = true
		}
	}
	if len(files) == 0 {
		return errors.New("brdf: no shader files to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for f := range files {
		if err := watcher.Add(filepath.Dir(f)); err != nil {
			watcher.Close()
			return err
		}
	}
	go pl.watch(ctx, watcher, files)
	return nil
}

func (pl *Pipeline) watch(ctx context.Context, watcher *fsnotify.Watcher, files map[string]bool) {
	defer watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				slog.Debug("brdf: shader changed", "file", event.Name, "op", event.Op)
				pl.pending.Store(true)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("brdf: shader watcher", "err", err)
		}
	}
}

func (pl *Pipeline) Release() {
	pl.program.Release()
}
