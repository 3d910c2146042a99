// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"os"
)

type shaderObject struct {
	refs
	name uint32
	typ  ShaderType
}

// Shader is a shared handle to a compiled shader object.
// The zero Shader is valid and refers to nothing.
type Shader struct {
	obj *shaderObject
}

// NewShader compiles src as a shader of the given type.
// Compile errors are returned with the driver's log.
func NewShader(dev Device, typ ShaderType, src string) (Shader, error) {
	name, err := dev.CreateShader(typ, src)
	if err != nil {
		slog.Error("shader compilation failed", "type", typ.String(), "err", err)
		return Shader{}, fmt.Errorf("gpu: %s shader compilation error: %w", typ, err)
	}
	if name == 0 {
		return Shader{}, fmt.Errorf("gpu: %s shader compilation returned no object", typ)
	}
	ob := &shaderObject{name: name, typ: typ}
	ob.init(func() { dev.DeleteShader(name) })
	return Shader{obj: ob}, nil
}

// ShaderFromFile reads the shader source at path and compiles it.
func ShaderFromFile(dev Device, typ ShaderType, path string) (Shader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Shader{}, fmt.Errorf("gpu: reading %s shader from %q: %w", typ, path, err)
	}
	sh, err := NewShader(dev, typ, string(src))
	if err != nil {
		return Shader{}, fmt.Errorf("%w (file %q)", err, path)
	}
	return sh, nil
}

func (s Shader) Valid() bool { return s.obj != nil }

func (s Shader) Name() uint32 {
	if s.obj == nil {
		return 0
	}
	return s.obj.name
}

// Type returns the stage the shader was compiled for, 0 for the zero handle.
func (s Shader) Type() ShaderType {
	if s.obj == nil {
		return 0
	}
	return s.obj.typ
}

func (s Shader) Refs() int {
	if s.obj == nil {
		return 0
	}
	return s.obj.count
}

func (s Shader) Ref() Shader {
	if s.obj != nil {
		s.obj.acquire()
	}
	return s
}

func (s *Shader) Release() {
	if s.obj == nil {
		return
	}
	ob := s.obj
	s.obj = nil
	ob.release()
}

func (s *Shader) Set(o Shader) {
	if s.obj == o.obj {
		return
	}
	s.Release()
	*s = o.Ref()
}

func (s *Shader) Take() Shader {
	o := *s
	s.obj = nil
	return o
}

type programObject struct {
	refs
	dev  Device
	name uint32
}

// Program is a shared handle to a linked shader program.
type Program struct {
	obj *programObject
}

// NewProgram links the given shaders into a program. All shaders must
// be valid. The shaders may be released once the program is linked.
func NewProgram(dev Device, shaders ...Shader) (Program, error) {
	if len(shaders) == 0 {
		return Program{}, fmt.Errorf("gpu: program needs at least one shader")
	}
	names := make([]uint32, len(shaders))
	for i, sh := range shaders {
		if !sh.Valid() {
			return Program{}, fmt.Errorf("gpu: program shader %d: %w", i, ErrInvalid)
		}
		names[i] = sh.Name()
	}
	name, err := dev.CreateProgram(names...)
	if err != nil {
		slog.Error("shader linking failed", "err", err)
		return Program{}, fmt.Errorf("gpu: shader linking error: %w", err)
	}
	if name == 0 {
		return Program{}, fmt.Errorf("gpu: shader linking returned no object")
	}
	ob := &programObject{dev: dev, name: name}
	ob.init(func() { dev.DeleteProgram(name) })
	return Program{obj: ob}, nil
}

func (p Program) Valid() bool { return p.obj != nil }

func (p Program) Name() uint32 {
	if p.obj == nil {
		return 0
	}
	return p.obj.name
}

func (p Program) Refs() int {
	if p.obj == nil {
		return 0
	}
	return p.obj.count
}

// Use makes the program current. It does nothing for the zero handle.
func (p Program) Use() {
	if p.obj == nil {
		return
	}
	p.obj.dev.UseProgram(p.obj.name)
}

func (p Program) Ref() Program {
	if p.obj != nil {
		p.obj.acquire()
	}
	return p
}

func (p *Program) Release() {
	if p.obj == nil {
		return
	}
	ob := p.obj
	p.obj = nil
	ob.release()
}

func (p *Program) Set(o Program) {
	if p.obj == o.obj {
		return
	}
	p.Release()
	*p = o.Ref()
}

func (p *Program) Take() Program {
	o := *p
	p.obj = nil
	return o
}
