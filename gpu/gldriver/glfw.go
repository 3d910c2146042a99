// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gldriver

import (
	"fmt"
	"log/slog"

	"cogentcore.org/glrender/base/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.

// Init initializes glfw.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts down glfw -- call as last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// WindowOptions are the parameters of [CreateWindow].
type WindowOptions struct {
	Title         string
	Width, Height int

	// Major and Minor are the requested OpenGL core profile version.
	Major, Minor int

	// Debug requests a debug context and routes its messages to slog.
	Debug bool

	// VSync synchronizes buffer swaps with the display refresh.
	VSync bool
}

// Window is a fixed size glfw window with a current OpenGL context,
// and the [Device] of that context.
type Window struct {
	*glfw.Window
	Device *Device
}

// CreateWindow initializes glfw and opens a non resizable window with a
// core profile context of the requested version, made current on the
// calling thread. Escape closes the window.
func CreateWindow(opts WindowOptions) (*Window, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, opts.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, opts.Minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	window, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		Terminate()
		return nil, fmt.Errorf("gldriver: creating %dx%d window: %w", opts.Width, opts.Height, err)
	}
	window.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	dev, err := NewDevice()
	if err != nil {
		window.Destroy()
		Terminate()
		return nil, err
	}
	if opts.Debug {
		dev.EnableDebugOutput()
	}
	w, h := window.GetFramebufferSize()
	dev.Viewport(w, h)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	slog.Debug("gldriver: window", "title", opts.Title, "width", opts.Width, "height", opts.Height)
	return &Window{Window: window, Device: dev}, nil
}

// PollEvents processes pending events, and returns false once the
// window should close.
func (w *Window) PollEvents() bool {
	if w.ShouldClose() {
		return false
	}
	glfw.PollEvents()
	return !w.ShouldClose()
}

// Terminate destroys the window and shuts down glfw.
func (w *Window) Terminate() {
	w.Destroy()
	Terminate()
}
