// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command renderdemo renders a textured, slowly spinning cube lit by a
// directional light with the BRDF pipeline.
//
// Usage:
//
//	renderdemo [-config demo.toml] [-v | -vv | -q]
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"runtime"
	"time"

	"cogentcore.org/glrender/base/logx"
	"cogentcore.org/glrender/config"
	"cogentcore.org/glrender/gpu/gldriver"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	cfgFile := flag.String("config", "", "the TOML or YAML config file; the built-in defaults when empty")
	verbose := flag.Bool("v", false, "print info messages")
	veryVerbose := flag.Bool("vv", false, "print debug messages")
	quiet := flag.Bool("q", false, "print only error messages")
	flag.Parse()

	logx.UserLevel = logx.LevelFromFlags(*veryVerbose, *verbose, *quiet)
	logx.SetDefaultLogger()

	cfg := config.Defaults()
	if *cfgFile != "" {
		var err error
		if cfg, err = config.Open(*cfgFile); err != nil {
			slog.Error("renderdemo: loading config", "err", err)
			return 1
		}
		if !*verbose && !*veryVerbose && !*quiet && cfg.LogLevel != "" {
			logx.UserLevel, _ = cfg.Level()
			logx.SetDefaultLogger()
		}
	}

	win, err := gldriver.CreateWindow(gldriver.WindowOptions{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Major:  cfg.GL.Major,
		Minor:  cfg.GL.Minor,
		Debug:  cfg.GL.Debug,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		slog.Error("renderdemo: creating window", "err", err)
		return 1
	}
	defer win.Terminate()
	dev := win.Device
	dev.EnableDepthAndCulling()
	dev.SetClearColor(cfg.Scene.ClearColor)

	sc, err := newScene(dev, cfg)
	if err != nil {
		slog.Error("renderdemo: building scene", "err", err)
		return 1
	}
	defer sc.release()

	if cfg.Shaders.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := sc.pipeline.Watch(ctx); err != nil {
			slog.Warn("renderdemo: not watching shaders", "err", err)
		}
	}

	frameCount := 0
	stTime := time.Now()
	for win.PollEvents() {
		dev.Clear()
		sc.draw()
		win.SwapBuffers()

		frameCount++
		if eTime := time.Since(stTime); eTime >= 10*time.Second {
			slog.Info("renderdemo: frame rate", "fps", float64(frameCount)/eTime.Seconds())
			frameCount = 0
			stTime = time.Now()
		}
	}
	return 0
}
