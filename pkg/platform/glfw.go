// pkg/platform/glfw.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package platform creates the windows and OpenGL contexts that devices
// are built on, using GLFW.
package platform

import (
	"fmt"

	"github.com/mmp/glstate/pkg/log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type Config struct {
	// ContextVersion is the requested OpenGL version, e.g. {3, 3}. 3.2
	// and later request a forward-compatible core profile.
	ContextVersion [2]int
	WindowSize     [2]int
	// Visible windows are shown; by default the window stays hidden and
	// is only used for its context.
	Visible bool
	Samples int
	Title   string
}

// Window holds a GLFW window and its context. GLFW must be used from
// the main thread, so callers must have locked the OS thread.
type Window struct {
	window *glfw.Window
	config Config
	lg     *log.Logger
}

// New initializes GLFW and returns a window whose context has been made
// current on the calling thread.
func New(config Config, lg *log.Logger) (*Window, error) {
	lg.Info("Starting GLFW initialization")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}
	lg.Infof("GLFW: %s", glfw.GetVersionString())

	if config.ContextVersion == [2]int{} {
		config.ContextVersion = [2]int{2, 1}
	}
	if config.WindowSize[0] == 0 || config.WindowSize[1] == 0 {
		config.WindowSize = [2]int{256, 256}
	}
	if config.Title == "" {
		config.Title = "glstate"
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, config.ContextVersion[0])
	glfw.WindowHint(glfw.ContextVersionMinor, config.ContextVersion[1])
	if config.ContextVersion[0] > 3 || (config.ContextVersion[0] == 3 && config.ContextVersion[1] >= 2) {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if !config.Visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	if config.Samples > 1 {
		glfw.WindowHint(glfw.Samples, config.Samples)
	}

	window, err := glfw.CreateWindow(config.WindowSize[0], config.WindowSize[1], config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create %d.%d window: %w", config.ContextVersion[0],
			config.ContextVersion[1], err)
	}
	window.MakeContextCurrent()

	lg.Info("Finished GLFW initialization", "version", config.ContextVersion, "size", config.WindowSize)
	return &Window{window: window, config: config, lg: lg}, nil
}

// FramebufferSize returns the size of the default framebuffer in pixels,
// which may differ from the window size on high-DPI displays.
func (w *Window) FramebufferSize() [2]int {
	x, y := w.window.GetFramebufferSize()
	return [2]int{x, y}
}

func (w *Window) WindowSize() [2]int {
	x, y := w.window.GetSize()
	return [2]int{x, y}
}

// PostRender swaps buffers and processes pending window events.
func (w *Window) PostRender() {
	w.window.SwapBuffers()
	glfw.PollEvents()
}

func (w *Window) Dispose() {
	w.lg.Info("Destroying window")
	w.window.Destroy()
	glfw.Terminate()
}
