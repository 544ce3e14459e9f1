package main

import (
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

func init() {
	runtime.LockOSThread()
}

// setupWindow creates a 4.1 core context window and loads the GL bindings.
// Must run on the main thread.
func setupWindow(width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, "dear-xenko", nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, errors.Wrap(err, "init gl")
	}

	// FPSLimiter paces frames
	glfw.SwapInterval(0)
	return window, nil
}
