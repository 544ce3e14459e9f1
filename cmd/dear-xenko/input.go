package main

import (
	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	orbitSpeed = 0.25 // degrees per pixel dragged
	orbitRate  = 90   // degrees per second with a key held
	zoomStep   = 1.1
)

func newInputManager() *input.InputManager {
	im := input.NewInputManager()
	im.BindKey(input.Key(glfw.KeyLeft), input.ActionOrbitLeft)
	im.BindKey(input.Key(glfw.KeyA), input.ActionOrbitLeft)
	im.BindKey(input.Key(glfw.KeyRight), input.ActionOrbitRight)
	im.BindKey(input.Key(glfw.KeyD), input.ActionOrbitRight)
	im.BindKey(input.Key(glfw.KeyUp), input.ActionOrbitUp)
	im.BindKey(input.Key(glfw.KeyW), input.ActionOrbitUp)
	im.BindKey(input.Key(glfw.KeyDown), input.ActionOrbitDown)
	im.BindKey(input.Key(glfw.KeyS), input.ActionOrbitDown)
	im.BindKey(input.Key(glfw.KeyEqual), input.ActionZoomIn)
	im.BindKey(input.Key(glfw.KeyKPAdd), input.ActionZoomIn)
	im.BindKey(input.Key(glfw.KeyMinus), input.ActionZoomOut)
	im.BindKey(input.Key(glfw.KeyKPSubtract), input.ActionZoomOut)
	im.BindKey(input.Key(glfw.KeyF), input.ActionToggleWireframe)
	im.BindKey(input.Key(glfw.KeyV), input.ActionToggleStats)
	im.BindKey(input.Key(glfw.KeyR), input.ActionRemesh)
	im.BindKey(input.Key(glfw.KeyEscape), input.ActionQuit)
	im.BindMouseButton(input.Button(glfw.MouseButtonLeft), input.ActionDrag)
	return im
}

// setupInputHandlers forwards window events to the input manager. Must run
// on the main thread.
func setupInputHandlers(app *App) {
	window := app.window
	im := app.input

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(input.Key(key), int(action))
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(input.Button(button), int(action))
	})
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		im.HandleCursor(xpos, ypos)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		im.HandleScroll(yoff)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		app.renderer.SetViewport(fbWidth, fbHeight)
	})
}

// handleInput applies this frame's actions. It runs between main-thread
// calls, so the camera is not being read concurrently.
func (a *App) handleInput(dt float64) {
	im := a.input
	defer im.PostUpdate()

	if im.JustPressed(input.ActionQuit) {
		a.requestClose()
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		a.log.Info("wireframe", "enabled", config.ToggleWireframeMode())
	}
	if im.JustPressed(input.ActionToggleStats) {
		config.ToggleStats()
	}
	if im.JustPressed(input.ActionRemesh) {
		a.world.MarkAllDirty()
		a.log.Info("remesh requested", "chunks", a.world.NumChunks())
	}

	camera := a.renderer.GetCamera()
	step := float32(orbitRate * dt)
	var yaw, pitch float32
	if im.IsActive(input.ActionOrbitLeft) {
		yaw -= step
	}
	if im.IsActive(input.ActionOrbitRight) {
		yaw += step
	}
	if im.IsActive(input.ActionOrbitUp) {
		pitch += step
	}
	if im.IsActive(input.ActionOrbitDown) {
		pitch -= step
	}
	dx, dy := im.Drag()
	yaw += float32(dx) * orbitSpeed
	pitch += float32(dy) * orbitSpeed
	if yaw != 0 || pitch != 0 {
		camera.Orbit(yaw, pitch)
	}

	if im.JustPressed(input.ActionZoomIn) {
		camera.Zoom(1 / zoomStep)
	}
	if im.JustPressed(input.ActionZoomOut) {
		camera.Zoom(zoomStep)
	}
	if s := im.Scroll(); s > 0 {
		camera.Zoom(1 / zoomStep)
	} else if s < 0 {
		camera.Zoom(zoomStep)
	}
}
