package main

import (
	"log/slog"
	"time"

	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/game"
	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/graphics/opengl"
	"github.com/profan/dear-xenko/internal/graphics/renderables/blocks"
	"github.com/profan/dear-xenko/internal/graphics/renderables/hud"
	"github.com/profan/dear-xenko/internal/graphics/renderer"
	"github.com/profan/dear-xenko/internal/input"
	"github.com/profan/dear-xenko/internal/profiling"
	"github.com/profan/dear-xenko/internal/world"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	statsRefresh = 250 * time.Millisecond
	slowFrame    = 16 * time.Millisecond
)

// App owns the window loop. It runs on its own goroutine and hands every
// GL and window call to the main thread.
type App struct {
	window   *glfw.Window
	world    *world.World
	input    *input.InputManager
	driver   *game.Driver
	renderer *renderer.Renderer
	chunks   *blocks.ChunkRenderer
	stats    *hud.StatsOverlay
	log      *slog.Logger

	fpsLimiter  *game.FPSLimiter
	lastTime    time.Time
	lastRefresh time.Time
}

// runWindowed opens a window and runs the frame loop until it is closed or
// an upload fails.
func runWindowed(cfg *config.Config, w *world.World, log *slog.Logger) error {
	var window *glfw.Window
	err := mainthread.CallErr(func() error {
		if err := glfw.Init(); err != nil {
			return errors.Wrap(err, "init glfw")
		}
		var err error
		window, err = setupWindow(cfg.WindowWidth, cfg.WindowHeight)
		if err != nil {
			glfw.Terminate()
		}
		return err
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(glfw.Terminate)

	exec := opengl.WithExecutor(mainthread.Call)
	device := opengl.NewDevice(exec)
	scene := opengl.NewScene(device, exec)
	chunks := blocks.NewChunkRenderer(device, scene,
		blocks.WithLogger(log),
		blocks.WithInitialCapacity(cfg.InitialBufferElements),
	)
	stats := hud.NewStatsOverlay(chunks.Stats)
	driver := game.NewDriver(w, chunks,
		game.WithLogger(log),
		game.WithNeighborCulling(cfg.NeighborCulling),
		game.WithReporter(game.Reporters{stats, game.LogReporter{Log: log}}),
	)

	var r *renderer.Renderer
	err = mainthread.CallErr(func() error {
		fbWidth, fbHeight := window.GetFramebufferSize()
		camera := graphics.NewCamera(fbWidth, fbHeight)
		bx, by, bz := w.Bounds()
		camera.Frame(mgl32.Vec3{}, mgl32.Vec3{float32(bx), float32(by), float32(bz)})

		var err error
		r, err = renderer.NewRenderer(camera, fbWidth, fbHeight, scene, opengl.NewOverlay(stats))
		return err
	})
	if err != nil {
		return err
	}

	app := &App{
		window:     window,
		world:      w,
		input:      newInputManager(),
		driver:     driver,
		renderer:   r,
		chunks:     chunks,
		stats:      stats,
		log:        log,
		fpsLimiter: game.NewFPSLimiter(),
		lastTime:   time.Now(),
	}
	mainthread.Call(func() { setupInputHandlers(app) })
	defer app.dispose()
	return app.Run()
}

func (a *App) Run() error {
	for !a.shouldClose() {
		if err := a.tick(); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) shouldClose() bool {
	var done bool
	mainthread.Call(func() { done = a.window.ShouldClose() })
	return done
}

func (a *App) tick() error {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(a.lastTime).Seconds()
	a.lastTime = start

	mainthread.Call(glfw.PollEvents)
	a.handleInput(dt)

	if err := a.driver.Tick(dt); err != nil {
		return errors.Wrap(err, "mesh sweep")
	}

	mainthread.Call(func() {
		a.renderer.Render(dt)
		a.window.SwapBuffers()
	})

	frame := time.Since(start)
	a.stats.FrameTime(frame)
	if start.Sub(a.lastRefresh) >= statsRefresh {
		a.stats.Refresh()
		a.lastRefresh = start
	}
	if frame > slowFrame {
		a.log.Debug("slow frame", "took", frame, "top", profiling.TopN(5))
	}

	a.fpsLimiter.Wait(a.driver.State() == game.StateIdle)
	return nil
}

func (a *App) requestClose() {
	mainthread.Call(func() { a.window.SetShouldClose(true) })
}

func (a *App) dispose() {
	if err := a.chunks.Dispose(); err != nil {
		a.log.Warn("release chunk buffers", "err", err)
	}
	mainthread.Call(func() {
		a.renderer.Dispose()
		a.window.Destroy()
	})
}
