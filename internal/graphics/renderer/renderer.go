package renderer

import (
	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/graphics"
	"github.com/profan/dear-xenko/internal/profiling"

	"github.com/pkg/errors"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
	width       int
	height      int
}

// NewRenderer creates a new renderer with the given renderables. Renderables
// are initialised in order; on failure the ones already initialised are
// disposed.
func NewRenderer(camera *graphics.Camera, width, height int, rs ...Renderable) (*Renderer, error) {
	r := &Renderer{camera: camera}
	for i, rr := range rs {
		if err := rr.Init(); err != nil {
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, errors.Wrapf(err, "init renderable %d", i)
		}
	}
	r.renderables = rs
	r.SetViewport(width, height)
	return r, nil
}

// Render executes one frame over all features
func (r *Renderer) Render(dt float64) {
	defer profiling.Track("renderer.Render")()

	ctx := RenderContext{
		Camera:    r.camera,
		DT:        dt,
		View:      r.camera.GetViewMatrix(),
		Proj:      r.camera.GetProjectionMatrix(),
		Wireframe: config.WireframeMode(),
		Width:     r.width,
		Height:    r.height,
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
	r.renderables = nil
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// SetViewport forwards a framebuffer resize to the camera and every feature
func (r *Renderer) SetViewport(width, height int) {
	r.width, r.height = width, height
	r.camera.SetViewport(width, height)
	for _, renderable := range r.renderables {
		renderable.SetViewport(width, height)
	}
}
