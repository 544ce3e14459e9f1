package opengl

import (
	"image"

	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// ImageSource produces a screen-space image. Version changes whenever the
// image does; Image returns a copy safe to read on the GL thread.
type ImageSource interface {
	Version() uint64
	Image() *image.RGBA
}

// Overlay draws an ImageSource in the top-left corner of the window.
type Overlay struct {
	source ImageSource
	margin float32

	shader   *Shader
	texture  uint32
	vao, vbo uint32

	version    uint64
	texW, texH int
	screen     mgl32.Vec2
}

func NewOverlay(source ImageSource) *Overlay {
	return &Overlay{source: source, margin: 8}
}

func (o *Overlay) Init() error {
	shader, err := NewShader(overlayVertexShader, overlayFragmentShader)
	if err != nil {
		return errors.Wrap(err, "overlay shader")
	}
	o.shader = shader

	gl.GenTextures(1, &o.texture)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	// two triangles, x y u v, rewritten whenever the texture size changes
	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return nil
}

func (o *Overlay) Render(ctx renderer.RenderContext) {
	if !config.ShowStats() {
		return
	}
	if v := o.source.Version(); v != o.version || o.texW == 0 {
		o.upload(o.source.Image())
		o.version = v
	}
	if o.texW == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	defer func() {
		gl.Disable(gl.BLEND)
		gl.Enable(gl.DEPTH_TEST)
	}()

	o.shader.Use()
	o.shader.SetVec2("screen", o.screen)
	o.shader.SetInt("tex", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (o *Overlay) upload(img *image.RGBA) {
	if img == nil || img.Rect.Empty() {
		return
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if w != o.texW || h != o.texH {
		o.texW, o.texH = w, h
		x0, y0 := o.margin, o.margin
		x1, y1 := x0+float32(w), y0+float32(h)
		quad := []float32{
			x0, y0, 0, 0,
			x0, y1, 0, 1,
			x1, y1, 1, 1,
			x0, y0, 0, 0,
			x1, y1, 1, 1,
			x1, y0, 1, 0,
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad))
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	}
}

func (o *Overlay) SetViewport(width, height int) {
	o.screen = mgl32.Vec2{float32(width), float32(height)}
}

func (o *Overlay) Dispose() {
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
	if o.texture != 0 {
		gl.DeleteTextures(1, &o.texture)
	}
	if o.shader != nil {
		o.shader.Delete()
	}
}
