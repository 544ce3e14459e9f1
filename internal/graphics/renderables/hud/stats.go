// Package hud rasterises debug statistics into an image that a backend can
// show on top of the scene.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"
	"time"

	"github.com/profan/dear-xenko/internal/config"
	"github.com/profan/dear-xenko/internal/game"
	"github.com/profan/dear-xenko/internal/graphics/renderables/blocks"
	"github.com/profan/dear-xenko/internal/profiling"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	historyLen = 60
	padding    = 4
	topTimers  = 5
)

var (
	background = color.RGBA{0, 0, 0, 160}
	foreground = image.NewUniform(color.RGBA{255, 255, 255, 255})
)

// StatsOverlay collects sweep reports and frame times and keeps a rendered
// text panel of them. It is safe to feed from the game loop while the GL
// thread reads the image.
type StatsOverlay struct {
	mu sync.Mutex

	rendererStats func() blocks.RendererStats
	face          font.Face

	last    game.SweepStats
	sweeps  int
	history []time.Duration

	lines   []string
	img     *image.RGBA
	version uint64
}

// NewStatsOverlay creates an overlay. rendererStats may be nil.
func NewStatsOverlay(rendererStats func() blocks.RendererStats) *StatsOverlay {
	return &StatsOverlay{
		rendererStats: rendererStats,
		face:          basicfont.Face7x13,
		history:       make([]time.Duration, 0, historyLen),
	}
}

// Report implements game.Reporter.
func (o *StatsOverlay) Report(stats game.SweepStats) {
	o.mu.Lock()
	o.last = stats
	o.sweeps++
	o.mu.Unlock()
	o.Refresh()
}

// FrameTime records the duration of one frame.
func (o *StatsOverlay) FrameTime(d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.history) == historyLen {
		copy(o.history, o.history[1:])
		o.history = o.history[:historyLen-1]
	}
	o.history = append(o.history, d)
}

// Refresh rebuilds the text and the image.
func (o *StatsOverlay) Refresh() {
	var rs *blocks.RendererStats
	if o.rendererStats != nil {
		s := o.rendererStats()
		rs = &s
	}
	top := profiling.TopN(topTimers)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = o.buildLines(rs, top)
	o.img = o.rasterize(o.lines)
	o.version++
}

func (o *StatsOverlay) buildLines(rs *blocks.RendererStats, top string) []string {
	lines := make([]string, 0, 8+topTimers)
	if o.sweeps == 0 {
		lines = append(lines, "Sweep: none yet")
	} else {
		lines = append(lines, fmt.Sprintf("Sweep %d: %d chunks, %d faces in %s",
			o.last.Sweep, o.last.Chunks, o.last.Faces, profiling.FormatMs(o.last.Duration)))
	}
	if rs != nil {
		lines = append(lines,
			fmt.Sprintf("Chunks: %d  vertices: %d  indices: %d", rs.Records, rs.Vertices, rs.Indices),
			fmt.Sprintf("Buffers: %d KiB vertex, %d KiB index, %d reallocations",
				rs.VertexBytes/1024, rs.IndexBytes/1024, rs.Reallocations),
		)
	}
	if len(o.history) > 0 {
		var total, worst time.Duration
		for _, d := range o.history {
			total += d
			worst = max(worst, d)
		}
		avg := total / time.Duration(len(o.history))
		lines = append(lines, fmt.Sprintf("Frame: %s avg, %s max", profiling.FormatMs(avg), profiling.FormatMs(worst)))
	}
	mode := "off"
	if config.WireframeMode() {
		mode = "on"
	}
	lines = append(lines, "Wireframe: "+mode+" (F)")
	if top != "" {
		for _, line := range strings.Split(top, ", ") {
			lines = append(lines, "  "+line)
		}
	}
	return lines
}

func (o *StatsOverlay) rasterize(lines []string) *image.RGBA {
	metrics := o.face.Metrics()
	lineH := metrics.Height.Ceil()
	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(o.face, l).Ceil())
	}
	img := image.NewRGBA(image.Rect(0, 0, width+2*padding, lineH*len(lines)+2*padding))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	d := font.Drawer{Dst: img, Src: foreground, Face: o.face}
	for i, l := range lines {
		d.Dot = fixed.P(padding, padding+i*lineH+metrics.Ascent.Ceil())
		d.DrawString(l)
	}
	return img
}

// Lines returns a copy of the current text.
func (o *StatsOverlay) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.lines...)
}

// Version changes every time the image is rebuilt.
func (o *StatsOverlay) Version() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.version
}

// Image returns a copy of the current panel, or nil before the first
// Refresh.
func (o *StatsOverlay) Image() *image.RGBA {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.img == nil {
		return nil
	}
	cp := image.NewRGBA(o.img.Rect)
	copy(cp.Pix, o.img.Pix)
	return cp
}
