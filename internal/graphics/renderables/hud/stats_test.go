package hud

import (
	"strings"
	"testing"
	"time"

	"github.com/profan/dear-xenko/internal/game"
	"github.com/profan/dear-xenko/internal/graphics/renderables/blocks"
)

func TestStatsOverlayReport(t *testing.T) {
	o := NewStatsOverlay(func() blocks.RendererStats {
		return blocks.RendererStats{Records: 4, Vertices: 96, Indices: 144, VertexBytes: 4096, IndexBytes: 2048}
	})
	if o.Image() != nil || o.Version() != 0 {
		t.Fatalf("fresh overlay already has an image")
	}

	o.Report(game.SweepStats{Sweep: 1, Chunks: 4, Faces: 24, Duration: 2 * time.Millisecond})
	lines := o.Lines()
	if len(lines) < 3 {
		t.Fatalf("lines: got %q", lines)
	}
	if lines[0] != "Sweep 1: 4 chunks, 24 faces in 2ms" {
		t.Fatalf("sweep line: got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Chunks: 4") || !strings.Contains(lines[2], "4 KiB vertex") {
		t.Fatalf("renderer lines: got %q / %q", lines[1], lines[2])
	}
	if o.Version() != 1 {
		t.Fatalf("version: got %d, want 1", o.Version())
	}
}

func TestStatsOverlayImage(t *testing.T) {
	o := NewStatsOverlay(nil)
	o.Refresh()
	img := o.Image()
	if img == nil {
		t.Fatalf("no image after Refresh")
	}
	b := img.Bounds()
	if b.Dx() <= 2*padding || b.Dy() != len(o.Lines())*13+2*padding {
		t.Fatalf("image bounds: got %v for %d lines", b, len(o.Lines()))
	}

	// some pixel must carry glyph ink
	lit := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 255 && img.Pix[i+3] == 255 {
			lit = true
			break
		}
	}
	if !lit {
		t.Fatalf("no text drawn")
	}

	// Image returns a copy
	img.Pix[0] = 1
	if o.Image().Pix[0] == 1 {
		t.Fatalf("Image aliases the overlay's buffer")
	}
}

func TestStatsOverlayFrameHistory(t *testing.T) {
	o := NewStatsOverlay(nil)
	for i := 0; i < historyLen+10; i++ {
		o.FrameTime(time.Millisecond)
	}
	o.FrameTime(9 * time.Millisecond)
	o.Refresh()

	found := false
	for _, l := range o.Lines() {
		if strings.HasPrefix(l, "Frame: ") {
			found = true
			if !strings.Contains(l, "9ms max") {
				t.Fatalf("frame line: got %q", l)
			}
		}
	}
	if !found {
		t.Fatalf("no frame line in %q", o.Lines())
	}
	if len(o.history) != historyLen {
		t.Fatalf("history: got %d, want %d", len(o.history), historyLen)
	}
}

var _ game.Reporter = (*StatsOverlay)(nil)
