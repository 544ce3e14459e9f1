package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCameraFrame(t *testing.T) {
	c := NewCamera(900, 600)
	c.Frame(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{64, 64, 128})
	if c.Target != (mgl32.Vec3{32, 32, 64}) {
		t.Fatalf("Target: got %v", c.Target)
	}
	dist := c.Position().Sub(c.Target).Len()
	if !mgl32.FloatEqualThreshold(dist, c.Distance, 1e-3) {
		t.Fatalf("eye distance: got %f, want %f", dist, c.Distance)
	}
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	c := NewCamera(100, 100)
	c.Orbit(10, 500)
	if c.Pitch != 89 {
		t.Fatalf("Pitch: got %f, want 89", c.Pitch)
	}
	c.Orbit(0, -1000)
	if c.Pitch != -89 {
		t.Fatalf("Pitch: got %f, want -89", c.Pitch)
	}
}

func TestCameraViewport(t *testing.T) {
	c := NewCamera(900, 600)
	c.SetViewport(0, 10)
	if !mgl32.FloatEqual(c.AspectRatio, 1.5) {
		t.Fatalf("AspectRatio after degenerate viewport: got %f", c.AspectRatio)
	}
}

func TestCheckUpload(t *testing.T) {
	if err := CheckUpload(16, 0, 16); err != nil {
		t.Fatalf("full upload: %v", err)
	}
	if err := CheckUpload(16, 8, 9); err == nil {
		t.Fatalf("overflowing upload accepted")
	}
	if _, err := CheckAllocation(0, 28); err == nil {
		t.Fatalf("zero-element allocation accepted")
	}
	if n, err := CheckAllocation(16, 28); err != nil || n != 448 {
		t.Fatalf("CheckAllocation(16, 28): got %d, %v", n, err)
	}
}
