package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices. It orbits Target at
// Distance, looking inward.
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Target   mgl32.Vec3
	Distance float32
	Yaw      float32 // degrees around +Y
	Pitch    float32 // degrees above the horizon
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:       60.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
		Distance:  64,
		Yaw:       45,
		Pitch:     30,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Degenerate sizes are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Frame points the camera at the center of a box and backs off far enough
// to keep it in view.
func (c *Camera) Frame(min, max mgl32.Vec3) {
	c.Target = min.Add(max).Mul(0.5)
	c.Distance = max.Sub(min).Len()
	if c.Distance < 1 {
		c.Distance = 1
	}
	if c.FarPlane < c.Distance*4 {
		c.FarPlane = c.Distance * 4
	}
}

// Orbit rotates the camera by the given angles, keeping pitch off the poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -89, 89)
}

// Zoom scales the orbit distance.
func (c *Camera) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.Distance = mgl32.Clamp(c.Distance*factor, 1, c.FarPlane/2)
}

// Position returns the eye position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	cp := float32(math.Cos(float64(pitch)))
	dir := mgl32.Vec3{
		cp * float32(math.Cos(float64(yaw))),
		float32(math.Sin(float64(pitch))),
		cp * float32(math.Sin(float64(yaw))),
	}
	return c.Target.Add(dir.Mul(c.Distance))
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}
