// Package camera provides the viewport into the simulation world.
//
// World coordinates are y-up (gravity is -Y, matching the level files);
// screen coordinates are y-down. The camera owns that flip so nothing else
// in the repo has to think about it.
package camera

import "github.com/pthm-cable/tumble/geom"

// Camera eases toward a follow target and converts between world and screen
// space. Pure math, no window library types.
type Camera struct {
	// Pos is the camera center in world coordinates.
	Pos geom.Vec2

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification).
	Zoom float32

	// Viewport dimensions in pixels.
	ViewportW, ViewportH float32

	// Smoothing is the follow easing rate per second. Zero snaps.
	Smoothing float64

	MinZoom, MaxZoom float32
}

// New creates a camera centered on pos with 1:1 zoom.
func New(pos geom.Vec2, viewportW, viewportH float32, smoothing float64) *Camera {
	return &Camera{
		Pos:       pos,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Smoothing: smoothing,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// Follow eases the camera toward target over one tick.
func (c *Camera) Follow(target geom.Vec2, dt float64) {
	t := c.Smoothing * dt
	if t >= 1 || c.Smoothing == 0 {
		c.Pos = target
		return
	}
	c.Pos = c.Pos.Lerp(target, t)
}

// WorldToScreen converts a world point to screen pixels, flipping the y axis.
func (c *Camera) WorldToScreen(w geom.Vec2) (sx, sy float32) {
	z := float64(c.Zoom)
	sx = c.ViewportW/2 + float32((w.X-c.Pos.X)*z)
	sy = c.ViewportH/2 - float32((w.Y-c.Pos.Y)*z)
	return sx, sy
}

// ScreenToWorld is the inverse of WorldToScreen, used to translate pointer
// positions into the physics world.
func (c *Camera) ScreenToWorld(sx, sy float32) geom.Vec2 {
	z := float64(c.Zoom)
	return geom.Vec2{
		X: c.Pos.X + float64(sx-c.ViewportW/2)/z,
		Y: c.Pos.Y - float64(sy-c.ViewportH/2)/z,
	}
}

// ScaleLen converts a world-space length to pixels.
func (c *Camera) ScaleLen(l float64) float32 {
	return float32(l * float64(c.Zoom))
}

// ClampToBounds keeps the view inside the level's bounding box where the box
// is larger than the view; on an axis where it is smaller, the camera centers
// on the box instead.
func (c *Camera) ClampToBounds(min, max geom.Vec2) {
	halfW := float64(c.ViewportW) / (2 * float64(c.Zoom))
	halfH := float64(c.ViewportH) / (2 * float64(c.Zoom))

	c.Pos.X = clampAxis(c.Pos.X, min.X, max.X, halfW)
	c.Pos.Y = clampAxis(c.Pos.Y, min.Y, max.Y, halfH)
}

func clampAxis(pos, lo, hi, half float64) float64 {
	if hi-lo <= 2*half {
		return (lo + hi) / 2
	}
	return geom.Clamp(pos, lo+half, hi-half)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	if zoom < c.MinZoom {
		zoom = c.MinZoom
	}
	if zoom > c.MaxZoom {
		zoom = c.MaxZoom
	}
	c.Zoom = zoom
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Resize updates viewport dimensions after a window resize.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}
