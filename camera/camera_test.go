package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/tumble/geom"
)

func TestNew(t *testing.T) {
	cam := New(geom.Vec2{X: 100, Y: 200}, 800, 600, 5)

	if cam.Pos.X != 100 || cam.Pos.Y != 200 {
		t.Errorf("expected camera at (100, 200), got %v", cam.Pos)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(geom.Vec2{X: 100, Y: 200}, 800, 600, 5)

	// The camera center maps to the screen center.
	sx, sy := cam.WorldToScreen(geom.Vec2{X: 100, Y: 200})
	if math.Abs(float64(sx-400)) > 0.01 || math.Abs(float64(sy-300)) > 0.01 {
		t.Errorf("expected screen center (400, 300), got (%f, %f)", sx, sy)
	}
}

func TestYAxisFlip(t *testing.T) {
	cam := New(geom.Vec2{X: 0, Y: 0}, 800, 600, 5)

	// World up is screen up: larger world y means smaller screen y.
	_, syLow := cam.WorldToScreen(geom.Vec2{X: 0, Y: 0})
	_, syHigh := cam.WorldToScreen(geom.Vec2{X: 0, Y: 100})
	if syHigh >= syLow {
		t.Errorf("expected higher world point above on screen: y=0 -> %f, y=100 -> %f", syLow, syHigh)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(geom.Vec2{X: 1000, Y: 600}, 800, 600, 5)
	cam.SetZoom(1.5)

	testCases := []struct{ sx, sy float32 }{
		{400, 300}, // center
		{50, 50},   // top-left
		{780, 590}, // near bottom-right
	}

	for _, tc := range testCases {
		w := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(w)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)",
				tc.sx, tc.sy, w, sx, sy)
		}
	}
}

func TestFollowEasing(t *testing.T) {
	cam := New(geom.Vec2{}, 800, 600, 5)
	target := geom.Vec2{X: 100, Y: 0}

	cam.Follow(target, 1.0/60.0)

	// One tick at rate 5/s covers 5/60 of the remaining distance.
	want := 100.0 * 5.0 / 60.0
	if math.Abs(cam.Pos.X-want) > 1e-9 {
		t.Errorf("expected eased x=%g, got %g", want, cam.Pos.X)
	}

	// Repeated follow converges onto the target.
	for i := 0; i < 1000; i++ {
		cam.Follow(target, 1.0/60.0)
	}
	if math.Abs(cam.Pos.X-100) > 0.01 {
		t.Errorf("camera did not converge: x=%g", cam.Pos.X)
	}
}

func TestFollowSnapsWithoutSmoothing(t *testing.T) {
	cam := New(geom.Vec2{}, 800, 600, 0)
	cam.Follow(geom.Vec2{X: 42, Y: -7}, 1.0/60.0)
	if cam.Pos.X != 42 || cam.Pos.Y != -7 {
		t.Errorf("expected snap to target, got %v", cam.Pos)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(geom.Vec2{}, 800, 600, 5)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestClampToBounds(t *testing.T) {
	cam := New(geom.Vec2{X: 0, Y: 600}, 800, 600, 5)

	// Level is 2000x1200; the 800x600 view must stay inside.
	cam.ClampToBounds(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 2000, Y: 1200})
	if cam.Pos.X != 400 {
		t.Errorf("expected x clamped to 400, got %g", cam.Pos.X)
	}
	if cam.Pos.Y != 600 {
		t.Errorf("expected y untouched at 600, got %g", cam.Pos.Y)
	}

	// Level narrower than the view on one axis: center on it.
	cam.Pos = geom.Vec2{X: 9999, Y: 600}
	cam.ClampToBounds(geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 500, Y: 1200})
	if cam.Pos.X != 250 {
		t.Errorf("expected centering on narrow axis, got x=%g", cam.Pos.X)
	}
}

func TestScaleLen(t *testing.T) {
	cam := New(geom.Vec2{}, 800, 600, 5)
	cam.SetZoom(2)
	if cam.ScaleLen(25) != 50 {
		t.Errorf("expected 50 pixels for 25 world units at 2x, got %f", cam.ScaleLen(25))
	}
}
