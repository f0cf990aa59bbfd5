package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tumble/geom"
	"github.com/pthm-cable/tumble/input"
)

// handleInput processes frame-level keys: everything that is not body
// control. Body control lives in the per-tick snapshot.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.reloadLevel()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1.0 + wheel*0.1)
	}
}

// handleResize propagates new window dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenW && h == g.screenH {
		return
	}
	g.screenW = w
	g.screenH = h
	g.cam.Resize(w, h)
}

// pollSnapshot reads the current raylib input state into a per-tick
// snapshot. The pointer is translated into world coordinates here so the
// controller never sees screen space.
func (g *Game) pollSnapshot() input.Snapshot {
	var move geom.Vec2
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		move.X -= 1
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		move.X += 1
	}
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		move.Y += 1 // world is y-up
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		move.Y -= 1
	}

	mouse := rl.GetMousePosition()
	return input.Snapshot{
		Move:       move,
		Pointer:    g.cam.ScreenToWorld(mouse.X, mouse.Y),
		ButtonDown: rl.IsMouseButtonPressed(rl.MouseLeftButton),
		ButtonHeld: rl.IsMouseButtonDown(rl.MouseLeftButton),
		ButtonUp:   rl.IsMouseButtonReleased(rl.MouseLeftButton),
	}
}
