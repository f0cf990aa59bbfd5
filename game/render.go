package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Draw renders one frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.SkyBlue)

	g.drawSegments()
	g.sparks.draw(g.cam)
	g.drawBody()
	if g.tuning.ShowContacts {
		g.drawContacts()
	}
	g.drawHUD()
	g.panel.Draw(&g.tuning, g.screenW, g.screenH)

	rl.EndDrawing()
}

// drawSegments renders the static level geometry. Friction shades the line:
// slick segments draw lighter.
func (g *Game) drawSegments() {
	for i := range g.world.Level.Segments {
		s := &g.world.Level.Segments[i]
		ax, ay := g.cam.WorldToScreen(s.A)
		bx, by := g.cam.WorldToScreen(s.B)

		shade := uint8(170)
		if s.Friction < 1 {
			shade = uint8(60 + 110*s.Friction)
		}
		color := rl.Color{R: 30, G: 30, B: 30, A: shade + 85}
		rl.DrawLineEx(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, 2, color)
	}
}

// drawBody renders the player circle.
func (g *Game) drawBody() {
	body := g.world.Body
	x, y := g.cam.WorldToScreen(body.Pos)
	r := g.cam.ScaleLen(body.Radius)

	rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r, rl.Red)
	rl.DrawCircleLines(int32(x), int32(y), r, rl.Maroon)
}

// drawContacts overlays the current contact points and normals.
func (g *Game) drawContacts() {
	for _, c := range g.world.Probe() {
		px, py := g.cam.WorldToScreen(c.Point)
		tip := c.Point.Add(c.Normal.Scale(20))
		tx, ty := g.cam.WorldToScreen(tip)

		rl.DrawCircleV(rl.Vector2{X: px, Y: py}, 3, rl.Yellow)
		rl.DrawLineEx(rl.Vector2{X: px, Y: py}, rl.Vector2{X: tx, Y: ty}, 1, rl.Yellow)
	}
}

// drawHUD renders the status text.
func (g *Game) drawHUD() {
	body := g.world.Body
	rl.DrawText(fmt.Sprintf("Tick: %d  FPS: %d", g.tick, rl.GetFPS()), 10, 10, 20, rl.DarkBlue)
	rl.DrawText(fmt.Sprintf("Mode: %s", g.ctrl.Mode()), 10, 35, 20, rl.DarkBlue)
	rl.DrawText(fmt.Sprintf("Pos: (%.0f, %.0f)  Speed: %.0f", body.Pos.X, body.Pos.Y, body.Speed()), 10, 60, 20, rl.DarkBlue)
	rl.DrawText(fmt.Sprintf("Contacts: %d", g.lastInfo.Contacts), 10, 85, 20, rl.DarkBlue)
	rl.DrawText("[WASD] move  [drag] fling  [R] reload  [Tab] tuning", 10, int32(g.screenH)-30, 16, rl.DarkGray)

	if g.paused {
		rl.DrawText("PAUSED", 10, 110, 20, rl.Orange)
	}
}
