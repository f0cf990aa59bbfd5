// Package ui draws the in-window tuning panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the live-adjustable simulation parameters. The game seeds it
// from config at startup and reads it back every frame; the panel writes it.
type Tuning struct {
	Gravity       float32
	Restitution   float32
	MoveSpeed     float32
	FrictionScale float32

	ShowContacts bool
	Sparks       bool
}

// Panel renders the tuning sidebar when open.
type Panel struct {
	Open bool

	width float32
}

// NewPanel creates a closed tuning panel.
func NewPanel() *Panel {
	return &Panel{width: 260}
}

// Toggle flips panel visibility.
func (p *Panel) Toggle() {
	p.Open = !p.Open
}

// Draw renders the panel at the right edge of the screen and applies any
// slider changes to t. Must be called between BeginDrawing/EndDrawing.
func (p *Panel) Draw(t *Tuning, screenW, screenH float32) {
	if !p.Open {
		return
	}

	x := screenW - p.width
	rl.DrawRectangle(int32(x), 0, int32(p.width), int32(screenH), rl.Color{R: 20, G: 24, B: 34, A: 230})
	rl.DrawLine(int32(x), 0, int32(x), int32(screenH), rl.Gray)

	px := x + 15
	py := float32(10)

	rl.DrawText("Tuning", int32(px), int32(py), 20, rl.RayWhite)
	py += 35

	py = p.slider(px, py, "Gravity", "0", "2000", &t.Gravity, 0, 2000)
	py = p.slider(px, py, "Restitution", "0", "1", &t.Restitution, 0, 1)
	py = p.slider(px, py, "Move speed", "50", "1000", &t.MoveSpeed, 50, 1000)
	py = p.slider(px, py, "Friction scale", "0", "2", &t.FrictionScale, 0, 2)

	rl.DrawLine(int32(px), int32(py), int32(x+p.width-15), int32(py), rl.Gray)
	py += 15

	t.ShowContacts = gui.CheckBox(
		rl.Rectangle{X: px, Y: py, Width: 18, Height: 18},
		"Draw contacts", t.ShowContacts)
	py += 28

	t.Sparks = gui.CheckBox(
		rl.Rectangle{X: px, Y: py, Width: 18, Height: 18},
		"Impact sparks", t.Sparks)
}

// slider draws one labeled slider row and returns the next row's Y.
func (p *Panel) slider(x, y float32, label, lo, hi string, value *float32, min, max float32) float32 {
	rl.DrawText(label, int32(x), int32(y), 14, rl.LightGray)
	y += 18
	*value = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: p.width - 100, Height: 20},
		lo, hi,
		*value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.1f", *value), int32(x+p.width-75), int32(y+2), 16, rl.RayWhite)
	return y + 35
}
