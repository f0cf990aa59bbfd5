// Package physics implements the rigid-body core: a single dynamic circle
// integrated against static line segments.
package physics

import (
	"github.com/pthm-cable/tumble/geom"
)

// Body is the one dynamic circle in the simulation. Position and velocity are
// plain mutable state; invariants (non-penetration, finiteness) are enforced
// by World.Step, not here.
type Body struct {
	Pos geom.Vec2
	Vel geom.Vec2

	Radius      float64
	Mass        float64
	Restitution float64
}

// NewBody creates a body at pos. Radius and mass must be positive; restitution
// is clamped to [0, 1].
func NewBody(pos geom.Vec2, radius, mass, restitution float64) *Body {
	if radius <= 0 {
		radius = 1
	}
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Pos:         pos,
		Radius:      radius,
		Mass:        mass,
		Restitution: geom.Clamp(restitution, 0, 1),
	}
}

// ApplyImpulse adds j/mass to the velocity immediately. Used by drag release
// and anything else that wants a one-shot kick.
func (b *Body) ApplyImpulse(j geom.Vec2) {
	b.Vel = b.Vel.Add(j.Scale(1 / b.Mass))
}

// Speed returns the current velocity magnitude.
func (b *Body) Speed() float64 {
	return b.Vel.Length()
}
