package physics

import (
	"math"

	"github.com/pthm-cable/tumble/geom"
	"github.com/pthm-cable/tumble/level"
)

// DefaultMaxSubsteps bounds integration subdivision per tick.
const DefaultMaxSubsteps = 8

// upNormal is the last-resort contact normal for degenerate geometry at the
// very first contact of a run.
var upNormal = geom.Vec2{X: 0, Y: 1}

// World owns the level geometry and the dynamic body. There is no package
// global state; every subsystem receives the world explicitly.
type World struct {
	Level   *level.Level
	Body    *Body
	Gravity geom.Vec2 // typically (0, -g); world is y-up

	// MaxSubsteps caps the tunneling-prevention subdivision. Zero means
	// DefaultMaxSubsteps.
	MaxSubsteps int

	// FrictionScale multiplies every segment's friction, for live tuning.
	FrictionScale float64

	// lastNormal is the fallback for contacts whose normal is undefined.
	lastNormal geom.Vec2
}

// NewWorld builds a world with the given level, body and gravity magnitude
// (applied along -Y).
func NewWorld(lvl *level.Level, body *Body, gravity float64) *World {
	return &World{
		Level:         lvl,
		Body:          body,
		Gravity:       geom.Vec2{X: 0, Y: -gravity},
		FrictionScale: 1,
		lastNormal:    upNormal,
	}
}

// StepInfo summarizes what one fixed tick did, for telemetry and effects.
type StepInfo struct {
	Contacts      int       // contacts resolved across all substeps
	Impact        float64   // largest normal-velocity change absorbed this tick
	ImpactPoint   geom.Vec2 // where Impact happened
	ResidualDepth float64   // deepest remaining penetration after the tick
}

// Step advances the body by one fixed timestep: semi-implicit Euler (velocity
// first, then position) followed by collision resolution against every
// segment in level order.
func (w *World) Step(dt float64) StepInfo {
	return w.step(dt, nil)
}

// StepDriven advances one tick with the velocity pinned to v. Gravity is
// suppressed for the tick; collisions still resolve. This is the kinematic
// keyboard override.
func (w *World) StepDriven(v geom.Vec2, dt float64) StepInfo {
	return w.step(dt, &v)
}

func (w *World) step(dt float64, drive *geom.Vec2) StepInfo {
	b := w.Body
	if drive != nil {
		b.Vel = *drive
	} else {
		b.Vel = b.Vel.Add(w.Gravity.Scale(dt))
	}

	var info StepInfo
	n := w.substeps(dt)
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		b.Pos = b.Pos.Add(b.Vel.Scale(h))
		w.resolve(&info)
	}

	info.ResidualDepth = w.residualDepth()
	return info
}

// substeps subdivides the tick so the body travels at most half its radius
// per narrow-phase pass. Without this, speed*dt > radius lets the body cross
// a segment entirely between checks.
func (w *World) substeps(dt float64) int {
	max := w.MaxSubsteps
	if max <= 0 {
		max = DefaultMaxSubsteps
	}
	travel := w.Body.Speed() * dt
	n := int(math.Ceil(travel / (w.Body.Radius / 2)))
	if n < 1 {
		n = 1
	}
	if n > max {
		n = max
	}
	return n
}

// resolve runs one sequential-impulse pass over the segments in level order.
// Each contact is corrected immediately: position pushed out along the
// normal, normal velocity reflected by restitution when moving into the
// surface, tangential velocity damped by the segment's friction. With a
// single dynamic body this converges without a global solve; it would not
// for body-body contact graphs.
func (w *World) resolve(info *StepInfo) {
	b := w.Body
	for i := range w.Level.Segments {
		c, ok := collideCircleSegment(b.Pos, b.Radius, &w.Level.Segments[i], w.lastNormal)
		if !ok {
			continue
		}
		info.Contacts++
		w.lastNormal = c.Normal

		// Positional correction: push fully out of the segment.
		b.Pos = b.Pos.Add(c.Normal.Scale(c.Depth))

		vn := b.Vel.Dot(c.Normal)
		if vn >= 0 {
			// Already separating; position fix only.
			continue
		}

		tangent := c.Normal.Perp()
		vt := b.Vel.Dot(tangent)

		newVn := -b.Restitution * vn
		newVt := vt * (1 - math.Min(c.Friction*w.FrictionScale, 1))
		b.Vel = c.Normal.Scale(newVn).Add(tangent.Scale(newVt))

		if dv := newVn - vn; dv > info.Impact {
			info.Impact = dv
			info.ImpactPoint = c.Point
		}
	}
}

// residualDepth measures the deepest penetration left after resolution.
// Sequential correction against one segment can push into another; this is
// the honest post-tick number the non-penetration tolerance is judged by.
func (w *World) residualDepth() float64 {
	b := w.Body
	deepest := 0.0
	for i := range w.Level.Segments {
		c, ok := collideCircleSegment(b.Pos, b.Radius, &w.Level.Segments[i], w.lastNormal)
		if ok && c.Depth > deepest {
			deepest = c.Depth
		}
	}
	return deepest
}

// Probe returns the current contacts without mutating anything. Used by the
// debug overlay.
func (w *World) Probe() []Contact {
	b := w.Body
	var contacts []Contact
	for i := range w.Level.Segments {
		if c, ok := collideCircleSegment(b.Pos, b.Radius, &w.Level.Segments[i], w.lastNormal); ok {
			contacts = append(contacts, c)
		}
	}
	return contacts
}
