package physics

import (
	"github.com/pthm-cable/tumble/geom"
	"github.com/pthm-cable/tumble/level"
)

// Contact describes one circle-vs-segment overlap.
type Contact struct {
	Point    geom.Vec2 // closest point on the segment
	Normal   geom.Vec2 // unit vector from Point toward the body center
	Depth    float64   // radius minus center distance, > 0
	Friction float64   // the segment's friction
}

// closestOnSegment returns the point on the finite segment [A, B] closest
// to p. The barycentric region split handles the beyond-endpoint cases
// explicitly: a circle past either end collides with that endpoint, not with
// the infinite line.
func closestOnSegment(p geom.Vec2, s *level.Segment) geom.Vec2 {
	e := s.B.Sub(s.A)

	// Region A: p projects before the start
	v := e.Dot(p.Sub(s.A))
	if v <= 0 {
		return s.A
	}

	// Region B: p projects past the end
	u := e.Dot(s.B.Sub(p))
	if u <= 0 {
		return s.B
	}

	// Region AB: interior projection
	t := v / e.LengthSq()
	return s.A.Add(e.Scale(t))
}

// collideCircleSegment tests a circle against one segment. fallback is used
// as the contact normal when the center sits exactly on the segment, where
// the true normal is undefined; it must be a unit vector.
func collideCircleSegment(center geom.Vec2, radius float64, s *level.Segment, fallback geom.Vec2) (Contact, bool) {
	closest := closestOnSegment(center, s)
	d := center.Sub(closest)
	distSq := d.LengthSq()
	if distSq >= radius*radius {
		return Contact{}, false
	}

	normal, ok := d.Normalize()
	depth := radius
	if ok {
		depth = radius - d.Length()
	} else {
		// Degenerate: center coincident with the closest point. Recover
		// with the caller-supplied normal rather than emitting NaN.
		normal = fallback
	}

	return Contact{
		Point:    closest,
		Normal:   normal,
		Depth:    depth,
		Friction: s.Friction,
	}, true
}
