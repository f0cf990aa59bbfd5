// Package level loads static collision geometry from declarative level files.
package level

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/tumble/geom"
)

// Load errors. All are fatal at startup; callers report and exit before
// opening a window.
var (
	// ErrMalformedLevel indicates a structural problem: undecodable file,
	// missing endpoint, or non-finite coordinates.
	ErrMalformedLevel = errors.New("malformed level")

	// ErrInvalidGeometry indicates a zero-length segment (a == b).
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidFriction indicates a negative friction value.
	ErrInvalidFriction = errors.New("invalid friction")
)

// DefaultFriction is used when an entry omits the friction field.
const DefaultFriction = 1.0

//go:embed default_level.json
var defaultJSON []byte

// Segment is a static line obstacle. Immutable after load.
type Segment struct {
	A, B     geom.Vec2
	Normal   geom.Vec2 // unit perpendicular of B-A (counter-clockwise side)
	Length   float64
	Friction float64
}

// Level is an ordered, read-only sequence of segments. Order is file order;
// it only affects collision resolution order, never which contacts exist.
type Level struct {
	Segments []Segment
}

// rawSegment mirrors one level-file entry before validation.
type rawSegment struct {
	A        []float64 `json:"a" yaml:"a"`
	B        []float64 `json:"b" yaml:"b"`
	Friction *float64  `json:"friction" yaml:"friction"`
}

// Load reads a level from a JSON (.json) or YAML (.yml/.yaml) file.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMalformedLevel, path, err)
	}
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		return Parse(data, FormatYAML)
	default:
		return Parse(data, FormatJSON)
	}
}

// Format selects the level file encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Default returns the embedded sample level. It is validated like any other
// level; a broken embed is a programming error, hence the panic.
func Default() *Level {
	lvl, err := Parse(defaultJSON, FormatJSON)
	if err != nil {
		panic(fmt.Sprintf("level: embedded default is invalid: %v", err))
	}
	return lvl
}

// Parse decodes and validates raw level data. The store is rebuilt wholesale;
// there is no API to patch a loaded level in place.
func Parse(data []byte, format Format) (*Level, error) {
	var raws []rawSegment
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raws)
	default:
		err = json.Unmarshal(data, &raws)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decoding: %v", ErrMalformedLevel, err)
	}

	segs := make([]Segment, 0, len(raws))
	for i, raw := range raws {
		seg, err := buildSegment(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		segs = append(segs, seg)
	}
	return &Level{Segments: segs}, nil
}

// buildSegment validates a raw entry and derives the segment's normal and length.
func buildSegment(raw rawSegment) (Segment, error) {
	a, err := point(raw.A, "a")
	if err != nil {
		return Segment{}, err
	}
	b, err := point(raw.B, "b")
	if err != nil {
		return Segment{}, err
	}

	d := b.Sub(a)
	length := d.Length()
	normal, ok := d.Perp().Normalize()
	if !ok {
		return Segment{}, fmt.Errorf("%w: zero-length segment at (%g, %g)", ErrInvalidGeometry, a.X, a.Y)
	}

	friction := DefaultFriction
	if raw.Friction != nil {
		if *raw.Friction < 0 || math.IsNaN(*raw.Friction) {
			return Segment{}, fmt.Errorf("%w: friction %g, must be >= 0", ErrInvalidFriction, *raw.Friction)
		}
		friction = *raw.Friction
	}

	return Segment{A: a, B: b, Normal: normal, Length: length, Friction: friction}, nil
}

// point validates a [x, y] coordinate pair.
func point(coords []float64, field string) (geom.Vec2, error) {
	if coords == nil {
		return geom.Vec2{}, fmt.Errorf("%w: missing field %q", ErrMalformedLevel, field)
	}
	if len(coords) != 2 {
		return geom.Vec2{}, fmt.Errorf("%w: field %q has %d coordinates, want 2", ErrMalformedLevel, field, len(coords))
	}
	p := geom.Vec2{X: coords[0], Y: coords[1]}
	if !p.IsFinite() {
		return geom.Vec2{}, fmt.Errorf("%w: field %q has non-finite coordinates", ErrMalformedLevel, field)
	}
	return p, nil
}

// Bounds returns the axis-aligned bounding box of all segment endpoints.
// An empty level reports a zero box at the origin.
func (l *Level) Bounds() (min, max geom.Vec2) {
	if len(l.Segments) == 0 {
		return geom.Vec2{}, geom.Vec2{}
	}
	min = l.Segments[0].A
	max = l.Segments[0].A
	for _, s := range l.Segments {
		for _, p := range [2]geom.Vec2{s.A, s.B} {
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
		}
	}
	return min, max
}

// Equal reports whether two levels are element-wise identical.
func (l *Level) Equal(o *Level) bool {
	if len(l.Segments) != len(o.Segments) {
		return false
	}
	for i := range l.Segments {
		if l.Segments[i] != o.Segments[i] {
			return false
		}
	}
	return true
}
