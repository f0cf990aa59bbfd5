package level

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseValid(t *testing.T) {
	data := []byte(`[
		{"a": [0, 0], "b": [100, 0]},
		{"a": [100, 0], "b": [100, 50], "friction": 0.25},
		{"a": [0, 0], "b": [0, 50], "friction": 0}
	]`)

	lvl, err := Parse(data, FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lvl.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(lvl.Segments))
	}

	// Absent friction defaults to 1.0
	if lvl.Segments[0].Friction != DefaultFriction {
		t.Errorf("expected default friction %g, got %g", DefaultFriction, lvl.Segments[0].Friction)
	}
	if lvl.Segments[1].Friction != 0.25 {
		t.Errorf("expected friction 0.25, got %g", lvl.Segments[1].Friction)
	}
	if lvl.Segments[2].Friction != 0 {
		t.Errorf("expected friction 0, got %g", lvl.Segments[2].Friction)
	}

	// Derived values
	s := lvl.Segments[0]
	if s.Length != 100 {
		t.Errorf("expected length 100, got %g", s.Length)
	}
	if math.Abs(s.Normal.Length()-1) > 1e-12 {
		t.Errorf("normal not unit length: %v", s.Normal)
	}
	if math.Abs(s.Normal.Dot(s.B.Sub(s.A))) > 1e-9 {
		t.Errorf("normal not perpendicular to segment: %v", s.Normal)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
- a: [0, 0]
  b: [10, 0]
- a: [10, 0]
  b: [10, 10]
  friction: 0.5
`)
	lvl, err := Parse(data, FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lvl.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(lvl.Segments))
	}
	if lvl.Segments[1].Friction != 0.5 {
		t.Errorf("expected friction 0.5, got %g", lvl.Segments[1].Friction)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "missing a",
			data: `[{"b": [1, 1]}]`,
			want: ErrMalformedLevel,
		},
		{
			name: "missing b",
			data: `[{"a": [1, 1]}]`,
			want: ErrMalformedLevel,
		},
		{
			name: "wrong coordinate count",
			data: `[{"a": [1, 2, 3], "b": [4, 5]}]`,
			want: ErrMalformedLevel,
		},
		{
			name: "non-numeric coordinates",
			data: `[{"a": ["x", 2], "b": [4, 5]}]`,
			want: ErrMalformedLevel,
		},
		{
			name: "not an array",
			data: `{"a": [0, 0]}`,
			want: ErrMalformedLevel,
		},
		{
			name: "zero-length segment",
			data: `[{"a": [5, 5], "b": [5, 5]}]`,
			want: ErrInvalidGeometry,
		},
		{
			name: "negative friction",
			data: `[{"a": [0, 0], "b": [1, 0], "friction": -0.5}]`,
			want: ErrInvalidFriction,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), FormatJSON)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseNonFiniteYAML(t *testing.T) {
	// YAML can express non-finite floats; they must be rejected.
	data := []byte(`
- a: [.nan, 0]
  b: [1, 0]
`)
	_, err := Parse(data, FormatYAML)
	if !errors.Is(err, ErrMalformedLevel) {
		t.Errorf("expected ErrMalformedLevel for NaN coordinate, got %v", err)
	}
}

func TestErrorReportsEntryIndex(t *testing.T) {
	data := `[
		{"a": [0, 0], "b": [1, 0]},
		{"a": [2, 2], "b": [2, 2]}
	]`
	_, err := Parse([]byte(data), FormatJSON)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "entry 1") {
		t.Errorf("error should name the offending entry index: %v", err)
	}
}

func TestLoadIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.json")
	data := `[
		{"a": [0, 40], "b": [800, 40]},
		{"a": [100, 200], "b": [400, 120], "friction": 0.3}
	]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	first, err := Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !first.Equal(second) {
		t.Error("reloading the same file should produce an identical level")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrMalformedLevel) {
		t.Errorf("expected ErrMalformedLevel for missing file, got %v", err)
	}
}

func TestDefaultLevel(t *testing.T) {
	lvl := Default()
	if len(lvl.Segments) == 0 {
		t.Fatal("embedded default level is empty")
	}
	min, max := lvl.Bounds()
	if min.X >= max.X || min.Y >= max.Y {
		t.Errorf("degenerate bounds: min=%v max=%v", min, max)
	}
}

func TestBounds(t *testing.T) {
	lvl, err := Parse([]byte(`[
		{"a": [-10, 5], "b": [20, 5]},
		{"a": [0, -3], "b": [0, 40]}
	]`), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	min, max := lvl.Bounds()
	if min.X != -10 || min.Y != -3 || max.X != 20 || max.Y != 40 {
		t.Errorf("bounds wrong: min=%v max=%v", min, max)
	}
}
