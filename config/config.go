// Package config provides configuration loading and access for the demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Input     InputConfig     `yaml:"input"`
	Camera    CameraConfig    `yaml:"camera"`
	Effects   EffectsConfig   `yaml:"effects"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds simulation parameters.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`             // magnitude, applied along -Y
	DT               float64 `yaml:"dt"`                  // fixed timestep in seconds
	MaxTicksPerFrame int     `yaml:"max_ticks_per_frame"` // accumulator drain cap
	MaxSubsteps      int     `yaml:"max_substeps"`        // tunneling-prevention cap
}

// PlayerConfig holds the dynamic body's parameters.
type PlayerConfig struct {
	Radius      float64 `yaml:"radius"`
	Mass        float64 `yaml:"mass"`
	Restitution float64 `yaml:"restitution"` // clamped to [0, 1]
	StartX      float64 `yaml:"start_x"`
	StartY      float64 `yaml:"start_y"`
}

// InputConfig holds control parameters.
type InputConfig struct {
	MoveSpeed   float64 `yaml:"move_speed"`   // keyboard kinematic speed, world units/s
	FlingWindow int     `yaml:"fling_window"` // pointer samples for release velocity
}

// CameraConfig holds follow-camera parameters.
type CameraConfig struct {
	Smoothing float64 `yaml:"smoothing"` // follow easing rate per second
	MinZoom   float64 `yaml:"min_zoom"`
	MaxZoom   float64 `yaml:"max_zoom"`
}

// EffectsConfig holds impact spark parameters.
type EffectsConfig struct {
	Sparks          bool    `yaml:"sparks"`
	ImpactThreshold float64 `yaml:"impact_threshold"` // min normal-velocity change to emit
	MaxSparks       int     `yaml:"max_sparks"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32 for render-side use
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived clamps out-of-range values and calculates derived fields.
func (c *Config) computeDerived() {
	if c.Physics.DT <= 0 {
		c.Physics.DT = 1.0 / 60.0
	}
	if c.Physics.MaxTicksPerFrame <= 0 {
		c.Physics.MaxTicksPerFrame = 5
	}
	if c.Player.Restitution < 0 {
		c.Player.Restitution = 0
	}
	if c.Player.Restitution > 1 {
		c.Player.Restitution = 1
	}
	if c.Player.Radius <= 0 {
		c.Player.Radius = 25
	}
	if c.Player.Mass <= 0 {
		c.Player.Mass = 1
	}
	if c.Camera.MinZoom <= 0 {
		c.Camera.MinZoom = 0.25
	}
	if c.Camera.MaxZoom < c.Camera.MinZoom {
		c.Camera.MaxZoom = c.Camera.MinZoom
	}

	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
