// Package game wires the physics world, input controller, camera and
// telemetry into the fixed-timestep simulation loop.
package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/tumble/camera"
	"github.com/pthm-cable/tumble/config"
	"github.com/pthm-cable/tumble/geom"
	"github.com/pthm-cable/tumble/input"
	"github.com/pthm-cable/tumble/level"
	"github.com/pthm-cable/tumble/physics"
	"github.com/pthm-cable/tumble/telemetry"
	"github.com/pthm-cable/tumble/ui"
)

// Options configures a game instance.
type Options struct {
	LevelPath string // empty = embedded default level
	Seed      int64
	LogStats  bool
	OutputDir string
	Headless  bool
}

// Game holds the complete simulation state. Everything is owned by the one
// loop goroutine; nothing here is shared across threads.
type Game struct {
	cfg  *config.Config
	opts Options

	world *physics.World
	ctrl  *input.Controller
	cam   *camera.Camera

	sparks *sparkSystem
	panel  *ui.Panel
	tuning ui.Tuning

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	rng       *rand.Rand

	tick        int64
	paused      bool
	accumulator float64
	lastInfo    physics.StepInfo
	dropped     int64 // accumulated time discarded at the tick cap, frames

	screenW, screenH float32
}

// NewGame builds a game around an already-loaded level. Level loading happens
// in main so malformed files abort before any window opens.
func NewGame(cfg *config.Config, lvl *level.Level, opts Options) (*Game, error) {
	body := physics.NewBody(
		geom.Vec2{X: cfg.Player.StartX, Y: cfg.Player.StartY},
		cfg.Player.Radius, cfg.Player.Mass, cfg.Player.Restitution,
	)

	w := physics.NewWorld(lvl, body, cfg.Physics.Gravity)
	w.MaxSubsteps = cfg.Physics.MaxSubsteps

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		opts:      opts,
		world:     w,
		ctrl:      input.NewController(cfg.Input.MoveSpeed, cfg.Input.FlingWindow),
		cam:       camera.New(body.Pos, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Camera.Smoothing),
		panel:     ui.NewPanel(),
		collector: telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Physics.DT),
		output:    output,
		rng:       rand.New(rand.NewSource(opts.Seed)),
		screenW:   cfg.Derived.ScreenW32,
		screenH:   cfg.Derived.ScreenH32,
	}
	g.cam.MinZoom = float32(cfg.Camera.MinZoom)
	g.cam.MaxZoom = float32(cfg.Camera.MaxZoom)
	g.sparks = newSparkSystem(cfg.Effects.MaxSparks, g.rng)
	g.tuning = ui.Tuning{
		Gravity:       float32(cfg.Physics.Gravity),
		Restitution:   float32(cfg.Player.Restitution),
		MoveSpeed:     float32(cfg.Input.MoveSpeed),
		FrictionScale: 1,
		ShowContacts:  false,
		Sparks:        cfg.Effects.Sparks,
	}
	return g, nil
}

// Update runs one frame in graphical mode: poll input, drain the fixed-step
// accumulator, then ease the camera.
func (g *Game) Update() {
	g.handleInput()

	dt := g.cfg.Physics.DT
	frame := float64(rl.GetFrameTime())
	snap := g.pollSnapshot()

	if !g.paused {
		g.accumulator += frame

		ran := 0
		for g.accumulator >= dt && ran < g.cfg.Physics.MaxTicksPerFrame {
			g.step(snap, dt)
			g.accumulator -= dt
			ran++
		}
		// Spiral-of-death guard: when the machine cannot keep up, drop the
		// backlog instead of stalling forever.
		if g.accumulator >= dt {
			g.accumulator = 0
			g.dropped++
		}
	}

	g.cam.Follow(g.world.Body.Pos, frame)
	min, max := g.world.Level.Bounds()
	g.cam.ClampToBounds(min, max)
}

// UpdateHeadless runs exactly one simulation tick with no window library
// involved. Used by -headless runs and useful for soak-testing telemetry.
func (g *Game) UpdateHeadless() {
	g.step(input.Snapshot{}, g.cfg.Physics.DT)
}

// step advances the simulation by one fixed tick: controller, then the
// physics world, then effects and telemetry.
func (g *Game) step(snap input.Snapshot, dt float64) {
	g.applyTuning()

	body := g.world.Body
	cmd := g.ctrl.Update(snap, body, dt)

	var info physics.StepInfo
	dragging := false
	switch cmd.Kind {
	case input.CommandDrag:
		// Kinematic teleport: follow the pointer, no physics this tick.
		body.Pos = cmd.Position
		body.Vel = geom.Vec2{}
		dragging = true
	case input.CommandDrive:
		info = g.world.StepDriven(cmd.Velocity, dt)
	case input.CommandFling:
		body.Vel = cmd.Velocity
		info = g.world.Step(dt)
	default:
		info = g.world.Step(dt)
	}
	g.lastInfo = info

	if g.tuning.Sparks && info.Impact >= g.cfg.Effects.ImpactThreshold {
		g.sparks.emit(info.ImpactPoint, info.Impact)
	}
	g.sparks.update(dt)

	g.collector.RecordTick(info, body.Speed(), dragging)
	g.tick++

	if g.collector.ShouldFlush(g.tick) {
		stats := g.collector.Flush(g.tick)
		if g.opts.LogStats {
			stats.Log()
		}
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("writing telemetry", "error", err)
		}
	}
}

// applyTuning pushes live panel values into the simulation.
func (g *Game) applyTuning() {
	g.world.Gravity = geom.Vec2{X: 0, Y: -float64(g.tuning.Gravity)}
	g.world.Body.Restitution = geom.Clamp(float64(g.tuning.Restitution), 0, 1)
	g.world.FrictionScale = geom.Clamp(float64(g.tuning.FrictionScale), 0, 2)
	g.ctrl.MoveSpeed = float64(g.tuning.MoveSpeed)
}

// reloadLevel rebuilds the segment store wholesale from the level file.
// Unlike startup, a runtime reload failure must not kill the loop: the old
// level stays in place and the error is logged.
func (g *Game) reloadLevel() {
	var lvl *level.Level
	if g.opts.LevelPath == "" {
		lvl = level.Default()
	} else {
		var err error
		lvl, err = level.Load(g.opts.LevelPath)
		if err != nil {
			slog.Error("level reload failed, keeping current level",
				"path", g.opts.LevelPath, "error", err)
			return
		}
	}
	g.world.Level = lvl
	slog.Info("level reloaded", "path", g.opts.LevelPath, "segments", len(lvl.Segments))
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int64 {
	return g.tick
}

// Unload flushes telemetry output.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing telemetry output", "error", err)
	}
}
