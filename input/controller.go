// Package input turns per-tick polled input snapshots into body control
// commands. There are no registered callbacks; the game polls the window
// library once per frame and feeds the result here, which keeps tick
// ordering deterministic and the state machine testable without a window.
package input

import (
	"github.com/pthm-cable/tumble/geom"
	"github.com/pthm-cable/tumble/physics"
)

// Mode is the controller state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeKeyboard
	ModeDragging
	ModeReleased
)

// String returns the mode name for HUD display.
func (m Mode) String() string {
	switch m {
	case ModeKeyboard:
		return "keyboard"
	case ModeDragging:
		return "dragging"
	case ModeReleased:
		return "released"
	default:
		return "idle"
	}
}

// Snapshot is the polled input state for one tick. Pointer is in world
// coordinates; the camera transform happens before the snapshot is built.
type Snapshot struct {
	Move       geom.Vec2 // sum of pressed movement key directions
	Pointer    geom.Vec2
	ButtonDown bool // left button went down this tick
	ButtonHeld bool // left button is held
	ButtonUp   bool // left button went up this tick
}

// CommandKind tells the simulation what to do with the body this tick.
type CommandKind int

const (
	// CommandNone: plain gravity step.
	CommandNone CommandKind = iota
	// CommandDrive: pin the body velocity to Velocity for this tick.
	CommandDrive
	// CommandDrag: teleport the body to Position, zero its velocity, and
	// skip the physics step.
	CommandDrag
	// CommandFling: set the body velocity to Velocity (drag release), then
	// step normally.
	CommandFling
)

// Command is the controller's output for one tick.
type Command struct {
	Kind     CommandKind
	Velocity geom.Vec2
	Position geom.Vec2
}

// DefaultFlingWindow is how many pointer samples the release velocity is
// smoothed over. A single-tick delta is too noisy against OS mouse event
// batching; ~83ms at 60Hz matches the original fling feel.
const DefaultFlingWindow = 5

type pointerSample struct {
	pos geom.Vec2
	t   float64
}

// Controller maps input snapshots to commands. Exactly one control source
// applies per tick: an active drag takes precedence over the keyboard.
type Controller struct {
	// MoveSpeed is the kinematic keyboard speed in world units per second.
	MoveSpeed float64

	mode    Mode
	window  int
	samples []pointerSample
	now     float64
}

// NewController creates a controller. flingWindow <= 1 falls back to
// DefaultFlingWindow.
func NewController(moveSpeed float64, flingWindow int) *Controller {
	if flingWindow <= 1 {
		flingWindow = DefaultFlingWindow
	}
	return &Controller{
		MoveSpeed: moveSpeed,
		window:    flingWindow,
	}
}

// Mode returns the current controller state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Update advances the state machine by one tick and returns the command to
// apply to the body. body is read-only here; the caller applies the command.
func (c *Controller) Update(snap Snapshot, body *physics.Body, dt float64) Command {
	c.now += dt

	// Released is a one-tick state; it decays to Idle at the start of the
	// following tick.
	if c.mode == ModeReleased {
		c.mode = ModeIdle
	}

	if c.mode == ModeDragging {
		return c.updateDrag(snap)
	}

	// Start a drag only when the press lands on the body.
	if snap.ButtonDown && snap.Pointer.Sub(body.Pos).Length() <= body.Radius {
		c.mode = ModeDragging
		c.samples = c.samples[:0]
		c.push(snap.Pointer)
		return Command{Kind: CommandDrag, Position: snap.Pointer}
	}

	if snap.Move.LengthSq() > 0 {
		c.mode = ModeKeyboard
		return Command{Kind: CommandDrive, Velocity: snap.Move.Scale(c.MoveSpeed)}
	}

	c.mode = ModeIdle
	return Command{Kind: CommandNone}
}

// updateDrag follows the pointer and detects release. A missing release edge
// (focus loss eats the button-up event) is treated as a release too.
func (c *Controller) updateDrag(snap Snapshot) Command {
	if snap.ButtonUp || !snap.ButtonHeld {
		c.push(snap.Pointer)
		v := c.flingVelocity()
		c.mode = ModeReleased
		c.samples = c.samples[:0]
		return Command{Kind: CommandFling, Velocity: v}
	}

	c.push(snap.Pointer)
	return Command{Kind: CommandDrag, Position: snap.Pointer}
}

// push appends a pointer sample, keeping at most the fling window.
func (c *Controller) push(pos geom.Vec2) {
	c.samples = append(c.samples, pointerSample{pos: pos, t: c.now})
	if len(c.samples) > c.window {
		c.samples = c.samples[1:]
	}
}

// flingVelocity is (newest - oldest) / elapsed over the sample window.
// A degenerate window (single sample, zero elapsed) produces zero velocity,
// never a division blowup.
func (c *Controller) flingVelocity() geom.Vec2 {
	if len(c.samples) < 2 {
		return geom.Vec2{}
	}
	first := c.samples[0]
	last := c.samples[len(c.samples)-1]
	elapsed := last.t - first.t
	if elapsed <= 0 {
		return geom.Vec2{}
	}
	return last.pos.Sub(first.pos).Scale(1 / elapsed)
}
