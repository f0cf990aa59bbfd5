// Package telemetry aggregates per-tick simulation data into windowed stats
// and writes them to CSV.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/tumble/physics"
)

// Collector accumulates per-tick data within time windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64

	// Current window accumulators
	ticks            int
	contacts         int
	impacts          int
	maxImpact        float64
	maxResidualDepth float64
	dragTicks        int
	speeds           []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int64(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		speeds:              make([]float64, 0, ticksPerWindow),
	}
}

// RecordTick feeds one completed simulation tick into the current window.
// dragging marks ticks where the body was pointer-controlled and the physics
// step was skipped.
func (c *Collector) RecordTick(info physics.StepInfo, speed float64, dragging bool) {
	c.ticks++
	c.contacts += info.Contacts
	if info.Impact > 0 {
		c.impacts++
		if info.Impact > c.maxImpact {
			c.maxImpact = info.Impact
		}
	}
	if info.ResidualDepth > c.maxResidualDepth {
		c.maxResidualDepth = info.ResidualDepth
	}
	if dragging {
		c.dragTicks++
	}
	c.speeds = append(c.speeds, speed)
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush computes stats for the completed window and resets the accumulators.
func (c *Collector) Flush(currentTick int64) WindowStats {
	stats := WindowStats{
		WindowEndTick:    currentTick,
		SimTimeSec:       float64(currentTick) * c.dt,
		Ticks:            c.ticks,
		Contacts:         c.contacts,
		Impacts:          c.impacts,
		MaxImpact:        c.maxImpact,
		MaxResidualDepth: c.maxResidualDepth,
		DragTicks:        c.dragTicks,
	}
	stats.fillSpeedStats(c.speeds)

	c.windowStartTick = currentTick
	c.ticks = 0
	c.contacts = 0
	c.impacts = 0
	c.maxImpact = 0
	c.maxResidualDepth = 0
	c.dragTicks = 0
	c.speeds = c.speeds[:0]

	return stats
}

// WindowDurationTicks returns the window length in ticks.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}

// Log writes a window summary through slog.
func (s WindowStats) Log() {
	slog.Info("stats window",
		"tick", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"contacts", s.Contacts,
		"impacts", s.Impacts,
		"max_impact", s.MaxImpact,
		"max_residual_depth", s.MaxResidualDepth,
		"speed_mean", s.SpeedMean,
		"speed_p90", s.SpeedP90,
		"drag_ticks", s.DragTicks,
	)
}
