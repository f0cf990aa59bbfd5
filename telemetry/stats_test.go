package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/tumble/physics"
)

const dt = 1.0 / 60.0

func TestCollectorWindowCadence(t *testing.T) {
	c := NewCollector(1.0, dt)

	if c.WindowDurationTicks() != 60 {
		t.Fatalf("expected 60 ticks per window, got %d", c.WindowDurationTicks())
	}
	if c.ShouldFlush(59) {
		t.Error("window flushed early")
	}
	if !c.ShouldFlush(60) {
		t.Error("window not flushed at boundary")
	}

	// After a flush the next window starts from the flush tick.
	c.Flush(60)
	if c.ShouldFlush(119) {
		t.Error("second window flushed early")
	}
	if !c.ShouldFlush(120) {
		t.Error("second window not flushed at boundary")
	}
}

func TestCollectorAggregation(t *testing.T) {
	c := NewCollector(1.0, dt)

	speeds := []float64{10, 20, 30, 40}
	for i, s := range speeds {
		info := physics.StepInfo{Contacts: 1, ResidualDepth: float64(i) * 0.001}
		if i == 2 {
			info.Impact = 55
		}
		c.RecordTick(info, s, i == 3)
	}

	stats := c.Flush(4)
	if stats.Ticks != 4 {
		t.Errorf("expected 4 ticks, got %d", stats.Ticks)
	}
	if stats.Contacts != 4 {
		t.Errorf("expected 4 contacts, got %d", stats.Contacts)
	}
	if stats.Impacts != 1 || stats.MaxImpact != 55 {
		t.Errorf("impact aggregation wrong: n=%d max=%g", stats.Impacts, stats.MaxImpact)
	}
	if stats.MaxResidualDepth != 0.003 {
		t.Errorf("expected max residual 0.003, got %g", stats.MaxResidualDepth)
	}
	if stats.DragTicks != 1 {
		t.Errorf("expected 1 drag tick, got %d", stats.DragTicks)
	}
	if math.Abs(stats.SpeedMean-25) > 1e-9 {
		t.Errorf("expected mean speed 25, got %g", stats.SpeedMean)
	}
	if stats.SpeedP50 != 20 {
		t.Errorf("expected p50=20, got %g", stats.SpeedP50)
	}
	if stats.SpeedP90 != 40 {
		t.Errorf("expected p90=40, got %g", stats.SpeedP90)
	}
	if stats.SpeedStd <= 0 {
		t.Errorf("expected positive stddev, got %g", stats.SpeedStd)
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector(1.0, dt)
	c.RecordTick(physics.StepInfo{Contacts: 3, Impact: 10}, 99, true)
	c.Flush(1)

	stats := c.Flush(2)
	if stats.Ticks != 0 || stats.Contacts != 0 || stats.MaxImpact != 0 || stats.DragTicks != 0 {
		t.Errorf("accumulators not reset: %+v", stats)
	}
	if stats.SpeedMean != 0 {
		t.Errorf("speed stats not reset: %g", stats.SpeedMean)
	}
}

func TestEmptyWindowStats(t *testing.T) {
	var s WindowStats
	s.fillSpeedStats(nil)
	if s.SpeedMean != 0 || s.SpeedStd != 0 || s.SpeedP50 != 0 {
		t.Errorf("empty window should produce zero stats: %+v", s)
	}
}

func TestOutputManagerCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 60, Contacts: 5}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndTick: 120, Contacts: 7}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("missing header, got %q", lines[0])
	}
	if strings.Contains(lines[2], "window_end") {
		t.Error("header repeated on subsequent writes")
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager when output is disabled")
	}
	// All methods are nil-receiver safe.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("nil manager write failed: %v", err)
	}
	if om.Dir() != "" {
		t.Error("nil manager should report empty dir")
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil manager close failed: %v", err)
	}
}
