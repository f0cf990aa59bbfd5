package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`
	Ticks         int     `csv:"ticks"`

	// Contact activity during the window
	Contacts         int     `csv:"contacts"`
	Impacts          int     `csv:"impacts"`
	MaxImpact        float64 `csv:"max_impact"`
	MaxResidualDepth float64 `csv:"max_residual_depth"`

	// Body speed distribution (sampled every tick)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Input activity
	DragTicks int `csv:"drag_ticks"`
}

// fillSpeedStats computes the speed distribution fields from raw samples.
func (s *WindowStats) fillSpeedStats(speeds []float64) {
	if len(speeds) == 0 {
		return
	}
	sorted := make([]float64, len(speeds))
	copy(sorted, speeds)
	sort.Float64s(sorted)

	s.SpeedMean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.SpeedStd = stat.StdDev(sorted, nil)
	}
	s.SpeedP50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.SpeedP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
}
