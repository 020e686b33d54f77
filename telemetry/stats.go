package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int64 `csv:"-"`
	WindowEndFrame   int64 `csv:"window_end"`
	Frames           int   `csv:"frames"`

	// Splash intensity distribution
	IntensityMean float64 `csv:"intensity_mean"`
	IntensityStd  float64 `csv:"intensity_std"`
	IntensityP50  float64 `csv:"intensity_p50"`
	IntensityP90  float64 `csv:"intensity_p90"`
	Flashes       int     `csv:"flashes"` // Frames where a new flash started

	// Splash pattern behaviour
	PatternRepeats int     `csv:"pattern_repeats"` // Frames showing the previous frame's pattern
	PatternChi2    float64 `csv:"pattern_chi2"`    // Chi-square of pattern counts against uniform

	// Graph execution
	InjectedFrames int `csv:"injected_frames"`
	PassesExecuted int `csv:"passes_executed"`
	PassesSkipped  int `csv:"passes_skipped"`
	Bindings       int `csv:"bindings"`
}

// Quantile returns the p-th quantile of a sorted slice using linear interpolation.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// ComputeIntensityStats calculates mean, std and percentiles from intensity samples.
func ComputeIntensityStats(values []float64) (mean, std, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, std, Quantile(sorted, 0.50), Quantile(sorted, 0.90)
}

// PatternChiSquare measures how far pattern counts are from a uniform split.
// Zero means perfectly uniform.
func PatternChiSquare(counts []float64) float64 {
	var total float64
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(counts) == 0 {
		return 0
	}
	expected := make([]float64, len(counts))
	for i := range expected {
		expected[i] = total / float64(len(counts))
	}
	return stat.ChiSquare(counts, expected)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Int("frames", s.Frames),
		slog.Float64("intensity_mean", s.IntensityMean),
		slog.Float64("intensity_std", s.IntensityStd),
		slog.Float64("intensity_p50", s.IntensityP50),
		slog.Float64("intensity_p90", s.IntensityP90),
		slog.Int("flashes", s.Flashes),
		slog.Int("pattern_repeats", s.PatternRepeats),
		slog.Float64("pattern_chi2", s.PatternChi2),
		slog.Int("injected_frames", s.InjectedFrames),
		slog.Int("passes_executed", s.PassesExecuted),
		slog.Int("passes_skipped", s.PassesSkipped),
		slog.Int("bindings", s.Bindings),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
