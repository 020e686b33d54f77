package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/wetfx/animator"
	"github.com/pthm-cable/wetfx/effect"
)

func TestQuantileBounds(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quantile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Quantile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestQuantileMonotonic(t *testing.T) {
	sorted := []float64{0, 0.1, 0.2, 0.5, 0.9, 1.0}
	prev := Quantile(sorted, 0)
	for p := 0.05; p <= 1.0; p += 0.05 {
		q := Quantile(sorted, p)
		if q < prev {
			t.Errorf("Quantile(%v) = %v decreased from %v", p, q, prev)
		}
		prev = q
	}
}

func TestComputeIntensityStats(t *testing.T) {
	// One full flash: 1.0 down to 0.0.
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1, 0.0}
	mean, std, p50, p90 := ComputeIntensityStats(values)

	if math.Abs(mean-0.5) > 0.001 {
		t.Errorf("mean = %v, want 0.5", mean)
	}
	// Population std of an evenly spaced 0..1 ramp with 11 points.
	if math.Abs(std-0.3162) > 0.001 {
		t.Errorf("std = %v, want ~0.3162", std)
	}
	if p50 < 0.4 || p50 > 0.6 {
		t.Errorf("p50 = %v, want ~0.5", p50)
	}
	if p90 < 0.8 || p90 > 1.0 {
		t.Errorf("p90 = %v, want ~0.9", p90)
	}
}

func TestComputeIntensityStatsEmpty(t *testing.T) {
	mean, std, p50, p90 := ComputeIntensityStats([]float64{})

	if mean != 0 || std != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestPatternChiSquare(t *testing.T) {
	if got := PatternChiSquare([]float64{25, 25, 25, 25}); got != 0 {
		t.Errorf("uniform counts chi2 = %v, want 0", got)
	}
	if got := PatternChiSquare([]float64{0, 0, 0, 0}); got != 0 {
		t.Errorf("empty counts chi2 = %v, want 0", got)
	}
	// All mass on one pattern: expected 25 each, chi2 = 75²/25 + 3*25 = 300.
	if got := PatternChiSquare([]float64{100, 0, 0, 0}); math.Abs(got-300) > 1e-9 {
		t.Errorf("skewed counts chi2 = %v, want 300", got)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(4, 4)
	fs := effect.FrameStats{Executed: 4, Bindings: 14}

	frames := []animator.EffectState{
		{SplashIntensity: 0, SplashPattern: 0},
		{SplashIntensity: 1, SplashPattern: 1}, // flash
		{SplashIntensity: 0.9, SplashPattern: 2},
		{SplashIntensity: 0.8, SplashPattern: 3},
	}
	for i, s := range frames {
		c.RecordFrame(animator.Result{State: s, Injected: i%2 == 0}, fs)
	}

	if c.ShouldFlush(3) {
		t.Error("ShouldFlush(3) = true before window is full")
	}
	if !c.ShouldFlush(4) {
		t.Fatal("ShouldFlush(4) = false at window end")
	}

	stats := c.Flush(4)
	if stats.Frames != 4 {
		t.Errorf("Frames = %d, want 4", stats.Frames)
	}
	if stats.Flashes != 1 {
		t.Errorf("Flashes = %d, want 1", stats.Flashes)
	}
	if stats.PatternRepeats != 0 {
		t.Errorf("PatternRepeats = %d, want 0", stats.PatternRepeats)
	}
	if stats.PatternChi2 != 0 {
		t.Errorf("PatternChi2 = %v, want 0 for one of each pattern", stats.PatternChi2)
	}
	if stats.InjectedFrames != 2 {
		t.Errorf("InjectedFrames = %d, want 2", stats.InjectedFrames)
	}
	if stats.PassesExecuted != 16 || stats.Bindings != 56 {
		t.Errorf("passes = %d bindings = %d, want 16 and 56", stats.PassesExecuted, stats.Bindings)
	}

	// Next window starts clean but still sees the repeat across the edge.
	c.RecordFrame(animator.Result{State: animator.EffectState{SplashIntensity: 0.7, SplashPattern: 3}}, effect.FrameStats{})
	next := c.Flush(8)
	if next.WindowStartFrame != 4 || next.Frames != 1 {
		t.Errorf("next window = %+v", next)
	}
	if next.PatternRepeats != 1 {
		t.Errorf("PatternRepeats across window edge = %d, want 1", next.PatternRepeats)
	}
}
