package telemetry

import (
	"github.com/pthm-cable/wetfx/animator"
	"github.com/pthm-cable/wetfx/effect"
)

// Collector accumulates per-frame animator and graph results within windows
// and produces WindowStats.
type Collector struct {
	windowFrames int64

	// Current window tracking
	windowStartFrame int64
	frames           int

	intensities   []float64
	patternCounts []float64
	flashes       int
	repeats       int
	injected      int
	frameStats    effect.FrameStats

	// Carried across windows so repeats and flashes are seen at window edges
	prev     animator.EffectState
	havePrev bool
}

// NewCollector creates a new stats collector.
// windowFrames: how many frames each stats window spans
// patternCount: number of splash variants the animator cycles through
func NewCollector(windowFrames, patternCount int) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	if patternCount < 1 {
		patternCount = 1
	}
	return &Collector{
		windowFrames:  int64(windowFrames),
		intensities:   make([]float64, 0, windowFrames),
		patternCounts: make([]float64, patternCount),
	}
}

// RecordFrame records one frame's animator result and graph execution stats.
func (c *Collector) RecordFrame(res animator.Result, fs effect.FrameStats) {
	s := res.State
	c.frames++
	c.intensities = append(c.intensities, float64(s.SplashIntensity))
	if s.SplashPattern >= 0 && s.SplashPattern < len(c.patternCounts) {
		c.patternCounts[s.SplashPattern]++
	}
	if c.havePrev {
		if s.SplashPattern == c.prev.SplashPattern {
			c.repeats++
		}
		if c.prev.SplashIntensity <= 0 && s.SplashIntensity > 0 {
			c.flashes++
		}
	}
	c.prev = s
	c.havePrev = true

	if res.Injected {
		c.injected++
	}
	c.frameStats.Add(fs)
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int64) bool {
	return currentFrame-c.windowStartFrame >= c.windowFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int64) WindowStats {
	mean, std, p50, p90 := ComputeIntensityStats(c.intensities)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		Frames:           c.frames,

		IntensityMean: mean,
		IntensityStd:  std,
		IntensityP50:  p50,
		IntensityP90:  p90,
		Flashes:       c.flashes,

		PatternRepeats: c.repeats,
		PatternChi2:    PatternChiSquare(c.patternCounts),

		InjectedFrames: c.injected,
		PassesExecuted: c.frameStats.Executed,
		PassesSkipped:  c.frameStats.Skipped,
		Bindings:       c.frameStats.Bindings,
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.frames = 0
	c.intensities = c.intensities[:0]
	for i := range c.patternCounts {
		c.patternCounts[i] = 0
	}
	c.flashes = 0
	c.repeats = 0
	c.injected = 0
	c.frameStats = effect.FrameStats{}

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
