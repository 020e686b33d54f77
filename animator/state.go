package animator

import "log/slog"

// Bounds of the splash animation state.
const (
	MinIntensity float32 = 0
	MaxIntensity float32 = 1
	MaxPattern           = 3 // Highest pattern index with the default four variants
)

// EffectState is the shared splash animation state. The Animator is its only
// writer; everything else receives copies.
type EffectState struct {
	SplashIntensity float32 // Opacity of the current splash flash, [0, 1]
	SplashPattern   int     // Displayed splash variant, [0, patternCount)
}

// InBounds reports whether both fields are within their documented ranges.
func (s EffectState) InBounds(patternCount int) bool {
	return s.SplashIntensity >= MinIntensity && s.SplashIntensity <= MaxIntensity &&
		s.SplashPattern >= 0 && s.SplashPattern < patternCount
}

// LogValue implements slog.LogValuer for structured logging.
func (s EffectState) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("splash_intensity", float64(s.SplashIntensity)),
		slog.Int("splash_pattern", s.SplashPattern),
	)
}
