// Package animator drives the per-frame splash parameters of the wetness
// effect: a flash intensity that decays linearly and re-triggers on a coin
// flip, and a splash pattern that never shows the same variant twice in a row.
package animator

import (
	"github.com/chewxy/math32"

	"github.com/pthm-cable/wetfx/config"
	"github.com/pthm-cable/wetfx/effect"
)

// intensityQuantum is the grid intensities are snapped to after each decay
// step, so repeated subtraction lands exactly on multiples of the step.
const intensityQuantum = 10000

// Rand is the uniform integer source the animator draws from.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform integer in [0, n).
	Intn(n int) int
}

// Result reports one update.
type Result struct {
	State    EffectState
	Injected bool // Constants were written into the splash pass
}

// Animator owns the EffectState and pushes it into the rain-splash pass.
// Update must be called once per frame on the render thread, before any pass
// of the graph executes.
type Animator struct {
	rng     Rand
	state   EffectState
	initial EffectState

	decayStep    float32
	patternCount int

	patternConst   string
	intensityConst string

	// splash is resolved once from the graph; nil when the graph has none.
	splash *effect.Pass
}

// New creates an animator. graph may be nil, in which case updates never inject.
func New(cfg config.AnimatorConfig, rng Rand, graph *effect.Graph) *Animator {
	a := &Animator{
		rng:            rng,
		decayStep:      float32(cfg.DecayStep),
		patternCount:   cfg.PatternCount,
		patternConst:   cfg.PatternConstant,
		intensityConst: cfg.IntensityConstant,
	}
	a.SetState(EffectState{
		SplashIntensity: float32(cfg.InitialIntensity),
		SplashPattern:   cfg.InitialPattern,
	})
	a.initial = a.state
	if p, ok := graph.Lookup(effect.KeyRainSplash); ok {
		a.splash = p
	}
	return a
}

// State returns a copy of the current state.
func (a *Animator) State() EffectState {
	return a.state
}

// SetState replaces the current state, clamping it into range.
func (a *Animator) SetState(s EffectState) {
	s.SplashIntensity = math32.Min(MaxIntensity, math32.Max(MinIntensity, s.SplashIntensity))
	if s.SplashPattern < 0 {
		s.SplashPattern = 0
	}
	if s.SplashPattern >= a.patternCount {
		s.SplashPattern = a.patternCount - 1
	}
	a.state = s
}

// Reset restores the configured initial state without injecting it.
func (a *Animator) Reset() {
	a.state = a.initial
}

// PatternCount returns the number of splash variants.
func (a *Animator) PatternCount() int {
	return a.patternCount
}

// Update advances the animation by one frame and injects the new values into
// the splash pass if it exists and is active.
func (a *Animator) Update() Result {
	a.stepIntensity()
	a.stepPattern()
	return Result{
		State:    a.state,
		Injected: a.inject(),
	}
}

// stepIntensity decays a running flash, or flips a coin to start a new one.
func (a *Animator) stepIntensity() {
	if a.state.SplashIntensity <= MinIntensity {
		a.state.SplashIntensity = MinIntensity
		if a.rng.Intn(2) == 1 {
			a.state.SplashIntensity = MaxIntensity
		}
		return
	}
	next := math32.Max(MinIntensity, a.state.SplashIntensity-a.decayStep)
	a.state.SplashIntensity = math32.Round(next*intensityQuantum) / intensityQuantum
}

// stepPattern draws a new pattern. A draw equal to the current pattern is
// forced to a neighbour: up, or down from the highest pattern.
func (a *Animator) stepPattern() {
	r := a.rng.Intn(a.patternCount)
	if r != a.state.SplashPattern {
		a.state.SplashPattern = r
		return
	}
	if a.state.SplashPattern == a.patternCount-1 {
		a.state.SplashPattern--
	} else {
		a.state.SplashPattern++
	}
}

// inject writes the state into the splash pass's constants.
func (a *Animator) inject() bool {
	if a.splash == nil || !a.splash.Active() {
		return false
	}
	a.splash.SetConstant(a.patternConst, float32(a.state.SplashPattern))
	a.splash.SetConstant(a.intensityConst, a.state.SplashIntensity)
	return true
}
