package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one rendered frame.
const (
	PhaseAnimator       = "animator"
	PhaseScene          = "scene"
	PhaseBeforeOpaque   = "before_opaque"
	PhaseAfterBin       = "after_bin"
	PhaseFinalComposite = "final_composite"
	PhasePresent        = "present"
	PhaseTelemetry      = "telemetry"
)

// framePhases lists phases in frame order. They occupy the first slots of
// every collector; other names get slots as they first appear.
var framePhases = []string{
	PhaseAnimator, PhaseScene, PhaseBeforeOpaque, PhaseAfterBin,
	PhaseFinalComposite, PhasePresent, PhaseTelemetry,
}

// frameSample is the CPU time of one frame split by phase slot.
type frameSample struct {
	work   time.Duration
	phases []time.Duration
}

// PerfCollector times frame phases over a rolling window of frames.
type PerfCollector struct {
	now func() time.Time

	slots map[string]int
	names []string

	ring  []frameSample
	next  int
	count int

	// Frame in progress
	current    []time.Duration
	frameStart time.Time
	spanStart  time.Time
	span       int // Slot being timed, -1 between frames

	lastPresent     time.Time
	presentInterval time.Duration
}

// NewPerfCollector creates a collector averaging over window frames.
func NewPerfCollector(window int) *PerfCollector {
	return newPerfCollector(window, time.Now)
}

func newPerfCollector(window int, now func() time.Time) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		now:   now,
		slots: make(map[string]int, len(framePhases)),
		ring:  make([]frameSample, window),
		span:  -1,
	}
	for _, name := range framePhases {
		p.slot(name)
	}
	return p
}

// slot returns the index for a phase name, adding one if needed.
func (p *PerfCollector) slot(name string) int {
	if i, ok := p.slots[name]; ok {
		return i
	}
	i := len(p.names)
	p.slots[name] = i
	p.names = append(p.names, name)
	return i
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = p.now()
	p.current = make([]time.Duration, len(p.names))
	p.span = -1
}

// StartPhase closes the running phase and starts timing the named one.
// Re-entering a phase within a frame adds to its total.
func (p *PerfCollector) StartPhase(name string) {
	t := p.now()
	p.closeSpan(t)
	p.span = p.slot(name)
	p.spanStart = t
}

func (p *PerfCollector) closeSpan(t time.Time) {
	if p.span < 0 {
		return
	}
	for len(p.current) <= p.span {
		p.current = append(p.current, 0)
	}
	p.current[p.span] += t.Sub(p.spanStart)
	p.span = -1
}

// EndFrame closes the running phase and stores the frame in the window.
func (p *PerfCollector) EndFrame() {
	t := p.now()
	p.closeSpan(t)
	p.ring[p.next] = frameSample{work: t.Sub(p.frameStart), phases: p.current}
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
	p.current = nil
}

// RecordPresent marks a presented frame; the gap between calls gives FPS.
func (p *PerfCollector) RecordPresent() {
	t := p.now()
	if !p.lastPresent.IsZero() {
		p.presentInterval = t.Sub(p.lastPresent)
	}
	p.lastPresent = t
}

// PerfStats holds window-averaged frame timing.
type PerfStats struct {
	AvgFrameWork time.Duration
	MinFrameWork time.Duration
	MaxFrameWork time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of average frame work

	FramesPerSecond float64 // Throughput if frames ran back to back

	PresentInterval time.Duration
	FPS             float64
}

// Stats averages the frames currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:        make(map[string]time.Duration),
		PhasePct:        make(map[string]float64),
		PresentInterval: p.presentInterval,
	}
	if p.presentInterval > 0 {
		s.FPS = float64(time.Second) / float64(p.presentInterval)
	}
	if p.count == 0 {
		return s
	}

	sums := make([]time.Duration, len(p.names))
	var total time.Duration
	for i, f := range p.ring[:p.count] {
		total += f.work
		if i == 0 || f.work < s.MinFrameWork {
			s.MinFrameWork = f.work
		}
		if f.work > s.MaxFrameWork {
			s.MaxFrameWork = f.work
		}
		for slot, d := range f.phases {
			sums[slot] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgFrameWork = total / n
	if s.AvgFrameWork > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrameWork)
	}
	for slot, sum := range sums {
		if sum == 0 {
			continue
		}
		name := p.names[slot]
		s.PhaseAvg[name] = sum / n
		if total > 0 {
			s.PhasePct[name] = float64(sum) / float64(total) * 100
		}
	}
	return s
}

// LogStats logs the stats at info level, skipping phases under 0.1%.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrameWork.Microseconds(),
		"min_frame_us", s.MinFrameWork.Microseconds(),
		"max_frame_us", s.MaxFrameWork.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range framePhases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrameWork.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrameWork.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrameWork.Microseconds()),
		slog.Float64("frames_per_sec", s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd         int64   `csv:"window_end"`
	AvgFrameUS        int64   `csv:"avg_frame_us"`
	MinFrameUS        int64   `csv:"min_frame_us"`
	MaxFrameUS        int64   `csv:"max_frame_us"`
	FramesPerSec      float64 `csv:"frames_per_sec"`
	FPS               float64 `csv:"fps"`
	AnimatorPct       float64 `csv:"animator_pct"`
	ScenePct          float64 `csv:"scene_pct"`
	BeforeOpaquePct   float64 `csv:"before_opaque_pct"`
	AfterBinPct       float64 `csv:"after_bin_pct"`
	FinalCompositePct float64 `csv:"final_composite_pct"`
	PresentPct        float64 `csv:"present_pct"`
	TelemetryPct      float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:         windowEnd,
		AvgFrameUS:        s.AvgFrameWork.Microseconds(),
		MinFrameUS:        s.MinFrameWork.Microseconds(),
		MaxFrameUS:        s.MaxFrameWork.Microseconds(),
		FramesPerSec:      s.FramesPerSecond,
		FPS:               s.FPS,
		AnimatorPct:       s.PhasePct[PhaseAnimator],
		ScenePct:          s.PhasePct[PhaseScene],
		BeforeOpaquePct:   s.PhasePct[PhaseBeforeOpaque],
		AfterBinPct:       s.PhasePct[PhaseAfterBin],
		FinalCompositePct: s.PhasePct[PhaseFinalComposite],
		PresentPct:        s.PhasePct[PhasePresent],
		TelemetryPct:      s.PhasePct[PhaseTelemetry],
	}
}
