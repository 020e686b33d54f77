package effect

import "log/slog"

// Executor runs a single pass: binds its inputs to its shader and draws a
// full-screen quad into its output. It returns an error when a shader or
// resource cannot be resolved; the pass is then skipped for the frame.
type Executor interface {
	Execute(p *Pass) error
}

// FrameStats counts the work done by one phase or frame.
type FrameStats struct {
	Executed int // Passes that ran
	Skipped  int // Passes that failed to resolve
	Bindings int // Input bindings consumed by executed passes
}

// Add accumulates another stats value.
func (s *FrameStats) Add(o FrameStats) {
	s.Executed += o.Executed
	s.Skipped += o.Skipped
	s.Bindings += o.Bindings
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("executed", s.Executed),
		slog.Int("skipped", s.Skipped),
		slog.Int("bindings", s.Bindings),
	)
}

// Runner executes graphs phase by phase through an Executor. It is driven from
// the render thread and is not safe for concurrent use.
type Runner struct {
	exec    Executor
	graphs  []*Graph
	logger  *slog.Logger
	lastErr map[*Pass]string // Last logged failure per pass
}

// NewRunner creates a runner over the given graphs. Graph order breaks
// scheduling ties between passes of equal priority.
func NewRunner(exec Executor, graphs ...*Graph) *Runner {
	return &Runner{
		exec:    exec,
		graphs:  graphs,
		logger:  slog.Default(),
		lastErr: make(map[*Pass]string),
	}
}

// SetLogger replaces the logger used for skipped-pass reports.
func (r *Runner) SetLogger(l *slog.Logger) {
	r.logger = l
}

// Graphs returns the graphs the runner executes.
func (r *Runner) Graphs() []*Graph {
	return r.graphs
}

// RunPhase executes every active pass scheduled in phase. A pass that fails is
// skipped and the remaining passes still run.
func (r *Runner) RunPhase(phase Phase) FrameStats {
	var stats FrameStats
	for _, p := range SchedulePhase(phase, r.graphs...) {
		if err := r.exec.Execute(p); err != nil {
			stats.Skipped++
			r.reportFailure(p, err)
			continue
		}
		if _, failed := r.lastErr[p]; failed {
			delete(r.lastErr, p)
			r.logger.Info("pass recovered", "pass", p.name)
		}
		stats.Executed++
		stats.Bindings += len(p.inputs)
	}
	return stats
}

// Run executes every phase in order.
func (r *Runner) Run() FrameStats {
	var stats FrameStats
	for _, phase := range Phases {
		stats.Add(r.RunPhase(phase))
	}
	return stats
}

// reportFailure logs a skipped pass once per distinct error.
func (r *Runner) reportFailure(p *Pass, err error) {
	msg := err.Error()
	if r.lastErr[p] == msg {
		return
	}
	r.lastErr[p] = msg
	r.logger.Warn("pass skipped",
		"pass", p.name,
		"phase", p.phase.String(),
		"shader", p.shader,
		"error", msg,
	)
}
