package effect

// Call is one pass execution captured by a Recorder.
type Call struct {
	Pass      string
	Inputs    []ResourceRef
	Output    ResourceRef
	Constants []Constant
}

// Recorder is an Executor that records executions instead of drawing. It
// backs headless runs and can be told to fail specific passes.
type Recorder struct {
	Calls    []Call
	Bindings int
	Fail     map[string]error // Pass name -> error returned instead of executing
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{Fail: make(map[string]error)}
}

// Execute records the pass, or returns its configured failure.
func (r *Recorder) Execute(p *Pass) error {
	if err, ok := r.Fail[p.name]; ok {
		return err
	}
	r.Calls = append(r.Calls, Call{
		Pass:      p.name,
		Inputs:    p.Inputs(),
		Output:    p.output,
		Constants: p.Constants(),
	})
	r.Bindings += len(p.inputs)
	return nil
}

// Names returns the executed pass names in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Pass
	}
	return out
}

// Reset clears recorded calls, keeping configured failures.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.Bindings = 0
}
