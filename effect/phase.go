package effect

import "fmt"

// Phase is the coarse slot in the frame timeline a pass executes in.
type Phase uint8

const (
	PhaseBeforeOpaque   Phase = iota // Before opaque geometry bins finalize
	PhaseAfterBin                    // After the render bins, before the final composite
	PhaseFinalComposite              // Final composite into the backbuffer
)

// Phases lists every phase in execution order.
var Phases = []Phase{PhaseBeforeOpaque, PhaseAfterBin, PhaseFinalComposite}

var phaseNames = map[Phase]string{
	PhaseBeforeOpaque:   "before_opaque",
	PhaseAfterBin:       "after_bin",
	PhaseFinalComposite: "final_composite",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// ParsePhase converts a configuration name to a Phase.
func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}
