package effect

import "fmt"

// Key is the stable identity of a pass within its graph.
type Key uint8

const (
	KeyPrimary    Key = iota // The graph's primary pass
	KeyRefract               // Light refraction through the wet layer
	KeyRainfall              // Falling rain streaks
	KeyRainSplash            // Rain impact splashes; receives animator constants
)

var keyNames = [...]string{
	KeyPrimary:    "primary",
	KeyRefract:    "refract",
	KeyRainfall:   "rainfall",
	KeyRainSplash: "rainsplash",
}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey converts a configuration name to a Key.
func ParseKey(s string) (Key, error) {
	for i, name := range keyNames {
		if name == s {
			return Key(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// Constant is a named float shader constant.
type Constant struct {
	Name  string
	Value float32
}

// Pass describes one full-screen rendering operation. Everything except the
// enabled flag and the constant table is fixed when the graph is built.
type Pass struct {
	name       string
	key        Key
	shader     string
	stateBlock string
	inputs     []ResourceRef
	output     ResourceRef
	phase      Phase
	renderBin  string
	priority   int
	after      []Key

	graph   *Graph
	index   int // Declaration order within the graph
	enabled bool
	consts  []Constant
}

// Name returns the pass name, "<graph>.<key>".
func (p *Pass) Name() string { return p.name }

// Key returns the pass's stable key.
func (p *Pass) Key() Key { return p.key }

// Shader returns the shader reference.
func (p *Pass) Shader() string { return p.shader }

// StateBlock returns the state block reference ("" = host default).
func (p *Pass) StateBlock() string { return p.stateBlock }

// Inputs returns a copy of the ordered input bindings.
func (p *Pass) Inputs() []ResourceRef {
	out := make([]ResourceRef, len(p.inputs))
	copy(out, p.inputs)
	return out
}

// NumInputs returns the number of input bindings.
func (p *Pass) NumInputs() int { return len(p.inputs) }

// Input returns the binding at index i.
func (p *Pass) Input(i int) ResourceRef { return p.inputs[i] }

// Output returns the render target the pass draws into.
func (p *Pass) Output() ResourceRef { return p.output }

// Phase returns the execution phase.
func (p *Pass) Phase() Phase { return p.phase }

// RenderBin returns the host render-bin hint.
func (p *Pass) RenderBin() string { return p.renderBin }

// Priority returns the ordering priority within a phase (higher runs first).
func (p *Pass) Priority() int { return p.priority }

// After returns the keys of passes that must execute before this one.
func (p *Pass) After() []Key {
	out := make([]Key, len(p.after))
	copy(out, p.after)
	return out
}

// Graph returns the graph that owns the pass.
func (p *Pass) Graph() *Graph { return p.graph }

// Enabled reports the pass's own enabled flag.
func (p *Pass) Enabled() bool { return p.enabled }

// SetEnabled toggles the pass.
func (p *Pass) SetEnabled(enabled bool) { p.enabled = enabled }

// Active reports whether the pass would execute: it and its graph are enabled.
func (p *Pass) Active() bool {
	return p.enabled && (p.graph == nil || p.graph.enabled)
}

// ReadsFeedback reports whether any input samples the backbuffer.
func (p *Pass) ReadsFeedback() bool {
	for _, in := range p.inputs {
		if in.IsFeedback() {
			return true
		}
	}
	return false
}

// SetConstant sets a shader constant, adding it on first use.
func (p *Pass) SetConstant(name string, value float32) {
	for i := range p.consts {
		if p.consts[i].Name == name {
			p.consts[i].Value = value
			return
		}
	}
	p.consts = append(p.consts, Constant{Name: name, Value: value})
}

// Constant returns the value of a shader constant.
func (p *Pass) Constant(name string) (float32, bool) {
	for _, c := range p.consts {
		if c.Name == name {
			return c.Value, true
		}
	}
	return 0, false
}

// Constants returns a copy of the constant table in first-set order.
func (p *Pass) Constants() []Constant {
	out := make([]Constant, len(p.consts))
	copy(out, p.consts)
	return out
}
