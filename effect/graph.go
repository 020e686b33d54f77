// Package effect builds and runs post-effect composition graphs: a primary
// full-screen pass plus keyed sub-passes, each bound to ordered input resources,
// an output target and an execution slot (phase and priority).
//
// Shader, state-block and texture names are opaque here. The host resolves them
// when a pass executes; a pass that fails to resolve is skipped for the frame.
package effect

import (
	"fmt"

	"github.com/pthm-cable/wetfx/config"
)

// Graph is one effect instance. It exclusively owns its passes.
type Graph struct {
	name    string
	enabled bool
	primary *Pass
	subs    []*Pass
	byKey   map[Key]*Pass
}

// Build constructs a graph from static configuration. Shader and state-block
// references must exist in lib; everything else is resolved by the host.
func Build(gc config.GraphConfig, lib config.Library) (*Graph, error) {
	if len(gc.Primary.Textures) == 0 && gc.Primary.Shader == "" {
		return nil, fmt.Errorf("graph %q: %w", gc.Name, ErrNoPrimary)
	}

	g := &Graph{
		name:    gc.Name,
		enabled: gc.Enabled,
		byKey:   make(map[Key]*Pass, len(gc.Subs)+1),
	}

	primary, err := g.buildPass(KeyPrimary, gc.Primary, PhaseBeforeOpaque, lib)
	if err != nil {
		return nil, err
	}
	if err := requirePhase(primary, PhaseBeforeOpaque); err != nil {
		return nil, err
	}
	g.primary = primary
	g.byKey[KeyPrimary] = primary

	for _, pc := range gc.Subs {
		key, err := ParseKey(pc.Key)
		if err != nil {
			return nil, fmt.Errorf("graph %q: %w", gc.Name, err)
		}
		if key == KeyPrimary {
			return nil, fmt.Errorf("graph %q: sub-pass cannot use key %q: %w", gc.Name, pc.Key, ErrUnknownKey)
		}
		if _, dup := g.byKey[key]; dup {
			return nil, fmt.Errorf("graph %q: %w: %s", gc.Name, ErrDuplicateKey, key)
		}
		sub, err := g.buildPass(key, pc, PhaseFinalComposite, lib)
		if err != nil {
			return nil, err
		}
		if err := requirePhase(sub, PhaseFinalComposite); err != nil {
			return nil, err
		}
		// Sub-passes consume the primary's output.
		sub.after = append([]Key{KeyPrimary}, sub.after...)
		g.subs = append(g.subs, sub)
		g.byKey[key] = sub
	}

	if err := g.checkDependencies(); err != nil {
		return nil, err
	}
	if _, err := order(g.Passes(), g.edges()); err != nil {
		return nil, fmt.Errorf("graph %q: %w", g.name, err)
	}

	return g, nil
}

// BuildDry constructs the single-pass passthrough graph used for debug and
// inverse visualization. It is structurally independent of any wetness graph.
func BuildDry(gc config.GraphConfig, lib config.Library) (*Graph, error) {
	if len(gc.Subs) != 0 || len(gc.Primary.Textures) != 1 {
		return nil, fmt.Errorf("graph %q: %w", gc.Name, ErrDryShape)
	}
	return Build(gc, lib)
}

// buildPass validates one pass configuration.
func (g *Graph) buildPass(key Key, pc config.PassConfig, defaultPhase Phase, lib config.Library) (*Pass, error) {
	name := g.name + "." + key.String()
	wrap := func(err error) error {
		return fmt.Errorf("pass %s: %w", name, err)
	}

	shader, ok := lib.Shaders[pc.Shader]
	if !ok {
		return nil, wrap(fmt.Errorf("%w %q", ErrUnknownShader, pc.Shader))
	}
	if pc.StateBlock != "" {
		if _, ok := lib.StateBlocks[pc.StateBlock]; !ok {
			return nil, wrap(fmt.Errorf("%w %q", ErrUnknownStateBlock, pc.StateBlock))
		}
	}

	inputs, err := parseBindings(pc.Textures)
	if err != nil {
		return nil, wrap(err)
	}
	if len(shader.Samplers) > 0 && len(inputs) > len(shader.Samplers) {
		return nil, wrap(fmt.Errorf("%w: %d inputs, shader %q declares %d",
			ErrSamplerCount, len(inputs), pc.Shader, len(shader.Samplers)))
	}

	output, err := ParseRef(pc.Target)
	if err != nil {
		return nil, wrap(fmt.Errorf("%w: %v", ErrBadTarget, err))
	}
	if output.Kind == RefTexture {
		return nil, wrap(fmt.Errorf("%w: %q is a texture asset", ErrBadTarget, pc.Target))
	}

	phase := defaultPhase
	if pc.Phase != "" {
		if phase, err = ParsePhase(pc.Phase); err != nil {
			return nil, wrap(err)
		}
	}

	after := make([]Key, 0, len(pc.After))
	for _, s := range pc.After {
		k, err := ParseKey(s)
		if err != nil {
			return nil, wrap(err)
		}
		after = append(after, k)
	}

	p := &Pass{
		name:       name,
		key:        key,
		shader:     pc.Shader,
		stateBlock: pc.StateBlock,
		inputs:     inputs,
		output:     output,
		phase:      phase,
		renderBin:  pc.RenderBin,
		priority:   pc.Priority,
		after:      after,
		graph:      g,
		index:      len(g.byKey),
		enabled:    !pc.Disabled,
	}
	return p, nil
}

// parseBindings parses ordered input bindings. Index 0 must be a named scene
// buffer, and backbuffer feedback may only follow every other binding.
func parseBindings(textures []string) ([]ResourceRef, error) {
	if len(textures) == 0 {
		return nil, ErrNoInputs
	}
	refs := make([]ResourceRef, 0, len(textures))
	feedback := false
	for i, s := range textures {
		ref, err := ParseRef(s)
		if err != nil {
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		if i == 0 && ref.Kind != RefTarget {
			return nil, fmt.Errorf("%w: binding 0 must be a scene buffer, got %q", ErrBindingOrder, s)
		}
		if ref.IsFeedback() {
			feedback = true
		} else if feedback {
			return nil, fmt.Errorf("%w: binding %d (%q) follows backbuffer feedback", ErrBindingOrder, i, s)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// requirePhase pins a pass to its slot in the frame: primaries write the
// material buffer before opaque geometry, sub-passes composite at the end.
func requirePhase(p *Pass, want Phase) error {
	if p.phase != want {
		return fmt.Errorf("pass %s runs in %s: %w: must run in %s", p.name, p.phase, ErrPhaseOrder, want)
	}
	return nil
}

// checkDependencies rejects edges that point forward in the frame timeline.
func (g *Graph) checkDependencies() error {
	for _, p := range g.Passes() {
		for _, k := range p.after {
			dep, ok := g.byKey[k]
			if !ok {
				// Optional sub-passes may be absent from a graph.
				continue
			}
			if dep == p {
				return fmt.Errorf("pass %s: %w: depends on itself", p.name, ErrCycle)
			}
			if dep.phase > p.phase {
				return fmt.Errorf("pass %s (%s): %w %s (%s)", p.name, p.phase, ErrPhaseOrder, dep.name, dep.phase)
			}
		}
		if !p.ReadsFeedback() {
			continue
		}
		for _, w := range g.Passes() {
			if w != p && w.output.IsFeedback() && w.phase > p.phase {
				return fmt.Errorf("pass %s reads backbuffer in %s: %w %s (%s)", p.name, p.phase, ErrPhaseOrder, w.name, w.phase)
			}
		}
	}
	return nil
}

// edges returns the graph's ordering constraints as pass -> passes it runs after.
// Explicit After keys are joined by implicit feedback edges: a pass sampling
// the backbuffer runs after every other pass of the graph that writes it.
func (g *Graph) edges() map[*Pass][]*Pass {
	e := make(map[*Pass][]*Pass)
	for _, p := range g.Passes() {
		for _, k := range p.after {
			if dep, ok := g.byKey[k]; ok {
				e[p] = append(e[p], dep)
			}
		}
		if p.ReadsFeedback() {
			for _, w := range g.Passes() {
				if w != p && w.output.IsFeedback() && w.phase == p.phase {
					e[p] = append(e[p], w)
				}
			}
		}
	}
	return e
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Enabled reports whether the graph executes at all.
func (g *Graph) Enabled() bool { return g.enabled }

// SetEnabled toggles the whole graph. A disabled graph executes no passes.
func (g *Graph) SetEnabled(enabled bool) { g.enabled = enabled }

// Primary returns the primary pass.
func (g *Graph) Primary() *Pass { return g.primary }

// Passes returns every pass in declaration order, primary first.
func (g *Graph) Passes() []*Pass {
	out := make([]*Pass, 0, len(g.subs)+1)
	out = append(out, g.primary)
	out = append(out, g.subs...)
	return out
}

// Lookup returns the pass with the given key, or false if the graph has none.
func (g *Graph) Lookup(key Key) (*Pass, bool) {
	if g == nil {
		return nil, false
	}
	p, ok := g.byKey[key]
	return p, ok
}

// Active returns the pass with the given key only if it exists and would
// execute this frame.
func (g *Graph) Active(key Key) (*Pass, bool) {
	p, ok := g.Lookup(key)
	if !ok || !p.Active() {
		return nil, false
	}
	return p, true
}
