package effect

import "fmt"

// Schedule returns the active passes of the enabled graphs in execution order:
// by phase, then respecting dependencies, then by priority (higher first), then
// by graph argument order and declaration order.
func Schedule(graphs ...*Graph) []*Pass {
	var out []*Pass
	for _, phase := range Phases {
		out = append(out, SchedulePhase(phase, graphs...)...)
	}
	return out
}

// SchedulePhase returns the active passes of one phase in execution order.
func SchedulePhase(phase Phase, graphs ...*Graph) []*Pass {
	var passes []*Pass
	edges := make(map[*Pass][]*Pass)
	rank := make(map[*Pass]int)
	for gi, g := range graphs {
		if g == nil || !g.enabled {
			continue
		}
		for p, deps := range g.edges() {
			edges[p] = deps
		}
		for _, p := range g.Passes() {
			if p.enabled && p.phase == phase {
				passes = append(passes, p)
				rank[p] = gi
			}
		}
	}
	if len(passes) == 0 {
		return nil
	}

	ordered, err := orderRanked(passes, edges, rank)
	if err != nil {
		// Build rejects cyclic graphs, so this only fires on a programming error.
		panic(fmt.Sprintf("effect: scheduling %s: %v", phase, err))
	}
	return ordered
}

// order sorts passes of a single graph topologically. Edges to passes outside
// the set are ignored.
func order(passes []*Pass, edges map[*Pass][]*Pass) ([]*Pass, error) {
	return orderRanked(passes, edges, nil)
}

// orderRanked is Kahn's algorithm, picking the best ready pass at each step.
func orderRanked(passes []*Pass, edges map[*Pass][]*Pass, rank map[*Pass]int) ([]*Pass, error) {
	in := make(map[*Pass]bool, len(passes))
	for _, p := range passes {
		in[p] = true
	}

	pending := make(map[*Pass]int, len(passes))
	dependents := make(map[*Pass][]*Pass)
	for _, p := range passes {
		seen := make(map[*Pass]bool)
		for _, dep := range edges[p] {
			if !in[dep] || seen[dep] {
				continue
			}
			seen[dep] = true
			pending[p]++
			dependents[dep] = append(dependents[dep], p)
		}
	}

	less := func(a, b *Pass) bool {
		if a.phase != b.phase {
			return a.phase < b.phase
		}
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if rank[a] != rank[b] {
			return rank[a] < rank[b]
		}
		return a.index < b.index
	}

	var ready []*Pass
	for _, p := range passes {
		if pending[p] == 0 {
			ready = append(ready, p)
		}
	}

	out := make([]*Pass, 0, len(passes))
	for len(ready) > 0 {
		best := 0
		for i := 1; i < len(ready); i++ {
			if less(ready[i], ready[best]) {
				best = i
			}
		}
		p := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		out = append(out, p)

		for _, d := range dependents[p] {
			pending[d]--
			if pending[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(out) != len(passes) {
		return nil, ErrCycle
	}
	return out, nil
}
