package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/effect"
)

// ToggleID uniquely identifies an effect toggle.
type ToggleID string

// Standard toggle IDs.
const (
	ToggleWetness    ToggleID = "wetness"
	ToggleDry        ToggleID = "dry"
	ToggleRefract    ToggleID = "refract"
	ToggleRainfall   ToggleID = "rainfall"
	ToggleRainSplash ToggleID = "rainsplash"
)

// ToggleDescriptor defines a graph or pass that can be switched on and off.
type ToggleDescriptor struct {
	ID          ToggleID   // Unique identifier
	Name        string     // Display name
	Description string     // What the toggle controls
	Key         int32      // Keyboard key to toggle (0 = no key)
	KeyLabel    string     // Key label for display (e.g., "W")
	Category    string     // Grouping ("graphs" or "passes")
	Exclusive   []ToggleID // Other toggles to disable when this is enabled

	get func() bool
	set func(bool)
}

// ToggleRegistry maps UI toggles onto graph and pass enabled flags. The flags
// on the graphs are the only state; the registry never caches them.
type ToggleRegistry struct {
	descriptors []ToggleDescriptor
	byID        map[ToggleID]int
}

// NewToggleRegistry creates a registry for the wetness and dry graphs. Either
// graph may be nil; toggles are only registered for what exists.
func NewToggleRegistry(wet, dry *effect.Graph) *ToggleRegistry {
	reg := &ToggleRegistry{byID: make(map[ToggleID]int)}
	reg.registerDefaults(wet, dry)
	return reg
}

func (r *ToggleRegistry) registerDefaults(wet, dry *effect.Graph) {
	if wet != nil {
		r.RegisterGraph(ToggleDescriptor{
			ID:          ToggleWetness,
			Name:        "Wetness",
			Description: "Wet surface pass and its rain layers",
			Key:         rl.KeyW,
			KeyLabel:    "W",
			Exclusive:   []ToggleID{ToggleDry},
		}, wet)
	}
	if dry != nil {
		r.RegisterGraph(ToggleDescriptor{
			ID:          ToggleDry,
			Name:        "Dry",
			Description: "Material passthrough for comparison",
			Key:         rl.KeyK,
			KeyLabel:    "K",
			Exclusive:   []ToggleID{ToggleWetness},
		}, dry)
	}

	passes := []struct {
		desc ToggleDescriptor
		key  effect.Key
	}{
		{ToggleDescriptor{ID: ToggleRefract, Name: "Refraction", Description: "Light bent through the water film", Key: rl.KeyR, KeyLabel: "R"}, effect.KeyRefract},
		{ToggleDescriptor{ID: ToggleRainfall, Name: "Rainfall", Description: "Falling rain streaks", Key: rl.KeyF, KeyLabel: "F"}, effect.KeyRainfall},
		{ToggleDescriptor{ID: ToggleRainSplash, Name: "Splashes", Description: "Animated rain impacts", Key: rl.KeyS, KeyLabel: "S"}, effect.KeyRainSplash},
	}
	for _, p := range passes {
		if pass, ok := wet.Lookup(p.key); ok {
			r.RegisterPass(p.desc, pass)
		}
	}
}

// RegisterGraph adds a toggle bound to a graph's enabled flag.
func (r *ToggleRegistry) RegisterGraph(desc ToggleDescriptor, g *effect.Graph) {
	desc.Category = "graphs"
	desc.get = g.Enabled
	desc.set = g.SetEnabled
	r.register(desc)
}

// RegisterPass adds a toggle bound to a pass's enabled flag.
func (r *ToggleRegistry) RegisterPass(desc ToggleDescriptor, p *effect.Pass) {
	desc.Category = "passes"
	desc.get = p.Enabled
	desc.set = p.SetEnabled
	r.register(desc)
}

func (r *ToggleRegistry) register(desc ToggleDescriptor) {
	if i, ok := r.byID[desc.ID]; ok {
		r.descriptors[i] = desc
		return
	}
	r.byID[desc.ID] = len(r.descriptors)
	r.descriptors = append(r.descriptors, desc)
}

// Toggle flips a toggle and handles exclusivity. Returns the new state.
func (r *ToggleRegistry) Toggle(id ToggleID) bool {
	i, ok := r.byID[id]
	if !ok {
		return false
	}
	newState := !r.descriptors[i].get()
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets a toggle's state.
func (r *ToggleRegistry) SetEnabled(id ToggleID, enabled bool) {
	i, ok := r.byID[id]
	if !ok {
		return
	}
	desc := r.descriptors[i]
	desc.set(enabled)

	// If enabling, disable exclusive toggles
	if enabled {
		for _, excl := range desc.Exclusive {
			if j, ok := r.byID[excl]; ok {
				r.descriptors[j].set(false)
			}
		}
	}
}

// IsEnabled returns whether a toggle is on.
func (r *ToggleRegistry) IsEnabled(id ToggleID) bool {
	i, ok := r.byID[id]
	if !ok {
		return false
	}
	return r.descriptors[i].get()
}

// Get returns a toggle descriptor by ID.
func (r *ToggleRegistry) Get(id ToggleID) (ToggleDescriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return ToggleDescriptor{}, false
	}
	return r.descriptors[i], true
}

// All returns all registered toggles in registration order.
func (r *ToggleRegistry) All() []ToggleDescriptor {
	return r.descriptors
}

// ByCategory returns toggles filtered by category.
func (r *ToggleRegistry) ByCategory(category string) []ToggleDescriptor {
	var result []ToggleDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *ToggleRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to a toggle.
// Returns the toggle ID and new state if a toggle occurred.
func (r *ToggleRegistry) HandleKeyPress(key int32) (ToggleID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// Enabled returns the IDs of toggles that are currently on.
func (r *ToggleRegistry) Enabled() []ToggleID {
	var result []ToggleID
	for _, desc := range r.descriptors {
		if desc.get() {
			result = append(result, desc.ID)
		}
	}
	return result
}
