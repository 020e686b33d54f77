package main

import (
	"testing"

	"github.com/pthm-cable/wetfx/ui"
)

func TestLayerStates(t *testing.T) {
	states, err := layerStates("rainfall")
	if err != nil {
		t.Fatalf("layerStates(rainfall) error = %v", err)
	}
	want := map[ui.ToggleID]bool{ui.ToggleRefract: false, ui.ToggleRainfall: true, ui.ToggleRainSplash: false}
	for id, on := range want {
		if states[id] != on {
			t.Errorf("%s = %v, want %v", id, states[id], on)
		}
	}
	if len(states) != len(want) {
		t.Errorf("got %d states, want %d", len(states), len(want))
	}
}

func TestLayerStatesEmptyKeepsConfig(t *testing.T) {
	states, err := layerStates("")
	if err != nil || states != nil {
		t.Errorf("layerStates(\"\") = %v, %v; want nil, nil", states, err)
	}
}

func TestLayerStatesRejectsUnknown(t *testing.T) {
	for _, name := range []string{"snow", "wetness", "primary"} {
		if _, err := layerStates(name); err == nil {
			t.Errorf("layerStates(%q) returned nil error", name)
		}
	}
}
