package effect

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pthm-cable/wetfx/config"
)

// wetness returns the default wetness graph config and library.
func wetness(t *testing.T) (config.GraphConfig, config.Library) {
	t.Helper()
	cfg := config.Defaults()
	return cfg.Effects.Wetness, cfg.Derived.Library
}

func mustBuild(t *testing.T, gc config.GraphConfig, lib config.Library) *Graph {
	t.Helper()
	g, err := Build(gc, lib)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in      string
		want    ResourceRef
		wantErr bool
	}{
		{"#deferred", ResourceRef{Kind: RefTarget, Name: "deferred"}, false},
		{"$backbuffer", ResourceRef{Kind: RefBackbuffer, Name: "backbuffer"}, false},
		{"textures/wetMap.png", ResourceRef{Kind: RefTexture, Name: "textures/wetMap.png"}, false},
		{"", ResourceRef{}, true},
		{"#", ResourceRef{}, true},
		{"$frontbuffer", ResourceRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRef(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRef(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestBuildDefaultWetness(t *testing.T) {
	gc, lib := wetness(t)
	g := mustBuild(t, gc, lib)

	if g.Enabled() {
		t.Error("default wetness graph should start disabled")
	}

	primary := g.Primary()
	if primary.Phase() != PhaseBeforeOpaque {
		t.Errorf("primary phase = %s, want %s", primary.Phase(), PhaseBeforeOpaque)
	}
	if primary.Output() != TargetRef("matres") {
		t.Errorf("primary output = %s, want #matres", primary.Output())
	}
	if primary.Priority() != 9999 {
		t.Errorf("primary priority = %d, want 9999", primary.Priority())
	}

	for _, key := range []Key{KeyRefract, KeyRainfall, KeyRainSplash} {
		p, ok := g.Lookup(key)
		if !ok {
			t.Fatalf("Lookup(%s) not found", key)
		}
		if p.Phase() != PhaseFinalComposite {
			t.Errorf("%s phase = %s, want %s", key, p.Phase(), PhaseFinalComposite)
		}
		if p.Input(0) != TargetRef("deferred") {
			t.Errorf("%s binding 0 = %s, want #deferred", key, p.Input(0))
		}
		if p.Input(1) != TargetRef("directLighting") {
			t.Errorf("%s binding 1 = %s, want #directLighting", key, p.Input(1))
		}
	}
}

func TestRefractFeedbackBindingIsLast(t *testing.T) {
	gc, lib := wetness(t)
	g := mustBuild(t, gc, lib)

	refract, ok := g.Lookup(KeyRefract)
	if !ok {
		t.Fatal("refract pass missing")
	}
	if !refract.ReadsFeedback() {
		t.Fatal("refract should read backbuffer feedback")
	}
	n := refract.NumInputs()
	if !refract.Input(n - 1).IsFeedback() {
		t.Errorf("last binding = %s, want %s", refract.Input(n-1), Backbuffer)
	}
	for i := 0; i < n-1; i++ {
		if refract.Input(i).IsFeedback() {
			t.Errorf("binding %d is feedback; feedback must come last", i)
		}
	}
}

func TestBindingOrderRejected(t *testing.T) {
	tests := []struct {
		name     string
		textures []string
	}{
		{"feedback before map", []string{"#deferred", "#directLighting", "$backbuffer", "textures/wetMap.png"}},
		{"texture at index 0", []string{"textures/wetMap.png", "#directLighting"}},
		{"feedback at index 0", []string{"$backbuffer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc, lib := wetness(t)
			gc.Subs[0].Textures = tt.textures
			_, err := Build(gc, lib)
			if !errors.Is(err, ErrBindingOrder) {
				t.Errorf("Build() error = %v, want %v", err, ErrBindingOrder)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gc *config.GraphConfig)
		want   error
	}{
		{"unknown shader", func(gc *config.GraphConfig) { gc.Subs[1].Shader = "missing" }, ErrUnknownShader},
		{"unknown state block", func(gc *config.GraphConfig) { gc.Primary.StateBlock = "missing" }, ErrUnknownStateBlock},
		{"unknown key", func(gc *config.GraphConfig) { gc.Subs[1].Key = "snow" }, ErrUnknownKey},
		{"primary key on sub", func(gc *config.GraphConfig) { gc.Subs[1].Key = "primary" }, ErrUnknownKey},
		{"duplicate key", func(gc *config.GraphConfig) { gc.Subs[2].Key = "rainfall" }, ErrDuplicateKey},
		{"no inputs", func(gc *config.GraphConfig) { gc.Subs[1].Textures = nil }, ErrNoInputs},
		{"texture target", func(gc *config.GraphConfig) { gc.Subs[1].Target = "out.png" }, ErrBadTarget},
		{"too many inputs", func(gc *config.GraphConfig) {
			gc.Subs[1].Textures = append(gc.Subs[1].Textures, "textures/extra.png")
		}, ErrSamplerCount},
		{"primary in final composite", func(gc *config.GraphConfig) { gc.Primary.Phase = "final_composite" }, ErrPhaseOrder},
		{"primary after bin", func(gc *config.GraphConfig) { gc.Primary.Phase = "after_bin" }, ErrPhaseOrder},
		{"sub before opaque", func(gc *config.GraphConfig) { gc.Subs[1].Phase = "before_opaque" }, ErrPhaseOrder},
		{"every sub before opaque", func(gc *config.GraphConfig) {
			for i := range gc.Subs {
				gc.Subs[i].Phase = "before_opaque"
			}
		}, ErrPhaseOrder},
		{"refract after bin", func(gc *config.GraphConfig) { gc.Subs[0].Phase = "after_bin" }, ErrPhaseOrder},
		{"cycle", func(gc *config.GraphConfig) {
			gc.Subs[1].After = []string{"rainsplash"}
			gc.Subs[2].After = []string{"rainfall"}
		}, ErrCycle},
		{"self dependency", func(gc *config.GraphConfig) { gc.Subs[1].After = []string{"rainfall"} }, ErrCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc, lib := wetness(t)
			tt.mutate(&gc)
			_, err := Build(gc, lib)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildDry(t *testing.T) {
	cfg := config.Defaults()

	g, err := BuildDry(cfg.Effects.Dry, cfg.Derived.Library)
	if err != nil {
		t.Fatalf("BuildDry() error = %v", err)
	}
	if got := len(g.Passes()); got != 1 {
		t.Fatalf("dry graph has %d passes, want 1", got)
	}
	p := g.Primary()
	if p.NumInputs() != 1 || p.Input(0) != TargetRef("matinfo") {
		t.Errorf("dry inputs = %v, want [#matinfo]", p.Inputs())
	}
	if p.Output() != TargetRef("matres") {
		t.Errorf("dry output = %s, want #matres", p.Output())
	}

	if _, err := BuildDry(cfg.Effects.Wetness, cfg.Derived.Library); !errors.Is(err, ErrDryShape) {
		t.Errorf("BuildDry(wetness) error = %v, want %v", err, ErrDryShape)
	}
}

func TestLookupAbsentAndDisabled(t *testing.T) {
	gc, lib := wetness(t)
	gc.Subs = gc.Subs[:2] // drop rainsplash
	g := mustBuild(t, gc, lib)
	g.SetEnabled(true)

	if _, ok := g.Lookup(KeyRainSplash); ok {
		t.Error("Lookup(rainsplash) found a pass in a graph without one")
	}
	if _, ok := g.Active(KeyRainSplash); ok {
		t.Error("Active(rainsplash) found a pass in a graph without one")
	}

	rainfall, _ := g.Lookup(KeyRainfall)
	rainfall.SetEnabled(false)
	if _, ok := g.Active(KeyRainfall); ok {
		t.Error("Active(rainfall) returned a disabled pass")
	}
	if _, ok := g.Lookup(KeyRainfall); !ok {
		t.Error("Lookup(rainfall) should still find a disabled pass")
	}

	rainfall.SetEnabled(true)
	g.SetEnabled(false)
	if _, ok := g.Active(KeyRainfall); ok {
		t.Error("Active(rainfall) returned a pass of a disabled graph")
	}

	var nilGraph *Graph
	if _, ok := nilGraph.Active(KeyRainSplash); ok {
		t.Error("Active on nil graph should report not found")
	}
}

func TestSubPassDisabledFromConfig(t *testing.T) {
	gc, lib := wetness(t)
	gc.Enabled = true
	gc.Subs[2].Disabled = true
	g := mustBuild(t, gc, lib)

	p, ok := g.Lookup(KeyRainSplash)
	if !ok {
		t.Fatal("rainsplash missing")
	}
	if p.Enabled() {
		t.Error("rainsplash should be disabled")
	}
	if !reflect.DeepEqual(p.After(), []Key{KeyPrimary}) {
		t.Errorf("After() = %v, want [primary]", p.After())
	}
}

func TestConstants(t *testing.T) {
	gc, lib := wetness(t)
	g := mustBuild(t, gc, lib)
	p, _ := g.Lookup(KeyRainSplash)

	if _, ok := p.Constant("splashPattern"); ok {
		t.Fatal("constant present before first set")
	}
	p.SetConstant("splashPattern", 2)
	p.SetConstant("splashIntensity", 0.5)
	p.SetConstant("splashPattern", 3)

	want := []Constant{{"splashPattern", 3}, {"splashIntensity", 0.5}}
	if got := p.Constants(); !reflect.DeepEqual(got, want) {
		t.Errorf("Constants() = %v, want %v", got, want)
	}
}
