package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Animator.PatternCount != 4 || cfg.Animator.DecayStep != 0.1 {
		t.Errorf("animator = %+v", cfg.Animator)
	}
	if cfg.Effects.Wetness.Enabled || cfg.Effects.Dry.Enabled {
		t.Error("graphs should start disabled")
	}
	if got := len(cfg.Effects.Wetness.Subs); got != 3 {
		t.Errorf("wetness subs = %d, want 3", got)
	}
	if cfg.Derived.ScreenW32 != float32(cfg.Screen.Width) {
		t.Errorf("ScreenW32 = %v, want %v", cfg.Derived.ScreenW32, cfg.Screen.Width)
	}
	if _, ok := cfg.Derived.Library.Shaders["wetness_rainsplash"]; !ok {
		t.Error("library missing wetness_rainsplash shader")
	}
}

func TestDefaultsAreIndependent(t *testing.T) {
	a := Defaults()
	b := Defaults()
	a.Effects.Wetness.Subs[0].Disabled = true
	if b.Effects.Wetness.Subs[0].Disabled {
		t.Error("Defaults() copies share state")
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "animator:\n  decay_step: 0.25\nscene:\n  props: 3\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Animator.DecayStep != 0.25 {
		t.Errorf("DecayStep = %v, want 0.25", cfg.Animator.DecayStep)
	}
	if cfg.Scene.Props != 3 {
		t.Errorf("Props = %d, want 3", cfg.Scene.Props)
	}
	// Untouched sections keep their defaults.
	if cfg.Animator.PatternCount != 4 {
		t.Errorf("PatternCount = %d, want default 4", cfg.Animator.PatternCount)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", "[animator]\npattern_count = 6\ninitial_pattern = 5\n\n[telemetry]\nstats_window = 30\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Animator.PatternCount != 6 || cfg.Animator.InitialPattern != 5 {
		t.Errorf("animator = %+v", cfg.Animator)
	}
	if cfg.Telemetry.StatsWindow != 30 {
		t.Errorf("StatsWindow = %d, want 30", cfg.Telemetry.StatsWindow)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero decay", "animator:\n  decay_step: 0\n", "decay_step"},
		{"decay above one", "animator:\n  decay_step: 1.5\n", "decay_step"},
		{"single pattern", "animator:\n  pattern_count: 1\n  initial_pattern: 0\n", "pattern_count"},
		{"intensity range", "animator:\n  initial_intensity: 2\n", "initial_intensity"},
		{"pattern range", "animator:\n  initial_pattern: 4\n", "initial_pattern"},
		{"negative props", "scene:\n  props: -1\n", "scene.props"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "config.yaml", tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of a missing file returned nil error")
	}
}

func TestComputeDerivedFillsZeroes(t *testing.T) {
	path := writeFile(t, "config.yaml", "scene:\n  texture_size: 0\ntelemetry:\n  stats_window: 0\n  perf_collector_window: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Scene.TextureSize != 256 || cfg.Telemetry.StatsWindow != 120 || cfg.Telemetry.PerfCollectorWindow != 60 {
		t.Errorf("derived fallbacks: scene=%+v telemetry=%+v", cfg.Scene, cfg.Telemetry)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := Defaults().WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of written config error = %v", err)
	}
	if cfg.Effects.Wetness.Primary.Shader != "wetness" {
		t.Errorf("primary shader = %q after round trip", cfg.Effects.Wetness.Primary.Shader)
	}
}
