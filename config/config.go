// Package config provides configuration loading and access for the wetness effect.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all effect configuration parameters.
type Config struct {
	Screen      ScreenConfig                `yaml:"screen" toml:"screen"`
	Animator    AnimatorConfig              `yaml:"animator" toml:"animator"`
	Scene       SceneConfig                 `yaml:"scene" toml:"scene"`
	Telemetry   TelemetryConfig             `yaml:"telemetry" toml:"telemetry"`
	Shaders     map[string]ShaderConfig     `yaml:"shaders" toml:"shaders"`
	StateBlocks map[string]StateBlockConfig `yaml:"state_blocks" toml:"state_blocks"`
	Effects     EffectsConfig               `yaml:"effects" toml:"effects"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width" toml:"width"`
	Height    int `yaml:"height" toml:"height"`
	TargetFPS int `yaml:"target_fps" toml:"target_fps"`
}

// AnimatorConfig holds splash animation parameters.
type AnimatorConfig struct {
	Seed              int64   `yaml:"seed" toml:"seed"`                             // 0 = time-based
	DecayStep         float64 `yaml:"decay_step" toml:"decay_step"`                 // Intensity lost per frame
	PatternCount      int     `yaml:"pattern_count" toml:"pattern_count"`           // Number of splash variants
	InitialIntensity  float64 `yaml:"initial_intensity" toml:"initial_intensity"`   // Intensity before the first frame
	InitialPattern    int     `yaml:"initial_pattern" toml:"initial_pattern"`       // Pattern before the first frame
	PatternConstant   string  `yaml:"pattern_constant" toml:"pattern_constant"`     // Shader constant receiving the pattern
	IntensityConstant string  `yaml:"intensity_constant" toml:"intensity_constant"` // Shader constant receiving the intensity
}

// SceneConfig holds the demo scene the effect is drawn over.
type SceneConfig struct {
	Props       int     `yaml:"props" toml:"props"`               // Number of moving props
	MaxSpeed    float64 `yaml:"max_speed" toml:"max_speed"`       // Pixels per second
	TextureSize int     `yaml:"texture_size" toml:"texture_size"` // Size of generated stand-in textures
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window" toml:"stats_window"` // Frames per statistics window
	PerfCollectorWindow int `yaml:"perf_collector_window" toml:"perf_collector_window"`
}

// ShaderConfig declares a shader program. Files are resolved by the host.
type ShaderConfig struct {
	Vertex     string   `yaml:"vertex" toml:"vertex"`
	Pixel      string   `yaml:"pixel" toml:"pixel"`
	Samplers   []string `yaml:"samplers" toml:"samplers"` // Sampler uniform name per binding index
	PixVersion float64  `yaml:"pix_version" toml:"pix_version"`
}

// StateBlockConfig declares the fixed-function state a pass draws with.
type StateBlockConfig struct {
	Samplers []string    `yaml:"samplers" toml:"samplers"` // clamp_point, clamp_linear, wrap_point, wrap_linear
	ZEnable  bool        `yaml:"z_enable" toml:"z_enable"`
	ZWrite   bool        `yaml:"z_write" toml:"z_write"`
	Cull     string      `yaml:"cull" toml:"cull"` // none, back ("" = back)
	Blend    BlendConfig `yaml:"blend" toml:"blend"`
}

// BlendConfig holds blend factors for a state block.
type BlendConfig struct {
	Enable bool   `yaml:"enable" toml:"enable"`
	Src    string `yaml:"src" toml:"src"`   // one, zero, src_alpha, inv_src_alpha, dest_color
	Dest   string `yaml:"dest" toml:"dest"` // same vocabulary as src
}

// EffectsConfig holds the effect graphs.
type EffectsConfig struct {
	Wetness GraphConfig `yaml:"wetness" toml:"wetness"`
	Dry     GraphConfig `yaml:"dry" toml:"dry"`
}

// GraphConfig declares one effect graph: a primary pass and its sub-passes.
type GraphConfig struct {
	Name    string       `yaml:"name" toml:"name"`
	Enabled bool         `yaml:"enabled" toml:"enabled"`
	Primary PassConfig   `yaml:"primary" toml:"primary"`
	Subs    []PassConfig `yaml:"subs" toml:"subs"`
}

// PassConfig declares one full-screen pass.
type PassConfig struct {
	Key        string   `yaml:"key" toml:"key"` // Sub-pass key (refract, rainfall, rainsplash); ignored on primaries
	Shader     string   `yaml:"shader" toml:"shader"`
	StateBlock string   `yaml:"state_block" toml:"state_block"`
	Textures   []string `yaml:"textures" toml:"textures"` // Ordered input bindings
	Target     string   `yaml:"target" toml:"target"`
	Phase      string   `yaml:"phase" toml:"phase"` // before_opaque, after_bin, final_composite
	RenderBin  string   `yaml:"render_bin" toml:"render_bin"`
	Priority   int      `yaml:"priority" toml:"priority"`
	Disabled   bool     `yaml:"disabled" toml:"disabled"`
	After      []string `yaml:"after" toml:"after"` // Keys of passes that must run first
}

// Library is the set of named shaders and state blocks passes refer to.
type Library struct {
	Shaders     map[string]ShaderConfig
	StateBlocks map[string]StateBlockConfig
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	Library   Library // Shaders and state blocks bundled for graph builds
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML or TOML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// decode unmarshals data into cfg, picking the format from the file extension.
// Only fields present in the file are overwritten.
func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// validate rejects values the animator cannot work with.
func (c *Config) validate() error {
	a := c.Animator
	if a.DecayStep <= 0 || a.DecayStep > 1 {
		return fmt.Errorf("animator.decay_step must be in (0, 1], got %v", a.DecayStep)
	}
	if a.PatternCount < 2 {
		return fmt.Errorf("animator.pattern_count must be at least 2, got %d", a.PatternCount)
	}
	if a.InitialIntensity < 0 || a.InitialIntensity > 1 {
		return fmt.Errorf("animator.initial_intensity must be in [0, 1], got %v", a.InitialIntensity)
	}
	if a.InitialPattern < 0 || a.InitialPattern >= a.PatternCount {
		return fmt.Errorf("animator.initial_pattern must be in [0, %d), got %d", a.PatternCount, a.InitialPattern)
	}
	if c.Scene.Props < 0 {
		return fmt.Errorf("scene.props must not be negative, got %d", c.Scene.Props)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Shaders == nil {
		c.Shaders = make(map[string]ShaderConfig)
	}
	if c.StateBlocks == nil {
		c.StateBlocks = make(map[string]StateBlockConfig)
	}
	c.Derived.Library = Library{
		Shaders:     c.Shaders,
		StateBlocks: c.StateBlocks,
	}

	if c.Scene.TextureSize < 8 {
		c.Scene.TextureSize = 256
	}

	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 120
	}
	if c.Telemetry.PerfCollectorWindow < 1 {
		c.Telemetry.PerfCollectorWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
