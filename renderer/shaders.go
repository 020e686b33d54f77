package renderer

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/config"
)

// Shader is a loaded shader with its sampler locations in binding order.
type Shader struct {
	shader   rl.Shader
	samplers []int32
	consts   map[string]int32
}

// samplerLoc returns the uniform location for binding i, or -1 if the
// shader does not use it.
func (s *Shader) samplerLoc(i int) int32 {
	if i >= len(s.samplers) {
		return -1
	}
	return s.samplers[i]
}

// constLoc looks up and caches a float constant's location.
func (s *Shader) constLoc(name string) int32 {
	if loc, ok := s.consts[name]; ok {
		return loc
	}
	loc := rl.GetShaderLocation(s.shader, name)
	s.consts[name] = loc
	return loc
}

// SamplerName returns the uniform name bound to input i. Shaders that declare
// no sampler names use raylib's texture0, texture1, ... convention.
func SamplerName(decl config.ShaderConfig, i int) string {
	if i < len(decl.Samplers) {
		return decl.Samplers[i]
	}
	return fmt.Sprintf("texture%d", i)
}

// ShaderCache loads declared shaders on first use. Shaders that fail to
// compile stay failed; missing files are retried on each request.
type ShaderCache struct {
	decls  map[string]config.ShaderConfig
	loaded map[string]*Shader
	broken map[string]error
}

// NewShaderCache creates a cache over the declared shaders.
func NewShaderCache(decls map[string]config.ShaderConfig) *ShaderCache {
	return &ShaderCache{
		decls:  decls,
		loaded: make(map[string]*Shader),
		broken: make(map[string]error),
	}
}

// Get returns the named shader, loading it if needed.
func (c *ShaderCache) Get(name string) (*Shader, error) {
	if s, ok := c.loaded[name]; ok {
		return s, nil
	}
	if err, ok := c.broken[name]; ok {
		return nil, err
	}

	decl, ok := c.decls[name]
	if !ok {
		return nil, fmt.Errorf("shader %q not declared: %w", name, ErrUnresolved)
	}
	if err := checkFiles(decl.Vertex, decl.Pixel); err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}

	shader := rl.LoadShader(decl.Vertex, decl.Pixel)
	if !rl.IsShaderValid(shader) {
		err := fmt.Errorf("shader %q failed to compile: %w", name, ErrUnresolved)
		c.broken[name] = err
		return nil, err
	}

	s := &Shader{
		shader: shader,
		consts: make(map[string]int32),
	}
	n := len(decl.Samplers)
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		s.samplers = append(s.samplers, rl.GetShaderLocation(shader, SamplerName(decl, i)))
	}
	c.loaded[name] = s
	return s, nil
}

// Unload frees every loaded shader.
func (c *ShaderCache) Unload() {
	for name, s := range c.loaded {
		rl.UnloadShader(s.shader)
		delete(c.loaded, name)
	}
}

// checkFiles reports the first non-empty path that does not exist. An empty
// path selects raylib's default stage.
func checkFiles(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%s: %w", p, ErrUnresolved)
		}
	}
	return nil
}
