package renderer

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Generator builds a stand-in image for a texture that is not on disk.
type Generator func() *rl.Image

// ProceduralTextures returns generators for the wetness textures, used when
// the image files are not present.
func ProceduralTextures(size int) map[string]Generator {
	return map[string]Generator{
		"textures/wetMap.png": func() *rl.Image {
			return rl.GenImagePerlinNoise(size, size, 0, 0, 4)
		},
		"textures/rainfall.png": func() *rl.Image {
			return rl.GenImageWhiteNoise(size, size, 0.08)
		},
		"textures/splashNormal.png": func() *rl.Image {
			return rl.GenImageCellular(size, size, size/8)
		},
	}
}

// TextureCache loads texture assets by path on first use.
type TextureCache struct {
	loaded     map[string]rl.Texture2D
	generators map[string]Generator
}

// NewTextureCache creates an empty texture cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{
		loaded:     make(map[string]rl.Texture2D),
		generators: make(map[string]Generator),
	}
}

// Provide registers a generator used when name is not found on disk.
func (c *TextureCache) Provide(name string, gen Generator) {
	c.generators[name] = gen
}

// ProvideAll registers several generators.
func (c *TextureCache) ProvideAll(gens map[string]Generator) {
	for name, gen := range gens {
		c.Provide(name, gen)
	}
}

// Get returns the texture for name, loading it from disk or its generator.
func (c *TextureCache) Get(name string) (rl.Texture2D, error) {
	if tex, ok := c.loaded[name]; ok {
		return tex, nil
	}

	var tex rl.Texture2D
	if _, err := os.Stat(name); err == nil {
		tex = rl.LoadTexture(name)
	} else if gen, ok := c.generators[name]; ok {
		img := gen()
		tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	} else {
		return rl.Texture2D{}, fmt.Errorf("texture %q: %w", name, ErrUnresolved)
	}

	if !rl.IsTextureValid(tex) {
		return rl.Texture2D{}, fmt.Errorf("texture %q failed to load: %w", name, ErrUnresolved)
	}
	c.loaded[name] = tex
	return tex, nil
}

// Unload frees every loaded texture.
func (c *TextureCache) Unload() {
	for name, tex := range c.loaded {
		rl.UnloadTexture(tex)
		delete(c.loaded, name)
	}
}
