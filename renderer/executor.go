package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/config"
	"github.com/pthm-cable/wetfx/effect"
)

// PassExecutor runs effect passes on the GPU through raylib. It resolves a
// pass's shader, state block, inputs and output, then draws one full-screen
// quad. Any resolution failure returns an error wrapping ErrUnresolved before
// render state is touched.
type PassExecutor struct {
	targets  *TargetSet
	shaders  *ShaderCache
	textures *TextureCache
	blocks   map[string]StateBlock
}

// NewPassExecutor resolves the declared state blocks and returns an executor
// over the given resources.
func NewPassExecutor(targets *TargetSet, shaders *ShaderCache, textures *TextureCache, blocks map[string]config.StateBlockConfig) (*PassExecutor, error) {
	resolved, err := ResolveStateBlocks(blocks)
	if err != nil {
		return nil, err
	}
	return &PassExecutor{
		targets:  targets,
		shaders:  shaders,
		textures: textures,
		blocks:   resolved,
	}, nil
}

// Execute implements effect.Executor.
func (e *PassExecutor) Execute(p *effect.Pass) error {
	sh, err := e.shaders.Get(p.Shader())
	if err != nil {
		return err
	}

	sb := DefaultStateBlock
	if name := p.StateBlock(); name != "" {
		var ok bool
		if sb, ok = e.blocks[name]; !ok {
			return fmt.Errorf("state block %q: %w", name, ErrUnresolved)
		}
	}

	inputs := make([]rl.Texture2D, p.NumInputs())
	for i := range inputs {
		tex, err := e.input(p.Input(i))
		if err != nil {
			return err
		}
		inputs[i] = tex
	}

	out, err := e.targets.Output(p.Output())
	if err != nil {
		return err
	}

	if p.ReadsFeedback() {
		e.targets.CopyFeedback()
	}
	for i, tex := range inputs {
		if s, ok := sb.Sampler(i); ok {
			rl.SetTextureFilter(tex, s.Filter)
			rl.SetTextureWrap(tex, s.Wrap)
		}
	}

	w, h := e.targets.Size()
	rl.BeginTextureMode(out)
	sb.begin(p.Output().Kind == effect.RefBackbuffer)
	rl.BeginShaderMode(sh.shader)

	for i, tex := range inputs {
		if loc := sh.samplerLoc(i); loc >= 0 {
			rl.SetShaderValueTexture(sh.shader, loc, tex)
		}
	}
	for _, c := range p.Constants() {
		if loc := sh.constLoc(c.Name); loc >= 0 {
			rl.SetShaderValue(sh.shader, loc, []float32{c.Value}, rl.ShaderUniformFloat)
		}
	}
	rl.DrawRectangle(0, 0, w, h, rl.White)

	rl.EndShaderMode()
	sb.end()
	rl.EndTextureMode()
	return nil
}

func (e *PassExecutor) input(ref effect.ResourceRef) (rl.Texture2D, error) {
	if ref.Kind == effect.RefTexture {
		return e.textures.Get(ref.Name)
	}
	return e.targets.Input(ref)
}

// Unload frees cached shaders and textures. Targets are owned by the caller.
func (e *PassExecutor) Unload() {
	e.shaders.Unload()
	e.textures.Unload()
}
