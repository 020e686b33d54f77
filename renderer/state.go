package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/config"
)

// SamplerState is the filter and wrap applied to one input binding.
type SamplerState struct {
	Filter rl.TextureFilterMode
	Wrap   rl.TextureWrapMode
}

var samplerStates = map[string]SamplerState{
	"clamp_point":  {Filter: rl.FilterPoint, Wrap: rl.WrapClamp},
	"clamp_linear": {Filter: rl.FilterBilinear, Wrap: rl.WrapClamp},
	"wrap_point":   {Filter: rl.FilterPoint, Wrap: rl.WrapRepeat},
	"wrap_linear":  {Filter: rl.FilterBilinear, Wrap: rl.WrapRepeat},
}

// ParseSampler maps a sampler state name to its filter and wrap modes.
func ParseSampler(name string) (SamplerState, error) {
	s, ok := samplerStates[name]
	if !ok {
		return SamplerState{}, fmt.Errorf("%w: sampler %q", ErrBadState, name)
	}
	return s, nil
}

// blendFactors keys raylib's fixed blend modes by their source and
// destination factors.
var blendFactors = map[[2]string]rl.BlendMode{
	{"src_alpha", "inv_src_alpha"}: rl.BlendAlpha,
	{"src_alpha", "one"}:           rl.BlendAdditive,
	{"one", "one"}:                 rl.BlendAddColors,
	{"dest_color", "zero"}:         rl.BlendMultiplied,
	{"one", "inv_src_alpha"}:       rl.BlendAlphaPremultiply,
}

// BlendModeFor maps a source/destination factor pair to a raylib blend mode.
func BlendModeFor(src, dest string) (rl.BlendMode, error) {
	mode, ok := blendFactors[[2]string{src, dest}]
	if !ok {
		return 0, fmt.Errorf("%w: blend %s/%s", ErrBadState, src, dest)
	}
	return mode, nil
}

// StateBlock is a state block declaration resolved to raylib state.
type StateBlock struct {
	Samplers   []SamplerState // Indexed by input binding
	DepthTest  bool
	DepthWrite bool
	CullBack   bool
	Blend      bool
	BlendMode  rl.BlendMode
}

// DefaultStateBlock is used by passes that name no state block.
var DefaultStateBlock = StateBlock{CullBack: true}

// ResolveStateBlock converts a declaration into render state.
func ResolveStateBlock(cfg config.StateBlockConfig) (StateBlock, error) {
	sb := StateBlock{
		DepthTest:  cfg.ZEnable,
		DepthWrite: cfg.ZWrite,
	}

	for _, name := range cfg.Samplers {
		s, err := ParseSampler(name)
		if err != nil {
			return StateBlock{}, err
		}
		sb.Samplers = append(sb.Samplers, s)
	}

	switch cfg.Cull {
	case "", "back":
		sb.CullBack = true
	case "none":
		sb.CullBack = false
	default:
		return StateBlock{}, fmt.Errorf("%w: cull %q", ErrBadState, cfg.Cull)
	}

	if cfg.Blend.Enable {
		mode, err := BlendModeFor(cfg.Blend.Src, cfg.Blend.Dest)
		if err != nil {
			return StateBlock{}, err
		}
		sb.Blend = true
		sb.BlendMode = mode
	}

	return sb, nil
}

// ResolveStateBlocks resolves every declared state block.
func ResolveStateBlocks(decls map[string]config.StateBlockConfig) (map[string]StateBlock, error) {
	out := make(map[string]StateBlock, len(decls))
	for name, decl := range decls {
		sb, err := ResolveStateBlock(decl)
		if err != nil {
			return nil, fmt.Errorf("state block %q: %w", name, err)
		}
		out[name] = sb
	}
	return out, nil
}

// Sampler returns the sampler state for binding i. Bindings past the declared
// samplers reuse the last one; with none declared the texture keeps its own.
func (sb StateBlock) Sampler(i int) (SamplerState, bool) {
	if len(sb.Samplers) == 0 {
		return SamplerState{}, false
	}
	if i >= len(sb.Samplers) {
		i = len(sb.Samplers) - 1
	}
	return sb.Samplers[i], true
}

// begin applies the block. Composites onto the backbuffer are coplanar
// full-screen layers, so they never write depth.
func (sb StateBlock) begin(toBackbuffer bool) {
	if sb.DepthTest {
		rl.EnableDepthTest()
	} else {
		rl.DisableDepthTest()
	}
	if sb.DepthWrite && !toBackbuffer {
		rl.EnableDepthMask()
	} else {
		rl.DisableDepthMask()
	}
	if sb.CullBack {
		rl.EnableBackfaceCulling()
	} else {
		rl.DisableBackfaceCulling()
	}
	if sb.Blend {
		rl.BeginBlendMode(sb.BlendMode)
	}
}

// end restores raylib's 2D defaults.
func (sb StateBlock) end() {
	if sb.Blend {
		rl.EndBlendMode()
	}
	rl.DisableDepthTest()
	rl.EnableDepthMask()
	rl.EnableBackfaceCulling()
}
