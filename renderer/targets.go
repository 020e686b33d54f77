package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/effect"
)

// Named scene buffers available to passes as "#name".
const (
	TargetDeferred       = "deferred"
	TargetDirectLighting = "directLighting"
	TargetColor          = "color"
	TargetMatInfo        = "matinfo"
	TargetMatRes         = "matres"
)

// DefaultTargets lists the scene buffers created by a TargetSet by default.
var DefaultTargets = []string{
	TargetDeferred, TargetDirectLighting, TargetColor, TargetMatInfo, TargetMatRes,
}

// TargetSet owns the screen-sized render textures that passes read and write:
// the named scene buffers, the backbuffer, and a feedback copy of the
// backbuffer for passes that sample it while drawing into it.
type TargetSet struct {
	width, height int32
	names         []string
	targets       map[string]rl.RenderTexture2D
	backbuffer    rl.RenderTexture2D
	feedback      rl.RenderTexture2D
	initialized   bool
}

// NewTargetSet creates a target set. Init must be called after the raylib
// window exists.
func NewTargetSet(width, height int32, names ...string) *TargetSet {
	if len(names) == 0 {
		names = DefaultTargets
	}
	return &TargetSet{
		width:   width,
		height:  height,
		names:   names,
		targets: make(map[string]rl.RenderTexture2D, len(names)),
	}
}

// Init allocates the render textures.
func (t *TargetSet) Init() {
	if t.initialized {
		return
	}
	for _, name := range t.names {
		t.targets[name] = rl.LoadRenderTexture(t.width, t.height)
	}
	t.backbuffer = rl.LoadRenderTexture(t.width, t.height)
	t.feedback = rl.LoadRenderTexture(t.width, t.height)
	t.initialized = true
}

// Size returns the target dimensions.
func (t *TargetSet) Size() (int32, int32) {
	return t.width, t.height
}

// Names returns the named scene buffers.
func (t *TargetSet) Names() []string {
	return t.names
}

// Target returns a named scene buffer.
func (t *TargetSet) Target(name string) (rl.RenderTexture2D, error) {
	rt, ok := t.targets[name]
	if !ok {
		return rl.RenderTexture2D{}, fmt.Errorf("target #%s: %w", name, ErrUnresolved)
	}
	return rt, nil
}

// Backbuffer returns the composite target.
func (t *TargetSet) Backbuffer() rl.RenderTexture2D {
	return t.backbuffer
}

// Input resolves a render-target binding to the texture a pass samples.
// Backbuffer reads come from the feedback copy.
func (t *TargetSet) Input(ref effect.ResourceRef) (rl.Texture2D, error) {
	switch ref.Kind {
	case effect.RefTarget:
		rt, err := t.Target(ref.Name)
		if err != nil {
			return rl.Texture2D{}, err
		}
		return rt.Texture, nil
	case effect.RefBackbuffer:
		if !t.initialized {
			return rl.Texture2D{}, fmt.Errorf("%s: %w", effect.Backbuffer, ErrUnresolved)
		}
		return t.feedback.Texture, nil
	default:
		return rl.Texture2D{}, fmt.Errorf("%s is not a render target: %w", ref, ErrUnresolved)
	}
}

// Output resolves the render texture a pass draws into.
func (t *TargetSet) Output(ref effect.ResourceRef) (rl.RenderTexture2D, error) {
	switch ref.Kind {
	case effect.RefTarget:
		return t.Target(ref.Name)
	case effect.RefBackbuffer:
		if !t.initialized {
			return rl.RenderTexture2D{}, fmt.Errorf("%s: %w", effect.Backbuffer, ErrUnresolved)
		}
		return t.backbuffer, nil
	default:
		return rl.RenderTexture2D{}, fmt.Errorf("%s cannot be written: %w", ref, ErrUnresolved)
	}
}

// Clear resets every target at the start of a frame.
func (t *TargetSet) Clear(background rl.Color) {
	for _, rt := range t.targets {
		rl.BeginTextureMode(rt)
		rl.ClearBackground(rl.Blank)
		rl.EndTextureMode()
	}
	rl.BeginTextureMode(t.backbuffer)
	rl.ClearBackground(background)
	rl.EndTextureMode()
}

// CopyFeedback snapshots the backbuffer into the feedback texture.
func (t *TargetSet) CopyFeedback() {
	rl.BeginTextureMode(t.feedback)
	rl.ClearBackground(rl.Blank)
	drawFullscreen(t.backbuffer.Texture, t.width, t.height, rl.White)
	rl.EndTextureMode()
}

// Composite draws a named target over the backbuffer with alpha blending.
func (t *TargetSet) Composite(name string) error {
	rt, err := t.Target(name)
	if err != nil {
		return err
	}
	rl.BeginTextureMode(t.backbuffer)
	drawFullscreen(rt.Texture, t.width, t.height, rl.White)
	rl.EndTextureMode()
	return nil
}

// Present draws the backbuffer to the current framebuffer.
func (t *TargetSet) Present() {
	drawFullscreen(t.backbuffer.Texture, t.width, t.height, rl.White)
}

// ExportBackbuffer writes the composite to an image file, flipped upright.
func (t *TargetSet) ExportBackbuffer(path string) error {
	if !t.initialized {
		return fmt.Errorf("export %s: targets not initialized", path)
	}
	img := rl.LoadImageFromTexture(t.backbuffer.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("export %s: write failed", path)
	}
	return nil
}

// Resize reallocates every target at the new dimensions.
func (t *TargetSet) Resize(width, height int32) {
	if width == t.width && height == t.height {
		return
	}
	wasInit := t.initialized
	t.Unload()
	t.width, t.height = width, height
	if wasInit {
		t.Init()
	}
}

// Unload frees every render texture.
func (t *TargetSet) Unload() {
	if !t.initialized {
		return
	}
	for name, rt := range t.targets {
		rl.UnloadRenderTexture(rt)
		delete(t.targets, name)
	}
	rl.UnloadRenderTexture(t.backbuffer)
	rl.UnloadRenderTexture(t.feedback)
	t.initialized = false
}

// drawFullscreen draws a render texture's color attachment, flipped to undo
// the OpenGL origin.
func drawFullscreen(tex rl.Texture2D, w, h int32, tint rl.Color) {
	src := rl.Rectangle{X: 0, Y: float32(h), Width: float32(w), Height: -float32(h)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: float32(h)}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, tint)
}
