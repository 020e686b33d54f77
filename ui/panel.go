package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/animator"
	"github.com/pthm-cable/wetfx/effect"
)

// PanelData holds the per-frame values the panel shows.
type PanelData struct {
	Splash       animator.EffectState
	PatternCount int
	Injected     bool
	FrameStats effect.FrameStats
}

// PanelActions reports what the user changed this frame.
type PanelActions struct {
	ResetSplash bool
	Changed     bool // A check box flipped a toggle
}

// Panel renders the effect controls: a raygui check box per toggle, the
// splash state and the last frame's pass counts.
type Panel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewPanel creates a new panel.
func NewPanel(x, y, width int32) *Panel {
	return &Panel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Height returns the panel height for a registry.
func (p *Panel) Height(toggles *ToggleRegistry) int32 {
	t := p.renderer.Theme
	rows := int32(len(toggles.All()) + len(toggles.Categories()))
	// Title, splash section (header + 3 lines), stats section (header + 3 lines), button
	rows += 1 + 4 + 4 + 2
	return rows*t.LineHeight + t.Padding*2
}

// Draw renders the panel and applies check box changes to the registry.
func (p *Panel) Draw(toggles *ToggleRegistry, data PanelData) PanelActions {
	var actions PanelActions
	if !p.visible {
		return actions
	}

	r := p.renderer
	t := r.Theme
	inner := p.width - t.Padding*2

	r.DrawPanel(p.x, p.y, p.width, p.Height(toggles))
	x := p.x + t.Padding
	y := p.y + t.Padding

	rl.DrawText("Wetness FX", x, y, 16, rl.White)
	y += t.LineHeight + 4

	for _, category := range toggles.Categories() {
		y = r.DrawSectionHeader(x, y, categoryLabel(category))
		for _, desc := range toggles.ByCategory(category) {
			label := desc.Name
			if desc.KeyLabel != "" {
				label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			}
			bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: 12, Height: 12}
			checked := gui.CheckBox(bounds, label, toggles.IsEnabled(desc.ID))
			if applyCheck(toggles, desc.ID, checked) {
				actions.Changed = true
			}
			y += t.LineHeight
		}
	}

	y = r.DrawSectionHeader(x, y, "Splash")
	y = r.DrawIntensity(x, y, "Intensity", data.Splash.SplashIntensity, inner)
	y = r.DrawPatternStrip(x, y, "Pattern", data.Splash.SplashPattern, data.PatternCount, inner)
	injected := "no"
	if data.Injected {
		injected = "yes"
	}
	y = r.DrawLabelValue(x, y, "Injected", injected)

	y = r.DrawSectionHeader(x, y, "Passes")
	y = r.DrawLabelValue(x, y, "Executed", fmt.Sprintf("%d", data.FrameStats.Executed))
	y = r.DrawLabelValue(x, y, "Skipped", fmt.Sprintf("%d", data.FrameStats.Skipped))
	y = r.DrawLabelValue(x, y, "Bindings", fmt.Sprintf("%d", data.FrameStats.Bindings))

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y + 4), Width: float32(inner), Height: 24}, "Restart splash") {
		actions.ResetSplash = true
	}

	return actions
}

// applyCheck sets a toggle from its check box and reports whether the
// registry changed.
func applyCheck(toggles *ToggleRegistry, id ToggleID, checked bool) bool {
	if toggles.IsEnabled(id) == checked {
		return false
	}
	toggles.SetEnabled(id, checked)
	return true
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "graphs":
		return "Graphs"
	case "passes":
		return "Rain layers"
	default:
		return cat
	}
}
