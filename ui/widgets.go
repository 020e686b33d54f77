package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws panel widgets with a shared theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a header and returns the next row's y.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws "label: value" and returns the next row's y.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	t := r.Theme
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight
}

// DrawIntensity draws a splash intensity gauge. A full gauge means a flash
// started this frame and is drawn in the flash colour.
func (r *Renderer) DrawIntensity(x, y int32, label string, value float32, width int32) int32 {
	t := r.Theme
	barX := x + t.LabelWidth
	barW := width - t.LabelWidth - 40

	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	rl.DrawRectangle(barX, y+2, barW, t.BarHeight, t.BarBg)

	fill := t.BarFill
	if value >= 1 {
		fill = t.FlashFill
	}
	rl.DrawRectangle(barX, y+2, barFill(barW, value), t.BarHeight, fill)
	rl.DrawText(fmt.Sprintf("%.1f", clampUnit(value)), barX+barW+5, y, t.FontSize, t.ValueColor)

	return y + t.LineHeight + 2
}

// DrawPatternStrip draws one cell per splash pattern with the current one
// highlighted.
func (r *Renderer) DrawPatternStrip(x, y int32, label string, pattern, count int, width int32) int32 {
	t := r.Theme
	rl.DrawText(label+":", x, y, t.FontSize, t.LabelColor)
	for i, cell := range patternCells(x+t.LabelWidth, y+2, width-t.LabelWidth, t.BarHeight, count) {
		if i == pattern {
			rl.DrawRectangleRec(cell, t.BarFill)
		} else {
			rl.DrawRectangleRec(cell, t.BarBg)
		}
		rl.DrawText(fmt.Sprintf("%d", i), int32(cell.X)+3, int32(cell.Y), t.FontSize-2, t.ValueColor)
	}
	return y + t.LineHeight + 2
}

// barFill returns the filled width of a gauge for a [0, 1] value.
func barFill(width int32, value float32) int32 {
	return int32(float32(width) * clampUnit(value))
}

// patternCells lays out count cells across width with a 2px gap.
func patternCells(x, y, width, height int32, count int) []rl.Rectangle {
	if count < 1 || width <= 0 {
		return nil
	}
	const gap = 2
	cellW := (width - gap*int32(count-1)) / int32(count)
	if cellW < 1 {
		cellW = 1
	}
	cells := make([]rl.Rectangle, count)
	for i := range cells {
		cells[i] = rl.Rectangle{
			X:      float32(x + int32(i)*(cellW+gap)),
			Y:      float32(y),
			Width:  float32(cellW),
			Height: float32(height),
		}
	}
	return cells
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
