package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds the values shown along the bottom edge.
type HUDData struct {
	Title        string
	Frame        int64
	FPS          int32
	Props        int
	Paused       bool
	Active       []ToggleID // Enabled toggles
	Executed     int        // Passes run last frame
	Intensity    float32    // Splash intensity, drawn as a strip on the edge
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD draws the status line and control legend.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the status line and the splash strip.
func (h *HUD) Draw(data HUDData) {
	t := h.renderer.Theme
	y := data.ScreenHeight - 50
	rl.DrawText(statusLine(data), 10, y, 16, rl.LightGray)
	if data.Paused {
		rl.DrawText("PAUSED", 10, y-20, 16, rl.Yellow)
	}

	if w := barFill(data.ScreenWidth, data.Intensity); w > 0 {
		rl.DrawRectangle(0, data.ScreenHeight-3, w, 3, t.BarFill)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// statusLine formats the HUD text: title, frame counters and which effects
// are live.
func statusLine(data HUDData) string {
	effects := "off"
	if len(data.Active) > 0 {
		names := make([]string, len(data.Active))
		for i, id := range data.Active {
			names[i] = string(id)
		}
		effects = strings.Join(names, "+")
	}
	return fmt.Sprintf("%s | Frame %d | %d FPS | %d props | %s (%d passes)",
		data.Title, data.Frame, data.FPS, data.Props, effects, data.Executed)
}
