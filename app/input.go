package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard input.
func (a *App) handleInput() {
	a.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.paused = !a.paused
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		a.panel.Toggle()
	}

	// Effect toggles; drain every key queued this frame.
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := a.toggles.HandleKeyPress(key); ok {
			slog.Info("toggle", "id", id, "enabled", on)
			a.scheduleChanged()
		}
	}
}

// handleResize checks for window resize and reallocates the scene buffers.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if tw, th := a.targets.Size(); w == tw && h == th {
		return
	}
	a.targets.Resize(w, h)
	a.scene.Resize(float32(w), float32(h))
	a.screenW, a.screenH = w, h
	visible := a.panel.IsVisible()
	a.panel = newPanel(w)
	if visible != a.panel.IsVisible() {
		a.panel.Toggle()
	}
}

// scheduleChanged rewrites schedule.csv after a toggle.
func (a *App) scheduleChanged() {
	if err := a.outputManager.WriteSchedule(a.dry, a.wet); err != nil {
		slog.Error("failed to write schedule", "error", err)
	}
}
