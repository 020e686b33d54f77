// Package app wires the splash animator, effect graphs, renderer, scene and
// telemetry into a frame loop.
package app

import (
	"fmt"
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wetfx/animator"
	"github.com/pthm-cable/wetfx/config"
	"github.com/pthm-cable/wetfx/effect"
	"github.com/pthm-cable/wetfx/renderer"
	"github.com/pthm-cable/wetfx/scene"
	"github.com/pthm-cable/wetfx/telemetry"
	"github.com/pthm-cable/wetfx/ui"
)

// frameDT is the fixed scene step in seconds.
const frameDT = 1.0 / 60

// App holds the complete effect host state.
type App struct {
	cfg *config.Config

	// Effect core
	wet      *effect.Graph
	dry      *effect.Graph
	anim     *animator.Animator
	runner   *effect.Runner
	recorder *effect.Recorder // Headless executor

	// Rendering
	targets *renderer.TargetSet
	exec    *renderer.PassExecutor
	scene   *scene.Scene

	// UI
	toggles *ui.ToggleRegistry
	panel   *ui.Panel
	hud     *ui.HUD

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// State
	screenW   int32
	screenH   int32
	frame     int64
	paused    bool
	stepped   bool // Animator advanced since the last recorded frame
	headless  bool
	last      animator.Result
	lastStats effect.FrameStats
}

// New builds the graphs and host. In graphical mode the raylib window must
// already exist.
func New(cfg *config.Config, opts Options) (*App, error) {
	wet, err := effect.Build(cfg.Effects.Wetness, cfg.Derived.Library)
	if err != nil {
		return nil, fmt.Errorf("building wetness graph: %w", err)
	}
	dry, err := effect.BuildDry(cfg.Effects.Dry, cfg.Derived.Library)
	if err != nil {
		return nil, fmt.Errorf("building dry graph: %w", err)
	}

	a := &App{
		cfg:           cfg,
		wet:           wet,
		dry:           dry,
		anim:          animator.New(cfg.Animator, rand.New(rand.NewSource(opts.Seed)), wet),
		scene:         scene.New(cfg.Scene, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, rand.New(rand.NewSource(opts.Seed+1))),
		toggles:       ui.NewToggleRegistry(wet, dry),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Animator.PatternCount),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		screenW:       int32(cfg.Screen.Width),
		screenH:       int32(cfg.Screen.Height),
	}
	a.last = animator.Result{State: a.anim.State()}

	if opts.Rain {
		a.toggles.SetEnabled(ui.ToggleWetness, true)
	}
	if opts.Dry {
		a.toggles.SetEnabled(ui.ToggleDry, true)
	}

	var exec effect.Executor
	if opts.Headless {
		a.recorder = effect.NewRecorder()
		exec = a.recorder
	} else {
		if err := a.initGraphics(); err != nil {
			return nil, err
		}
		exec = a.exec
	}
	a.runner = effect.NewRunner(exec, dry, wet)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		a.Unload()
		return nil, err
	}
	a.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	if err := om.WriteSchedule(dry, wet); err != nil {
		slog.Error("failed to write schedule", "error", err)
	}

	slog.Info("effect host ready",
		"headless", opts.Headless,
		"seed", opts.Seed,
		"wetness", wet.Enabled(),
		"dry", dry.Enabled(),
		"props", a.scene.Len(),
	)

	return a, nil
}

// initGraphics creates the render targets, caches and UI.
func (a *App) initGraphics() error {
	a.targets = renderer.NewTargetSet(a.screenW, a.screenH)
	a.targets.Init()

	textures := renderer.NewTextureCache()
	textures.ProvideAll(renderer.ProceduralTextures(a.cfg.Scene.TextureSize))

	exec, err := renderer.NewPassExecutor(a.targets, renderer.NewShaderCache(a.cfg.Shaders), textures, a.cfg.StateBlocks)
	if err != nil {
		a.targets.Unload()
		return fmt.Errorf("creating pass executor: %w", err)
	}
	a.exec = exec

	a.panel = newPanel(a.screenW)
	a.hud = ui.NewHUD()
	return nil
}

// newPanel anchors the toggle panel to the top right corner.
func newPanel(screenW int32) *ui.Panel {
	return ui.NewPanel(screenW-230, 10, 220)
}

// SetStatsCallback registers a function called with each flushed window.
func (a *App) SetStatsCallback(fn func(telemetry.WindowStats)) {
	a.statsCallback = fn
}

// Update handles input and advances the animator and scene by one frame.
func (a *App) Update() {
	a.perfCollector.StartFrame()
	a.handleInput()

	if a.paused {
		return
	}
	a.step()
}

// step advances the animator before any pass of the frame executes.
func (a *App) step() {
	a.perfCollector.StartPhase(telemetry.PhaseAnimator)
	a.last = a.anim.Update()

	a.perfCollector.StartPhase(telemetry.PhaseScene)
	a.scene.Update(frameDT)
	a.stepped = true
}

// Draw renders the scene, runs every effect phase and presents the result.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	a.perfCollector.StartPhase(telemetry.PhaseScene)
	a.targets.Clear(rl.Black)
	if err := a.scene.Draw(a.targets); err != nil {
		slog.Error("failed to draw scene", "error", err)
	}

	var stats effect.FrameStats
	for _, phase := range effect.Phases {
		a.perfCollector.StartPhase(phase.String())
		stats.Add(a.runner.RunPhase(phase))
		if phase == effect.PhaseBeforeOpaque {
			if err := a.targets.Composite(renderer.TargetMatRes); err != nil {
				slog.Error("failed to composite material result", "error", err)
			}
		}
	}
	a.lastStats = stats

	a.perfCollector.StartPhase(telemetry.PhasePresent)
	a.targets.Present()
	a.drawUI()
	rl.EndDrawing()
	a.perfCollector.RecordPresent()

	a.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	a.endFrame()
	a.perfCollector.EndFrame()
}

// UpdateHeadless advances one frame and runs every phase through the
// recorder.
func (a *App) UpdateHeadless() {
	a.perfCollector.StartFrame()
	a.step()

	a.recorder.Reset()
	var stats effect.FrameStats
	for _, phase := range effect.Phases {
		a.perfCollector.StartPhase(phase.String())
		stats.Add(a.runner.RunPhase(phase))
	}
	a.lastStats = stats

	a.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	a.endFrame()
	a.perfCollector.EndFrame()
}

// endFrame records the frame in telemetry once the animator has advanced.
func (a *App) endFrame() {
	if !a.stepped {
		return
	}
	a.stepped = false
	a.frame++
	a.collector.RecordFrame(a.last, a.lastStats)
	a.flushTelemetry()
}

func (a *App) drawUI() {
	h := a.screenH
	a.hud.Draw(ui.HUDData{
		Title:        "Wetness FX",
		Frame:        a.frame,
		FPS:          rl.GetFPS(),
		Props:        a.scene.Len(),
		Paused:       a.paused,
		Active:       a.toggles.Enabled(),
		Executed:     a.lastStats.Executed,
		Intensity:    a.last.State.SplashIntensity,
		ScreenWidth:  a.screenW,
		ScreenHeight: h,
	})
	a.hud.DrawControls(h, "[Space] pause  [Tab] panel  [W] wetness  [K] dry  [R/F/S] layers  [F11] fullscreen")

	a.applyPanel(a.panel.Draw(a.toggles, ui.PanelData{
		Splash:       a.last.State,
		PatternCount: a.anim.PatternCount(),
		Injected:     a.last.Injected,
		FrameStats:   a.lastStats,
	}))
}

// applyPanel acts on what the user did in the panel this frame.
func (a *App) applyPanel(actions ui.PanelActions) {
	if actions.ResetSplash {
		a.anim.Reset()
	}
	if actions.Changed {
		a.scheduleChanged()
	}
}

// Unload frees GPU resources and closes output files.
func (a *App) Unload() {
	if a.exec != nil {
		a.exec.Unload()
	}
	if a.targets != nil {
		a.targets.Unload()
	}
	if err := a.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// ExportFrame writes the last composited frame to an image file.
func (a *App) ExportFrame(path string) error {
	if a.targets == nil {
		return fmt.Errorf("export %s: no render targets in headless mode", path)
	}
	return a.targets.ExportBackbuffer(path)
}

// Frame returns the number of frames the animator has advanced.
func (a *App) Frame() int64 {
	return a.frame
}

// State returns the animator's current splash state.
func (a *App) State() animator.EffectState {
	return a.anim.State()
}

// LastFrameStats returns the pass counts of the most recent frame.
func (a *App) LastFrameStats() effect.FrameStats {
	return a.lastStats
}

// Recorder returns the headless executor, or nil in graphical mode.
func (a *App) Recorder() *effect.Recorder {
	return a.recorder
}

// Toggles returns the effect toggle registry.
func (a *App) Toggles() *ui.ToggleRegistry {
	return a.toggles
}
