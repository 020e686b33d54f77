package app

// Options configures an App beyond the loaded config.
type Options struct {
	Seed      int64  // RNG seed for the animator and scene
	LogStats  bool   // Log window and perf stats via slog
	OutputDir string // Directory for CSV output ("" = disabled)
	Headless  bool   // Run without a window; passes are recorded, not drawn
	Rain      bool   // Enable the wetness graph at startup
	Dry       bool   // Enable the dry graph at startup (disables wetness)
}
