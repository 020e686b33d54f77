package app

import "log/slog"

// flushTelemetry flushes the stats window once it is full.
func (a *App) flushTelemetry() {
	if !a.collector.ShouldFlush(a.frame) {
		return
	}

	stats := a.collector.Flush(a.frame)
	perfStats := a.perfCollector.Stats()

	if a.statsCallback != nil {
		a.statsCallback(stats)
	}

	if a.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := a.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := a.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
