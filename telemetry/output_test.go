package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/wetfx/config"
	"github.com/pthm-cable/wetfx/effect"
)

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Every method is a no-op on a nil manager.
	if err := om.WriteTelemetry(WindowStats{}); err != nil {
		t.Errorf("WriteTelemetry on nil = %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("WritePerf on nil = %v", err)
	}
	if err := om.WriteSchedule(); err != nil {
		t.Errorf("WriteSchedule on nil = %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() on nil = %q", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil = %v", err)
	}
}

func TestWriteTelemetryHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}

	for end := int64(120); end <= 360; end += 120 {
		if err := om.WriteTelemetry(WindowStats{WindowEndFrame: end, Frames: 120}); err != nil {
			t.Fatalf("WriteTelemetry() error = %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("telemetry.csv has %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,frames,") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Count(string(data), "window_end") != 1 {
		t.Error("header written more than once")
	}
}

func TestScheduleRecords(t *testing.T) {
	cfg := config.Defaults()
	gc := cfg.Effects.Wetness
	gc.Enabled = true
	g, err := effect.Build(gc, cfg.Derived.Library)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	records := ScheduleRecords(g)
	var got []string
	for _, r := range records {
		got = append(got, r.Key)
	}
	want := []string{"primary", "rainfall", "rainsplash", "refract"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("keys = %v, want %v", got, want)
	}

	first := records[0]
	if first.Phase != "before_opaque" || first.Slot != 0 || first.Output != "#matres" {
		t.Errorf("primary record = %+v", first)
	}
	last := records[3]
	if last.Slot != 2 || !strings.HasSuffix(last.Inputs, effect.Backbuffer) {
		t.Errorf("refract record = %+v", last)
	}
}
