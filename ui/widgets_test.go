package ui

import (
	"strings"
	"testing"
)

func TestBarFill(t *testing.T) {
	tests := []struct {
		name  string
		width int32
		value float32
		want  int32
	}{
		{"empty", 100, 0, 0},
		{"half", 100, 0.5, 50},
		{"full", 100, 1, 100},
		{"below range", 100, -0.3, 0},
		{"above range", 100, 1.7, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barFill(tt.width, tt.value); got != tt.want {
				t.Errorf("barFill(%d, %v) = %d, want %d", tt.width, tt.value, got, tt.want)
			}
		})
	}
}

func TestPatternCells(t *testing.T) {
	cells := patternCells(10, 20, 98, 12, 4)
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4", len(cells))
	}
	// (98 - 3 gaps of 2) / 4 = 23 wide, stepping 25.
	for i, c := range cells {
		if c.Width != 23 || c.Height != 12 || c.Y != 20 {
			t.Errorf("cell %d = %+v", i, c)
		}
		if want := float32(10 + i*25); c.X != want {
			t.Errorf("cell %d X = %v, want %v", i, c.X, want)
		}
	}
	if last := cells[3]; last.X+last.Width > 10+98 {
		t.Errorf("last cell ends at %v, past strip end %d", last.X+last.Width, 10+98)
	}

	if got := patternCells(0, 0, 100, 12, 0); got != nil {
		t.Errorf("patternCells with no patterns = %v, want nil", got)
	}
}

func TestStatusLine(t *testing.T) {
	line := statusLine(HUDData{Title: "Wetness FX", Frame: 42, FPS: 60, Props: 9, Executed: 4,
		Active: []ToggleID{ToggleWetness, ToggleRefract}})
	for _, want := range []string{"Wetness FX", "Frame 42", "60 FPS", "9 props", "wetness+refract (4 passes)"} {
		if !strings.Contains(line, want) {
			t.Errorf("statusLine() = %q, missing %q", line, want)
		}
	}

	if line := statusLine(HUDData{}); !strings.Contains(line, "off (0 passes)") {
		t.Errorf("statusLine() with nothing active = %q", line)
	}
}

func TestApplyCheckReportsChanges(t *testing.T) {
	wet, dry := buildGraphs(t)
	reg := NewToggleRegistry(wet, dry)

	if applyCheck(reg, ToggleWetness, false) {
		t.Error("unchanged check box reported a change")
	}
	if !applyCheck(reg, ToggleWetness, true) {
		t.Fatal("enabling wetness not reported")
	}
	if !wet.Enabled() {
		t.Error("wetness graph not enabled")
	}
	if !applyCheck(reg, ToggleDry, true) {
		t.Fatal("enabling dry not reported")
	}
	if wet.Enabled() {
		t.Error("dry check box left wetness enabled")
	}
}
