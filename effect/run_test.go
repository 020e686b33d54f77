package effect

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/pthm-cable/wetfx/config"
)

func quietRunner(exec Executor, graphs ...*Graph) *Runner {
	r := NewRunner(exec, graphs...)
	r.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return r
}

func enabledWetness(t *testing.T) *Graph {
	t.Helper()
	gc, lib := wetness(t)
	gc.Enabled = true
	return mustBuild(t, gc, lib)
}

func passNames(passes []*Pass) []string {
	out := make([]string, len(passes))
	for i, p := range passes {
		out[i] = p.Name()
	}
	return out
}

func TestScheduleDefaultOrder(t *testing.T) {
	g := enabledWetness(t)

	got := passNames(Schedule(g))
	// Refraction samples the backbuffer, so it follows every pass writing it.
	want := []string{
		"wetness.primary",
		"wetness.rainfall",
		"wetness.rainsplash",
		"wetness.refract",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Schedule() = %v, want %v", got, want)
	}
}

func TestSchedulePriority(t *testing.T) {
	gc, lib := wetness(t)
	gc.Enabled = true
	gc.Subs[2].Priority = 10 // rainsplash ahead of rainfall
	g := mustBuild(t, gc, lib)

	got := passNames(SchedulePhase(PhaseFinalComposite, g))
	want := []string{"wetness.rainsplash", "wetness.rainfall", "wetness.refract"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SchedulePhase() = %v, want %v", got, want)
	}
}

func TestScheduleExplicitAfter(t *testing.T) {
	gc, lib := wetness(t)
	gc.Enabled = true
	gc.Subs[1].After = []string{"rainsplash"} // rainfall waits for rainsplash
	g := mustBuild(t, gc, lib)

	got := passNames(SchedulePhase(PhaseFinalComposite, g))
	want := []string{"wetness.rainsplash", "wetness.rainfall", "wetness.refract"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SchedulePhase() = %v, want %v", got, want)
	}
}

func TestScheduleSkipsDisabled(t *testing.T) {
	g := enabledWetness(t)
	rainfall, _ := g.Lookup(KeyRainfall)
	rainfall.SetEnabled(false)

	got := passNames(Schedule(g))
	want := []string{"wetness.primary", "wetness.rainsplash", "wetness.refract"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Schedule() = %v, want %v", got, want)
	}

	g.SetEnabled(false)
	if got := Schedule(g); len(got) != 0 {
		t.Errorf("Schedule(disabled) = %v, want none", passNames(got))
	}
}

func TestScheduleAcrossGraphs(t *testing.T) {
	cfg := config.Defaults()
	wet := enabledWetness(t)
	dry, err := BuildDry(cfg.Effects.Dry, cfg.Derived.Library)
	if err != nil {
		t.Fatalf("BuildDry() error = %v", err)
	}
	dry.SetEnabled(true)

	// Equal priority in before_opaque: argument order decides.
	got := passNames(SchedulePhase(PhaseBeforeOpaque, dry, wet))
	want := []string{"dry.primary", "wetness.primary"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SchedulePhase() = %v, want %v", got, want)
	}
}

func TestDisabledGraphDoesNoWork(t *testing.T) {
	gc, lib := wetness(t)
	g := mustBuild(t, gc, lib) // disabled by default
	rec := NewRecorder()

	stats := quietRunner(rec, g).Run()

	if stats != (FrameStats{}) {
		t.Errorf("Run() stats = %+v, want zero", stats)
	}
	if len(rec.Calls) != 0 || rec.Bindings != 0 {
		t.Errorf("recorder saw %d calls and %d bindings, want none", len(rec.Calls), rec.Bindings)
	}
}

func TestRunPhases(t *testing.T) {
	g := enabledWetness(t)
	rec := NewRecorder()
	r := quietRunner(rec, g)

	early := r.RunPhase(PhaseBeforeOpaque)
	if early.Executed != 1 || early.Bindings != 4 {
		t.Errorf("before_opaque stats = %+v, want 1 pass and 4 bindings", early)
	}
	if mid := r.RunPhase(PhaseAfterBin); mid != (FrameStats{}) {
		t.Errorf("after_bin stats = %+v, want zero", mid)
	}
	final := r.RunPhase(PhaseFinalComposite)
	if final.Executed != 3 || final.Bindings != 10 {
		t.Errorf("final_composite stats = %+v, want 3 passes and 10 bindings", final)
	}
	if rec.Bindings != 14 {
		t.Errorf("recorder bindings = %d, want 14", rec.Bindings)
	}
}

func TestFailedPassIsSkipped(t *testing.T) {
	g := enabledWetness(t)
	rec := NewRecorder()
	rec.Fail["wetness.rainfall"] = errors.New("texture textures/rainfall.png not found")
	r := quietRunner(rec, g)

	stats := r.Run()

	if stats.Executed != 3 || stats.Skipped != 1 {
		t.Errorf("Run() stats = %+v, want 3 executed and 1 skipped", stats)
	}
	want := []string{"wetness.primary", "wetness.rainsplash", "wetness.refract"}
	if got := rec.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("executed = %v, want %v", got, want)
	}

	// The pass comes back once the resource resolves.
	delete(rec.Fail, "wetness.rainfall")
	rec.Reset()
	if stats := r.Run(); stats.Executed != 4 || stats.Skipped != 0 {
		t.Errorf("second Run() stats = %+v, want 4 executed", stats)
	}
}

func TestRecorderCapturesConstants(t *testing.T) {
	g := enabledWetness(t)
	splash, _ := g.Lookup(KeyRainSplash)
	splash.SetConstant("splashIntensity", 0.7)
	rec := NewRecorder()

	quietRunner(rec, g).RunPhase(PhaseFinalComposite)

	for _, c := range rec.Calls {
		if c.Pass != "wetness.rainsplash" {
			continue
		}
		if len(c.Constants) != 1 || c.Constants[0].Value != 0.7 {
			t.Errorf("rainsplash constants = %v, want splashIntensity=0.7", c.Constants)
		}
		return
	}
	t.Error("rainsplash was not executed")
}
