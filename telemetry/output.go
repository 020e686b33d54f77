package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/wetfx/config"
	"github.com/pthm-cable/wetfx/effect"
)

// ScheduleRecord is one row of schedule.csv: a pass in its execution slot.
type ScheduleRecord struct {
	Phase    string `csv:"phase"`
	Slot     int    `csv:"slot"`
	Graph    string `csv:"graph"`
	Pass     string `csv:"pass"`
	Key      string `csv:"key"`
	Shader   string `csv:"shader"`
	Priority int    `csv:"priority"`
	Inputs   string `csv:"inputs"`
	Output   string `csv:"output"`
}

// ScheduleRecords flattens the current execution order of graphs into CSV rows.
func ScheduleRecords(graphs ...*effect.Graph) []ScheduleRecord {
	var out []ScheduleRecord
	for _, phase := range effect.Phases {
		for i, p := range effect.SchedulePhase(phase, graphs...) {
			inputs := make([]string, 0, p.NumInputs())
			for _, in := range p.Inputs() {
				inputs = append(inputs, in.String())
			}
			graph := ""
			if p.Graph() != nil {
				graph = p.Graph().Name()
			}
			out = append(out, ScheduleRecord{
				Phase:    phase.String(),
				Slot:     i,
				Graph:    graph,
				Pass:     p.Name(),
				Key:      p.Key().String(),
				Shader:   p.Shader(),
				Priority: p.Priority(),
				Inputs:   strings.Join(inputs, " "),
				Output:   p.Output().String(),
			})
		}
	}
	return out
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	perfFile      *os.File

	// Track if headers have been written
	telemetryHeaderWritten bool
	perfHeaderWritten      bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteSchedule saves the resolved pass order to schedule.csv.
func (om *OutputManager) WriteSchedule(graphs ...*effect.Graph) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "schedule.csv"))
	if err != nil {
		return fmt.Errorf("creating schedule.csv: %w", err)
	}
	defer f.Close()

	records := ScheduleRecords(graphs...)
	if len(records) == 0 {
		return nil
	}
	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return nil
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.telemetryHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int64) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(windowEnd)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.telemetryFile != nil {
		if err := om.telemetryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.perfFile != nil {
		if err := om.perfFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
