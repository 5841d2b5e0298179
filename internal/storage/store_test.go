package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/statesim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Samples: []sim.Sample{
			{Tick: 0, TemperatureSetPoint: 0.15, Temperature: 0.14, TemperatureKelvin: 13.27, Pressure: 0, Molecules: 81, ContainerHeight: 10000},
			{Tick: 1, TemperatureSetPoint: 0.175, Temperature: 0.16, TemperatureKelvin: 15.48, Pressure: 0.002, PressureAtm: 0.4, PotentialEnergy: -150.5, KineticEnergy: 12.25, Molecules: 81, ContainerHeight: 9966.666667},
		},
		Metrics:       map[string]float64{"peak_pressure_atm": 0.4},
		TicksTaken:    1,
		ExplosionTick: -1,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Species: "neon", Phase: "solid", Thermostat: "adaptive", Seed: 42, Dt: 1.0 / 60}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if !strings.HasPrefix(runID, "neon_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Species != "neon" || meta.ID != runID {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Ticks != 1 || meta.ExplosionTick != -1 || meta.Exploded {
		t.Errorf("run outcome not recorded: %+v", meta)
	}
	if meta.Metrics["peak_pressure_atm"] != 0.4 {
		t.Errorf("expected peak pressure 0.4, got %f", meta.Metrics["peak_pressure_atm"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	want := testResult().Samples[1]
	if samples[1] != want {
		t.Errorf("sample mismatch:\n got %+v\nwant %+v", samples[1], want)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for _, species := range []string{"argon", "water"} {
		if _, err := st.Save(RunMetadata{Species: species}, testResult()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Species != "argon" {
		t.Errorf("runs not ordered by time: %s first", runs[0].Species)
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Species: "oxygen"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "samples.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestWriteSamplesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSamplesCSV(&buf, testResult().Samples); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tick,set_point,") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.HasSuffix(lines[2], ",false") {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestParseSampleRejectsShortRows(t *testing.T) {
	if _, ok := parseSample([]string{"1", "2"}); ok {
		t.Error("short row should not parse")
	}
}
