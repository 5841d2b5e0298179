package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const scenarioYAML = `
name: melt-and-boil
description: neon from solid to gas
steps:
  - name: solid
    config:
      ticks: 20
  - preset: melt
    metrics: [peak_pressure_atm]
    config:
      species: neon
      ticks: 15
  - config:
      species: water
      phase: gas
      ticks: 10
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "melt-and-boil" || len(s.Steps) != 3 {
		t.Fatalf("unexpected scenario %+v", s)
	}

	tests := []struct {
		name    string
		species string
		phase   string
		ticks   int
	}{
		{"solid", "neon", "solid", 20},
		{"step2", "neon", "solid", 15},
		{"step3", "water", "gas", 10},
	}
	for i, tt := range tests {
		step := s.Steps[i]
		if step.Name != tt.name || step.Config.Species != tt.species || step.Config.Phase != tt.phase || step.Config.Ticks != tt.ticks {
			t.Errorf("step %d: got %s %+v", i+1, step.Name, step.Config)
		}
	}

	// The preset's heating survives the partial override.
	if s.Steps[1].Config.Heating == 0 {
		t.Error("preset values lost")
	}
	if s.Steps[0].Config.Dt == 0 {
		t.Error("defaults not applied")
	}
}

func TestParseScenarioUnknownPreset(t *testing.T) {
	_, err := ParseScenario([]byte("steps:\n  - preset: nope\n"))
	if err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Result.TicksTaken != 20 || results[2].Result.TicksTaken != 10 {
		t.Errorf("unexpected tick counts")
	}
	if _, ok := results[1].Result.Metrics["peak_pressure_atm"]; !ok || len(results[1].Result.Metrics) != 1 {
		t.Errorf("expected only the requested metric, got %v", results[1].Result.Metrics)
	}
}
