package optim

import (
	"context"
	"testing"

	"github.com/san-kum/statesim/internal/config"
	"github.com/san-kum/statesim/internal/experiment"
	"github.com/san-kum/statesim/internal/sim"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		wantErr bool
	}{
		{"single", []string{"temperature=0.2,0.4"}, false},
		{"two", []string{"temperature=0.2", "gravity=0, 0.1"}, false},
		{"collision", []string{"collision_probability=0.005,0.05"}, false},
		{"no equals", []string{"temperature"}, true},
		{"unknown", []string{"entropy=1"}, true},
		{"bad value", []string{"gravity=heavy"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGrid(tt.specs)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	g, _ := ParseGrid([]string{"temperature=0.2", "gravity=0, 0.1"})
	if len(g.ranges) != 2 || g.ranges[1][1] != 0.1 {
		t.Errorf("unexpected grid %+v", g)
	}
}

func TestSearchPicksMinimum(t *testing.T) {
	g := NewGridSearch([]string{"temperature"}, [][]float64{{0.2, 0.6, 1.0}})

	var seen []float64
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		seen = append(seen, params["temperature"])
		cfg := config.DefaultConfig()
		cfg.Ticks = 5
		cfg.Temperature = params["temperature"]
		exp, err := experiment.New(cfg, nil)
		if err != nil {
			return nil, err
		}
		m, _ := experiment.NewRegistry().GetMetric("mean_temperature_k")
		return exp, exp.Setup(nil, []sim.Metric{m})
	}

	params, best, err := g.Search(context.Background(), build, "mean_temperature_k")
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 grid points, ran %d", len(seen))
	}
	if params["temperature"] != 0.2 {
		t.Errorf("coldest run should have the lowest mean temperature, got %v (%v)", params, best)
	}
}

func TestConfigBuilder(t *testing.T) {
	base := config.DefaultConfig()
	base.Ticks = 5
	build := ConfigBuilder(base, "peak_pressure_atm", nil)

	exp, err := build(map[string]float64{"gravity": 0.1, "injections": 2})
	if err != nil {
		t.Fatal(err)
	}
	m := exp.GetSimulator().Model()
	if m.GravitationalAcceleration() != 0.1 {
		t.Errorf("gravity not applied: %v", m.GravitationalAcceleration())
	}
	if base.Gravity != config.DefaultGravity {
		t.Error("base config modified")
	}

	if _, err := build(map[string]float64{"entropy": 1}); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if _, err := ConfigBuilder(base, "nope", nil)(nil); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestSearchNoResults(t *testing.T) {
	g := NewGridSearch([]string{"temperature"}, [][]float64{{0.2}})
	_, _, err := g.Search(context.Background(), ConfigBuilder(config.DefaultConfig(), "nope", nil), "nope")
	if err == nil {
		t.Error("expected error when no point ran")
	}
}
