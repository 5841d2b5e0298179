package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/statesim/internal/metrics"
	"github.com/san-kum/statesim/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["mean_temperature_k"] = func() sim.Metric { return metrics.NewMeanTemperature() }
	r.metrics["peak_pressure_atm"] = func() sim.Metric { return metrics.NewPeakPressure() }
	r.metrics["explosion_tick"] = func() sim.Metric { return metrics.NewExplosionTick() }
	r.metrics["mean_potential_energy"] = func() sim.Metric { return metrics.NewMeanPotentialEnergy() }
	r.metrics["tracking_error"] = func() sim.Metric { return metrics.NewTrackingError() }
	r.metrics["energy"] = func() sim.Metric { return metrics.NewEnergy() }
	r.metrics["energy_drift"] = func() sim.Metric { return metrics.NewEnergyDrift() }
	r.metrics["stability"] = func() sim.Metric { return metrics.NewStability(metrics.DefaultStabilityThreshold) }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Metrics builds the named metrics, or the standard set when names is
// empty.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		return metrics.Standard(), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
