package analysis

import (
	"fmt"
	"sort"

	"github.com/san-kum/statesim/internal/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var fields = map[string]func(sim.Sample) float64{
	"set_point":        func(s sim.Sample) float64 { return s.TemperatureSetPoint },
	"temperature":      func(s sim.Sample) float64 { return s.Temperature },
	"temperature_k":    func(s sim.Sample) float64 { return s.TemperatureKelvin },
	"pressure":         func(s sim.Sample) float64 { return s.Pressure },
	"pressure_atm":     func(s sim.Sample) float64 { return s.PressureAtm },
	"potential_energy": func(s sim.Sample) float64 { return s.PotentialEnergy },
	"kinetic_energy":   func(s sim.Sample) float64 { return s.KineticEnergy },
	"molecules":        func(s sim.Sample) float64 { return float64(s.Molecules) },
	"container_height": func(s sim.Sample) float64 { return s.ContainerHeight },
}

// Fields lists the names accepted by Series.
func Fields() []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series extracts one column of the samples.
func Series(samples []sim.Sample, field string) ([]float64, error) {
	get, ok := fields[field]
	if !ok {
		return nil, fmt.Errorf("unknown field %q", field)
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = get(s)
	}
	return out, nil
}

type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize returns the zero Summary for an empty trace.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{N: len(data), Min: floats.Min(data), Max: floats.Max(data)}
	if len(data) == 1 {
		s.Mean = data[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)
	return s
}
