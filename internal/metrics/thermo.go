package metrics

import (
	"math"

	"github.com/san-kum/statesim/internal/sim"
	"gonum.org/v1/gonum/stat"
)

// MeanTemperature averages the set-point in Kelvin.
type MeanTemperature struct {
	values []float64
}

func NewMeanTemperature() *MeanTemperature { return &MeanTemperature{} }

func (m *MeanTemperature) Name() string { return "mean_temperature_k" }

func (m *MeanTemperature) Observe(s sim.Snapshot) {
	m.values = append(m.values, s.TemperatureKelvin)
}

func (m *MeanTemperature) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return stat.Mean(m.values, nil)
}

func (m *MeanTemperature) Reset() { m.values = m.values[:0] }

// PeakPressure is the largest pressure in atmospheres.
type PeakPressure struct {
	peak float64
}

func NewPeakPressure() *PeakPressure { return &PeakPressure{} }

func (p *PeakPressure) Name() string { return "peak_pressure_atm" }

func (p *PeakPressure) Observe(s sim.Snapshot) {
	p.peak = math.Max(p.peak, s.PressureAtm)
}

func (p *PeakPressure) Value() float64 { return p.peak }

func (p *PeakPressure) Reset() { p.peak = 0 }

// MeanPotentialEnergy averages the potential energy per molecule.
type MeanPotentialEnergy struct {
	values []float64
}

func NewMeanPotentialEnergy() *MeanPotentialEnergy { return &MeanPotentialEnergy{} }

func (m *MeanPotentialEnergy) Name() string { return "mean_potential_energy" }

func (m *MeanPotentialEnergy) Observe(s sim.Snapshot) {
	if s.Molecules == 0 {
		return
	}
	m.values = append(m.values, s.PotentialEnergy/float64(s.Molecules))
}

func (m *MeanPotentialEnergy) Value() float64 {
	if len(m.values) == 0 {
		return 0
	}
	return stat.Mean(m.values, nil)
}

func (m *MeanPotentialEnergy) Reset() { m.values = m.values[:0] }

// TrackingError is the RMS difference between the measured temperature
// and the set-point, in model units.
type TrackingError struct {
	sum     float64
	samples int
}

func NewTrackingError() *TrackingError { return &TrackingError{} }

func (t *TrackingError) Name() string { return "tracking_error" }

func (t *TrackingError) Observe(s sim.Snapshot) {
	d := s.Temperature - s.TemperatureSetPoint
	t.sum += d * d
	t.samples++
}

func (t *TrackingError) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return math.Sqrt(t.sum / float64(t.samples))
}

func (t *TrackingError) Reset() {
	t.sum = 0
	t.samples = 0
}

// Standard returns one of each metric reported by a run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewMeanTemperature(),
		NewPeakPressure(),
		NewExplosionTick(),
		NewMeanPotentialEnergy(),
		NewTrackingError(),
		NewEnergy(),
		NewStability(DefaultStabilityThreshold),
	}
}

// DefaultStabilityThreshold is the pressure, in atmospheres, above which a
// tick counts as unstable.
const DefaultStabilityThreshold = 150.0
