package sim

import (
	"github.com/san-kum/statesim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rect is the particle container in picometers. The origin is the lower
// left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// AtomView is one atom as a renderer sees it.
type AtomView struct {
	Position r2.Vec
	Radius   float64
}

// Snapshot is a stable copy of the model state taken between ticks.
type Snapshot struct {
	Tick      int
	Species   dynamo.Species
	Container Rect
	Atoms     []AtomView

	Molecules int
	Safe      int

	TemperatureSetPoint float64
	Temperature         float64
	TemperatureKelvin   float64
	Pressure            float64
	PressureAtm         float64

	KineticEnergy   float64
	PotentialEnergy float64

	Exploded bool
}

// Notifier receives advisory state-change events. It must not call back
// into the model.
type Notifier interface {
	TemperatureChanged(setPoint float64)
	PressureChanged(atm float64)
	ContainerExploded()
	SpeciesChanged(species dynamo.Species)
}

type NopNotifier struct{}

func (NopNotifier) TemperatureChanged(float64)    {}
func (NopNotifier) PressureChanged(float64)       {}
func (NopNotifier) ContainerExploded()            {}
func (NopNotifier) SpeciesChanged(dynamo.Species) {}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

// Sample is the per-tick record kept by the simulator.
type Sample struct {
	Tick                int
	TemperatureSetPoint float64
	Temperature         float64
	TemperatureKelvin   float64
	Pressure            float64
	PressureAtm         float64
	PotentialEnergy     float64
	KineticEnergy       float64
	Molecules           int
	ContainerHeight     float64
	Exploded            bool
}

func SampleOf(s Snapshot) Sample {
	return Sample{
		Tick:                s.Tick,
		TemperatureSetPoint: s.TemperatureSetPoint,
		Temperature:         s.Temperature,
		TemperatureKelvin:   s.TemperatureKelvin,
		Pressure:            s.Pressure,
		PressureAtm:         s.PressureAtm,
		PotentialEnergy:     s.PotentialEnergy,
		KineticEnergy:       s.KineticEnergy,
		Molecules:           s.Molecules,
		ContainerHeight:     s.Container.Height,
		Exploded:            s.Exploded,
	}
}

type Config struct {
	Ticks int
	Dt    float64
	// StopOnExplosion ends the run at the first exploded tick.
	StopOnExplosion bool
}

type Result struct {
	Samples       []Sample
	Metrics       map[string]float64
	TicksTaken    int
	ExplosionTick int
	Exploded      bool
}
