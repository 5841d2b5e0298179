package sim

import (
	"github.com/san-kum/statesim/internal/control"
	"github.com/san-kum/statesim/internal/dynamo"
)

func (m *Model) Species() dynamo.Species               { return m.species }
func (m *Model) ThermostatMode() dynamo.ThermostatMode { return m.thermostatMode }
func (m *Model) TemperatureSetPoint() float64          { return m.temperatureSetPoint }
func (m *Model) HeatingCoolingAmount() float64         { return m.heatingCoolingAmount }
func (m *Model) GravitationalAcceleration() float64    { return m.gravity }
func (m *Model) IsExploded() bool                      { return m.exploded }
func (m *Model) Tick() int                             { return m.tick }
func (m *Model) LastDt() float64                       { return m.lastDt }
func (m *Model) NumberOfMolecules() int                { return m.data.NumberOfMolecules() }
func (m *Model) NumberOfRemainingSlots() int           { return m.data.NumberOfRemainingSlots() }
func (m *Model) ContainerHeight() float64              { return m.containerHeight }
func (m *Model) TargetContainerHeight() float64        { return m.targetContainerHeight }
func (m *Model) CollisionProbability() float64         { return m.collisionProbability }

// MinModelTemperature is the lowest set-point heating and cooling can
// reach for the current species.
func (m *Model) MinModelTemperature() float64 { return m.params.minModelTemperature() }

// Temperature is the measured model temperature of the last sub-step.
func (m *Model) Temperature() float64 { return m.calculator.Temperature }

func (m *Model) TemperatureInKelvin() float64 {
	return m.params.toKelvin(m.temperatureSetPoint)
}

func (m *Model) ModelPressure() float64 { return m.calculator.Pressure }

func (m *Model) PressureInAtmospheres() float64 {
	return m.params.toAtmospheres(m.ModelPressure())
}

// Sigma is the molecule diameter in picometers.
func (m *Model) Sigma() float64 { return m.params.sigma() }

// Epsilon is the Lennard-Jones well depth in Kelvin.
func (m *Model) Epsilon() float64 {
	if m.species == dynamo.UserDefined {
		return m.userEpsilon
	}
	return m.params.atom.Epsilon
}

func (m *Model) ParticleContainerRect() Rect {
	return Rect{Width: ContainerWidth, Height: m.containerHeight}
}

// ActiveThermostat names the thermostat applied in the last sub-step.
func (m *Model) ActiveThermostat() dynamo.ThermostatMode {
	switch m.active.(type) {
	case *control.Isokinetic:
		return dynamo.Isokinetic
	case *control.Andersen:
		return dynamo.Andersen
	}
	return dynamo.NoThermostat
}

// Snapshot copies the state collaborators may read. It allocates; callers
// that poll every tick should keep the returned slice.
func (m *Model) Snapshot() Snapshot {
	sigma := m.Sigma()
	apm := m.geom.AtomsPerMolecule
	views := make([]AtomView, len(m.display))
	for i, p := range m.display {
		views[i] = AtomView{Position: p, Radius: sigma * m.geom.Sigmas[i%apm] / 2}
	}
	return Snapshot{
		Tick:                m.tick,
		Species:             m.species,
		Container:           m.ParticleContainerRect(),
		Atoms:               views,
		Molecules:           m.data.NumberOfMolecules(),
		Safe:                m.data.NumberOfSafeMolecules(),
		TemperatureSetPoint: m.temperatureSetPoint,
		Temperature:         m.calculator.Temperature,
		TemperatureKelvin:   m.TemperatureInKelvin(),
		Pressure:            m.ModelPressure(),
		PressureAtm:         m.PressureInAtmospheres(),
		KineticEnergy:       m.data.KineticEnergy(),
		PotentialEnergy:     m.calculator.PotentialEnergy,
		Exploded:            m.exploded,
	}
}
