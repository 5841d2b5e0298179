package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/statesim/internal/control"
	"github.com/san-kum/statesim/internal/dynamo"
)

// Step advances the model by one tick of SubStepsPerTick integration
// sub-steps. dt is the caller's frame time. It is validated and recorded,
// but the physics always uses the fixed integration step so runs are
// reproducible.
func (m *Model) Step(dt float64) error {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, dt)
	}
	m.lastDt = dt

	lidMoving := m.updateContainerHeight()
	pressure := m.calculator.Pressure

	for i := 0; i < SubStepsPerTick; i++ {
		m.calculator.UpdateForcesAndMotion()
		m.runThermostat(lidMoving)

		m.subSteps++
		if m.heatingCoolingAmount != 0 && m.subSteps%StepsPerTemperatureAdjustment == 0 {
			m.adjustTemperature()
		}
	}

	m.syncDisplayPositions()
	m.tick++

	if m.calculator.Pressure != pressure {
		m.notifier.PressureChanged(m.PressureInAtmospheres())
	}
	return nil
}

// runThermostat applies at most one thermostat for the sub-step. While
// the lid is moving against nearby molecules the set-point follows the
// measured temperature instead, so the lid does work on the system.
func (m *Model) runThermostat(lidMoving bool) {
	measured := m.calculator.Temperature

	if lidMoving && m.moleculeNearLid() {
		m.active = m.none
		m.setTemperatureSetPoint(math.Max(MinTemperature, math.Min(MaxTemperature, measured)))
		return
	}

	m.active = m.selectThermostat(measured)
	m.active.Adjust(m.temperatureSetPoint)
}

func (m *Model) selectThermostat(measured float64) control.Thermostat {
	if m.exploded {
		return m.none
	}
	switch m.thermostatMode {
	case dynamo.Isokinetic:
		return m.isokinetic
	case dynamo.Andersen:
		return m.andersen
	case dynamo.Adaptive:
		if math.Abs(m.temperatureSetPoint-measured) > TemperatureCloseRange || m.temperatureSetPoint > LiquidTemperature {
			return m.isokinetic
		}
		return m.andersen
	}
	return m.none
}

// adjustTemperature nudges the set-point for a pending heating or cooling
// command. Cooling slows to a fixed fraction of the set-point near zero.
func (m *Model) adjustTemperature() {
	t := m.temperatureSetPoint
	var delta float64
	if m.heatingCoolingAmount < 0 && t < LowTemperatureCoolingThreshold {
		delta = -lowTemperatureCoolingFraction * t
	} else {
		delta = m.heatingCoolingAmount * MaxTemperatureChangePerAdjustment
	}

	next := math.Max(m.params.minModelTemperature(), math.Min(MaxTemperature, t+delta))
	m.setTemperatureSetPoint(next)
}
