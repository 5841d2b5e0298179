package sim

import (
	"github.com/san-kum/statesim/internal/atoms"
	"github.com/san-kum/statesim/internal/dynamo"
)

// Model temperature anchors for the triple and critical points, by
// molecule shape.
const (
	tripleModelMonatomic   = 0.26
	criticalModelMonatomic = 0.8
	tripleModelDiatomic    = 0.375
	criticalModelDiatomic  = 1.25
	tripleModelTriatomic   = 0.35
	criticalModelTriatomic = 1.2

	// minimumKelvin is the real temperature mapped onto a species' lowest
	// model temperature.
	minimumKelvin = 0.5
)

// speciesParams holds everything that changes when the molecule type is
// switched.
type speciesParams struct {
	atom atoms.Record

	tripleKelvin   float64
	criticalKelvin float64
	tripleModel    float64
	criticalModel  float64

	// atmospheres per unit of model pressure
	pressureScale float64
}

func paramsFor(s dynamo.Species) (speciesParams, bool) {
	switch s {
	case dynamo.Neon:
		return speciesParams{atoms.Neon, 23, 44, tripleModelMonatomic, criticalModelMonatomic, 200}, true
	case dynamo.Argon:
		return speciesParams{atoms.Argon, 75, 151, tripleModelMonatomic, criticalModelMonatomic, 125}, true
	case dynamo.DiatomicOxygen:
		return speciesParams{atoms.Oxygen, 54, 155, tripleModelDiatomic, criticalModelDiatomic, 125}, true
	case dynamo.Water:
		return speciesParams{atoms.WaterOxygen, 273, 647, tripleModelTriatomic, criticalModelTriatomic, 200}, true
	case dynamo.UserDefined:
		return speciesParams{atoms.Configurable, 23, 44, tripleModelMonatomic, criticalModelMonatomic, 200}, true
	}
	return speciesParams{}, false
}

// sigma is the length unit of the normalized coordinates, in picometers.
func (p speciesParams) sigma() float64 { return p.atom.Diameter() }

func (p speciesParams) minModelTemperature() float64 {
	return minimumKelvin * p.tripleModel / p.tripleKelvin
}

// toKelvin maps a model temperature onto Kelvin piecewise linearly through
// the triple and critical points.
func (p speciesParams) toKelvin(t float64) float64 {
	switch {
	case t < p.minModelTemperature():
		return 0
	case t < p.tripleModel:
		return t * p.tripleKelvin / p.tripleModel
	case t < p.criticalModel:
		slope := (p.criticalKelvin - p.tripleKelvin) / (p.criticalModel - p.tripleModel)
		return p.tripleKelvin + (t-p.tripleModel)*slope
	default:
		return t * p.criticalKelvin / p.criticalModel
	}
}

func (p speciesParams) toAtmospheres(pressure float64) float64 {
	return pressure * p.pressureScale
}
