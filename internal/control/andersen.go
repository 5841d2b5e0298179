package control

import (
	"math"

	"github.com/san-kum/statesim/internal/moldata"
	"github.com/san-kum/statesim/internal/sampling"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultCollisionProbability is the chance that a molecule collides with
// the heat bath during one sub-step.
const DefaultCollisionProbability = 0.01

// CollisionProbabilityParam is the GetParams/SetParam key of the
// collision probability.
const CollisionProbabilityParam = "CollisionProbability"

type Andersen struct {
	CollisionProbability float64

	data *moldata.DataSet
	rng  *sampling.Sampler
}

func NewAndersen(data *moldata.DataSet, rng *sampling.Sampler) *Andersen {
	return &Andersen{
		CollisionProbability: DefaultCollisionProbability,
		data:                 data,
		rng:                  rng,
	}
}

// Adjust gives each molecule an independent chance of having its velocity
// and rotation rate redrawn from the Gaussian for the target temperature.
func (a *Andersen) Adjust(target float64) {
	if target < 0 {
		return
	}
	d := a.data
	vSigma := math.Sqrt(target / d.MoleculeMass)
	wSigma := 0.0
	if d.AtomsPerMolecule > 1 && d.MoleculeRotationalInertia > 0 {
		wSigma = math.Sqrt(target / d.MoleculeRotationalInertia)
	}

	for i := 0; i < d.NumberOfMolecules(); i++ {
		if !a.rng.Bernoulli(a.CollisionProbability) {
			continue
		}
		d.Velocities[i] = r2.Vec{X: vSigma * a.rng.Gaussian(), Y: vSigma * a.rng.Gaussian()}
		if d.AtomsPerMolecule > 1 {
			d.RotationRates[i] = wSigma * a.rng.Gaussian()
		}
	}
}

// GetParams returns tunable parameters for live adjustment
func (a *Andersen) GetParams() map[string]float64 {
	return map[string]float64{CollisionProbabilityParam: a.CollisionProbability}
}

// SetParam adjusts the collision probability, clamped to [0, 1].
func (a *Andersen) SetParam(name string, value float64) {
	if name == CollisionProbabilityParam && !math.IsNaN(value) {
		a.CollisionProbability = math.Max(0, math.Min(1, value))
	}
}
