package integrators

import (
	"math"

	"github.com/san-kum/statesim/internal/moldata"
	"github.com/san-kum/statesim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// TimeStep is the fixed integration step in model time units.
	TimeStep = 0.02

	// SafeInterMoleculeDistance is how far an injected molecule must be
	// from every safe molecule before it joins the pair interactions.
	SafeInterMoleculeDistance = 2.0

	// PressureCalcWeighting is the weight of the previous pressure in the
	// moving average.
	PressureCalcWeighting = 0.999

	// ExplosionPressure is the model pressure at which the container bursts.
	ExplosionPressure = 1.05
)

// Kind selects the molecule atomicity a Verlet calculator integrates.
type Kind int

const (
	Monatomic Kind = iota + 1
	Diatomic
	Triatomic
)

func (k Kind) String() string {
	switch k {
	case Monatomic:
		return "monatomic"
	case Diatomic:
		return "diatomic"
	case Triatomic:
		return "triatomic"
	}
	return "unknown"
}

// KindFor maps an atom count to a calculator kind.
func KindFor(atomsPerMolecule int) (Kind, bool) {
	switch atomsPerMolecule {
	case 1:
		return Monatomic, true
	case 2:
		return Diatomic, true
	case 3:
		return Triatomic, true
	}
	return 0, false
}

// Container is the read-only view of the particle container the calculator
// needs, plus the one transition it may trigger.
type Container interface {
	NormalizedWidth() float64
	NormalizedHeight() float64
	IsExploded() bool
	GravitationalAcceleration() float64
	Explode()
}

// Verlet advances a molecule data set with velocity-Verlet integration of
// Lennard-Jones pair forces, container walls and gravity.
type Verlet struct {
	kind      Kind
	data      *moldata.DataSet
	geom      physics.Geometry
	updater   *physics.PositionUpdater
	container Container
	epsilon   float64

	PotentialEnergy float64
	Pressure        float64
	Temperature     float64

	interactionDist2 float64
}

// NewVerlet creates a calculator for the data set. The geometry must match
// the data set's atomicity.
func NewVerlet(data *moldata.DataSet, geom physics.Geometry, container Container) *Verlet {
	kind, _ := KindFor(data.AtomsPerMolecule)

	// pairs are screened on center distance, so widen the cutoff by the
	// molecule extent on both sides
	reach := 2.5 + 2*geom.Extent()

	return &Verlet{
		kind:             kind,
		data:             data,
		geom:             geom,
		updater:          physics.NewPositionUpdater(geom),
		container:        container,
		epsilon:          1,
		interactionDist2: reach * reach,
	}
}

func (v *Verlet) Kind() Kind { return v.kind }

// SetScaledEpsilon scales the strength of every pair interaction.
func (v *Verlet) SetScaledEpsilon(epsilon float64) {
	if epsilon > 0 {
		v.epsilon = epsilon
	}
}

func (v *Verlet) ScaledEpsilon() float64 { return v.epsilon }

// UpdateForcesAndMotion runs one integration sub-step.
func (v *Verlet) UpdateForcesAndMotion() {
	v.UpdateMoleculeSafety()

	d := v.data
	n := d.NumberOfMolecules()
	dt := TimeStep
	halfDt2 := 0.5 * dt * dt
	massInv := 1 / d.MoleculeMass

	rotating := v.kind != Monatomic
	inertiaInv := 0.0
	if rotating {
		inertiaInv = 1 / d.MoleculeRotationalInertia
	}

	for i := 0; i < n; i++ {
		step := r2.Add(r2.Scale(dt, d.Velocities[i]), r2.Scale(halfDt2*massInv, d.Forces[i]))
		d.COMPositions[i] = r2.Add(d.COMPositions[i], step)
		if rotating {
			d.RotationAngles[i] += d.RotationRates[i]*dt + halfDt2*d.Torques[i]*inertiaInv
		}
	}
	v.updater.UpdateAtomPositions(d)

	wallForceSum := v.calculateNextForces()

	halfDt := 0.5 * dt
	for i := 0; i < n; i++ {
		acc := r2.Scale(massInv, r2.Add(d.Forces[i], d.NextForces[i]))
		d.Velocities[i] = r2.Add(d.Velocities[i], r2.Scale(halfDt, acc))
		d.Forces[i] = d.NextForces[i]
		if rotating {
			d.RotationRates[i] += halfDt * (d.Torques[i] + d.NextTorques[i]) * inertiaInv
			d.Torques[i] = d.NextTorques[i]
		}
	}

	v.Temperature = d.CalculateTemperatureFromKineticEnergy()
	v.updatePressure(wallForceSum)
}

// calculateNextForces fills NextForces/NextTorques and returns the summed
// outward force the walls had to push back against.
func (v *Verlet) calculateNextForces() float64 {
	d := v.data
	n := d.NumberOfMolecules()
	gravity := r2.Vec{Y: -v.container.GravitationalAcceleration() * d.MoleculeMass}
	width := v.container.NormalizedWidth()
	height := v.container.NormalizedHeight()

	v.PotentialEnergy = 0
	wallForceSum := 0.0

	for i := 0; i < n; i++ {
		res := physics.WallForce(d.COMPositions[i], width, height, v.container.IsExploded())
		if res.BelowFloor && !v.container.IsExploded() {
			v.container.Explode()
		}
		d.NextForces[i] = r2.Add(gravity, res.Force)
		d.NextTorques[i] = 0
		v.PotentialEnergy += res.PotentialEnergy

		// the floor only carries the weight of the particles, so it is
		// left out of the pressure
		wallForceSum += math.Abs(res.Force.X)
		if res.Force.Y < 0 {
			wallForceSum -= res.Force.Y
		}
	}

	switch v.kind {
	case Monatomic:
		v.monatomicPairForces()
	case Diatomic, Triatomic:
		v.polyatomicPairForces()
	}

	return wallForceSum
}

func (v *Verlet) monatomicPairForces() {
	d := v.data
	safe := d.NumberOfSafeMolecules()
	for i := 0; i < safe; i++ {
		pi := d.COMPositions[i]
		for j := i + 1; j < safe; j++ {
			f, pe := physics.PairForce(r2.Sub(pi, d.COMPositions[j]), 1, v.epsilon)
			if pe == 0 && f == (r2.Vec{}) {
				continue
			}
			d.NextForces[i] = r2.Add(d.NextForces[i], f)
			d.NextForces[j] = r2.Sub(d.NextForces[j], f)
			v.PotentialEnergy += pe
		}
	}
}

func (v *Verlet) polyatomicPairForces() {
	d := v.data
	apm := d.AtomsPerMolecule
	safe := d.NumberOfSafeMolecules()
	g := v.geom

	for i := 0; i < safe; i++ {
		ci := d.COMPositions[i]
		for j := i + 1; j < safe; j++ {
			cj := d.COMPositions[j]
			if r2.Norm2(r2.Sub(ci, cj)) >= v.interactionDist2 {
				continue
			}
			for a := 0; a < apm; a++ {
				pa := d.AtomPositions[i*apm+a]
				for b := 0; b < apm; b++ {
					pb := d.AtomPositions[j*apm+b]
					sigma := physics.MixSigma(g.Sigmas[a], g.Sigmas[b])
					eps := v.epsilon * physics.MixEpsilon(g.Epsilons[a], g.Epsilons[b])
					f, pe := physics.PairForce(r2.Sub(pa, pb), sigma, eps)
					if pe == 0 && f == (r2.Vec{}) {
						continue
					}
					d.NextForces[i] = r2.Add(d.NextForces[i], f)
					d.NextForces[j] = r2.Sub(d.NextForces[j], f)
					d.NextTorques[i] += r2.Cross(r2.Sub(pa, ci), f)
					d.NextTorques[j] -= r2.Cross(r2.Sub(pb, cj), f)
					v.PotentialEnergy += pe
				}
			}
		}
	}
}

// UpdateMoleculeSafety promotes unsafe molecules that are far enough from
// every safe molecule by swapping them to the end of the safe prefix. It
// is a single pass; anything still too close is retried next sub-step.
func (v *Verlet) UpdateMoleculeSafety() {
	d := v.data
	n := d.NumberOfMolecules()
	safe := d.NumberOfSafeMolecules()
	if safe == n {
		return
	}

	minDist2 := SafeInterMoleculeDistance * SafeInterMoleculeDistance
	for i := safe; i < n; i++ {
		ok := true
		for j := 0; j < safe; j++ {
			if r2.Norm2(r2.Sub(d.COMPositions[i], d.COMPositions[j])) < minDist2 {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		d.SwapMolecules(i, safe)
		safe++
		d.SetNumberOfSafeMolecules(safe)
	}
}

// updatePressure folds this sub-step's wall force into the moving average.
func (v *Verlet) updatePressure(wallForceSum float64) {
	if v.container.IsExploded() {
		v.Pressure = 0
		return
	}

	perimeter := v.container.NormalizedWidth() + v.container.NormalizedHeight()
	v.Pressure = (1-PressureCalcWeighting)*(wallForceSum/perimeter) + PressureCalcWeighting*v.Pressure

	if v.Pressure > ExplosionPressure {
		v.container.Explode()
		v.Pressure = 0
	}
}

// ResetPressure clears the moving average.
func (v *Verlet) ResetPressure() { v.Pressure = 0 }
