package physics

import (
	"math"

	"github.com/san-kum/statesim/internal/atoms"
	"gonum.org/v1/gonum/spatial/r2"
)

// Geometry is the rigid shape of one molecule in normalized units, where a
// distance of 1 is the diameter of the molecule's reference atom.
type Geometry struct {
	AtomsPerMolecule int

	// Offsets are atom positions relative to the center of mass at a
	// rotation angle of zero.
	Offsets  []r2.Vec
	Masses   []float64
	Sigmas   []float64
	Epsilons []float64

	Mass    float64
	Inertia float64

	// MinInterParticleDistance is the closest two molecule centers may be
	// placed when laying out a phase.
	MinInterParticleDistance float64
}

const (
	// DiatomicBondLength is the separation of the two atoms of a diatomic molecule.
	DiatomicBondLength = 0.9

	waterBondLength      = 0.4
	waterBondAngle       = 104.5 * math.Pi / 180
	waterHydrogenMass    = 0.25
	waterHydrogenEpsilon = 0.25

	monatomicMinDistance  = 1.12
	polyatomicMinDistance = 1.5
)

// MonatomicGeometry describes a single unit-mass atom.
func MonatomicGeometry() Geometry {
	return Geometry{
		AtomsPerMolecule:         1,
		Offsets:                  []r2.Vec{{}},
		Masses:                   []float64{1},
		Sigmas:                   []float64{1},
		Epsilons:                 []float64{1},
		Mass:                     1,
		Inertia:                  0,
		MinInterParticleDistance: monatomicMinDistance,
	}
}

// DiatomicGeometry describes two identical atoms joined by a rigid bond.
func DiatomicGeometry() Geometry {
	half := DiatomicBondLength / 2
	return Geometry{
		AtomsPerMolecule:         2,
		Offsets:                  []r2.Vec{{X: -half}, {X: half}},
		Masses:                   []float64{1, 1},
		Sigmas:                   []float64{1, 1},
		Epsilons:                 []float64{1, 1},
		Mass:                     2,
		Inertia:                  2 * half * half,
		MinInterParticleDistance: polyatomicMinDistance,
	}
}

// WaterGeometry describes a bent oxygen-hydrogen-hydrogen molecule. The
// oxygen atom is always first.
func WaterGeometry() Geometry {
	a := waterBondAngle / 2
	raw := []r2.Vec{
		{},
		{X: waterBondLength * math.Cos(a), Y: waterBondLength * math.Sin(a)},
		{X: waterBondLength * math.Cos(a), Y: -waterBondLength * math.Sin(a)},
	}
	masses := []float64{1, waterHydrogenMass, waterHydrogenMass}
	hSigma := atoms.Hydrogen.Radius / atoms.WaterOxygen.Radius

	g := Geometry{
		AtomsPerMolecule:         3,
		Masses:                   masses,
		Sigmas:                   []float64{1, hSigma, hSigma},
		Epsilons:                 []float64{1, waterHydrogenEpsilon, waterHydrogenEpsilon},
		MinInterParticleDistance: polyatomicMinDistance,
	}
	g.Offsets, g.Mass, g.Inertia = centerOfMassFrame(raw, masses)
	return g
}

// GeometryFor returns the geometry used for molecules of the given
// atomicity.
func GeometryFor(atomsPerMolecule int) (Geometry, bool) {
	switch atomsPerMolecule {
	case 1:
		return MonatomicGeometry(), true
	case 2:
		return DiatomicGeometry(), true
	case 3:
		return WaterGeometry(), true
	}
	return Geometry{}, false
}

// Extent returns the largest distance of any atom from the center of mass.
func (g Geometry) Extent() float64 {
	max := 0.0
	for _, o := range g.Offsets {
		if n := r2.Norm(o); n > max {
			max = n
		}
	}
	return max
}

func centerOfMassFrame(points []r2.Vec, masses []float64) ([]r2.Vec, float64, float64) {
	var com r2.Vec
	total := 0.0
	for i, p := range points {
		com = r2.Add(com, r2.Scale(masses[i], p))
		total += masses[i]
	}
	com = r2.Scale(1/total, com)

	offsets := make([]r2.Vec, len(points))
	inertia := 0.0
	for i, p := range points {
		offsets[i] = r2.Sub(p, com)
		inertia += masses[i] * r2.Norm2(offsets[i])
	}
	return offsets, total, inertia
}
