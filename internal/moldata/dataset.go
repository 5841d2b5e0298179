// Package moldata stores the mutable state of every molecule in the
// simulation. It carries no physics: positions, velocities, forces and
// rotation state live here and are advanced by the integrators.
//
// All slices are allocated once at full capacity. Only the first
// NumberOfMolecules() (or NumberOfAtoms()) entries are live.
package moldata

import "gonum.org/v1/gonum/spatial/r2"

// DataSet is the sole owner of per-molecule and per-atom state.
//
// Molecules [0, NumberOfSafeMolecules()) are safe and take part in pair
// interactions; the rest were injected recently and are waiting to be
// promoted by the integrator.
type DataSet struct {
	AtomsPerMolecule int

	AtomPositions []r2.Vec

	COMPositions []r2.Vec
	Velocities   []r2.Vec
	Forces       []r2.Vec
	NextForces   []r2.Vec

	RotationAngles []float64
	RotationRates  []float64
	Torques        []float64
	NextTorques    []float64

	MoleculeMass              float64
	MoleculeRotationalInertia float64

	maxAtoms      int
	numberOfAtoms int
	numberOfSafe  int
}

// New allocates a data set for molecules of the given atomicity. maxAtoms is
// rounded down to a multiple of atomsPerMolecule.
func New(atomsPerMolecule, maxAtoms int, moleculeMass, rotationalInertia float64) *DataSet {
	if atomsPerMolecule < 1 {
		atomsPerMolecule = 1
	}
	maxMolecules := maxAtoms / atomsPerMolecule
	maxAtoms = maxMolecules * atomsPerMolecule

	return &DataSet{
		AtomsPerMolecule:          atomsPerMolecule,
		AtomPositions:             make([]r2.Vec, maxAtoms),
		COMPositions:              make([]r2.Vec, maxMolecules),
		Velocities:                make([]r2.Vec, maxMolecules),
		Forces:                    make([]r2.Vec, maxMolecules),
		NextForces:                make([]r2.Vec, maxMolecules),
		RotationAngles:            make([]float64, maxMolecules),
		RotationRates:             make([]float64, maxMolecules),
		Torques:                   make([]float64, maxMolecules),
		NextTorques:               make([]float64, maxMolecules),
		MoleculeMass:              moleculeMass,
		MoleculeRotationalInertia: rotationalInertia,
		maxAtoms:                  maxAtoms,
	}
}

func (d *DataSet) NumberOfAtoms() int     { return d.numberOfAtoms }
func (d *DataSet) NumberOfMolecules() int { return d.numberOfAtoms / d.AtomsPerMolecule }
func (d *DataSet) MaxAtoms() int          { return d.maxAtoms }

// Capacity returns the maximum number of molecules.
func (d *DataSet) Capacity() int { return d.maxAtoms / d.AtomsPerMolecule }

// NumberOfRemainingSlots returns how many more molecules fit.
func (d *DataSet) NumberOfRemainingSlots() int {
	return d.Capacity() - d.NumberOfMolecules()
}

func (d *DataSet) NumberOfSafeMolecules() int { return d.numberOfSafe }

// SetNumberOfSafeMolecules marks the first n molecules as safe. n is clamped
// into [0, NumberOfMolecules()].
func (d *DataSet) SetNumberOfSafeMolecules(n int) {
	if n < 0 {
		n = 0
	}
	if m := d.NumberOfMolecules(); n > m {
		n = m
	}
	d.numberOfSafe = n
}

// AddMolecule appends one molecule. It returns false without touching the
// data set when there is no room or the atom count does not match the
// molecule's atomicity. The new molecule starts unsafe.
func (d *DataSet) AddMolecule(atomPositions []r2.Vec, com, velocity r2.Vec, rotationRate float64) bool {
	if d.NumberOfRemainingSlots() < 1 || len(atomPositions) != d.AtomsPerMolecule {
		return false
	}

	m := d.NumberOfMolecules()
	copy(d.AtomPositions[d.numberOfAtoms:], atomPositions)

	d.COMPositions[m] = com
	d.Velocities[m] = velocity
	d.Forces[m] = r2.Vec{}
	d.NextForces[m] = r2.Vec{}
	d.RotationAngles[m] = 0
	d.RotationRates[m] = rotationRate
	d.Torques[m] = 0
	d.NextTorques[m] = 0

	d.numberOfAtoms += d.AtomsPerMolecule
	return true
}

// RemoveMolecule deletes the molecule at index, shifting every later
// molecule and atom block down by one. Out-of-range indices are ignored.
func (d *DataSet) RemoveMolecule(index int) {
	n := d.NumberOfMolecules()
	if index < 0 || index >= n {
		return
	}

	copy(d.COMPositions[index:n], d.COMPositions[index+1:n])
	copy(d.Velocities[index:n], d.Velocities[index+1:n])
	copy(d.Forces[index:n], d.Forces[index+1:n])
	copy(d.NextForces[index:n], d.NextForces[index+1:n])
	copy(d.RotationAngles[index:n], d.RotationAngles[index+1:n])
	copy(d.RotationRates[index:n], d.RotationRates[index+1:n])
	copy(d.Torques[index:n], d.Torques[index+1:n])
	copy(d.NextTorques[index:n], d.NextTorques[index+1:n])

	apm := d.AtomsPerMolecule
	copy(d.AtomPositions[index*apm:d.numberOfAtoms], d.AtomPositions[(index+1)*apm:d.numberOfAtoms])

	last := n - 1
	d.COMPositions[last] = r2.Vec{}
	d.Velocities[last] = r2.Vec{}
	d.Forces[last] = r2.Vec{}
	d.NextForces[last] = r2.Vec{}
	d.RotationAngles[last] = 0
	d.RotationRates[last] = 0
	d.Torques[last] = 0
	d.NextTorques[last] = 0

	d.numberOfAtoms -= apm
	if index < d.numberOfSafe {
		d.numberOfSafe--
	}
}

// SwapMolecules exchanges the records of molecules i and j together with
// their atom blocks. Torques are left in place.
func (d *DataSet) SwapMolecules(i, j int) {
	if i == j {
		return
	}
	d.COMPositions[i], d.COMPositions[j] = d.COMPositions[j], d.COMPositions[i]
	d.Velocities[i], d.Velocities[j] = d.Velocities[j], d.Velocities[i]
	d.Forces[i], d.Forces[j] = d.Forces[j], d.Forces[i]
	d.RotationAngles[i], d.RotationAngles[j] = d.RotationAngles[j], d.RotationAngles[i]
	d.RotationRates[i], d.RotationRates[j] = d.RotationRates[j], d.RotationRates[i]

	apm := d.AtomsPerMolecule
	for k := 0; k < apm; k++ {
		a, b := i*apm+k, j*apm+k
		d.AtomPositions[a], d.AtomPositions[b] = d.AtomPositions[b], d.AtomPositions[a]
	}
}

// KineticEnergy returns the total translational plus rotational kinetic
// energy of the live molecules.
func (d *DataSet) KineticEnergy() float64 {
	ke := 0.0
	n := d.NumberOfMolecules()
	for i := 0; i < n; i++ {
		ke += 0.5 * d.MoleculeMass * r2.Norm2(d.Velocities[i])
		if d.AtomsPerMolecule > 1 {
			w := d.RotationRates[i]
			ke += 0.5 * d.MoleculeRotationalInertia * w * w
		}
	}
	return ke
}

// CalculateTemperatureFromKineticEnergy returns the instantaneous model
// temperature. Polyatomic values are divided by 1.5 so that the extra
// rotational degree of freedom reads on the same scale as a monatomic gas.
func (d *DataSet) CalculateTemperatureFromKineticEnergy() float64 {
	n := d.NumberOfMolecules()
	if n == 0 {
		return 0
	}
	if d.AtomsPerMolecule == 1 {
		ke := 0.0
		for i := 0; i < n; i++ {
			ke += 0.5 * d.MoleculeMass * r2.Norm2(d.Velocities[i])
		}
		return ke / float64(d.numberOfAtoms)
	}
	return d.KineticEnergy() / float64(n) / 1.5
}
