package physics

import (
	"github.com/san-kum/statesim/internal/moldata"
	"gonum.org/v1/gonum/spatial/r2"
)

// PositionUpdater rebuilds atom positions from each molecule's center of
// mass and rotation angle.
type PositionUpdater struct {
	geom Geometry
}

func NewPositionUpdater(geom Geometry) *PositionUpdater {
	return &PositionUpdater{geom: geom}
}

// UpdateAtomPositions writes the absolute position of every live atom.
func (u *PositionUpdater) UpdateAtomPositions(ds *moldata.DataSet) {
	n := ds.NumberOfMolecules()
	apm := ds.AtomsPerMolecule

	if apm == 1 {
		copy(ds.AtomPositions[:n], ds.COMPositions[:n])
		return
	}

	for i := 0; i < n; i++ {
		com := ds.COMPositions[i]
		rot := r2.NewRotation(ds.RotationAngles[i], r2.Vec{})
		for k := 0; k < apm; k++ {
			ds.AtomPositions[i*apm+k] = r2.Add(com, rot.Rotate(u.geom.Offsets[k]))
		}
	}
}

// AtomPositionsAt returns the atoms of a single molecule placed at com with
// the given rotation.
func (u *PositionUpdater) AtomPositionsAt(com r2.Vec, angle float64) []r2.Vec {
	rot := r2.NewRotation(angle, r2.Vec{})
	atoms := make([]r2.Vec, len(u.geom.Offsets))
	for k, o := range u.geom.Offsets {
		atoms[k] = r2.Add(com, rot.Rotate(o))
	}
	return atoms
}
