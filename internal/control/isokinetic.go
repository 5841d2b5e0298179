package control

import (
	"math"

	"github.com/san-kum/statesim/internal/moldata"
	"gonum.org/v1/gonum/spatial/r2"
)

type Isokinetic struct {
	data *moldata.DataSet
}

func NewIsokinetic(data *moldata.DataSet) *Isokinetic {
	return &Isokinetic{data: data}
}

// Adjust scales all velocities and rotation rates by sqrt(target/current).
// Nothing happens when the measured temperature is zero.
func (k *Isokinetic) Adjust(target float64) {
	current := k.data.CalculateTemperatureFromKineticEnergy()
	if current <= 0 || target < 0 {
		return
	}
	scale := math.Sqrt(target / current)

	d := k.data
	n := d.NumberOfMolecules()
	for i := 0; i < n; i++ {
		d.Velocities[i] = r2.Scale(scale, d.Velocities[i])
	}
	if d.AtomsPerMolecule > 1 {
		for i := 0; i < n; i++ {
			d.RotationRates[i] *= scale
		}
	}
}
