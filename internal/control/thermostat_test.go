package control

import (
	"math"
	"testing"

	"github.com/san-kum/statesim/internal/moldata"
	"github.com/san-kum/statesim/internal/sampling"
	"gonum.org/v1/gonum/spatial/r2"
)

func movingData(t *testing.T, apm, n int) *moldata.DataSet {
	t.Helper()
	ds := moldata.New(apm, 300, 1, 0.5)
	atoms := make([]r2.Vec, apm)
	for i := 0; i < n; i++ {
		v := r2.Vec{X: float64(i%5) - 2, Y: float64(i%3) - 1}
		if !ds.AddMolecule(atoms, r2.Vec{X: float64(i)}, v, float64(i%4)-1.5) {
			t.Fatalf("add molecule %d failed", i)
		}
	}
	return ds
}

func TestNone(t *testing.T) {
	ds := movingData(t, 1, 10)
	before := ds.CalculateTemperatureFromKineticEnergy()
	NewNone().Adjust(5)
	if after := ds.CalculateTemperatureFromKineticEnergy(); after != before {
		t.Errorf("temperature changed from %v to %v", before, after)
	}
}

func TestIsokineticMatchesTarget(t *testing.T) {
	tests := []struct {
		name   string
		apm    int
		target float64
	}{
		{"monatomic heat", 1, 3.0},
		{"monatomic cool", 1, 0.1},
		{"diatomic", 2, 0.5},
		{"triatomic", 3, 1.2},
	}
	for _, tt := range tests {
		ds := movingData(t, tt.apm, 20)
		NewIsokinetic(ds).Adjust(tt.target)
		if got := ds.CalculateTemperatureFromKineticEnergy(); math.Abs(got-tt.target) > 1e-9 {
			t.Errorf("%s: temperature = %v, want %v", tt.name, got, tt.target)
		}
	}
}

func TestIsokineticSkipsZeroTemperature(t *testing.T) {
	ds := moldata.New(1, 10, 1, 0)
	ds.AddMolecule([]r2.Vec{{}}, r2.Vec{}, r2.Vec{}, 0)
	NewIsokinetic(ds).Adjust(1.0)
	v := ds.Velocities[0]
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || v != (r2.Vec{}) {
		t.Errorf("velocity = %v, want zero", v)
	}
}

func TestAndersenProbabilityBounds(t *testing.T) {
	ds := movingData(t, 2, 50)
	orig := append([]r2.Vec(nil), ds.Velocities[:50]...)

	a := NewAndersen(ds, sampling.New(11))
	a.SetParam(CollisionProbabilityParam, 0)
	a.Adjust(1.0)
	for i := range orig {
		if ds.Velocities[i] != orig[i] {
			t.Fatalf("molecule %d changed with zero collision probability", i)
		}
	}

	a.SetParam(CollisionProbabilityParam, 2)
	if p := a.GetParams()[CollisionProbabilityParam]; p != 1 {
		t.Errorf("probability = %v, want clamped to 1", p)
	}
	a.Adjust(0)
	for i := 0; i < ds.NumberOfMolecules(); i++ {
		if ds.Velocities[i] != (r2.Vec{}) || ds.RotationRates[i] != 0 {
			t.Fatalf("molecule %d not resampled to zero temperature", i)
		}
	}
}

func TestAndersenConverges(t *testing.T) {
	ds := movingData(t, 1, 200)
	a := NewAndersen(ds, sampling.New(5))
	a.CollisionProbability = 1

	const target = 0.5
	sum := 0.0
	const rounds = 50
	for i := 0; i < rounds; i++ {
		a.Adjust(target)
		sum += ds.CalculateTemperatureFromKineticEnergy()
	}
	if mean := sum / rounds; math.Abs(mean-target) > 0.05 {
		t.Errorf("mean temperature = %v, want about %v", mean, target)
	}
}
