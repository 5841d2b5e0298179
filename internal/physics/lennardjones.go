package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// WallDistanceThreshold is where the truncated wall potential reaches
	// its minimum (2^(1/6)); beyond it walls exert no force.
	WallDistanceThreshold = 1.122462048309373

	// MinWallDistance keeps the wall force finite for particles pressed
	// against or through a wall.
	MinWallDistance = WallDistanceThreshold * 0.8

	// InteractionDistanceSquared is the squared pair cutoff in units of σ².
	InteractionDistanceSquared = 6.25

	// MinDistanceSquared floors the squared pair separation in units of σ².
	MinDistanceSquared = 0.7225
)

// WallResult is the outcome of evaluating the container walls for a single
// center of mass.
type WallResult struct {
	Force           r2.Vec
	PotentialEnergy float64

	// BelowFloor is set when the particle has passed through the bottom
	// of the container.
	BelowFloor bool
}

func wallForce(d float64) float64 {
	return 48/math.Pow(d, 13) - 24/math.Pow(d, 7)
}

func wallPotential(d float64) float64 {
	return 4/math.Pow(d, 12) - 4/math.Pow(d, 6) + 1
}

// WallForce evaluates the repulsion of the four container walls on a
// particle at pos. Once the container has exploded the lid is gone and
// particles outside the side walls are free.
func WallForce(pos r2.Vec, width, height float64, exploded bool) WallResult {
	var res WallResult
	x, y := pos.X, pos.Y

	if x < WallDistanceThreshold {
		if !(x < 0 && exploded) {
			d := math.Max(x, MinWallDistance)
			res.Force.X = wallForce(d)
			res.PotentialEnergy += wallPotential(d)
		}
	} else if width-x < WallDistanceThreshold {
		d := width - x
		if !(d < 0 && exploded) {
			d = math.Max(d, MinWallDistance)
			res.Force.X = -wallForce(d)
			res.PotentialEnergy += wallPotential(d)
		}
	}

	inside := x > 0 && x < width
	switch {
	case y < 0 && !exploded:
		// escaped through the floor; the caller explodes the container
		// and the particle gets no floor force
		res.BelowFloor = true
	case y < WallDistanceThreshold:
		res.BelowFloor = y < 0
		if !exploded || inside {
			d := math.Max(y, MinWallDistance)
			res.Force.Y = wallForce(d)
			res.PotentialEnergy += wallPotential(d)
		}
	case height-y < WallDistanceThreshold && !exploded:
		d := math.Max(height-y, MinWallDistance)
		res.Force.Y = -wallForce(d)
		res.PotentialEnergy += wallPotential(d)
	}

	return res
}

// PairForce returns the Lennard-Jones force on the particle at separation
// delta = r_i - r_j together with the pair potential. sigma and epsilon are
// in normalized units. Separations beyond the cutoff return zero.
func PairForce(delta r2.Vec, sigma, epsilon float64) (r2.Vec, float64) {
	sigma2 := sigma * sigma
	rel2 := r2.Norm2(delta) / sigma2
	if rel2 >= InteractionDistanceSquared {
		return r2.Vec{}, 0
	}
	if rel2 < MinDistanceSquared {
		rel2 = MinDistanceSquared
	}

	inv2 := 1 / rel2
	inv6 := inv2 * inv2 * inv2
	inv12 := inv6 * inv6

	scalar := 24 * epsilon * (2*inv12 - inv6) * inv2 / sigma2
	pe := 4 * epsilon * (inv12 - inv6)
	return r2.Scale(scalar, delta), pe
}

// MixSigma and MixEpsilon combine per-atom parameters with the
// Lorentz-Berthelot rules.
func MixSigma(a, b float64) float64   { return 0.5 * (a + b) }
func MixEpsilon(a, b float64) float64 { return math.Sqrt(a * b) }
