// Package phase lays molecules out in solid, liquid or gas starting
// configurations.
package phase

import (
	"math"

	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/moldata"
	"github.com/san-kum/statesim/internal/physics"
	"github.com/san-kum/statesim/internal/sampling"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// WallOffset is the margin kept between placed molecules and the walls.
	WallOffset = 1.5

	// MaxPlacementAttempts bounds random placement before falling back to
	// the grid scan.
	MaxPlacementAttempts = 500

	// liquid placement spreads molecules over this multiple of their
	// close-packed area
	liquidAreaFactor = 2.0
)

// Bounds gives the changer the container size in normalized units.
type Bounds interface {
	NormalizedWidth() float64
	NormalizedHeight() float64
}

// Changer places every molecule of a data set into a requested phase.
type Changer struct {
	data    *moldata.DataSet
	geom    physics.Geometry
	updater *physics.PositionUpdater
	bounds  Bounds
	rng     *sampling.Sampler
	logger  logging.Logger
}

func NewChanger(data *moldata.DataSet, geom physics.Geometry, bounds Bounds, rng *sampling.Sampler, logger logging.Logger) *Changer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Changer{
		data:    data,
		geom:    geom,
		updater: physics.NewPositionUpdater(geom),
		bounds:  bounds,
		rng:     rng,
		logger:  logger,
	}
}

// SetPhase lays out all molecules with velocities drawn for the given
// model temperature. Molecules that cannot be placed are removed and
// reported through a *dynamo.PlacementError; the rest are marked safe.
func (c *Changer) SetPhase(p dynamo.Phase, temperature float64) error {
	requested := c.data.NumberOfMolecules()

	var dropped int
	switch p {
	case dynamo.Liquid:
		dropped = c.formLiquid(temperature)
	case dynamo.Gas:
		dropped = c.formGas(temperature)
	default:
		dropped = c.formSolid(temperature)
	}

	c.data.SetNumberOfSafeMolecules(c.data.NumberOfMolecules())
	c.updater.UpdateAtomPositions(c.data)

	if dropped > 0 {
		c.logger.Warnf("phase %s: could not place %d of %d molecules", p, dropped, requested)
		return &dynamo.PlacementError{Phase: p, Requested: requested, Placed: requested - dropped}
	}
	return nil
}

// latticeSpacing returns the horizontal and vertical pitch of the solid
// lattice for the molecule shape.
func (c *Changer) latticeSpacing() (float64, float64) {
	switch c.geom.AtomsPerMolecule {
	case 2:
		return 2.0, 1.2
	case 3:
		return 1.6, 1.4
	default:
		d := c.geom.MinInterParticleDistance
		return d, d * math.Sqrt(3) / 2
	}
}

func (c *Changer) formSolid(temperature float64) int {
	width := c.bounds.NormalizedWidth()
	height := c.bounds.NormalizedHeight()
	dx, dy := c.latticeSpacing()

	n := c.data.NumberOfMolecules()
	perRow := int(math.Ceil(math.Sqrt(float64(n))))
	if fit := int((width - 2*WallOffset) / dx); perRow > fit {
		perRow = fit
	}
	if perRow < 1 {
		perRow = 1
	}
	startX := (width - float64(perRow-1)*dx - dx/2) / 2

	dropped := 0
	for i := 0; i < c.data.NumberOfMolecules(); {
		row, col := i/perRow, i%perRow
		pos := r2.Vec{
			X: startX + float64(col)*dx,
			Y: WallOffset + float64(row)*dy,
		}
		if row%2 == 1 {
			pos.X += dx / 2
		}

		if pos.Y > height-WallOffset {
			var ok bool
			if pos, ok = c.FindOpenMoleculeLocation(i); !ok {
				c.data.RemoveMolecule(i)
				dropped++
				continue
			}
		}
		c.place(i, pos, 0, temperature)
		i++
	}
	return dropped
}

func (c *Changer) formLiquid(temperature float64) int {
	width := c.bounds.NormalizedWidth()
	height := c.bounds.NormalizedHeight()
	d := c.geom.MinInterParticleDistance

	n := c.data.NumberOfMolecules()
	usableWidth := width - 2*WallOffset
	liquidHeight := liquidAreaFactor * float64(n) * d * d / usableWidth
	top := math.Min(height-WallOffset, WallOffset+math.Max(liquidHeight, d))

	return c.scatter(r2.Vec{X: WallOffset, Y: WallOffset}, r2.Vec{X: width - WallOffset, Y: top}, temperature)
}

func (c *Changer) formGas(temperature float64) int {
	width := c.bounds.NormalizedWidth()
	height := c.bounds.NormalizedHeight()
	return c.scatter(r2.Vec{X: WallOffset, Y: WallOffset}, r2.Vec{X: width - WallOffset, Y: height - WallOffset}, temperature)
}

// scatter places molecules at random non-overlapping points of the
// rectangle [lo, hi] with random orientations.
func (c *Changer) scatter(lo, hi r2.Vec, temperature float64) int {
	dropped := 0
	for i := 0; i < c.data.NumberOfMolecules(); {
		pos, ok := c.randomLocation(lo, hi, i)
		if !ok {
			pos, ok = c.FindOpenMoleculeLocation(i)
		}
		if !ok {
			c.data.RemoveMolecule(i)
			dropped++
			continue
		}
		angle := 0.0
		if c.geom.AtomsPerMolecule > 1 {
			angle = c.rng.Range(0, 2*math.Pi)
		}
		c.place(i, pos, angle, temperature)
		i++
	}
	return dropped
}

func (c *Changer) randomLocation(lo, hi r2.Vec, placed int) (r2.Vec, bool) {
	if hi.X <= lo.X || hi.Y <= lo.Y {
		return r2.Vec{}, false
	}
	for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
		pos := r2.Vec{X: c.rng.Range(lo.X, hi.X), Y: c.rng.Range(lo.Y, hi.Y)}
		if c.isOpen(pos, placed) {
			return pos, true
		}
	}
	return r2.Vec{}, false
}

// FindOpenMoleculeLocation scans a grid from the wall margin and returns
// the first cell farther than the minimum inter-particle distance from
// the first placed molecules.
func (c *Changer) FindOpenMoleculeLocation(placed int) (r2.Vec, bool) {
	d := c.geom.MinInterParticleDistance
	rangeX := c.bounds.NormalizedWidth() - 2*WallOffset
	rangeY := c.bounds.NormalizedHeight() - 2*WallOffset

	for i := 0; float64(i)*d <= rangeX; i++ {
		for j := 0; float64(j)*d <= rangeY; j++ {
			pos := r2.Vec{X: WallOffset + float64(i)*d, Y: WallOffset + float64(j)*d}
			if c.isOpen(pos, placed) {
				return pos, true
			}
		}
	}
	return r2.Vec{}, false
}

func (c *Changer) isOpen(pos r2.Vec, placed int) bool {
	d2 := c.geom.MinInterParticleDistance * c.geom.MinInterParticleDistance
	for j := 0; j < placed; j++ {
		if r2.Norm2(r2.Sub(pos, c.data.COMPositions[j])) <= d2 {
			return false
		}
	}
	return true
}

func (c *Changer) place(i int, pos r2.Vec, angle, temperature float64) {
	d := c.data
	vScale := math.Sqrt(temperature / d.MoleculeMass)

	d.COMPositions[i] = pos
	d.Velocities[i] = r2.Vec{X: vScale * c.rng.Gaussian(), Y: vScale * c.rng.Gaussian()}
	d.Forces[i] = r2.Vec{}
	d.NextForces[i] = r2.Vec{}
	d.Torques[i] = 0
	d.NextTorques[i] = 0
	d.RotationAngles[i] = angle
	d.RotationRates[i] = 0
	if d.AtomsPerMolecule > 1 {
		d.RotationRates[i] = math.Sqrt(temperature/d.MoleculeRotationalInertia) * c.rng.Gaussian()
	}
}
