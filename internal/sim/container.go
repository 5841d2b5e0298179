package sim

import "math"

// Container resize rates in picometers per second.
const (
	ContainerGrowthRate        = 1500.0
	ContainerShrinkRate        = 2000.0
	PostExplosionExpansionRate = 10000.0
	// the container stops growing after an explosion at this multiple of
	// its initial height
	maxExplodedHeightFactor = 10.0

	// closePackedAreaFactor inflates the hexagonal close-packed area when
	// bounding how far the lid may come down.
	closePackedAreaFactor = 1.2
	minContainerHeight    = 0.1 * InitialContainerHeight

	// a molecule this close to the lid, in normalized units, is pushed by
	// a moving lid
	lidProximity = 1.5
)

// containerView is the read-only container context handed to the
// calculator and the phase changer. Explode is the one transition they
// may trigger.
type containerView struct{ m *Model }

func (c containerView) NormalizedWidth() float64           { return c.m.NormalizedWidth() }
func (c containerView) NormalizedHeight() float64          { return c.m.NormalizedHeight() }
func (c containerView) IsExploded() bool                   { return c.m.exploded }
func (c containerView) GravitationalAcceleration() float64 { return c.m.gravity }
func (c containerView) Explode()                           { c.m.explode() }

func (m *Model) explode() {
	if m.exploded {
		return
	}
	m.exploded = true
	m.calculator.ResetPressure()
	m.logger.Warnf("container exploded at tick %d", m.tick)
	m.notifier.ContainerExploded()
}

func (m *Model) NormalizedWidth() float64  { return ContainerWidth / m.Sigma() }
func (m *Model) NormalizedHeight() float64 { return m.containerHeight / m.Sigma() }

func (m *Model) normalizedInitialHeight() float64 { return InitialContainerHeight / m.Sigma() }

// MinAllowableContainerHeight is the lowest the lid may go, in
// picometers, so that the molecules still fit at close packing.
func (m *Model) MinAllowableContainerHeight() float64 {
	d := m.geom.MinInterParticleDistance
	area := float64(m.data.NumberOfMolecules()) * math.Sqrt(3) / 2 * d * d * closePackedAreaFactor
	height := area / m.NormalizedWidth() * m.Sigma()
	return math.Max(minContainerHeight, math.Min(InitialContainerHeight, height))
}

// SetTargetParticleContainerHeight sets where the lid should move to,
// clamped to [MinAllowableContainerHeight, InitialContainerHeight].
func (m *Model) SetTargetParticleContainerHeight(height float64) {
	if math.IsNaN(height) {
		return
	}
	m.targetContainerHeight = math.Max(m.MinAllowableContainerHeight(), math.Min(InitialContainerHeight, height))
}

// updateContainerHeight moves the lid one tick toward its target and
// reports whether it moved.
func (m *Model) updateContainerHeight() bool {
	before := m.containerHeight

	switch {
	case m.exploded:
		m.containerHeight = math.Min(m.containerHeight+PostExplosionExpansionRate*NominalTickTime,
			maxExplodedHeightFactor*InitialContainerHeight)
	case m.targetContainerHeight > m.containerHeight:
		m.containerHeight = math.Min(m.targetContainerHeight, m.containerHeight+ContainerGrowthRate*NominalTickTime)
	case m.targetContainerHeight < m.containerHeight:
		floor := math.Max(m.targetContainerHeight, m.MinAllowableContainerHeight())
		m.containerHeight = math.Max(floor, m.containerHeight-ContainerShrinkRate*NominalTickTime)
		if m.containerHeight > before {
			m.containerHeight = before
		}
	}

	return m.containerHeight != before
}

func (m *Model) moleculeNearLid() bool {
	top := m.NormalizedHeight() - lidProximity
	for i := 0; i < m.data.NumberOfMolecules(); i++ {
		if m.data.COMPositions[i].Y > top {
			return true
		}
	}
	return false
}
