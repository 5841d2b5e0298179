package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/statesim/internal/atoms"
	"github.com/san-kum/statesim/internal/control"
	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/integrators"
	"github.com/san-kum/statesim/internal/logging"
	"github.com/san-kum/statesim/internal/moldata"
	"github.com/san-kum/statesim/internal/phase"
	"github.com/san-kum/statesim/internal/physics"
	"github.com/san-kum/statesim/internal/sampling"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Container dimensions in picometers.
	ContainerWidth         = 10000.0
	InitialContainerHeight = 10000.0

	MaxNumberOfAtoms = 500

	// Model temperatures of the phases and the set-point limits.
	SolidTemperature  = 0.15
	SlushTemperature  = 0.33
	LiquidTemperature = 0.34
	GasTemperature    = 1.0
	MinTemperature    = 0.0001
	MaxTemperature    = 50.0

	SubStepsPerTick = 8
	NominalTickTime = 1.0 / 60

	// TemperatureCloseRange is how far the measured temperature may drift
	// from the set-point before the adaptive policy rescales.
	TemperatureCloseRange = 0.15

	StepsPerTemperatureAdjustment     = 10
	MaxTemperatureChangePerAdjustment = 0.025
	LowTemperatureCoolingThreshold    = 0.85 * SolidTemperature
	lowTemperatureCoolingFraction     = 0.05

	NominalGravitationalAcceleration = 0.045
	MaxGravitationalAcceleration     = 0.4

	injectionPointX    = 0.95
	injectionPointY    = 0.25
	minInjectedSpeed   = 2.0
	maxInjectedSpeed   = 3.0
	injectionSpread    = math.Pi / 8
	maxInjectedRotRate = 2 * math.Pi

	// phase boundary used to pick the layout when switching species
	solidPhaseLimit = 1.1 * SolidTemperature
)

// Options configures a new Model.
type Options struct {
	Seed     uint64
	Logger   logging.Logger
	Notifier Notifier
}

// Model is the simulation orchestrator. It owns the molecule data set and
// the strategy objects built for the current species, and is not safe for
// concurrent use.
type Model struct {
	logger   logging.Logger
	notifier Notifier
	seed     uint64
	rng      *sampling.Sampler

	species     dynamo.Species
	params      speciesParams
	geom        physics.Geometry
	userEpsilon float64

	data       *moldata.DataSet
	calculator *integrators.Verlet
	updater    *physics.PositionUpdater
	changer    *phase.Changer
	isokinetic *control.Isokinetic
	andersen   *control.Andersen
	none       *control.None
	active     control.Thermostat

	thermostatMode       dynamo.ThermostatMode
	temperatureSetPoint  float64
	heatingCoolingAmount float64
	gravity              float64
	collisionProbability float64

	containerHeight       float64
	targetContainerHeight float64
	exploded              bool

	subSteps int
	tick     int
	lastDt   float64
	display  []r2.Vec
}

func NewModel(opts Options) *Model {
	m := &Model{
		logger:   opts.Logger,
		notifier: opts.Notifier,
		seed:     opts.Seed,
	}
	if m.logger == nil {
		m.logger = logging.Discard()
	}
	if m.notifier == nil {
		m.notifier = NopNotifier{}
	}
	m.Reset()
	return m
}

// Reset discards all particles and restores the default neon solid.
func (m *Model) Reset() {
	m.rng = sampling.New(m.seed)
	m.thermostatMode = dynamo.Adaptive
	m.heatingCoolingAmount = 0
	m.gravity = NominalGravitationalAcceleration
	m.collisionProbability = control.DefaultCollisionProbability
	m.temperatureSetPoint = SolidTemperature
	m.userEpsilon = atoms.Configurable.Epsilon
	m.tick = 0
	m.subSteps = 0
	m.lastDt = 0

	m.switchSpecies(dynamo.Neon, dynamo.Solid)
}

// SetMoleculeType replaces the data set with freshly placed molecules of
// the given species. The new molecules start in the phase that matches
// the current set-point.
func (m *Model) SetMoleculeType(s dynamo.Species) error {
	if _, ok := paramsFor(s); !ok {
		return fmt.Errorf("%w: %d", dynamo.ErrInvalidSpecies, int(s))
	}
	m.switchSpecies(s, m.phaseForSetPoint())
	m.notifier.SpeciesChanged(s)
	return nil
}

func (m *Model) phaseForSetPoint() dynamo.Phase {
	switch {
	case m.temperatureSetPoint <= solidPhaseLimit:
		return dynamo.Solid
	case m.temperatureSetPoint <= LiquidTemperature:
		return dynamo.Liquid
	default:
		return dynamo.Gas
	}
}

func (m *Model) switchSpecies(s dynamo.Species, p dynamo.Phase) {
	params, _ := paramsFor(s)
	geom, _ := physics.GeometryFor(s.AtomsPerMolecule())

	m.species = s
	m.params = params
	m.geom = geom
	m.containerHeight = InitialContainerHeight
	m.targetContainerHeight = InitialContainerHeight
	m.exploded = false

	m.data = moldata.New(geom.AtomsPerMolecule, MaxNumberOfAtoms, geom.Mass, geom.Inertia)
	view := containerView{m}
	m.calculator = integrators.NewVerlet(m.data, geom, view)
	m.updater = physics.NewPositionUpdater(geom)
	m.changer = phase.NewChanger(m.data, geom, view, m.rng, m.logger)
	m.isokinetic = control.NewIsokinetic(m.data)
	m.andersen = control.NewAndersen(m.data, m.rng)
	m.andersen.SetParam(control.CollisionProbabilityParam, m.collisionProbability)
	m.none = control.NewNone()
	m.active = m.none
	m.applyEpsilon()

	m.initializeMolecules()
	if err := m.SetPhase(p); err != nil {
		m.logger.Warnf("initial %s layout for %s: %v", p, s, err)
	}
	m.logger.Debugf("species %s: %d molecules, sigma %.0f pm", s, m.data.NumberOfMolecules(), m.Sigma())
}

// initialMoleculeCount sizes the population to fill roughly a ninth of the
// container area at close spacing.
func (m *Model) initialMoleculeCount() int {
	perSide := math.Floor(m.NormalizedWidth() / (3 * m.geom.MinInterParticleDistance))
	n := int(perSide*perSide) / m.geom.AtomsPerMolecule
	if c := m.data.Capacity(); n > c {
		n = c
	}
	return n
}

func (m *Model) initializeMolecules() {
	n := m.initialMoleculeCount()
	atoms := m.updater.AtomPositionsAt(r2.Vec{}, 0)
	for i := 0; i < n; i++ {
		if !m.data.AddMolecule(atoms, r2.Vec{}, r2.Vec{}, 0) {
			break
		}
	}
}

// SetPhase lays every molecule out in the phase and moves the set-point to
// that phase's temperature. Unknown phases fall back to solid. A returned
// *dynamo.PlacementError is informational: the model keeps running with
// the molecules that could be placed.
func (m *Model) SetPhase(p dynamo.Phase) error {
	var temperature float64
	switch p {
	case dynamo.Solid:
		temperature = SolidTemperature
	case dynamo.Liquid:
		temperature = LiquidTemperature
	case dynamo.Gas:
		temperature = GasTemperature
	default:
		m.logger.Warnf("unknown phase %d, using solid", int(p))
		p = dynamo.Solid
		temperature = SolidTemperature
	}

	m.setTemperatureSetPoint(temperature)
	err := m.changer.SetPhase(p, temperature)
	m.calculator.ResetPressure()
	m.syncDisplayPositions()
	return err
}

// SetTemperature sets the thermostat target, clamped to
// [MinTemperature, MaxTemperature].
func (m *Model) SetTemperature(t float64) {
	if math.IsNaN(t) {
		return
	}
	m.setTemperatureSetPoint(math.Max(MinTemperature, math.Min(MaxTemperature, t)))
}

func (m *Model) setTemperatureSetPoint(t float64) {
	if t == m.temperatureSetPoint {
		return
	}
	m.temperatureSetPoint = t
	m.notifier.TemperatureChanged(t)
}

func (m *Model) SetThermostatType(mode dynamo.ThermostatMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", dynamo.ErrInvalidThermostat, int(mode))
	}
	m.thermostatMode = mode
	return nil
}

// SetHeatingCoolingAmount sets the pending heat flow, clamped to [-1, 1].
// Positive values heat.
func (m *Model) SetHeatingCoolingAmount(amount float64) {
	if math.IsNaN(amount) {
		amount = 0
	}
	m.heatingCoolingAmount = math.Max(-1, math.Min(1, amount))
}

// SetGravitationalAcceleration clamps silently into
// [0, MaxGravitationalAcceleration].
func (m *Model) SetGravitationalAcceleration(g float64) {
	if math.IsNaN(g) {
		return
	}
	m.gravity = math.Max(0, math.Min(MaxGravitationalAcceleration, g))
}

// SetAdjustableEpsilon changes the interaction strength of the
// user-defined atom, in Kelvin, clamped to the configurable range. It is
// ignored for the other species.
func (m *Model) SetAdjustableEpsilon(epsilon float64) {
	if m.species != dynamo.UserDefined {
		m.logger.Warnf("interaction strength is fixed for %s", m.species)
		return
	}
	if math.IsNaN(epsilon) {
		return
	}
	m.userEpsilon = math.Max(atoms.MinEpsilon, math.Min(atoms.MaxEpsilon, epsilon))
	m.applyEpsilon()
}

// SetCollisionProbability sets the per-molecule, per-sub-step chance of an
// Andersen heat-bath collision, clamped to [0, 1]. It survives species
// changes and is restored to the default by Reset.
func (m *Model) SetCollisionProbability(p float64) {
	m.andersen.SetParam(control.CollisionProbabilityParam, p)
	m.collisionProbability = m.andersen.GetParams()[control.CollisionProbabilityParam]
}

func (m *Model) applyEpsilon() {
	if m.species == dynamo.UserDefined {
		m.calculator.SetScaledEpsilon(m.userEpsilon / atoms.Configurable.Epsilon)
		return
	}
	m.calculator.SetScaledEpsilon(1)
}

// InjectMolecule adds one molecule near the right wall heading left. It
// reports false and changes nothing when the data set is full.
func (m *Model) InjectMolecule() bool {
	if m.data.NumberOfRemainingSlots() == 0 {
		return false
	}

	// stay clear of a lowered lid
	y := math.Min(injectionPointY*m.normalizedInitialHeight(), m.NormalizedHeight()-physics.WallDistanceThreshold)
	com := r2.Vec{X: injectionPointX * m.NormalizedWidth(), Y: math.Max(y, physics.WallDistanceThreshold)}
	speed := m.rng.Range(minInjectedSpeed, maxInjectedSpeed)
	heading := math.Pi + m.rng.Range(-injectionSpread, injectionSpread)
	velocity := r2.Vec{X: speed * math.Cos(heading), Y: speed * math.Sin(heading)}

	angle, rate := 0.0, 0.0
	if m.geom.AtomsPerMolecule > 1 {
		angle = m.rng.Range(0, 2*math.Pi)
		rate = m.rng.Range(-maxInjectedRotRate, maxInjectedRotRate)
	}

	if !m.data.AddMolecule(m.updater.AtomPositionsAt(com, angle), com, velocity, rate) {
		return false
	}
	m.data.RotationAngles[m.data.NumberOfMolecules()-1] = angle
	m.syncDisplayPositions()
	return true
}

// ReturnLid puts the lid back on an exploded container. Molecules that
// escaped the nominal container are discarded.
func (m *Model) ReturnLid() {
	if !m.exploded {
		return
	}

	width := m.NormalizedWidth()
	height := m.normalizedInitialHeight()
	removed := 0
	for i := m.data.NumberOfMolecules() - 1; i >= 0; i-- {
		p := m.data.COMPositions[i]
		if p.X < 0 || p.X > width || p.Y < 0 || p.Y > height {
			m.data.RemoveMolecule(i)
			removed++
		}
	}

	m.containerHeight = InitialContainerHeight
	m.targetContainerHeight = InitialContainerHeight
	m.exploded = false
	m.calculator.ResetPressure()
	m.syncDisplayPositions()
	m.logger.Infof("lid returned, %d escaped molecules removed", removed)
}

func (m *Model) syncDisplayPositions() {
	n := m.data.NumberOfAtoms()
	sigma := m.Sigma()
	if cap(m.display) < n {
		m.display = make([]r2.Vec, n, m.data.MaxAtoms())
	}
	m.display = m.display[:n]
	for i := 0; i < n; i++ {
		m.display[i] = r2.Scale(sigma, m.data.AtomPositions[i])
	}
}
