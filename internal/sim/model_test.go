package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/statesim/internal/atoms"
	"github.com/san-kum/statesim/internal/control"
	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/physics"
)

type recordingNotifier struct {
	temperatures []float64
	pressures    []float64
	explosions   int
	species      []dynamo.Species
}

func (r *recordingNotifier) TemperatureChanged(t float64)     { r.temperatures = append(r.temperatures, t) }
func (r *recordingNotifier) PressureChanged(p float64)        { r.pressures = append(r.pressures, p) }
func (r *recordingNotifier) ContainerExploded()               { r.explosions++ }
func (r *recordingNotifier) SpeciesChanged(s dynamo.Species) { r.species = append(r.species, s) }

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Options{Seed: 1})

	if m.Species() != dynamo.Neon {
		t.Errorf("species = %s, want neon", m.Species())
	}
	if m.ThermostatMode() != dynamo.Adaptive {
		t.Errorf("thermostat = %s, want adaptive", m.ThermostatMode())
	}
	if m.TemperatureSetPoint() != SolidTemperature {
		t.Errorf("set-point = %v, want %v", m.TemperatureSetPoint(), SolidTemperature)
	}
	if m.GravitationalAcceleration() != NominalGravitationalAcceleration {
		t.Errorf("gravity = %v", m.GravitationalAcceleration())
	}
	if m.NumberOfMolecules() != 81 {
		t.Errorf("molecules = %d, want 81", m.NumberOfMolecules())
	}
	if m.data.NumberOfSafeMolecules() != m.NumberOfMolecules() {
		t.Error("initial molecules should all be safe")
	}
	if r := m.ParticleContainerRect(); r != (Rect{Width: ContainerWidth, Height: InitialContainerHeight}) {
		t.Errorf("container = %+v", r)
	}
	if m.IsExploded() {
		t.Error("new model should not be exploded")
	}
}

func TestSigmaAndEpsilon(t *testing.T) {
	tests := []struct {
		species dynamo.Species
		sigma   float64
		epsilon float64
		atoms   int
	}{
		{dynamo.Neon, 308, 32.8, 1},
		{dynamo.Argon, 363, 111.84, 1},
		{dynamo.DiatomicOxygen, 362, 113.27, 2},
		{dynamo.Water, 362, 200, 3},
		{dynamo.UserDefined, 350, 100, 1},
	}

	m := NewModel(Options{Seed: 1})
	for _, tt := range tests {
		if err := m.SetMoleculeType(tt.species); err != nil {
			t.Fatalf("%s: %v", tt.species, err)
		}
		if m.Sigma() != tt.sigma {
			t.Errorf("%s: sigma = %v, want %v", tt.species, m.Sigma(), tt.sigma)
		}
		if m.Epsilon() != tt.epsilon {
			t.Errorf("%s: epsilon = %v, want %v", tt.species, m.Epsilon(), tt.epsilon)
		}
		if m.data.AtomsPerMolecule != tt.atoms {
			t.Errorf("%s: atoms per molecule = %d, want %d", tt.species, m.data.AtomsPerMolecule, tt.atoms)
		}
		if m.NumberOfMolecules() == 0 {
			t.Errorf("%s: no molecules placed", tt.species)
		}
	}
}

func TestSetMoleculeTypeInvalid(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	before := m.NumberOfMolecules()

	err := m.SetMoleculeType(dynamo.Species(42))
	if !errors.Is(err, dynamo.ErrInvalidSpecies) {
		t.Fatalf("expected ErrInvalidSpecies, got %v", err)
	}
	if m.Species() != dynamo.Neon || m.NumberOfMolecules() != before {
		t.Error("invalid species should leave the model untouched")
	}
}

func TestSetMoleculeTypeKeepsPhase(t *testing.T) {
	tests := []struct {
		setPoint float64
		want     float64
	}{
		{SolidTemperature, SolidTemperature},
		{0.3, LiquidTemperature},
		{2.0, GasTemperature},
	}

	for _, tt := range tests {
		rec := &recordingNotifier{}
		m := NewModel(Options{Seed: 3, Notifier: rec})
		m.SetTemperature(tt.setPoint)
		if err := m.SetMoleculeType(dynamo.Argon); err != nil {
			t.Fatal(err)
		}
		if m.TemperatureSetPoint() != tt.want {
			t.Errorf("set-point %v: after switch = %v, want %v", tt.setPoint, m.TemperatureSetPoint(), tt.want)
		}
		if len(rec.species) != 1 || rec.species[0] != dynamo.Argon {
			t.Errorf("species notifications = %v", rec.species)
		}
	}
}

func TestSetThermostatType(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	if err := m.SetThermostatType(dynamo.Andersen); err != nil {
		t.Fatal(err)
	}
	if m.ThermostatMode() != dynamo.Andersen {
		t.Errorf("mode = %s", m.ThermostatMode())
	}
	if err := m.SetThermostatType(dynamo.ThermostatMode(9)); !errors.Is(err, dynamo.ErrInvalidThermostat) {
		t.Errorf("expected ErrInvalidThermostat, got %v", err)
	}
	if m.ThermostatMode() != dynamo.Andersen {
		t.Error("invalid mode should not change the thermostat")
	}
}

func TestSetterClamping(t *testing.T) {
	m := NewModel(Options{Seed: 1})

	tests := []struct {
		name string
		set  func(float64)
		get  func() float64
		in   float64
		want float64
	}{
		{"temperature low", m.SetTemperature, m.TemperatureSetPoint, -1, MinTemperature},
		{"temperature high", m.SetTemperature, m.TemperatureSetPoint, 1000, MaxTemperature},
		{"temperature ok", m.SetTemperature, m.TemperatureSetPoint, 0.5, 0.5},
		{"gravity low", m.SetGravitationalAcceleration, m.GravitationalAcceleration, -0.1, 0},
		{"gravity high", m.SetGravitationalAcceleration, m.GravitationalAcceleration, 1, MaxGravitationalAcceleration},
		{"gravity ok", m.SetGravitationalAcceleration, m.GravitationalAcceleration, 0.2, 0.2},
		{"heating high", m.SetHeatingCoolingAmount, m.HeatingCoolingAmount, 3, 1},
		{"cooling low", m.SetHeatingCoolingAmount, m.HeatingCoolingAmount, -3, -1},
		{"height high", m.SetTargetParticleContainerHeight, m.TargetContainerHeight, 1e6, InitialContainerHeight},
		{"height low", m.SetTargetParticleContainerHeight, m.TargetContainerHeight, 0, m.MinAllowableContainerHeight()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.set(tt.in)
			if got := tt.get(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinAllowableContainerHeight(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	low := m.MinAllowableContainerHeight()
	if low <= 0 || low >= InitialContainerHeight {
		t.Fatalf("min height = %v", low)
	}
	for m.InjectMolecule() {
	}
	if high := m.MinAllowableContainerHeight(); high <= low {
		t.Errorf("min height should grow with molecule count: %v <= %v", high, low)
	}
}

func TestContainerRamp(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	m.SetTargetParticleContainerHeight(8000)

	if err := m.Step(NominalTickTime); err != nil {
		t.Fatal(err)
	}
	want := InitialContainerHeight - ContainerShrinkRate*NominalTickTime
	if got := m.ContainerHeight(); math.Abs(got-want) > 1e-9 {
		t.Errorf("height after one tick = %v, want %v", got, want)
	}

	for i := 0; i < 120; i++ {
		if err := m.Step(NominalTickTime); err != nil {
			t.Fatal(err)
		}
	}
	if m.ContainerHeight() != 8000 {
		t.Errorf("height = %v, want 8000", m.ContainerHeight())
	}

	m.SetTargetParticleContainerHeight(InitialContainerHeight)
	if err := m.Step(NominalTickTime); err != nil {
		t.Fatal(err)
	}
	if got, want := m.ContainerHeight(), 8000+ContainerGrowthRate*NominalTickTime; math.Abs(got-want) > 1e-9 {
		t.Errorf("height after growing = %v, want %v", got, want)
	}
}

func TestStepRejectsBadDt(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := m.Step(dt); !errors.Is(err, dynamo.ErrParameterBounds) {
			t.Errorf("dt %v: expected ErrParameterBounds, got %v", dt, err)
		}
	}
	if m.Tick() != 0 {
		t.Errorf("rejected steps advanced the model to tick %d", m.Tick())
	}
	if err := m.Step(0.05); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if m.LastDt() != 0.05 || m.Tick() != 1 {
		t.Errorf("after one step: dt %v tick %d", m.LastDt(), m.Tick())
	}
}

func TestKelvinConversion(t *testing.T) {
	neon, _ := paramsFor(dynamo.Neon)

	tests := []struct {
		name  string
		model float64
		want  float64
	}{
		{"below minimum", neon.minModelTemperature() / 2, 0},
		{"triple point", tripleModelMonatomic, 23},
		{"critical point", criticalModelMonatomic, 44},
		{"midway", (tripleModelMonatomic + criticalModelMonatomic) / 2, 33.5},
		{"below triple", tripleModelMonatomic / 2, 11.5},
		{"above critical", 2 * criticalModelMonatomic, 88},
	}

	for _, tt := range tests {
		if got := neon.toKelvin(tt.model); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: %v K, want %v K", tt.name, got, tt.want)
		}
	}
}

func TestMinModelTemperatureMapsToHalfKelvin(t *testing.T) {
	for _, s := range []dynamo.Species{dynamo.Neon, dynamo.Argon, dynamo.DiatomicOxygen, dynamo.Water, dynamo.UserDefined} {
		p, _ := paramsFor(s)
		if got := p.toKelvin(p.minModelTemperature()); math.Abs(got-minimumKelvin) > 1e-9 {
			t.Errorf("%s: min model temperature maps to %v K", s, got)
		}
	}
}

func TestPressureScale(t *testing.T) {
	tests := []struct {
		species dynamo.Species
		want    float64
	}{
		{dynamo.Neon, 200},
		{dynamo.Argon, 125},
		{dynamo.DiatomicOxygen, 125},
		{dynamo.Water, 200},
		{dynamo.UserDefined, 200},
	}
	for _, tt := range tests {
		p, _ := paramsFor(tt.species)
		if got := p.toAtmospheres(0.5); got != tt.want/2 {
			t.Errorf("%s: %v atm, want %v", tt.species, got, tt.want/2)
		}
	}
}

func TestInjectMolecule(t *testing.T) {
	m := NewModel(Options{Seed: 4})
	if err := m.SetMoleculeType(dynamo.DiatomicOxygen); err != nil {
		t.Fatal(err)
	}
	n := m.NumberOfMolecules()

	if !m.InjectMolecule() {
		t.Fatal("injection failed with free capacity")
	}
	if m.NumberOfMolecules() != n+1 {
		t.Errorf("molecules = %d, want %d", m.NumberOfMolecules(), n+1)
	}
	if m.data.NumberOfSafeMolecules() != n {
		t.Error("injected molecule should start unsafe")
	}

	v := m.data.Velocities[n]
	if speed := math.Hypot(v.X, v.Y); speed < minInjectedSpeed || speed >= maxInjectedSpeed {
		t.Errorf("injection speed %v out of range", speed)
	}
	if v.X >= 0 {
		t.Errorf("injected molecule should head left, velocity %v", v)
	}
	if len(m.Snapshot().Atoms) != m.data.NumberOfAtoms() {
		t.Error("display positions not synced after injection")
	}
}

func TestInjectBelowLoweredLid(t *testing.T) {
	m := NewModel(Options{Seed: 2})
	m.containerHeight = 2000
	m.targetContainerHeight = 2000

	if !m.InjectMolecule() {
		t.Fatal("injection failed with free capacity")
	}
	com := m.data.COMPositions[m.NumberOfMolecules()-1]
	if top := m.NormalizedHeight() - physics.WallDistanceThreshold; com.Y > top {
		t.Errorf("injected at y=%f, above the lid margin %f", com.Y, top)
	}
	if com.Y < physics.WallDistanceThreshold {
		t.Errorf("injected at y=%f, inside the floor margin", com.Y)
	}
}

func TestSetCollisionProbability(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	if m.CollisionProbability() != control.DefaultCollisionProbability {
		t.Fatalf("default collision probability %v", m.CollisionProbability())
	}

	tests := []struct {
		in, want float64
	}{
		{0.2, 0.2},
		{2, 1},
		{-1, 0},
		{math.NaN(), 0},
		{0.05, 0.05},
	}
	for _, tt := range tests {
		m.SetCollisionProbability(tt.in)
		if m.CollisionProbability() != tt.want {
			t.Errorf("SetCollisionProbability(%v) = %v, want %v", tt.in, m.CollisionProbability(), tt.want)
		}
		if m.andersen.CollisionProbability != tt.want {
			t.Errorf("thermostat not updated: %v", m.andersen.CollisionProbability)
		}
	}

	if err := m.SetMoleculeType(dynamo.Water); err != nil {
		t.Fatal(err)
	}
	if m.andersen.CollisionProbability != 0.05 {
		t.Errorf("species change lost the collision probability: %v", m.andersen.CollisionProbability)
	}

	m.Reset()
	if m.CollisionProbability() != control.DefaultCollisionProbability {
		t.Errorf("reset kept collision probability %v", m.CollisionProbability())
	}
}

func TestSetAdjustableEpsilon(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	m.SetAdjustableEpsilon(300)
	if m.Epsilon() != atoms.Neon.Epsilon {
		t.Errorf("neon epsilon changed to %v", m.Epsilon())
	}

	if err := m.SetMoleculeType(dynamo.UserDefined); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in, want float64
	}{
		{300, 300},
		{1000, atoms.MaxEpsilon},
		{1, atoms.MinEpsilon},
	}
	for _, tt := range tests {
		m.SetAdjustableEpsilon(tt.in)
		if m.Epsilon() != tt.want {
			t.Errorf("epsilon(%v) = %v, want %v", tt.in, m.Epsilon(), tt.want)
		}
		if got, want := m.calculator.ScaledEpsilon(), tt.want/atoms.Configurable.Epsilon; math.Abs(got-want) > 1e-12 {
			t.Errorf("calculator epsilon = %v, want %v", got, want)
		}
	}
}

func TestSelectThermostat(t *testing.T) {
	tests := []struct {
		name     string
		mode     dynamo.ThermostatMode
		setPoint float64
		measured float64
		exploded bool
		want     dynamo.ThermostatMode
	}{
		{"adaptive stable solid", dynamo.Adaptive, 0.15, 0.16, false, dynamo.Andersen},
		{"adaptive far from set-point", dynamo.Adaptive, 0.15, 0.5, false, dynamo.Isokinetic},
		{"adaptive gas", dynamo.Adaptive, 1.0, 1.0, false, dynamo.Isokinetic},
		{"adaptive at boundary", dynamo.Adaptive, LiquidTemperature, LiquidTemperature, false, dynamo.Andersen},
		{"explicit isokinetic", dynamo.Isokinetic, 0.15, 0.15, false, dynamo.Isokinetic},
		{"explicit andersen", dynamo.Andersen, 1.0, 0.1, false, dynamo.Andersen},
		{"none", dynamo.NoThermostat, 0.15, 1.0, false, dynamo.NoThermostat},
		{"exploded", dynamo.Isokinetic, 0.15, 1.0, true, dynamo.NoThermostat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(Options{Seed: 1})
			m.thermostatMode = tt.mode
			m.temperatureSetPoint = tt.setPoint
			m.exploded = tt.exploded
			m.active = m.selectThermostat(tt.measured)
			if got := m.ActiveThermostat(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAdjustTemperature(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		amount float64
		want   float64
	}{
		{"heat", 0.2, 1, 0.225},
		{"half heat", 0.2, 0.5, 0.2125},
		{"cool", 0.5, -1, 0.475},
		{"slow cooling near zero", 0.1, -1, 0.095},
		{"capped at max", MaxTemperature - 0.01, 1, MaxTemperature},
	}
	for _, tt := range tests {
		m := NewModel(Options{Seed: 1})
		m.temperatureSetPoint = tt.start
		m.heatingCoolingAmount = tt.amount
		m.adjustTemperature()
		if math.Abs(m.TemperatureSetPoint()-tt.want) > 1e-12 {
			t.Errorf("%s: set-point = %v, want %v", tt.name, m.TemperatureSetPoint(), tt.want)
		}
	}

	m := NewModel(Options{Seed: 1})
	m.temperatureSetPoint = m.MinModelTemperature()
	m.heatingCoolingAmount = -1
	m.adjustTemperature()
	if m.TemperatureSetPoint() != m.MinModelTemperature() {
		t.Errorf("cooling went below the species minimum: %v", m.TemperatureSetPoint())
	}
}

func TestLidMovementOverridesThermostat(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	m.data.COMPositions[0].Y = m.NormalizedHeight() - 0.5
	m.calculator.Temperature = 0.42

	m.runThermostat(true)
	if m.TemperatureSetPoint() != 0.42 {
		t.Errorf("set-point = %v, want measured 0.42", m.TemperatureSetPoint())
	}
	if m.ActiveThermostat() != dynamo.NoThermostat {
		t.Errorf("thermostat %s ran while the lid was moving", m.ActiveThermostat())
	}
}

func TestExplosionAndReturnLid(t *testing.T) {
	rec := &recordingNotifier{}
	m := NewModel(Options{Seed: 1, Notifier: rec})
	m.data.COMPositions[0].Y = -0.5

	if err := m.Step(NominalTickTime); err != nil {
		t.Fatal(err)
	}
	if !m.IsExploded() || rec.explosions != 1 {
		t.Fatalf("exploded = %v, notifications = %d", m.IsExploded(), rec.explosions)
	}

	for i := 0; i < 20; i++ {
		if err := m.Step(NominalTickTime); err != nil {
			t.Fatal(err)
		}
		if m.ModelPressure() != 0 {
			t.Fatalf("tick %d: pressure %v after explosion", m.Tick(), m.ModelPressure())
		}
	}
	if m.ContainerHeight() <= InitialContainerHeight {
		t.Error("container should expand after exploding")
	}

	m.ReturnLid()
	if m.IsExploded() || m.ContainerHeight() != InitialContainerHeight {
		t.Errorf("lid not returned: exploded=%v height=%v", m.IsExploded(), m.ContainerHeight())
	}
	w, h := m.NormalizedWidth(), m.NormalizedHeight()
	for i := 0; i < m.NumberOfMolecules(); i++ {
		p := m.data.COMPositions[i]
		if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
			t.Errorf("molecule %d left outside the container at %v", i, p)
		}
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	m := NewModel(Options{Seed: 9})
	first := m.Snapshot()

	if err := m.SetMoleculeType(dynamo.Water); err != nil {
		t.Fatal(err)
	}
	m.SetGravitationalAcceleration(0.3)
	m.SetHeatingCoolingAmount(1)
	for i := 0; i < 5; i++ {
		_ = m.Step(NominalTickTime)
	}

	m.Reset()
	again := m.Snapshot()
	if again.Species != dynamo.Neon || again.Tick != 0 || m.GravitationalAcceleration() != NominalGravitationalAcceleration {
		t.Errorf("reset left species=%s tick=%d gravity=%v", again.Species, again.Tick, m.GravitationalAcceleration())
	}
	if len(again.Atoms) != len(first.Atoms) {
		t.Fatalf("atoms = %d, want %d", len(again.Atoms), len(first.Atoms))
	}
	for i := range first.Atoms {
		if first.Atoms[i] != again.Atoms[i] {
			t.Fatalf("atom %d differs after reset with the same seed", i)
		}
	}
}

func TestSnapshotAtomRadii(t *testing.T) {
	m := NewModel(Options{Seed: 1})
	if err := m.SetMoleculeType(dynamo.Water); err != nil {
		t.Fatal(err)
	}
	s := m.Snapshot()
	if len(s.Atoms) != 3*s.Molecules {
		t.Fatalf("atoms = %d for %d molecules", len(s.Atoms), s.Molecules)
	}
	if s.Atoms[0].Radius != atoms.WaterOxygen.Radius {
		t.Errorf("oxygen radius = %v", s.Atoms[0].Radius)
	}
	if math.Abs(s.Atoms[1].Radius-atoms.Hydrogen.Radius) > 1e-9 {
		t.Errorf("hydrogen radius = %v", s.Atoms[1].Radius)
	}
}
