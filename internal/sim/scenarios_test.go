package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/statesim/internal/dynamo"
	"github.com/san-kum/statesim/internal/integrators"
)

var _ = Describe("Model", func() {
	var m *Model

	BeforeEach(func() {
		m = NewModel(Options{Seed: 42})
	})

	Context("with a neon solid left alone", func() {
		BeforeEach(func() {
			Expect(m.SetMoleculeType(dynamo.Neon)).To(Succeed())
			Expect(m.SetPhase(dynamo.Solid)).To(Succeed())
		})

		It("stays confined for 100 ticks", func() {
			for i := 0; i < 100; i++ {
				Expect(m.Step(NominalTickTime)).To(Succeed())
				Expect(m.IsExploded()).To(BeFalse(), "exploded at tick %d", m.Tick())
				Expect(m.ModelPressure()).To(BeNumerically("<", integrators.ExplosionPressure))
				Expect(m.ModelPressure()).To(BeNumerically(">=", 0))
			}
		})

		It("never loses safe molecules", func() {
			prev := m.data.NumberOfSafeMolecules()
			for i := 0; i < 30; i++ {
				if i%3 == 0 {
					m.InjectMolecule()
				}
				Expect(m.Step(NominalTickTime)).To(Succeed())
				safe := m.data.NumberOfSafeMolecules()
				Expect(safe).To(BeNumerically(">=", prev))
				Expect(safe).To(BeNumerically("<=", m.NumberOfMolecules()))
				prev = safe
			}
		})
	})

	Context("when heated at full power", func() {
		It("raises the set-point monotonically until it reaches the gas temperature", func() {
			Expect(m.SetPhase(dynamo.Solid)).To(Succeed())
			m.SetHeatingCoolingAmount(1)

			prev := m.TemperatureSetPoint()
			reached := false
			for i := 0; i < 200 && !reached; i++ {
				Expect(m.Step(NominalTickTime)).To(Succeed())
				Expect(m.TemperatureSetPoint()).To(BeNumerically(">=", prev))
				prev = m.TemperatureSetPoint()
				reached = prev >= GasTemperature-1e-9
			}
			Expect(reached).To(BeTrue(), "set-point stalled at %v", prev)
		})
	})

	Context("when the data set is full", func() {
		It("refuses further injections without touching the data", func() {
			for m.NumberOfRemainingSlots() > 0 {
				Expect(m.InjectMolecule()).To(BeTrue())
			}
			n := m.NumberOfMolecules()
			atoms := m.data.NumberOfAtoms()

			Expect(m.InjectMolecule()).To(BeFalse())
			Expect(m.NumberOfMolecules()).To(Equal(n))
			Expect(m.data.NumberOfAtoms()).To(Equal(atoms))
			Expect(m.data.AddMolecule(m.updater.AtomPositionsAt(m.data.COMPositions[0], 0), m.data.COMPositions[0], m.data.Velocities[0], 0)).To(BeFalse())
		})
	})

	Context("when a particle passes through the floor", func() {
		It("explodes and zeroes the pressure", func() {
			m.data.COMPositions[3].Y = -0.25
			Expect(m.Step(NominalTickTime)).To(Succeed())

			Expect(m.IsExploded()).To(BeTrue())
			Expect(m.ModelPressure()).To(BeZero())
			Expect(m.PressureInAtmospheres()).To(BeZero())
		})

		It("stops every thermostat", func() {
			m.data.COMPositions[3].Y = -0.25
			Expect(m.Step(NominalTickTime)).To(Succeed())
			Expect(m.ActiveThermostat()).To(Equal(dynamo.NoThermostat))
		})
	})

	DescribeTable("Kelvin output for each species",
		func(s dynamo.Species) {
			Expect(m.SetMoleculeType(s)).To(Succeed())
			m.SetTemperature(MinTemperature)
			if MinTemperature < m.MinModelTemperature() {
				Expect(m.TemperatureInKelvin()).To(BeZero())
			}
			m.SetTemperature(GasTemperature)
			Expect(m.TemperatureInKelvin()).To(BeNumerically(">", 0))
		},
		Entry("neon", dynamo.Neon),
		Entry("argon", dynamo.Argon),
		Entry("oxygen", dynamo.DiatomicOxygen),
		Entry("water", dynamo.Water),
		Entry("user defined", dynamo.UserDefined),
	)

	It("falls back to solid for an unknown phase", func() {
		m.SetTemperature(GasTemperature)
		_ = m.SetPhase(dynamo.Phase(99))
		Expect(m.TemperatureSetPoint()).To(Equal(SolidTemperature))
	})
})
