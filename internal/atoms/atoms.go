// Package atoms holds the physical constants of every atom the engine can
// place in a molecule.
package atoms

// Record is an immutable description of one atom species. Radius is in
// picometers, Mass in atomic mass units and Epsilon is the Lennard-Jones
// well depth expressed as ε/k in Kelvin.
type Record struct {
	Name    string
	Radius  float64
	Mass    float64
	Epsilon float64
}

// Diameter returns twice the radius.
func (r Record) Diameter() float64 { return r.Radius * 2 }

var (
	Neon         = Record{Name: "neon", Radius: 154, Mass: 20.1797, Epsilon: 32.8}
	Argon        = Record{Name: "argon", Radius: 181.5, Mass: 39.948, Epsilon: 111.84}
	Oxygen       = Record{Name: "oxygen", Radius: 181, Mass: 15.9994, Epsilon: 113.27}
	WaterOxygen  = Record{Name: "water-oxygen", Radius: 181, Mass: 15.9994, Epsilon: 200}
	Hydrogen     = Record{Name: "hydrogen", Radius: 120, Mass: 1.008, Epsilon: 15.2}
	Configurable = Record{Name: "configurable", Radius: 175, Mass: 25, Epsilon: 100}
)

// Interaction strength limits for the configurable atom.
const (
	MinEpsilon = 20.0
	MaxEpsilon = 450.0
)
