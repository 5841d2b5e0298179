package dynamo

import (
	"fmt"
	"strings"
)

// Species identifies the substance being simulated.
type Species int

const (
	Neon Species = iota
	Argon
	DiatomicOxygen
	Water
	UserDefined
)

var speciesNames = map[Species]string{
	Neon:           "neon",
	Argon:          "argon",
	DiatomicOxygen: "oxygen",
	Water:          "water",
	UserDefined:    "user",
}

func (s Species) String() string {
	if name, ok := speciesNames[s]; ok {
		return name
	}
	return fmt.Sprintf("species(%d)", int(s))
}

// Valid reports whether s is one of the supported species.
func (s Species) Valid() bool {
	_, ok := speciesNames[s]
	return ok
}

// AtomsPerMolecule returns 1, 2 or 3 for the species.
func (s Species) AtomsPerMolecule() int {
	switch s {
	case DiatomicOxygen:
		return 2
	case Water:
		return 3
	default:
		return 1
	}
}

// ParseSpecies resolves a case-insensitive species name.
func ParseSpecies(name string) (Species, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon", "ne":
		return Neon, nil
	case "argon", "ar":
		return Argon, nil
	case "oxygen", "o2", "diatomic_oxygen":
		return DiatomicOxygen, nil
	case "water", "h2o":
		return Water, nil
	case "user", "adjustable", "user_defined":
		return UserDefined, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSpecies, name)
}

// Phase is a starting configuration for the particles.
type Phase int

const (
	Solid Phase = iota
	Liquid
	Gas
)

func (p Phase) String() string {
	switch p {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ParsePhase resolves a case-insensitive phase name.
func ParsePhase(name string) (Phase, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "solid":
		return Solid, nil
	case "liquid":
		return Liquid, nil
	case "gas":
		return Gas, nil
	}
	return Solid, fmt.Errorf("%w: %q", ErrInvalidPhase, name)
}

// ThermostatMode selects the temperature control policy.
type ThermostatMode int

const (
	NoThermostat ThermostatMode = iota
	Isokinetic
	Andersen
	Adaptive
)

func (m ThermostatMode) String() string {
	switch m {
	case NoThermostat:
		return "none"
	case Isokinetic:
		return "isokinetic"
	case Andersen:
		return "andersen"
	case Adaptive:
		return "adaptive"
	}
	return fmt.Sprintf("thermostat(%d)", int(m))
}

// Valid reports whether m is a recognized mode.
func (m ThermostatMode) Valid() bool {
	return m >= NoThermostat && m <= Adaptive
}

// ParseThermostatMode resolves a case-insensitive thermostat name.
func ParseThermostatMode(name string) (ThermostatMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "off":
		return NoThermostat, nil
	case "isokinetic":
		return Isokinetic, nil
	case "andersen":
		return Andersen, nil
	case "adaptive", "":
		return Adaptive, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidThermostat, name)
}
