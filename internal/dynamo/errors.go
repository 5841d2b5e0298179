package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for model operations.
var (
	// ErrInvalidSpecies indicates a molecule type the engine cannot simulate.
	ErrInvalidSpecies = errors.New("dynamo: unsupported molecule species")

	// ErrInvalidThermostat indicates an unrecognized thermostat mode.
	ErrInvalidThermostat = errors.New("dynamo: unsupported thermostat mode")

	// ErrInvalidPhase indicates an unrecognized phase name.
	ErrInvalidPhase = errors.New("dynamo: unsupported phase")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrCapacity indicates the data set has no room for another molecule.
	ErrCapacity = errors.New("dynamo: molecule capacity exhausted")

	// ErrNoPlacement indicates no open location could be found for a molecule.
	ErrNoPlacement = errors.New("dynamo: no open location for molecule")
)

// PlacementError records how many molecules a phase change managed to place.
type PlacementError struct {
	Phase     Phase
	Requested int
	Placed    int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s: %s placed %d of %d", ErrNoPlacement, e.Phase, e.Placed, e.Requested)
}

func (e *PlacementError) Unwrap() error {
	return ErrNoPlacement
}
