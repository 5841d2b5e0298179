// Package dynamo provides the shared vocabulary of the states-of-matter engine.
//
// It defines the enumerations every other package switches on and the
// sentinel errors returned by the public model operations:
//
//   - [Species]: the substance being simulated (neon, argon, oxygen, water, user-defined)
//   - [Phase]: the starting configuration requested for the particles
//   - [ThermostatMode]: which temperature control policy runs each sub-step
//
// # Errors
//
// Invalid-argument failures wrap one of the sentinel errors so callers can
// use errors.Is:
//
//	if err := model.SetMoleculeType(s); errors.Is(err, dynamo.ErrInvalidSpecies) {
//	    // state was left unmodified
//	}
//
// # Thread Safety
//
// Nothing in the engine is safe for concurrent mutation. A model is stepped
// from one goroutine and collaborators read snapshots between steps.
package dynamo
