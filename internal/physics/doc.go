// Package physics provides the interaction model of the states-of-matter
// engine.
//
// Everything here is a pure function of its inputs or of the molecule data
// set it is handed:
//
//   - [WallForce]: truncated Lennard-Jones repulsion of the container walls
//   - [PairForce]: Lennard-Jones force and potential between two atoms
//   - [Geometry]: rigid bond geometry of mono-, di- and triatomic molecules
//   - [PositionUpdater]: rebuilds atom positions from center of mass and angle
//
// All distances are normalized so that the reference atom diameter is 1.
package physics
