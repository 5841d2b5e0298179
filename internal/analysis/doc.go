// Package analysis summarizes the traces recorded by a run.
//
//   - [Series] pulls one named column out of a run's samples
//   - [Summarize] reports mean, spread and range via gonum/stat
//   - [PowerSpectrum] and [DominantFrequency] look for oscillation in a
//     trace, such as a crystal ringing after the lid moves
//   - [PhaseDiagram] pairs temperature with pressure for a scatter plot
//   - [TemperatureSweep] runs one model per set-point and records the
//     equilibrium pressure, tracing the equation of state
package analysis
