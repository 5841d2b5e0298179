// Package control provides thermostats that drive a molecule data set
// toward a target model temperature.
//
//   - [Isokinetic]: rescales every velocity and rotation rate so the
//     measured temperature matches the target instantly
//   - [Andersen]: resamples individual molecules from the target
//     Maxwell distribution with a fixed per-step probability
//   - [None]: leaves the data set untouched
//
// # Usage
//
//	iso := control.NewIsokinetic(data)
//	iso.Adjust(setPoint) // once per sub-step
//
// Thermostats never run concurrently with the integrator; the model
// calls at most one of them per sub-step.
package control
