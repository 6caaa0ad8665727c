// Package control provides drive inputs for simulated systems.
//
// Drives implement the [dynamo.Controller] interface to compute the
// external force applied at each evaluation time:
//
//   - [Sine]: single-tone sinusoidal drive F0*sin(wt)
//   - [None]: zero drive (free response)
package control
