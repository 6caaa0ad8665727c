// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical integrator interface
//   - [DenseIntegrator]: adaptive integrator with continuous output
//   - [Controller]: drive input interface
//
// # Example
//
//	dyn := oscillator.New(params)
//	integ := integrators.NewRK45()
//	xNew, interp, dtNext, err := integ.StepDense(dyn, x, u, t, dt, tol)
//
// # Thread Safety
//
// Systems and integrators carry no shared mutable state between invocations;
// independent calls may run on any goroutine without coordination.
package dynamo
