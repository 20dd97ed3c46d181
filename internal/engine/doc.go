// Package engine drives advection simulations step by step.
//
//   - [Integrator]: owns a grid, a scheme, boundaries and a velocity field,
//     and advances them through an explicit phase machine
//   - [Clock]: per-integrator elapsed time and step counters
//   - [Snapshot]: read-only view of the current solution between steps
//   - [Metric], [Observer]: per-step instrumentation hooks
//
// # Phases
//
// An Integrator starts Idle, becomes Ready after Configure, passes through
// Stepping inside each step call and returns to Ready. Stop is terminal.
// Failed steps report their error and leave the solution buffers exactly
// as they were; no partial update is ever observable.
//
// # Time stepping
//
// Step takes an explicit dt. For schemes with a Courant stability bound a
// larger request is silently split into equal sub-steps inside the bound;
// the semi-Lagrangian scheme passes any dt through whole. StepAuto derives
// dt from the configured Courant number and the velocity field, clamped to
// MaxStep, and refuses a zero velocity field with ErrDegenerateVelocity.
//
// Each Integrator owns its clock, so independent simulations advance
// independently, which the side-by-side scheme comparison relies on.
package engine
