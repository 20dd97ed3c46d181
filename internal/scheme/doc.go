// Package scheme implements the interchangeable advection discretizations:
//
//   - [Upwind]: first-order donor cell, monotone, diffusive
//   - [LaxWendroff]: second-order MacCormack predictor-corrector, with an
//     optional local-bounds limiter
//   - [SemiLagrangian]: backward trajectory trace through the interpolator,
//     stable at any time step
//
// Every scheme reads the frozen source buffer and writes the destination
// buffer exactly once per cell, so the engine can expose the update as a
// pure function of (source, velocity, dt) and swap buffers afterwards.
// Cell loops fan out over compute.ParallelFor; chunk boundaries never
// change results because no worker reads another worker's output range.
//
// # Stability
//
// Upwind and Lax-Wendroff require the Courant number to stay at or below
// one and report that through CFLBound. The engine enforces the bound by
// sub-stepping; the schemes themselves accept any positive dt.
package scheme
