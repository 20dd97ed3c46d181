// Package analysis provides diagnostics for finished or running fields.
//
//   - [PowerSpectrum]: normalized Fourier magnitudes of one field line
//   - [MidLine]: the probe line through the domain midpoint
//   - [PerturbationGrowth]: separation growth rate of two lockstep runs
//
// # Detecting instability
//
// A positive growth rate means the discretization amplifies
// perturbations at the chosen step size:
//
//	rate, err := analysis.PerturbationGrowth(ctx, scn, 1e-8)
//	if err == nil && rate > 0 {
//	    // Unstable at this CFL number
//	}
package analysis
