// Package scenario describes complete simulation setups and turns them
// into running integrators.
//
//   - [Scenario] is the yaml-serializable description: grid, boundaries,
//     initial condition, flow, scheme and stepping parameters.
//   - [Presets] is the built-in catalog; [Get] hands out mutable copies.
//   - [Modulator] rescales the base flow over time for unsteady runs.
//
// # Determinism
//
// Building a scenario is reproducible: the same description (including
// the seed, for random initial data) always yields bit-identical state,
// so two runs of the same scenario can be compared exactly.
package scenario
