// Package experiment drives batches of runs for side-by-side study.
//
//   - [Execute] runs one scenario to completion with the standard metrics.
//   - [Compare] races every scheme on the same scenario.
//   - [Sweep] scans one parameter across a range.
//   - [RunTrials] runs a randomized ensemble and counts stable members.
//   - [TuneCFL] hunts for the largest stable CFL number.
//
// Batch drivers never abort on a failing member: each outcome carries its
// own error so a table can show which configurations broke and how.
package experiment
