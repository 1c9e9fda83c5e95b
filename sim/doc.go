// Package sim provides the Monte Carlo core of the CDet nearest-x simulator.
//
// # Reading Guide
//
// Start with these files:
//   - geometry.go: paddle index to x-coordinate mapping for one layer
//   - nearest.go: nearest-value lookup in a sorted hit list
//   - simulator.go: the event loop and matching
//
// # Data Flow
//
// Each event draws nL1 Layer-1 and nL2 Layer-2 hits (hits.go) from its own
// random stream (rng.go). Layer-2 hits are sorted and every Layer-1 hit is
// paired with its nearest Layer-2 hit. Pairs are folded into Metrics
// (metrics.go): a joint (x_L1, x_L2) histogram, an x_L1 - x_L2 histogram
// and per-event same-paddle fractions.
//
// Rendering is not done here. Report (report.go) copies the aggregates into
// plain structs that the CLI serializes for external plotting.
package sim
