// Package calculation resolves operation tokens and records calculations.
//
// The registry is fixed at init: every operation is reachable through its
// canonical name and its aliases, matched case-insensitively. New builds an
// immutable Calculation without running it; Compute is a separate step.
// History is a session log of calculations and is not safe for concurrent use.
package calculation
