// Package price computes the endogenous price path that clears aggregate
// trading flow against an exogenous supply schedule.
//
// What:
//
//   - AlphaField — the caller's pricing model: given a time index and a
//     candidate price, return the control profile of the population on the
//     spatial grid.
//   - SolveClearing — for every time level, find the price P_n at which the
//     density-weighted aggregate flow ∫ α(x; P_n)·m_n(x) dx matches the
//     supply target s_n. Each level is solved independently by bisection on
//     a fresh bracket.
//
// Why:
//
//   - The Picard driver treats the price as exogenous; layering the clearing
//     search on top keeps the fixed-point iteration untouched while still
//     supporting endogenous-price experiments.
//
// Bracketing: when the imbalance has the same sign at both bracket ends the
// interval is widened symmetrically (each expansion adds the current width
// on both sides) up to five times; if no sign change is found the endpoint
// with the smaller absolute imbalance is accepted as the price for that
// level and the search moves on.
//
// Complexity: O(nt · maxIter · C) where C is the cost of one AlphaField
// evaluation, typically O(nx).
//
// Errors:
//
//   - ErrScheduleMismatch: supply and density trajectories differ in length.
//   - ErrFieldShape: AlphaField returned a profile that does not match the
//     density's spatial resolution.
//   - ErrNonPositiveStep: the spatial step is not strictly positive.
package price
