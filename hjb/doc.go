// Package hjb solves the backward Hamilton-Jacobi-Bellman equation of the
// Mean Field Game with a monotone semi-implicit scheme.
//
// What:
//
//   - TerminalCondition — the terminal payoff U_T(x) = γ_T·x².
//   - Step — one backward time step: a bounded inner fixed point resolving
//     the control's implicit dependence on the value gradient it is derived
//     from, then an implicit diffusion solve.
//   - SolveBackward — the full sweep from t = T down to t = 0 given a
//     density trajectory; the implicit system I − dt·nu·L is assembled once
//     and reused across all steps.
//   - Solver — a thin reusable wrapper over SolveBackward.
//
// Algorithm outline (per step, n = nt−1 … 0):
//  1. Compute a monotone gradient with a Lax-Friedrichs blend of forward and
//     backward stencils; the dissipation coefficient is bounded by the local
//     maximum gradient magnitude (optionally capped by MaxDissipation).
//  2. Derive the control α* (optionally clamped to AlphaCap), update the
//     mean-field average, rederive α*, and fix the execution cost η.
//  3. Evaluate the Hamiltonian and solve (I − dt·nu·L)·U = U_next + dt·H.
//  4. Optionally clamp the candidate (ValueCap) and relax it toward the
//     previous inner iterate (ValueRelaxation) before the next pass.
//  5. Stop when ‖ΔU‖∞ < Tol or MaxInner passes were used.
//
// The monotone stencil and implicit diffusion keep the discretization stable
// independent of the sign of the velocity field. Any non-finite intermediate
// value is fatal for the step and surfaces as ErrNonFinite.
//
// Errors:
//
//   - ErrShapeMismatch: value/density vectors or trajectories disagree with
//     the grid discretization.
//   - ErrNonFinite: numerical divergence inside an inner iteration.
package hjb
