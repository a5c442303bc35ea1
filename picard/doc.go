// Package picard couples the backward HJB and forward Fokker-Planck solvers
// through a damped fixed-point iteration on the density trajectory.
//
// What:
//
//   - Solve — the outer driver: tile the initial density, alternate the two
//     solvers, blend the raw density update into the previous estimate with
//     an adaptive mixing weight, and track convergence.
//   - ControlTrajectory — the optimal control recovered from the converged
//     value/density pair.
//   - ControlMetrics / SaveMetrics — scalar summaries of the control field
//     (mean magnitude, dispersion, a liquidity proxy in (0, 1]) and an
//     optional JSON dump.
//
// Algorithm outline (per iteration):
//  1. HJB backward over the current density estimate → value trajectory.
//  2. FP forward over that value trajectory → raw density update.
//  3. Blend: M ← mix·raw + (1−mix)·previous. If the resulting L2 error does
//     not improve on the previous accepted error by the stagnation margin
//     and the weight is above its floor, halve the weight and re-blend —
//     the HJB/FP pass is NOT repeated, only the blend.
//  4. At the floor with a still-worsening error the driver stops in the
//     stalled state, returning the last accepted density (with the current
//     iteration's value trajectory) as a degraded-but-usable result.
//  5. Otherwise accept: record the absolute error (L2 of the density
//     delta), the relative error (normalized by the new density's norm),
//     and the weight actually used; stop once the error falls below the
//     absolute tolerance or, when enabled, the relative one.
//
// The mixing weight persists across iterations: once halved it stays small,
// trading speed for monotone-ish error decay.
//
// Stalling is a reported state, not an error — callers must check
// Result.Stalled. Validation failures and numerical divergence from the
// inner solvers propagate unchanged.
package picard
