// Package fp solves the forward Fokker-Planck equation of the Mean Field
// Game with a conservative explicit-advection / implicit-diffusion scheme.
//
// What:
//
//   - VelocityFromValue — the transport velocity at one time level, derived
//     from the value function's central gradient through the closed-form
//     control law. The mean-field average is fixed at zero and no eta
//     feedback applies here, decoupling this pass from the HJB solver's own
//     inner mean-field loop.
//   - Step — one forward step: Godunov upwind divergence of the flux m·v,
//     then the implicit diffusion solve (I − dt·nu·L)·m' = m + dt·div,
//     then projection onto the probability simplex.
//   - SolveForward — the full sweep from the initial density to the horizon;
//     the implicit system is assembled once and reused.
//   - Solver — a thin reusable wrapper over SolveForward.
//
// Guarantees:
//
//   - The density at every level is non-negative and integrates to one
//     within floating-point tolerance, by construction of the projection
//     step rather than by numerical luck.
//
// Errors:
//
//   - ErrShapeMismatch: vectors or trajectories disagree with the grid.
//   - ops.ErrDegenerateMass: the projection received a density whose
//     clipped mass vanished (a diverged velocity field upstream).
package fp
