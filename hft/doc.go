// Package hft holds the parameter set of the high-frequency trading Mean
// Field Game and the Gaussian initial density built from it.
//
// What:
//
//   - Params collects the model coefficients: diffusion intensity nu,
//     running inventory penalty phi, terminal penalty gamma_T, baseline and
//     flow-sensitive execution-cost coefficients eta0/eta1, and the moments
//     of the initial inventory distribution (m0_mean, m0_std).
//   - InitialDensity samples a normalized Gaussian on a spatial grid,
//     guaranteeing non-negativity and unit discrete mass.
//
// Why:
//
//   - Agents trade to unwind inventory against a population-dependent
//     execution cost; every solver stage consumes exactly this record, so
//     it lives in a leaf package with no solver dependencies. In particular
//     hft never imports hamiltonian: the eta-feedback strategies that need
//     both live on the hamiltonian side, keeping the dependency acyclic.
//
// Errors:
//
//   - ErrNonPositiveStd: m0_std ≤ 0.
//   - ErrNegativeNu: nu < 0.
//   - ErrZeroMass: the Gaussian evaluated to zero total mass on the grid.
package hft
