// Package meanfield solves one-dimensional Mean Field Games: a backward
// Hamilton-Jacobi-Bellman equation for individually optimal behavior coupled
// to a forward Fokker-Planck equation for the population density, closed by
// Picard (fixed-point) iteration and, optionally, an endogenous
// market-clearing price path.
//
// 🚀 What is meanfield?
//
//	A numerical solver stack for finite-horizon MFG systems on uniform grids:
//		• Grid: space-time discretization with Neumann/Dirichlet semantics
//		• Operators: monotone stencils, sparse Laplacian, upwind divergence
//		• Hamiltonian: closed-form control law with mean-field feedback
//		• HJB: monotone (Lax-Friedrichs) backward scheme, implicit diffusion
//		• FP: conservative forward scheme preserving positivity and mass
//		• Picard: adaptive damping, stagnation detection, metrics
//		• Price: per-step bisection matching aggregate flow to supply
//
// ✨ Why choose meanfield?
//
//   - Invariants by construction – densities stay non-negative with unit mass
//   - Monotone schemes – stable gradients even for kinked value functions
//   - Degraded-but-usable results – stalling is a reported state, not a crash
//   - Built on gonum – sparse tridiagonal solves, vector kernels, statistics
//
// The subpackages, leaves first:
//
//	grid/        — Grid1D value object, boundary application, CFL heuristics
//	ops/         — finite differences, Laplacian, divergence, projection
//	hft/         — model parameters and the Gaussian initial density
//	hamiltonian/ — control law, effective execution cost, quadratic form
//	hjb/         — backward value-function solver
//	fp/          — forward density solver
//	picard/      — coupling driver, convergence history, metrics
//	price/       — market-clearing root finder
//	cmd/mfgrun/  — YAML-driven runner binary (run + sweep)
//
// Dive into README.md-style doc comments inside each package for the exact
// discretizations, error taxonomy, and tolerances.
//
//	go get github.com/katalvlaran/meanfield
package meanfield
