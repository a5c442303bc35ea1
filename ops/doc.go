// Package ops provides the finite-difference operators shared by the HJB and
// Fokker-Planck solvers.
//
// What:
//
//   - First-order forward/backward differences and second-order central
//     stencils on uniform grids, with shape-preserving boundary fallbacks.
//   - A sparse tridiagonal Laplacian honoring the grid's boundary kind:
//     under Neumann conditions the constant vector lies in its null space
//     (no-flux); under Dirichlet conditions boundary rows and columns are
//     zeroed except the diagonal, pinning boundary values.
//   - Assembly of the implicit-diffusion system I − dt·nu·L as a
//     gonum mat.Tridiag, solvable directly by both time steppers.
//   - Godunov upwind divergence of an advective flux m·v that conserves
//     discrete mass exactly (the mean residual is subtracted).
//   - Projection onto the probability simplex: clip negatives, renormalize
//     the discrete integral to one, fail on degenerate mass.
//
// Why:
//
//   - Both equations need the same discrete calculus; keeping it in one
//     leaf package decouples numerics from model specifics.
//
// Complexity: every operator is O(nx) time; the tridiagonal solve performed
// on the assembled system is O(nx) as well.
//
// Errors:
//
//   - ErrShortVector: an operator received fewer than two samples.
//   - ErrNonPositiveStep: dx (or dt) is not strictly positive.
//   - ErrShapeMismatch: coupled vectors differ in length.
//   - ErrDegenerateMass: total mass after clipping is below tolerance.
//   - ErrNegativeDiffusion: a negative diffusion coefficient was supplied.
package ops
