// Package grid provides the uniform one-dimensional space-time grid shared
// by the HJB and Fokker-Planck solvers.
//
// What:
//
//   - Grid1D joins a spatial interval [XMin, XMax] with NX nodes and a time
//     horizon [0, Horizon] with NT steps (NT+1 time levels).
//   - Both axes are strictly increasing and equally spaced; DX and DT are
//     derived once at construction and never change.
//   - A Grid1D carries its boundary-condition kind (Neumann or Dirichlet)
//     and can enforce it on any vector of length NX.
//   - CFL heuristics estimate diffusion/advection time-step limits so that
//     callers can warn before launching an unstable run.
//
// Why:
//
//   - Conservative finite-difference schemes need one immutable source of
//     truth for spacing and boundary semantics; every solver stage holds the
//     same *Grid1D by reference.
//
// Boundary semantics:
//
//   - Dirichlet sets the endpoint values directly.
//   - Neumann enforces a first-order one-sided gradient at each endpoint:
//     v[0] = v[1] − g_left·dx and v[n−1] = v[n−2] + g_right·dx.
//
// Errors:
//
//   - ErrTooFewNodes: NX < 2.
//   - ErrTooFewSteps: NT < 1.
//   - ErrInvertedBounds: XMax ≤ XMin.
//   - ErrNonPositiveHorizon: Horizon ≤ 0.
//   - ErrUnknownBoundary: boundary kind outside {Neumann, Dirichlet}.
//   - ErrVectorLength: a vector does not match the spatial discretization.
package grid
