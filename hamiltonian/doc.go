// Package hamiltonian implements the quadratic Hamiltonian of the trading
// Mean Field Game and its closed-form control law with mean-field feedback.
//
// What:
//
//   - AlphaStar   — the optimal control α* = −p/η for momentum p.
//   - Value       — the Hamiltonian H(p, x) = ½·p²/η + φ·x².
//   - RunningCost — the running cost L(x, α) = ½·η·α² + φ·x².
//   - EffectiveEta / MeanAlpha — the population-dependent execution cost
//     η = η0 + η1·|mean α| and the density-weighted control mean feeding it.
//   - EtaCallback — a pluggable pure function (density, control, params) → η
//     refining the execution cost from the local density and the previous
//     control iterate. EtaFromFlow is the reference implementation.
//   - Quadratic   — the concrete Hamiltonian object exposing the control-law
//     contract (Value, Control, UpdateMeanAlpha, FluxBound).
//
// Why:
//
//   - The control depends on the execution cost, which itself depends on the
//     aggregate control. AlphaStar resolves that implicit dependence with a
//     bounded number of fixed-point sub-iterations when a callback is given.
//
// Design:
//
//   - One fixed mathematical form now, extensible later: Quadratic is the
//     single concrete Hamiltonian; a future variant would be a tagged kind
//     dispatched by the model, not an interface hierarchy.
//   - η must stay strictly positive everywhere. A callback returning a
//     non-positive value falls back to η0 inside the control-law feedback
//     loop; everywhere else a non-positive η is ErrNonPositiveEta.
//
// Errors:
//
//   - ErrShapeMismatch: coupled vectors differ in length.
//   - ErrNonPositiveStep: dx ≤ 0 in the weighted mean.
//   - ErrDegenerateMass: total density mass too small for a meaningful mean.
//   - ErrNonPositiveEta: the execution cost lost positivity.
package hamiltonian
