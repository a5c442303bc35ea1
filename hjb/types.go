// Package hjb defines the knobs of the backward solver.
package hjb

import (
	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hamiltonian"
	"github.com/katalvlaran/meanfield/hft"
)

// Solver defaults.
const (
	// DefaultMaxInner bounds the inner fixed-point iterations per step.
	DefaultMaxInner = 4
	// DefaultTol is the infinity-norm convergence tolerance of the inner loop.
	DefaultTol = 1e-8
)

// Lax-Friedrichs dissipation guards.
const (
	// dissipationFloor is the smallest meaningful gradient magnitude; below
	// it the fallback coefficient applies.
	dissipationFloor = 1e-8
	// dissipationFallback replaces degenerate or non-finite bounds.
	dissipationFallback = 1e-3
)

// Options configures the backward solver.
//
// Fields:
//   - MaxInner        — inner fixed-point iterations per step (≥ 1; zero
//     selects DefaultMaxInner).
//   - Tol             — inner convergence tolerance (infinity norm); zero
//     selects DefaultTol.
//   - Eta             — optional dynamic execution-cost feedback.
//   - MaxDissipation  — cap on the Lax-Friedrichs dissipation coefficient;
//     ≤ 0 leaves it bounded only by the local gradient magnitude.
//   - AlphaCap        — clamp on |α| after each control evaluation; ≤ 0 off.
//   - ValueCap        — clamp on |U| after each linear solve, a safety valve
//     against blow-up; ≤ 0 off.
//   - ValueRelaxation — fraction of the new candidate blended toward the
//     previous inner iterate; ≤ 0 off, values > 1 are treated as 1.
//   - Terminal        — optional terminal payoff overriding γ_T·x².
type Options struct {
	MaxInner        int
	Tol             float64
	Eta             hamiltonian.EtaCallback
	MaxDissipation  float64
	AlphaCap        float64
	ValueCap        float64
	ValueRelaxation float64
	Terminal        []float64
}

// DefaultOptions returns the plain monotone scheme with no safety caps.
func DefaultOptions() Options {
	return Options{MaxInner: DefaultMaxInner, Tol: DefaultTol}
}

// Solver bundles a grid, parameters, and options for repeated backward
// sweeps (one per Picard iteration).
type Solver struct {
	Grid   *grid.Grid1D
	Params hft.Params
	Opts   Options
}

// Solve runs the backward sweep over the given density trajectory.
func (s *Solver) Solve(density [][]float64) ([][]float64, error) {
	return SolveBackward(density, s.Grid, s.Params, &s.Opts)
}
