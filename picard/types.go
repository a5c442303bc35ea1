// Package picard defines the driver's options, result, and metrics records.
package picard

import (
	"errors"

	"github.com/katalvlaran/meanfield/hamiltonian"
	"github.com/katalvlaran/meanfield/hjb"
)

// ErrShapeMismatch indicates trajectories that do not match each other or
// the grid discretization.
var ErrShapeMismatch = errors.New("picard: trajectories must share the grid discretization")

// Driver defaults, mirrored by DefaultOptions.
const (
	DefaultMaxIter       = 200
	DefaultTol           = 1e-8
	DefaultMix           = 0.3
	DefaultMixMin        = 1e-4
	DefaultMixDecay      = 0.5
	DefaultStagnationTol = 0.02
)

// normEps keeps the relative error defined when the density norm vanishes.
const normEps = 1e-12

// ConvergenceCallback observes every accepted iteration.
type ConvergenceCallback func(iteration int, errorAbs float64)

// Options configures the Picard driver.
//
// Fields:
//   - MaxIter        — outer iteration budget (zero selects the default).
//   - Tol            — absolute convergence tolerance on the L2 density delta.
//   - RelativeTol    — relative tolerance; ≤ 0 disables the relative check.
//   - Mix            — initial mixing weight in (0, 1].
//   - MixMin         — floor of the mixing weight.
//   - MixDecay       — multiplicative decay applied while backtracking.
//   - StagnationTol  — required fractional improvement per iteration before
//     the blend is accepted without backtracking.
//   - InitialDensity — optional override of the Gaussian initial condition.
//   - HJB            — inner backward-solver knobs (caps enabled by default).
//   - Eta            — optional dynamic execution-cost feedback, forwarded
//     to the HJB solver and the final control trajectory.
//   - Callback       — optional per-iteration observer.
//   - MetricsPath    — optional path for a JSON metrics dump after the run.
type Options struct {
	MaxIter        int
	Tol            float64
	RelativeTol    float64
	Mix            float64
	MixMin         float64
	MixDecay       float64
	StagnationTol  float64
	InitialDensity []float64
	HJB            hjb.Options
	Eta            hamiltonian.EtaCallback
	Callback       ConvergenceCallback
	MetricsPath    string
}

// DefaultOptions returns the damped configuration used across examples:
// the HJB safety valves (dissipation cap 1, |α| ≤ 1, |U| ≤ 50, relaxation
// 0.5) are enabled so early iterations cannot blow up.
func DefaultOptions() Options {
	hjbOpts := hjb.DefaultOptions()
	hjbOpts.MaxDissipation = 1.0
	hjbOpts.AlphaCap = 1.0
	hjbOpts.ValueCap = 50.0
	hjbOpts.ValueRelaxation = 0.5

	return Options{
		MaxIter:       DefaultMaxIter,
		Tol:           DefaultTol,
		Mix:           DefaultMix,
		MixMin:        DefaultMixMin,
		MixDecay:      DefaultMixDecay,
		StagnationTol: DefaultStagnationTol,
		HJB:           hjbOpts,
	}
}

// Metrics summarizes a completed run. The JSON field names follow the
// artifact layout consumed by downstream reporting.
type Metrics struct {
	MeanAbsAlpha       float64   `json:"mean_abs_alpha"`
	StdAlpha           float64   `json:"std_alpha"`
	LiquidityProxy     float64   `json:"liquidity_proxy"`
	FinalError         float64   `json:"final_error"`
	FinalErrorRelative float64   `json:"final_error_relative"`
	Iterations         int       `json:"iterations"`
	MixInitial         float64   `json:"mix_initial"`
	MixFinal           float64   `json:"mix_final"`
	MixMin             float64   `json:"mix_min"`
	MixHistory         []float64 `json:"mix_history"`
	RelativeErrors     []float64 `json:"relative_errors"`
	Stalled            bool      `json:"stalled"`
}

// Result carries the converged (or last accepted) trajectories plus the full
// convergence history of the run.
type Result struct {
	Value   [][]float64 // value-function trajectory, (nt+1) × nx
	Density [][]float64 // density trajectory, (nt+1) × nx
	Control [][]float64 // optimal control trajectory, (nt+1) × nx

	Errors         []float64 // accepted absolute errors, append-only
	RelativeErrors []float64 // accepted relative errors
	MixHistory     []float64 // mixing weight actually used per iteration
	Iterations     int       // number of accepted iterations
	Stalled        bool      // terminal degraded state, set once

	Metrics Metrics
}
