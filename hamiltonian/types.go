// Package hamiltonian defines the callback contract and evaluation options
// for the quadratic control law.
package hamiltonian

import "github.com/katalvlaran/meanfield/hft"

// EtaCallback refines the execution-cost coefficient from the local density
// and the previous control iterate. Implementations must be pure; the
// returned coefficient is expected to be strictly positive.
type EtaCallback func(density, control []float64, p hft.Params) (float64, error)

// DefaultEtaIterations is the number of fixed-point sub-iterations used by
// AlphaStar to resolve the control/execution-cost feedback.
const DefaultEtaIterations = 3

// massTol guards the density-weighted mean against division by near-zero mass.
const massTol = 1e-12

// ControlOptions configures AlphaStar.
//
// Fields:
//   - MeanAlpha  — current estimate of the population-average control; zero
//     when unknown (the static feedback then reduces to η = η0).
//   - Eta        — optional feedback callback; nil keeps the static η.
//   - Iterations — feedback sub-iterations; values < 1 are treated as 1,
//     zero selects DefaultEtaIterations.
type ControlOptions struct {
	MeanAlpha  float64
	Eta        EtaCallback
	Iterations int
}

// DefaultControlOptions returns the static-feedback configuration.
func DefaultControlOptions() ControlOptions {
	return ControlOptions{Iterations: DefaultEtaIterations}
}

// EvalOptions configures Value and RunningCost.
//
// η is resolved in priority order:
//  1. EtaValue when > 0 (an explicit, already-validated coefficient);
//  2. the Eta callback, fed the density and Alpha (Value) or the control
//     argument itself (RunningCost);
//  3. the static feedback η = η0 + η1·|MeanAlpha|.
type EvalOptions struct {
	MeanAlpha float64
	EtaValue  float64
	Eta       EtaCallback
	Alpha     []float64
}
