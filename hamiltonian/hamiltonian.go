package hamiltonian

import (
	"math"

	"github.com/katalvlaran/meanfield/hft"
)

// MeanAlpha returns the population-averaged control weighted by the density:
// Σ α·m·dx / Σ m·dx. The mass in the denominator guards against densities
// that are not normalized.
func MeanAlpha(m, alpha []float64, dx float64) (float64, error) {
	if len(m) != len(alpha) {
		return 0, ErrShapeMismatch
	}
	if dx <= 0 {
		return 0, ErrNonPositiveStep
	}

	var mass, weighted float64
	for i := range m {
		mass += m[i]
		weighted += alpha[i] * m[i]
	}
	mass *= dx
	if mass <= massTol {
		return 0, ErrDegenerateMass
	}

	return weighted * dx / mass, nil
}

// EffectiveEta computes the static mean-field execution cost
// η = η0 + η1·|meanAlpha| and rejects non-positive results.
func EffectiveEta(meanAlpha float64, p hft.Params) (float64, error) {
	eta := p.Eta0 + p.Eta1*math.Abs(meanAlpha)
	if eta <= 0 {
		return 0, ErrNonPositiveEta
	}

	return eta, nil
}

// EtaFromFlow is the reference dynamic execution-cost feedback:
// η = η0 + η1·|weighted mean of the control|, where the weighting is the
// plain density-weighted average (independent of grid spacing).
func EtaFromFlow(density, control []float64, p hft.Params) (float64, error) {
	meanCtrl, err := MeanAlpha(density, control, 1.0)
	if err != nil {
		return 0, err
	}

	return EffectiveEta(meanCtrl, p)
}

// AlphaStar computes the closed-form optimal control α* = −p/η.
//
// Outline:
//  1. Resolve η from the static feedback (MeanAlpha defaults to zero).
//  2. α = −momentum/η point-wise.
//  3. With a callback, run a bounded feedback loop: η = cb(density, α),
//     falling back to η0 when the callback loses positivity, then
//     recompute α. This resolves the implicit dependence of the execution
//     cost on the control it produces.
//
// A nil opts selects DefaultControlOptions.
func AlphaStar(momentum, density []float64, p hft.Params, opts *ControlOptions) ([]float64, error) {
	if len(momentum) != len(density) {
		return nil, ErrShapeMismatch
	}
	o := DefaultControlOptions()
	if opts != nil {
		o = *opts
	}

	eta, err := EffectiveEta(o.MeanAlpha, p)
	if err != nil {
		return nil, err
	}
	alpha := make([]float64, len(momentum))
	for i, pm := range momentum {
		alpha[i] = -pm / eta
	}
	if o.Eta == nil {
		return alpha, nil
	}

	iterations := o.Iterations
	if iterations == 0 {
		iterations = DefaultEtaIterations
	}
	if iterations < 1 {
		iterations = 1
	}
	for iter := 0; iter < iterations; iter++ {
		eta, err = o.Eta(density, alpha, p)
		if err != nil {
			return nil, err
		}
		if eta <= 0 {
			eta = p.Eta0
			if eta <= 0 {
				return nil, ErrNonPositiveEta
			}
		}
		for i, pm := range momentum {
			alpha[i] = -pm / eta
		}
	}

	return alpha, nil
}

// Value evaluates the Hamiltonian H(p, x) = ½·p²/η + φ·x² point-wise.
// See EvalOptions for the η resolution order.
func Value(momentum, x, density []float64, p hft.Params, opts *EvalOptions) ([]float64, error) {
	if len(momentum) != len(x) || len(momentum) != len(density) {
		return nil, ErrShapeMismatch
	}

	eta, err := resolveEta(density, nil, p, opts)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(momentum))
	for i := range momentum {
		out[i] = 0.5*momentum[i]*momentum[i]/eta + p.Phi*x[i]*x[i]
	}

	return out, nil
}

// RunningCost evaluates the running cost L(x, α) = ½·η·α² + φ·x² point-wise,
// using the same η resolution as Value so that both stay consistent.
func RunningCost(x, alpha, density []float64, p hft.Params, opts *EvalOptions) ([]float64, error) {
	if len(x) != len(alpha) {
		return nil, ErrShapeMismatch
	}

	eta, err := resolveEta(density, alpha, p, opts)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i := range x {
		out[i] = 0.5*eta*alpha[i]*alpha[i] + p.Phi*x[i]*x[i]
	}

	return out, nil
}

// resolveEta applies the EvalOptions priority order. control overrides
// opts.Alpha as the callback's control iterate when non-nil.
func resolveEta(density, control []float64, p hft.Params, opts *EvalOptions) (float64, error) {
	o := EvalOptions{}
	if opts != nil {
		o = *opts
	}
	if control == nil {
		control = o.Alpha
	}

	var (
		eta float64
		err error
	)
	switch {
	case o.EtaValue > 0:
		eta = o.EtaValue
	case o.Eta != nil && density != nil && control != nil:
		eta, err = o.Eta(density, control, p)
	default:
		eta, err = EffectiveEta(o.MeanAlpha, p)
	}
	if err != nil {
		return 0, err
	}
	if eta <= 0 {
		return 0, ErrNonPositiveEta
	}

	return eta, nil
}
