package hft

// Params is the immutable coefficient record of the trading model.
//
// Fields:
//   - Nu      — idiosyncratic diffusion intensity of inventory, ≥ 0.
//   - Phi     — running inventory penalty accrued over the horizon.
//   - GammaT  — terminal inventory penalty; the terminal payoff is GammaT·x².
//   - Eta0    — baseline execution-cost coefficient.
//   - Eta1    — sensitivity of the execution cost to the mean order flow.
//   - M0Mean  — mean of the initial Gaussian inventory distribution.
//   - M0Std   — standard deviation of the initial distribution, > 0.
type Params struct {
	Nu     float64
	Phi    float64
	GammaT float64
	Eta0   float64
	Eta1   float64
	M0Mean float64
	M0Std  float64
}

// DefaultParams returns the stylized configuration used across examples.
func DefaultParams() Params {
	return Params{
		Nu:     0.2,
		Phi:    0.1,
		GammaT: 1.0,
		Eta0:   0.05,
		Eta1:   0.5,
		M0Mean: 0.0,
		M0Std:  1.0,
	}
}

// Validate rejects parameter sets that cannot define a well-posed model.
func (p Params) Validate() error {
	if p.M0Std <= 0 {
		return ErrNonPositiveStd
	}
	if p.Nu < 0 {
		return ErrNegativeNu
	}

	return nil
}
