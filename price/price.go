package price

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// AlphaField returns the population's control profile at time index n for a
// candidate price. The profile length must match the density's spatial
// resolution.
type AlphaField func(n int, price float64) []float64

// Search defaults, mirrored by DefaultOptions.
const (
	DefaultBracketLow  = -10.0
	DefaultBracketHigh = 10.0
	DefaultMaxIter     = 50
	DefaultTol         = 1e-8

	maxExpansions = 5
)

// Options configures the per-level bisection search.
//
// Fields:
//   - Bracket — initial price interval; a degenerate interval selects the
//     default [-10, 10].
//   - MaxIter — bisection budget per time level (zero selects the default).
//   - Tol     — absolute tolerance on the clearing imbalance and on the
//     bracket half-width.
type Options struct {
	Bracket [2]float64
	MaxIter int
	Tol     float64
}

// DefaultOptions returns the search configuration matching the package
// constants.
func DefaultOptions() Options {
	return Options{
		Bracket: [2]float64{DefaultBracketLow, DefaultBracketHigh},
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
	}
}

// SolveClearing returns the price path P of length len(densities): at every
// time level it solves ∫ α(x; P_n)·m_n(x) dx = supply[n] by bisection. A nil
// opts selects DefaultOptions.
func SolveClearing(field AlphaField, densities [][]float64, supply []float64, dx float64, opts *Options) ([]float64, error) {
	if dx <= 0 {
		return nil, ErrNonPositiveStep
	}
	if len(densities) != len(supply) {
		return nil, ErrScheduleMismatch
	}
	o := normalized(opts)

	prices := make([]float64, len(densities))
	for n := range densities {
		level, target := densities[n], supply[n]

		imbalance := func(price float64) (float64, error) {
			control := field(n, price)
			if len(control) != len(level) {
				return 0, ErrFieldShape
			}
			return floats.Dot(control, level)*dx - target, nil
		}

		lower, upper := o.Bracket[0], o.Bracket[1]
		fLower, err := imbalance(lower)
		if err != nil {
			return nil, err
		}
		fUpper, err := imbalance(upper)
		if err != nil {
			return nil, err
		}

		// Widen the bracket symmetrically until the imbalance changes sign.
		for expansion := 0; fLower*fUpper > 0 && expansion < maxExpansions; expansion++ {
			width := upper - lower
			lower -= width
			upper += width
			if fLower, err = imbalance(lower); err != nil {
				return nil, err
			}
			if fUpper, err = imbalance(upper); err != nil {
				return nil, err
			}
		}

		if fLower*fUpper > 0 {
			// No sign change inside the widened bracket: take the endpoint
			// closer to clearing and move to the next level.
			if math.Abs(fLower) < math.Abs(fUpper) {
				prices[n] = lower
			} else {
				prices[n] = upper
			}
			continue
		}

		var mid float64
		for iter := 0; iter < o.MaxIter; iter++ {
			mid = 0.5 * (lower + upper)
			fMid, err := imbalance(mid)
			if err != nil {
				return nil, err
			}

			if math.Abs(fMid) < o.Tol || 0.5*(upper-lower) < o.Tol {
				break
			}
			if fLower*fMid <= 0 {
				upper, fUpper = mid, fMid
			} else {
				lower, fLower = mid, fMid
			}
		}
		prices[n] = mid
	}

	return prices, nil
}

// normalized resolves zero-valued knobs to their defaults.
func normalized(opts *Options) Options {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Bracket[0] >= o.Bracket[1] {
		o.Bracket = [2]float64{DefaultBracketLow, DefaultBracketHigh}
	}
	if o.MaxIter < 1 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}

	return o
}
