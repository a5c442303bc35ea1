package picard

import (
	"math"

	"github.com/katalvlaran/meanfield/fp"
	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hft"
	"github.com/katalvlaran/meanfield/hjb"
	"github.com/katalvlaran/meanfield/ops"
)

// Solve runs the Picard fixed-point iteration for the coupled MFG system.
// A nil opts selects DefaultOptions. The returned error covers validation
// failures and numerical divergence; a stalled run is NOT an error — check
// Result.Stalled.
func Solve(g *grid.Grid1D, p hft.Params, opts *Options) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := normalized(opts)

	m0 := o.InitialDensity
	if m0 == nil {
		var err error
		m0, err = hft.InitialDensity(g, p)
		if err != nil {
			return nil, err
		}
	}
	m0, err := ops.ProjectSimplex(m0, g.DX, ops.DefaultMassTol)
	if err != nil {
		return nil, err
	}
	if len(m0) != g.NX {
		return nil, ErrShapeMismatch
	}

	densityEstimate := tile(m0, g.NT+1)
	result := &Result{}

	hjbOpts := o.HJB
	hjbOpts.Eta = o.Eta

	var values [][]float64
	currentMix := o.Mix

	for iteration := 0; iteration < o.MaxIter; iteration++ {
		values, err = hjb.SolveBackward(densityEstimate, g, p, &hjbOpts)
		if err != nil {
			return nil, err
		}
		raw, err := fp.SolveForward(values, g, p, m0)
		if err != nil {
			return nil, err
		}

		var prevError float64
		hasPrev := len(result.Errors) > 0
		if hasPrev {
			prevError = result.Errors[len(result.Errors)-1]
		}

		// Backtrack only the blend: halve the weight until the error improves
		// by the stagnation margin or the weight reaches its floor.
		candidateMix := currentMix
		var (
			blended  [][]float64
			errorAbs float64
			errorRel float64
		)
		for {
			blended = blend(raw, densityEstimate, candidateMix)
			errorAbs = l2Delta(blended, densityEstimate)
			errorRel = errorAbs / (l2Norm(blended) + normEps)

			if !hasPrev ||
				errorAbs <= prevError*(1.0-o.StagnationTol) ||
				candidateMix <= o.MixMin+normEps {
				break
			}
			candidateMix = math.Max(candidateMix*o.MixDecay, o.MixMin)
		}

		// Worse than the previous accepted error with the weight at its
		// floor: stop in the stalled state without accepting the blend. The
		// value trajectory of this iteration is still the freshest one.
		if hasPrev && errorAbs > prevError && candidateMix <= o.MixMin+normEps {
			result.Stalled = true
			break
		}

		currentMix = candidateMix
		densityEstimate = blended
		result.Errors = append(result.Errors, errorAbs)
		result.RelativeErrors = append(result.RelativeErrors, errorRel)
		result.MixHistory = append(result.MixHistory, currentMix)

		if o.Callback != nil {
			o.Callback(iteration, errorAbs)
		}

		if errorAbs < o.Tol || (o.RelativeTol > 0 && errorRel < o.RelativeTol) {
			break
		}
	}

	result.Value = values
	result.Density = densityEstimate
	result.Iterations = len(result.Errors)

	result.Control, err = ControlTrajectory(values, densityEstimate, g, p, o.Eta)
	if err != nil {
		return nil, err
	}

	metrics := ControlMetrics(result.Control)
	metrics.Iterations = result.Iterations
	metrics.MixInitial = o.Mix
	metrics.MixFinal = currentMix
	metrics.MixMin = o.MixMin
	metrics.MixHistory = result.MixHistory
	metrics.RelativeErrors = result.RelativeErrors
	metrics.Stalled = result.Stalled
	if n := len(result.Errors); n > 0 {
		metrics.FinalError = result.Errors[n-1]
		metrics.FinalErrorRelative = result.RelativeErrors[n-1]
	}
	result.Metrics = metrics

	if o.MetricsPath != "" {
		if err := SaveMetrics(metrics, o.MetricsPath); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// normalized resolves zero-valued knobs to their defaults.
func normalized(opts *Options) Options {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.MaxIter < 1 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	if o.Mix <= 0 {
		o.Mix = DefaultMix
	}
	if o.MixMin <= 0 {
		o.MixMin = DefaultMixMin
	}
	if o.MixDecay <= 0 || o.MixDecay >= 1 {
		o.MixDecay = DefaultMixDecay
	}
	if o.StagnationTol <= 0 {
		o.StagnationTol = DefaultStagnationTol
	}

	return o
}

// tile repeats one spatial level over rows time levels.
func tile(level []float64, rows int) [][]float64 {
	out := make([][]float64, rows)
	for n := range out {
		out[n] = make([]float64, len(level))
		copy(out[n], level)
	}

	return out
}

// blend mixes raw into prev level-wise: mix·raw + (1−mix)·prev.
func blend(raw, prev [][]float64, mix float64) [][]float64 {
	out := make([][]float64, len(raw))
	for n := range raw {
		out[n] = make([]float64, len(raw[n]))
		for i := range raw[n] {
			out[n][i] = mix*raw[n][i] + (1.0-mix)*prev[n][i]
		}
	}

	return out
}

// l2Delta is the L2 norm of the flattened difference a − b.
func l2Delta(a, b [][]float64) float64 {
	var sum float64
	for n := range a {
		for i := range a[n] {
			d := a[n][i] - b[n][i]
			sum += d * d
		}
	}

	return math.Sqrt(sum)
}

// l2Norm is the L2 norm of a flattened trajectory.
func l2Norm(a [][]float64) float64 {
	var sum float64
	for n := range a {
		for i := range a[n] {
			sum += a[n][i] * a[n][i]
		}
	}

	return math.Sqrt(sum)
}
