package hjb

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hamiltonian"
	"github.com/katalvlaran/meanfield/hft"
	"github.com/katalvlaran/meanfield/ops"
)

// TerminalCondition samples the terminal payoff U_T(x) = γ_T·x² on the grid.
func TerminalCondition(g *grid.Grid1D, p hft.Params) []float64 {
	payoff := make([]float64, g.NX)
	for i, x := range g.X {
		payoff[i] = p.GammaT * x * x
	}

	return payoff
}

// laxFriedrichsGradient blends forward and backward stencils into a monotone
// gradient: g = ½(f+b) − ½a(f−b), with the dissipation coefficient a bounded
// by the maximum one-sided gradient magnitude and optionally capped.
// Endpoints keep the pure one-sided values.
func laxFriedrichsGradient(values []float64, dx, maxDissipation float64) ([]float64, error) {
	forward, err := ops.ForwardDifference(values, dx)
	if err != nil {
		return nil, err
	}
	backward, err := ops.BackwardDifference(values, dx)
	if err != nil {
		return nil, err
	}

	var a float64
	for i := range forward {
		if v := math.Abs(forward[i]); v > a {
			a = v
		}
		if v := math.Abs(backward[i]); v > a {
			a = v
		}
	}
	if !isFinite(a) || a < dissipationFloor {
		a = dissipationFallback
	}
	if maxDissipation > 0 && a > maxDissipation {
		a = maxDissipation
	}

	n := len(values)
	grad := make([]float64, n)
	for i := 0; i < n; i++ {
		grad[i] = 0.5*(forward[i]+backward[i]) - 0.5*a*(forward[i]-backward[i])
	}
	grad[0] = forward[0]
	grad[n-1] = backward[n-1]

	return grad, nil
}

// Step performs a single backward step from uNext to the previous time level
// against the density at that level. It assembles the implicit system on the
// fly; sweeps should prefer SolveBackward, which assembles it once.
func Step(uNext, density []float64, g *grid.Grid1D, p hft.Params, opts *Options) ([]float64, error) {
	lap, err := ops.NewLaplacian(g)
	if err != nil {
		return nil, err
	}
	system, err := lap.ImplicitSystem(g.DT, p.Nu)
	if err != nil {
		return nil, err
	}

	return stepWith(system, uNext, density, g, p, normalized(opts))
}

// stepWith is the inner fixed point shared by Step and SolveBackward.
func stepWith(system *mat.Tridiag, uNext, density []float64, g *grid.Grid1D, p hft.Params, o Options) ([]float64, error) {
	if len(uNext) != g.NX || len(density) != g.NX {
		return nil, ErrShapeMismatch
	}

	uIter := make([]float64, g.NX)
	copy(uIter, uNext)
	rhs := make([]float64, g.NX)

	meanAlpha := 0.0
	for inner := 0; inner < o.MaxInner; inner++ {
		gradient, err := laxFriedrichsGradient(uIter, g.DX, o.MaxDissipation)
		if err != nil {
			return nil, err
		}

		// First control pass against the previous mean-field estimate.
		alpha, err := hamiltonian.AlphaStar(gradient, density, p,
			&hamiltonian.ControlOptions{MeanAlpha: meanAlpha, Eta: o.Eta})
		if err != nil {
			return nil, err
		}
		clamp(alpha, o.AlphaCap)

		// Refresh the mean field and rederive the control against it.
		meanAlpha, err = hamiltonian.MeanAlpha(density, alpha, g.DX)
		if err != nil {
			return nil, err
		}
		alpha, err = hamiltonian.AlphaStar(gradient, density, p,
			&hamiltonian.ControlOptions{MeanAlpha: meanAlpha, Eta: o.Eta})
		if err != nil {
			return nil, err
		}
		clamp(alpha, o.AlphaCap)

		// Fix η for this pass so control and Hamiltonian stay consistent.
		eta, err := hamiltonian.EffectiveEta(meanAlpha, p)
		if err != nil {
			return nil, err
		}
		if o.Eta != nil {
			eta, err = o.Eta(density, alpha, p)
			if err != nil {
				return nil, err
			}
			if eta <= 0 {
				return nil, hamiltonian.ErrNonPositiveEta
			}
		}

		h, err := hamiltonian.Value(gradient, g.X, density, p, &hamiltonian.EvalOptions{EtaValue: eta})
		if err != nil {
			return nil, err
		}

		for i := range rhs {
			rhs[i] = uNext[i] + g.DT*h[i]
		}
		uNew, err := ops.SolveImplicit(system, rhs)
		if err != nil {
			return nil, err
		}
		clamp(uNew, o.ValueCap)

		if o.ValueRelaxation > 0 {
			relax := math.Min(o.ValueRelaxation, 1.0)
			for i := range uNew {
				uNew[i] = relax*uNew[i] + (1.0-relax)*uIter[i]
			}
		}

		var delta float64
		for i := range uNew {
			if !isFinite(uNew[i]) {
				return nil, ErrNonFinite
			}
			if d := math.Abs(uNew[i] - uIter[i]); d > delta {
				delta = d
			}
		}

		uIter = uNew
		if delta < o.Tol {
			break
		}
	}

	return uIter, nil
}

// SolveBackward solves the HJB equation backward in time over a density
// trajectory of shape (nt+1) × nx, returning the value trajectory ordered
// from t = 0 to T. The terminal level is γ_T·x² unless Options.Terminal is
// set.
func SolveBackward(density [][]float64, g *grid.Grid1D, p hft.Params, opts *Options) ([][]float64, error) {
	if len(density) != g.NT+1 {
		return nil, ErrShapeMismatch
	}
	for _, level := range density {
		if len(level) != g.NX {
			return nil, ErrShapeMismatch
		}
	}
	o := normalized(opts)

	values := make([][]float64, g.NT+1)
	terminal := o.Terminal
	if terminal == nil {
		terminal = TerminalCondition(g, p)
	} else if len(terminal) != g.NX {
		return nil, ErrShapeMismatch
	}
	values[g.NT] = make([]float64, g.NX)
	copy(values[g.NT], terminal)

	lap, err := ops.NewLaplacian(g)
	if err != nil {
		return nil, err
	}
	system, err := lap.ImplicitSystem(g.DT, p.Nu)
	if err != nil {
		return nil, err
	}

	for n := g.NT - 1; n >= 0; n-- {
		values[n], err = stepWith(system, values[n+1], density[n], g, p, o)
		if err != nil {
			return nil, err
		}
	}

	return values, nil
}

// normalized resolves zero-valued knobs to their defaults.
func normalized(opts *Options) Options {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.MaxInner < 1 {
		o.MaxInner = DefaultMaxInner
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}

	return o
}

// clamp limits every entry to [−limit, limit]; a limit ≤ 0 disables clamping.
func clamp(values []float64, limit float64) {
	if limit <= 0 {
		return
	}
	for i, v := range values {
		if v > limit {
			values[i] = limit
		} else if v < -limit {
			values[i] = -limit
		}
	}
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
