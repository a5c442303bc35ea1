package hamiltonian

import (
	"github.com/katalvlaran/meanfield/hft"
)

// ControlLaw maps the value-function momentum (and the current density, when
// mean-field coupling applies) to the optimal control.
type ControlLaw func(momentum, density []float64) ([]float64, error)

// Quadratic is the concrete quadratic Hamiltonian tailored to the
// linear-quadratic trading setup. It remembers the population-average
// control between evaluations and the last control its law produced, so an
// eta callback can close the feedback loop across calls.
type Quadratic struct {
	X         []float64 // spatial nodes for the φ·x² component
	Params    hft.Params
	Eta       EtaCallback // optional dynamic execution-cost feedback
	MeanAlpha float64     // current population-average control estimate

	lastAlpha []float64
}

// NewQuadratic builds a Quadratic Hamiltonian over the given spatial nodes.
func NewQuadratic(x []float64, p hft.Params, eta EtaCallback) *Quadratic {
	nodes := make([]float64, len(x))
	copy(nodes, x)

	return &Quadratic{X: nodes, Params: p, Eta: eta}
}

// UpdateMeanAlpha recomputes and stores the population-average control.
func (q *Quadratic) UpdateMeanAlpha(density, control []float64, dx float64) (float64, error) {
	mean, err := MeanAlpha(density, control, dx)
	if err != nil {
		return 0, err
	}
	q.MeanAlpha = mean

	return mean, nil
}

// Value evaluates the Hamiltonian at the given momentum. When a callback and
// a previous control iterate are available, η is refined from them;
// otherwise the stored mean-field estimate applies.
func (q *Quadratic) Value(momentum, density []float64) ([]float64, error) {
	if len(momentum) != len(q.X) {
		return nil, ErrShapeMismatch
	}
	if density == nil {
		density = make([]float64, len(momentum))
	}

	opts := EvalOptions{MeanAlpha: q.MeanAlpha, Eta: q.Eta, Alpha: q.lastAlpha}

	return Value(momentum, q.X, density, q.Params, &opts)
}

// Control returns the optimal control law of the Hamiltonian. Each
// invocation records the produced control as the next feedback iterate.
func (q *Quadratic) Control() ControlLaw {
	return func(momentum, density []float64) ([]float64, error) {
		if len(momentum) != len(q.X) {
			return nil, ErrShapeMismatch
		}
		if density == nil {
			density = make([]float64, len(momentum))
		}

		opts := ControlOptions{MeanAlpha: q.MeanAlpha, Eta: q.Eta, Iterations: DefaultEtaIterations}
		alpha, err := AlphaStar(momentum, density, q.Params, &opts)
		if err != nil {
			return nil, err
		}
		q.lastAlpha = alpha

		return alpha, nil
	}
}

// FluxBound estimates the Lax-Friedrichs dissipation bound as the maximum
// gradient magnitude.
func (q *Quadratic) FluxBound(magnitude []float64) float64 {
	var bound float64
	for _, m := range magnitude {
		if m > bound {
			bound = m
		}
	}

	return bound
}
