package fp

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hamiltonian"
	"github.com/katalvlaran/meanfield/hft"
	"github.com/katalvlaran/meanfield/ops"
)

// ErrShapeMismatch indicates vectors or trajectories that do not match the
// grid discretization.
var ErrShapeMismatch = errors.New("fp: arrays must match the grid discretization")

// VelocityFromValue computes the drift velocity at one time level from the
// value function through the control law, with the mean-field average fixed
// at zero.
func VelocityFromValue(u, m []float64, g *grid.Grid1D, p hft.Params) ([]float64, error) {
	if len(u) != g.NX || len(m) != g.NX {
		return nil, ErrShapeMismatch
	}

	gradient, err := ops.CentralGradient(u, g.DX, g.BC)
	if err != nil {
		return nil, err
	}

	return hamiltonian.AlphaStar(gradient, m, p, nil)
}

// Step advances the density one level with explicit upwind advection and
// implicit diffusion, then projects the result onto the simplex. It
// assembles the implicit system on the fly; sweeps should prefer
// SolveForward, which assembles it once.
func Step(m, v []float64, g *grid.Grid1D, p hft.Params) ([]float64, error) {
	lap, err := ops.NewLaplacian(g)
	if err != nil {
		return nil, err
	}
	system, err := lap.ImplicitSystem(g.DT, p.Nu)
	if err != nil {
		return nil, err
	}

	return stepWith(system, m, v, g)
}

// stepWith is the update shared by Step and SolveForward.
func stepWith(system *mat.Tridiag, m, v []float64, g *grid.Grid1D) ([]float64, error) {
	if len(m) != g.NX || len(v) != g.NX {
		return nil, ErrShapeMismatch
	}

	div, err := ops.UpwindDivergence(m, v, g.DX)
	if err != nil {
		return nil, err
	}

	rhs := make([]float64, g.NX)
	for i := range rhs {
		rhs[i] = m[i] + g.DT*div[i]
	}
	next, err := ops.SolveImplicit(system, rhs)
	if err != nil {
		return nil, err
	}

	return ops.ProjectSimplex(next, g.DX, ops.DefaultMassTol)
}

// SolveForward propagates the initial density m0 through the value
// trajectory (shape (nt+1) × nx) and returns the density trajectory over
// the same levels. The initial level is projected onto the simplex before
// the sweep.
func SolveForward(values [][]float64, g *grid.Grid1D, p hft.Params, m0 []float64) ([][]float64, error) {
	if len(values) != g.NT+1 {
		return nil, ErrShapeMismatch
	}
	for _, level := range values {
		if len(level) != g.NX {
			return nil, ErrShapeMismatch
		}
	}
	if len(m0) != g.NX {
		return nil, ErrShapeMismatch
	}

	density := make([][]float64, g.NT+1)
	initial, err := ops.ProjectSimplex(m0, g.DX, ops.DefaultMassTol)
	if err != nil {
		return nil, err
	}
	density[0] = initial

	lap, err := ops.NewLaplacian(g)
	if err != nil {
		return nil, err
	}
	system, err := lap.ImplicitSystem(g.DT, p.Nu)
	if err != nil {
		return nil, err
	}

	for n := 0; n < g.NT; n++ {
		velocity, err := VelocityFromValue(values[n], density[n], g, p)
		if err != nil {
			return nil, err
		}
		density[n+1], err = stepWith(system, density[n], velocity, g)
		if err != nil {
			return nil, err
		}
	}

	return density, nil
}

// Solver bundles a grid and parameters for repeated forward sweeps.
type Solver struct {
	Grid   *grid.Grid1D
	Params hft.Params
}

// Solve propagates initialDensity through the given value trajectory.
func (s *Solver) Solve(values [][]float64, initialDensity []float64) ([][]float64, error) {
	return SolveForward(values, s.Grid, s.Params, initialDensity)
}
