package grid

import (
	"gonum.org/v1/gonum/floats"
)

// New constructs a Grid1D and derives its spacing and coordinate vectors.
//
// Validation (fail-fast, in order):
//  1. nx ≥ 2, otherwise ErrTooFewNodes.
//  2. nt ≥ 1, otherwise ErrTooFewSteps.
//  3. xMax > xMin, otherwise ErrInvertedBounds.
//  4. horizon > 0, otherwise ErrNonPositiveHorizon.
//  5. bc ∈ {Neumann, Dirichlet}, otherwise ErrUnknownBoundary.
//
// Complexity: O(nx + nt) time and memory.
func New(xMin, xMax float64, nx int, horizon float64, nt int, bc BoundaryKind) (*Grid1D, error) {
	if nx < 2 {
		return nil, ErrTooFewNodes
	}
	if nt < 1 {
		return nil, ErrTooFewSteps
	}
	if xMax <= xMin {
		return nil, ErrInvertedBounds
	}
	if horizon <= 0 {
		return nil, ErrNonPositiveHorizon
	}
	if bc != Neumann && bc != Dirichlet {
		return nil, ErrUnknownBoundary
	}

	g := &Grid1D{
		XMin:    xMin,
		XMax:    xMax,
		NX:      nx,
		Horizon: horizon,
		NT:      nt,
		BC:      bc,
		X:       make([]float64, nx),
		T:       make([]float64, nt+1),
	}
	floats.Span(g.X, xMin, xMax)
	floats.Span(g.T, 0, horizon)
	g.DX = g.X[1] - g.X[0]
	g.DT = g.T[1] - g.T[0]

	return g, nil
}

// ApplyDirichlet returns a copy of values with the boundary values pinned.
func (g *Grid1D) ApplyDirichlet(values []float64, left, right float64) ([]float64, error) {
	out, err := g.copyVector(values)
	if err != nil {
		return nil, err
	}
	out[0] = left
	out[g.NX-1] = right

	return out, nil
}

// ApplyNeumann returns a copy of values with first-order one-sided gradients
// imposed at the endpoints. Zero gradients impose a no-flux boundary.
func (g *Grid1D) ApplyNeumann(values []float64, leftGradient, rightGradient float64) ([]float64, error) {
	out, err := g.copyVector(values)
	if err != nil {
		return nil, err
	}
	out[0] = out[1] - leftGradient*g.DX
	out[g.NX-1] = out[g.NX-2] + rightGradient*g.DX

	return out, nil
}

// ApplyBoundary enforces the grid's configured boundary condition.
// For Dirichlet, left and right are values; for Neumann they are gradients.
func (g *Grid1D) ApplyBoundary(values []float64, left, right float64) ([]float64, error) {
	if g.BC == Dirichlet {
		return g.ApplyDirichlet(values, left, right)
	}

	return g.ApplyNeumann(values, left, right)
}

// CheckStability reports whether the grid's time step satisfies dtMax.
// A dtMax ≤ 0 is rejected with ErrNonPositiveDtMax.
func (g *Grid1D) CheckStability(dtMax float64) (bool, error) {
	if dtMax <= 0 {
		return false, ErrNonPositiveDtMax
	}

	return g.DT <= dtMax, nil
}

// SuggestCFLLimits provides heuristic CFL limits for diffusion and advection.
// maxVelocity ≤ 0 skips the advection bound; nu ≤ 0 skips the diffusion bound.
func (g *Grid1D) SuggestCFLLimits(nu, maxVelocity float64) CFLLimits {
	limits := CFLLimits{Dt: g.DT}
	if nu > 0 {
		limits.DiffusionDt = g.DX * g.DX / (2.0 * nu)
	}
	if maxVelocity > 0 {
		limits.AdvectionDt = g.DX / maxVelocity
	}

	return limits
}

// copyVector validates the length of values against NX and returns a copy.
func (g *Grid1D) copyVector(values []float64) ([]float64, error) {
	if len(values) != g.NX {
		return nil, ErrVectorLength
	}
	out := make([]float64, g.NX)
	copy(out, values)

	return out, nil
}
