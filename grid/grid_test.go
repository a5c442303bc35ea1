package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meanfield/grid"
)

// TestNew_DerivesUniformSpacing verifies dx, dt and the coordinate vectors.
func TestNew_DerivesUniformSpacing(t *testing.T) {
	g, err := grid.New(-1.0, 1.0, 5, 2.0, 4, grid.Neumann)
	require.NoError(t, err, "valid grid must construct")

	assert.Len(t, g.X, 5, "spatial axis must have nx nodes")
	assert.Len(t, g.T, 5, "time axis must have nt+1 levels")
	assert.InDelta(t, 0.5, g.DX, 1e-15, "dx must be uniform")
	assert.InDelta(t, 0.5, g.DT, 1e-15, "dt must be uniform")
	assert.Equal(t, -1.0, g.X[0], "spatial axis starts at x_min")
	assert.Equal(t, 1.0, g.X[len(g.X)-1], "spatial axis ends at x_max")
	assert.Equal(t, 0.0, g.T[0], "time axis starts at zero")
	assert.Equal(t, 2.0, g.T[len(g.T)-1], "time axis ends at the horizon")

	for i := 1; i < len(g.X); i++ {
		assert.InDelta(t, g.DX, g.X[i]-g.X[i-1], 1e-12, "spatial nodes must be equally spaced")
	}
	for i := 1; i < len(g.T); i++ {
		assert.InDelta(t, g.DT, g.T[i]-g.T[i-1], 1e-12, "time levels must be equally spaced")
	}
}

// TestNew_RejectsMalformedInputs covers the full validation order.
func TestNew_RejectsMalformedInputs(t *testing.T) {
	_, err := grid.New(0, 1, 1, 1, 10, grid.Neumann)
	assert.ErrorIs(t, err, grid.ErrTooFewNodes, "nx<2 must be rejected")

	_, err = grid.New(0, 1, 11, 1, 0, grid.Neumann)
	assert.ErrorIs(t, err, grid.ErrTooFewSteps, "nt<1 must be rejected")

	_, err = grid.New(1, 0, 11, 1, 10, grid.Neumann)
	assert.ErrorIs(t, err, grid.ErrInvertedBounds, "inverted bounds must be rejected")

	_, err = grid.New(0, 1, 11, 0, 10, grid.Neumann)
	assert.ErrorIs(t, err, grid.ErrNonPositiveHorizon, "non-positive horizon must be rejected")

	_, err = grid.New(0, 1, 11, 1, 10, grid.BoundaryKind(42))
	assert.ErrorIs(t, err, grid.ErrUnknownBoundary, "unknown boundary kind must be rejected")
}

// TestApplyDirichlet_PinsEndpoints checks value pinning on a copy.
func TestApplyDirichlet_PinsEndpoints(t *testing.T) {
	g, err := grid.New(0, 1, 4, 1, 2, grid.Dirichlet)
	require.NoError(t, err)

	in := []float64{9, 9, 9, 9}
	out, err := g.ApplyDirichlet(in, -1, 2)
	require.NoError(t, err)

	assert.Equal(t, []float64{-1, 9, 9, 2}, out, "endpoints must be pinned")
	assert.Equal(t, []float64{9, 9, 9, 9}, in, "input must stay untouched")
}

// TestApplyNeumann_EnforcesOneSidedGradient checks the first-order stencil.
func TestApplyNeumann_EnforcesOneSidedGradient(t *testing.T) {
	g, err := grid.New(0, 3, 4, 1, 2, grid.Neumann)
	require.NoError(t, err)

	out, err := g.ApplyNeumann([]float64{0, 5, 7, 0}, 2, 3)
	require.NoError(t, err)

	// dx = 1: v[0] = v[1] - 2·dx, v[3] = v[2] + 3·dx.
	assert.Equal(t, 3.0, out[0], "left endpoint must satisfy the imposed gradient")
	assert.Equal(t, 10.0, out[3], "right endpoint must satisfy the imposed gradient")
}

// TestApplyBoundary_DispatchesOnKind checks configured-boundary dispatch.
func TestApplyBoundary_DispatchesOnKind(t *testing.T) {
	gd, err := grid.New(0, 1, 3, 1, 1, grid.Dirichlet)
	require.NoError(t, err)
	out, err := gd.ApplyBoundary([]float64{5, 5, 5}, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 5, 2}, out, "Dirichlet grids pin values")

	gn, err := grid.New(0, 1, 3, 1, 1, grid.Neumann)
	require.NoError(t, err)
	out, err = gn.ApplyBoundary([]float64{5, 5, 5}, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5}, out, "zero-gradient Neumann keeps a constant vector")
}

// TestApply_RejectsWrongLength ensures shape validation on boundary helpers.
func TestApply_RejectsWrongLength(t *testing.T) {
	g, err := grid.New(0, 1, 4, 1, 2, grid.Neumann)
	require.NoError(t, err)

	_, err = g.ApplyNeumann([]float64{1, 2}, 0, 0)
	assert.ErrorIs(t, err, grid.ErrVectorLength, "short vectors must be rejected")

	_, err = g.ApplyDirichlet([]float64{1, 2, 3, 4, 5}, 0, 0)
	assert.ErrorIs(t, err, grid.ErrVectorLength, "long vectors must be rejected")
}

// TestCheckStability_Bounds verifies the CFL time-step check.
func TestCheckStability_Bounds(t *testing.T) {
	g, err := grid.New(0, 1, 11, 1, 10, grid.Neumann)
	require.NoError(t, err)

	ok, err := g.CheckStability(0.2)
	require.NoError(t, err)
	assert.True(t, ok, "dt=0.1 satisfies dt_max=0.2")

	ok, err = g.CheckStability(0.05)
	require.NoError(t, err)
	assert.False(t, ok, "dt=0.1 violates dt_max=0.05")

	_, err = g.CheckStability(0)
	assert.ErrorIs(t, err, grid.ErrNonPositiveDtMax, "dt_max must be positive")
}

// TestSuggestCFLLimits covers diffusion and advection heuristics.
func TestSuggestCFLLimits(t *testing.T) {
	g, err := grid.New(0, 1, 11, 1, 10, grid.Neumann)
	require.NoError(t, err)

	limits := g.SuggestCFLLimits(0.5, 2.0)
	assert.InDelta(t, g.DT, limits.Dt, 1e-15)
	assert.InDelta(t, g.DX*g.DX, limits.DiffusionDt, 1e-15, "diffusion limit is dx²/(2·nu)")
	assert.InDelta(t, g.DX/2.0, limits.AdvectionDt, 1e-15, "advection limit is dx/|v|max")

	limits = g.SuggestCFLLimits(0, 0)
	assert.Zero(t, limits.DiffusionDt, "nu=0 has no diffusion bound")
	assert.Zero(t, limits.AdvectionDt, "no velocity estimate means no advection bound")
}
