package picard_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hft"
	"github.com/katalvlaran/meanfield/ops"
	"github.com/katalvlaran/meanfield/picard"
)

// wellPosedCase is the benchmark configuration used across the convergence
// tests: no inventory penalty and a static execution cost, so the coupled
// system reduces to a contraction the driver must close quickly.
func wellPosedCase(t *testing.T, nx, nt int) (*grid.Grid1D, hft.Params) {
	t.Helper()
	g, err := grid.New(-3, 3, nx, 0.5, nt, grid.Neumann)
	require.NoError(t, err)

	return g, hft.Params{Nu: 0.1, Phi: 0, GammaT: 0, Eta0: 1, Eta1: 0, M0Mean: 0, M0Std: 1}
}

// TestSolve_ConvergesOnWellPosedCase: the damped iteration must reach the
// absolute tolerance well inside the budget, keep unit mass at every time
// level, and never enter the stalled state.
func TestSolve_ConvergesOnWellPosedCase(t *testing.T) {
	g, params := wellPosedCase(t, 101, 50)

	opts := picard.DefaultOptions()
	opts.MaxIter = 30
	opts.Tol = 1e-5
	opts.Mix = 0.8
	opts.HJB.MaxInner = 1

	result, err := picard.Solve(g, params, &opts)
	require.NoError(t, err)

	require.NotEmpty(t, result.Errors, "at least one iteration must be accepted")
	assert.Less(t, result.Errors[len(result.Errors)-1], 1e-5, "run must converge below tol")
	assert.False(t, result.Stalled, "well-posed case must not stall")
	assert.LessOrEqual(t, result.Iterations, 30, "iteration count within budget")

	require.Len(t, result.Density, g.NT+1)
	for n, level := range result.Density {
		assert.InDeltaf(t, 1.0, ops.Mass(level, g.DX), 1e-6, "mass at level %d", n)
		for i, m := range level {
			assert.GreaterOrEqualf(t, m, 0.0, "density (%d,%d) must be non-negative", n, i)
		}
	}
}

// TestSolve_ShapesAndHistories: trajectories are (nt+1)×nx and the accepted
// histories stay aligned with the iteration count.
func TestSolve_ShapesAndHistories(t *testing.T) {
	g, params := wellPosedCase(t, 41, 20)

	opts := picard.DefaultOptions()
	opts.MaxIter = 10
	opts.Tol = 1e-3
	opts.Mix = 0.5

	var observed int
	opts.Callback = func(iteration int, errorAbs float64) {
		assert.Equal(t, observed, iteration, "callback iterations must be sequential")
		assert.Greater(t, errorAbs, 0.0, "reported error must be positive")
		observed++
	}

	result, err := picard.Solve(g, params, &opts)
	require.NoError(t, err)

	require.Len(t, result.Value, g.NT+1)
	require.Len(t, result.Control, g.NT+1)
	for n := range result.Value {
		assert.Lenf(t, result.Value[n], g.NX, "value level %d", n)
		assert.Lenf(t, result.Control[n], g.NX, "control level %d", n)
	}

	assert.Equal(t, result.Iterations, len(result.Errors), "one error per accepted iteration")
	assert.Equal(t, result.Iterations, len(result.RelativeErrors), "one relative error per accepted iteration")
	assert.Equal(t, result.Iterations, len(result.MixHistory), "one mix entry per accepted iteration")
	assert.Equal(t, result.Iterations, observed, "callback fires once per accepted iteration")

	for k, mix := range result.MixHistory {
		assert.Greaterf(t, mix, 0.0, "mix %d must be positive", k)
		assert.LessOrEqualf(t, mix, opts.Mix, "mix %d never exceeds the initial weight", k)
	}
}

// TestSolve_ErrorHistoryContracts: with a static execution cost the backward
// sweep is independent of the density, so successive accepted errors shrink
// geometrically.
func TestSolve_ErrorHistoryContracts(t *testing.T) {
	g, params := wellPosedCase(t, 61, 30)

	opts := picard.DefaultOptions()
	opts.MaxIter = 12
	opts.Tol = 1e-10
	opts.Mix = 0.6

	result, err := picard.Solve(g, params, &opts)
	require.NoError(t, err)

	require.Greater(t, len(result.Errors), 2)
	for k := 1; k < len(result.Errors); k++ {
		assert.Lessf(t, result.Errors[k], result.Errors[k-1], "error must improve at iteration %d", k)
	}
}

// TestSolve_GridRefinementReducesDifference: halving dx brings the converged
// final density closer to the next refinement, sampled on the shared coarse
// nodes (nx = 51, 101, 201 nest on the same interval).
func TestSolve_GridRefinementReducesDifference(t *testing.T) {
	sizes := []struct{ nx, nt int }{{51, 25}, {101, 50}, {201, 100}}
	finals := make([][]float64, len(sizes))

	for level, size := range sizes {
		g, params := wellPosedCase(t, size.nx, size.nt)

		opts := picard.DefaultOptions()
		opts.MaxIter = 40
		opts.Tol = 1e-7
		opts.Mix = 0.8

		result, err := picard.Solve(g, params, &opts)
		require.NoError(t, err)
		finals[level] = result.Density[len(result.Density)-1]
	}

	// L2 difference restricted to the coarse nodes: fine node 2i matches
	// coarse node i when nx doubles on a fixed interval.
	coarseDelta := func(coarse, fine []float64) float64 {
		var sum float64
		for i := range coarse {
			d := coarse[i] - fine[2*i]
			sum += d * d
		}
		return math.Sqrt(sum / float64(len(coarse)))
	}

	first := coarseDelta(finals[0], finals[1])
	second := coarseDelta(finals[1], finals[2])
	assert.Less(t, second, first, "refinement must shrink the inter-grid difference")
}

// TestSolve_RejectsInvalidParams: parameter validation fires before any
// numerics run.
func TestSolve_RejectsInvalidParams(t *testing.T) {
	g, params := wellPosedCase(t, 21, 10)
	params.M0Std = 0

	_, err := picard.Solve(g, params, nil)
	assert.ErrorIs(t, err, hft.ErrNonPositiveStd, "degenerate initial spread must be rejected")
}

// TestSolve_RejectsMismatchedInitialDensity: an override with the wrong
// length fails with the package sentinel.
func TestSolve_RejectsMismatchedInitialDensity(t *testing.T) {
	g, params := wellPosedCase(t, 21, 10)

	opts := picard.DefaultOptions()
	opts.InitialDensity = make([]float64, g.NX+3)
	for i := range opts.InitialDensity {
		opts.InitialDensity[i] = 1
	}

	_, err := picard.Solve(g, params, &opts)
	assert.ErrorIs(t, err, picard.ErrShapeMismatch, "length mismatch must be rejected")
}

// TestSolve_WritesMetricsArtifact: MetricsPath produces a JSON record whose
// headline numbers match the in-memory result.
func TestSolve_WritesMetricsArtifact(t *testing.T) {
	g, params := wellPosedCase(t, 41, 20)

	path := filepath.Join(t.TempDir(), "artifacts", "metrics.json")
	opts := picard.DefaultOptions()
	opts.MaxIter = 10
	opts.Tol = 1e-4
	opts.Mix = 0.7
	opts.MetricsPath = path

	result, err := picard.Solve(g, params, &opts)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err, "metrics artifact must exist")

	var onDisk picard.Metrics
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, result.Metrics.Iterations, onDisk.Iterations, "iteration count round-trips")
	assert.InDelta(t, result.Metrics.FinalError, onDisk.FinalError, 1e-15, "final error round-trips")
	assert.InDelta(t, result.Metrics.LiquidityProxy, onDisk.LiquidityProxy, 1e-15, "liquidity proxy round-trips")
	assert.Greater(t, onDisk.LiquidityProxy, 0.0, "liquidity proxy is positive")
	assert.LessOrEqual(t, onDisk.LiquidityProxy, 1.0, "liquidity proxy is at most one")
}

// TestControlMetrics_ClosedForm: a constant control trajectory has zero
// dispersion and liquidity exp(−|α|).
func TestControlMetrics_ClosedForm(t *testing.T) {
	control := [][]float64{{0.5, 0.5}, {0.5, 0.5}}

	metrics := picard.ControlMetrics(control)
	assert.InDelta(t, 0.5, metrics.MeanAbsAlpha, 1e-15, "mean |α|")
	assert.InDelta(t, 0.0, metrics.StdAlpha, 1e-15, "constant field has no spread")
	assert.InDelta(t, math.Exp(-0.5), metrics.LiquidityProxy, 1e-15, "liquidity proxy")
}
