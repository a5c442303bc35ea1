package ops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/ops"
)

// linearProfile samples a·x + b on n nodes spanning [lo, hi].
func linearProfile(lo, hi float64, n int, a, b float64) ([]float64, float64) {
	x := make([]float64, n)
	floats.Span(x, lo, hi)
	values := make([]float64, n)
	for i, xi := range x {
		values[i] = a*xi + b
	}

	return values, x[1] - x[0]
}

// TestForwardDifference_LinearProfile recovers the exact slope away from the
// duplicated last entry.
func TestForwardDifference_LinearProfile(t *testing.T) {
	values, dx := linearProfile(0, 1, 5, 3.0, 1.0)

	diff, err := ops.ForwardDifference(values, dx)
	require.NoError(t, err)

	for i := 0; i < len(diff)-1; i++ {
		assert.InDelta(t, 3.0, diff[i], 1e-12, "forward difference of a linear profile is its slope")
	}
	assert.Equal(t, diff[len(diff)-2], diff[len(diff)-1], "last entry duplicates the penultimate derivative")
}

// TestBackwardDifference_LinearProfile mirrors the forward case.
func TestBackwardDifference_LinearProfile(t *testing.T) {
	values, dx := linearProfile(-1, 1, 11, -2.5, 0.2)

	diff, err := ops.BackwardDifference(values, dx)
	require.NoError(t, err)

	for i := 1; i < len(diff); i++ {
		assert.InDelta(t, -2.5, diff[i], 1e-12, "backward difference of a linear profile is its slope")
	}
	assert.Equal(t, diff[1], diff[0], "first entry duplicates the second derivative estimate")
}

// TestCentralDifference_LinearProfile is exact everywhere for linear data.
func TestCentralDifference_LinearProfile(t *testing.T) {
	values, dx := linearProfile(0, 1, 11, 4.0, -1.0)

	diff, err := ops.CentralDifference(values, dx)
	require.NoError(t, err)

	for i, d := range diff {
		assert.InDeltaf(t, 4.0, d, 1e-12, "node %d", i)
	}
}

// TestSecondCentralDifference_QuadraticProfile recovers the constant second
// derivative of x² on interior nodes.
func TestSecondCentralDifference_QuadraticProfile(t *testing.T) {
	n := 17
	x := make([]float64, n)
	floats.Span(x, -1, 1)
	values := make([]float64, n)
	for i, xi := range x {
		values[i] = xi * xi
	}

	diff, err := ops.SecondCentralDifference(values, x[1]-x[0])
	require.NoError(t, err)

	for i := 1; i < n-1; i++ {
		assert.InDeltaf(t, 2.0, diff[i], 1e-6, "interior node %d", i)
	}
	assert.Equal(t, diff[1], diff[0], "left boundary reuses the nearest interior value")
	assert.Equal(t, diff[n-2], diff[n-1], "right boundary reuses the nearest interior value")
}

// TestCentralGradient_BoundaryKinds checks closure dispatch and validation.
func TestCentralGradient_BoundaryKinds(t *testing.T) {
	values, dx := linearProfile(0, 1, 11, 4.0, -1.0)

	for _, bc := range []grid.BoundaryKind{grid.Neumann, grid.Dirichlet} {
		diffVals, err := ops.CentralGradient(values, dx, bc)
		require.NoError(t, err)
		for i, d := range diffVals {
			assert.InDeltaf(t, 4.0, d, 1e-12, "bc=%s node %d", bc, i)
		}
	}

	_, err := ops.CentralGradient(values, dx, grid.BoundaryKind(9))
	assert.ErrorIs(t, err, grid.ErrUnknownBoundary, "unknown boundary kinds must be rejected")
}

// TestStencils_RejectDegenerateInputs exercises the shared guards.
func TestStencils_RejectDegenerateInputs(t *testing.T) {
	_, err := ops.ForwardDifference([]float64{1}, 0.1)
	assert.ErrorIs(t, err, ops.ErrShortVector, "one sample is not enough")

	_, err = ops.CentralDifference([]float64{1, 2}, 0)
	assert.ErrorIs(t, err, ops.ErrNonPositiveStep, "dx must be positive")
}
