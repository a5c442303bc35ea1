package ops

import "github.com/katalvlaran/meanfield/grid"

// ForwardDifference computes the first-order forward difference on a uniform
// grid. The last entry duplicates the penultimate derivative so the result
// keeps the input shape.
func ForwardDifference(values []float64, dx float64) ([]float64, error) {
	if err := checkStencilInput(values, dx); err != nil {
		return nil, err
	}
	n := len(values)
	diff := make([]float64, n)
	for i := 0; i < n-1; i++ {
		diff[i] = (values[i+1] - values[i]) / dx
	}
	diff[n-1] = diff[n-2]

	return diff, nil
}

// BackwardDifference computes the first-order backward difference. The first
// entry duplicates the second derivative estimate to keep the input shape.
func BackwardDifference(values []float64, dx float64) ([]float64, error) {
	if err := checkStencilInput(values, dx); err != nil {
		return nil, err
	}
	n := len(values)
	diff := make([]float64, n)
	for i := 1; i < n; i++ {
		diff[i] = (values[i] - values[i-1]) / dx
	}
	diff[0] = diff[1]

	return diff, nil
}

// CentralDifference computes the symmetric first derivative. Boundary values
// fall back to first-order one-sided estimates.
func CentralDifference(values []float64, dx float64) ([]float64, error) {
	if err := checkStencilInput(values, dx); err != nil {
		return nil, err
	}
	n := len(values)
	diff := make([]float64, n)
	for i := 1; i < n-1; i++ {
		diff[i] = (values[i+1] - values[i-1]) / (2.0 * dx)
	}
	diff[0] = (values[1] - values[0]) / dx
	diff[n-1] = (values[n-1] - values[n-2]) / dx

	return diff, nil
}

// SecondCentralDifference computes the second derivative with the classic
// three-point stencil. Boundary entries reuse the nearest interior result.
func SecondCentralDifference(values []float64, dx float64) ([]float64, error) {
	if err := checkStencilInput(values, dx); err != nil {
		return nil, err
	}
	n := len(values)
	diff := make([]float64, n)
	for i := 1; i < n-1; i++ {
		diff[i] = (values[i+1] - 2.0*values[i] + values[i-1]) / (dx * dx)
	}
	if n > 2 {
		diff[0] = diff[1]
		diff[n-1] = diff[n-2]
	}

	return diff, nil
}

// CentralGradient computes the gradient via central differences with
// one-sided first-order boundary closures for the given boundary kind.
func CentralGradient(values []float64, dx float64, bc grid.BoundaryKind) ([]float64, error) {
	if bc != grid.Neumann && bc != grid.Dirichlet {
		return nil, grid.ErrUnknownBoundary
	}

	// Both supported kinds use the same one-sided closure.
	return CentralDifference(values, dx)
}

// checkStencilInput guards every stencil against degenerate inputs.
func checkStencilInput(values []float64, dx float64) error {
	if len(values) < 2 {
		return ErrShortVector
	}
	if dx <= 0 {
		return ErrNonPositiveStep
	}

	return nil
}
