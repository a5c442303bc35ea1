package hft

import "errors"

var (
	// ErrNonPositiveStd indicates a non-positive initial-density deviation.
	ErrNonPositiveStd = errors.New("hft: m0_std must be strictly positive")
	// ErrNegativeNu indicates a negative diffusion intensity.
	ErrNegativeNu = errors.New("hft: nu must be non-negative")
	// ErrZeroMass indicates the Gaussian produced zero total mass on the grid.
	ErrZeroMass = errors.New("hft: initial density evaluated to zero total mass")
)
