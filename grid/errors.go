package grid

import "errors"

var (
	// ErrTooFewNodes indicates fewer than two spatial nodes were requested.
	ErrTooFewNodes = errors.New("grid: at least two spatial nodes are required")
	// ErrTooFewSteps indicates fewer than one time step was requested.
	ErrTooFewSteps = errors.New("grid: at least one time step is required")
	// ErrInvertedBounds indicates x_max is not strictly greater than x_min.
	ErrInvertedBounds = errors.New("grid: x_max must be strictly greater than x_min")
	// ErrNonPositiveHorizon indicates the time horizon is not positive.
	ErrNonPositiveHorizon = errors.New("grid: horizon must be positive")
	// ErrUnknownBoundary indicates an unrecognized boundary-condition kind.
	ErrUnknownBoundary = errors.New("grid: boundary kind must be Neumann or Dirichlet")
	// ErrVectorLength indicates a vector does not match the spatial grid.
	ErrVectorLength = errors.New("grid: vector length must equal the number of spatial nodes")
	// ErrNonPositiveDtMax indicates a stability bound that is not positive.
	ErrNonPositiveDtMax = errors.New("grid: dt_max must be positive when provided")
)
