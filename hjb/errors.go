package hjb

import "errors"

var (
	// ErrShapeMismatch indicates vectors or trajectories that do not match
	// the grid discretization.
	ErrShapeMismatch = errors.New("hjb: arrays must match the grid discretization")
	// ErrNonFinite indicates numerical divergence inside an inner iteration.
	ErrNonFinite = errors.New("hjb: non-finite value encountered during inner iteration")
)
