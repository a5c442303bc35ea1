package ops

import "errors"

var (
	// ErrShortVector indicates an operator needs at least two samples.
	ErrShortVector = errors.New("ops: vector must contain at least two samples")
	// ErrNonPositiveStep indicates a non-positive discretization step.
	ErrNonPositiveStep = errors.New("ops: step size must be strictly positive")
	// ErrShapeMismatch indicates coupled vectors of differing lengths.
	ErrShapeMismatch = errors.New("ops: coupled vectors must share the same length")
	// ErrDegenerateMass indicates near-zero total mass during normalization.
	ErrDegenerateMass = errors.New("ops: total mass is too small after projection")
	// ErrNegativeDiffusion indicates a negative diffusion coefficient.
	ErrNegativeDiffusion = errors.New("ops: diffusion coefficient must be non-negative")
)
