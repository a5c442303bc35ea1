package hamiltonian

import "errors"

var (
	// ErrShapeMismatch indicates coupled vectors of differing lengths.
	ErrShapeMismatch = errors.New("hamiltonian: coupled vectors must share the same length")
	// ErrNonPositiveStep indicates a non-positive spatial step.
	ErrNonPositiveStep = errors.New("hamiltonian: dx must be strictly positive")
	// ErrDegenerateMass indicates the density mass is too small for a mean.
	ErrDegenerateMass = errors.New("hamiltonian: total mass is too small to average the control")
	// ErrNonPositiveEta indicates the execution cost lost strict positivity.
	ErrNonPositiveEta = errors.New("hamiltonian: effective eta must remain strictly positive")
)
