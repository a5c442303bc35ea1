package price

import "errors"

var (
	// ErrScheduleMismatch indicates supply and density trajectories of
	// different temporal lengths.
	ErrScheduleMismatch = errors.New("price: supply and density trajectories must share the temporal dimension")

	// ErrFieldShape indicates an AlphaField profile that does not match the
	// spatial resolution of the density trajectory.
	ErrFieldShape = errors.New("price: control profile must match the density's spatial resolution")

	// ErrNonPositiveStep indicates a non-positive spatial step.
	ErrNonPositiveStep = errors.New("price: spatial step must be strictly positive")
)
