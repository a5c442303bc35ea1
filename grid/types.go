// Package grid defines the boundary-condition kinds and the grid value object.
package grid

// BoundaryKind selects how vectors behave at the domain endpoints.
//
//   - Neumann   — first-order one-sided gradient is imposed at each endpoint;
//     the discrete Laplacian keeps constants in its null space (no flux).
//   - Dirichlet — endpoint values are pinned directly; the Laplacian zeroes
//     boundary rows and columns except the diagonal.
type BoundaryKind int

const (
	// Neumann imposes boundary gradients (zero flux by default).
	Neumann BoundaryKind = iota
	// Dirichlet pins boundary values.
	Dirichlet
)

// ParseBoundary maps a canonical lowercase name to its BoundaryKind.
// Unknown names yield ErrUnknownBoundary.
func ParseBoundary(name string) (BoundaryKind, error) {
	switch name {
	case "neumann", "":
		return Neumann, nil
	case "dirichlet":
		return Dirichlet, nil
	default:
		return Neumann, ErrUnknownBoundary
	}
}

// String returns the canonical lowercase name of the boundary kind.
func (b BoundaryKind) String() string {
	switch b {
	case Neumann:
		return "neumann"
	case Dirichlet:
		return "dirichlet"
	default:
		return "unknown"
	}
}

// Grid1D is the joint space-time grid used across the HJB and FP solvers.
// It is immutable once constructed; solvers hold it by reference and never
// mutate it. X and T are strictly increasing and equally spaced.
type Grid1D struct {
	XMin, XMax float64      // spatial bounds, XMin < XMax
	NX         int          // spatial nodes including boundaries, ≥ 2
	Horizon    float64      // final time, > 0
	NT         int          // time steps; the time axis has NT+1 levels
	BC         BoundaryKind // boundary-condition kind

	DX float64   // uniform spatial step
	DT float64   // uniform time step
	X  []float64 // node coordinates, length NX
	T  []float64 // time levels, length NT+1
}

// CFLLimits bundles heuristic stability bounds for a given grid.
// Zero fields mean the corresponding bound does not apply.
type CFLLimits struct {
	Dt          float64 // the grid's actual time step
	DiffusionDt float64 // dx²/(2·nu) when nu > 0
	AdvectionDt float64 // dx/|v|max when a velocity estimate was provided
}
