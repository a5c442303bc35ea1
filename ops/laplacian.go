package ops

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/meanfield/grid"
)

// Laplacian is the sparse tridiagonal second-difference operator on a grid,
// already scaled by 1/dx² and adjusted for the grid's boundary kind.
//
// Under Neumann conditions the boundary rows are (−2, 2)/dx², which keeps
// the constant vector in the null space (discrete no-flux). Under Dirichlet
// conditions the boundary rows and columns are zeroed except the diagonal,
// so boundary values are pinned by the implicit systems built from it.
//
// A Laplacian is immutable once assembled; assemble it once per grid and
// reuse it across time steps and Picard iterations.
type Laplacian struct {
	n    int
	sub  []float64 // entries (i+1, i), length n-1
	diag []float64 // entries (i, i), length n
	sup  []float64 // entries (i, i+1), length n-1
}

// NewLaplacian assembles the Laplacian for the given grid.
// Complexity: O(nx) time and memory.
func NewLaplacian(g *grid.Grid1D) (*Laplacian, error) {
	if g.NX < 2 {
		return nil, ErrShortVector
	}
	if g.DX <= 0 {
		return nil, ErrNonPositiveStep
	}

	n := g.NX
	l := &Laplacian{
		n:    n,
		sub:  make([]float64, n-1),
		diag: make([]float64, n),
		sup:  make([]float64, n-1),
	}
	for i := 0; i < n; i++ {
		l.diag[i] = -2.0
	}
	for i := 0; i < n-1; i++ {
		l.sub[i] = 1.0
		l.sup[i] = 1.0
	}

	switch g.BC {
	case grid.Neumann:
		// Reflecting rows: L·1 = 0 holds exactly.
		l.sup[0] = 2.0
		l.sub[n-2] = 2.0
	case grid.Dirichlet:
		// Zero boundary rows and columns, pin the diagonal.
		l.diag[0] = 1.0
		l.diag[n-1] = 1.0
		l.sup[0] = 0.0
		l.sub[n-2] = 0.0
		if n > 2 {
			l.sub[0] = 0.0
			l.sup[n-2] = 0.0
		}
	default:
		return nil, grid.ErrUnknownBoundary
	}

	inv := 1.0 / (g.DX * g.DX)
	for i := 0; i < n; i++ {
		l.diag[i] *= inv
	}
	for i := 0; i < n-1; i++ {
		l.sub[i] *= inv
		l.sup[i] *= inv
	}

	return l, nil
}

// Size returns the operator dimension.
func (l *Laplacian) Size() int { return l.n }

// MulVec applies the operator to a vector.
func (l *Laplacian) MulVec(v []float64) ([]float64, error) {
	if len(v) != l.n {
		return nil, ErrShapeMismatch
	}
	out := make([]float64, l.n)
	for i := 0; i < l.n; i++ {
		s := l.diag[i] * v[i]
		if i > 0 {
			s += l.sub[i-1] * v[i-1]
		}
		if i < l.n-1 {
			s += l.sup[i] * v[i+1]
		}
		out[i] = s
	}

	return out, nil
}

// ImplicitSystem assembles I − dt·nu·L as a gonum tridiagonal matrix, ready
// for the direct solves performed by the HJB and FP steppers.
func (l *Laplacian) ImplicitSystem(dt, nu float64) (*mat.Tridiag, error) {
	if dt <= 0 {
		return nil, ErrNonPositiveStep
	}
	if nu < 0 {
		return nil, ErrNegativeDiffusion
	}

	n := l.n
	dl := make([]float64, n-1)
	d := make([]float64, n)
	du := make([]float64, n-1)
	for i := 0; i < n; i++ {
		d[i] = 1.0 - dt*nu*l.diag[i]
	}
	for i := 0; i < n-1; i++ {
		dl[i] = -dt * nu * l.sub[i]
		du[i] = -dt * nu * l.sup[i]
	}

	return mat.NewTridiag(n, dl, d, du), nil
}

// SolveImplicit solves (I − dt·nu·L)·x = rhs through the supplied system.
// The system must come from ImplicitSystem on a Laplacian of matching size.
func SolveImplicit(system *mat.Tridiag, rhs []float64) ([]float64, error) {
	n, _ := system.Dims()
	if len(rhs) != n {
		return nil, ErrShapeMismatch
	}

	var dst mat.VecDense
	if err := system.SolveVecTo(&dst, false, mat.NewVecDense(n, rhs)); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	copy(out, dst.RawVector().Data)

	return out, nil
}
