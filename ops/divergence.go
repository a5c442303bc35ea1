package ops

// UpwindDivergence computes the conservative divergence of the advective
// flux m·v with Godunov upwinding.
//
// Outline:
//  1. Split the cell-centered flux into positive and negative parts.
//  2. Build face fluxes F_{i+1/2} = max(m·v, 0)_i + min(m·v, 0)_{i+1};
//     domain faces carry zero flux.
//  3. Difference across faces and divide by dx.
//  4. Subtract the mean residual so the discrete integral is exactly zero
//     regardless of rounding at the boundaries.
func UpwindDivergence(m, v []float64, dx float64) ([]float64, error) {
	if len(m) != len(v) {
		return nil, ErrShapeMismatch
	}
	if err := checkStencilInput(m, dx); err != nil {
		return nil, err
	}

	n := len(m)
	faces := make([]float64, n+1)
	for i := 0; i < n-1; i++ {
		left := m[i] * v[i]
		right := m[i+1] * v[i+1]
		if left < 0 {
			left = 0
		}
		if right > 0 {
			right = 0
		}
		faces[i+1] = left + right
	}

	div := make([]float64, n)
	var sum float64
	for i := 0; i < n; i++ {
		div[i] = (faces[i+1] - faces[i]) / dx
		sum += div[i]
	}

	mean := sum / float64(n)
	for i := 0; i < n; i++ {
		div[i] -= mean
	}

	return div, nil
}
