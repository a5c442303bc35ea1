package ops

// DefaultMassTol is the absolute tolerance below which the total mass left
// after clipping is considered degenerate.
const DefaultMassTol = 1e-12

// ProjectSimplex projects a candidate density onto the non-negative simplex:
// negative entries are clipped to zero and the result is rescaled so that its
// discrete integral (sum times dx) equals one.
//
// An atol ≤ 0 falls back to DefaultMassTol. When the clipped mass is at or
// below the tolerance the density is degenerate and ErrDegenerateMass is
// returned.
func ProjectSimplex(m []float64, dx, atol float64) ([]float64, error) {
	if len(m) == 0 {
		return nil, ErrShortVector
	}
	if dx <= 0 {
		return nil, ErrNonPositiveStep
	}
	if atol <= 0 {
		atol = DefaultMassTol
	}

	out := make([]float64, len(m))
	var mass float64
	for i, value := range m {
		if value < 0 {
			value = 0
		}
		out[i] = value
		mass += value
	}
	mass *= dx
	if mass <= atol {
		return nil, ErrDegenerateMass
	}

	for i := range out {
		out[i] /= mass
	}

	return out, nil
}

// Mass returns the discrete integral of a density, sum(m)·dx.
func Mass(m []float64, dx float64) float64 {
	var sum float64
	for _, value := range m {
		sum += value
	}

	return sum * dx
}
