package hft

import (
	"math"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/ops"
)

// InitialDensity samples a normalized Gaussian with moments (M0Mean, M0Std)
// on the spatial grid. The result is non-negative and its discrete integral
// equals one within DefaultMassTol.
func InitialDensity(g *grid.Grid1D, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	density := make([]float64, g.NX)
	var mass float64
	for i, x := range g.X {
		z := (x - p.M0Mean) / p.M0Std
		density[i] = math.Exp(-0.5 * z * z)
		mass += density[i]
	}
	mass *= g.DX
	if mass <= 0 {
		return nil, ErrZeroMass
	}
	for i := range density {
		density[i] /= mass
	}

	// Guard against rounding drift in the normalization itself.
	if total := ops.Mass(density, g.DX); math.Abs(total-1.0) > ops.DefaultMassTol {
		for i := range density {
			density[i] /= total
		}
	}

	return density, nil
}
