package grid_test

import (
	"fmt"

	"github.com/katalvlaran/meanfield/grid"
)

// ExampleNew builds the grid used by the baseline trading scenario and
// inspects its derived spacing and CFL heuristics.
func ExampleNew() {
	g, err := grid.New(-3.0, 3.0, 121, 1.0, 100, grid.Neumann)
	if err != nil {
		fmt.Println("grid:", err)
		return
	}

	limits := g.SuggestCFLLimits(0.2, 1.0)
	fmt.Printf("dx=%.3f dt=%.3f bc=%s\n", g.DX, g.DT, g.BC)
	fmt.Printf("diffusion dt limit=%.4f\n", limits.DiffusionDt)

	// Output:
	// dx=0.050 dt=0.010 bc=neumann
	// diffusion dt limit=0.0063
}
