package picard_test

import (
	"fmt"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hft"
	"github.com/katalvlaran/meanfield/ops"
	"github.com/katalvlaran/meanfield/picard"
)

// ExampleSolve runs the damped fixed-point iteration on a small frictionless
// market and reports the terminal density mass, which the forward solver
// keeps at exactly one.
func ExampleSolve() {
	g, err := grid.New(-3, 3, 61, 0.5, 25, grid.Neumann)
	if err != nil {
		fmt.Println("grid:", err)
		return
	}

	params := hft.Params{Nu: 0.1, Eta0: 1, M0Std: 1}
	opts := picard.DefaultOptions()
	opts.MaxIter = 25
	opts.Tol = 1e-6
	opts.Mix = 0.8

	result, err := picard.Solve(g, params, &opts)
	if err != nil {
		fmt.Println("solve:", err)
		return
	}

	final := result.Density[len(result.Density)-1]
	fmt.Printf("stalled=%v terminal mass=%.6f\n", result.Stalled, ops.Mass(final, g.DX))
	// Output:
	// stalled=false terminal mass=1.000000
}
