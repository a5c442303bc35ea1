package picard

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hamiltonian"
	"github.com/katalvlaran/meanfield/hft"
	"github.com/katalvlaran/meanfield/ops"
)

// ControlTrajectory recovers the optimal control from the value and density
// trajectories: at each time level the momentum is the central gradient of
// the value function and the control follows the closed-form law (mean-field
// average fixed at zero, optional eta feedback).
func ControlTrajectory(values, density [][]float64, g *grid.Grid1D, p hft.Params, eta hamiltonian.EtaCallback) ([][]float64, error) {
	if len(values) != len(density) || len(values) != g.NT+1 {
		return nil, ErrShapeMismatch
	}

	control := make([][]float64, len(values))
	for n := range values {
		if len(values[n]) != g.NX || len(density[n]) != g.NX {
			return nil, ErrShapeMismatch
		}
		gradient, err := ops.CentralGradient(values[n], g.DX, g.BC)
		if err != nil {
			return nil, err
		}
		control[n], err = hamiltonian.AlphaStar(gradient, density[n], p,
			&hamiltonian.ControlOptions{Eta: eta})
		if err != nil {
			return nil, err
		}
	}

	return control, nil
}

// ControlMetrics summarizes a control trajectory: mean absolute control,
// control dispersion, and a liquidity proxy mean(exp(−|α|)) bounded in
// (0, 1] — the closer to one, the calmer the aggregate trading.
func ControlMetrics(control [][]float64) Metrics {
	var flat, absFlat, liquidity []float64
	for n := range control {
		for _, a := range control[n] {
			flat = append(flat, a)
			absFlat = append(absFlat, math.Abs(a))
			liquidity = append(liquidity, math.Exp(-math.Abs(a)))
		}
	}
	if len(flat) == 0 {
		return Metrics{}
	}

	return Metrics{
		MeanAbsAlpha:   stat.Mean(absFlat, nil),
		StdAlpha:       popStdDev(flat),
		LiquidityProxy: stat.Mean(liquidity, nil),
	}
}

// popStdDev is the population standard deviation (normalized by n).
func popStdDev(values []float64) float64 {
	mean := stat.Mean(values, nil)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)))
}

// SaveMetrics persists the metrics record as indented JSON, creating parent
// directories as needed.
func SaveMetrics(metrics Metrics, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
