package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/meanfield/grid"
	"github.com/katalvlaran/meanfield/hamiltonian"
	"github.com/katalvlaran/meanfield/picard"
	"github.com/katalvlaran/meanfield/price"
)

var (
	runConfigPath   string
	endogenousPrice bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a simulation from a YAML scenario file",
	Long: `Solves the coupled HJB / Fokker-Planck system for the scenario and
stores metrics.json, errors.csv, and config.json under a timestamped
artifacts directory. With --endogenous-price a price-clearing stage runs on
top of the converged controls and adds price.csv.`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "path to the YAML scenario file")
	runCmd.Flags().BoolVar(&endogenousPrice, "endogenous-price", false, "run price clearing after solving for controls")
	_ = runCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(runConfigPath)
	if err != nil {
		return err
	}

	runDir := filepath.Join("artifacts", "run-"+time.Now().Format("20060102-150405"))
	stats, err := runExperiment(cfg, runDir, endogenousPrice)
	if err != nil {
		return err
	}

	fields := []zap.Field{
		zap.String("artifacts", runDir),
		zap.Int("iterations", stats.Iterations),
		zap.Float64("final_error", stats.FinalError),
		zap.Float64("mean_abs_alpha", stats.MeanAbsAlpha),
		zap.Bool("stalled", stats.Stalled),
	}
	if endogenousPrice {
		fields = append(fields,
			zap.Float64("price_mean", stats.PriceMean),
			zap.Float64("price_std", stats.PriceStd))
	}
	logger.Info("run completed", fields...)

	return nil
}

// runStats carries the headline numbers of one experiment, shared by the run
// summary log and the sweep summary table.
type runStats struct {
	Iterations     int
	FinalError     float64
	MeanAbsAlpha   float64
	StdAlpha       float64
	LiquidityProxy float64
	Stalled        bool
	PriceMean      float64
	PriceStd       float64
}

// runExperiment solves one scenario and writes its artifact set.
func runExperiment(cfg *scenario, artifactsDir string, computePrice bool) (*runStats, error) {
	g, err := cfg.buildGrid()
	if err != nil {
		return nil, err
	}
	params := cfg.buildParams()

	logger.Info("scenario loaded",
		zap.Float64("x_min", g.XMin), zap.Float64("x_max", g.XMax),
		zap.Int("nx", g.NX), zap.Int("nt", g.NT),
		zap.Float64("horizon", g.Horizon), zap.Stringer("bc", g.BC),
		zap.Float64("nu", params.Nu), zap.Float64("phi", params.Phi),
		zap.Float64("gamma_T", params.GammaT),
		zap.Float64("eta0", params.Eta0), zap.Float64("eta1", params.Eta1))

	limits := g.SuggestCFLLimits(params.Nu, cfg.Solver.VelocityGuess)
	if limits.DiffusionDt > 0 && g.DT > limits.DiffusionDt {
		logger.Warn("time step exceeds diffusion CFL limit",
			zap.Float64("dt", g.DT), zap.Float64("diffusion_dt", limits.DiffusionDt))
	}
	if limits.AdvectionDt > 0 && g.DT > limits.AdvectionDt {
		logger.Warn("time step exceeds advection CFL limit",
			zap.Float64("dt", g.DT), zap.Float64("advection_dt", limits.AdvectionDt))
	}

	if err := os.MkdirAll(artifactsDir, 0o755); err != nil {
		return nil, fmt.Errorf("artifacts dir: %w", err)
	}

	opts := cfg.buildSolverOptions()
	opts.MetricsPath = filepath.Join(artifactsDir, "metrics.json")
	if cfg.dynamicEta() {
		opts.Eta = hamiltonian.EtaFromFlow
	}
	opts.Callback = func(iteration int, errorAbs float64) {
		logger.Debug("picard iteration",
			zap.Int("iteration", iteration), zap.Float64("error", errorAbs))
	}

	result, err := picard.Solve(g, params, &opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if result.Stalled {
		logger.Warn("iteration stalled before reaching tolerance",
			zap.Int("iterations", result.Iterations))
	}

	if err := writeErrorsCSV(filepath.Join(artifactsDir, "errors.csv"), result); err != nil {
		return nil, err
	}
	if err := writeConfigJSON(filepath.Join(artifactsDir, "config.json"), cfg); err != nil {
		return nil, err
	}

	stats := &runStats{
		Iterations:     result.Iterations,
		FinalError:     result.Metrics.FinalError,
		MeanAbsAlpha:   result.Metrics.MeanAbsAlpha,
		StdAlpha:       result.Metrics.StdAlpha,
		LiquidityProxy: result.Metrics.LiquidityProxy,
		Stalled:        result.Stalled,
	}

	if computePrice {
		if err := clearPrices(cfg, g, result, artifactsDir, stats); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// clearPrices runs the endogenous-price stage on the converged controls: the
// population's response is the solved control shifted linearly in the price.
func clearPrices(cfg *scenario, g *grid.Grid1D, result *picard.Result, artifactsDir string, stats *runStats) error {
	supply, err := cfg.supplySchedule(g)
	if err != nil {
		return err
	}
	sensitivity := cfg.priceSensitivity()

	field := func(n int, p float64) []float64 {
		base := result.Control[n]
		profile := make([]float64, len(base))
		for i := range base {
			profile[i] = base[i] - sensitivity*p
		}
		return profile
	}

	priceOpts := price.DefaultOptions()
	priceOpts.Bracket = cfg.priceBracket()
	prices, err := price.SolveClearing(field, result.Density, supply, g.DX, &priceOpts)
	if err != nil {
		return fmt.Errorf("price clearing: %w", err)
	}

	stats.PriceMean = stat.Mean(prices, nil)
	stats.PriceStd = math.Sqrt(stat.PopVariance(prices, nil))

	return writePriceCSV(filepath.Join(artifactsDir, "price.csv"), g.T, prices)
}

func writeErrorsCSV(path string, result *picard.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("errors.csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"iteration", "error_l2", "error_relative", "mix"}); err != nil {
		return err
	}
	for i, e := range result.Errors {
		row := []string{
			strconv.Itoa(i),
			formatFloat(e),
			formatFloat(result.RelativeErrors[i]),
			formatFloat(result.MixHistory[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

func writePriceCSV(path string, times, prices []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("price.csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"time", "price"}); err != nil {
		return err
	}
	for n := range prices {
		if err := w.Write([]string{formatFloat(times[n]), formatFloat(prices[n])}); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

func writeConfigJSON(path string, cfg *scenario) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config.json: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
