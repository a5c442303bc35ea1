package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sweepConfigPath string
	sweepPhiList    string
	sweepGammaList  string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a phi × gamma_T parameter sweep over a base scenario",
	Long: `Solves the scenario once per (phi, gamma_T) combination, storing each
case's artifacts in its own subdirectory and the headline numbers in
summary.csv. Omitted lists fall back to the base scenario's value.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepConfigPath, "config", "", "path to the base YAML scenario file")
	sweepCmd.Flags().StringVar(&sweepPhiList, "phi", "", "comma-separated phi values (e.g. 0.05,0.1)")
	sweepCmd.Flags().StringVar(&sweepGammaList, "gamma-T", "", "comma-separated gamma_T values (e.g. 1.0,2.0)")
	_ = sweepCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(sweepConfigPath)
	if err != nil {
		return err
	}

	phiValues, err := parseFloatList(sweepPhiList)
	if err != nil {
		return fmt.Errorf("--phi: %w", err)
	}
	gammaValues, err := parseFloatList(sweepGammaList)
	if err != nil {
		return fmt.Errorf("--gamma-T: %w", err)
	}
	if len(phiValues) == 0 {
		phiValues = []float64{base.Params.Phi}
	}
	if len(gammaValues) == 0 {
		gammaValues = []float64{base.Params.GammaT}
	}

	sweepDir := filepath.Join("artifacts", "sweep-"+time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(sweepDir, 0o755); err != nil {
		return fmt.Errorf("sweep dir: %w", err)
	}

	rows := [][]string{{
		"phi", "gamma_T", "iterations", "final_error",
		"mean_abs_alpha", "std_alpha", "liquidity_proxy", "stalled",
	}}
	for _, phi := range phiValues {
		for _, gamma := range gammaValues {
			variant := *base
			variant.Params.Phi = phi
			variant.Params.GammaT = gamma

			caseDir := filepath.Join(sweepDir,
				fmt.Sprintf("phi-%g_gamma-%g", phi, gamma))
			stats, err := runExperiment(&variant, caseDir, false)
			if err != nil {
				return fmt.Errorf("case phi=%g gamma_T=%g: %w", phi, gamma, err)
			}

			rows = append(rows, []string{
				formatFloat(phi),
				formatFloat(gamma),
				strconv.Itoa(stats.Iterations),
				formatFloat(stats.FinalError),
				formatFloat(stats.MeanAbsAlpha),
				formatFloat(stats.StdAlpha),
				formatFloat(stats.LiquidityProxy),
				strconv.FormatBool(stats.Stalled),
			})
			logger.Info("sweep case completed",
				zap.Float64("phi", phi), zap.Float64("gamma_T", gamma),
				zap.Float64("final_error", stats.FinalError),
				zap.Bool("stalled", stats.Stalled))
		}
	}

	if err := writeSummaryCSV(filepath.Join(sweepDir, "summary.csv"), rows); err != nil {
		return err
	}
	logger.Info("sweep finished", zap.String("artifacts", sweepDir),
		zap.Int("cases", len(rows)-1))

	return nil
}

func writeSummaryCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("summary.csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}

	return w.Error()
}

func parseFloatList(values string) ([]float64, error) {
	var out []float64
	for _, item := range strings.Split(values, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", item, err)
		}
		out = append(out, v)
	}

	return out, nil
}
