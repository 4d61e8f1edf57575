// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/kinetics/balance"
	"github.com/katalvlaran/kinetics/calibrate"
	"github.com/katalvlaran/kinetics/config"
	"github.com/katalvlaran/kinetics/observe"
)

// calibrateReport is the JSON shape of a calibrate run.
type calibrateReport struct {
	RunID        string        `json:"run_id"`
	Condition    string        `json:"condition,omitempty"`
	Seed         int64         `json:"seed"`
	Total        int           `json:"total"`
	Accepted     int           `json:"accepted"`
	Attempts     int           `json:"attempts"`
	Singular     int           `json:"singular"`
	Exhausted    string        `json:"exhausted,omitempty"`
	Matrices     [][][]float64 `json:"matrices"`
	SteadyStates [][]float64   `json:"steady_states"`
	Balance      balanceStats  `json:"balance"`
}

type balanceStats struct {
	Threshold        float64 `json:"threshold"`
	BalancedFraction float64 `json:"balanced_fraction"`
	MeanAbsDeviation float64 `json:"mean_abs_deviation"`
	MaxAbsDeviation  float64 `json:"max_abs_deviation"`
	DissipationCount int     `json:"dissipation_count"`
	DissipationMean  float64 `json:"dissipation_mean,omitempty"`
	DissipationMin   float64 `json:"dissipation_min,omitempty"`
	DissipationMax   float64 `json:"dissipation_max,omitempty"`
}

func newCalibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Sample transition matrices matching an observed steady state",
		Long: `Draw candidate transition matrices until total_matrices of them have a
stationary distribution inside the threshold box around the observed one.

The run file is YAML; every key can be overridden with a KINETICS_*
environment variable (e.g. KINETICS_SAMPLER_SIZE=3).

Examples:
  kinetics calibrate --config run.yaml
  kinetics calibrate --config run.yaml --seed 42 --json
  KINETICS_TOTAL_MATRICES=50 kinetics calibrate --config run.yaml --metrics`,
		RunE: runCalibrate,
	}
	cmd.Flags().String("config", "", "Path to the YAML run file")
	cmd.Flags().Int64("seed", 0, "Generator seed (overrides the run file; 0 keeps it)")
	cmd.Flags().Duration("progress", 2*time.Second, "Minimum interval between progress log lines")
	cmd.Flags().Bool("metrics", false, "Print Prometheus metrics to stderr after the run")

	return cmd
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	f, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
		f.Seed = seed
	}
	log := loggerFor(cmd, f.Logging.Level, f.Logging.Format)

	cfg, err := f.Calibration()
	if err != nil {
		return err
	}
	rng, seed := f.Rand()
	log.Debug("generator seeded", slog.Int64("seed", seed))

	every, _ := cmd.Flags().GetDuration("progress")
	if every <= 0 {
		every = time.Second
	}
	reg := prometheus.NewRegistry()
	obs := observe.Multi(observe.NewPrometheus(reg), observe.NewProgress(log, every))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, runErr := calibrate.Run(ctx, cfg, rng, calibrate.WithLogger(log), calibrate.WithObserver(obs))
	var ex *calibrate.ExhaustedError
	switch {
	case errors.As(runErr, &ex):
		res = ex.Partial
	case runErr != nil:
		return runErr
	}

	// Diagnostics run on the command context so an interrupted search
	// still reports on what it collected.
	summary, err := balance.Summarize(cmd.Context(), res.AsMatrices(), f.BalanceThreshold, f.Workers)
	if err != nil {
		return fmt.Errorf("balance diagnostics: %w", err)
	}

	report := calibrateReport{
		RunID:        res.RunID,
		Condition:    res.Condition,
		Seed:         seed,
		Total:        res.Total,
		Accepted:     res.Accepted(),
		Attempts:     res.Attempts,
		Singular:     res.Singular,
		Matrices:     res.Rows(),
		SteadyStates: res.SteadyStates,
		Balance: balanceStats{
			Threshold:        f.BalanceThreshold,
			BalancedFraction: summary.BalancedFraction,
			MeanAbsDeviation: summary.MeanAbsDeviation,
			MaxAbsDeviation:  summary.MaxAbsDeviation,
			DissipationCount: summary.DissipationCount,
			DissipationMean:  summary.DissipationMean,
			DissipationMin:   summary.DissipationMin,
			DissipationMax:   summary.DissipationMax,
		},
	}
	if ex != nil {
		report.Exhausted = ex.Reason.String()
	}

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		err = writeJSON(cmd.OutOrStdout(), report)
	} else {
		printCalibrateReport(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return err
	}

	if withMetrics, _ := cmd.Flags().GetBool("metrics"); withMetrics {
		if err := dumpMetrics(cmd.ErrOrStderr(), reg); err != nil {
			return err
		}
	}

	return runErr
}

func printCalibrateReport(w io.Writer, r calibrateReport) {
	fmt.Fprintf(w, "run %s", r.RunID)
	if r.Condition != "" {
		fmt.Fprintf(w, " (%s)", r.Condition)
	}
	fmt.Fprintf(w, "\n  seed:       %d\n", r.Seed)
	fmt.Fprintf(w, "  accepted:   %d/%d after %d attempts (%d singular)\n", r.Accepted, r.Total, r.Attempts, r.Singular)
	if r.Exhausted != "" {
		fmt.Fprintf(w, "  stopped:    %s\n", r.Exhausted)
	}
	fmt.Fprintf(w, "  balanced:   %.1f%% at threshold %g\n", 100*r.Balance.BalancedFraction, r.Balance.Threshold)
	fmt.Fprintf(w, "  deviation:  mean|D| %.6g, max|D| %.6g\n", r.Balance.MeanAbsDeviation, r.Balance.MaxAbsDeviation)
	if r.Balance.DissipationCount > 0 {
		fmt.Fprintf(w, "  dissipation: n=%d mean %.6g [%.6g, %.6g]\n",
			r.Balance.DissipationCount, r.Balance.DissipationMean, r.Balance.DissipationMin, r.Balance.DissipationMax)
	}
}

func dumpMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
