package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaengine/internal/analysis"
	"github.com/rshade/lcaengine/internal/logging"
	"github.com/rshade/lcaengine/internal/report"
)

// CalculateParams holds the flags of the calculate command.
type CalculateParams struct {
	File        string
	Region      string
	Uncertainty bool
	Sensitivity bool
	MonteCarlo  int
	Seed        uint64
	Output      string
	Concurrency int
	Metrics     bool
}

// NewCalculateCmd creates the calculate command.
func NewCalculateCmd() *cobra.Command {
	var params CalculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate impact indicators for an inventory",
		Long: `Calculate every impact category (climate, air, water, human health,
resources, biodiversity, circularity) for each record in an inventory file.

Records are computed concurrently; output keeps the file order. Regions
without catalog factors fall back to built-in defaults and the result is
flagged.`,
		Example: `  lca calculate -f smelter.yaml --region "United States"
  lca calculate -f lines.json --output ndjson --concurrency 8
  cat smelter.yaml | lca calculate -f - --sensitivity`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalculate(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.File, "file", "f", "", "inventory file (YAML or JSON), - for stdin")
	cmd.Flags().StringVar(&params.Region, "region", "", "region for factor lookup (default from config)")
	cmd.Flags().BoolVar(&params.Uncertainty, "uncertainty", false, "include uncertainty distributions")
	cmd.Flags().BoolVar(&params.Sensitivity, "sensitivity", false, "include sensitivity analysis")
	cmd.Flags().IntVar(&params.MonteCarlo, "monte-carlo", 0, "Monte Carlo samples for uncertainty (implies --uncertainty)")
	cmd.Flags().Uint64Var(&params.Seed, "seed", 1, "Monte Carlo random seed")
	cmd.Flags().StringVar(&params.Output, "output", "", "output format: table, json, ndjson (default from config)")
	cmd.Flags().IntVar(&params.Concurrency, "concurrency", 0, "parallel calculations (default from config)")
	cmd.Flags().BoolVar(&params.Metrics, "metrics", false, "print Prometheus metrics to stderr afterwards")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func executeCalculate(cmd *cobra.Command, params CalculateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()

	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	format, err := rt.format(params.Output)
	if err != nil {
		return err
	}
	if params.MonteCarlo < 0 {
		return fmt.Errorf("--monte-carlo must be >= 0, got %d", params.MonteCarlo)
	}

	records, err := loadRecords(cmd, params.File)
	if err != nil {
		return err
	}

	region := rt.region(params.Region)
	concurrency := params.Concurrency
	if concurrency < 1 {
		concurrency = rt.cfg.Engine.Concurrency
	}

	results, err := rt.engine.CalculateBatch(ctx, records, region, concurrency)
	if err != nil {
		return fmt.Errorf("calculating impacts: %w", err)
	}

	reports := make([]report.Report, len(results))
	for i, res := range results {
		reports[i] = report.NewReport(res)
	}

	if params.Uncertainty || params.Sensitivity || params.MonteCarlo > 0 {
		opts := []analysis.Option{
			analysis.WithRegion(region),
			analysis.WithLogger(logging.ComponentLogger(logger, "analysis")),
		}
		if params.MonteCarlo > 0 {
			opts = append(opts, analysis.WithMonteCarlo(params.MonteCarlo, params.Seed))
		}
		analyzer := analysis.NewAnalyzer(rt.engine, opts...)

		for i, rec := range records {
			if params.Uncertainty || params.MonteCarlo > 0 {
				reports[i].Uncertainty = analyzer.Uncertainty(rec)
			}
			if params.Sensitivity {
				reports[i].Sensitivity = analyzer.Sensitivity(rec)
			}
		}
	}

	if err := report.RenderReports(cmd.OutOrStdout(), format, reports...); err != nil {
		return err
	}

	log.Info().
		Int("records", len(records)).
		Str("region", region).
		Dur("elapsed", time.Since(start)).
		Msg("calculation complete")

	if params.Metrics {
		return rt.metrics.WriteText(cmd.ErrOrStderr())
	}
	return nil
}
