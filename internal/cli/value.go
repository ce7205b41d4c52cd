package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaengine/internal/logging"
	"github.com/rshade/lcaengine/internal/report"
	"github.com/rshade/lcaengine/internal/valuation"
)

// NewValueCmd creates the value command.
func NewValueCmd() *cobra.Command {
	var (
		file, market, region, output string
		noCarbon                     bool
	)

	cmd := &cobra.Command{
		Use:   "value",
		Short: "Value recoverable materials at market prices",
		Long: `Price recyclable by-products, by-product reuse and ore metal content
of each inventory record, and subtract a carbon cost for the record's
global warming potential.

Prices are cached for valuation.cache_ttl_seconds. When the market feed
fails an expired cached price is used and flagged as stale.`,
		Example: `  lca value -f smelter.yaml --market LME
  lca value -f smelter.yaml --no-carbon --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := logging.FromContext(ctx)

			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.format(output)
			if err != nil {
				return err
			}
			if market == "" {
				market = rt.cfg.Valuation.Market
			}

			records, err := loadRecords(cmd, file)
			if err != nil {
				return err
			}
			valuer, err := rt.newValuer()
			if err != nil {
				return err
			}

			reg := rt.region(region)
			for i, rec := range records {
				res := rt.engine.Calculate(rec, reg)
				if noCarbon {
					res = nil
				}
				v, err := valuer.Value(ctx, res, rec, market)
				if err != nil {
					if errors.Is(err, valuation.ErrPriceUnavailable) {
						log.Error().Err(err).Str("record", rec.DisplayName()).Msg("valuation failed")
					}
					return fmt.Errorf("valuing %s: %w", rec.DisplayName(), err)
				}
				if i > 0 && format == report.FormatTable {
					if _, err := fmt.Fprintln(cmd.OutOrStdout()); err != nil {
						return err
					}
				}
				if err := report.RenderValuation(cmd.OutOrStdout(), format, v); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "inventory file (YAML or JSON), - for stdin")
	cmd.Flags().StringVar(&market, "market", "", "market to price against (default from config)")
	cmd.Flags().StringVar(&region, "region", "", "region used to compute the carbon cost")
	cmd.Flags().BoolVar(&noCarbon, "no-carbon", false, "skip the carbon cost line")
	cmd.Flags().StringVar(&output, "output", "", "output format: table, json, ndjson")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
