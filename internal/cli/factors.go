package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/lcaengine/internal/factors"
	"github.com/rshade/lcaengine/internal/report"
)

const tabPadding = 2

// Lookup kinds accepted by "factors lookup".
const (
	lookupGrid         = "grid"
	lookupWater        = "water"
	lookupBiodiversity = "biodiversity"
	lookupMineral      = "mineral"
)

// factorValue is the output of "factors lookup".
type factorValue struct {
	Kind       string  `json:"kind"`
	Key        string  `json:"key"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	Region     string  `json:"region,omitempty"`
	Resolution string  `json:"resolution,omitempty"`
}

// NewFactorsEmissionCmd creates "factors emission".
func NewFactorsEmissionCmd() *cobra.Command {
	var region, output string

	cmd := &cobra.Command{
		Use:   "emission <substance> <source>",
		Short: "Look up an emission factor, falling back to Global",
		Example: `  lca factors emission CO2 "Grid Electricity" --region China
  lca factors emission CH4 Diesel`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.format(output)
			if err != nil {
				return err
			}

			f, err := rt.provider.EmissionFactor(args[0], args[1], region)
			if err != nil {
				return fmt.Errorf("%s/%s in %q: %w", args[0], args[1], region, err)
			}
			if format != report.FormatTable {
				return report.WriteJSON(cmd.OutOrStdout(), f)
			}
			return renderEmissionFactor(cmd.OutOrStdout(), f)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "region (default Global)")
	cmd.Flags().StringVar(&output, "output", "", "output format: table, json")
	return cmd
}

func renderEmissionFactor(w io.Writer, f factors.ReferenceFactor) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	rows := [][2]string{
		{"Substance", f.Substance},
		{"Source", f.Source},
		{"Region", f.Region},
		{"Value", fmt.Sprintf("%g %s", f.Value, f.Unit)},
		{"Uncertainty", fmt.Sprintf("%g%%", f.UncertaintyPct)},
		{"Quality", string(f.Quality)},
		{"Last updated", f.LastUpdated.Format(time.DateOnly)},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// NewFactorsLookupCmd creates "factors lookup".
func NewFactorsLookupCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "lookup grid|water|biodiversity|mineral <key>",
		Short: "Look up a regional or material factor",
		Long: `Look up a factor with its fallback chain applied.

  grid <region>          grid electricity, kg CO2/kWh
  water <region>         water-stress multiplier
  biodiversity <land>    biodiversity characterization factor by land-use type
  mineral <name>         mineral depletion factor, matched by substring`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.format(output)
			if err != nil {
				return err
			}

			v, err := lookupFactor(rt.provider, args[0], args[1])
			if err != nil {
				return err
			}
			if format != report.FormatTable {
				return report.WriteJSON(cmd.OutOrStdout(), v)
			}
			line := fmt.Sprintf("%s %s: %g", v.Kind, v.Key, v.Value)
			if v.Unit != "" {
				line += " " + v.Unit
			}
			if v.Resolution != "" {
				line += fmt.Sprintf(" (%s, from %s)", v.Resolution, v.Region)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output format: table, json")
	return cmd
}

func lookupFactor(p *factors.Provider, kind, key string) (factorValue, error) {
	v := factorValue{Kind: strings.ToLower(kind), Key: key}
	switch v.Kind {
	case lookupGrid:
		r := p.ResolveElectricityFactor(key)
		v.Value, v.Unit, v.Region, v.Resolution = r.Value, r.Unit, r.Region, r.Resolution.String()
	case lookupWater:
		r := p.ResolveWaterStressFactor(key)
		v.Value, v.Unit, v.Region, v.Resolution = r.Value, r.Unit, r.Region, r.Resolution.String()
	case lookupBiodiversity:
		v.Value = p.BiodiversityFactor(key)
	case lookupMineral:
		v.Value = p.MineralDepletionFactor(key)
	default:
		return factorValue{}, fmt.Errorf("unknown lookup kind %q (want grid, water, biodiversity or mineral)", kind)
	}
	return v, nil
}

// NewFactorsCurrencyCmd creates "factors currency".
func NewFactorsCurrencyCmd() *cobra.Command {
	var asOf, output string

	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Report data sources older than the currency window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.format(output)
			if err != nil {
				return err
			}

			var when time.Time
			if asOf != "" {
				if when, err = time.Parse(time.DateOnly, asOf); err != nil {
					return fmt.Errorf("parsing --as-of: %w", err)
				}
			}

			cr := rt.provider.ValidateDataCurrency(when)
			if format != report.FormatTable {
				return report.WriteJSON(cmd.OutOrStdout(), cr)
			}
			return renderCurrency(cmd.OutOrStdout(), cr)
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&output, "output", "", "output format: table, json")
	return cmd
}

func renderCurrency(w io.Writer, cr factors.CurrencyReport) error {
	if _, err := fmt.Fprintf(w, "Data currency as of %s (window %d months)\n",
		cr.AsOf.Format(time.DateOnly), factors.CurrencyWindowMonths); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, "SOURCE\tLAST UPDATED\tSTATUS"); err != nil {
		return err
	}
	for _, group := range []struct {
		status  string
		sources []factors.DataSource
	}{{"outdated", cr.Outdated}, {"current", cr.Current}} {
		for _, s := range group.sources {
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\n",
				s.Name, s.LastUpdated.Format(time.DateOnly), group.status); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

// NewFactorsQualityCmd creates "factors quality".
func NewFactorsQualityCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Assess the data quality of the emission factor catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			format, err := rt.format(output)
			if err != nil {
				return err
			}

			qa := rt.provider.AssessDataQuality()
			if format != report.FormatTable {
				return report.WriteJSON(cmd.OutOrStdout(), qa)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Overall quality: %s (score %.2f)\n", qa.Overall, qa.Score); err != nil {
				return err
			}
			for _, rec := range qa.Recommendations {
				if _, err := fmt.Fprintf(out, "  - %s\n", rec); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "output format: table, json")
	return cmd
}
