// Package report renders LCA results, analysis and valuations as text
// tables, JSON or newline-delimited JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rshade/lcaengine/internal/analysis"
	"github.com/rshade/lcaengine/internal/lca"
	"github.com/rshade/lcaengine/internal/valuation"
)

// Format is an output format.
type Format string

// Supported output formats.
const (
	FormatTable  Format = "table"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
)

const tabPadding = 2

// ParseFormat validates s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, json or ndjson)", ErrUnknownFormat, s)
	}
}

// Report bundles a result with its optional analysis.
type Report struct {
	Result        *lca.Result                      `json:"result"`
	Equivalencies *EquivalencyOutput               `json:"equivalencies,omitempty"`
	Uncertainty   map[string]analysis.Distribution `json:"uncertainty,omitempty"`
	Sensitivity   map[string]float64               `json:"sensitivity,omitempty"`
}

// NewReport wraps res and attaches GWP equivalencies when they apply.
func NewReport(res *lca.Result) Report {
	r := Report{Result: res}
	if res == nil {
		return r
	}
	if eq, err := Equivalencies(res.Climate.GlobalWarmingPotential); err == nil && !eq.IsEmpty {
		r.Equivalencies = &eq
	}
	return r
}

// Render writes results in format.
func Render(w io.Writer, format Format, results ...*lca.Result) error {
	reports := make([]Report, 0, len(results))
	for _, res := range results {
		reports = append(reports, NewReport(res))
	}
	return RenderReports(w, format, reports...)
}

// RenderReports writes reports in format. JSON output is a single object
// for one report and an array otherwise; NDJSON writes one object per line.
func RenderReports(w io.Writer, format Format, reports ...Report) error {
	switch format {
	case FormatJSON:
		if len(reports) == 1 {
			return WriteJSON(w, reports[0])
		}
		return WriteJSON(w, reports)
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, r := range reports {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
		}
		return nil
	case FormatTable:
		st := newStyles(isTerminal(w))
		for i, r := range reports {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if err := renderReportTable(w, st, r); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// RenderValuation writes a valuation in format. NDJSON and JSON are the
// same single object.
func RenderValuation(w io.Writer, format Format, v *valuation.Valuation) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, v)
	case FormatNDJSON:
		return json.NewEncoder(w).Encode(v)
	case FormatTable:
		return renderValuationTable(w, newStyles(isTerminal(w)), v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// isTerminal reports whether w is a terminal file.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	warn    lipgloss.Style
}

func newStyles(styled bool) styles {
	if !styled {
		plain := lipgloss.NewStyle()
		return styles{title: plain, section: plain, warn: plain}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

func renderReportTable(w io.Writer, st styles, r Report) error {
	res := r.Result
	if res == nil {
		return nil
	}

	title := res.Name
	if title == "" {
		title = "inventory"
	}
	header := fmt.Sprintf("LCA RESULT: %s (region %s)", title, res.Region)
	if _, err := fmt.Fprintln(w, st.title.Render(header)); err != nil {
		return err
	}
	if res.FunctionalUnit != "" {
		if _, err := fmt.Fprintf(w, "Functional unit: %s\n", res.FunctionalUnit); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, "CATEGORY\tINDICATOR\tVALUE\tUNIT"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--------\t---------\t-----\t----"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	for _, ind := range lca.Indicators(res) {
		value, unit := FormatValue(ind.Value), ind.Unit
		switch ind.Name {
		case "occupationalRisk":
			value, unit = res.HumanHealth.OccupationalRisk.String(), ""
		case "habitatAlteration":
			value, unit = res.Biodiversity.HabitatAlteration.String(), ""
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ind.Category, ind.Name, value, unit); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if r.Equivalencies != nil {
		if _, err := fmt.Fprintln(w, r.Equivalencies.DisplayText); err != nil {
			return err
		}
	}
	if res.UsedFallbackDefaults {
		if _, err := fmt.Fprintln(w, st.warn.Render(fallbackNote(res))); err != nil {
			return err
		}
	}

	if len(r.Uncertainty) > 0 {
		if err := renderUncertainty(w, st, r.Uncertainty); err != nil {
			return err
		}
	}
	if len(r.Sensitivity) > 0 {
		if err := renderSensitivity(w, st, r.Sensitivity); err != nil {
			return err
		}
	}
	return nil
}

func fallbackNote(res *lca.Result) string {
	var names []string
	for _, f := range res.FactorSources {
		if f.Resolution == "default" {
			names = append(names, f.Name)
		}
	}
	return fmt.Sprintf("Note: built-in default factors used for %s", strings.Join(names, ", "))
}

func renderUncertainty(w io.Writer, st styles, dists map[string]analysis.Distribution) error {
	if _, err := fmt.Fprintln(w, "\n"+st.section.Render("UNCERTAINTY")); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, "INDICATOR\tMEAN\tSTD DEV\tCONFIDENCE"); err != nil {
		return err
	}
	for _, k := range sortedKeys(dists) {
		d := dists[k]
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s%%\n",
			k, FormatValue(d.Mean), FormatValue(d.StdDev), FormatFloat(d.ConfidencePct, 0)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func renderSensitivity(w io.Writer, st styles, sens map[string]float64) error {
	if _, err := fmt.Fprintln(w, "\n"+st.section.Render("SENSITIVITY (GWP change)")); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, "PARAMETER\tCHANGE"); err != nil {
		return err
	}
	for _, k := range sortedKeys(sens) {
		if _, err := fmt.Fprintf(tw, "%s\t%s%%\n", k, FormatFloat(sens[k], 2)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func renderValuationTable(w io.Writer, st styles, v *valuation.Valuation) error {
	if v == nil {
		return nil
	}
	header := fmt.Sprintf("MARKET VALUATION: %s (%s)", v.Market, v.Currency)
	if _, err := fmt.Fprintln(w, st.title.Render(header)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ITEM\tCOMMODITY\tQUANTITY\tUNIT PRICE\tAMOUNT"); err != nil {
		return err
	}
	for _, item := range v.Items {
		name := item.Name
		if item.Stale {
			name += " (stale)"
		}
		qty, _ := item.Quantity.Float64()
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
			name, item.Commodity, FormatValue(qty), item.Unit,
			item.UnitPrice.String(), item.Amount.StringFixed(2)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Recoverable value: %s\nCarbon cost: %s\nNet value: %s\n",
		v.RecoverableValue.StringFixed(2), v.CarbonCost.StringFixed(2), v.NetValue.StringFixed(2))
	if err != nil {
		return err
	}
	if v.Stale {
		_, err = fmt.Fprintln(w, st.warn.Render("Note: some prices were served from an expired cache"))
	}
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
