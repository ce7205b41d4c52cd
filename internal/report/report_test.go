package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lcaengine/internal/analysis"
	"github.com/rshade/lcaengine/internal/factors"
	"github.com/rshade/lcaengine/internal/inventory"
	"github.com/rshade/lcaengine/internal/lca"
	"github.com/rshade/lcaengine/internal/valuation"
)

func sampleResult(t *testing.T, region string) *lca.Result {
	t.Helper()
	e := lca.NewEngine(factors.NewDefaultProvider(),
		lca.WithClock(func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }),
		lca.WithIDGenerator(func() string { return "01REPORT" }),
	)
	return e.Calculate(inventory.Record{
		Name:                   "smelter",
		FunctionalUnit:         "1 t copper cathode",
		Fluxes:                 100,
		ElectricityConsumption: 500,
		FuelConsumption:        50,
	}, region)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "18,248", FormatNumber(18248))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "-1,000", FormatNumber(-1000))
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in        float64
		precision int
		want      string
	}{
		{1234.567, 2, "1,234.57"},
		{-1234.567, 2, "-1,234.57"},
		{5, 0, "5"},
		{999999.5, 0, "1,000,000"},
		{-0.001, 2, "0.00"},
		{0.5, 3, "0.500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in, tt.precision), "%v/%d", tt.in, tt.precision)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "2,700", FormatValue(2700))
	assert.Equal(t, "378.87", FormatValue(378.87))
	assert.Equal(t, "0.0050", FormatValue(0.005))
	assert.Equal(t, "1.000e-06", FormatValue(1e-6))
}

func TestFormatLarge(t *testing.T) {
	assert.Equal(t, "~1.5 billion", FormatLarge(1_500_000_000))
	assert.Equal(t, "~2.3 million", FormatLarge(2_300_000))
	assert.Equal(t, "12,346", FormatLarge(12345.6))
}

func TestEquivalencies(t *testing.T) {
	out, err := Equivalencies(378.87)
	require.NoError(t, err)
	require.False(t, out.IsEmpty)
	require.Len(t, out.Results, 4)

	assert.Equal(t, EquivalencyMilesDriven, out.Results[0].Type)
	assert.InDelta(t, 378.87/EPAMilesDrivenFactor, out.Results[0].Value, 1e-9)
	assert.Equal(t, "1,973", out.Results[0].FormattedValue)
	assert.Equal(t, EquivalencyHomeDays, out.Results[3].Type)
	assert.Contains(t, out.DisplayText, "Equivalent to driving ~1,973 miles")

	small, err := Equivalencies(0.5)
	require.NoError(t, err)
	assert.True(t, small.IsEmpty)
	assert.InDelta(t, 0.5, small.InputKg, 1e-12)

	_, err = Equivalencies(-1)
	require.ErrorIs(t, err, ErrNegativeValue)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"table": FormatTable, " JSON": FormatJSON, "ndjson": FormatNDJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTable, sampleResult(t, "United States")))

	out := buf.String()
	assert.Contains(t, out, "LCA RESULT: smelter (region United States)")
	assert.Contains(t, out, "Functional unit: 1 t copper cathode")
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "globalWarmingPotential")
	assert.Contains(t, out, "378.87")
	assert.Contains(t, out, "Equivalent to driving")
	assert.NotContains(t, out, "built-in default factors")

	var riskLine string
	for line := range strings.SplitSeq(out, "\n") {
		if strings.Contains(line, "occupationalRisk") {
			riskLine = line
		}
	}
	assert.Contains(t, riskLine, "Low")
}

func TestRender_TableFallbackNote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTable, sampleResult(t, "Atlantis")))
	assert.Contains(t, buf.String(), "built-in default factors used for electricity, water_stress")
}

func TestRenderReports_TableWithAnalysis(t *testing.T) {
	r := NewReport(sampleResult(t, "India"))
	r.Uncertainty = map[string]analysis.Distribution{
		analysis.KeyGlobalWarming: {Mean: 1500, StdDev: 150, ConfidencePct: 95},
	}
	r.Sensitivity = map[string]float64{analysis.KeyElectricitySensitivity: 6.93}

	var buf bytes.Buffer
	require.NoError(t, RenderReports(&buf, FormatTable, r))

	out := buf.String()
	assert.Contains(t, out, "UNCERTAINTY")
	assert.Contains(t, out, "1,500")
	assert.Contains(t, out, "95%")
	assert.Contains(t, out, "SENSITIVITY")
	assert.Contains(t, out, "6.93%")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, sampleResult(t, "United States")))

	var got struct {
		Result struct {
			ID      string `json:"id"`
			Climate struct {
				GWP float64 `json:"global_warming_potential"`
			} `json:"climate"`
			HumanHealth struct {
				Risk string `json:"occupational_risk"`
			} `json:"human_health"`
		} `json:"result"`
		Equivalencies *EquivalencyOutput `json:"equivalencies"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "01REPORT", got.Result.ID)
	assert.InDelta(t, 378.87, got.Result.Climate.GWP, 1e-9)
	assert.Equal(t, "Low", got.Result.HumanHealth.Risk)
	require.NotNil(t, got.Equivalencies)

	buf.Reset()
	require.NoError(t, Render(&buf, FormatJSON, sampleResult(t, "India"), sampleResult(t, "China")))
	var many []Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &many))
	assert.Len(t, many, 2)
}

func TestRender_NDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatNDJSON,
		sampleResult(t, "India"), sampleResult(t, "China"), sampleResult(t, "France")))

	lines := 0
	sc := bufio.NewScanner(&buf)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var r Report
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		lines++
	}
	assert.Equal(t, 3, lines)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, Format("yaml"), sampleResult(t, "India"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderValuation(t *testing.T) {
	v := &valuation.Valuation{
		Market:   "LME",
		Currency: "USD",
		Items: []valuation.LineItem{{
			Name:      "metal_content",
			Commodity: "copper",
			Quantity:  decimal.NewFromInt(150),
			Unit:      "kg",
			UnitPrice: decimal.RequireFromString("8.5"),
			Amount:    decimal.NewFromInt(1275),
			Stale:     true,
		}},
		RecoverableValue: decimal.NewFromInt(1275),
		CarbonCost:       decimal.RequireFromString("32.2"),
		NetValue:         decimal.RequireFromString("1242.8"),
		Stale:            true,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderValuation(&buf, FormatTable, v))
	out := buf.String()
	assert.Contains(t, out, "MARKET VALUATION: LME (USD)")
	assert.Contains(t, out, "metal_content (stale)")
	assert.Contains(t, out, "1275.00")
	assert.Contains(t, out, "Net value: 1242.80")
	assert.Contains(t, out, "expired cache")

	buf.Reset()
	require.NoError(t, RenderValuation(&buf, FormatJSON, v))
	assert.Contains(t, buf.String(), `"recoverable_value": "1275"`)
}
