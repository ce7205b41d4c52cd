package factors

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	assert.Equal(t, NewKey("CO2", "Diesel", ""), NewKey(" co2 ", "DIESEL", "global"))
	assert.Equal(t, "global", NewKey("x", "y", "GLOBAL").Region)
	assert.Equal(t, "india", NewKey("x", "y", " India ").Region)
}

func TestTableResolve(t *testing.T) {
	table := NewTable[float64]()
	table.Put("CO2", "Coal", GlobalRegion, 2.42)
	table.Put("CO2", "Coal", "India", 2.54)

	tests := []struct {
		name    string
		region  string
		want    float64
		wantRes Resolution
		wantOK  bool
	}{
		{name: "region hit", region: "india", want: 2.54, wantRes: ResolvedRegion, wantOK: true},
		{name: "region miss uses Global", region: "Atlantis", want: 2.42, wantRes: ResolvedGlobal, wantOK: true},
		{name: "explicit Global", region: "Global", want: 2.42, wantRes: ResolvedGlobal, wantOK: true},
		{name: "empty region is Global", region: "", want: 2.42, wantRes: ResolvedGlobal, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res, ok := table.Resolve("co2", "coal", tt.region)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRes, res)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}

	_, res, ok := table.Resolve("CO2", "Peat", "India")
	assert.False(t, ok)
	assert.Equal(t, ResolvedDefault, res)
}

func TestEmissionFactor(t *testing.T) {
	p := NewDefaultProvider()

	t.Run("regional entry", func(t *testing.T) {
		f, err := p.EmissionFactor(SubstanceCO2, SourceCoal, "India")
		require.NoError(t, err)
		assert.InDelta(t, 2.54, f.Value, 1e-12)
		assert.Equal(t, "India", f.Region)
	})

	t.Run("falls back to Global", func(t *testing.T) {
		f, err := p.EmissionFactor(SubstanceCO2, SourceDiesel, "United States")
		require.NoError(t, err)
		assert.InDelta(t, 2.68, f.Value, 1e-12)
		assert.Equal(t, GlobalRegion, f.Region)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := p.EmissionFactor(SubstanceCO2, "Biomass", "India")
		assert.ErrorIs(t, err, ErrFactorNotFound)
	})
}

func TestElectricityEmissionFactor(t *testing.T) {
	p := NewDefaultProvider()

	assert.InDelta(t, 0.4, p.ElectricityEmissionFactor("United States"), 1e-12)
	assert.InDelta(t, 0.82, p.ElectricityEmissionFactor("india"), 1e-12)
	assert.InDelta(t, DefaultGridFactor, p.ElectricityEmissionFactor("Atlantis"), 1e-12)

	res := p.ResolveElectricityFactor("Atlantis")
	assert.True(t, res.IsDefault())
	assert.Equal(t, DefaultGridRegion, res.Region)
}

func TestEnvironmentalLookups(t *testing.T) {
	p := NewDefaultProvider()

	assert.InDelta(t, 3.8, p.WaterStressFactor("India"), 1e-12)
	assert.InDelta(t, DefaultWaterStressFactor, p.WaterStressFactor("Atlantis"), 1e-12)

	assert.InDelta(t, 0.8, p.BiodiversityFactor("Forest"), 1e-12)
	assert.InDelta(t, DefaultBiodiversityFactor, p.BiodiversityFactor("lunar regolith"), 1e-12)

	assert.InDelta(t, 1.37e-3, p.MineralDepletionFactor("copper"), 1e-15)
	assert.InDelta(t, 5.24e-8, p.MineralDepletionFactor("Iron"), 1e-15)
	assert.InDelta(t, DefaultMineralDepletionFactor, p.MineralDepletionFactor("unobtainium"), 1e-15)
	assert.InDelta(t, DefaultMineralDepletionFactor, p.MineralDepletionFactor(""), 1e-15)
}

func TestRegionalWaterStressWithGlobalEntry(t *testing.T) {
	cat := Catalog{
		Version: CatalogVersion,
		EnvironmentalFactors: []EnvironmentalFactor{
			{Kind: KindWaterStress, Region: GlobalRegion, Value: 1.2},
		},
	}
	p := NewProvider(cat)
	res := p.ResolveWaterStressFactor("Chile")
	assert.Equal(t, ResolvedGlobal, res.Resolution)
	assert.InDelta(t, 1.2, res.Value, 1e-12)
}

func TestFallbackObserverAndLogging(t *testing.T) {
	var (
		mu    sync.Mutex
		kinds []string
		buf   bytes.Buffer
	)
	p := NewDefaultProvider(
		WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
		WithFallbackObserver(func(lookup, kind string) {
			mu.Lock()
			defer mu.Unlock()
			kinds = append(kinds, lookup+":"+kind)
		}),
	)

	p.ElectricityEmissionFactor("Atlantis")
	_, _ = p.EmissionFactor(SubstanceCO2, SourceDiesel, "India")
	p.WaterStressFactor("India")

	assert.Equal(t, []string{"electricity:default", "emission:diesel:global"}, kinds)
	assert.Contains(t, buf.String(), "reference factor fallback")
}

func TestLaterEntriesWin(t *testing.T) {
	overlay := Catalog{
		EmissionFactors: []ReferenceFactor{
			{Substance: SubstanceCO2, Source: SourceGrid, Region: "India", Value: 0.7, Quality: GradeA},
		},
		EnvironmentalFactors: []EnvironmentalFactor{
			{Kind: KindMineralDepletion, Parameter: "copper", Value: 0.002},
		},
	}
	p := NewProvider(DefaultCatalog().Merge(overlay))

	assert.InDelta(t, 0.7, p.ElectricityEmissionFactor("India"), 1e-12)
	assert.InDelta(t, 0.002, p.MineralDepletionFactor("Copper"), 1e-12)
	assert.Equal(t, CatalogVersion, p.Version())
}

func TestConcurrentReads(t *testing.T) {
	p := NewDefaultProvider()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = p.ElectricityEmissionFactor("China")
				_, _ = p.EmissionFactor(SubstanceCO2, SourceCoal, "India")
				_ = p.MineralDepletionFactor("zinc")
			}
		}()
	}
	wg.Wait()
}

func TestAssessDataQuality(t *testing.T) {
	tests := []struct {
		name        string
		factors     []ReferenceFactor
		wantOverall []string
		wantScore   float64
		wantRecs    []string
	}{
		{
			name: "grade A and B with low uncertainty",
			factors: []ReferenceFactor{
				{Quality: GradeA, UncertaintyPct: 5},
				{Quality: GradeB, UncertaintyPct: 15},
			},
			wantOverall: []string{QualityExcellent, QualityGood},
			wantScore:   3.5,
			wantRecs:    []string{},
		},
		{
			name: "grade D with high uncertainty",
			factors: []ReferenceFactor{
				{Quality: GradeB, UncertaintyPct: 10},
				{Quality: GradeD, UncertaintyPct: 40},
			},
			wantOverall: []string{QualityFair},
			wantScore:   2,
			wantRecs:    []string{RecommendDiversify, RecommendSensitivity},
		},
		{
			name:        "single grade D",
			factors:     []ReferenceFactor{{Quality: GradeD, UncertaintyPct: 40}},
			wantOverall: []string{QualityPoor},
			wantScore:   1,
			wantRecs:    []string{RecommendDiversify, RecommendSensitivity},
		},
		{
			name:        "lower-case grade",
			factors:     []ReferenceFactor{{Quality: "b"}, {Quality: "c"}},
			wantOverall: []string{QualityGood},
			wantScore:   2.5,
			wantRecs:    []string{RecommendDiversify},
		},
		{
			name:        "empty",
			wantOverall: []string{QualityPoor},
			wantRecs:    []string{RecommendCollect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssessDataQuality(tt.factors)
			assert.Contains(t, tt.wantOverall, got.Overall)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantRecs, got.Recommendations)
		})
	}
}

func TestProviderAssessDataQuality(t *testing.T) {
	got := NewDefaultProvider().AssessDataQuality()
	assert.NotEmpty(t, got.Overall)
	assert.Greater(t, got.Score, 0.0)
	// The built-in catalog carries a grade-D N2O factor at 50% uncertainty.
	assert.Contains(t, got.Recommendations, RecommendSensitivity)
}

func TestValidateDataCurrency(t *testing.T) {
	asOf := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	cat := Catalog{
		Version: CatalogVersion,
		Sources: []DataSource{
			{Name: "fresh", LastUpdated: asOf.AddDate(0, -1, 0)},
			{Name: "stale", LastUpdated: asOf.AddDate(-1, 0, 0)},
			{Name: "boundary", LastUpdated: asOf.AddDate(0, -6, 0)},
			{Name: "stale", LastUpdated: asOf.AddDate(0, -2, 0)},
		},
	}
	report := NewProvider(cat).ValidateDataCurrency(asOf)

	names := func(list []DataSource) []string {
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, s.Name)
		}
		return out
	}
	assert.Equal(t, []string{"boundary", "fresh", "stale"}, names(report.Current))
	assert.Empty(t, report.Outdated)

	later := NewProvider(cat).ValidateDataCurrency(asOf.AddDate(1, 0, 0))
	assert.Equal(t, []string{"boundary", "fresh", "stale"}, names(later.Outdated))
}

func TestValidateDataCurrencyUsesClock(t *testing.T) {
	now := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := NewDefaultProvider(WithClock(func() time.Time { return now }))

	report := p.ValidateDataCurrency(time.Time{})
	assert.Equal(t, now, report.AsOf)
	assert.Len(t, report.Outdated, len(DefaultCatalog().Sources))
	assert.Empty(t, report.Current)
}

func TestDecodeCatalog(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		src := `
version: 1.2.0
sources:
  - name: Plant survey
    last_updated: 2025-02-01
emission_factors:
  - substance: CO2
    source: Grid Electricity
    region: Chile
    value: 0.38
    unit: kg CO2/kWh
    uncertainty_pct: 12
    quality: B
    last_updated: 2025-02-01
environmental_factors:
  - kind: water_stress
    region: Peru
    value: 2.7
`
		cat, err := DecodeCatalog(strings.NewReader(src))
		require.NoError(t, err)
		require.Len(t, cat.EmissionFactors, 1)

		p := NewProvider(DefaultCatalog().Merge(cat))
		assert.InDelta(t, 0.38, p.ElectricityEmissionFactor("Chile"), 1e-12)
		assert.InDelta(t, 2.7, p.WaterStressFactor("Peru"), 1e-12)
		assert.Equal(t, "1.2.0", p.Version())
	})

	t.Run("unsupported version", func(t *testing.T) {
		_, err := DecodeCatalog(strings.NewReader("version: 2.0.0\n"))
		assert.ErrorIs(t, err, ErrCatalogVersionUnsupported)
	})

	t.Run("garbage version", func(t *testing.T) {
		_, err := DecodeCatalog(strings.NewReader("version: banana\n"))
		assert.ErrorIs(t, err, ErrCatalogVersionUnsupported)
	})

	t.Run("missing version", func(t *testing.T) {
		_, err := DecodeCatalog(strings.NewReader("sources: []\n"))
		assert.ErrorIs(t, err, ErrCatalogVersionMissing)

		_, err = DecodeCatalog(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrCatalogVersionMissing)
	})

	t.Run("bad entries", func(t *testing.T) {
		src := `
version: 1.0.0
emission_factors:
  - substance: CO2
    value: 1
  - substance: CO2
    source: Coal
    value: -1
  - substance: CO2
    source: Coal
    value: 1
    quality: Z
environmental_factors:
  - kind: radiation
    value: 1
`
		_, err := DecodeCatalog(strings.NewReader(src))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFactor)
		assert.Contains(t, err.Error(), "emission_factors[0]")
		assert.Contains(t, err.Error(), "emission_factors[1]")
		assert.Contains(t, err.Error(), "emission_factors[2]")
		assert.Contains(t, err.Error(), "environmental_factors[0]")
	})

	t.Run("non-finite values", func(t *testing.T) {
		tests := map[string]string{
			"nan grid factor": `
version: 1.0.0
emission_factors:
  - substance: CO2
    source: Grid Electricity
    region: Atlantis
    value: .nan
`,
			"infinite water stress": `
version: 1.0.0
environmental_factors:
  - kind: water_stress
    region: Atlantis
    value: .inf
`,
			"nan uncertainty": `
version: 1.0.0
emission_factors:
  - substance: CO2
    source: Diesel
    value: 2.7
    uncertainty_pct: .nan
`,
			"negative uncertainty": `
version: 1.0.0
environmental_factors:
  - kind: biodiversity
    parameter: wetland
    value: 0.5
    uncertainty_pct: -3
`,
		}
		for name, src := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := DecodeCatalog(strings.NewReader(src))
				require.ErrorIs(t, err, ErrInvalidFactor)
			})
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := DecodeCatalog(strings.NewReader("version: 1.0.0\nfoo: bar\n"))
		require.Error(t, err)
	})
}

func TestDefaultCatalogValidates(t *testing.T) {
	require.NoError(t, DefaultCatalog().Validate())
}

func TestResolutionString(t *testing.T) {
	assert.Equal(t, "region", ResolvedRegion.String())
	assert.Equal(t, "global", ResolvedGlobal.String())
	assert.Equal(t, "default", ResolvedDefault.String())
	assert.Equal(t, "Resolution(9)", Resolution(9).String())
}
