package factors

import "time"

// Substances and sources used by the built-in catalog.
const (
	SubstanceCO2 = "CO2"
	SubstanceCH4 = "CH4"
	SubstanceN2O = "N2O"

	SourceDiesel     = "Diesel"
	SourceNaturalGas = "Natural Gas"
	SourceCoal       = "Coal"
	SourceGrid       = "Grid Electricity"
)

// Built-in constants used when neither the region nor Global has an entry.
const (
	// DefaultGridFactor is the US grid average in kg CO2 per kWh.
	DefaultGridFactor = 0.4

	// DefaultGridRegion is the region DefaultGridFactor describes.
	DefaultGridRegion = "United States"

	// DefaultWaterStressFactor is the neutral water-stress multiplier.
	DefaultWaterStressFactor = 1.0

	// DefaultBiodiversityFactor applies to unknown land-use types.
	DefaultBiodiversityFactor = 0.1

	// DefaultMineralDepletionFactor applies to unknown minerals, kg Sb-eq/kg.
	DefaultMineralDepletionFactor = 0.001
)

// CatalogVersion is the schema version written by DefaultCatalog.
const CatalogVersion = "1.0.0"

// Catalog is the raw reference data a Provider is built from.
type Catalog struct {
	Version              string                `yaml:"version"               json:"version"`
	Sources              []DataSource          `yaml:"sources"               json:"sources"`
	EmissionFactors      []ReferenceFactor     `yaml:"emission_factors"      json:"emission_factors"`
	EnvironmentalFactors []EnvironmentalFactor `yaml:"environmental_factors" json:"environmental_factors"`
}

// Merge returns c with overlay's entries appended. Provider construction
// applies entries in order, so overlay values win for identical keys.
func (c Catalog) Merge(overlay Catalog) Catalog {
	merged := Catalog{
		Version:              c.Version,
		Sources:              append(append([]DataSource(nil), c.Sources...), overlay.Sources...),
		EmissionFactors:      append(append([]ReferenceFactor(nil), c.EmissionFactors...), overlay.EmissionFactors...),
		EnvironmentalFactors: append(append([]EnvironmentalFactor(nil), c.EnvironmentalFactors...), overlay.EnvironmentalFactors...),
	}
	if overlay.Version != "" {
		merged.Version = overlay.Version
	}
	return merged
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DefaultCatalog returns the built-in illustrative catalog. The values are
// representative, not authoritative.
//
//nolint:funlen // Static data table.
func DefaultCatalog() Catalog {
	ipcc := date(2019, time.May, 13)
	iea := date(2024, time.September, 2)
	egrid := date(2025, time.January, 30)
	cea := date(2024, time.December, 16)
	aqueduct := date(2023, time.August, 16)
	recipe := date(2017, time.January, 1)
	cml := date(2016, time.September, 5)

	grid := func(region string, value, uncertainty float64, grade Grade, updated time.Time) ReferenceFactor {
		return ReferenceFactor{
			Substance:      SubstanceCO2,
			Source:         SourceGrid,
			Region:         region,
			Value:          value,
			Unit:           "kg CO2/kWh",
			UncertaintyPct: uncertainty,
			Quality:        grade,
			LastUpdated:    updated,
		}
	}

	return Catalog{
		Version: CatalogVersion,
		Sources: []DataSource{
			{Name: "IPCC 2006 Guidelines (2019 Refinement)", Organization: "IPCC", LastUpdated: ipcc},
			{Name: "IEA Emission Factors", Organization: "International Energy Agency", LastUpdated: iea},
			{Name: "eGRID", Organization: "US EPA", LastUpdated: egrid},
			{Name: "CO2 Baseline Database", Organization: "Central Electricity Authority", LastUpdated: cea},
			{Name: "Aqueduct Water Risk Atlas", Organization: "World Resources Institute", LastUpdated: aqueduct},
			{Name: "ReCiPe 2016", Organization: "RIVM", LastUpdated: recipe},
			{Name: "CML-IA", Organization: "Leiden University", LastUpdated: cml},
		},
		EmissionFactors: []ReferenceFactor{
			{
				Substance: SubstanceCO2, Source: SourceDiesel, Region: GlobalRegion,
				Value: 2.68, Unit: "kg CO2/L", UncertaintyPct: 5, Quality: GradeA, LastUpdated: ipcc,
			},
			{
				Substance: SubstanceCO2, Source: SourceNaturalGas, Region: GlobalRegion,
				Value: 1.98, Unit: "kg CO2/m3", UncertaintyPct: 5, Quality: GradeA, LastUpdated: ipcc,
			},
			{
				Substance: SubstanceCO2, Source: SourceCoal, Region: GlobalRegion,
				Value: 2.42, Unit: "kg CO2/kg", UncertaintyPct: 10, Quality: GradeB, LastUpdated: ipcc,
			},
			{
				Substance: SubstanceCO2, Source: SourceCoal, Region: "India",
				Value: 2.54, Unit: "kg CO2/kg", UncertaintyPct: 18, Quality: GradeC, LastUpdated: cea,
			},
			{
				Substance: SubstanceCO2, Source: SourceCoal, Region: "China",
				Value: 2.49, Unit: "kg CO2/kg", UncertaintyPct: 15, Quality: GradeB, LastUpdated: iea,
			},
			{
				Substance: SubstanceCH4, Source: SourceDiesel, Region: GlobalRegion,
				Value: 0.0001, Unit: "kg CH4/L", UncertaintyPct: 40, Quality: GradeC, LastUpdated: ipcc,
			},
			{
				Substance: SubstanceN2O, Source: SourceDiesel, Region: GlobalRegion,
				Value: 0.00005, Unit: "kg N2O/L", UncertaintyPct: 50, Quality: GradeD, LastUpdated: ipcc,
			},
			grid("United States", 0.4, 8, GradeA, egrid),
			grid("India", 0.82, 12, GradeB, cea),
			grid("China", 0.58, 15, GradeB, iea),
			grid("European Union", 0.23, 10, GradeA, iea),
			grid("Germany", 0.35, 8, GradeA, iea),
			grid("France", 0.05, 10, GradeA, iea),
			grid("Australia", 0.68, 12, GradeB, iea),
			grid("Brazil", 0.09, 20, GradeC, iea),
			grid("South Africa", 0.93, 15, GradeB, iea),
			grid("Canada", 0.12, 10, GradeA, iea),
		},
		EnvironmentalFactors: []EnvironmentalFactor{
			waterStress("India", 3.8),
			waterStress("China", 2.4),
			waterStress("United States", 1.8),
			waterStress("Australia", 2.9),
			waterStress("South Africa", 3.3),
			waterStress("Chile", 3.6),
			waterStress("Brazil", 0.7),
			waterStress("Canada", 0.4),

			biodiversity("forest", 0.8),
			biodiversity("wetland", 0.9),
			biodiversity("grassland", 0.4),
			biodiversity("agricultural", 0.2),
			biodiversity("mining", 0.6),
			biodiversity("industrial", 0.1),
			biodiversity("urban", 0.05),

			mineral("Copper", 1.37e-3),
			mineral("Zinc", 5.38e-4),
			mineral("Lead", 6.34e-3),
			mineral("Nickel", 6.53e-5),
			mineral("Aluminium", 1.09e-9),
			mineral("Iron ore", 5.24e-8),
			mineral("Manganese", 2.54e-6),
			mineral("Silver", 1.18),
			mineral("Gold", 52.0),
		},
	}
}

func waterStress(region string, value float64) EnvironmentalFactor {
	return EnvironmentalFactor{
		Kind:           KindWaterStress,
		Parameter:      "Water Stress Index",
		Value:          value,
		Unit:           "m3 world-eq/m3",
		Region:         region,
		Source:         "Aqueduct Water Risk Atlas",
		Methodology:    "AWARE",
		UncertaintyPct: 25,
	}
}

func biodiversity(landUse string, value float64) EnvironmentalFactor {
	return EnvironmentalFactor{
		Kind:           KindBiodiversity,
		Parameter:      landUse,
		Value:          value,
		Unit:           "PDF·m2·yr",
		Region:         GlobalRegion,
		Source:         "ReCiPe 2016",
		Methodology:    "ReCiPe land use",
		UncertaintyPct: 35,
	}
}

func mineral(name string, value float64) EnvironmentalFactor {
	return EnvironmentalFactor{
		Kind:           KindMineralDepletion,
		Parameter:      name,
		Value:          value,
		Unit:           "kg Sb-eq/kg",
		Region:         GlobalRegion,
		Source:         "CML-IA",
		Methodology:    "ADP ultimate reserves",
		UncertaintyPct: 30,
	}
}
