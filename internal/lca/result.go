package lca

import "time"

// Result holds every impact indicator for one inventory record.
// A new Result is allocated per calculation and owned by the caller.
type Result struct {
	ID             string    `json:"id"`
	Name           string    `json:"name,omitempty"`
	FunctionalUnit string    `json:"functional_unit,omitempty"`
	Region         string    `json:"region"`
	CalculatedAt   time.Time `json:"calculated_at"`

	Climate      ClimateImpact      `json:"climate"`
	Air          AirImpact          `json:"air"`
	Water        WaterImpact        `json:"water"`
	HumanHealth  HumanHealthImpact  `json:"human_health"`
	Resources    ResourceImpact     `json:"resources"`
	Biodiversity BiodiversityImpact `json:"biodiversity"`
	Circularity  CircularityImpact  `json:"circularity"`

	// FactorSources lists the factors the calculation resolved.
	FactorSources []FactorUsage `json:"factor_sources"`
	// UsedFallbackDefaults is true when any factor came from a built-in
	// constant rather than the catalog.
	UsedFallbackDefaults bool `json:"used_fallback_defaults"`
}

// ClimateImpact covers global warming, kg CO2-eq per functional unit.
type ClimateImpact struct {
	GlobalWarmingPotential float64 `json:"global_warming_potential"`
	CO2                    float64 `json:"co2"`
	DirectCO2              float64 `json:"direct_co2"`
	FossilCO2              float64 `json:"fossil_co2"`
	CH4                    float64 `json:"ch4"`
	N2O                    float64 `json:"n2o"`
}

// AirImpact covers air-pollution midpoints and raw pollutant masses.
type AirImpact struct {
	AcidificationPotential     float64 `json:"acidification_potential"`
	PhotochemicalOzoneCreation float64 `json:"photochemical_ozone_creation"`
	ParticulateMatterFormation float64 `json:"particulate_matter_formation"`
	OzoneDepletionPotential    float64 `json:"ozone_depletion_potential"`
	SO2                        float64 `json:"so2"`
	NOx                        float64 `json:"nox"`
	CO                         float64 `json:"co"`
	PM                         float64 `json:"pm"`
	VOC                        float64 `json:"voc"`
	HeavyMetals                float64 `json:"heavy_metals"`
}

// WaterImpact covers eutrophication, ecotoxicity and scarcity.
type WaterImpact struct {
	EutrophicationPotential float64 `json:"eutrophication_potential"`
	FreshwaterEcotoxicity   float64 `json:"freshwater_ecotoxicity"`
	MarineEcotoxicity       float64 `json:"marine_ecotoxicity"`
	WaterScarcity           float64 `json:"water_scarcity"`
}

// HumanHealthImpact covers toxicity and occupational exposure.
type HumanHealthImpact struct {
	HumanToxicityPotential float64   `json:"human_toxicity_potential"`
	RespiratoryInorganics  float64   `json:"respiratory_inorganics"`
	OccupationalRisk       RiskLevel `json:"occupational_risk"`
	CarcinogenicEffects    float64   `json:"carcinogenic_effects"`
	NonCarcinogenicEffects float64   `json:"non_carcinogenic_effects"`
}

// ResourceImpact covers depletion of minerals, fossil energy, water and land.
type ResourceImpact struct {
	MineralDepletion float64 `json:"mineral_depletion"`
	FossilDepletion  float64 `json:"fossil_depletion"`
	WaterDepletion   float64 `json:"water_depletion"`
	LandUse          float64 `json:"land_use"`
}

// BiodiversityImpact covers ecosystem effects.
type BiodiversityImpact struct {
	TerrestrialEcotoxicity float64      `json:"terrestrial_ecotoxicity"`
	LandUseChange          float64      `json:"land_use_change"`
	HabitatAlteration      HabitatLevel `json:"habitat_alteration"`
	IonizingRadiation      float64      `json:"ionizing_radiation"`
}

// CircularityImpact covers circular-economy performance.
type CircularityImpact struct {
	MaterialCircularityIndicator float64 `json:"material_circularity_indicator"`
	RecyclingRate                float64 `json:"recycling_rate"`
	CascadeUtilization           float64 `json:"cascade_utilization"`
	MaterialEfficiency           float64 `json:"material_efficiency"`
	WasteToResourceRatio         float64 `json:"waste_to_resource_ratio"`
	SymbiosisValue               float64 `json:"symbiosis_value"`
}

// FactorUsage records one factor the engine resolved for a calculation.
type FactorUsage struct {
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	Region     string  `json:"region"`
	Resolution string  `json:"resolution"`
}
