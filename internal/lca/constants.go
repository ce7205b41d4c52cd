package lca

// IPCC AR4 100-year global warming potentials. These are characterization
// factors, not catalog data, and stay fixed in code.
const (
	GWPMethane       = 25.0
	GWPNitrousOxide  = 298.0
	GWPCarbonDioxide = 1.0
)

// Built-in fuel emission factors used when the provider has no entry for
// the region or Global.
const (
	DefaultDieselFactor     = 2.68 // kg CO2/L
	DefaultNaturalGasFactor = 1.98 // kg CO2/m3
	DefaultCoalFactor       = 2.42 // kg CO2/kg
)

// DefaultRegion is used when Calculate receives an empty region.
const DefaultRegion = "global"

// Climate coefficients.
const (
	// calcinationCO2Factor is the CO2 mass released per mass of CaCO3 flux
	// (CaCO3 -> CaO + CO2).
	calcinationCO2Factor = 0.44

	methanePerLitreFuel  = 0.0001
	methanePerUnitOutput = 0.05
	nitrousPerLitreFuel  = 0.00005
	nitrousPerUnitOutput = 0.02
)

// Air emission coefficients.
const (
	so2PerLitreFuel    = 0.002
	so2PerOreMetal     = 0.01
	noxPerFuel         = 0.01
	noxPerUnitOutput   = 0.05
	coPerLitreFuel     = 0.005
	coPerReductant     = 0.1
	pmPerDustCollected = 0.8
	pmPerUnitOutput    = 0.2
	vocPerLitreFuel    = 0.001
	vocPerAdditive     = 0.05
	metalAirPerOre     = 0.001

	// Midpoint characterization factors.
	acidificationSO2 = 1.0
	acidificationNOx = 0.7
	pocpVOC          = 0.416
	pocpNOx          = 0.028
	pmFormationSO2   = 0.54
	pmFormationNOx   = 0.88
	odpPerUnitOutput = 1e-6
)

// Water coefficients. Nutrient load is split 30/70 between phosphate and
// nitrate; the split is fixed.
const (
	phosphateShare       = 0.3
	nitrateShare         = 0.7
	phosphateEutrophying = 1.0
	nitrateEutrophying   = 0.1

	codEcotoxWeight       = 0.1
	freshwaterEcotoxScale = 0.5
	marineEcotoxScale     = 0.3
)

// Human health coefficients and occupational-risk thresholds.
const (
	toxicAirWeight        = 100.0
	toxicEffluentWeight   = 50.0
	workplaceWeight       = 10.0
	respiratoryPerPM      = 0.0001
	carcinogenicShare     = 0.1
	carcinogenicFactor    = 1e-5
	nonCarcinogenicShare  = 0.9
	nonCarcinogenicFactor = 5e-6

	highRiskDust    = 10.0
	highRiskMetal   = 5.0
	mediumRiskDust  = 5.0
	mediumRiskMetal = 2.0
)

// Resource depletion coefficients.
const (
	mineralDepletionPerOre = 1e-4
	fuelEnergyMJPerLitre   = 35.0
	coalEnergyMJPerKg      = 25.0
	gasEnergyMJPerM3       = 35.0
	landOccupationScale    = 10000.0
	landDisturbanceWeight  = 0.1
)

// Biodiversity coefficients and habitat-alteration thresholds.
const (
	hazardousEcotoxWeight = 0.5
	metalAirEcotoxWeight  = 0.01
	terrestrialScale      = 0.1
	landUseChangePerZone  = 0.001
	radiationPerUnit      = 0.1

	highHabitatZone          = 1000.0
	highHabitatDisturbed     = 500.0
	moderateHabitatZone      = 500.0
	moderateHabitatDisturbed = 200.0
)

// Circularity coefficients.
const (
	percent                = 100.0
	symbiosisValuePerLink  = 50000.0
	symbiosisValuePerReuse = 100.0
)
