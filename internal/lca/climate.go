package lca

import "github.com/rshade/lcaengine/internal/inventory"

// calculateClimate computes CO2 from flux calcination and fossil energy,
// plus CH4 and N2O, and combines them with the GWP100 factors.
func calculateClimate(rec inventory.Record, f Factors) ClimateImpact {
	direct := rec.Fluxes * calcinationCO2Factor

	fossil := rec.ElectricityConsumption*f.Electricity.Value +
		rec.FuelConsumption*f.Diesel.Value +
		rec.CoalInput*f.Coal.Value +
		rec.NaturalGasInput*f.NaturalGas.Value

	ch4 := rec.FuelConsumption*methanePerLitreFuel + rec.ProductionVolume*methanePerUnitOutput
	n2o := rec.FuelConsumption*nitrousPerLitreFuel + rec.ProductionVolume*nitrousPerUnitOutput

	co2 := direct + fossil
	return ClimateImpact{
		GlobalWarmingPotential: co2*GWPCarbonDioxide + ch4*GWPMethane + n2o*GWPNitrousOxide,
		CO2:                    co2,
		DirectCO2:              direct,
		FossilCO2:              fossil,
		CH4:                    ch4,
		N2O:                    n2o,
	}
}
