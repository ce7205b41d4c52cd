package lca

import "github.com/rshade/lcaengine/internal/inventory"

func calculateResources(rec inventory.Record) ResourceImpact {
	primaryShare := 1 - rec.ScrapInputShare/percent

	fossilMJ := rec.FuelConsumption*fuelEnergyMJPerLitre +
		rec.CoalInput*coalEnergyMJPerKg +
		rec.NaturalGasInput*gasEnergyMJPerM3

	land := rec.LandOccupied*(rec.ProductionVolume/landOccupationScale) +
		rec.LandDisturbed*landDisturbanceWeight

	return ResourceImpact{
		MineralDepletion: rec.OreMined * primaryShare * mineralDepletionPerOre,
		FossilDepletion:  fossilMJ,
		WaterDepletion:   rec.WaterConsumed,
		LandUse:          land,
	}
}
