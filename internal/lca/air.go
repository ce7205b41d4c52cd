package lca

import "github.com/rshade/lcaengine/internal/inventory"

func calculateAir(rec inventory.Record) AirImpact {
	oreMetal := rec.OreMined * (rec.OreGrade / percent)

	so2 := rec.FuelConsumption*so2PerLitreFuel + oreMetal*so2PerOreMetal
	nox := (rec.FuelConsumption+rec.CoalInput)*noxPerFuel + rec.ProductionVolume*noxPerUnitOutput
	co := rec.FuelConsumption*coPerLitreFuel + rec.ChemicalReductants*coPerReductant
	pm := rec.DustCollected*pmPerDustCollected + rec.ProductionVolume*pmPerUnitOutput
	voc := rec.FuelConsumption*vocPerLitreFuel + rec.Additives*vocPerAdditive
	metals := oreMetal * metalAirPerOre

	return AirImpact{
		AcidificationPotential:     so2*acidificationSO2 + nox*acidificationNOx,
		PhotochemicalOzoneCreation: voc*pocpVOC + nox*pocpNOx,
		ParticulateMatterFormation: pm + so2*pmFormationSO2 + nox*pmFormationNOx,
		OzoneDepletionPotential:    rec.ProductionVolume * odpPerUnitOutput,
		SO2:                        so2,
		NOx:                        nox,
		CO:                         co,
		PM:                         pm,
		VOC:                        voc,
		HeavyMetals:                metals,
	}
}
