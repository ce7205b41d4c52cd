package lca

import "github.com/rshade/lcaengine/internal/inventory"

func calculateWater(rec inventory.Record, f Factors) WaterImpact {
	phosphate := rec.Nutrients * phosphateShare
	nitrate := rec.Nutrients * nitrateShare

	metalLoad := rec.HeavyMetalsWastewater * rec.ProcessWastewater

	return WaterImpact{
		EutrophicationPotential: phosphate*phosphateEutrophying + nitrate*nitrateEutrophying,
		FreshwaterEcotoxicity:   (metalLoad + rec.WastewaterCOD*codEcotoxWeight) * freshwaterEcotoxScale,
		MarineEcotoxicity:       metalLoad * marineEcotoxScale,
		WaterScarcity:           rec.WaterConsumed * f.WaterStress.Value,
	}
}
