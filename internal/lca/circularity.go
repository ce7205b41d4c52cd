package lca

import "github.com/rshade/lcaengine/internal/inventory"

// calculateCircularity computes circular-economy indicators. Divisions
// by zero production or zero solid waste yield 0.
func calculateCircularity(rec inventory.Record) CircularityImpact {
	recycled := rec.RecycledInputShare / percent
	recyclable := rec.Recyclability / percent
	diverted := rec.WasteDiverted / percent

	var cascade float64
	if rec.ProductionVolume > 0 {
		cascade = min(percent, rec.ByproductReuse/rec.ProductionVolume*percent)
	}

	var wasteToResource float64
	if total := rec.TotalSolidWaste(); total > 0 {
		wasteToResource = rec.RecyclableByproducts / total * percent
	}

	symbiosis := float64(rec.SymbiosisExchanges)*symbiosisValuePerLink +
		rec.ByproductReuse*symbiosisValuePerReuse

	return CircularityImpact{
		MaterialCircularityIndicator: clamp01((recycled + recyclable + diverted) / 3),
		RecyclingRate:                rec.RecycledInputShare,
		CascadeUtilization:           cascade,
		MaterialEfficiency:           (rec.YieldEfficiency / percent) * diverted * percent,
		WasteToResourceRatio:         wasteToResource,
		SymbiosisValue:               symbiosis,
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
