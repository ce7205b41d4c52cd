package lca

import "github.com/rshade/lcaengine/internal/inventory"

// calculateHumanHealth reuses the particulate-matter formation midpoint from
// the air group for respiratory effects.
func calculateHumanHealth(rec inventory.Record, air AirImpact) HumanHealthImpact {
	toxicity := rec.ToxicAirPollutants*toxicAirWeight +
		rec.ToxicEffluents*toxicEffluentWeight +
		(rec.WorkplaceDust+rec.WorkplaceMetalExposure)*workplaceWeight

	return HumanHealthImpact{
		HumanToxicityPotential: toxicity,
		RespiratoryInorganics:  air.ParticulateMatterFormation * respiratoryPerPM,
		OccupationalRisk:       occupationalRisk(rec.WorkplaceDust, rec.WorkplaceMetalExposure),
		CarcinogenicEffects:    rec.ToxicAirPollutants * carcinogenicShare * carcinogenicFactor,
		NonCarcinogenicEffects: rec.ToxicAirPollutants * nonCarcinogenicShare * nonCarcinogenicFactor,
	}
}

// occupationalRisk rates workplace exposure. Thresholds are strict.
func occupationalRisk(dust, metal float64) RiskLevel {
	switch {
	case dust > highRiskDust || metal > highRiskMetal:
		return RiskHigh
	case dust > mediumRiskDust || metal > mediumRiskMetal:
		return RiskMedium
	default:
		return RiskLow
	}
}
