package lca

// Impact categories as reported by Indicators.
const (
	CategoryClimate      = "climate"
	CategoryAir          = "air"
	CategoryWater        = "water"
	CategoryHumanHealth  = "humanHealth"
	CategoryResources    = "resources"
	CategoryBiodiversity = "biodiversity"
	CategoryCircularity  = "circularity"
)

// Indicator is one numeric impact value in a flat listing.
type Indicator struct {
	Category string  `json:"category"`
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
}

// Indicators flattens r into a stable, ordered list of numeric indicators.
// Qualitative levels are reported as their ordinal (0 = Low).
func Indicators(r *Result) []Indicator {
	if r == nil {
		return nil
	}

	c, a, w, h := r.Climate, r.Air, r.Water, r.HumanHealth
	res, b, circ := r.Resources, r.Biodiversity, r.Circularity

	return []Indicator{
		{CategoryClimate, "globalWarmingPotential", c.GlobalWarmingPotential, "kg CO2-eq"},
		{CategoryClimate, "co2", c.CO2, "kg"},
		{CategoryClimate, "directCO2", c.DirectCO2, "kg"},
		{CategoryClimate, "fossilCO2", c.FossilCO2, "kg"},
		{CategoryClimate, "ch4", c.CH4, "kg"},
		{CategoryClimate, "n2o", c.N2O, "kg"},

		{CategoryAir, "acidificationPotential", a.AcidificationPotential, "kg SO2-eq"},
		{CategoryAir, "photochemicalOzoneCreation", a.PhotochemicalOzoneCreation, "kg C2H4-eq"},
		{CategoryAir, "particulateMatterFormation", a.ParticulateMatterFormation, "kg PM2.5-eq"},
		{CategoryAir, "ozoneDepletionPotential", a.OzoneDepletionPotential, "kg CFC-11-eq"},
		{CategoryAir, "so2", a.SO2, "kg"},
		{CategoryAir, "nox", a.NOx, "kg"},
		{CategoryAir, "co", a.CO, "kg"},
		{CategoryAir, "pm", a.PM, "kg"},
		{CategoryAir, "voc", a.VOC, "kg"},
		{CategoryAir, "heavyMetals", a.HeavyMetals, "kg"},

		{CategoryWater, "eutrophicationPotential", w.EutrophicationPotential, "kg PO4-eq"},
		{CategoryWater, "freshwaterEcotoxicity", w.FreshwaterEcotoxicity, "CTUe"},
		{CategoryWater, "marineEcotoxicity", w.MarineEcotoxicity, "CTUe"},
		{CategoryWater, "waterScarcity", w.WaterScarcity, "m3 world-eq"},

		{CategoryHumanHealth, "humanToxicityPotential", h.HumanToxicityPotential, "CTUh"},
		{CategoryHumanHealth, "respiratoryInorganics", h.RespiratoryInorganics, "DALY"},
		{CategoryHumanHealth, "occupationalRisk", float64(h.OccupationalRisk), "level"},
		{CategoryHumanHealth, "carcinogenicEffects", h.CarcinogenicEffects, "CTUh"},
		{CategoryHumanHealth, "nonCarcinogenicEffects", h.NonCarcinogenicEffects, "CTUh"},

		{CategoryResources, "mineralDepletion", res.MineralDepletion, "kg Sb-eq"},
		{CategoryResources, "fossilDepletion", res.FossilDepletion, "MJ"},
		{CategoryResources, "waterDepletion", res.WaterDepletion, "m3"},
		{CategoryResources, "landUse", res.LandUse, "m2a"},

		{CategoryBiodiversity, "terrestrialEcotoxicity", b.TerrestrialEcotoxicity, "CTUe"},
		{CategoryBiodiversity, "landUseChange", b.LandUseChange, "PDF"},
		{CategoryBiodiversity, "habitatAlteration", float64(b.HabitatAlteration), "level"},
		{CategoryBiodiversity, "ionizingRadiation", b.IonizingRadiation, "kBq U235-eq"},

		{CategoryCircularity, "materialCircularityIndicator", circ.MaterialCircularityIndicator, "ratio"},
		{CategoryCircularity, "recyclingRate", circ.RecyclingRate, "%"},
		{CategoryCircularity, "cascadeUtilization", circ.CascadeUtilization, "%"},
		{CategoryCircularity, "materialEfficiency", circ.MaterialEfficiency, "%"},
		{CategoryCircularity, "wasteToResourceRatio", circ.WasteToResourceRatio, "%"},
		{CategoryCircularity, "symbiosisValue", circ.SymbiosisValue, "USD"},
	}
}
