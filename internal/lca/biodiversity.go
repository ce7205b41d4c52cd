package lca

import "github.com/rshade/lcaengine/internal/inventory"

func calculateBiodiversity(rec inventory.Record, air AirImpact) BiodiversityImpact {
	ecotox := rec.HazardousWaste*hazardousEcotoxWeight + air.HeavyMetals*metalAirEcotoxWeight

	return BiodiversityImpact{
		TerrestrialEcotoxicity: ecotox * terrestrialScale,
		LandUseChange:          rec.BiodiversityZone * landUseChangePerZone,
		HabitatAlteration:      habitatAlteration(rec.BiodiversityZone, rec.LandDisturbed),
		IonizingRadiation:      rec.ProductionVolume * radiationPerUnit,
	}
}

// habitatAlteration rates habitat impact from the affected zone and the
// disturbed land area. Thresholds are strict.
func habitatAlteration(zone, disturbed float64) HabitatLevel {
	switch {
	case zone > highHabitatZone || disturbed > highHabitatDisturbed:
		return HabitatHigh
	case zone > moderateHabitatZone || disturbed > moderateHabitatDisturbed:
		return HabitatModerate
	default:
		return HabitatLow
	}
}
