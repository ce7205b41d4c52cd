package report

import (
	"fmt"
	"math"
)

// EquivalencyType identifies an equivalency.
type EquivalencyType string

// Supported equivalencies.
const (
	EquivalencyMilesDriven        EquivalencyType = "miles_driven"
	EquivalencySmartphonesCharged EquivalencyType = "smartphones_charged"
	EquivalencyTreeSeedlings      EquivalencyType = "tree_seedlings"
	EquivalencyHomeDays           EquivalencyType = "home_days"
)

// Equivalency is one activity-based rendering of a GWP value.
type Equivalency struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput is the full set of equivalencies for a GWP value.
type EquivalencyOutput struct {
	InputKg     float64       `json:"input_kg"`
	Results     []Equivalency `json:"results,omitempty"`
	DisplayText string        `json:"display_text,omitempty"`
	IsEmpty     bool          `json:"is_empty"`
}

// Equivalencies expresses gwpKg (kg CO2-eq) as everyday activities.
// Values below MinEquivalencyThresholdKg produce an empty output.
func Equivalencies(gwpKg float64) (EquivalencyOutput, error) {
	if gwpKg < 0 {
		return EquivalencyOutput{IsEmpty: true}, fmt.Errorf("%w: %g", ErrNegativeValue, gwpKg)
	}
	if gwpKg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: gwpKg, IsEmpty: true}, nil
	}

	specs := []struct {
		kind   EquivalencyType
		factor float64
		label  string
	}{
		{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven"},
		{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
		{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
		{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity"},
	}

	results := make([]Equivalency, 0, len(specs))
	for _, s := range specs {
		v := gwpKg / s.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, Equivalency{
			Type:           s.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          s.label,
		})
	}

	display := fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		results[0].FormattedValue, results[1].FormattedValue)

	return EquivalencyOutput{
		InputKg:     gwpKg,
		Results:     results,
		DisplayText: display,
	}, nil
}

func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
