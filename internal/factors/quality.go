package factors

import (
	"math"
	"sort"
	"time"
)

// Overall data-quality labels.
const (
	QualityExcellent = "Excellent"
	QualityGood      = "Good"
	QualityFair      = "Fair"
	QualityPoor      = "Poor"
)

// Thresholds used by AssessDataQuality.
const (
	excellentScore = 3.5
	goodScore      = 2.5
	fairScore      = 1.5

	// diversifyBelowScore triggers the "diversify sources" recommendation.
	diversifyBelowScore = 3.0
	// sensitivityAboveUncertaintyPct triggers the sensitivity recommendation.
	sensitivityAboveUncertaintyPct = 20.0

	// CurrencyWindowMonths is how old a source may be before it is outdated.
	CurrencyWindowMonths = 6
)

// Recommendation texts emitted by AssessDataQuality.
const (
	RecommendDiversify   = "Consider using more high-quality data sources (grade A or B) to diversify the factor base"
	RecommendSensitivity = "Perform sensitivity analysis for factors with uncertainty above 20%"
	RecommendCollect     = "No reference factors supplied; collect factors before assessing quality"
)

// QualityAssessment summarises the quality of a set of factors.
type QualityAssessment struct {
	Overall         string   `json:"overall"`
	Score           float64  `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// AssessDataQuality averages the grade scores of factors (A=4 .. D=1) and
// labels the result Excellent (>=3.5), Good (>=2.5), Fair (>=1.5) or Poor.
// It recommends diversifying sources when the average is below 3 and a
// sensitivity analysis when any factor's uncertainty exceeds 20%.
func AssessDataQuality(factors []ReferenceFactor) QualityAssessment {
	if len(factors) == 0 {
		return QualityAssessment{
			Overall:         QualityPoor,
			Recommendations: []string{RecommendCollect},
		}
	}

	var (
		total         float64
		highUncertain bool
	)
	for _, f := range factors {
		total += f.Quality.Score()
		if f.UncertaintyPct > sensitivityAboveUncertaintyPct {
			highUncertain = true
		}
	}
	score := total / float64(len(factors))

	recs := []string{}
	if score < diversifyBelowScore {
		recs = append(recs, RecommendDiversify)
	}
	if highUncertain {
		recs = append(recs, RecommendSensitivity)
	}

	return QualityAssessment{
		Overall:         qualityLabel(score),
		Score:           math.Round(score*100) / 100,
		Recommendations: recs,
	}
}

func qualityLabel(score float64) string {
	switch {
	case score >= excellentScore:
		return QualityExcellent
	case score >= goodScore:
		return QualityGood
	case score >= fairScore:
		return QualityFair
	default:
		return QualityPoor
	}
}

// AssessDataQuality assesses every emission factor in the provider.
func (p *Provider) AssessDataQuality() QualityAssessment {
	return AssessDataQuality(p.EmissionFactors())
}

// CurrencyReport partitions registered sources by age.
type CurrencyReport struct {
	AsOf     time.Time    `json:"as_of"`
	Outdated []DataSource `json:"outdated"`
	Current  []DataSource `json:"current"`
}

// ValidateDataCurrency marks a source outdated when its last update is more
// than CurrencyWindowMonths before asOf. A zero asOf means now.
// Both lists are sorted by name.
func (p *Provider) ValidateDataCurrency(asOf time.Time) CurrencyReport {
	if asOf.IsZero() {
		asOf = p.now()
	}
	cutoff := asOf.AddDate(0, -CurrencyWindowMonths, 0)

	report := CurrencyReport{
		AsOf:     asOf,
		Outdated: []DataSource{},
		Current:  []DataSource{},
	}
	for _, s := range p.sources {
		if s.LastUpdated.Before(cutoff) {
			report.Outdated = append(report.Outdated, s)
		} else {
			report.Current = append(report.Current, s)
		}
	}

	byName := func(list []DataSource) {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	byName(report.Outdated)
	byName(report.Current)
	return report
}
