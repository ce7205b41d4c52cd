// Package factors provides the reference-factor catalog used by the LCA
// engine: emission factors, grid intensities and region-specific
// environmental factors (water stress, biodiversity, mineral depletion).
//
// Every lookup follows the same resolution chain: the requested region,
// then the "Global" entry, then a documented built-in constant. Falling
// back is normal operation and never an error, except for EmissionFactor
// which reports ErrFactorNotFound so callers can pick their own constant.
package factors

import (
	"fmt"
	"strings"
	"time"
)

// GlobalRegion is the region every lookup falls back to.
const GlobalRegion = "Global"

// Grade is a data-quality rating, A being the most reliable.
type Grade string

// Data-quality grades.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Score maps a grade onto the 4..1 scale used by AssessDataQuality.
// Unknown grades score 0.
func (g Grade) Score() float64 {
	switch Grade(strings.ToUpper(string(g))) {
	case GradeA:
		return 4
	case GradeB:
		return 3
	case GradeC:
		return 2
	case GradeD:
		return 1
	default:
		return 0
	}
}

// ReferenceFactor is an emission or characterization factor for one
// substance from one source in one region.
type ReferenceFactor struct {
	Substance      string    `yaml:"substance"       json:"substance"`
	Source         string    `yaml:"source"          json:"source"`
	Region         string    `yaml:"region"          json:"region"`
	Value          float64   `yaml:"value"           json:"value"`
	Unit           string    `yaml:"unit"            json:"unit"`
	UncertaintyPct float64   `yaml:"uncertainty_pct" json:"uncertainty_pct"`
	Quality        Grade     `yaml:"quality"         json:"quality"`
	LastUpdated    time.Time `yaml:"last_updated"    json:"last_updated"`
}

// String implements fmt.Stringer.
func (f ReferenceFactor) String() string {
	return fmt.Sprintf("%s/%s@%s=%g %s", f.Substance, f.Source, f.Region, f.Value, f.Unit)
}

// EnvironmentalKind groups environmental factors by what they describe.
type EnvironmentalKind string

// Environmental factor kinds.
const (
	KindWaterStress      EnvironmentalKind = "water_stress"
	KindBiodiversity     EnvironmentalKind = "biodiversity"
	KindMineralDepletion EnvironmentalKind = "mineral_depletion"
)

// EnvironmentalFactor is a region-specific environmental parameter.
//
// For water stress Parameter is informational; for biodiversity it is the
// land-use type; for mineral depletion it is the mineral name matched by
// substring.
type EnvironmentalFactor struct {
	Kind           EnvironmentalKind `yaml:"kind"            json:"kind"`
	Parameter      string            `yaml:"parameter"       json:"parameter"`
	Value          float64           `yaml:"value"           json:"value"`
	Unit           string            `yaml:"unit"            json:"unit"`
	Region         string            `yaml:"region"          json:"region"`
	Source         string            `yaml:"source"          json:"source"`
	Methodology    string            `yaml:"methodology"     json:"methodology"`
	UncertaintyPct float64           `yaml:"uncertainty_pct" json:"uncertainty_pct"`
}

// DataSource is a registered provider of reference data.
type DataSource struct {
	Name         string    `yaml:"name"                   json:"name"`
	Organization string    `yaml:"organization,omitempty" json:"organization,omitempty"`
	URL          string    `yaml:"url,omitempty"          json:"url,omitempty"`
	LastUpdated  time.Time `yaml:"last_updated"           json:"last_updated"`
}

// Resolution records which step of the fallback chain produced a value.
type Resolution int

const (
	// ResolvedRegion means the requested region had an entry.
	ResolvedRegion Resolution = iota
	// ResolvedGlobal means the Global entry was used.
	ResolvedGlobal
	// ResolvedDefault means the built-in constant was used.
	ResolvedDefault
)

// String implements fmt.Stringer.
func (r Resolution) String() string {
	switch r {
	case ResolvedRegion:
		return "region"
	case ResolvedGlobal:
		return "global"
	case ResolvedDefault:
		return "default"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// Resolved is a scalar factor together with where it came from.
type Resolved struct {
	Value          float64    `json:"value"`
	Unit           string     `json:"unit,omitempty"`
	Region         string     `json:"region"`
	Resolution     Resolution `json:"resolution"`
	UncertaintyPct float64    `json:"uncertainty_pct"`
}

// IsDefault reports whether the built-in constant was used.
func (r Resolved) IsDefault() bool {
	return r.Resolution == ResolvedDefault
}
