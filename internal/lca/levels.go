package lca

import (
	"fmt"
	"strings"
)

// RiskLevel is the qualitative occupational-risk rating.
type RiskLevel int

// Occupational risk levels.
const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

var riskNames = [...]string{"Low", "Medium", "High"}

// String implements fmt.Stringer.
func (l RiskLevel) String() string {
	if l < RiskLow || l > RiskHigh {
		return fmt.Sprintf("RiskLevel(%d)", int(l))
	}
	return riskNames[l]
}

// MarshalText encodes the level as its name.
func (l RiskLevel) MarshalText() ([]byte, error) {
	if l < RiskLow || l > RiskHigh {
		return nil, fmt.Errorf("invalid risk level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name, case-insensitively.
func (l *RiskLevel) UnmarshalText(text []byte) error {
	for i, name := range riskNames {
		if strings.EqualFold(name, string(text)) {
			*l = RiskLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown risk level %q", string(text))
}

// HabitatLevel is the qualitative habitat-alteration rating.
type HabitatLevel int

// Habitat alteration levels.
const (
	HabitatLow HabitatLevel = iota
	HabitatModerate
	HabitatHigh
)

var habitatNames = [...]string{"Low", "Moderate", "High"}

// String implements fmt.Stringer.
func (l HabitatLevel) String() string {
	if l < HabitatLow || l > HabitatHigh {
		return fmt.Sprintf("HabitatLevel(%d)", int(l))
	}
	return habitatNames[l]
}

// MarshalText encodes the level as its name.
func (l HabitatLevel) MarshalText() ([]byte, error) {
	if l < HabitatLow || l > HabitatHigh {
		return nil, fmt.Errorf("invalid habitat level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name, case-insensitively.
func (l *HabitatLevel) UnmarshalText(text []byte) error {
	for i, name := range habitatNames {
		if strings.EqualFold(name, string(text)) {
			*l = HabitatLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown habitat level %q", string(text))
}
