package factors

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedCatalogVersions is the semver constraint catalog files must meet.
const SupportedCatalogVersions = ">= 1.0.0, < 2.0.0"

// Catalog loading errors.
var (
	ErrCatalogVersionMissing     = errors.New("catalog version is required")
	ErrCatalogVersionUnsupported = errors.New("catalog version is not supported")
	ErrInvalidFactor             = errors.New("invalid catalog entry")
)

// LoadCatalog reads a YAML catalog file. The result is usually merged onto
// DefaultCatalog with Catalog.Merge.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	cat, err := DecodeCatalog(f)
	if err != nil {
		return Catalog{}, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return cat, nil
}

// DecodeCatalog parses and validates a YAML catalog.
func DecodeCatalog(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cat Catalog
	if err := dec.Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, ErrCatalogVersionMissing
		}
		return Catalog{}, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

// Validate checks the catalog version and that every entry is usable.
func (c Catalog) Validate() error {
	if c.Version == "" {
		return ErrCatalogVersionMissing
	}
	if err := CheckCatalogVersion(c.Version); err != nil {
		return err
	}

	var errs []error
	for i, f := range c.EmissionFactors {
		switch {
		case f.Substance == "" || f.Source == "":
			errs = append(errs, fmt.Errorf("%w: emission_factors[%d] needs substance and source", ErrInvalidFactor, i))
		case f.Quality != "" && f.Quality.Score() == 0:
			errs = append(errs, fmt.Errorf("%w: emission_factors[%d] has unknown grade %q", ErrInvalidFactor, i, f.Quality))
		default:
			errs = append(errs, checkAmounts("emission_factors", i, f.Value, f.UncertaintyPct)...)
		}
	}
	for i, f := range c.EnvironmentalFactors {
		switch f.Kind {
		case KindWaterStress, KindBiodiversity, KindMineralDepletion:
			errs = append(errs, checkAmounts("environmental_factors", i, f.Value, f.UncertaintyPct)...)
		default:
			errs = append(errs, fmt.Errorf("%w: environmental_factors[%d] has unknown kind %q", ErrInvalidFactor, i, f.Kind))
		}
	}
	return errors.Join(errs...)
}

// checkAmounts rejects negative, NaN and infinite factor values and
// uncertainties; either would propagate into every indicator.
func checkAmounts(list string, i int, value, uncertaintyPct float64) []error {
	var errs []error
	for _, field := range []struct {
		name string
		v    float64
	}{{"value", value}, {"uncertainty_pct", uncertaintyPct}} {
		switch {
		case math.IsNaN(field.v) || math.IsInf(field.v, 0):
			errs = append(errs, fmt.Errorf("%w: %s[%d] has non-finite %s %g", ErrInvalidFactor, list, i, field.name, field.v))
		case field.v < 0:
			errs = append(errs, fmt.Errorf("%w: %s[%d] has negative %s %g", ErrInvalidFactor, list, i, field.name, field.v))
		}
	}
	return errs
}

// CheckCatalogVersion reports whether version satisfies SupportedCatalogVersions.
func CheckCatalogVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrCatalogVersionUnsupported, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedCatalogVersions)
	if err != nil {
		return fmt.Errorf("parsing catalog constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrCatalogVersionUnsupported, version, SupportedCatalogVersions)
	}
	return nil
}
