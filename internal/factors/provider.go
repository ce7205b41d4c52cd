package factors

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrFactorNotFound is returned by EmissionFactor when neither the region
// nor Global has an entry for the substance/source pair.
const ErrFactorNotFound = constError("reference factor not found")

// Fallback kinds reported to a FallbackObserver.
const (
	FallbackGlobal  = "global"
	FallbackDefault = "default"
)

// FallbackObserver is notified whenever a lookup leaves the requested region.
// lookup names the operation (e.g. "electricity"), kind is FallbackGlobal
// or FallbackDefault.
type FallbackObserver func(lookup, kind string)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithFallbackObserver registers a hook called on every fallback.
func WithFallbackObserver(obs FallbackObserver) Option {
	return func(p *Provider) {
		p.onFallback = obs
	}
}

// WithClock overrides the clock used by ValidateDataCurrency callers that
// pass a zero time.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

// Provider answers reference-factor lookups over an immutable catalog.
// It is populated once by NewProvider and is safe for concurrent use.
type Provider struct {
	emission      *Table[ReferenceFactor]
	environmental *Table[EnvironmentalFactor]
	minerals      []EnvironmentalFactor
	sources       []DataSource
	version       string

	logger     zerolog.Logger
	onFallback FallbackObserver
	now        func() time.Time
}

// NewProvider indexes cat into lookup tables. Entries later in the catalog
// replace earlier ones with the same key.
func NewProvider(cat Catalog, opts ...Option) *Provider {
	p := &Provider{
		emission:      NewTable[ReferenceFactor](),
		environmental: NewTable[EnvironmentalFactor](),
		version:       cat.Version,
		logger:        zerolog.Nop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, f := range cat.EmissionFactors {
		p.emission.Put(f.Substance, f.Source, f.Region, f)
	}

	mineralIdx := make(map[string]int)
	for _, f := range cat.EnvironmentalFactors {
		switch f.Kind {
		case KindWaterStress:
			p.environmental.Put(string(f.Kind), "", f.Region, f)
		case KindMineralDepletion:
			name := normalize(f.Parameter)
			if i, ok := mineralIdx[name]; ok {
				p.minerals[i] = f
				continue
			}
			mineralIdx[name] = len(p.minerals)
			p.minerals = append(p.minerals, f)
		default:
			p.environmental.Put(string(f.Kind), f.Parameter, f.Region, f)
		}
	}

	p.sources = dedupeSources(cat.Sources)
	return p
}

// NewDefaultProvider builds a Provider over DefaultCatalog.
func NewDefaultProvider(opts ...Option) *Provider {
	return NewProvider(DefaultCatalog(), opts...)
}

// Version returns the catalog schema version.
func (p *Provider) Version() string {
	return p.version
}

// EmissionFactors returns every emission factor in key order.
func (p *Provider) EmissionFactors() []ReferenceFactor {
	out := make([]ReferenceFactor, 0, p.emission.Len())
	p.emission.Each(func(_ Key, f ReferenceFactor) bool {
		out = append(out, f)
		return true
	})
	return out
}

// Sources returns the registered data sources.
func (p *Provider) Sources() []DataSource {
	return append([]DataSource(nil), p.sources...)
}

// EmissionFactor returns the factor for (substance, source) in region,
// falling back to Global. An empty region means Global.
func (p *Provider) EmissionFactor(substance, source, region string) (ReferenceFactor, error) {
	f, res, ok := p.emission.Resolve(substance, source, region)
	if !ok {
		p.logger.Debug().
			Str("substance", substance).
			Str("source", source).
			Str("region", region).
			Msg("emission factor not found in region or Global")
		return ReferenceFactor{}, ErrFactorNotFound
	}
	if res == ResolvedGlobal && NormalizeRegion(region) != GlobalRegion {
		p.fallback("emission:"+normalize(source), FallbackGlobal, region)
	}
	return f, nil
}

// ResolveElectricityFactor returns the grid emission factor for region with
// provenance. Unknown regions resolve to DefaultGridFactor.
func (p *Provider) ResolveElectricityFactor(region string) Resolved {
	f, res, ok := p.emission.Resolve(SubstanceCO2, SourceGrid, region)
	if ok {
		if res == ResolvedGlobal && NormalizeRegion(region) != GlobalRegion {
			p.fallback("electricity", FallbackGlobal, region)
		}
		return Resolved{
			Value: f.Value, Unit: f.Unit, Region: f.Region,
			Resolution: res, UncertaintyPct: f.UncertaintyPct,
		}
	}
	p.fallback("electricity", FallbackDefault, region)
	return Resolved{
		Value:      DefaultGridFactor,
		Unit:       "kg CO2/kWh",
		Region:     DefaultGridRegion,
		Resolution: ResolvedDefault,
	}
}

// ElectricityEmissionFactor returns the grid emission factor in kg CO2/kWh.
func (p *Provider) ElectricityEmissionFactor(region string) float64 {
	return p.ResolveElectricityFactor(region).Value
}

// ResolveWaterStressFactor returns the water-stress multiplier for region
// with provenance. Unknown regions resolve to DefaultWaterStressFactor.
func (p *Provider) ResolveWaterStressFactor(region string) Resolved {
	f, res, ok := p.environmental.Resolve(string(KindWaterStress), "", region)
	if ok {
		if res == ResolvedGlobal && NormalizeRegion(region) != GlobalRegion {
			p.fallback("water_stress", FallbackGlobal, region)
		}
		return Resolved{
			Value: f.Value, Unit: f.Unit, Region: f.Region,
			Resolution: res, UncertaintyPct: f.UncertaintyPct,
		}
	}
	p.fallback("water_stress", FallbackDefault, region)
	return Resolved{
		Value:      DefaultWaterStressFactor,
		Region:     GlobalRegion,
		Resolution: ResolvedDefault,
	}
}

// WaterStressFactor returns the water-stress multiplier for region.
func (p *Provider) WaterStressFactor(region string) float64 {
	return p.ResolveWaterStressFactor(region).Value
}

// BiodiversityFactor returns the characterization factor for a land-use type.
func (p *Provider) BiodiversityFactor(landUseType string) float64 {
	f, _, ok := p.environmental.Resolve(string(KindBiodiversity), landUseType, GlobalRegion)
	if !ok {
		p.fallback("biodiversity", FallbackDefault, landUseType)
		return DefaultBiodiversityFactor
	}
	return f.Value
}

// MineralDepletionFactor returns the depletion factor of the first mineral,
// in catalog order, whose parameter name contains mineral (case-insensitive).
func (p *Provider) MineralDepletionFactor(mineral string) float64 {
	needle := normalize(mineral)
	if needle != "" {
		for _, f := range p.minerals {
			if strings.Contains(normalize(f.Parameter), needle) {
				return f.Value
			}
		}
	}
	p.fallback("mineral_depletion", FallbackDefault, mineral)
	return DefaultMineralDepletionFactor
}

func (p *Provider) fallback(lookup, kind, requested string) {
	p.logger.Debug().
		Str("lookup", lookup).
		Str("fallback", kind).
		Str("requested", requested).
		Msg("reference factor fallback")
	if p.onFallback != nil {
		p.onFallback(lookup, kind)
	}
}

// dedupeSources keeps one entry per source name, preferring the most
// recently updated, and preserves first-seen order.
func dedupeSources(in []DataSource) []DataSource {
	idx := make(map[string]int, len(in))
	out := make([]DataSource, 0, len(in))
	for _, s := range in {
		key := normalize(s.Name)
		if i, ok := idx[key]; ok {
			if s.LastUpdated.After(out[i].LastUpdated) {
				out[i] = s
			}
			continue
		}
		idx[key] = len(out)
		out = append(out, s)
	}
	return out
}
