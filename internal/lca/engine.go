// Package lca implements the life-cycle-assessment calculation engine.
//
// The engine converts an inventory.Record into impact indicators across
// seven categories: climate, air, water, human health, resource depletion,
// biodiversity and circularity. Each category is computed by an independent
// calculation group from the record and a snapshot of resolved factors.
//
// Calculation is pure with respect to the record, the region and the
// factor catalog. Missing factors never fail a calculation; the documented
// fallback constants are used and the result is flagged.
package lca

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/lcaengine/internal/factors"
	"github.com/rshade/lcaengine/internal/inventory"
)

// FactorSource is the part of the reference-factor provider the engine
// depends on. *factors.Provider satisfies it.
type FactorSource interface {
	EmissionFactor(substance, source, region string) (factors.ReferenceFactor, error)
	ResolveElectricityFactor(region string) factors.Resolved
	ResolveWaterStressFactor(region string) factors.Resolved
}

// Recorder observes completed calculations.
type Recorder interface {
	ObserveCalculation(region string, elapsed time.Duration, usedDefaults bool)
}

// Factors is the snapshot of factors one calculation uses.
type Factors struct {
	Electricity factors.Resolved
	Diesel      factors.Resolved
	NaturalGas  factors.Resolved
	Coal        factors.Resolved
	WaterStress factors.Resolved
}

// UsesDefaults reports whether any factor came from a built-in constant.
func (f Factors) UsesDefaults() bool {
	return f.Electricity.IsDefault() || f.Diesel.IsDefault() ||
		f.NaturalGas.IsDefault() || f.Coal.IsDefault() || f.WaterStress.IsDefault()
}

func (f Factors) usage() []FactorUsage {
	entry := func(name string, r factors.Resolved) FactorUsage {
		return FactorUsage{
			Name:       name,
			Value:      r.Value,
			Unit:       r.Unit,
			Region:     r.Region,
			Resolution: r.Resolution.String(),
		}
	}
	return []FactorUsage{
		entry("electricity", f.Electricity),
		entry("diesel", f.Diesel),
		entry("natural_gas", f.NaturalGas),
		entry("coal", f.Coal),
		entry("water_stress", f.WaterStress),
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock overrides the clock stamped on results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides the result ID generator.
func WithIDGenerator(next func() string) Option {
	return func(e *Engine) { e.nextID = next }
}

// WithRecorder registers a calculation observer.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// Engine computes LCA results. It is safe for concurrent use.
type Engine struct {
	source   FactorSource
	logger   zerolog.Logger
	now      func() time.Time
	nextID   func() string
	recorder Recorder

	mu       sync.RWMutex
	byRegion map[string]Factors
}

// NewEngine returns an engine reading factors from source.
func NewEngine(source FactorSource, opts ...Option) *Engine {
	e := &Engine{
		source:   source,
		logger:   zerolog.Nop(),
		now:      time.Now,
		nextID:   func() string { return ulid.Make().String() },
		byRegion: make(map[string]Factors),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResolveFactors returns the factor snapshot for region. Snapshots are
// cached per normalised region; the provider is immutable so entries
// never go stale.
func (e *Engine) ResolveFactors(region string) Factors {
	region = regionOrDefault(region)
	key := factors.NewKey("", "", region).Region

	e.mu.RLock()
	f, ok := e.byRegion[key]
	e.mu.RUnlock()
	if ok {
		return f
	}

	f = Factors{
		Electricity: e.source.ResolveElectricityFactor(region),
		Diesel:      e.fuelFactor(factors.SourceDiesel, region, DefaultDieselFactor, "kg CO2/L"),
		NaturalGas:  e.fuelFactor(factors.SourceNaturalGas, region, DefaultNaturalGasFactor, "kg CO2/m3"),
		Coal:        e.fuelFactor(factors.SourceCoal, region, DefaultCoalFactor, "kg CO2/kg"),
		WaterStress: e.source.ResolveWaterStressFactor(region),
	}

	e.mu.Lock()
	e.byRegion[key] = f
	e.mu.Unlock()
	return f
}

func (e *Engine) fuelFactor(source, region string, fallback float64, unit string) factors.Resolved {
	f, err := e.source.EmissionFactor(factors.SubstanceCO2, source, region)
	if err != nil {
		if !errors.Is(err, factors.ErrFactorNotFound) {
			e.logger.Warn().Err(err).Str("source", source).Msg("emission factor lookup failed, using built-in constant")
		}
		return factors.Resolved{
			Value:      fallback,
			Unit:       unit,
			Region:     factors.GlobalRegion,
			Resolution: factors.ResolvedDefault,
		}
	}

	res := factors.ResolvedRegion
	if factors.NormalizeRegion(f.Region) == factors.GlobalRegion {
		res = factors.ResolvedGlobal
	}
	return factors.Resolved{
		Value:          f.Value,
		Unit:           f.Unit,
		Region:         f.Region,
		Resolution:     res,
		UncertaintyPct: f.UncertaintyPct,
	}
}

// Calculate computes every impact indicator for rec in region. An empty
// region means DefaultRegion. It never fails; rec is expected to have
// passed inventory validation. Calculate is the observed entry point: it
// logs and notifies the Recorder once per call.
func (e *Engine) Calculate(rec inventory.Record, region string) *Result {
	start := time.Now()
	region = regionOrDefault(region)

	res := e.Evaluate(rec, region, e.ResolveFactors(region))
	res.ID = e.nextID()
	res.CalculatedAt = e.now()

	elapsed := time.Since(start)
	if res.UsedFallbackDefaults {
		e.logger.Warn().
			Str("region", region).
			Str("inventory", rec.DisplayName()).
			Msg("calculation used built-in fallback factors")
	}
	e.logger.Debug().
		Str("region", region).
		Str("inventory", rec.DisplayName()).
		Float64("gwp_kg_co2e", res.Climate.GlobalWarmingPotential).
		Dur("elapsed", elapsed).
		Msg("lca calculation complete")
	if e.recorder != nil {
		e.recorder.ObserveCalculation(region, elapsed, res.UsedFallbackDefaults)
	}
	return res
}

// Evaluate computes the indicators for rec with an explicit factor
// snapshot. It does not log, record metrics, or stamp ID and time; the
// analyzer calls it for every sample and perturbation.
func (e *Engine) Evaluate(rec inventory.Record, region string, f Factors) *Result {
	air := calculateAir(rec)
	return &Result{
		Name:           rec.Name,
		FunctionalUnit: rec.FunctionalUnit,
		Region:         regionOrDefault(region),

		Climate:      calculateClimate(rec, f),
		Air:          air,
		Water:        calculateWater(rec, f),
		HumanHealth:  calculateHumanHealth(rec, air),
		Resources:    calculateResources(rec),
		Biodiversity: calculateBiodiversity(rec, air),
		Circularity:  calculateCircularity(rec),

		FactorSources:        f.usage(),
		UsedFallbackDefaults: f.UsesDefaults(),
	}
}

// DefaultConcurrency is used by CalculateBatch when concurrency < 1.
const DefaultConcurrency = 4

// CalculateBatch computes results for records concurrently, preserving
// input order. It stops early only when ctx is cancelled.
func (e *Engine) CalculateBatch(
	ctx context.Context,
	records []inventory.Record,
	region string,
	concurrency int,
) ([]*Result, error) {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	results := make([]*Result, len(records))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range records {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = e.Calculate(records[i], region)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func regionOrDefault(region string) string {
	if region == "" {
		return DefaultRegion
	}
	return region
}
