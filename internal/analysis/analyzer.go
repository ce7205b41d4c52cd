// Package analysis provides uncertainty and sensitivity analysis over the
// LCA engine.
//
// Uncertainty defaults to a fixed set of illustrative distributions. A
// seeded Monte Carlo mode is available through WithMonteCarlo; it samples
// the declared factor uncertainties and recomputes the affected indicators.
package analysis

import (
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/rshade/lcaengine/internal/factors"
	"github.com/rshade/lcaengine/internal/inventory"
	"github.com/rshade/lcaengine/internal/lca"
)

// Indicator keys used in analysis results.
const (
	KeyGlobalWarming = "globalWarmingPotential"
	KeyWaterScarcity = "waterScarcity"
	KeyHumanToxicity = "humanToxicity"

	KeyElectricitySensitivity = "electricitySensitivity"
	KeyRecyclingSensitivity   = "recyclingSensitivity"
)

// MonteCarloConfidencePct is the confidence label attached to sampled
// distributions.
const MonteCarloConfidencePct = 95.0

// sensitivityStep is the relative perturbation applied by the default
// sensitivity entries.
const sensitivityStep = 1.1

// Distribution summarises an indicator's uncertainty.
type Distribution struct {
	Mean          float64 `json:"mean"`
	StdDev        float64 `json:"std_dev"`
	ConfidencePct float64 `json:"confidence_pct"`
}

// Perturbation changes exactly one input of a record for sensitivity
// analysis. Apply receives a copy and may modify it freely.
type Perturbation struct {
	Name  string
	Apply func(*inventory.Record)
}

// DefaultPerturbations returns the built-in sensitivity entries.
func DefaultPerturbations() []Perturbation {
	return []Perturbation{
		{
			Name: KeyElectricitySensitivity,
			Apply: func(r *inventory.Record) {
				r.ElectricityConsumption *= sensitivityStep
			},
		},
		{
			Name: KeyRecyclingSensitivity,
			Apply: func(r *inventory.Record) {
				r.RecycledInputShare = math.Min(100, r.RecycledInputShare*sensitivityStep)
			},
		},
	}
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRegion sets the region used for every recomputation.
func WithRegion(region string) Option {
	return func(a *Analyzer) { a.region = region }
}

// WithMonteCarlo enables sampled uncertainty with a fixed seed.
// samples <= 0 leaves the stub distributions in place.
func WithMonteCarlo(samples int, seed uint64) Option {
	return func(a *Analyzer) {
		a.samples = samples
		a.seed = seed
	}
}

// WithPerturbation registers an additional sensitivity entry. An entry
// with an existing name replaces it.
func WithPerturbation(p Perturbation) Option {
	return func(a *Analyzer) {
		for i := range a.perturbations {
			if a.perturbations[i].Name == p.Name {
				a.perturbations[i] = p
				return
			}
		}
		a.perturbations = append(a.perturbations, p)
	}
}

// WithLogger sets the analyzer logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// Analyzer runs uncertainty and sensitivity analysis. It holds no mutable
// state and is safe for concurrent use.
type Analyzer struct {
	engine        *lca.Engine
	region        string
	samples       int
	seed          uint64
	perturbations []Perturbation
	logger        zerolog.Logger
}

// NewAnalyzer returns an analyzer that recomputes results with engine.
func NewAnalyzer(engine *lca.Engine, opts ...Option) *Analyzer {
	a := &Analyzer{
		engine:        engine,
		region:        lca.DefaultRegion,
		perturbations: DefaultPerturbations(),
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// MonteCarlo reports whether sampled uncertainty is enabled.
func (a *Analyzer) MonteCarlo() bool {
	return a.samples > 0
}

// Uncertainty returns a distribution per headline indicator. Without
// WithMonteCarlo the values are fixed placeholders independent of rec.
func (a *Analyzer) Uncertainty(rec inventory.Record) map[string]Distribution {
	if !a.MonteCarlo() {
		return stubDistributions()
	}
	return a.monteCarlo(rec)
}

func stubDistributions() map[string]Distribution {
	return map[string]Distribution{
		KeyGlobalWarming: {Mean: 1500, StdDev: 150, ConfidencePct: 95},
		KeyWaterScarcity: {Mean: 2.5, StdDev: 0.3, ConfidencePct: 90},
		KeyHumanToxicity: {Mean: 850, StdDev: 120, ConfidencePct: 85},
	}
}

func (a *Analyzer) monteCarlo(rec inventory.Record) map[string]Distribution {
	base := a.engine.ResolveFactors(a.region)
	rng := rand.New(rand.NewPCG(a.seed, a.seed^0x9e3779b97f4a7c15))

	var gwp, water, tox runningStats
	for range a.samples {
		f := lca.Factors{
			Electricity: perturb(rng, base.Electricity),
			Diesel:      perturb(rng, base.Diesel),
			NaturalGas:  perturb(rng, base.NaturalGas),
			Coal:        perturb(rng, base.Coal),
			WaterStress: perturb(rng, base.WaterStress),
		}
		res := a.engine.Evaluate(rec, a.region, f)
		gwp.add(res.Climate.GlobalWarmingPotential)
		water.add(res.Water.WaterScarcity)
		tox.add(res.HumanHealth.HumanToxicityPotential)
	}

	a.logger.Debug().
		Int("samples", a.samples).
		Uint64("seed", a.seed).
		Str("region", a.region).
		Msg("monte carlo uncertainty complete")

	return map[string]Distribution{
		KeyGlobalWarming: gwp.distribution(),
		KeyWaterScarcity: water.distribution(),
		KeyHumanToxicity: tox.distribution(),
	}
}

// perturb draws a factor value from a normal distribution whose standard
// deviation is the declared relative uncertainty. Draws are clamped at 0.
func perturb(rng *rand.Rand, r factors.Resolved) factors.Resolved {
	if r.UncertaintyPct <= 0 {
		return r
	}
	sigma := r.Value * r.UncertaintyPct / 100
	r.Value = math.Max(0, r.Value+rng.NormFloat64()*sigma)
	return r
}

// runningStats accumulates mean and variance with Welford's method.
type runningStats struct {
	n    int
	mean float64
	m2   float64
}

func (s *runningStats) add(x float64) {
	s.n++
	d := x - s.mean
	s.mean += d / float64(s.n)
	s.m2 += d * (x - s.mean)
}

func (s *runningStats) distribution() Distribution {
	var std float64
	if s.n > 1 {
		std = math.Sqrt(s.m2 / float64(s.n-1))
	}
	return Distribution{Mean: s.mean, StdDev: std, ConfidencePct: MonteCarloConfidencePct}
}

// Sensitivity reports, per registered perturbation, the percentage change
// in GWP relative to the unperturbed record. A zero baseline yields 0.
func (a *Analyzer) Sensitivity(rec inventory.Record) map[string]float64 {
	f := a.engine.ResolveFactors(a.region)
	base := a.engine.Evaluate(rec, a.region, f).Climate.GlobalWarmingPotential

	out := make(map[string]float64, len(a.perturbations))
	for _, p := range a.perturbations {
		if base == 0 {
			out[p.Name] = 0
			continue
		}
		perturbed := rec
		p.Apply(&perturbed)
		gwp := a.engine.Evaluate(perturbed, a.region, f).Climate.GlobalWarmingPotential
		out[p.Name] = (gwp - base) / base * 100
	}
	return out
}
