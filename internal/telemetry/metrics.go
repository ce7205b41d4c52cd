// Package telemetry records engine and factor-provider metrics on a
// private Prometheus registry.
package telemetry

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Metric names.
const (
	MetricCalculations        = "lca_calculations_total"
	MetricFactorFallbacks     = "lca_factor_fallbacks_total"
	MetricCalculationDuration = "lca_calculation_duration_seconds"
)

// Metrics implements lca.Recorder and provides a factors.FallbackObserver.
// Safe for concurrent use.
//
// lca_calculations_total counts Engine.Calculate calls; analyzer samples
// are not counted. lca_factor_fallbacks_total counts factor resolutions,
// not calculations: the engine caches one factor snapshot per region, so
// a region that falls back adds to it once per engine however many
// records are calculated there.
type Metrics struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	duration     prometheus.Histogram
}

// New registers the LCA metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricCalculations,
			Help: "LCA calculations completed, by whether built-in default factors were used.",
		}, []string{"defaults"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricFactorFallbacks,
			Help: "Reference factor resolutions that left the requested region (once per region per engine).",
		}, []string{"lookup", "kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricCalculationDuration,
			Help:    "Time spent computing one LCA result.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	m.registry.MustRegister(m.calculations, m.fallbacks, m.duration)
	return m
}

// Registry exposes the underlying registry, e.g. for an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCalculation implements lca.Recorder.
func (m *Metrics) ObserveCalculation(_ string, elapsed time.Duration, usedDefaults bool) {
	m.calculations.WithLabelValues(strconv.FormatBool(usedDefaults)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// ObserveFallback has the factors.FallbackObserver signature.
func (m *Metrics) ObserveFallback(lookup, kind string) {
	m.fallbacks.WithLabelValues(lookup, kind).Inc()
}

// WriteText writes every metric in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Snapshot is a point-in-time summary of the recorded metrics.
type Snapshot struct {
	Calculations             int
	CalculationsWithDefaults int
	Fallbacks                map[string]int
	DurationSum              time.Duration
}

// Snapshot gathers the registry into a Snapshot. Fallbacks are keyed
// "lookup/kind".
func (m *Metrics) Snapshot() (Snapshot, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return Snapshot{}, fmt.Errorf("gathering metrics: %w", err)
	}

	s := Snapshot{Fallbacks: make(map[string]int)}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := labelMap(metric)
			switch mf.GetName() {
			case MetricCalculations:
				n := int(metric.GetCounter().GetValue())
				s.Calculations += n
				if labels["defaults"] == "true" {
					s.CalculationsWithDefaults += n
				}
			case MetricFactorFallbacks:
				key := labels["lookup"] + "/" + labels["kind"]
				s.Fallbacks[key] += int(metric.GetCounter().GetValue())
			case MetricCalculationDuration:
				sum := metric.GetHistogram().GetSampleSum()
				s.DurationSum += time.Duration(sum * float64(time.Second))
			}
		}
	}
	return s, nil
}

func labelMap(metric *dto.Metric) map[string]string {
	out := make(map[string]string, len(metric.GetLabel()))
	for _, lp := range metric.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}
