// Package valuation prices the recoverable materials of an inventory
// record against a commodity market.
//
// Prices come from a PriceSource behind a Valuer that applies a timeout,
// a TTL cache and stale-on-failure fallback. The LCA engine never calls
// into this package; valuation runs after a calculation completes.
package valuation

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// Commodities priced by the built-in mock source.
const (
	CommodityCopper     = "copper"
	CommodityZinc       = "zinc"
	CommodityLead       = "lead"
	CommodityNickel     = "nickel"
	CommodityAluminium  = "aluminium"
	CommodityIronOre    = "iron ore"
	CommodityByproducts = "recyclable byproducts"
	CommodityReuse      = "reused byproducts"
	CommodityCarbon     = "carbon"
)

// DefaultMarket is used when no market is configured.
const DefaultMarket = "LME"

// DefaultCurrency is the currency of every mock quote.
const DefaultCurrency = "USD"

// Quote is a commodity price per unit.
type Quote struct {
	Commodity string          `json:"commodity"`
	Market    string          `json:"market"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Unit      string          `json:"unit"`
	AsOf      time.Time       `json:"as_of"`
	// Stale is set when the quote was served from an expired cache entry.
	Stale bool `json:"stale,omitempty"`
}

// PriceSource fetches current commodity prices. Implementations must
// honour ctx cancellation.
type PriceSource interface {
	Price(ctx context.Context, commodity, market string) (Quote, error)
}

// ErrUnknownCommodity is returned by MockPriceSource for unpriced commodities.
const ErrUnknownCommodity = constError("unknown commodity")

type constError string

func (e constError) Error() string { return string(e) }

type mockPrice struct {
	price decimal.Decimal
	unit  string
}

// MockPriceSource serves static illustrative prices, optionally after a
// simulated latency. Safe for concurrent use.
type MockPriceSource struct {
	latency time.Duration
	now     func() time.Time
	calls   atomic.Int64

	mu      sync.RWMutex
	prices  map[string]mockPrice
	failure error
}

// MockOption configures a MockPriceSource.
type MockOption func(*MockPriceSource)

// WithLatency delays every quote by d, or until ctx is done.
func WithLatency(d time.Duration) MockOption {
	return func(m *MockPriceSource) { m.latency = d }
}

// WithMockClock sets the quote timestamp clock.
func WithMockClock(now func() time.Time) MockOption {
	return func(m *MockPriceSource) { m.now = now }
}

// NewMockPriceSource returns a source seeded with illustrative prices.
func NewMockPriceSource(opts ...MockOption) *MockPriceSource {
	m := &MockPriceSource{
		now: time.Now,
		prices: map[string]mockPrice{
			CommodityCopper:     {decimal.RequireFromString("8.50"), "kg"},
			CommodityZinc:       {decimal.RequireFromString("2.60"), "kg"},
			CommodityLead:       {decimal.RequireFromString("2.10"), "kg"},
			CommodityNickel:     {decimal.RequireFromString("16.00"), "kg"},
			CommodityAluminium:  {decimal.RequireFromString("2.30"), "kg"},
			CommodityIronOre:    {decimal.RequireFromString("0.11"), "kg"},
			CommodityByproducts: {decimal.RequireFromString("0.05"), "kg"},
			CommodityReuse:      {decimal.RequireFromString("0.03"), "kg"},
			CommodityCarbon:     {decimal.RequireFromString("0.085"), "kg CO2e"},
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetPrice sets or replaces a commodity price.
func (m *MockPriceSource) SetPrice(commodity string, price decimal.Decimal, unit string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[normalize(commodity)] = mockPrice{price: price, unit: unit}
}

// SetFailure makes every subsequent call fail with err; nil restores service.
func (m *MockPriceSource) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// Calls returns how many times Price has been invoked.
func (m *MockPriceSource) Calls() int64 {
	return m.calls.Load()
}

// Price implements PriceSource.
func (m *MockPriceSource) Price(ctx context.Context, commodity, market string) (Quote, error) {
	m.calls.Add(1)

	if m.latency > 0 {
		timer := time.NewTimer(m.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Quote{}, ctx.Err()
		case <-timer.C:
		}
	}

	m.mu.RLock()
	p, ok := m.prices[normalize(commodity)]
	failure := m.failure
	m.mu.RUnlock()

	if failure != nil {
		return Quote{}, failure
	}
	if !ok {
		return Quote{}, fmt.Errorf("%w: %q", ErrUnknownCommodity, commodity)
	}
	return Quote{
		Commodity: normalize(commodity),
		Market:    market,
		Price:     p.price,
		Currency:  DefaultCurrency,
		Unit:      p.unit,
		AsOf:      m.now(),
	}, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
