package valuation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/rshade/lcaengine/internal/cache"
	"github.com/rshade/lcaengine/internal/inventory"
	"github.com/rshade/lcaengine/internal/lca"
)

// DefaultTimeout bounds a single price fetch.
const DefaultTimeout = 2 * time.Second

// DefaultMetal is the commodity used to price ore metal content.
const DefaultMetal = CommodityCopper

// ErrPriceUnavailable is returned when the source fails and no cached
// price, fresh or stale, exists.
const ErrPriceUnavailable = constError("price unavailable")

// moneyPlaces is the rounding applied to line-item amounts.
const moneyPlaces = 2

// Option configures a Valuer.
type Option func(*Valuer)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(v *Valuer) {
		if d > 0 {
			v.timeout = d
		}
	}
}

// WithStore replaces the default in-memory price cache.
func WithStore(s cache.Store) Option {
	return func(v *Valuer) { v.store = s }
}

// WithMetal sets the commodity used to price ore metal content.
func WithMetal(commodity string) Option {
	return func(v *Valuer) { v.metal = normalize(commodity) }
}

// WithLogger sets the valuer logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Valuer) { v.logger = logger }
}

// Valuer prices recoverable materials with caching and stale fallback.
// Safe for concurrent use.
type Valuer struct {
	source  PriceSource
	store   cache.Store
	timeout time.Duration
	metal   string
	logger  zerolog.Logger
	flight  singleflight.Group
}

// NewValuer wraps source. Without WithStore, quotes are cached in memory
// for cache.DefaultTTLSeconds.
func NewValuer(source PriceSource, opts ...Option) *Valuer {
	v := &Valuer{
		source:  source,
		timeout: DefaultTimeout,
		metal:   DefaultMetal,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.store == nil {
		v.store = cache.NewMemoryStore(cache.DefaultTTLConfig().Duration)
	}
	return v
}

// Quote returns the price of commodity on market. A live cache entry is
// served without calling the source. When the source fails, the last
// cached quote is returned with Stale set; with no cached quote the error
// wraps ErrPriceUnavailable.
func (v *Valuer) Quote(ctx context.Context, commodity, market string) (Quote, error) {
	if market == "" {
		market = DefaultMarket
	}
	key, err := cache.GenerateKey(cache.KeyParams{
		Operation: "price",
		Commodity: commodity,
		Market:    market,
	})
	if err != nil {
		return Quote{}, err
	}

	if q, ok := v.cached(key, false); ok {
		return q, nil
	}

	q, fetchErr := v.fetch(ctx, key, commodity, market)
	if fetchErr == nil {
		v.remember(key, q)
		return q, nil
	}

	if q, ok := v.cached(key, true); ok {
		v.logger.Warn().
			Err(fetchErr).
			Str("commodity", commodity).
			Str("market", market).
			Time("as_of", q.AsOf).
			Str("age", cache.FormatAge(time.Since(q.AsOf))).
			Msg("price source failed, serving stale quote")
		q.Stale = true
		return q, nil
	}

	v.logger.Warn().
		Err(fetchErr).
		Str("commodity", commodity).
		Str("market", market).
		Msg("price source failed with no cached quote")
	return Quote{}, fmt.Errorf("%w: %s on %s: %w", ErrPriceUnavailable, commodity, market, fetchErr)
}

// fetch collapses concurrent requests for key into one source call. The
// shared call is detached from any single caller's cancellation and bounded
// by the valuer timeout; each caller stops waiting when its own ctx ends.
func (v *Valuer) fetch(ctx context.Context, key, commodity, market string) (Quote, error) {
	ch := v.flight.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), v.timeout)
		defer cancel()
		return v.source.Price(fetchCtx, commodity, market)
	})

	select {
	case <-ctx.Done():
		return Quote{}, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return Quote{}, r.Err
		}
		return asQuote(r.Val)
	}
}

func asQuote(v any) (Quote, error) {
	q, ok := v.(Quote)
	if !ok {
		return Quote{}, fmt.Errorf("shared price fetch produced %T, want Quote", v)
	}
	return q, nil
}

func (v *Valuer) cached(key string, allowStale bool) (Quote, bool) {
	get := v.store.Get
	if allowStale {
		get = v.store.GetStale
	}

	entry, err := get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheExpired) {
			v.logger.Debug().Err(err).Msg("price cache read failed")
		}
		return Quote{}, false
	}

	var q Quote
	if err := entry.Decode(&q); err != nil {
		v.logger.Debug().Err(err).Msg("discarding undecodable cached quote")
		return Quote{}, false
	}
	return q, true
}

func (v *Valuer) remember(key string, q Quote) {
	data, err := json.Marshal(q)
	if err == nil {
		err = v.store.Set(key, data)
	}
	if err != nil {
		v.logger.Debug().Err(err).Msg("price cache write failed")
	}
}

// LineItem is one priced quantity.
type LineItem struct {
	Name      string          `json:"name"`
	Commodity string          `json:"commodity"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    decimal.Decimal `json:"amount"`
	Stale     bool            `json:"stale,omitempty"`
}

// Valuation is the market value of a record's recoverable materials.
type Valuation struct {
	Market   string     `json:"market"`
	Currency string     `json:"currency"`
	Items    []LineItem `json:"items"`
	// RecoverableValue sums the material line items.
	RecoverableValue decimal.Decimal `json:"recoverable_value"`
	// CarbonCost prices the result's GWP; zero when no result is given.
	CarbonCost decimal.Decimal `json:"carbon_cost"`
	// NetValue is RecoverableValue minus CarbonCost.
	NetValue decimal.Decimal `json:"net_value"`
	// Stale is set when any quote came from an expired cache entry.
	Stale bool `json:"stale,omitempty"`
}

type pricedQuantity struct {
	name      string
	commodity string
	quantity  float64
}

// Value prices the recoverable quantities of rec on market: recyclable
// by-products, by-product reuse and ore metal content. When res is not
// nil its GWP is priced as CarbonCost. Zero quantities are skipped.
func (v *Valuer) Value(ctx context.Context, res *lca.Result, rec inventory.Record, market string) (*Valuation, error) {
	if market == "" {
		market = DefaultMarket
	}

	wanted := []pricedQuantity{
		{"recyclable_byproducts", CommodityByproducts, rec.RecyclableByproducts},
		{"byproduct_reuse", CommodityReuse, rec.ByproductReuse},
		{"metal_content", v.metal, rec.OreMined * rec.OreGrade / 100},
	}
	if res != nil {
		wanted = append(wanted, pricedQuantity{"carbon", CommodityCarbon, res.Climate.GlobalWarmingPotential})
	}

	items := make([]LineItem, len(wanted))
	g, gCtx := errgroup.WithContext(ctx)
	for i, w := range wanted {
		if w.quantity <= 0 {
			continue
		}
		g.Go(func() error {
			q, err := v.Quote(gCtx, w.commodity, market)
			if err != nil {
				return err
			}
			qty := decimal.NewFromFloat(w.quantity)
			items[i] = LineItem{
				Name:      w.name,
				Commodity: w.commodity,
				Quantity:  qty,
				Unit:      q.Unit,
				UnitPrice: q.Price,
				Amount:    qty.Mul(q.Price).Round(moneyPlaces),
				Stale:     q.Stale,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Valuation{Market: market, Currency: DefaultCurrency}
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		out.Stale = out.Stale || item.Stale
		if item.Commodity == CommodityCarbon {
			out.CarbonCost = item.Amount
		} else {
			out.RecoverableValue = out.RecoverableValue.Add(item.Amount)
		}
		out.Items = append(out.Items, item)
	}
	out.NetValue = out.RecoverableValue.Sub(out.CarbonCost)

	v.logger.Debug().
		Str("market", market).
		Str("recoverable_value", out.RecoverableValue.StringFixed(moneyPlaces)).
		Bool("stale", out.Stale).
		Msg("valuation complete")
	return out, nil
}
