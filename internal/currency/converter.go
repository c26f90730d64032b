package currency

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog-service/internal/gateway"
	"catalog-service/internal/models"
	"catalog-service/internal/pricing"
	"catalog-service/internal/redisclient"
	"catalog-service/internal/util"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

const ratesSnapshotKind = "exchange_rates"

// Converter resolves plan prices into the store's base currency. It keeps
// its own exchange-rate cache with an independent TTL: rates are asked for
// once per rendered item, far more often than catalog lists.
type Converter struct {
	gw           gateway.Gateway
	redis        *redisclient.Client
	base         string
	ttl          time.Duration
	fetchTimeout time.Duration
	logger       *zap.Logger
	now          func() time.Time

	mu        sync.Mutex
	rates     map[string]models.ExchangeRate
	fetchedAt time.Time
}

// NewConverter creates a converter caching rates for ttl. redis may be nil
// when no second-level tier is configured.
func NewConverter(gw gateway.Gateway, redis *redisclient.Client, base string, ttl, fetchTimeout time.Duration) *Converter {
	return &Converter{
		gw:           gw,
		redis:        redis,
		base:         base,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		logger:       util.GetLogger(),
		now:          time.Now,
	}
}

// BaseCurrency returns the store's base currency code.
func (c *Converter) BaseCurrency() string {
	return c.base
}

// ToBaseCurrency converts an amount in the given currency to the base
// currency. A missing rate yields ErrConversionUnavailable, never a
// fabricated value.
func (c *Converter) ToBaseCurrency(ctx context.Context, amount float64, code string) (float64, error) {
	if code == c.base {
		return amount, nil
	}

	table, err := c.table(ctx)
	if err != nil {
		return 0, err
	}

	rate, ok := table[code]
	if !ok {
		util.ConversionsUnavailableTotal.WithLabelValues(code).Inc()
		return 0, fmt.Errorf("%w: %s", models.ErrConversionUnavailable, code)
	}

	return pricing.Round2(amount * rate.Rate), nil
}

// ItemBasePrice converts the item's minimum plan price, the representative
// price for list views.
func (c *Converter) ItemBasePrice(ctx context.Context, item *models.CatalogItem) (float64, error) {
	plan := item.MinPlan()
	if plan == nil {
		return 0, fmt.Errorf("%w: item %d has no plans", models.ErrConversionUnavailable, item.ID)
	}
	return c.ToBaseCurrency(ctx, plan.Price, plan.Currency)
}

// Invalidate drops the cached rate table in both tiers.
func (c *Converter) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.rates = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()

	if c.redis != nil {
		if err := c.redis.DeleteSnapshots(ctx, ratesSnapshotKind); err != nil {
			c.logger.Warn("Failed to drop redis rate snapshot", zap.Error(err))
		}
	}
}

// table returns the cached rate map, refreshing it when stale. The lock is
// held across the refresh so concurrent renderers trigger one fetch.
func (c *Converter) table(ctx context.Context) (map[string]models.ExchangeRate, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rates != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		util.CacheHitsTotal.WithLabelValues("exchange_rates").Inc()
		return c.rates, nil
	}
	util.CacheMissesTotal.WithLabelValues("exchange_rates").Inc()

	if c.redis != nil {
		var cached []models.ExchangeRate
		if ok, err := c.redis.GetSnapshot(ctx, ratesSnapshotKind, &cached); err != nil {
			c.logger.Warn("Redis rate snapshot read failed", zap.Error(err))
		} else if ok {
			c.store(cached)
			return c.rates, nil
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	recs, err := c.gw.List(fetchCtx, gateway.CollectionExchangeRates, nil)
	if err != nil {
		return nil, err
	}

	rates := make([]models.ExchangeRate, 0, len(recs))
	for _, rec := range recs {
		rates = append(rates, models.ExchangeRate{
			Currency:  cast.ToString(rec["currency"]),
			Rate:      cast.ToFloat64(rec["rate"]),
			UpdatedAt: cast.ToTime(rec["updated_at"]),
		})
	}
	c.store(rates)

	if c.redis != nil {
		if err := c.redis.SetSnapshot(ctx, ratesSnapshotKind, rates, c.ttl); err != nil {
			c.logger.Warn("Failed to write redis rate snapshot", zap.Error(err))
		}
	}

	return c.rates, nil
}

// SetClock overrides the converter's time source for tests.
func (c *Converter) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Converter) store(rates []models.ExchangeRate) {
	table := make(map[string]models.ExchangeRate, len(rates))
	for _, r := range rates {
		table[r.Currency] = r
	}
	c.rates = table
	c.fetchedAt = c.now()
}
