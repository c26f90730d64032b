package currency

import (
	"context"
	"sync"
	"testing"
	"time"

	"catalog-service/internal/gateway"
	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateGateway struct {
	*gateway.Memory
	mu        sync.Mutex
	listCalls int
}

func newRateGateway() *rateGateway {
	g := &rateGateway{Memory: gateway.NewMemory()}
	g.Seed(gateway.CollectionExchangeRates,
		gateway.Record{"id": int64(1), "currency": "EUR", "rate": 1000.0},
		gateway.Record{"id": int64(2), "currency": "TRY", "rate": 0.031},
	)
	return g
}

func (g *rateGateway) List(ctx context.Context, collection string, filter gateway.Filter) ([]gateway.Record, error) {
	g.mu.Lock()
	g.listCalls++
	g.mu.Unlock()
	return g.Memory.List(ctx, collection, filter)
}

func (g *rateGateway) listCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listCalls
}

func newTestConverter(gw gateway.Gateway) *Converter {
	return NewConverter(gw, nil, models.CurrencyUSD, 5*time.Minute, 8*time.Second)
}

func TestToBaseCurrencyIdentity(t *testing.T) {
	gw := newRateGateway()
	c := newTestConverter(gw)

	got, err := c.ToBaseCurrency(context.Background(), 42.5, models.CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)
	assert.Equal(t, 0, gw.listCount(), "base currency needs no rate table")
}

func TestToBaseCurrencyConverts(t *testing.T) {
	gw := newRateGateway()
	c := newTestConverter(gw)

	got, err := c.ToBaseCurrency(context.Background(), 10, models.CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, got)
}

func TestToBaseCurrencyMissingRate(t *testing.T) {
	gw := newRateGateway()
	c := newTestConverter(gw)

	_, err := c.ToBaseCurrency(context.Background(), 10, models.CurrencyGBP)
	assert.ErrorIs(t, err, models.ErrConversionUnavailable)
}

func TestRateTableCachedWithinTTL(t *testing.T) {
	gw := newRateGateway()
	c := newTestConverter(gw)
	now := time.Now()
	c.SetClock(func() time.Time { return now })
	ctx := context.Background()

	_, err := c.ToBaseCurrency(ctx, 10, models.CurrencyEUR)
	require.NoError(t, err)
	_, err = c.ToBaseCurrency(ctx, 20, models.CurrencyTRY)
	require.NoError(t, err)
	assert.Equal(t, 1, gw.listCount(), "second conversion served from cache")

	now = now.Add(6 * time.Minute)
	_, err = c.ToBaseCurrency(ctx, 10, models.CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.listCount(), "stale table refetched")
}

func TestInvalidateDropsRateTable(t *testing.T) {
	gw := newRateGateway()
	c := newTestConverter(gw)
	ctx := context.Background()

	_, err := c.ToBaseCurrency(ctx, 10, models.CurrencyEUR)
	require.NoError(t, err)

	c.Invalidate(ctx)

	_, err = c.ToBaseCurrency(ctx, 10, models.CurrencyEUR)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.listCount())
}

func TestItemBasePriceUsesCheapestPlan(t *testing.T) {
	gw := newRateGateway()
	c := newTestConverter(gw)

	item := &models.CatalogItem{
		ID: 1,
		Plans: []models.DisplayPlan{
			{RawPlan: models.RawPlan{Price: 50, Currency: models.CurrencyUSD}, OriginalPrice: 50},
			{RawPlan: models.RawPlan{Price: 25, Currency: models.CurrencyEUR}, OriginalPrice: 25},
		},
	}

	got, err := c.ItemBasePrice(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, 25000.0, got)
}

func TestItemBasePriceWithoutPlans(t *testing.T) {
	gw := newRateGateway()
	c := newTestConverter(gw)

	_, err := c.ItemBasePrice(context.Background(), &models.CatalogItem{ID: 1})
	assert.ErrorIs(t, err, models.ErrConversionUnavailable)
}
