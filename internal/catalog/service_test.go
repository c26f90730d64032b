package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"catalog-service/internal/gateway"
	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingGateway wraps the in-memory gateway with call counters and
// injectable failures per collection.
type countingGateway struct {
	*gateway.Memory
	mu            sync.Mutex
	listCalls     map[string]int
	snapshotLists map[string]int // full-collection (nil filter) reads
	getCalls      map[string]int
	failList      map[string]error
}

func newCountingGateway() *countingGateway {
	return &countingGateway{
		Memory:        gateway.NewMemory(),
		listCalls:     make(map[string]int),
		snapshotLists: make(map[string]int),
		getCalls:      make(map[string]int),
		failList:      make(map[string]error),
	}
}

func (g *countingGateway) List(ctx context.Context, collection string, filter gateway.Filter) ([]gateway.Record, error) {
	g.mu.Lock()
	g.listCalls[collection]++
	if filter == nil {
		g.snapshotLists[collection]++
	}
	failure := g.failList[collection]
	g.mu.Unlock()
	if failure != nil {
		return nil, models.NewFetchError(collection, failure)
	}
	return g.Memory.List(ctx, collection, filter)
}

func (g *countingGateway) GetOne(ctx context.Context, collection string, key string) (gateway.Record, error) {
	g.mu.Lock()
	g.getCalls[collection]++
	g.mu.Unlock()
	return g.Memory.GetOne(ctx, collection, key)
}

func (g *countingGateway) listCount(collection string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.listCalls[collection]
}

func (g *countingGateway) snapshotCount(collection string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLists[collection]
}

func (g *countingGateway) getCount(collection string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.getCalls[collection]
}

type recordingSink struct {
	mu        sync.Mutex
	created   []*models.ItemCreatedEvent
	updated   []*models.ItemUpdatedEvent
	deleted   []*models.ItemDeletedEvent
	promotion []*models.PromotionUpdatedEvent
}

func (r *recordingSink) PublishItemCreated(ctx context.Context, event *models.ItemCreatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, event)
	return nil
}

func (r *recordingSink) PublishItemUpdated(ctx context.Context, event *models.ItemUpdatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, event)
	return nil
}

func (r *recordingSink) PublishItemDeleted(ctx context.Context, event *models.ItemDeletedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, event)
	return nil
}

func (r *recordingSink) PublishPromotionUpdated(ctx context.Context, event *models.PromotionUpdatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promotion = append(r.promotion, event)
	return nil
}

func seedCatalog(gw *countingGateway) {
	now := time.Now()
	gw.Seed(gateway.CollectionItems,
		gateway.Record{"id": int64(1), "slug": "steam-gift-card", "name": "Steam Gift Card", "featured": true, "delivery_method": "email", "created_at": now.Add(-time.Hour)},
		gateway.Record{"id": int64(2), "slug": "netflix-gift-card", "name": "Netflix Gift Card", "featured": false, "delivery_method": "email", "created_at": now},
	)
	gw.Seed(gateway.CollectionPlans,
		gateway.Record{"id": int64(1), "item_id": int64(1), "name": "$50", "price": 50.0, "currency": "USD"},
		gateway.Record{"id": int64(2), "item_id": int64(1), "name": "$100", "price": 100.0, "currency": "USD"},
		gateway.Record{"id": int64(3), "item_id": int64(2), "name": "€25", "price": 25.0, "currency": "EUR"},
	)
	gw.Seed(gateway.CollectionItemCategories,
		gateway.Record{"id": int64(1), "item_id": int64(1), "category_id": int64(1)},
		gateway.Record{"id": int64(2), "item_id": int64(2), "category_id": int64(2)},
	)
	gw.Seed(gateway.CollectionCategories,
		gateway.Record{"id": int64(1), "slug": "gaming", "name": "Gaming"},
		gateway.Record{"id": int64(2), "slug": "streaming", "name": "Streaming"},
	)
}

func newTestService(gw gateway.Gateway, sink EventSink) *Service {
	return NewService(gw, NewEntityCache(5*time.Minute), nil, sink, 8*time.Second)
}

func TestGetCatalogHydratesItems(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	items, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	steam := items[0]
	assert.Equal(t, "steam-gift-card", steam.Slug)
	assert.Equal(t, []int64{1}, steam.CategoryIDs)
	require.Len(t, steam.Plans, 2)
	assert.Equal(t, 50.0, steam.Plans[0].Price)
	assert.False(t, steam.Plans[0].HasDiscount)
	assert.Equal(t, 50.0, steam.MinPlanPrice())
}

func TestGetCatalogSingleFetchWithinTTL(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	_, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)
	_, err = svc.GetCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, gw.snapshotCount(gateway.CollectionItems), "second read served from cache")
	assert.Equal(t, 1, gw.listCount(gateway.CollectionPromotions))
}

func TestInvalidateForcesRefetch(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	_, err := svc.GetCatalog(ctx)
	require.NoError(t, err)

	svc.Invalidate(ctx, KindItems)

	_, err = svc.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.snapshotCount(gateway.CollectionItems))
}

func TestGetCatalogFailsWhenHydrationFails(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	gw.failList[gateway.CollectionPlans] = errors.New("plans unavailable")
	svc := newTestService(gw, nil)

	items, err := svc.GetCatalog(context.Background())

	assert.Error(t, err, "a partially hydrated catalog is worse than no catalog")
	assert.Nil(t, items)
	assert.True(t, models.IsFetchError(err))
}

func TestPromotionPricingThroughCatalog(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	gw.Seed(gateway.CollectionPromotions,
		gateway.Record{"id": int64(1), "discount_percentage": 20.0, "is_active": true, "applies_to_all": true},
	)
	svc := newTestService(gw, nil)

	items, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)

	steam := items[0]
	require.Len(t, steam.Plans, 2)
	assert.Equal(t, 40.0, steam.Plans[0].Price)
	assert.Equal(t, 50.0, steam.Plans[0].OriginalPrice)
	assert.True(t, steam.Plans[0].HasDiscount)
	assert.Equal(t, 80.0, steam.Plans[1].Price)
}

func TestGetItemDetailCachesUnderBothKeys(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	bySlug, err := svc.GetItemDetail(ctx, "netflix-gift-card")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bySlug.ID)

	byID, err := svc.GetItemDetail(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, bySlug.Slug, byID.Slug)

	assert.Equal(t, 1, gw.getCount(gateway.CollectionItems), "id lookup resolved from the slug fetch")
}

func TestGetItemDetailNotFound(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	_, err := svc.GetItemDetail(context.Background(), "no-such-card")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetCategoryCounts(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	counts, err := svc.GetCategoryCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[1])
	assert.Equal(t, 1, counts[2])
}

func TestCreateItemRejectsInvalidRequests(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	cases := map[string]*CreateItemRequest{
		"no plans": {Name: "Spotify Gift Card"},
		"bad currency": {Name: "Spotify Gift Card", Plans: []PlanRequest{
			{Name: "Monthly", Price: 10, Currency: "JPY"},
		}},
		"zero price": {Name: "Spotify Gift Card", Plans: []PlanRequest{
			{Name: "Monthly", Price: 0, Currency: "USD"},
		}},
	}

	for name, req := range cases {
		_, err := svc.CreateItem(ctx, req)
		assert.True(t, models.IsValidationError(err), name)
	}

	recs, err := gw.Memory.List(ctx, gateway.CollectionItems, nil)
	require.NoError(t, err)
	assert.Len(t, recs, 2, "rejected writes must not persist anything")
}

func TestCreateItemRejectsDuplicateSlug(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	_, err := svc.CreateItem(context.Background(), &CreateItemRequest{
		Name:  "Steam Gift Card",
		Plans: []PlanRequest{{Name: "$20", Price: 20, Currency: "USD"}},
	})
	assert.True(t, models.IsValidationError(err))
}

func TestCreateItemRejectsDuplicateNumericSlug(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	// A fully numeric name derives a numeric slug, which must still be
	// checked against the slug column rather than item ids.
	_, err := svc.CreateItem(ctx, &CreateItemRequest{
		Name:  "2026",
		Plans: []PlanRequest{{Name: "$10", Price: 10, Currency: "USD"}},
	})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, &CreateItemRequest{
		Name:  "2026",
		Plans: []PlanRequest{{Name: "$20", Price: 20, Currency: "USD"}},
	})
	assert.True(t, models.IsValidationError(err))
}

func TestCreateItemInvalidatesCatalogCache(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	_, err := svc.GetCatalog(ctx)
	require.NoError(t, err)

	created, err := svc.CreateItem(ctx, &CreateItemRequest{
		Name:        "PlayStation Gift Card",
		CategoryIDs: []int64{1},
		Plans:       []PlanRequest{{Name: "$30", Price: 30, Currency: "USD"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "playstation-gift-card", created.Slug)
	require.Len(t, created.Plans, 1)
	assert.Equal(t, 30.0, created.Plans[0].Price)

	items, err := svc.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, 2, gw.snapshotCount(gateway.CollectionItems), "write drops the snapshot")
}

func TestUpdateItemRenameRegeneratesSlug(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	name := "Hulu Gift Card"
	updated, err := svc.UpdateItem(ctx, 2, &UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "hulu-gift-card", updated.Slug)

	detail, err := svc.GetItemDetail(ctx, "hulu-gift-card")
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ID)
}

func TestUpdateItemRejectsRenameOntoExistingSlug(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	// Item 1 already owns steam-gift-card.
	name := "Steam Gift Card"
	_, err := svc.UpdateItem(ctx, 2, &UpdateItemRequest{Name: &name})
	assert.True(t, models.IsValidationError(err))

	rec, err := gw.Memory.GetOne(ctx, gateway.CollectionItems, "2")
	require.NoError(t, err)
	assert.Equal(t, "netflix-gift-card", rec["slug"], "rejected rename leaves the slug alone")
}

func TestUpdateItemRenameToOwnNameKeepsSlug(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	name := "Steam Gift Card"
	updated, err := svc.UpdateItem(context.Background(), 1, &UpdateItemRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "steam-gift-card", updated.Slug, "an item may keep its own slug")
}

func TestUpdateItemReplacesPlansWholesale(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	plans := []PlanRequest{{Name: "$25", Price: 25, Currency: "USD"}}
	updated, err := svc.UpdateItem(ctx, 1, &UpdateItemRequest{Plans: &plans})
	require.NoError(t, err)
	require.Len(t, updated.Plans, 1)
	assert.Equal(t, 25.0, updated.Plans[0].Price)

	recs, err := gw.Memory.List(ctx, gateway.CollectionPlans, gateway.Filter{"item_id": int64(1)})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestUpdateItemNotFound(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	_, err := svc.UpdateItem(context.Background(), 99, &UpdateItemRequest{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteItemRemovesPlansAndRelations(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	require.NoError(t, svc.DeleteItem(ctx, 1))

	plans, err := gw.Memory.List(ctx, gateway.CollectionPlans, gateway.Filter{"item_id": int64(1)})
	require.NoError(t, err)
	assert.Empty(t, plans)

	rels, err := gw.Memory.List(ctx, gateway.CollectionItemCategories, gateway.Filter{"item_id": int64(1)})
	require.NoError(t, err)
	assert.Empty(t, rels)

	items, err := svc.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDeleteItemNotFound(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	sink := &recordingSink{}
	svc := newTestService(gw, sink)
	ctx := context.Background()

	_, err := svc.GetCatalog(ctx)
	require.NoError(t, err)

	err = svc.DeleteItem(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, sink.deleted, "no event for a delete that removed nothing")

	_, err = svc.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, gw.snapshotCount(gateway.CollectionItems), "failed delete keeps the snapshot")
}

func TestSetPromotionValidatesRange(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)

	_, err := svc.SetPromotion(context.Background(), &SetPromotionRequest{DiscountPercentage: 150, IsActive: true})
	assert.True(t, models.IsValidationError(err))
}

func TestSetPromotionUpsertsSingleConfig(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	cfg, err := svc.SetPromotion(ctx, &SetPromotionRequest{DiscountPercentage: 20, IsActive: true})
	require.NoError(t, err)
	assert.True(t, cfg.AppliesToAll)

	items, err := svc.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 40.0, items[0].Plans[0].Price)

	_, err = svc.SetPromotion(ctx, &SetPromotionRequest{DiscountPercentage: 0, IsActive: false})
	require.NoError(t, err)

	recs, err := gw.Memory.List(ctx, gateway.CollectionPromotions, nil)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "promotion config is a singleton")

	items, err = svc.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50.0, items[0].Plans[0].Price, "disabling the promotion restores base prices")
}

func TestWritesPublishEventsWithOrigin(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	sink := &recordingSink{}
	svc := newTestService(gw, sink)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, &CreateItemRequest{
		Name:  "Xbox Gift Card",
		Plans: []PlanRequest{{Name: "$15", Price: 15, Currency: "USD"}},
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteItem(ctx, created.ID))
	_, err = svc.SetPromotion(ctx, &SetPromotionRequest{DiscountPercentage: 10, IsActive: true})
	require.NoError(t, err)

	require.Len(t, sink.created, 1)
	assert.Equal(t, created.ID, sink.created[0].ItemID)
	assert.Equal(t, models.EventTypeItemCreated, sink.created[0].EventType)
	assert.Equal(t, svc.InstanceID(), sink.created[0].Origin)

	require.Len(t, sink.deleted, 1)
	require.Len(t, sink.promotion, 1)
	assert.Equal(t, 10.0, sink.promotion[0].DiscountPercentage)
}

func TestApplyRemoteEventInvalidates(t *testing.T) {
	gw := newCountingGateway()
	seedCatalog(gw)
	svc := newTestService(gw, nil)
	ctx := context.Background()

	_, err := svc.GetCatalog(ctx)
	require.NoError(t, err)

	svc.ApplyRemoteEvent(ctx, models.EventTypePromotionUpdated)

	_, err = svc.GetCatalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.snapshotCount(gateway.CollectionItems))
	assert.Equal(t, 2, gw.listCount(gateway.CollectionPromotions), "promotion refetched too")
}
