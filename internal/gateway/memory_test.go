package gateway

import (
	"context"
	"testing"

	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMemory() *Memory {
	m := NewMemory()
	m.Seed(CollectionItems,
		Record{"id": int64(1), "slug": "steam-gift-card", "name": "Steam Gift Card"},
		Record{"id": int64(2), "slug": "netflix-gift-card", "name": "Netflix Gift Card"},
	)
	m.Seed(CollectionPlans,
		Record{"id": int64(1), "item_id": int64(1), "price": 50.0},
		Record{"id": int64(2), "item_id": int64(2), "price": 25.0},
	)
	return m
}

func TestMemoryListFilters(t *testing.T) {
	m := seededMemory()
	ctx := context.Background()

	all, err := m.List(ctx, CollectionPlans, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := m.List(ctx, CollectionPlans, Filter{"item_id": int64(1)})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, 50.0, one[0]["price"])

	none, err := m.List(ctx, CollectionPlans, Filter{"item_id": int64(9)})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryListSliceFilter(t *testing.T) {
	m := seededMemory()

	recs, err := m.List(context.Background(), CollectionItems, Filter{"id": []int64{1, 2, 3}})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestMemoryGetOneByIDOrSlug(t *testing.T) {
	m := seededMemory()
	ctx := context.Background()

	byID, err := m.GetOne(ctx, CollectionItems, "1")
	require.NoError(t, err)
	assert.Equal(t, "steam-gift-card", byID["slug"])

	bySlug, err := m.GetOne(ctx, CollectionItems, "netflix-gift-card")
	require.NoError(t, err)
	assert.Equal(t, int64(2), bySlug["id"])

	_, err = m.GetOne(ctx, CollectionItems, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryInsertAssignsIDsPastSeed(t *testing.T) {
	m := seededMemory()

	rec, err := m.Insert(context.Background(), CollectionItems, Record{"slug": "xbox-gift-card", "name": "Xbox Gift Card"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec["id"], "assigned ids never collide with seeded ones")
	assert.NotNil(t, rec["created_at"])
}

func TestMemoryUpdateAndDelete(t *testing.T) {
	m := seededMemory()
	ctx := context.Background()

	updated, err := m.Update(ctx, CollectionItems, "1", Record{"name": "Steam Wallet Card"})
	require.NoError(t, err)
	assert.Equal(t, "Steam Wallet Card", updated["name"])

	_, err = m.Update(ctx, CollectionItems, "9", Record{"name": "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, m.Delete(ctx, CollectionItems, "1"))
	_, err = m.GetOne(ctx, CollectionItems, "1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryCancelledContext(t *testing.T) {
	m := seededMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.List(ctx, CollectionItems, nil)
	assert.True(t, models.IsFetchError(err))
}
