package catalog

import (
	"strconv"
	"sync"
	"time"

	"catalog-service/internal/models"
)

// EntityKind names a cached entity type.
type EntityKind string

const (
	KindItems       EntityKind = "items"
	KindCategories  EntityKind = "categories"
	KindPromotion   EntityKind = "promotion"
	KindItemDetails EntityKind = "item_details"
)

// AllKinds lists every cached entity type.
var AllKinds = []EntityKind{KindItems, KindCategories, KindPromotion, KindItemDetails}

type detailEntry struct {
	item      models.CatalogItem
	fetchedAt time.Time
}

// EntityCache holds time-bounded snapshots of catalog data per entity type
// plus a per-key cache of hydrated item details. It is constructed once at
// application start and passed by reference to consumers; tests build fresh
// instances.
//
// Callers receive the stored snapshots as read-only views; all replacement
// happens wholesale per entity type.
type EntityCache struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	items          []models.CatalogItem
	itemsFetchedAt time.Time

	categories          []models.Category
	categoriesFetchedAt time.Time

	promotion          *models.PromotionConfig
	promotionFetched   bool
	promotionFetchedAt time.Time

	details map[string]detailEntry
}

// NewEntityCache creates an empty cache whose snapshots stay fresh for ttl.
func NewEntityCache(ttl time.Duration) *EntityCache {
	return &EntityCache{
		ttl:     ttl,
		now:     time.Now,
		details: make(map[string]detailEntry),
	}
}

// TTL returns the snapshot freshness window.
func (c *EntityCache) TTL() time.Duration {
	return c.ttl
}

func (c *EntityCache) fresh(fetchedAt time.Time) bool {
	return !fetchedAt.IsZero() && c.now().Sub(fetchedAt) < c.ttl
}

// Items returns the cached catalog snapshot and whether it is still fresh.
func (c *EntityCache) Items() ([]models.CatalogItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil || !c.fresh(c.itemsFetchedAt) {
		return nil, false
	}
	return c.items, true
}

// SetItems replaces the catalog snapshot with the current timestamp.
func (c *EntityCache) SetItems(items []models.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.itemsFetchedAt = c.now()
}

// Categories returns the cached category snapshot and whether it is fresh.
func (c *EntityCache) Categories() ([]models.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.categories == nil || !c.fresh(c.categoriesFetchedAt) {
		return nil, false
	}
	return c.categories, true
}

// SetCategories replaces the category snapshot with the current timestamp.
func (c *EntityCache) SetCategories(categories []models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = categories
	c.categoriesFetchedAt = c.now()
}

// Promotion returns the cached promotion config and whether it is fresh.
// A nil config with ok true means no authoritative promotion exists.
func (c *EntityCache) Promotion() (*models.PromotionConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.promotionFetched || !c.fresh(c.promotionFetchedAt) {
		return nil, false
	}
	return c.promotion, true
}

// SetPromotion stores the promotion config; nil records that none exists.
func (c *EntityCache) SetPromotion(cfg *models.PromotionConfig) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.promotion = cfg
	c.promotionFetched = true
	c.promotionFetchedAt = c.now()
}

// Detail returns a hydrated item by id or slug and whether it is fresh.
func (c *EntityCache) Detail(key string) (models.CatalogItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.details[key]
	if !ok || !c.fresh(entry.fetchedAt) {
		return models.CatalogItem{}, false
	}
	return entry.item, true
}

// SetDetail stores a hydrated item under both its id and its slug, so a
// later lookup by either form resolves without a fetch.
func (c *EntityCache) SetDetail(item models.CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := detailEntry{item: item, fetchedAt: c.now()}
	c.details[strconv.FormatInt(item.ID, 10)] = entry
	if item.Slug != "" {
		c.details[item.Slug] = entry
	}
}

// Invalidate clears the given entity types, or every type when none are
// given. The detail cache always clears all keys at once.
func (c *EntityCache) Invalidate(kinds ...EntityKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(kinds) == 0 {
		kinds = AllKinds
	}
	for _, kind := range kinds {
		switch kind {
		case KindItems:
			c.items = nil
			c.itemsFetchedAt = time.Time{}
		case KindCategories:
			c.categories = nil
			c.categoriesFetchedAt = time.Time{}
		case KindPromotion:
			c.promotion = nil
			c.promotionFetched = false
			c.promotionFetchedAt = time.Time{}
		case KindItemDetails:
			c.details = make(map[string]detailEntry)
		}
	}
}

// SetClock overrides the cache's time source for tests.
func (c *EntityCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
