package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"catalog-service/internal/gateway"
	"catalog-service/internal/models"
	"catalog-service/internal/pricing"
	"catalog-service/internal/redisclient"
	"catalog-service/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/spf13/cast"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const itemsSnapshotKind = "items"

// hydrateConcurrency bounds parallel per-item gateway reads.
const hydrateConcurrency = 8

// EventSink publishes catalog write events. The kafka publisher implements
// it; tests pass nil or a recorder.
type EventSink interface {
	PublishItemCreated(ctx context.Context, event *models.ItemCreatedEvent) error
	PublishItemUpdated(ctx context.Context, event *models.ItemUpdatedEvent) error
	PublishItemDeleted(ctx context.Context, event *models.ItemDeletedEvent) error
	PublishPromotionUpdated(ctx context.Context, event *models.PromotionUpdatedEvent) error
}

// Service is the UI-facing catalog API: cached reads, derived views, and
// writes with cache invalidation as their final side effect.
type Service struct {
	gw           gateway.Gateway
	cache        *EntityCache
	redis        *redisclient.Client
	events       EventSink
	validate     *validator.Validate
	logger       *zap.Logger
	fetchTimeout time.Duration
	instanceID   string
}

// NewService creates a catalog service. redis and events may be nil when
// the second-level cache or the event bus is not configured.
func NewService(
	gw gateway.Gateway,
	cache *EntityCache,
	redis *redisclient.Client,
	events EventSink,
	fetchTimeout time.Duration,
) *Service {
	return &Service{
		gw:           gw,
		cache:        cache,
		redis:        redis,
		events:       events,
		validate:     validator.New(),
		logger:       util.GetLogger(),
		fetchTimeout: fetchTimeout,
		instanceID:   uuid.New().String(),
	}
}

// InstanceID identifies this process as the origin of published events.
func (s *Service) InstanceID() string {
	return s.instanceID
}

// GetCatalog returns the hydrated, promotion-priced catalog snapshot,
// fetching through the gateway only when the cache is stale.
func (s *Service) GetCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetCatalog")
	defer span.End()

	if items, ok := s.cache.Items(); ok {
		util.CacheHitsTotal.WithLabelValues(string(KindItems)).Inc()
		return items, nil
	}
	util.CacheMissesTotal.WithLabelValues(string(KindItems)).Inc()

	if s.redis != nil {
		var cached []models.CatalogItem
		if ok, err := s.redis.GetSnapshot(ctx, itemsSnapshotKind, &cached); err != nil {
			s.logger.Warn("Redis catalog snapshot read failed", zap.Error(err))
		} else if ok {
			s.cache.SetItems(cached)
			return cached, nil
		}
	}

	items, err := s.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetItems(items)
	if s.redis != nil {
		if err := s.redis.SetSnapshot(ctx, itemsSnapshotKind, items, s.cache.TTL()); err != nil {
			s.logger.Warn("Failed to write redis catalog snapshot", zap.Error(err))
		}
	}
	return items, nil
}

// fetchCatalog reads all items and hydrates each with its category
// relations, plans, and the store-wide promotion. A partially hydrated
// catalog would display wrong prices, so any per-item failure fails the
// whole batch.
func (s *Service) fetchCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	promo, err := s.GetPromotion(ctx)
	if err != nil {
		util.HydrationFailuresTotal.WithLabelValues("promotion").Inc()
		return nil, err
	}

	recs, err := s.gw.List(fetchCtx, gateway.CollectionItems, nil)
	if err != nil {
		util.HydrationFailuresTotal.WithLabelValues("items").Inc()
		return nil, err
	}

	items := make([]models.CatalogItem, len(recs))
	g, gctx := errgroup.WithContext(fetchCtx)
	g.SetLimit(hydrateConcurrency)
	for i, rec := range recs {
		i, rec := i, rec
		g.Go(func() error {
			item, err := s.hydrateItem(gctx, rec, promo)
			if err != nil {
				return err
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		util.HydrationFailuresTotal.WithLabelValues("relations").Inc()
		return nil, err
	}

	return items, nil
}

// hydrateItem attaches category relations and priced plans to a raw item
// record. The two dependent reads run in parallel.
func (s *Service) hydrateItem(ctx context.Context, rec gateway.Record, promo *models.PromotionConfig) (models.CatalogItem, error) {
	item := decodeItem(rec)
	itemKey := strconv.FormatInt(item.ID, 10)

	var categoryIDs []int64
	var rawPlans []models.RawPlan

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rels, err := s.gw.List(gctx, gateway.CollectionItemCategories, gateway.Filter{"item_id": item.ID})
		if err != nil {
			return fmt.Errorf("hydrating item %s: %w", itemKey, err)
		}
		for _, rel := range rels {
			categoryIDs = append(categoryIDs, decodeRelationCategoryID(rel))
		}
		return nil
	})
	g.Go(func() error {
		recs, err := s.gw.List(gctx, gateway.CollectionPlans, gateway.Filter{"item_id": item.ID})
		if err != nil {
			return fmt.Errorf("hydrating item %s: %w", itemKey, err)
		}
		for _, planRec := range recs {
			rawPlans = append(rawPlans, decodeRawPlan(planRec))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.CatalogItem{}, err
	}

	item.CategoryIDs = categoryIDs
	item.Plans = pricing.ApplyPromotion(rawPlans, promo)
	return item, nil
}

// GetCategories returns the category snapshot.
func (s *Service) GetCategories(ctx context.Context) ([]models.Category, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetCategories")
	defer span.End()

	if cats, ok := s.cache.Categories(); ok {
		util.CacheHitsTotal.WithLabelValues(string(KindCategories)).Inc()
		return cats, nil
	}
	util.CacheMissesTotal.WithLabelValues(string(KindCategories)).Inc()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	recs, err := s.gw.List(fetchCtx, gateway.CollectionCategories, nil)
	if err != nil {
		return nil, err
	}

	cats := make([]models.Category, 0, len(recs))
	for _, rec := range recs {
		cats = append(cats, decodeCategory(rec))
	}

	s.cache.SetCategories(cats)
	return cats, nil
}

// GetCategoryCounts returns the item count per known category.
func (s *Service) GetCategoryCounts(ctx context.Context) (map[int64]int, error) {
	items, err := s.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}
	cats, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	return CountByCategory(items, cats), nil
}

// GetPromotion returns the authoritative store-wide promotion config, nil
// when none exists.
func (s *Service) GetPromotion(ctx context.Context) (*models.PromotionConfig, error) {
	if cfg, ok := s.cache.Promotion(); ok {
		util.CacheHitsTotal.WithLabelValues(string(KindPromotion)).Inc()
		return cfg, nil
	}
	util.CacheMissesTotal.WithLabelValues(string(KindPromotion)).Inc()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	recs, err := s.gw.List(fetchCtx, gateway.CollectionPromotions, gateway.Filter{"applies_to_all": true})
	if err != nil {
		return nil, err
	}

	var cfg *models.PromotionConfig
	if len(recs) > 0 {
		decoded := decodePromotion(recs[0])
		cfg = &decoded
	}

	s.cache.SetPromotion(cfg)
	return cfg, nil
}

// GetItemDetail returns one hydrated item by id or slug. A missing item is
// models.ErrNotFound, a normal outcome.
func (s *Service) GetItemDetail(ctx context.Context, key string) (*models.CatalogItem, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetItemDetail",
		attribute.String("item.key", key))
	defer span.End()

	if item, ok := s.cache.Detail(key); ok {
		util.CacheHitsTotal.WithLabelValues(string(KindItemDetails)).Inc()
		return &item, nil
	}
	util.CacheMissesTotal.WithLabelValues(string(KindItemDetails)).Inc()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	rec, err := s.gw.GetOne(fetchCtx, gateway.CollectionItems, key)
	if err != nil {
		return nil, err
	}

	promo, err := s.GetPromotion(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.hydrateItem(fetchCtx, rec, promo)
	if err != nil {
		return nil, err
	}

	s.cache.SetDetail(item)
	return &item, nil
}

// PlanRequest carries one plan on an item write.
type PlanRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,oneof=USD EUR GBP TRY"`
	Description string  `json:"description"`
}

// CreateItemRequest creates a catalog item with at least one plan.
type CreateItemRequest struct {
	Name           string        `json:"name" validate:"required,min=2"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"image_url" validate:"omitempty,url"`
	Featured       bool          `json:"featured"`
	DeliveryMethod string        `json:"delivery_method"`
	CategoryIDs    []int64       `json:"category_ids"`
	Plans          []PlanRequest `json:"plans" validate:"required,min=1,dive"`
}

// UpdateItemRequest patches a catalog item. Nil fields are left unchanged;
// Plans and CategoryIDs replace the full set when present.
type UpdateItemRequest struct {
	Name           *string        `json:"name" validate:"omitempty,min=2"`
	Description    *string        `json:"description"`
	ImageURL       *string        `json:"image_url" validate:"omitempty,url"`
	Featured       *bool          `json:"featured"`
	DeliveryMethod *string        `json:"delivery_method"`
	CategoryIDs    *[]int64       `json:"category_ids"`
	Plans          *[]PlanRequest `json:"plans" validate:"omitempty,min=1,dive"`
}

// SetPromotionRequest configures the store-wide discount.
type SetPromotionRequest struct {
	DiscountPercentage float64 `json:"discount_percentage" validate:"gte=0,lte=100"`
	IsActive           bool    `json:"is_active"`
}

// CreateItem validates and persists a new item with its plans and category
// relations, then invalidates the item caches regardless of how far the
// secondary writes got.
func (s *Service) CreateItem(ctx context.Context, req *CreateItemRequest) (*models.CatalogItem, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateItem")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		util.ItemWritesFailedTotal.WithLabelValues("validation").Inc()
		return nil, models.NewValidationError("invalid item: %v", err)
	}

	itemSlug := slug.Make(req.Name)
	if taken, err := s.slugTaken(ctx, itemSlug, 0); err != nil {
		return nil, err
	} else if taken {
		util.ItemWritesFailedTotal.WithLabelValues("duplicate_slug").Inc()
		return nil, models.NewValidationError("an item with slug %q already exists", itemSlug)
	}

	// Invalidation must be the write's last side effect even when a
	// relation write fails after the primary record landed.
	defer s.invalidateLocal(ctx, KindItems, KindItemDetails)

	rec, err := s.gw.Insert(ctx, gateway.CollectionItems, gateway.Record{
		"slug":            itemSlug,
		"name":            req.Name,
		"description":     req.Description,
		"image_url":       req.ImageURL,
		"featured":        req.Featured,
		"delivery_method": req.DeliveryMethod,
	})
	if err != nil {
		util.ItemWritesFailedTotal.WithLabelValues("gateway").Inc()
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	item := decodeItem(rec)

	rawPlans, err := s.writePlans(ctx, item.ID, req.Plans)
	if err != nil {
		util.ItemWritesFailedTotal.WithLabelValues("plans").Inc()
		return nil, err
	}
	if err := s.writeRelations(ctx, item.ID, req.CategoryIDs); err != nil {
		util.ItemWritesFailedTotal.WithLabelValues("relations").Inc()
		return nil, err
	}

	promo, err := s.GetPromotion(ctx)
	if err != nil {
		return nil, err
	}
	item.CategoryIDs = req.CategoryIDs
	item.Plans = pricing.ApplyPromotion(rawPlans, promo)

	util.ItemsCreatedTotal.Inc()
	s.logger.Info("Catalog item created",
		zap.Int64("item_id", item.ID),
		zap.String("slug", item.Slug))

	s.publish(ctx, models.EventTypeItemCreated, &item)
	return &item, nil
}

// UpdateItem patches an item. A name change re-derives the slug; plans and
// relations are replaced wholesale when present in the request.
func (s *Service) UpdateItem(ctx context.Context, id int64, req *UpdateItemRequest) (*models.CatalogItem, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdateItem",
		attribute.Int64("item.id", id))
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		util.ItemWritesFailedTotal.WithLabelValues("validation").Inc()
		return nil, models.NewValidationError("invalid item patch: %v", err)
	}

	// A rename re-derives the slug, which must stay unique across items.
	if req.Name != nil {
		newSlug := slug.Make(*req.Name)
		if taken, err := s.slugTaken(ctx, newSlug, id); err != nil {
			return nil, err
		} else if taken {
			util.ItemWritesFailedTotal.WithLabelValues("duplicate_slug").Inc()
			return nil, models.NewValidationError("an item with slug %q already exists", newSlug)
		}
	}

	defer s.invalidateLocal(ctx, KindItems, KindItemDetails)

	patch := gateway.Record{}
	if req.Name != nil {
		patch["name"] = *req.Name
		patch["slug"] = slug.Make(*req.Name)
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.ImageURL != nil {
		patch["image_url"] = *req.ImageURL
	}
	if req.Featured != nil {
		patch["featured"] = *req.Featured
	}
	if req.DeliveryMethod != nil {
		patch["delivery_method"] = *req.DeliveryMethod
	}

	key := strconv.FormatInt(id, 10)
	rec, err := s.gw.GetOne(ctx, gateway.CollectionItems, key)
	if err != nil {
		return nil, err
	}
	if len(patch) > 0 {
		rec, err = s.gw.Update(ctx, gateway.CollectionItems, key, patch)
		if err != nil {
			util.ItemWritesFailedTotal.WithLabelValues("gateway").Inc()
			return nil, fmt.Errorf("failed to update item %d: %w", id, err)
		}
	}

	item := decodeItem(rec)

	if req.Plans != nil {
		if err := s.deleteByFilter(ctx, gateway.CollectionPlans, gateway.Filter{"item_id": id}); err != nil {
			return nil, err
		}
		if _, err := s.writePlans(ctx, id, *req.Plans); err != nil {
			util.ItemWritesFailedTotal.WithLabelValues("plans").Inc()
			return nil, err
		}
	}
	if req.CategoryIDs != nil {
		if err := s.deleteByFilter(ctx, gateway.CollectionItemCategories, gateway.Filter{"item_id": id}); err != nil {
			return nil, err
		}
		if err := s.writeRelations(ctx, id, *req.CategoryIDs); err != nil {
			util.ItemWritesFailedTotal.WithLabelValues("relations").Inc()
			return nil, err
		}
	}

	promo, err := s.GetPromotion(ctx)
	if err != nil {
		return nil, err
	}
	hydrated, err := s.hydrateItem(ctx, gateway.Record{
		"id": item.ID, "slug": item.Slug, "name": item.Name,
		"description": item.Description, "image_url": item.ImageURL,
		"featured": item.Featured, "delivery_method": item.DeliveryMethod,
		"created_at": item.CreatedAt,
	}, promo)
	if err != nil {
		return nil, err
	}

	util.ItemsUpdatedTotal.Inc()
	s.logger.Info("Catalog item updated", zap.Int64("item_id", id))

	s.publish(ctx, models.EventTypeItemUpdated, &hydrated)
	return &hydrated, nil
}

// DeleteItem removes an item with its plans and relations. A missing id is
// models.ErrNotFound; nothing is invalidated or published for it.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	ctx, span := util.StartSpan(ctx, "CatalogService.DeleteItem",
		attribute.Int64("item.id", id))
	defer span.End()

	key := strconv.FormatInt(id, 10)
	if _, err := s.gw.GetOne(ctx, gateway.CollectionItems, key); err != nil {
		return err
	}

	defer s.invalidateLocal(ctx, KindItems, KindItemDetails)

	if err := s.deleteByFilter(ctx, gateway.CollectionItemCategories, gateway.Filter{"item_id": id}); err != nil {
		return err
	}
	if err := s.deleteByFilter(ctx, gateway.CollectionPlans, gateway.Filter{"item_id": id}); err != nil {
		return err
	}
	if err := s.gw.Delete(ctx, gateway.CollectionItems, key); err != nil {
		util.ItemWritesFailedTotal.WithLabelValues("gateway").Inc()
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}

	util.ItemsDeletedTotal.Inc()
	s.logger.Info("Catalog item deleted", zap.Int64("item_id", id))

	if s.events != nil {
		event := &models.ItemDeletedEvent{
			BaseEvent: s.baseEvent(models.EventTypeItemDeleted),
			ItemID:    id,
		}
		if err := s.events.PublishItemDeleted(ctx, event); err != nil {
			s.logger.Error("Failed to publish ItemDeleted event", zap.Error(err))
		}
	}
	return nil
}

// SetPromotion upserts the single authoritative store-wide discount config
// and invalidates all priced snapshots.
func (s *Service) SetPromotion(ctx context.Context, req *SetPromotionRequest) (*models.PromotionConfig, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.SetPromotion")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		return nil, models.NewValidationError("invalid promotion: discount percentage must be between 0 and 100")
	}

	defer s.invalidateLocal(ctx, KindItems, KindItemDetails, KindPromotion)

	existing, err := s.gw.List(ctx, gateway.CollectionPromotions, gateway.Filter{"applies_to_all": true})
	if err != nil {
		return nil, err
	}

	var rec gateway.Record
	if len(existing) > 0 {
		key := strconv.FormatInt(cast.ToInt64(existing[0]["id"]), 10)
		rec, err = s.gw.Update(ctx, gateway.CollectionPromotions, key, gateway.Record{
			"discount_percentage": req.DiscountPercentage,
			"is_active":           req.IsActive,
		})
	} else {
		rec, err = s.gw.Insert(ctx, gateway.CollectionPromotions, gateway.Record{
			"discount_percentage": req.DiscountPercentage,
			"is_active":           req.IsActive,
			"applies_to_all":      true,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store promotion: %w", err)
	}

	cfg := decodePromotion(rec)
	s.logger.Info("Promotion updated",
		zap.Float64("discount_percentage", cfg.DiscountPercentage),
		zap.Bool("is_active", cfg.IsActive))

	if s.events != nil {
		event := &models.PromotionUpdatedEvent{
			BaseEvent:          s.baseEvent(models.EventTypePromotionUpdated),
			DiscountPercentage: cfg.DiscountPercentage,
			IsActive:           cfg.IsActive,
		}
		if err := s.events.PublishPromotionUpdated(ctx, event); err != nil {
			s.logger.Error("Failed to publish PromotionUpdated event", zap.Error(err))
		}
	}
	return &cfg, nil
}

// Invalidate clears the given cached entity types (all when none given) in
// both cache tiers. Exposed for the invalidation worker and admin hooks.
func (s *Service) Invalidate(ctx context.Context, kinds ...EntityKind) {
	s.invalidateLocal(ctx, kinds...)
}

// ApplyRemoteEvent reacts to a catalog write performed by another instance
// by invalidating the caches that write made stale.
func (s *Service) ApplyRemoteEvent(ctx context.Context, eventType string) {
	switch eventType {
	case models.EventTypeItemCreated, models.EventTypeItemUpdated, models.EventTypeItemDeleted:
		s.invalidateLocal(ctx, KindItems, KindItemDetails)
	case models.EventTypePromotionUpdated:
		s.invalidateLocal(ctx, KindItems, KindItemDetails, KindPromotion)
	default:
		s.logger.Debug("Ignoring event type", zap.String("event_type", eventType))
	}
}

func (s *Service) invalidateLocal(ctx context.Context, kinds ...EntityKind) {
	s.cache.Invalidate(kinds...)
	if len(kinds) == 0 {
		kinds = AllKinds
	}
	for _, kind := range kinds {
		util.CacheInvalidationsTotal.WithLabelValues(string(kind)).Inc()
	}
	if s.redis != nil {
		for _, kind := range kinds {
			if kind == KindItems {
				if err := s.redis.DeleteSnapshots(ctx, itemsSnapshotKind); err != nil {
					s.logger.Warn("Failed to drop redis catalog snapshot", zap.Error(err))
				}
			}
		}
	}
}

// slugTaken reports whether an item other than selfID already owns the
// slug. The lookup filters the slug column directly; a GetOne would route a
// numeric-looking slug to the id column instead.
func (s *Service) slugTaken(ctx context.Context, itemSlug string, selfID int64) (bool, error) {
	recs, err := s.gw.List(ctx, gateway.CollectionItems, gateway.Filter{"slug": itemSlug})
	if err != nil {
		return false, err
	}
	for _, rec := range recs {
		if cast.ToInt64(rec["id"]) != selfID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) writePlans(ctx context.Context, itemID int64, plans []PlanRequest) ([]models.RawPlan, error) {
	out := make([]models.RawPlan, 0, len(plans))
	for _, p := range plans {
		rec, err := s.gw.Insert(ctx, gateway.CollectionPlans, gateway.Record{
			"item_id":     itemID,
			"name":        p.Name,
			"price":       p.Price,
			"currency":    p.Currency,
			"description": p.Description,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create plan for item %d: %w", itemID, err)
		}
		out = append(out, decodeRawPlan(rec))
	}
	return out, nil
}

func (s *Service) writeRelations(ctx context.Context, itemID int64, categoryIDs []int64) error {
	for _, catID := range categoryIDs {
		if _, err := s.gw.Insert(ctx, gateway.CollectionItemCategories, gateway.Record{
			"item_id":     itemID,
			"category_id": catID,
		}); err != nil {
			return fmt.Errorf("failed to relate item %d to category %d: %w", itemID, catID, err)
		}
	}
	return nil
}

func (s *Service) deleteByFilter(ctx context.Context, collection string, filter gateway.Filter) error {
	recs, err := s.gw.List(ctx, collection, filter)
	if err != nil {
		return err
	}
	for _, rec := range recs {
		key := strconv.FormatInt(cast.ToInt64(rec["id"]), 10)
		if err := s.gw.Delete(ctx, collection, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) publish(ctx context.Context, eventType string, item *models.CatalogItem) {
	if s.events == nil {
		return
	}
	var err error
	switch eventType {
	case models.EventTypeItemCreated:
		err = s.events.PublishItemCreated(ctx, &models.ItemCreatedEvent{
			BaseEvent: s.baseEvent(eventType),
			ItemID:    item.ID,
			Slug:      item.Slug,
		})
	case models.EventTypeItemUpdated:
		err = s.events.PublishItemUpdated(ctx, &models.ItemUpdatedEvent{
			BaseEvent: s.baseEvent(eventType),
			ItemID:    item.ID,
			Slug:      item.Slug,
		})
	}
	if err != nil {
		s.logger.Error("Failed to publish catalog event",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}

func (s *Service) baseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Origin:    s.instanceID,
		Timestamp: time.Now(),
	}
}
