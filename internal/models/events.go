package models

import "time"

// Event types
const (
	EventTypeItemCreated      = "CATALOG_ITEM_CREATED"
	EventTypeItemUpdated      = "CATALOG_ITEM_UPDATED"
	EventTypeItemDeleted      = "CATALOG_ITEM_DELETED"
	EventTypePromotionUpdated = "PROMOTION_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Origin    string    `json:"origin"`
	Timestamp time.Time `json:"timestamp"`
}

// ItemCreatedEvent published after a catalog item is created
type ItemCreatedEvent struct {
	BaseEvent
	ItemID int64  `json:"item_id"`
	Slug   string `json:"slug"`
}

// ItemUpdatedEvent published after a catalog item is updated
type ItemUpdatedEvent struct {
	BaseEvent
	ItemID int64  `json:"item_id"`
	Slug   string `json:"slug"`
}

// ItemDeletedEvent published after a catalog item is deleted
type ItemDeletedEvent struct {
	BaseEvent
	ItemID int64 `json:"item_id"`
}

// PromotionUpdatedEvent published after the store-wide promotion changes
type PromotionUpdatedEvent struct {
	BaseEvent
	DiscountPercentage float64 `json:"discount_percentage"`
	IsActive           bool    `json:"is_active"`
}
