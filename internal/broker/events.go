package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes catalog write events so sibling instances can
// invalidate their caches.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishItemCreated publishes an ItemCreated event
func (ep *EventPublisher) PublishItemCreated(ctx context.Context, event *models.ItemCreatedEvent) error {
	return ep.producer.PublishEvent(ctx, itemKey(event.ItemID), event)
}

// PublishItemUpdated publishes an ItemUpdated event
func (ep *EventPublisher) PublishItemUpdated(ctx context.Context, event *models.ItemUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, itemKey(event.ItemID), event)
}

// PublishItemDeleted publishes an ItemDeleted event
func (ep *EventPublisher) PublishItemDeleted(ctx context.Context, event *models.ItemDeletedEvent) error {
	return ep.producer.PublishEvent(ctx, itemKey(event.ItemID), event)
}

// PublishPromotionUpdated publishes a PromotionUpdated event
func (ep *EventPublisher) PublishPromotionUpdated(ctx context.Context, event *models.PromotionUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, "promotion", event)
}

func itemKey(itemID int64) string {
	return fmt.Sprintf("item-%d", itemID)
}

// EventHandler routes incoming catalog events.
type EventHandler struct {
	onCatalogChanged func(context.Context, models.BaseEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnCatalogChanged registers a handler fired for every catalog write event.
func (eh *EventHandler) OnCatalogChanged(handler func(context.Context, models.BaseEvent) error) {
	eh.onCatalogChanged = handler
}

// HandleMessage decodes a message envelope and dispatches it.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch base.EventType {
	case models.EventTypeItemCreated,
		models.EventTypeItemUpdated,
		models.EventTypeItemDeleted,
		models.EventTypePromotionUpdated:
		if eh.onCatalogChanged != nil {
			return eh.onCatalogChanged(ctx, base)
		}
	}

	return nil
}
