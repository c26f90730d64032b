package worker

import (
	"context"
	"log"

	"catalog-service/internal/broker"
	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// InvalidationWorker consumes catalog write events published by sibling
// instances and invalidates the local entity cache so stale snapshots are
// refetched on the next read.
type InvalidationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	service      *catalog.Service
	logger       *zap.Logger
}

// NewInvalidationWorker creates a new invalidation worker
func NewInvalidationWorker(consumer *broker.Consumer, service *catalog.Service) *InvalidationWorker {
	w := &InvalidationWorker{
		consumer: consumer,
		service:  service,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnCatalogChanged(w.handleCatalogChanged)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *InvalidationWorker) Start(ctx context.Context) error {
	log.Println("Starting invalidation worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *InvalidationWorker) Stop() error {
	log.Println("Stopping invalidation worker...")
	return w.consumer.Close()
}

func (w *InvalidationWorker) handleCatalogChanged(ctx context.Context, event models.BaseEvent) error {
	// Writes on this instance already invalidated locally.
	if event.Origin == w.service.InstanceID() {
		return nil
	}

	w.logger.Info("Invalidating caches for remote catalog write",
		zap.String("event_type", event.EventType),
		zap.String("event_id", event.EventID))

	w.service.ApplyRemoteEvent(ctx, event.EventType)
	return nil
}
