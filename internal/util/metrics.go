package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Total number of entity cache hits",
	}, []string{"entity"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Total number of entity cache misses",
	}, []string{"entity"})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_invalidations_total",
		Help: "Total number of entity cache invalidations",
	}, []string{"entity"})

	GatewayFetchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_fetch_latency_seconds",
		Help:    "Latency of remote collection gateway reads",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	HydrationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_hydration_failures_total",
		Help: "Total number of failed catalog hydration batches",
	}, []string{"reason"})

	ConversionsUnavailableTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "currency_conversions_unavailable_total",
		Help: "Total number of conversions with no exchange rate",
	}, []string{"currency"})

	RevealsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_reveals_total",
		Help: "Total number of progressive reveal increments",
	})

	ItemsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_created_total",
		Help: "Total number of catalog items created",
	})

	ItemsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_updated_total",
		Help: "Total number of catalog items updated",
	})

	ItemsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_items_deleted_total",
		Help: "Total number of catalog items deleted",
	})

	ItemWritesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_item_writes_failed_total",
		Help: "Total number of failed catalog item writes",
	}, []string{"reason"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
