package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalog-service/internal/catalog"
	"catalog-service/internal/currency"
	"catalog-service/internal/models"
	"catalog-service/internal/util"
	"catalog-service/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalogService *catalog.Service
	converter      *currency.Converter
	viewCfg        view.Config
}

// NewHandler creates a new HTTP handler
func NewHandler(catalogService *catalog.Service, converter *currency.Converter, viewCfg view.Config) *Handler {
	return &Handler{
		catalogService: catalogService,
		converter:      converter,
		viewCfg:        viewCfg,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", h.getCatalog)
		v1.GET("/catalog/view", h.getCatalogView)
		v1.GET("/catalog/categories", h.getCategories)
		v1.GET("/catalog/category-counts", h.getCategoryCounts)
		v1.GET("/catalog/items/:key", h.getItemDetail)
		v1.POST("/catalog/items", h.createItem)
		v1.PUT("/catalog/items/:id", h.updateItem)
		v1.DELETE("/catalog/items/:id", h.deleteItem)
		v1.PUT("/catalog/promotion", h.setPromotion)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// getCatalog returns the full hydrated catalog snapshot
func (h *Handler) getCatalog(c *gin.Context) {
	items, err := h.catalogService.GetCatalog(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

type viewItem struct {
	models.CatalogItem
	BasePrice    *float64 `json:"base_price"`
	BaseCurrency string   `json:"base_currency"`
}

// getCatalogView returns the filtered, sorted, windowed catalog view with
// per-item representative base-currency prices. The client grows count as
// the user scrolls; no gateway call happens beyond the cached snapshot.
func (h *Handler) getCatalogView(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.catalogService.GetCatalog(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	categoryID, _ := strconv.ParseInt(c.Query("category"), 10, 64)
	order := view.ParseSortOrder(c.Query("sort"))

	cfg := h.viewCfg
	if count, err := strconv.Atoi(c.Query("count")); err == nil && count > cfg.Initial {
		cfg.Initial = count
	}

	p := view.NewPipeline(cfg)
	p.SetItems(items)
	p.SetFilter(categoryID)
	p.SetSort(order)

	window := p.Window()
	out := make([]viewItem, 0, len(window))
	for i := range window {
		entry := viewItem{
			CatalogItem:  window[i],
			BaseCurrency: h.converter.BaseCurrency(),
		}
		// A missing rate degrades this item to "price unavailable"
		// without affecting its siblings.
		if price, err := h.converter.ItemBasePrice(ctx, &window[i]); err == nil {
			entry.BasePrice = &price
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"items":    out,
		"total":    len(items),
		"filtered": p.FilteredLen(),
		"window":   len(window),
		"has_more": p.HasMore(),
		"sort":     string(order),
		"category": categoryID,
	})
}

// getCategories returns all categories with derived product counts
func (h *Handler) getCategories(c *gin.Context) {
	ctx := c.Request.Context()

	cats, err := h.catalogService.GetCategories(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	counts, err := h.catalogService.GetCategoryCounts(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}

	out := make([]models.Category, len(cats))
	copy(out, cats)
	for i := range out {
		out[i].ProductCount = counts[out[i].ID]
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// getCategoryCounts returns the item count per category
func (h *Handler) getCategoryCounts(c *gin.Context) {
	counts, err := h.catalogService.GetCategoryCounts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

// getItemDetail returns one item by id or slug
func (h *Handler) getItemDetail(c *gin.Context) {
	item, err := h.catalogService.GetItemDetail(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// createItem handles catalog item creation
func (h *Handler) createItem(c *gin.Context) {
	var req catalog.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// updateItem handles catalog item patches
func (h *Handler) updateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req catalog.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	item, err := h.catalogService.UpdateItem(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// deleteItem handles catalog item deletion
func (h *Handler) deleteItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.catalogService.DeleteItem(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// setPromotion handles store-wide promotion updates
func (h *Handler) setPromotion(c *gin.Context) {
	var req catalog.SetPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	cfg, err := h.catalogService.SetPromotion(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case models.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case models.IsFetchError(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "Catalog temporarily unavailable",
			"retryable": true,
			"details":   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal error",
			"details": err.Error(),
		})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
