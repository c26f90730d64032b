package view

import (
	"sort"
	"sync"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/util"
)

// SortOrder orders the filtered item set.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

// ParseSortOrder maps a query value to a sort order, defaulting to newest.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNewest
	}
}

// Revealer is the abstract reveal-more trigger: any environment primitive
// (scroll sentinel, button, growing client count) drives it the same way.
type Revealer interface {
	Reveal() bool
	HasMore() bool
}

// Config sizes the progressive window.
type Config struct {
	Initial  int
	Step     int
	Cooldown time.Duration
}

func (c Config) withDefaults() Config {
	if c.Initial <= 0 {
		c.Initial = 12
	}
	if c.Step <= 0 {
		c.Step = 8
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 200 * time.Millisecond
	}
	return c
}

// Pipeline derives filtered, sorted, and windowed views over a resident
// catalog snapshot. It performs no gateway calls; windowing is purely a
// rendering-cost optimization.
type Pipeline struct {
	mu  sync.Mutex
	cfg Config
	now func() time.Time

	items    []models.CatalogItem
	category int64 // 0 selects all items
	order    SortOrder

	sorted      []models.CatalogItem
	revealCount int
	lastReveal  time.Time
}

// NewPipeline creates a pipeline showing all items, newest first.
func NewPipeline(cfg Config) *Pipeline {
	p := &Pipeline{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		order: SortNewest,
	}
	p.revealCount = p.cfg.Initial
	return p
}

// SetItems replaces the resident snapshot, keeping the active filter, sort,
// and window so a background refresh does not collapse what the user sees.
func (p *Pipeline) SetItems(items []models.CatalogItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.recompute()
}

// SetFilter selects a category (0 for all). A change resets the sort to
// newest and the window to its initial size, so a new filter always starts
// from the top of the result.
func (p *Pipeline) SetFilter(categoryID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.category == categoryID {
		return
	}
	p.category = categoryID
	p.order = SortNewest
	p.resetWindow()
	p.recompute()
}

// SetSort changes the sort order, resetting the window on change.
func (p *Pipeline) SetSort(order SortOrder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.order == order {
		return
	}
	p.order = order
	p.resetWindow()
	p.recompute()
}

// Window returns the currently revealed slice of the sorted result.
func (p *Pipeline) Window() []models.CatalogItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := p.revealCount
	if n > len(p.sorted) {
		n = len(p.sorted)
	}
	return p.sorted[:n]
}

// FilteredLen returns the size of the filtered result set.
func (p *Pipeline) FilteredLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sorted)
}

// HasMore reports whether items beyond the current window remain.
func (p *Pipeline) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.revealCount < len(p.sorted)
}

// Reveal grows the window by one step. Triggers arriving within the
// cool-down of the previous reveal are ignored, so rapid visibility
// toggling cannot run the window away.
func (p *Pipeline) Reveal() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.revealCount >= len(p.sorted) {
		return false
	}
	if !p.lastReveal.IsZero() && p.now().Sub(p.lastReveal) < p.cfg.Cooldown {
		return false
	}

	p.revealCount += p.cfg.Step
	p.lastReveal = p.now()
	util.RevealsTotal.Inc()
	return true
}

// SetClock overrides the pipeline's time source for tests.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
}

func (p *Pipeline) resetWindow() {
	p.revealCount = p.cfg.Initial
	p.lastReveal = time.Time{}
}

func (p *Pipeline) recompute() {
	filtered := p.items
	if p.category != 0 {
		filtered = nil
		for _, item := range p.items {
			for _, catID := range item.CategoryIDs {
				if catID == p.category {
					filtered = append(filtered, item)
					break
				}
			}
		}
	}

	sorted := make([]models.CatalogItem, len(filtered))
	copy(sorted, filtered)

	switch p.order {
	case SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinPlanPrice() < sorted[j].MinPlanPrice()
		})
	case SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].MinPlanPrice() > sorted[j].MinPlanPrice()
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}

	p.sorted = sorted
}
