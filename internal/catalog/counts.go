package catalog

import "catalog-service/internal/models"

// CountByCategory maps each known category id to the number of items that
// belong to it. Every category appears in the result, zero-count ones
// included, so filter UIs can render "(0)". An item in several categories
// increments each exactly once; an item in none is counted nowhere.
func CountByCategory(items []models.CatalogItem, categories []models.Category) map[int64]int {
	counts := make(map[int64]int, len(categories))
	for _, cat := range categories {
		counts[cat.ID] = 0
	}

	for _, item := range items {
		for _, catID := range item.CategoryIDs {
			if _, known := counts[catID]; known {
				counts[catID]++
			}
		}
	}

	return counts
}
