package pricing

import (
	"math"

	"catalog-service/internal/models"
)

// ApplyPromotion overlays the store-wide promotion on raw plans and returns
// the display variants. Raw prices are never touched; a plan without an
// applicable discount keeps its price with HasDiscount false.
//
// The percentage is clamped to [0,100] here as well as at write validation,
// so a corrupted stored config cannot produce a negative display price.
func ApplyPromotion(plans []models.RawPlan, config *models.PromotionConfig) []models.DisplayPlan {
	pct := 0.0
	if config != nil && config.IsActive && config.AppliesToAll {
		pct = clamp(config.DiscountPercentage, 0, 100)
	}

	out := make([]models.DisplayPlan, len(plans))
	for i, plan := range plans {
		dp := models.DisplayPlan{
			RawPlan:       plan,
			OriginalPrice: plan.Price,
		}
		if pct > 0 {
			dp.Price = Round2(plan.Price * (1 - pct/100))
			dp.HasDiscount = true
			dp.DiscountPercentage = pct
		}
		out[i] = dp
	}
	return out
}

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
