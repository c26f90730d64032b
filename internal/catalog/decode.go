package catalog

import (
	"catalog-service/internal/gateway"
	"catalog-service/internal/models"

	"github.com/spf13/cast"
)

// Gateway records are loose rows; cast carries the coercion from driver
// types to model fields.

func decodeItem(rec gateway.Record) models.CatalogItem {
	return models.CatalogItem{
		ID:             cast.ToInt64(rec["id"]),
		Slug:           cast.ToString(rec["slug"]),
		Name:           cast.ToString(rec["name"]),
		Description:    cast.ToString(rec["description"]),
		ImageURL:       cast.ToString(rec["image_url"]),
		Featured:       cast.ToBool(rec["featured"]),
		DeliveryMethod: cast.ToString(rec["delivery_method"]),
		CreatedAt:      cast.ToTime(rec["created_at"]),
	}
}

func decodeCategory(rec gateway.Record) models.Category {
	cat := models.Category{
		ID:          cast.ToInt64(rec["id"]),
		Name:        cast.ToString(rec["name"]),
		Slug:        cast.ToString(rec["slug"]),
		Description: cast.ToString(rec["description"]),
	}
	if rec["parent_id"] != nil {
		parent := cast.ToInt64(rec["parent_id"])
		cat.ParentID = &parent
	}
	return cat
}

func decodeRawPlan(rec gateway.Record) models.RawPlan {
	return models.RawPlan{
		ID:          cast.ToInt64(rec["id"]),
		ItemID:      cast.ToInt64(rec["item_id"]),
		Name:        cast.ToString(rec["name"]),
		Price:       cast.ToFloat64(rec["price"]),
		Currency:    cast.ToString(rec["currency"]),
		Description: cast.ToString(rec["description"]),
	}
}

func decodeRelationCategoryID(rec gateway.Record) int64 {
	return cast.ToInt64(rec["category_id"])
}

func decodePromotion(rec gateway.Record) models.PromotionConfig {
	return models.PromotionConfig{
		ID:                 cast.ToInt64(rec["id"]),
		DiscountPercentage: cast.ToFloat64(rec["discount_percentage"]),
		IsActive:           cast.ToBool(rec["is_active"]),
		AppliesToAll:       cast.ToBool(rec["applies_to_all"]),
		CreatedAt:          cast.ToTime(rec["created_at"]),
		UpdatedAt:          cast.ToTime(rec["updated_at"]),
	}
}
