package models

import "time"

// Currency codes accepted on plans.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyTRY = "TRY"
)

// Currencies lists every accepted plan currency code.
var Currencies = []string{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyTRY}

// ValidCurrency reports whether code is an accepted plan currency.
func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// RawPlan is a priced purchasing option as persisted by the gateway.
type RawPlan struct {
	ID          int64   `json:"id"`
	ItemID      int64   `json:"item_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
}

// DisplayPlan is the view-model variant of a plan after the pricing engine
// has run. Price may differ from the persisted value; OriginalPrice always
// carries the raw price.
type DisplayPlan struct {
	RawPlan
	OriginalPrice      float64 `json:"original_price"`
	HasDiscount        bool    `json:"has_discount"`
	DiscountPercentage float64 `json:"discount_percentage,omitempty"`
}

// CatalogItem is a purchasable gift card with one or more plans.
type CatalogItem struct {
	ID             int64         `json:"id"`
	Slug           string        `json:"slug"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	ImageURL       string        `json:"image_url,omitempty"`
	Featured       bool          `json:"featured"`
	DeliveryMethod string        `json:"delivery_method,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	Plans          []DisplayPlan `json:"plans"`
	CategoryIDs    []int64       `json:"category_ids"`
}

// MinPlanPrice returns the minimum plan price of the item, 0 when the item
// has no plans.
func (i *CatalogItem) MinPlanPrice() float64 {
	if len(i.Plans) == 0 {
		return 0
	}
	min := i.Plans[0].Price
	for _, p := range i.Plans[1:] {
		if p.Price < min {
			min = p.Price
		}
	}
	return min
}

// MinPlan returns the cheapest plan of the item, nil when it has none.
func (i *CatalogItem) MinPlan() *DisplayPlan {
	if len(i.Plans) == 0 {
		return nil
	}
	min := &i.Plans[0]
	for idx := range i.Plans[1:] {
		if i.Plans[idx+1].Price < min.Price {
			min = &i.Plans[idx+1]
		}
	}
	return min
}

// Category groups catalog items. ParentID supports one level of
// sub-categorization.
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	ParentID     *int64 `json:"parent_id,omitempty"`
	ProductCount int    `json:"product_count"`
}

// PromotionConfig is the store-wide discount configuration. At most one
// config with AppliesToAll set is treated as authoritative.
type PromotionConfig struct {
	ID                 int64     `json:"id"`
	DiscountPercentage float64   `json:"discount_percentage"`
	IsActive           bool      `json:"is_active"`
	AppliesToAll       bool      `json:"applies_to_all"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ExchangeRate is a multiplier from a plan currency to the store's base
// currency.
type ExchangeRate struct {
	Currency  string    `json:"currency"`
	Rate      float64   `json:"rate"`
	UpdatedAt time.Time `json:"updated_at"`
}
