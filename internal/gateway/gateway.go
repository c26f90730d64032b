package gateway

import "context"

// Collection names understood by the gateway.
const (
	CollectionItems          = "catalog_items"
	CollectionCategories     = "categories"
	CollectionPlans          = "plans"
	CollectionItemCategories = "item_categories"
	CollectionPromotions     = "promotion_configs"
	CollectionExchangeRates  = "exchange_rates"
)

// Record is a loose row read from or written to a named collection.
type Record map[string]interface{}

// Filter restricts List to rows whose columns equal the given values.
// A slice value matches any of its elements.
type Filter map[string]interface{}

// Gateway is the remote collection service the catalog core consumes.
// GetOne resolves the key against the collection's identifier column and,
// where the collection has one, its unique slug column.
type Gateway interface {
	List(ctx context.Context, collection string, filter Filter) ([]Record, error)
	GetOne(ctx context.Context, collection string, key string) (Record, error)
	Insert(ctx context.Context, collection string, rec Record) (Record, error)
	Update(ctx context.Context, collection string, key string, patch Record) (Record, error)
	Delete(ctx context.Context, collection string, key string) error
}
