// internal/domain/fooditem/repository_port.go
package fooditem

import "context"

// Repository is the persistence port for the catalog store.
//
// Storage (Postgres):
// - table: food_items
// - columns: id, name, description, price, category, image_url, created_at
//
// The catalog store and the cart store are independent; cart item ids are
// NOT foreign-keyed against food_items.
type Repository interface {
	// List returns the full catalog (created_at, id order).
	List(ctx context.Context) ([]FoodItem, error)

	// GetByID returns ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id string) (FoodItem, error)

	// Create inserts a new record. Duplicate id -> ErrConflict.
	Create(ctx context.Context, item FoodItem) (FoodItem, error)

	// Delete removes a record. Unknown id -> ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// ImageUploader is the outbound port for the image-asset ingestion pipeline.
// Upload must return a durable public URL; callers persist no catalog record
// until it succeeds.
type ImageUploader interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
