// internal/domain/fooditem/entity.go
package fooditem

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("fooditem: invalid input")
	ErrNotFound     = errors.New("fooditem: not found")
	ErrConflict     = errors.New("fooditem: conflict")
)

// FoodItem is one catalog record. Immutable once fetched by a client;
// the server is the sole mutator (create / delete, no in-place update).
type FoodItem struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewFoodItem builds a validated catalog record.
// imageURL must already be durable (asset upload happens before record creation).
func NewFoodItem(id, name, description string, price float64, category, imageURL string, now time.Time) (FoodItem, error) {
	it := FoodItem{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Category:    strings.TrimSpace(category),
		ImageURL:    strings.TrimSpace(imageURL),
		CreatedAt:   now,
	}
	if err := it.Validate(); err != nil {
		return FoodItem{}, err
	}
	return it, nil
}

func (it FoodItem) Validate() error {
	if it.ID == "" || it.Name == "" {
		return ErrInvalidInput
	}
	if it.Price < 0 {
		return ErrInvalidInput
	}
	if it.ImageURL == "" {
		return ErrInvalidInput
	}
	if it.CreatedAt.IsZero() {
		return ErrInvalidInput
	}
	return nil
}
