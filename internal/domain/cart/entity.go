// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
)

// DefaultCartTTL is the inactivity window after which the cart becomes
// eligible for auto deletion (Firestore TTL should be configured on expiresAt).
const DefaultCartTTL = 30 * 24 * time.Hour

// Items maps itemId -> quantity. An absent key is equivalent to quantity 0;
// a stored quantity is always >= 1 (entries drop out when they reach 0).
type Items map[string]int

// Cart represents one cart document.
//   - docId = sessionKey (identity derived from the bearer token)
//   - ExpiresAt is refreshed on each mutation (TTL basis)
type Cart struct {
	// ID is the Firestore docId (= sessionKey).
	ID string `json:"id"`

	Items Items `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewCart creates an empty cart for the session.
func NewCart(id string, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(id),
		Items:     Items{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Increment adds one unit of itemID, creating the entry when absent.
func (c *Cart) Increment(itemID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return ErrInvalidCart
	}

	if c.Items == nil {
		c.Items = Items{}
	}
	c.Items[id] = c.Items[id] + 1

	c.touch(now)
	return c.validate()
}

// Decrement removes one unit of itemID, floored at 0. Decrementing an absent
// key is a no-op, not an error; an entry reaching 0 is deleted from the map.
func (c *Cart) Decrement(itemID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}
	id := strings.TrimSpace(itemID)
	if id == "" {
		return ErrInvalidCart
	}

	q, ok := c.Items[id]
	if !ok {
		// absent key: quantity stays 0
		return nil
	}
	if q <= 1 {
		delete(c.Items, id)
	} else {
		c.Items[id] = q - 1
	}

	c.touch(now)
	return c.validate()
}

// Quantity reports the stored quantity for itemID (0 when absent).
func (c *Cart) Quantity(itemID string) int {
	if c == nil || c.Items == nil {
		return 0
	}
	return c.Items[strings.TrimSpace(itemID)]
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}
	for id, q := range c.Items {
		if strings.TrimSpace(id) == "" || q <= 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// Clone returns a copy of the items map (empty map for nil).
func (m Items) Clone() Items {
	out := make(Items, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
