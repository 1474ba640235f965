// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the persistence port for the cart store.
//
// Storage (Firestore):
// - collection: carts
// - docId: sessionKey
// - fields: items(map[itemId]qty), createdAt, updatedAt, expiresAt
//
// IncrementItem / DecrementItem MUST be atomic read-modify-writes per
// sessionKey: two racing mutations for the same session may not lose updates.
// Operations for different sessionKeys are independent. Deltas are
// commutative (+1 / -1 floored at 0), so out-of-order network arrival still
// converges to the correct final count.
type Repository interface {
	// IncrementItem adds one unit of itemID, creating the cart doc on first use.
	IncrementItem(ctx context.Context, sessionKey, itemID string) error

	// DecrementItem removes one unit of itemID, floored at 0. Absent doc or
	// absent key is a no-op.
	DecrementItem(ctx context.Context, sessionKey, itemID string) error

	// Get returns the items map for the session; an absent doc yields an
	// empty map, not an error.
	Get(ctx context.Context, sessionKey string) (Items, error)
}
