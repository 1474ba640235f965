// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "foodhall/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: carts
// - docId: sessionKey (docId is the source of truth)
// - fields: items(map[itemId]qty), createdAt, updatedAt, expiresAt
//
// Every mutation runs inside RunTransaction, so the read-modify-write for one
// sessionKey is atomic: two racing add/remove calls for the same session
// cannot lose updates, and carts of different sessions never contend.
//
// TTL:
// - Configure Firestore TTL on "expiresAt"; refreshed on each mutation.
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("carts")
}

// IncrementItem adds one unit of itemID, creating the cart doc on first use.
func (r *CartRepositoryFS) IncrementItem(ctx context.Context, sessionKey, itemID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	key := strings.TrimSpace(sessionKey)
	id := strings.TrimSpace(itemID)
	if key == "" || id == "" {
		return errors.New("cart_repository_fs: sessionKey and itemID are required")
	}

	ref := r.col().Doc(key)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()

		c, err := readCartTx(tx, ref, key, now)
		if err != nil {
			return err
		}
		if err := c.Increment(id, now); err != nil {
			return err
		}
		return tx.Set(ref, cartDocFromDomain(c))
	})
}

// DecrementItem removes one unit of itemID, floored at 0.
// An absent doc or absent key is a no-op (no write issued).
func (r *CartRepositoryFS) DecrementItem(ctx context.Context, sessionKey, itemID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	key := strings.TrimSpace(sessionKey)
	id := strings.TrimSpace(itemID)
	if key == "" || id == "" {
		return errors.New("cart_repository_fs: sessionKey and itemID are required")
	}

	ref := r.col().Doc(key)

	return r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return err
		}

		doc, err := cartDocFromSnapshot(snap)
		if err != nil {
			return err
		}
		c := doc.toDomain(key)

		if c.Quantity(id) == 0 {
			return nil
		}
		if err := c.Decrement(id, now); err != nil {
			return err
		}
		return tx.Set(ref, cartDocFromDomain(c))
	})
}

// Get returns the items map for the session; an absent doc yields an empty map.
func (r *CartRepositoryFS) Get(ctx context.Context, sessionKey string) (cartdom.Items, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	key := strings.TrimSpace(sessionKey)
	if key == "" {
		return nil, errors.New("cart_repository_fs: sessionKey is empty")
	}

	snap, err := r.col().Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return cartdom.Items{}, nil
		}
		return nil, err
	}

	doc, err := cartDocFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(key).Items, nil
}

// readCartTx loads the cart inside a transaction, creating a fresh domain
// cart when the doc does not exist yet.
func readCartTx(tx *firestore.Transaction, ref *firestore.DocumentRef, key string, now time.Time) (*cartdom.Cart, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return cartdom.NewCart(key, now)
		}
		return nil, err
	}

	doc, err := cartDocFromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(key), nil
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------

type cartDoc struct {
	// Items: itemId -> qty
	// NOTE: domain struct is not used as the firestore DTO directly
	// (keeps the stored shape flexible / backward compatible).
	Items map[string]int `firestore:"items"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

// cartDocFromSnapshot parses document data tolerantly: Firestore may hand
// back item quantities as int64 or float64 depending on how they were written.
func cartDocFromSnapshot(snap *firestore.DocumentSnapshot) (cartDoc, error) {
	if snap == nil {
		return cartDoc{}, errors.New("cart_repository_fs: snapshot is nil")
	}

	raw := snap.Data()
	if raw == nil {
		return cartDoc{Items: map[string]int{}}, nil
	}

	out := cartDoc{Items: map[string]int{}}

	if t, ok := raw["createdAt"]; ok {
		if tt, ok2 := asTime(t); ok2 {
			out.CreatedAt = tt
		}
	}
	if t, ok := raw["updatedAt"]; ok {
		if tt, ok2 := asTime(t); ok2 {
			out.UpdatedAt = tt
		}
	}
	if t, ok := raw["expiresAt"]; ok {
		if tt, ok2 := asTime(t); ok2 {
			out.ExpiresAt = tt
		}
	}

	m, ok := raw["items"].(map[string]any)
	if !ok || m == nil {
		return out, nil
	}

	for k, v := range m {
		itemID := strings.TrimSpace(k)
		if itemID == "" {
			continue
		}
		qty := asInt(v)
		if qty <= 0 {
			continue
		}
		out.Items[itemID] = qty
	}

	return out, nil
}

func cartDocFromDomain(c *cartdom.Cart) cartDoc {
	items := map[string]int{}
	if c != nil {
		for id, qty := range c.Items {
			id = strings.TrimSpace(id)
			if id == "" || qty <= 0 {
				continue
			}
			items[id] = qty
		}
	}
	return cartDoc{
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		ExpiresAt: c.ExpiresAt,
	}
}

func (d cartDoc) toDomain(docID string) *cartdom.Cart {
	items := cartdom.Items{}
	for id, qty := range d.Items {
		id = strings.TrimSpace(id)
		if id == "" || qty <= 0 {
			continue
		}
		items[id] = qty
	}

	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := d.UpdatedAt
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}
	expiresAt := d.ExpiresAt
	if expiresAt.Before(updatedAt) {
		expiresAt = updatedAt.Add(cartdom.DefaultCartTTL)
	}

	return &cartdom.Cart{
		// docId is the source of truth even when the stored doc carries no id
		ID:        strings.TrimSpace(docID),
		Items:     items,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		ExpiresAt: expiresAt,
	}
}

// -----------------------------------------
// loose-typed field helpers
// -----------------------------------------

func asTime(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
