// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	cartdom "foodhall/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// CartUsecase coordinates per-session cart mutations.
//
// Atomicity lives in the repository (transactional read-modify-write per
// sessionKey); this layer validates arguments and surfaces store errors
// untouched. Mutations are NOT retried here -- the caller decides.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// Add increments the stored quantity for itemID by 1, creating the entry
// (and the cart) when absent.
func (uc *CartUsecase) Add(ctx context.Context, sessionKey, itemID string) error {
	key := strings.TrimSpace(sessionKey)
	id := strings.TrimSpace(itemID)
	if key == "" || id == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.IncrementItem(ctx, key, id)
}

// Remove decrements the stored quantity for itemID by 1, floored at 0.
// Removing a non-existent entry is a no-op.
func (uc *CartUsecase) Remove(ctx context.Context, sessionKey, itemID string) error {
	key := strings.TrimSpace(sessionKey)
	id := strings.TrimSpace(itemID)
	if key == "" || id == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.DecrementItem(ctx, key, id)
}

// Get returns the full quantity map for the session; an empty map when no
// cart exists yet.
func (uc *CartUsecase) Get(ctx context.Context, sessionKey string) (cartdom.Items, error) {
	key := strings.TrimSpace(sessionKey)
	if key == "" {
		return nil, ErrCartInvalidArgument
	}
	items, err := uc.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = cartdom.Items{}
	}
	return items, nil
}
