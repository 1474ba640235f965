// internal/application/usecase/cart_usecase_test.go
package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "foodhall/internal/domain/cart"
)

// memCartRepo is an in-memory cart.Repository with the same atomicity
// contract as the Firestore adapter: each mutation is one locked
// read-modify-write per sessionKey.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]cartdom.Items
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: map[string]cartdom.Items{}}
}

func (r *memCartRepo) IncrementItem(_ context.Context, sessionKey, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.carts[sessionKey]
	if !ok {
		items = cartdom.Items{}
		r.carts[sessionKey] = items
	}
	items[itemID] = items[itemID] + 1
	return nil
}

func (r *memCartRepo) DecrementItem(_ context.Context, sessionKey, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.carts[sessionKey]
	if !ok {
		return nil
	}
	q, ok := items[itemID]
	if !ok {
		return nil
	}
	if q <= 1 {
		delete(items, itemID)
	} else {
		items[itemID] = q - 1
	}
	return nil
}

func (r *memCartRepo) Get(_ context.Context, sessionKey string) (cartdom.Items, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.carts[sessionKey]
	if !ok {
		return cartdom.Items{}, nil
	}
	return items.Clone(), nil
}

func TestCartUsecaseAddRemoveGet(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newMemCartRepo())

	require.NoError(t, uc.Add(ctx, "s1", "item-a"))
	require.NoError(t, uc.Add(ctx, "s1", "item-a"))
	require.NoError(t, uc.Remove(ctx, "s1", "item-a"))

	items, err := uc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, items["item-a"])
}

func TestCartUsecaseRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newMemCartRepo())

	require.NoError(t, uc.Remove(ctx, "s1", "never-added"))

	items, err := uc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartUsecaseGetUnknownSessionIsEmpty(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newMemCartRepo())

	items, err := uc.Get(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCartUsecaseValidation(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newMemCartRepo())

	assert.ErrorIs(t, uc.Add(ctx, "", "item"), ErrCartInvalidArgument)
	assert.ErrorIs(t, uc.Add(ctx, "s", "  "), ErrCartInvalidArgument)
	assert.ErrorIs(t, uc.Remove(ctx, " ", "item"), ErrCartInvalidArgument)
	_, err := uc.Get(ctx, "")
	assert.ErrorIs(t, err, ErrCartInvalidArgument)
}

// Concurrent adds then concurrent removes for one session must converge to
// the floored sum of deltas: atomic per-key mutations may not lose updates.
func TestCartUsecaseConcurrentConvergence(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newMemCartRepo())

	const adds = 30
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = uc.Add(ctx, "s1", "item-a")
		}()
	}
	wg.Wait()

	const removes = 10
	for i := 0; i < removes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = uc.Remove(ctx, "s1", "item-a")
		}()
	}
	wg.Wait()

	items, err := uc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, adds-removes, items["item-a"])
}

// Different sessions are fully independent.
func TestCartUsecaseSessionsIsolated(t *testing.T) {
	ctx := context.Background()
	uc := NewCartUsecase(newMemCartRepo())

	var wg sync.WaitGroup
	for _, key := range []string{"s1", "s2", "s3"} {
		wg.Add(1)
		go func(k string) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				_ = uc.Add(ctx, k, "item")
			}
		}(key)
	}
	wg.Wait()

	for _, key := range []string{"s1", "s2", "s3"} {
		items, err := uc.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 5, items["item"], "session %s", key)
	}
}
