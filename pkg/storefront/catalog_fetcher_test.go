// pkg/storefront/catalog_fetcher_test.go
package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fooddom "foodhall/internal/domain/fooditem"
)

// scriptedCatalogAPI replays a fixed sequence of responses.
type scriptedCatalogAPI struct {
	responses []func() ([]fooddom.FoodItem, error)
	calls     int
}

func (a *scriptedCatalogAPI) FetchFoodList(_ context.Context) ([]fooddom.FoodItem, error) {
	i := a.calls
	a.calls++
	if i >= len(a.responses) {
		return nil, errors.New("scripted api: out of responses")
	}
	return a.responses[i]()
}

func sampleItems(n int) []fooddom.FoodItem {
	out := make([]fooddom.FoodItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fooddom.FoodItem{
			ID:    string(rune('a' + i)),
			Name:  "item",
			Price: 1,
		})
	}
	return out
}

func newTestFetcher(api CatalogAPI) (*CatalogFetcher, *[]time.Duration) {
	f := NewCatalogFetcher(api)
	slept := &[]time.Duration{}
	f.sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return f, slept
}

func emptyList() ([]fooddom.FoodItem, error) { return []fooddom.FoodItem{}, nil }

func TestFetchSucceedsFirstAttempt(t *testing.T) {
	api := &scriptedCatalogAPI{responses: []func() ([]fooddom.FoodItem, error){
		func() ([]fooddom.FoodItem, error) { return sampleItems(3), nil },
	}}
	f, slept := newTestFetcher(api)

	got := f.Fetch(context.Background())
	assert.Len(t, got, 3)
	assert.Equal(t, 1, api.calls)
	assert.Empty(t, *slept)
}

// Two empty answers followed by a populated one: the populated answer lands on
// the last allowed attempt, with the fixed delay before each retry.
func TestFetchRetriesEmptyThenSucceeds(t *testing.T) {
	api := &scriptedCatalogAPI{responses: []func() ([]fooddom.FoodItem, error){
		emptyList,
		emptyList,
		func() ([]fooddom.FoodItem, error) { return sampleItems(5), nil },
	}}
	f, slept := newTestFetcher(api)

	got := f.Fetch(context.Background())
	assert.Len(t, got, 5)
	assert.Equal(t, 3, api.calls)
	assert.Equal(t, []time.Duration{catalogRetryDelay, catalogRetryDelay}, *slept)
	assert.Len(t, f.Catalog(), 5)
}

func TestFetchRetriesTransportErrors(t *testing.T) {
	api := &scriptedCatalogAPI{responses: []func() ([]fooddom.FoodItem, error){
		func() ([]fooddom.FoodItem, error) { return nil, errors.New("connection refused") },
		func() ([]fooddom.FoodItem, error) { return nil, errors.New("invalid food list body") },
		func() ([]fooddom.FoodItem, error) { return sampleItems(2), nil },
	}}
	f, _ := newTestFetcher(api)

	got := f.Fetch(context.Background())
	assert.Len(t, got, 2)
	assert.Equal(t, 3, api.calls)
}

// All attempts empty: the fetcher gives up after the cap, resolves to an
// empty catalog, and never surfaces an error.
func TestFetchExhaustedResolvesEmpty(t *testing.T) {
	api := &scriptedCatalogAPI{responses: []func() ([]fooddom.FoodItem, error){
		emptyList, emptyList, emptyList,
	}}
	f, slept := newTestFetcher(api)

	got := f.Fetch(context.Background())
	assert.Empty(t, got)
	assert.Equal(t, catalogMaxAttempts, api.calls)
	// no trailing sleep after the final attempt
	assert.Len(t, *slept, catalogMaxAttempts-1)
	assert.Empty(t, f.Catalog())
}

// A later successful Fetch replaces an exhausted (empty) result wholesale.
func TestFetchReplacesHeldCatalog(t *testing.T) {
	api := &scriptedCatalogAPI{responses: []func() ([]fooddom.FoodItem, error){
		emptyList, emptyList, emptyList,
		func() ([]fooddom.FoodItem, error) { return sampleItems(4), nil },
	}}
	f, _ := newTestFetcher(api)

	require.Empty(t, f.Fetch(context.Background()))
	assert.Len(t, f.Fetch(context.Background()), 4)
	assert.Len(t, f.Catalog(), 4)
}

func TestCatalogReturnsSnapshot(t *testing.T) {
	api := &scriptedCatalogAPI{responses: []func() ([]fooddom.FoodItem, error){
		func() ([]fooddom.FoodItem, error) { return sampleItems(2), nil },
	}}
	f, _ := newTestFetcher(api)
	f.Fetch(context.Background())

	snap := f.Catalog()
	snap[0].Price = 999

	assert.Equal(t, float64(1), f.Catalog()[0].Price)
}
