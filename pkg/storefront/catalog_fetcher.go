// pkg/storefront/catalog_fetcher.go
package storefront

import (
	"context"
	"log"
	"sync"
	"time"

	fooddom "foodhall/internal/domain/fooditem"
)

const (
	// catalogMaxAttempts is the TOTAL number of attempts (not extra retries).
	catalogMaxAttempts = 3
	// catalogRetryDelay is a fixed pause between attempts. Deliberately not
	// exponential: the observable timing (2 retries = ~4s) is part of the
	// contract.
	catalogRetryDelay = 2 * time.Second
)

// CatalogAPI is the slice of Client the fetcher needs.
type CatalogAPI interface {
	FetchFoodList(ctx context.Context) ([]fooddom.FoodItem, error)
}

// CatalogFetcher retrieves the catalog with a bounded fixed-delay retry loop.
//
// Retried conditions: transport failure, structurally invalid response, and
// a structurally valid but EMPTY list (an empty catalog right after startup
// is treated as transient, not steady state). After the attempt cap the
// fetcher resolves to an empty catalog; it never returns an error, the
// caller reflects "unavailable" from the empty result.
type CatalogFetcher struct {
	api CatalogAPI

	// sleep is swappable in tests.
	sleep func(time.Duration)

	mu      sync.Mutex
	catalog []fooddom.FoodItem
}

func NewCatalogFetcher(api CatalogAPI) *CatalogFetcher {
	return &CatalogFetcher{
		api:   api,
		sleep: time.Sleep,
	}
}

// Fetch runs the bounded retry loop and returns the resulting catalog.
// A successful non-empty result replaces the held catalog wholesale.
//
// There is no external cancellation of the loop itself; ctx only bounds the
// individual HTTP attempts. Callers needing a deadline wrap Fetch at the
// call site.
func (f *CatalogFetcher) Fetch(ctx context.Context) []fooddom.FoodItem {
	for attempt := 1; attempt <= catalogMaxAttempts; attempt++ {
		items, err := f.api.FetchFoodList(ctx)
		if err == nil && len(items) > 0 {
			log.Printf("[catalog_fetcher] loaded %d food items (attempt %d)", len(items), attempt)
			f.store(items)
			return f.Catalog()
		}

		if err != nil {
			log.Printf("[catalog_fetcher] fetch failed (attempt %d/%d): %v", attempt, catalogMaxAttempts, err)
		} else {
			log.Printf("[catalog_fetcher] no food items found (attempt %d/%d)", attempt, catalogMaxAttempts)
		}

		if attempt < catalogMaxAttempts {
			f.sleep(catalogRetryDelay)
		}
	}

	// attempts exhausted: accept the empty result
	f.store(nil)
	return f.Catalog()
}

// Catalog returns a snapshot of the currently held catalog.
func (f *CatalogFetcher) Catalog() []fooddom.FoodItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fooddom.FoodItem, len(f.catalog))
	copy(out, f.catalog)
	return out
}

func (f *CatalogFetcher) store(items []fooddom.FoodItem) {
	f.mu.Lock()
	f.catalog = items
	f.mu.Unlock()
}
