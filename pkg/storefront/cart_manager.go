// pkg/storefront/cart_manager.go
package storefront

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	fooddom "foodhall/internal/domain/fooditem"
)

// CartSyncAPI is the slice of Client the cart manager needs.
type CartSyncAPI interface {
	CartAdd(ctx context.Context, token, itemID string) error
	CartRemove(ctx context.Context, token, itemID string) error
	CartGet(ctx context.Context, token string) (map[string]int, error)
}

// MissingItemError flags cart lines whose item id has no catalog entry.
// The total over the priced lines is still returned; callers decide whether
// to render or surface the flagged lines.
type MissingItemError struct {
	ItemIDs []string
}

func (e *MissingItemError) Error() string {
	return fmt.Sprintf("storefront: no catalog entry for cart items: %s", strings.Join(e.ItemIDs, ", "))
}

type cartOpKind int

const (
	opAdd cartOpKind = iota
	opRemove
)

type cartOp struct {
	kind   cartOpKind
	itemID string
}

// opQueueSize bounds the pending reconciliation queue. A full queue counts
// the op as a reconciliation gap instead of blocking the caller.
const opQueueSize = 1024

// syncTimeout bounds one reconciliation round trip.
const syncTimeout = 10 * time.Second

// CartManager holds the optimistic local mirror of the session's cart.
//
// Mutations apply to the mirror synchronously, then (when a session token is
// present) a matching delta is queued for the server. A single worker drains
// the queue in submission order; the server applies commutative +1/-1 deltas,
// so the stored cart converges to the mirror once all queued ops land.
//
// A failed sync is never rolled back locally and never hidden: it increments
// the observable gap counter and is logged. GapCount() > 0 means the mirror
// and the persisted cart may have diverged.
type CartManager struct {
	api   CartSyncAPI
	token string

	mu    sync.Mutex
	items map[string]int

	ops     chan cartOp
	pending sync.WaitGroup
	done    chan struct{}
	closed  bool

	gaps atomic.Int64
}

// NewCartManager builds a manager bound to an explicit session token.
// An empty token means guest mode: the mirror works, nothing is synced.
func NewCartManager(api CartSyncAPI, token string) *CartManager {
	m := &CartManager{
		api:   api,
		token: strings.TrimSpace(token),
		items: map[string]int{},
		ops:   make(chan cartOp, opQueueSize),
		done:  make(chan struct{}),
	}
	go m.worker()
	return m
}

func (m *CartManager) worker() {
	defer close(m.done)
	for op := range m.ops {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)

		var err error
		switch op.kind {
		case opAdd:
			err = m.api.CartAdd(ctx, m.token, op.itemID)
		case opRemove:
			err = m.api.CartRemove(ctx, m.token, op.itemID)
		}
		cancel()

		if err != nil {
			m.gaps.Add(1)
			log.Printf("[cart_manager] sync failed op=%d item=%s err=%v (reconciliation gap)", op.kind, op.itemID, err)
		}
		m.pending.Done()
	}
}

// Increment adds one unit locally, then queues the matching server delta.
// The local update is synchronous; the network call never blocks the caller.
func (m *CartManager) Increment(itemID string) {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return
	}

	m.mu.Lock()
	m.items[id] = m.items[id] + 1
	m.mu.Unlock()

	m.enqueue(cartOp{kind: opAdd, itemID: id})
}

// Decrement removes one unit locally, clamped at 0. Decrementing an absent
// key is a no-op: the mirror stays at 0 and no server delta is queued.
func (m *CartManager) Decrement(itemID string) {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return
	}

	m.mu.Lock()
	q, ok := m.items[id]
	if !ok || q <= 0 {
		m.mu.Unlock()
		return
	}
	if q == 1 {
		delete(m.items, id)
	} else {
		m.items[id] = q - 1
	}
	m.mu.Unlock()

	m.enqueue(cartOp{kind: opRemove, itemID: id})
}

func (m *CartManager) enqueue(op cartOp) {
	if m.token == "" {
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.pending.Add(1)
	select {
	case m.ops <- op:
	default:
		// queue full: an unsent op is a gap, not a blocked UI
		m.pending.Done()
		m.gaps.Add(1)
		log.Printf("[cart_manager] op queue full item=%s (reconciliation gap)", op.itemID)
	}
	m.mu.Unlock()
}

// Hydrate replaces the local mirror wholesale with the persisted cart.
// Pre-login local state is discarded, not merged. Guest mode is a no-op.
func (m *CartManager) Hydrate(ctx context.Context) error {
	if m.token == "" {
		return nil
	}

	persisted, err := m.api.CartGet(ctx, m.token)
	if err != nil {
		return err
	}

	next := make(map[string]int, len(persisted))
	for id, q := range persisted {
		id = strings.TrimSpace(id)
		if id == "" || q <= 0 {
			continue
		}
		next[id] = q
	}

	m.mu.Lock()
	m.items = next
	m.mu.Unlock()
	return nil
}

// Quantity reports the mirrored quantity for itemID (0 when absent).
func (m *CartManager) Quantity(itemID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[strings.TrimSpace(itemID)]
}

// Items returns a snapshot of the mirror.
func (m *CartManager) Items() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out
}

// Total computes sum(price * qty) over lines with qty > 0.
//
// A cart line whose item id is missing from the catalog is a hard condition:
// it is skipped from the sum and reported through *MissingItemError (the
// partial total is still returned). The line itself stays in the mirror.
func (m *CartManager) Total(catalog []fooddom.FoodItem) (float64, error) {
	prices := make(map[string]float64, len(catalog))
	for _, it := range catalog {
		prices[it.ID] = it.Price
	}

	snapshot := m.Items()

	var total float64
	var missing []string
	for id, qty := range snapshot {
		if qty <= 0 {
			continue
		}
		price, ok := prices[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		total += price * float64(qty)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return total, &MissingItemError{ItemIDs: missing}
	}
	return total, nil
}

// GapCount reports how many queued deltas failed to reach the server.
func (m *CartManager) GapCount() int64 {
	return m.gaps.Load()
}

// Flush waits until every queued op has been attempted, or ctx expires.
func (m *CartManager) Flush(ctx context.Context) error {
	waited := make(chan struct{})
	go func() {
		m.pending.Wait()
		close(waited)
	}()

	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the worker after draining already-queued ops.
func (m *CartManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()

	close(m.ops)
	<-m.done
}
