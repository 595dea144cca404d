package checkout

import (
	"context"
	"log"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/store"
)

const queueKey = "pending_orders"

// Queue is the persisted list of locally captured orders awaiting
// synchronization. Appends are best-effort durable: a failed persistence
// write leaves the in-memory queue ahead of the store, with no
// compensating action.
type Queue struct {
	st     store.Store
	orders []domain.PendingOrder
}

// NewQueue loads the persisted queue, starting empty when no state exists.
func NewQueue(ctx context.Context, st store.Store) *Queue {
	q := &Queue{st: st}
	if err := store.LoadJSON(ctx, st, queueKey, &q.orders); err != nil {
		log.Printf("order queue load error: %v", err)
	}
	return q
}

// Append adds an order to the end of the queue.
func (q *Queue) Append(ctx context.Context, order domain.PendingOrder) {
	q.orders = append(q.orders, order)
	q.persist(ctx)
}

// Pending returns the orders still awaiting a successful sync.
func (q *Queue) Pending() []domain.PendingOrder {
	var out []domain.PendingOrder
	for _, o := range q.orders {
		if o.Status == domain.OrderStatusPendingSync {
			out = append(out, o)
		}
	}
	return out
}

// All returns a copy of every queued order, failed ones included.
func (q *Queue) All() []domain.PendingOrder {
	out := make([]domain.PendingOrder, len(q.orders))
	copy(out, q.orders)
	return out
}

// Len returns the number of queued orders.
func (q *Queue) Len() int {
	return len(q.orders)
}

// Complete marks an order synced and drops it from the queue.
func (q *Queue) Complete(ctx context.Context, orderID string) {
	for i := range q.orders {
		if q.orders[i].ID == orderID {
			q.orders = append(q.orders[:i], q.orders[i+1:]...)
			q.persist(ctx)
			return
		}
	}
}

// RecordFailure increments the order's attempt count; once maxAttempts is
// reached the order transitions to FAILED and is kept for inspection
// instead of being retried forever.
func (q *Queue) RecordFailure(ctx context.Context, orderID string, maxAttempts int) {
	for i := range q.orders {
		if q.orders[i].ID != orderID {
			continue
		}
		q.orders[i].Attempts++
		if q.orders[i].Attempts >= maxAttempts {
			q.orders[i].Status = domain.OrderStatusFailed
			log.Printf("order %s failed to sync after %d attempts", orderID, q.orders[i].Attempts)
		}
		q.persist(ctx)
		return
	}
}

func (q *Queue) persist(ctx context.Context) {
	if err := store.SaveJSON(ctx, q.st, queueKey, q.orders); err != nil {
		// in-memory queue stays ahead of the store
		log.Printf("order queue persist error: %v", err)
	}
}
