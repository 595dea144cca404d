package checkout

import (
	"context"
	"testing"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingOrder(id string) domain.PendingOrder {
	return domain.PendingOrder{
		ID:     id,
		Total:  1000,
		Status: domain.OrderStatusPendingSync,
	}
}

func TestQueue_AppendAndPending(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(ctx, store.NewMemoryStore())

	q.Append(ctx, pendingOrder("o1"))
	q.Append(ctx, pendingOrder("o2"))

	pending := q.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "o1", pending[0].ID)
	assert.Equal(t, "o2", pending[1].ID)
}

func TestQueue_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	q := NewQueue(ctx, st)
	q.Append(ctx, pendingOrder("o1"))

	reloaded := NewQueue(ctx, st)
	require.Equal(t, 1, reloaded.Len())
	assert.Equal(t, "o1", reloaded.All()[0].ID)
}

func TestQueue_CompleteRemovesOrder(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	q := NewQueue(ctx, st)
	q.Append(ctx, pendingOrder("o1"))
	q.Append(ctx, pendingOrder("o2"))

	q.Complete(ctx, "o1")

	require.Equal(t, 1, q.Len())
	assert.Equal(t, "o2", q.All()[0].ID)

	reloaded := NewQueue(ctx, st)
	assert.Equal(t, 1, reloaded.Len())
}

func TestQueue_RecordFailureKeepsPendingUntilMax(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(ctx, store.NewMemoryStore())
	q.Append(ctx, pendingOrder("o1"))

	q.RecordFailure(ctx, "o1", 3)
	q.RecordFailure(ctx, "o1", 3)

	orders := q.All()
	require.Len(t, orders, 1)
	assert.Equal(t, 2, orders[0].Attempts)
	assert.Equal(t, domain.OrderStatusPendingSync, orders[0].Status)
	assert.Len(t, q.Pending(), 1)
}

func TestQueue_RecordFailureMarksFailedAtMax(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(ctx, store.NewMemoryStore())
	q.Append(ctx, pendingOrder("o1"))

	q.RecordFailure(ctx, "o1", 2)
	q.RecordFailure(ctx, "o1", 2)

	orders := q.All()
	require.Len(t, orders, 1)
	assert.Equal(t, domain.OrderStatusFailed, orders[0].Status)
	assert.True(t, orders[0].Status.IsTerminal())
	// Failed orders are kept for inspection but no longer pending
	assert.Empty(t, q.Pending())
	assert.Equal(t, 1, q.Len())
}

func TestQueue_UnknownOrderIsNoop(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(ctx, store.NewMemoryStore())
	q.Append(ctx, pendingOrder("o1"))

	q.Complete(ctx, "nope")
	q.RecordFailure(ctx, "nope", 1)

	assert.Equal(t, 1, q.Len())
	assert.Zero(t, q.All()[0].Attempts)
}
