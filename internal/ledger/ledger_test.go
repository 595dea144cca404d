package ledger

import (
	"context"
	"testing"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayedStock_NoDelta(t *testing.T) {
	l := New(context.Background(), store.NewMemoryStore())

	p := &domain.Product{ID: "p1", Stock: 3}
	assert.Equal(t, 3, l.DisplayedStock(p))
}

func TestDisplayedStock_WithDelta(t *testing.T) {
	ctx := context.Background()
	l := New(ctx, store.NewMemoryStore())

	p := &domain.Product{ID: "p1", Stock: 10}
	l.ApplyDelta(ctx, "p1", -4)

	assert.Equal(t, 6, l.DisplayedStock(p))
	assert.Equal(t, -4, l.Delta("p1"))
}

func TestDisplayedStock_FlooredAtZero(t *testing.T) {
	ctx := context.Background()
	l := New(ctx, store.NewMemoryStore())

	p := &domain.Product{ID: "p1", Stock: 2}
	l.ApplyDelta(ctx, "p1", -5)

	assert.Equal(t, 0, l.DisplayedStock(p))
	// Delta itself is not clamped; only the displayed figure is
	assert.Equal(t, -5, l.Delta("p1"))
}

func TestApplyDelta_Accumulates(t *testing.T) {
	ctx := context.Background()
	l := New(ctx, store.NewMemoryStore())

	l.ApplyDelta(ctx, "p1", -2)
	l.ApplyDelta(ctx, "p1", -3)

	assert.Equal(t, -5, l.Delta("p1"))
}

func TestDeltas_PersistAcrossReload(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	l := New(ctx, st)
	l.ApplyDelta(ctx, "p1", -2)
	l.ApplyDelta(ctx, "p2", -7)

	reloaded := New(ctx, st)
	assert.Equal(t, -2, reloaded.Delta("p1"))
	assert.Equal(t, -7, reloaded.Delta("p2"))
}

func TestClear_DropsSingleProduct(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	l := New(ctx, st)
	l.ApplyDelta(ctx, "p1", -2)
	l.ApplyDelta(ctx, "p2", -7)

	l.Clear(ctx, "p1")

	assert.Zero(t, l.Delta("p1"))
	assert.Equal(t, -7, l.Delta("p2"))

	reloaded := New(ctx, st)
	assert.Zero(t, reloaded.Delta("p1"))
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	l := New(ctx, store.NewMemoryStore())

	l.ApplyDelta(ctx, "p1", -2)
	l.ApplyDelta(ctx, "p2", -7)
	l.ClearAll(ctx)

	assert.Empty(t, l.Deltas())
}

func TestLoad_CorruptStateStartsEmpty(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(ctx, "stock_deltas", "{broken"))

	l := New(ctx, st)
	assert.Empty(t, l.Deltas())
}
