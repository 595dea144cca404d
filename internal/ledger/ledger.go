package ledger

import (
	"context"
	"log"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/store"
)

const stateKey = "stock_deltas"

// StockLedger tracks client-local adjustments against the server-reported
// stock baseline, so the terminal can show tentative depletion before the
// pending orders are synchronized. Displayed stock is an estimate: nothing
// here reconciles deltas against fresh server figures, and a stale delta
// persists until explicitly cleared.
type StockLedger struct {
	st     store.Store
	deltas map[string]int
}

// New loads the persisted delta map, starting empty when no state exists.
func New(ctx context.Context, st store.Store) *StockLedger {
	l := &StockLedger{
		st:     st,
		deltas: make(map[string]int),
	}
	if err := store.LoadJSON(ctx, st, stateKey, &l.deltas); err != nil {
		log.Printf("stock ledger load error: %v", err)
	}
	if l.deltas == nil {
		l.deltas = make(map[string]int)
	}
	return l
}

// DisplayedStock returns the stock figure the terminal should show:
// the server baseline plus the local delta, floored at zero.
func (l *StockLedger) DisplayedStock(p *domain.Product) int {
	displayed := p.Stock + l.deltas[p.ID]
	if displayed < 0 {
		return 0
	}
	return displayed
}

// Delta returns the current net adjustment for a product.
func (l *StockLedger) Delta(productID string) int {
	return l.deltas[productID]
}

// Deltas returns a copy of the full adjustment map.
func (l *StockLedger) Deltas() map[string]int {
	out := make(map[string]int, len(l.deltas))
	for id, d := range l.deltas {
		out[id] = d
	}
	return out
}

// ApplyDelta adds amount (negative at checkout) to the product's adjustment.
// Bound checking is the cart's responsibility, not the ledger's.
func (l *StockLedger) ApplyDelta(ctx context.Context, productID string, amount int) {
	l.deltas[productID] += amount
	if l.deltas[productID] == 0 {
		delete(l.deltas, productID)
	}
	l.persist(ctx)
}

// Clear drops the adjustment for one product. This is the manual path for
// discarding a stale delta after the backend has caught up.
func (l *StockLedger) Clear(ctx context.Context, productID string) {
	delete(l.deltas, productID)
	l.persist(ctx)
}

// ClearAll drops every adjustment.
func (l *StockLedger) ClearAll(ctx context.Context) {
	l.deltas = make(map[string]int)
	l.persist(ctx)
}

func (l *StockLedger) persist(ctx context.Context) {
	if err := store.SaveJSON(ctx, l.st, stateKey, l.deltas); err != nil {
		// proceed with in-memory state only
		log.Printf("stock ledger persist error: %v", err)
	}
}
