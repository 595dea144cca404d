package cart

import (
	"context"
	"errors"
	"log"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/ledger"
	"github.com/fjod/go_pos/internal/store"
)

const stateKey = "cart"

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductInactive   = errors.New("product is not available for point of sale")
)

// Service holds the offline cart: at most one line per product, every line
// with quantity >= 1, bounds checked against the stock ledger before any
// mutation. State persists through the store after each change.
type Service struct {
	st     store.Store
	ledger *ledger.StockLedger
	lines  []domain.CartLine
}

// New loads any persisted cart, starting empty when no state exists.
func New(ctx context.Context, st store.Store, l *ledger.StockLedger) *Service {
	s := &Service{st: st, ledger: l}
	if err := store.LoadJSON(ctx, st, stateKey, &s.lines); err != nil {
		log.Printf("cart load error: %v", err)
	}
	return s
}

// Add inserts or increments the line for product. The whole requested
// quantity must fit within displayed stock; there is no partial add.
func (s *Service) Add(ctx context.Context, product *domain.Product, qty int) error {
	if qty <= 0 {
		return nil
	}
	if !product.ActiveForPOS {
		return ErrProductInactive
	}

	available := s.ledger.DisplayedStock(product)
	if s.Quantity(product.ID)+qty > available {
		return ErrInsufficientStock
	}

	if i := s.lineIndex(product.ID); i >= 0 {
		s.lines[i].Quantity += qty
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Price:     product.EffectivePrice(),
			Quantity:  qty,
		})
	}

	s.persist(ctx)
	return nil
}

// SetQuantity sets the line quantity exactly. Zero or negative removes the
// line; a quantity above displayed stock is rejected without mutation.
func (s *Service) SetQuantity(ctx context.Context, product *domain.Product, qty int) error {
	if qty <= 0 {
		s.Remove(ctx, product.ID)
		return nil
	}

	if qty > s.ledger.DisplayedStock(product) {
		return ErrInsufficientStock
	}

	if i := s.lineIndex(product.ID); i >= 0 {
		s.lines[i].Quantity = qty
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			SKU:       product.SKU,
			Price:     product.EffectivePrice(),
			Quantity:  qty,
		})
	}

	s.persist(ctx)
	return nil
}

// Remove deletes the line unconditionally.
func (s *Service) Remove(ctx context.Context, productID string) {
	i := s.lineIndex(productID)
	if i < 0 {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) {
	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the current cart lines.
func (s *Service) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quantity returns the quantity currently carted for a product, 0 if absent.
func (s *Service) Quantity(productID string) int {
	if i := s.lineIndex(productID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// Subtotal returns the sum of line totals.
func (s *Service) Subtotal() int64 {
	var total int64
	for _, l := range s.lines {
		total += l.LineTotal()
	}
	return total
}

// ItemCount returns the total units across all lines.
func (s *Service) ItemCount() int {
	count := 0
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

func (s *Service) lineIndex(productID string) int {
	for i, l := range s.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Service) persist(ctx context.Context) {
	if err := store.SaveJSON(ctx, s.st, stateKey, s.lines); err != nil {
		// proceed with in-memory state only
		log.Printf("cart persist error: %v", err)
	}
}
