package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/fjod/go_pos/internal/cart"
	"github.com/fjod/go_pos/internal/coupon"
	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/ledger"
	"github.com/fjod/go_pos/internal/store"
	"github.com/google/uuid"
)

const couponKey = "applied_coupon"

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// Service captures checkouts: it snapshots the cart and applied coupon into
// an immutable PendingOrder, queues it, decrements the stock ledger, and
// clears the cart. The applied coupon is terminal state too and persists
// across restarts until checkout or removal.
type Service struct {
	st      store.Store
	cart    *cart.Service
	ledger  *ledger.StockLedger
	queue   *Queue
	applied *coupon.Applied

	newID func() string
	now   func() time.Time
}

// NewService loads any persisted applied coupon and wires the checkout flow.
func NewService(ctx context.Context, st store.Store, c *cart.Service, l *ledger.StockLedger, q *Queue) *Service {
	s := &Service{
		st:     st,
		cart:   c,
		ledger: l,
		queue:  q,
		newID:  uuid.NewString,
		now:    time.Now,
	}
	if err := store.LoadJSON(ctx, st, couponKey, &s.applied); err != nil {
		log.Printf("applied coupon load error: %v", err)
	}
	return s
}

// ApplyCoupon evaluates code against the known coupons and the current
// subtotal, and remembers the result for the next checkout.
func (s *Service) ApplyCoupon(ctx context.Context, code string, coupons []domain.Coupon) (*coupon.Applied, error) {
	applied, err := coupon.Apply(code, coupons, s.cart.Subtotal(), s.now())
	if err != nil {
		return nil, err
	}

	s.applied = applied
	s.persistCoupon(ctx)
	return applied, nil
}

// RemoveCoupon drops the applied coupon reference. It does not un-mark
// server-side usage; that is the backend's concern.
func (s *Service) RemoveCoupon(ctx context.Context) {
	s.applied = nil
	s.persistCoupon(ctx)
}

// AppliedCoupon returns the currently applied coupon, nil when none.
func (s *Service) AppliedCoupon() *coupon.Applied {
	return s.applied
}

// Checkout snapshots the cart into a PendingOrder, appends it to the sync
// queue, applies the stock deltas, and clears cart and coupon. The caller
// sees either the full effect or, on an empty cart, none.
func (s *Service) Checkout(ctx context.Context, method domain.PaymentMethod, operator string) (*domain.PendingOrder, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := s.cart.Subtotal()
	var discount int64
	var couponCode string
	if s.applied != nil {
		discount = s.applied.DiscountAmount
		couponCode = s.applied.Coupon.Code
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	order := domain.PendingOrder{
		ID:            s.newID(),
		CreatedAt:     s.now(),
		Items:         lines,
		Subtotal:      subtotal,
		Discount:      discount,
		CouponCode:    couponCode,
		Total:         total,
		Operator:      operator,
		PaymentMethod: method,
		Status:        domain.OrderStatusPendingSync,
	}

	s.queue.Append(ctx, order)

	for _, line := range lines {
		s.ledger.ApplyDelta(ctx, line.ProductID, -line.Quantity)
	}

	s.cart.Clear(ctx)
	s.applied = nil
	s.persistCoupon(ctx)

	return &order, nil
}

func (s *Service) persistCoupon(ctx context.Context) {
	if s.applied == nil {
		if err := s.st.Delete(ctx, couponKey); err != nil {
			log.Printf("applied coupon delete error: %v", err)
		}
		return
	}
	if err := store.SaveJSON(ctx, s.st, couponKey, s.applied); err != nil {
		log.Printf("applied coupon persist error: %v", err)
	}
}
