package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/go_pos/internal/cart"
	"github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/ledger"
	"github.com/fjod/go_pos/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	st     store.Store
	ledger *ledger.StockLedger
	cart   *cart.Service
	queue  *Queue
	svc    *Service
}

func setup(t *testing.T) *fixture {
	ctx := context.Background()
	st := store.NewMemoryStore()
	l := ledger.New(ctx, st)
	c := cart.New(ctx, st, l)
	q := NewQueue(ctx, st)
	return &fixture{
		st:     st,
		ledger: l,
		cart:   c,
		queue:  q,
		svc:    NewService(ctx, st, c, l, q),
	}
}

func product(id string, price int64, stock int) *domain.Product {
	return &domain.Product{
		ID:           id,
		Name:         "Product " + id,
		SKU:          "SKU-" + id,
		Price:        price,
		Stock:        stock,
		ActiveForPOS: true,
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Checkout(context.Background(), domain.PaymentCash, "sari")

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, f.queue.Len())
}

func TestCheckout_CapturesOrderAndClearsState(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p1 := product("p1", 30000, 10)
	p2 := product("p2", 15000, 10)

	require.NoError(t, f.cart.Add(ctx, p1, 2))
	require.NoError(t, f.cart.Add(ctx, p2, 2))

	coupons := []domain.Coupon{
		{Code: "SALE10", Discount: 10, DiscountType: domain.DiscountPercentage},
	}
	_, err := f.svc.ApplyCoupon(ctx, "SALE10", coupons)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, domain.PaymentCash, "sari")
	require.NoError(t, err)

	// Snapshot: subtotal 90000, discount 9000, total 81000
	assert.Equal(t, int64(90000), order.Subtotal)
	assert.Equal(t, int64(9000), order.Discount)
	assert.Equal(t, "SALE10", order.CouponCode)
	assert.Equal(t, int64(81000), order.Total)
	assert.Equal(t, domain.OrderStatusPendingSync, order.Status)
	assert.Equal(t, "sari", order.Operator)
	assert.Equal(t, domain.PaymentCash, order.PaymentMethod)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 4, order.ItemCount())
	assert.NotEmpty(t, order.ID)

	// Stock ledger decremented by exactly the carted quantities
	assert.Equal(t, -2, f.ledger.Delta("p1"))
	assert.Equal(t, -2, f.ledger.Delta("p2"))
	assert.Equal(t, 8, f.ledger.DisplayedStock(p1))

	// Cart and coupon cleared
	assert.Zero(t, f.cart.ItemCount())
	assert.Nil(t, f.svc.AppliedCoupon())

	// Order landed in the queue
	require.Equal(t, 1, f.queue.Len())
	assert.Equal(t, order.ID, f.queue.All()[0].ID)
}

func TestCheckout_DiscountLargerThanSubtotalFloorsTotal(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, product("p1", 10000, 10), 1))

	coupons := []domain.Coupon{
		{Code: "BIG", Discount: 50000, DiscountType: domain.DiscountFixed},
	}
	_, err := f.svc.ApplyCoupon(ctx, "BIG", coupons)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, domain.PaymentCard, "sari")
	require.NoError(t, err)

	assert.Equal(t, int64(10000), order.Discount)
	assert.Zero(t, order.Total)
}

func TestCheckout_NoCoupon(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, product("p1", 10000, 10), 3))

	order, err := f.svc.Checkout(ctx, domain.PaymentQRIS, "budi")
	require.NoError(t, err)

	assert.Zero(t, order.Discount)
	assert.Empty(t, order.CouponCode)
	assert.Equal(t, int64(30000), order.Total)
}

func TestCheckout_RapidCheckoutsGetDistinctIDs(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p1 := product("p1", 1000, 1000)

	// Freeze the clock so every order carries the same timestamp
	frozen := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return frozen }

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		require.NoError(t, f.cart.Add(ctx, p1, 1))
		order, err := f.svc.Checkout(ctx, domain.PaymentCash, "sari")
		require.NoError(t, err)
		assert.False(t, seen[order.ID], "duplicate order id %s", order.ID)
		seen[order.ID] = true
	}

	assert.Equal(t, 50, f.queue.Len())
	assert.Equal(t, -50, f.ledger.Delta("p1"))
}

func TestApplyCoupon_FailureLeavesStateUntouched(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, product("p1", 10000, 10), 1))

	_, err := f.svc.ApplyCoupon(ctx, "NOPE", nil)
	assert.Error(t, err)
	assert.Nil(t, f.svc.AppliedCoupon())
	assert.Equal(t, 1, f.cart.ItemCount())
}

func TestAppliedCoupon_PersistsAcrossReload(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, product("p1", 100000, 10), 1))

	coupons := []domain.Coupon{
		{Code: "SALE10", Discount: 10, DiscountType: domain.DiscountPercentage},
	}
	_, err := f.svc.ApplyCoupon(ctx, "sale10", coupons)
	require.NoError(t, err)

	reloaded := NewService(ctx, f.st, f.cart, f.ledger, f.queue)
	applied := reloaded.AppliedCoupon()
	require.NotNil(t, applied)
	assert.Equal(t, "SALE10", applied.Coupon.Code)
	assert.Equal(t, int64(10000), applied.DiscountAmount)
}

func TestRemoveCoupon(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.cart.Add(ctx, product("p1", 100000, 10), 1))
	_, err := f.svc.ApplyCoupon(ctx, "SALE10", []domain.Coupon{
		{Code: "SALE10", Discount: 10, DiscountType: domain.DiscountPercentage},
	})
	require.NoError(t, err)

	f.svc.RemoveCoupon(ctx)

	assert.Nil(t, f.svc.AppliedCoupon())

	reloaded := NewService(ctx, f.st, f.cart, f.ledger, f.queue)
	assert.Nil(t, reloaded.AppliedCoupon())
}
