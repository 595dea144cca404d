package coupon

import (
	"errors"
	"strings"
	"time"

	"github.com/fjod/go_pos/internal/domain"
)

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponAlreadyUsed = errors.New("coupon has already been used")
	ErrCouponExpired     = errors.New("coupon has expired")
)

// Applied is the result of a successful coupon evaluation.
type Applied struct {
	Coupon         domain.Coupon `json:"coupon"`
	DiscountAmount int64         `json:"discount_amount"`
}

// Apply matches code against coupons (case-insensitive, exact), validates
// one-time-use and expiry, and computes the discount for subtotal.
// The discount is never negative and never exceeds the subtotal.
func Apply(code string, coupons []domain.Coupon, subtotal int64, now time.Time) (*Applied, error) {
	var match *domain.Coupon
	for i := range coupons {
		if strings.EqualFold(coupons[i].Code, code) {
			match = &coupons[i]
			break
		}
	}
	if match == nil {
		return nil, ErrCouponNotFound
	}

	if match.OneTime && match.Used {
		return nil, ErrCouponAlreadyUsed
	}
	if match.ExpiresAt != nil && match.ExpiresAt.Before(now) {
		return nil, ErrCouponExpired
	}

	return &Applied{
		Coupon:         *match,
		DiscountAmount: Discount(*match, subtotal),
	}, nil
}

// Discount computes the capped discount amount for a coupon and subtotal.
// Percentage discounts round half-up in minor units.
func Discount(c domain.Coupon, subtotal int64) int64 {
	var amount int64
	switch c.DiscountType {
	case domain.DiscountPercentage:
		amount = (subtotal*c.Discount + 50) / 100
	case domain.DiscountFixed:
		amount = c.Discount
	}

	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}
