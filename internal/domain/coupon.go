package domain

import "time"

// DiscountType selects how a coupon's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// Coupon is a read-only discount rule fetched from the backend.
// Discount is a percentage for PERCENTAGE coupons and a minor-unit
// amount for FIXED coupons.
type Coupon struct {
	Code         string       `json:"code"`
	Discount     int64        `json:"discount"`
	DiscountType DiscountType `json:"discount_type"`
	OneTime      bool         `json:"one_time"`
	Used         bool         `json:"used"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
}
