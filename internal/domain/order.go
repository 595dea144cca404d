package domain

import "time"

// OrderStatus represents the sync state of a locally captured sale.
type OrderStatus string

const (
	OrderStatusPendingSync OrderStatus = "PENDING_SYNC"
	OrderStatusSynced      OrderStatus = "SYNCED"
	OrderStatusFailed      OrderStatus = "FAILED"
)

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusSynced || s == OrderStatusFailed
}

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod identifies how the customer paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentQRIS PaymentMethod = "QRIS"
)

// PendingOrder is an immutable snapshot of the cart taken at checkout,
// queued locally until the backend accepts it.
type PendingOrder struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"created_at"`
	Items         []CartLine    `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	Discount      int64         `json:"discount"`
	CouponCode    string        `json:"coupon_code,omitempty"`
	Total         int64         `json:"total"`
	Operator      string        `json:"operator"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	Attempts      int           `json:"attempts,omitempty"`
}

// ItemCount returns the total units across all lines.
func (o *PendingOrder) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
