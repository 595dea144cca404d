package domain

// CartLine is one product in the cart. At most one line exists per product;
// quantity is always >= 1, a line that would reach zero is removed instead.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// LineTotal returns price * quantity for the line.
func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}
