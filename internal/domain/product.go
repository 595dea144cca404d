package domain

// Product is the read-only catalog entry fetched from the backend.
// Prices are in minor currency units.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Price        int64  `json:"price"`
	OfflinePrice *int64 `json:"offline_price,omitempty"`
	Stock        int    `json:"stock"`
	ActiveForPOS bool   `json:"active_for_pos"`
}

// EffectivePrice returns the offline override when present.
func (p *Product) EffectivePrice() int64 {
	if p.OfflinePrice != nil {
		return *p.OfflinePrice
	}
	return p.Price
}
