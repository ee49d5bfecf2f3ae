package models

// CartLine is one product+quantity entry inside a cart snapshot.
type CartLine struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

// CartSnapshot is the complete server-authoritative representation of the
// user's in-progress order. TotalPrice is computed server-side only; the
// client treats it as opaque and never sums line prices itself.
type CartSnapshot struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	Items      []CartLine `json:"items"`
	TotalPrice float64    `json:"total_cart_price"`
}

// Line returns the cart line with the given id, or nil.
func (c *CartSnapshot) Line(lineID int64) *CartLine {
	for i := range c.Items {
		if c.Items[i].ID == lineID {
			return &c.Items[i]
		}
	}
	return nil
}
