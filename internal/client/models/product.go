package models

// Product is a catalog entry. Price and stock are authoritative on the
// server; the client only renders them.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url,omitempty"`
}

// ProductData carries the mutable product fields for admin create/update
// calls. Update calls may send a subset; zero-valued fields are omitted.
type ProductData struct {
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	StockQuantity *int     `json:"stock_quantity,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
}
