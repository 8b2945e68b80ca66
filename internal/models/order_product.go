package models

import "time"

// OrderProductDB represents one line item within an order. UnitPrice is
// captured from the product at add time, not a live reference. At most
// one row exists per (order_id, product_id); adding the same product
// again increments Quantity.
type OrderProductDB struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"order_id" db:"order_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OrderProductDetailDB is a line item joined with catalog fields for
// listing responses.
type OrderProductDetailDB struct {
	OrderProductDB
	Name        string  `json:"name" db:"name"`
	Description string  `json:"description" db:"description"`
	ImageURL    *string `json:"image_url,omitempty" db:"image_url"`
}
