package models

import "time"

// Order status values. Only "created" is assigned by the service;
// the column exists for downstream fulfillment flows.
const (
	OrderStatusCreated = "created"
)

// OrderDB represents an order record. TotalAmount is derived: it is
// recomputed from the order's line items inside the same transaction
// as any line-item mutation and must never be observed stale.
type OrderDB struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
