package models

// Order event types published to Kafka.
const (
	OrderEventCreated      = "order_created"
	OrderEventProductAdded = "order_product_added"
)

// OrderEvent is the message published to the order-events topic after
// a successful order mutation.
type OrderEvent struct {
	EventID     string  `json:"event_id"`
	Type        string  `json:"type"`
	OrderID     int64   `json:"order_id"`
	UserID      int64   `json:"user_id"`
	ProductID   int64   `json:"product_id,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	TotalAmount float64 `json:"total_amount"`
	Timestamp   int64   `json:"timestamp"`
}
