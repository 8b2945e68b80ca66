package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrOrderNotFound is returned when no order exists with the given id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderForbidden is returned when the order exists but belongs to
	// another user. Checked strictly after existence: a missing order is
	// never reported as forbidden.
	ErrOrderForbidden = errors.New("order belongs to another user")
)

// OrderReader defines read-only operations for orders.
type OrderReader interface {
	GetByID(ctx context.Context, orderID int64) (*models.OrderDB, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.OrderDB, error)
}

// OrderWriter defines write operations for orders.
type OrderWriter interface {
	Save(ctx context.Context, userID int64, createdAt time.Time) (*models.OrderDB, error)
	UpdateTotal(ctx context.Context, orderID int64) (*models.OrderDB, error)
}

// LineItemReader defines read-only operations for order line items.
type LineItemReader interface {
	ListByOrderID(ctx context.Context, orderID int64) ([]models.OrderProductDetailDB, error)
}

// LineItemWriter upserts line items.
type LineItemWriter interface {
	Upsert(ctx context.Context, orderID, productID int64, quantity int, unitPrice float64) (*models.OrderProductDB, error)
}

// ProductGetter fetches one product.
type ProductGetter interface {
	GetByID(ctx context.Context, id int64) (*models.ProductDB, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderService owns the order aggregate: ownership checks, line-item
// upserts, and the total-amount invariant.
type OrderService struct {
	orderReader OrderReader
	orderWriter OrderWriter
	itemReader  LineItemReader
	itemWriter  LineItemWriter
	products    ProductGetter
	kafkaWriter KafkaWriter
}

// NewOrderService creates a new OrderService. kafkaWriter may be nil;
// event publishing is then skipped.
func NewOrderService(
	orderReader OrderReader,
	orderWriter OrderWriter,
	itemReader LineItemReader,
	itemWriter LineItemWriter,
	products ProductGetter,
	kafkaWriter KafkaWriter,
) *OrderService {
	return &OrderService{
		orderReader: orderReader,
		orderWriter: orderWriter,
		itemReader:  itemReader,
		itemWriter:  itemWriter,
		products:    products,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes an order event to Kafka, fire-and-forget.
func (s *OrderService) publishEvent(ctx context.Context, event models.OrderEvent) {
	if s.kafkaWriter == nil {
		return
	}

	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().Unix()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal order event", "type", event.Type, "order_id", event.OrderID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish order event", "type", event.Type, "order_id", event.OrderID, "error", err)
	} else {
		logger.Log.Infow("order event published", "type", event.Type, "order_id", event.OrderID)
	}
}

// Create inserts a new empty order owned by userID with the given
// creation date. The total starts at zero.
func (s *OrderService) Create(ctx context.Context, userID int64, date time.Time) (*models.OrderDB, error) {
	order, err := s.orderWriter.Save(ctx, userID, date)
	if err != nil {
		logger.Log.Errorw("failed to create order", "user_id", userID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.OrderEvent{
		Type:        models.OrderEventCreated,
		OrderID:     order.ID,
		UserID:      userID,
		TotalAmount: order.TotalAmount,
	})

	return order, nil
}

// List returns all orders owned by the user, newest first.
func (s *OrderService) List(ctx context.Context, userID int64) ([]models.OrderDB, error) {
	orders, err := s.orderReader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list orders", "user_id", userID, "error", err)
		return nil, err
	}
	return orders, nil
}

// getOwned fetches an order and enforces ownership, in that order:
// a missing order yields ErrOrderNotFound even when the caller would
// also lack permission, and only an existing foreign order yields
// ErrOrderForbidden.
func (s *OrderService) getOwned(ctx context.Context, orderID, userID int64) (*models.OrderDB, error) {
	order, err := s.orderReader.GetByID(ctx, orderID)
	if err != nil {
		logger.Log.Errorw("failed to get order", "order_id", orderID, "error", err)
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

// Get returns the order with the given id if it is owned by userID.
func (s *OrderService) Get(ctx context.Context, orderID, userID int64) (*models.OrderDB, error) {
	return s.getOwned(ctx, orderID, userID)
}

// AddProduct adds quantity units of a product to an order owned by
// userID, then recomputes the order total. The checks short-circuit in
// a fixed order: order existence, ownership, product existence. The upsert
// and the total recomputation run on the caller's transaction (installed
// by the tx middleware), so the aggregate invariant
// total_amount == Σ(quantity × unit_price) holds at commit.
func (s *OrderService) AddProduct(ctx context.Context, orderID, productID int64, quantity int, userID int64) (*models.OrderProductDB, error) {
	if _, err := s.getOwned(ctx, orderID, userID); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		logger.Log.Errorw("failed to get product", "product_id", productID, "error", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	item, err := s.itemWriter.Upsert(ctx, orderID, productID, quantity, product.Price)
	if err != nil {
		logger.Log.Errorw("failed to upsert line item", "order_id", orderID, "product_id", productID, "error", err)
		return nil, err
	}

	order, err := s.orderWriter.UpdateTotal(ctx, orderID)
	if err != nil {
		logger.Log.Errorw("failed to update order total", "order_id", orderID, "error", err)
		return nil, err
	}

	s.publishEvent(ctx, models.OrderEvent{
		Type:        models.OrderEventProductAdded,
		OrderID:     orderID,
		UserID:      userID,
		ProductID:   productID,
		Quantity:    quantity,
		TotalAmount: order.TotalAmount,
	})

	return item, nil
}

// ListProducts returns the line items of an order owned by userID.
func (s *OrderService) ListProducts(ctx context.Context, orderID, userID int64) ([]models.OrderProductDetailDB, error) {
	if _, err := s.getOwned(ctx, orderID, userID); err != nil {
		return nil, err
	}

	items, err := s.itemReader.ListByOrderID(ctx, orderID)
	if err != nil {
		logger.Log.Errorw("failed to list order products", "order_id", orderID, "error", err)
		return nil, err
	}

	return items, nil
}
