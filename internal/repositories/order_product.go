package repositories

import (
	"context"
	"strings"

	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/jmoiron/sqlx"
)

// OrderProductReadRepository handles line-item read operations.
type OrderProductReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewOrderProductReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *OrderProductReadRepository {
	return &OrderProductReadRepository{db: db, txGetter: txGetter}
}

func (r *OrderProductReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// ListByOrderID returns an order's line items joined with catalog
// fields, in insertion order.
func (r *OrderProductReadRepository) ListByOrderID(ctx context.Context, orderID int64) ([]models.OrderProductDetailDB, error) {
	const query = `
		SELECT op.id, op.order_id, op.product_id, op.quantity, op.unit_price,
		       op.created_at, op.updated_at,
		       p.name, p.description, p.image_url
		FROM order_products op
		JOIN products p ON op.product_id = p.id
		WHERE op.order_id = $1
		ORDER BY op.created_at
	`

	var items []models.OrderProductDetailDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &items, query, orderID)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{orderID},
		"rows", len(items),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return items, nil
}

// OrderProductWriteRepository handles line-item write operations.
type OrderProductWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewOrderProductWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *OrderProductWriteRepository {
	return &OrderProductWriteRepository{db: db, txGetter: txGetter}
}

// Upsert adds a product to an order in a single atomic statement: a new
// line item is inserted capturing the product's current price, and if
// one already exists for (order_id, product_id) its quantity is
// incremented instead. Returns the resulting row.
func (r *OrderProductWriteRepository) Upsert(ctx context.Context, orderID, productID int64, quantity int, unitPrice float64) (*models.OrderProductDB, error) {
	const query = `
		INSERT INTO order_products (order_id, product_id, quantity, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (order_id, product_id)
		DO UPDATE SET quantity = order_products.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, order_id, product_id, quantity, unit_price, created_at, updated_at
	`

	var executor sqlx.ExtContext = r.db
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			executor = tx
		}
	}

	var item models.OrderProductDB
	err := sqlx.GetContext(ctx, executor, &item, query, orderID, productID, quantity, unitPrice)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{orderID, productID, quantity, unitPrice},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &item, nil
}
