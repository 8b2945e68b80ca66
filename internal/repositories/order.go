package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/jmoiron/sqlx"
)

// OrderReadRepository handles order read operations. Reads run on the
// context transaction when one is present so that ownership checks and
// the subsequent mutations observe the same snapshot.
type OrderReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewOrderReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *OrderReadRepository {
	return &OrderReadRepository{db: db, txGetter: txGetter}
}

func (r *OrderReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// GetByID returns the order with the given id, or nil if none exists.
// It deliberately carries no user filter: whether the order belongs to
// the requester is decided by the service, so that a missing order and
// a foreign order stay distinguishable.
func (r *OrderReadRepository) GetByID(ctx context.Context, orderID int64) (*models.OrderDB, error) {
	const query = `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order models.OrderDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &order, query, orderID)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{orderID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &order, nil
}

// ListByUserID returns all orders owned by a user, newest first.
func (r *OrderReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.OrderDB, error) {
	const query = `
		SELECT id, user_id, total_amount, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var orders []models.OrderDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &orders, query, userID)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"rows", len(orders),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// ListByProductID returns the user's orders containing the given product,
// newest first.
func (r *OrderReadRepository) ListByProductID(ctx context.Context, productID, userID int64) ([]models.OrderDB, error) {
	const query = `
		SELECT DISTINCT o.id, o.user_id, o.total_amount, o.status, o.created_at, o.updated_at
		FROM orders o
		JOIN order_products op ON o.id = op.order_id
		WHERE op.product_id = $1 AND o.user_id = $2
		ORDER BY o.created_at DESC
	`

	var orders []models.OrderDB
	err := sqlx.SelectContext(ctx, r.executor(ctx), &orders, query, productID, userID)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{productID, userID},
		"rows", len(orders),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return orders, nil
}

// OrderWriteRepository handles order write operations.
type OrderWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewOrderWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *OrderWriteRepository {
	return &OrderWriteRepository{db: db, txGetter: txGetter}
}

func (r *OrderWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new empty order for a user with an explicit creation
// date and returns the created record. The total starts at zero.
func (r *OrderWriteRepository) Save(ctx context.Context, userID int64, createdAt time.Time) (*models.OrderDB, error) {
	const query = `
		INSERT INTO orders (user_id, created_at)
		VALUES ($1, $2)
		RETURNING id, user_id, total_amount, status, created_at, updated_at
	`

	var order models.OrderDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &order, query, userID, createdAt)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, createdAt},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &order, nil
}

// UpdateTotal recomputes an order's total as the full sum over its line
// items and persists it in a single statement. Run on the same
// transaction as the line-item mutation it follows, this keeps the
// order aggregate consistent: no reader observes a line-item change
// with a stale total.
func (r *OrderWriteRepository) UpdateTotal(ctx context.Context, orderID int64) (*models.OrderDB, error) {
	const query = `
		UPDATE orders
		SET total_amount = (
			SELECT COALESCE(SUM(quantity * unit_price), 0)
			FROM order_products
			WHERE order_id = $1
		),
		updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, total_amount, status, created_at, updated_at
	`

	var order models.OrderDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &order, query, orderID)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{orderID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &order, nil
}
