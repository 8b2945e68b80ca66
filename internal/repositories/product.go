package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/jmoiron/sqlx"
)

// ProductReadRepository handles catalog read operations.
type ProductReadRepository struct {
	db *sqlx.DB
}

func NewProductReadRepository(db *sqlx.DB) *ProductReadRepository {
	return &ProductReadRepository{db: db}
}

// List returns all products, newest first.
func (r *ProductReadRepository) List(ctx context.Context) ([]models.ProductDB, error) {
	const query = `
		SELECT id, name, description, price, stock_quantity, category, image_url, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	var products []models.ProductDB
	err := r.db.SelectContext(ctx, &products, query)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(products),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return products, nil
}

// GetByID returns the product with the given id, or nil if none exists.
func (r *ProductReadRepository) GetByID(ctx context.Context, id int64) (*models.ProductDB, error) {
	const query = `
		SELECT id, name, description, price, stock_quantity, category, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product models.ProductDB
	err := r.db.GetContext(ctx, &product, query, id)

	logger.Log.Debugw("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &product, nil
}
