package services

import (
	"context"
	"errors"

	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
)

var (
	// ErrProductNotFound is returned when a referenced product does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// ProductReader defines read-only operations for the catalog.
type ProductReader interface {
	List(ctx context.Context) ([]models.ProductDB, error)
	GetByID(ctx context.Context, id int64) (*models.ProductDB, error)
}

// ProductCache caches catalog reads. A miss is (nil, nil).
type ProductCache interface {
	GetProduct(ctx context.Context, id int64) (*models.ProductDB, error)
	SetProduct(ctx context.Context, product *models.ProductDB) error
	GetProducts(ctx context.Context) ([]models.ProductDB, error)
	SetProducts(ctx context.Context, products []models.ProductDB) error
}

// ProductOrdersLister lists a user's orders containing a product.
type ProductOrdersLister interface {
	ListByProductID(ctx context.Context, productID, userID int64) ([]models.OrderDB, error)
}

// ProductService serves catalog reads through the cache and resolves
// product-to-orders lookups.
type ProductService struct {
	reader ProductReader
	cache  ProductCache
	orders ProductOrdersLister
}

// NewProductService creates a new ProductService. cache may be nil, in
// which case every read goes to the store.
func NewProductService(reader ProductReader, cache ProductCache, orders ProductOrdersLister) *ProductService {
	return &ProductService{
		reader: reader,
		cache:  cache,
		orders: orders,
	}
}

// List returns all products, consulting the cache first.
func (s *ProductService) List(ctx context.Context) ([]models.ProductDB, error) {
	if s.cache != nil {
		if products, err := s.cache.GetProducts(ctx); err == nil && products != nil {
			return products, nil
		} else if err != nil {
			logger.Log.Warnw("product list cache read failed", "error", err)
		}
	}

	products, err := s.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list products", "error", err)
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetProducts(ctx, products); err != nil {
			logger.Log.Warnw("product list cache write failed", "error", err)
		}
	}

	return products, nil
}

// Get returns one product by id, consulting the cache first. Fails with
// ErrProductNotFound if no such product exists.
func (s *ProductService) Get(ctx context.Context, id int64) (*models.ProductDB, error) {
	if s.cache != nil {
		if product, err := s.cache.GetProduct(ctx, id); err == nil && product != nil {
			return product, nil
		} else if err != nil {
			logger.Log.Warnw("product cache read failed", "id", id, "error", err)
		}
	}

	product, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get product", "id", id, "error", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			logger.Log.Warnw("product cache write failed", "id", id, "error", err)
		}
	}

	return product, nil
}

// OrdersWithProduct returns the user's orders containing the product.
// The product must exist even for an authenticated caller; otherwise
// ErrProductNotFound.
func (s *ProductService) OrdersWithProduct(ctx context.Context, productID, userID int64) ([]models.OrderDB, error) {
	product, err := s.reader.GetByID(ctx, productID)
	if err != nil {
		logger.Log.Errorw("failed to get product", "id", productID, "error", err)
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	orders, err := s.orders.ListByProductID(ctx, productID, userID)
	if err != nil {
		logger.Log.Errorw("failed to list orders for product", "product_id", productID, "user_id", userID, "error", err)
		return nil, err
	}

	return orders, nil
}
