package facades

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DreamWeaver-code/Market/internal/logger"
	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "product:"
	productListKey   = "products:all"
)

// ProductCacheFacade is a Redis-backed read-through cache for the
// product catalog. A miss returns (nil, nil); cache failures are
// reported to the caller, which treats them as misses.
type ProductCacheFacade struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCacheFacade creates a facade over a Redis client with the
// given entry TTL.
func NewProductCacheFacade(client *redis.Client, ttl time.Duration) *ProductCacheFacade {
	return &ProductCacheFacade{client: client, ttl: ttl}
}

// GetProduct returns the cached product with the given id, or nil on a miss.
func (f *ProductCacheFacade) GetProduct(ctx context.Context, id int64) (*models.ProductDB, error) {
	data, err := f.client.Get(ctx, fmt.Sprintf("%s%d", productKeyPrefix, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var product models.ProductDB
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

// SetProduct caches a single product.
func (f *ProductCacheFacade) SetProduct(ctx context.Context, product *models.ProductDB) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("%s%d", productKeyPrefix, product.ID)
	if err := f.client.Set(ctx, key, data, f.ttl).Err(); err != nil {
		logger.Log.Errorw("failed to cache product", "key", key, "error", err)
		return err
	}

	return nil
}

// GetProducts returns the cached product listing, or nil on a miss.
func (f *ProductCacheFacade) GetProducts(ctx context.Context) ([]models.ProductDB, error) {
	data, err := f.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var products []models.ProductDB
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}

	return products, nil
}

// SetProducts caches the full product listing.
func (f *ProductCacheFacade) SetProducts(ctx context.Context, products []models.ProductDB) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}

	if err := f.client.Set(ctx, productListKey, data, f.ttl).Err(); err != nil {
		logger.Log.Errorw("failed to cache product list", "key", productListKey, "error", err)
		return err
	}

	return nil
}
