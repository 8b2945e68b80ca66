package facades

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DreamWeaver-code/Market/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "6379")

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port.Int()),
	})
	assert.NoError(t, client.Ping(context.Background()).Err())

	teardown := func() {
		client.Close()
		container.Terminate(context.Background())
	}

	return client, teardown
}

func TestProductCacheFacade_Product(t *testing.T) {
	client, teardown := setupRedisContainer(t)
	defer teardown()

	facade := NewProductCacheFacade(client, time.Minute)
	ctx := context.Background()

	t.Run("miss yields nil without error", func(t *testing.T) {
		product, err := facade.GetProduct(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		want := &models.ProductDB{ID: 1, Name: "Yoga Mat", Price: 10.00, StockQuantity: 100}
		assert.NoError(t, facade.SetProduct(ctx, want))

		got, err := facade.GetProduct(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("entries expire after the ttl", func(t *testing.T) {
		short := NewProductCacheFacade(client, 100*time.Millisecond)
		assert.NoError(t, short.SetProduct(ctx, &models.ProductDB{ID: 2, Name: "Water Bottle", Price: 5.50}))

		time.Sleep(200 * time.Millisecond)

		got, err := short.GetProduct(ctx, 2)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestProductCacheFacade_Products(t *testing.T) {
	client, teardown := setupRedisContainer(t)
	defer teardown()

	facade := NewProductCacheFacade(client, time.Minute)
	ctx := context.Background()

	t.Run("miss yields nil without error", func(t *testing.T) {
		products, err := facade.GetProducts(ctx)
		assert.NoError(t, err)
		assert.Nil(t, products)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		want := []models.ProductDB{
			{ID: 2, Name: "Running Shoes", Price: 59.99},
			{ID: 1, Name: "Yoga Mat", Price: 10.00},
		}
		assert.NoError(t, facade.SetProducts(ctx, want))

		got, err := facade.GetProducts(ctx)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestProductCacheFacade_ClosedClient(t *testing.T) {
	client, teardown := setupRedisContainer(t)
	teardown()

	facade := NewProductCacheFacade(client, time.Minute)
	ctx := context.Background()

	_, err := facade.GetProduct(ctx, 1)
	assert.Error(t, err)

	err = facade.SetProduct(ctx, &models.ProductDB{ID: 1})
	assert.Error(t, err)
}
