package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestOrderWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	userID := seedUser(t, db, "alice")

	repo := NewOrderWriteRepository(db, nil)
	ctx := context.Background()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	order, err := repo.Save(ctx, userID, date)
	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.NotZero(t, order.ID)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, 0.0, order.TotalAmount)
	assert.Equal(t, "created", order.Status)
	assert.True(t, order.CreatedAt.Equal(date))
}

func TestOrderReadRepository_GetByID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	aliceID := seedUser(t, db, "alice")

	writeRepo := NewOrderWriteRepository(db, nil)
	readRepo := NewOrderReadRepository(db, nil)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, aliceID, time.Now())
	assert.NoError(t, err)

	t.Run("existing order", func(t *testing.T) {
		order, err := readRepo.GetByID(ctx, saved.ID)
		assert.NoError(t, err)
		assert.NotNil(t, order)
		assert.Equal(t, saved.ID, order.ID)
		assert.Equal(t, aliceID, order.UserID)
	})

	t.Run("missing order yields nil without error", func(t *testing.T) {
		order, err := readRepo.GetByID(ctx, saved.ID+1000)
		assert.NoError(t, err)
		assert.Nil(t, order)
	})

	// Ownership is decided in the service layer; the read itself
	// returns any user's order.
	t.Run("no owner filter", func(t *testing.T) {
		order, err := readRepo.GetByID(ctx, saved.ID)
		assert.NoError(t, err)
		assert.NotNil(t, order)
	})
}

func TestOrderReadRepository_ListByUserID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	aliceID := seedUser(t, db, "alice")
	bobID := seedUser(t, db, "bob")

	writeRepo := NewOrderWriteRepository(db, nil)
	readRepo := NewOrderReadRepository(db, nil)
	ctx := context.Background()

	first, err := writeRepo.Save(ctx, aliceID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	second, err := writeRepo.Save(ctx, aliceID, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	_, err = writeRepo.Save(ctx, bobID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)

	orders, err := readRepo.ListByUserID(ctx, aliceID)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderReadRepository_ListByProductID(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	aliceID := seedUser(t, db, "alice")
	bobID := seedUser(t, db, "bob")
	matID := seedProduct(t, db, "Yoga Mat", 10.00)
	shoesID := seedProduct(t, db, "Running Shoes", 59.99)

	orderWrite := NewOrderWriteRepository(db, nil)
	itemWrite := NewOrderProductWriteRepository(db, nil)
	readRepo := NewOrderReadRepository(db, nil)
	ctx := context.Background()

	aliceOrder, err := orderWrite.Save(ctx, aliceID, time.Now())
	assert.NoError(t, err)
	bobOrder, err := orderWrite.Save(ctx, bobID, time.Now())
	assert.NoError(t, err)

	_, err = itemWrite.Upsert(ctx, aliceOrder.ID, matID, 1, 10.00)
	assert.NoError(t, err)
	_, err = itemWrite.Upsert(ctx, bobOrder.ID, matID, 2, 10.00)
	assert.NoError(t, err)

	t.Run("only the user's orders", func(t *testing.T) {
		orders, err := readRepo.ListByProductID(ctx, matID, aliceID)
		assert.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, aliceOrder.ID, orders[0].ID)
	})

	t.Run("product not in any order", func(t *testing.T) {
		orders, err := readRepo.ListByProductID(ctx, shoesID, aliceID)
		assert.NoError(t, err)
		assert.Empty(t, orders)
	})
}

func TestOrderWriteRepository_UpdateTotal(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	aliceID := seedUser(t, db, "alice")
	matID := seedProduct(t, db, "Yoga Mat", 10.00)
	shoesID := seedProduct(t, db, "Running Shoes", 59.99)

	orderWrite := NewOrderWriteRepository(db, nil)
	itemWrite := NewOrderProductWriteRepository(db, nil)
	ctx := context.Background()

	order, err := orderWrite.Save(ctx, aliceID, time.Now())
	assert.NoError(t, err)

	_, err = itemWrite.Upsert(ctx, order.ID, matID, 3, 10.00)
	assert.NoError(t, err)

	updated, err := orderWrite.UpdateTotal(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 30.00, updated.TotalAmount)

	_, err = itemWrite.Upsert(ctx, order.ID, shoesID, 2, 59.99)
	assert.NoError(t, err)

	updated, err = orderWrite.UpdateTotal(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 3*10.00+2*59.99, updated.TotalAmount)

	// Adding the same product again folds into the existing line item.
	_, err = itemWrite.Upsert(ctx, order.ID, matID, 2, 10.00)
	assert.NoError(t, err)

	updated, err = orderWrite.UpdateTotal(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 5*10.00+2*59.99, updated.TotalAmount)
}

func TestOrderRepositories_TransactionScope(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	aliceID := seedUser(t, db, "alice")
	matID := seedProduct(t, db, "Yoga Mat", 10.00)

	ctx := context.Background()

	order, err := NewOrderWriteRepository(db, nil).Save(ctx, aliceID, time.Now())
	assert.NoError(t, err)

	tx, err := db.Beginx()
	assert.NoError(t, err)
	txGetter := func(context.Context) *sqlx.Tx { return tx }

	orderWrite := NewOrderWriteRepository(db, txGetter)
	itemWrite := NewOrderProductWriteRepository(db, txGetter)

	_, err = itemWrite.Upsert(ctx, order.ID, matID, 4, 10.00)
	assert.NoError(t, err)

	updated, err := orderWrite.UpdateTotal(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 40.00, updated.TotalAmount)

	// Until commit, the mutation is invisible outside the transaction.
	outside, err := NewOrderReadRepository(db, nil).GetByID(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, outside.TotalAmount)

	assert.NoError(t, tx.Commit())

	after, err := NewOrderReadRepository(db, nil).GetByID(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 40.00, after.TotalAmount)
}
