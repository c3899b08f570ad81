package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	cart := &entity.Cart{
		UserID: uuid.New(),
		Date:   time.Now().UTC(),
		Products: []entity.CartProduct{
			{ProductID: uuid.New(), Quantity: 2},
			{ProductID: uuid.New(), Quantity: 5},
		},
	}
	require.NoError(t, db.Create(cart).Error)

	repo := NewCartRepository(db)
	got, err := repo.GetByID(ctx, cart.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cart.UserID, got.UserID)
	assert.Len(t, got.Products, 2)

	missing, err := repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepository_GetByIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	keyboard := &entity.Product{Title: "Keyboard", Price: decimal.RequireFromString("49.90")}
	mouse := &entity.Product{Title: "Mouse", Price: decimal.RequireFromString("19.99")}
	require.NoError(t, db.Create(keyboard).Error)
	require.NoError(t, db.Create(mouse).Error)

	repo := NewProductRepository(db)

	got, err := repo.GetByID(ctx, mouse.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "19.99", got.Price.StringFixed(2))

	products, err := repo.GetByIDs(ctx, []uuid.UUID{keyboard.ID, mouse.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestEventLogRepository_Log(t *testing.T) {
	db := newTestDB(t)
	sink := NewEventLogRepository(db)

	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, sink.Log(context.Background(), "SaleCancelled", ts, []byte(`{"sale_number":"SALE-1"}`)))

	var logs []entity.EventLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "SaleCancelled", logs[0].EventName)
	assert.JSONEq(t, `{"sale_number":"SALE-1"}`, logs[0].Data)
	assert.True(t, logs[0].Timestamp.Equal(ts))
}

func TestIdempotencyRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewIdempotencyRepository(db)
	ctx := context.Background()
	user := uuid.New()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:          "abc",
		UserID:       user,
		Endpoint:     "/api/v1/sales",
		ResponseCode: 201,
		ResponseBody: `{"id":"1"}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key:       "old",
		UserID:    user,
		Endpoint:  "/api/v1/sales",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "abc", user)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "abc", uuid.New())
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, repo.DeleteExpired(ctx))
	expired, err := repo.GetByKey(ctx, "old", user)
	require.NoError(t, err)
	assert.Nil(t, expired)
}
