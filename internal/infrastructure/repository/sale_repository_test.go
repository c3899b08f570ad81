package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/enum"
	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"github.com/sangkips/developerstore-sales/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleRepository_AddAndGet(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))
	ctx := context.Background()

	sale := newSale("Downtown", uuid.New(), time.Now(), 45, 120, 45)
	require.NoError(t, repo.Add(ctx, sale))
	assert.NotEqual(t, uuid.Nil, sale.ID)

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 3)
	for i, item := range got.Items {
		assert.Equal(t, i, item.Position)
		assert.Equal(t, sale.Items[i].ID, item.ID)
	}
	assert.Equal(t, "210.00", got.TotalAmount.StringFixed(2))
}

func TestSaleRepository_GetMissing(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))

	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleRepository_DuplicateSaleNumberIsConflict(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))
	ctx := context.Background()

	first := newSale("Downtown", uuid.New(), time.Now(), 10)
	require.NoError(t, repo.Add(ctx, first))

	second := newSale("Downtown", uuid.New(), time.Now(), 10)
	second.SaleNumber = first.SaleNumber
	err := repo.Add(ctx, second)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestSaleRepository_UpdateReplacesItems(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))
	ctx := context.Background()

	sale := newSale("Downtown", uuid.New(), time.Now(), 10, 20, 30)
	require.NoError(t, repo.Add(ctx, sale))

	stored, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)

	// drop the middle line and append a new one
	kept := stored.Items[0]
	removed := stored.Items[1]
	stored.Items = []entity.SaleItem{kept, stored.Items[2], {
		ProductID:   uuid.New(),
		Quantity:    2,
		UnitPrice:   decimal.NewFromInt(5),
		Discount:    decimal.Zero,
		TotalAmount: decimal.NewFromInt(10),
	}}
	stored.Branch = "Uptown"
	stored.RecalculateTotal()
	require.NoError(t, repo.Update(ctx, stored))

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "Uptown", got.Branch)
	assert.Equal(t, kept.ID, got.Items[0].ID)
	assert.Nil(t, got.FindItem(removed.ID))
	assert.Equal(t, "50.00", got.TotalAmount.StringFixed(2))
	assert.Equal(t, sale.SaleNumber, got.SaleNumber)
}

func TestSaleRepository_UpdateToNoItems(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))
	ctx := context.Background()

	sale := newSale("Downtown", uuid.New(), time.Now(), 10)
	require.NoError(t, repo.Add(ctx, sale))

	sale.Items = nil
	sale.RecalculateTotal()
	require.NoError(t, repo.Update(ctx, sale))

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.TotalAmount.IsZero())
}

func TestSaleRepository_Delete(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))
	ctx := context.Background()

	sale := newSale("Downtown", uuid.New(), time.Now(), 10)
	require.NoError(t, repo.Add(ctx, sale))
	require.NoError(t, repo.Delete(ctx, sale.ID))

	got, err := repo.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaleRepository_List(t *testing.T) {
	repo := NewSaleRepository(newTestDB(t))
	ctx := context.Background()

	customer := uuid.New()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	a := newSale("Downtown", customer, base, 30)
	b := newSale("Uptown", customer, base.Add(24*time.Hour), 10)
	c := newSale("Downtown", uuid.New(), base.Add(48*time.Hour), 20)
	c.IsCancelled = true
	for _, s := range []*entity.Sale{a, b, c} {
		require.NoError(t, repo.Add(ctx, s))
	}

	t.Run("default order is newest first", func(t *testing.T) {
		sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, sales, 3)
		assert.Equal(t, c.ID, sales[0].ID)
		assert.Equal(t, a.ID, sales[2].ID)
	})

	t.Run("by customer", func(t *testing.T) {
		sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{CustomerID: &customer})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, sales, 2)
	})

	t.Run("by branch and cancelled", func(t *testing.T) {
		cancelled := false
		sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{Branch: "Downtown", Cancelled: &cancelled})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, sales, 1)
		assert.Equal(t, a.ID, sales[0].ID)
	})

	t.Run("date range", func(t *testing.T) {
		start := base.Add(12 * time.Hour)
		end := base.Add(36 * time.Hour)
		sales, _, err := repo.List(ctx, &domainRepo.SaleFilterParams{StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, sales, 1)
		assert.Equal(t, b.ID, sales[0].ID)
	})

	t.Run("sort by total ascending with paging", func(t *testing.T) {
		sales, total, err := repo.List(ctx, &domainRepo.SaleFilterParams{
			Pagination: &pagination.PaginationParams{Page: 1, PerPage: 2},
			SortBy:     enum.SaleSortByTotalAmount,
			SortOrder:  enum.SortAsc,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, sales, 2)
		assert.Equal(t, b.ID, sales[0].ID)
		assert.Equal(t, c.ID, sales[1].ID)
		require.Len(t, sales[0].Items, 1)
	})
}
