package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the full schema. A
// single connection keeps every query on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func newSale(branch string, customerID uuid.UUID, saleDate time.Time, totals ...int64) *entity.Sale {
	sale := &entity.Sale{
		SaleNumber: "SALE-" + uuid.NewString(),
		SaleDate:   saleDate.UTC(),
		CustomerID: customerID,
		Branch:     branch,
	}
	for _, total := range totals {
		sale.Items = append(sale.Items, entity.SaleItem{
			ProductID:   uuid.New(),
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(total),
			Discount:    decimal.Zero,
			TotalAmount: decimal.NewFromInt(total),
		})
	}
	sale.RecalculateTotal()
	return sale
}
