package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/enum"
	"github.com/sangkips/developerstore-sales/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Add persists a new sale together with its items
	Add(ctx context.Context, sale *entity.Sale) error
	// GetByID returns the sale with its items ordered by position, or nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// Update writes the sale header and replaces its stored item set with sale.Items
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Branch     string
	Cancelled  *bool
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     enum.SaleSortField
	SortOrder  enum.SortOrder
}
