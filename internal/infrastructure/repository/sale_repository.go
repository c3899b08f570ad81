package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/enum"
	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	conn connFunc
}

// NewSaleRepository creates a sale repository outside any unit of work
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{conn: dbConn(db)}
}

func itemsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "position"}})
}

func (r *saleRepository) Add(ctx context.Context, sale *entity.Sale) error {
	for i := range sale.Items {
		sale.Items[i].Position = i
	}
	return mapError("create sale", r.conn(ctx).Create(sale).Error)
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.conn(ctx).
		Preload("Items", itemsByPosition).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	db := r.conn(ctx)

	if err := db.Omit(clause.Associations).Save(sale).Error; err != nil {
		return mapError("update sale", err)
	}

	keep := make([]uuid.UUID, 0, len(sale.Items))
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		sale.Items[i].Position = i
		if sale.Items[i].ID != uuid.Nil {
			keep = append(keep, sale.Items[i].ID)
		}
	}

	stale := db.Where("sale_id = ?", sale.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&entity.SaleItem{}).Error; err != nil {
		return err
	}

	if len(sale.Items) == 0 {
		return nil
	}
	return mapError("update sale items", db.
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&sale.Items).Error)
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "id = ?", id).Error
	})
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	if params == nil {
		params = &domainRepo.SaleFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	query := r.conn(ctx).Model(&entity.Sale{}).Scopes(saleFilters(params))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items", itemsByPosition).
		Scopes(saleOrder(params.SortBy, params.SortOrder)).
		Find(&sales).Error

	return sales, total, err
}

func saleFilters(params *domainRepo.SaleFilterParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.CustomerID != nil {
			db = db.Where("customer_id = ?", *params.CustomerID)
		}
		if params.Branch != "" {
			db = db.Where("branch = ?", params.Branch)
		}
		if params.Cancelled != nil {
			db = db.Where("is_cancelled = ?", *params.Cancelled)
		}
		if params.StartDate != nil {
			db = db.Where("sale_date >= ?", *params.StartDate)
		}
		if params.EndDate != nil {
			db = db.Where("sale_date <= ?", *params.EndDate)
		}
		return db
	}
}

// saleOrder only ever orders by a column from the closed sort enum, with
// the id as a stable tiebreaker.
func saleOrder(field enum.SaleSortField, order enum.SortOrder) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if field == "" {
			field = enum.SaleSortBySaleDate
		}
		desc := order != enum.SortAsc
		return db.
			Order(clause.OrderByColumn{Column: clause.Column{Name: field.Column()}, Desc: desc}).
			Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}
}
