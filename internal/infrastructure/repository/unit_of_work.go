package repository

import (
	"context"

	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"gorm.io/gorm"
)

// connFunc yields the handle a repository should query through
type connFunc func(ctx context.Context) *gorm.DB

func dbConn(db *gorm.DB) connFunc {
	return func(ctx context.Context) *gorm.DB {
		return db.WithContext(ctx)
	}
}

type unitOfWork struct {
	db *gorm.DB
	tx *gorm.DB

	sales    domainRepo.SaleRepository
	carts    domainRepo.CartRepository
	products domainRepo.ProductRepository
}

// NewUnitOfWork creates a unit of work over db. Its repositories query
// through the active transaction when there is one and through db otherwise.
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	u := &unitOfWork{db: db}
	u.sales = &saleRepository{conn: u.conn}
	u.carts = &cartRepository{conn: u.conn}
	u.products = &productRepository{conn: u.conn}
	return u
}

func (u *unitOfWork) conn(ctx context.Context) *gorm.DB {
	if u.tx != nil {
		return u.tx.WithContext(ctx)
	}
	return u.db.WithContext(ctx)
}

func (u *unitOfWork) BeginTransaction(ctx context.Context) error {
	if u.tx != nil {
		return apperror.NewIllegalStateError("a transaction is already in progress")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return apperror.NewIllegalStateError("no transaction in progress")
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	return tx.Rollback().Error
}

func (u *unitOfWork) Sales() domainRepo.SaleRepository       { return u.sales }
func (u *unitOfWork) Carts() domainRepo.CartRepository       { return u.carts }
func (u *unitOfWork) Products() domainRepo.ProductRepository { return u.products }

type unitOfWorkFactory struct {
	db *gorm.DB
}

// NewUnitOfWorkFactory creates a factory handing out one unit of work per operation
func NewUnitOfWorkFactory(db *gorm.DB) domainRepo.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

func (f *unitOfWorkFactory) New() domainRepo.UnitOfWork {
	return NewUnitOfWork(f.db)
}
