package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	conn connFunc
}

// NewProductRepository creates a product repository outside any unit of work
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{conn: dbConn(db)}
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.conn(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.conn(ctx).
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}
