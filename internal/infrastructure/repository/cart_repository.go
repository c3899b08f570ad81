package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"gorm.io/gorm"
)

type cartRepository struct {
	conn connFunc
}

// NewCartRepository creates a cart repository outside any unit of work
func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{conn: dbConn(db)}
}

func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cart entity.Cart
	err := r.conn(ctx).
		Preload("Products").
		First(&cart, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
