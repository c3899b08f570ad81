package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
)

// ProductRepository reads catalog prices for checkout
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1).
	// Missing ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
}
