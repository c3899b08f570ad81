package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
)

// CartRepository reads carts for checkout
type CartRepository interface {
	// GetByID returns the cart with its products, or nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
}
