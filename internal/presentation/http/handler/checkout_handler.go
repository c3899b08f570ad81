package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/presentation/http/dto/response"
)

// CheckoutUseCase converts a cart into a sale
type CheckoutUseCase interface {
	CheckoutCart(ctx context.Context, cartID uuid.UUID) (*entity.Sale, error)
}

// CheckoutHandler handles cart checkout requests
type CheckoutHandler struct {
	checkoutService CheckoutUseCase
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles turning a cart into a sale
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	cartID, ok := parseIDParam(c, "cart_id")
	if !ok {
		response.BadRequest(c, "Invalid cart ID")
		return
	}

	sale, err := h.checkoutService.CheckoutCart(c.Request.Context(), cartID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cart checked out successfully", response.NewSaleResponse(sale))
}
