package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/application/event"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/pricing"
	"github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"github.com/sangkips/developerstore-sales/pkg/logger"
)

// DefaultCheckoutBranch is recorded on sales created from a cart
const DefaultCheckoutBranch = "Default Branch"

// CheckoutService turns storefront carts into sales
type CheckoutService struct {
	uowFactory repository.UnitOfWorkFactory
	publisher  event.Publisher
	log        *logger.Logger
	branch     string
	now        func() time.Time
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	uowFactory repository.UnitOfWorkFactory,
	publisher event.Publisher,
	log *logger.Logger,
	branch string,
) *CheckoutService {
	if branch == "" {
		branch = DefaultCheckoutBranch
	}
	return &CheckoutService{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log.With("service", "CheckoutService"),
		branch:     branch,
		now:        time.Now,
	}
}

// CheckoutCart creates a sale from a cart at current catalog prices. Cart
// lines are sold at list price with no tier discount.
func (s *CheckoutService) CheckoutCart(ctx context.Context, cartID uuid.UUID) (*entity.Sale, error) {
	uow := s.uowFactory.New()

	cart, err := uow.Carts().GetByID(ctx, cartID)
	if err != nil {
		return nil, persistenceError("load cart", err)
	}
	if cart == nil || len(cart.Products) == 0 {
		return nil, apperror.NewNotFoundError("Cart")
	}

	for i, line := range cart.Products {
		if err := pricing.ValidateQuantity(line.Quantity); err != nil {
			return nil, apperror.NewValidationError(err.Error(), apperror.FieldError{
				Field:   fmt.Sprintf("products[%d].quantity", i),
				Message: err.Error(),
			})
		}
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, 0, len(cart.Products))
	seen := make(map[uuid.UUID]struct{}, len(cart.Products))
	for _, line := range cart.Products {
		if _, ok := seen[line.ProductID]; !ok {
			seen[line.ProductID] = struct{}{}
			productIDs = append(productIDs, line.ProductID)
		}
	}

	products, err := uow.Products().GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, persistenceError("load products", err)
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// every line is resolved before the sale is built
	var missing []string
	for _, id := range productIDs {
		if _, ok := productMap[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) == 1 {
		return nil, apperror.NewNotFoundError("Product " + missing[0])
	}
	if len(missing) > 1 {
		return nil, apperror.NewNotFoundError("Products " + strings.Join(missing, ", "))
	}

	items := make([]SaleItemInput, len(cart.Products))
	for i, line := range cart.Products {
		items[i] = SaleItemInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: productMap[line.ProductID].Price.Round(pricing.MoneyScale),
		}
	}

	sale := newSale(cart.UserID, s.branch, listPriceItems(items), s.now())

	if err := inTransaction(ctx, uow, s.log, "checkout cart", func() error {
		return uow.Sales().Add(ctx, sale)
	}); err != nil {
		return nil, err
	}

	s.log.Info("cart checked out", "cart_id", cart.ID, "sale_id", sale.ID, "total", sale.TotalAmount.StringFixed(2))
	s.publisher.Publish(ctx, event.NewSaleCreated(sale, s.now()))
	return sale, nil
}
