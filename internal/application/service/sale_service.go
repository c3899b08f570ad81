package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/application/event"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"github.com/sangkips/developerstore-sales/pkg/logger"
	"github.com/sangkips/developerstore-sales/pkg/pagination"
)

// SaleService handles sale-related operations
type SaleService struct {
	uowFactory repository.UnitOfWorkFactory
	publisher  event.Publisher
	log        *logger.Logger
	now        func() time.Time
}

// NewSaleService creates a new sale service
func NewSaleService(
	uowFactory repository.UnitOfWorkFactory,
	publisher event.Publisher,
	log *logger.Logger,
) *SaleService {
	return &SaleService{
		uowFactory: uowFactory,
		publisher:  publisher,
		log:        log.With("service", "SaleService"),
		now:        time.Now,
	}
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerID uuid.UUID
	Branch     string
	Items      []SaleItemInput
}

// UpdateSaleInput represents the update sale input. Items replace the
// stored lines entirely.
type UpdateSaleInput struct {
	CustomerID uuid.UUID
	Branch     string
	Items      []SaleItemInput
}

// CreateSale prices and stores a new sale
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if err := validateHeader(input.CustomerID, input.Branch); err != nil {
		return nil, err
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	sale := newSale(input.CustomerID, input.Branch, priceItems(input.Items), s.now())

	uow := s.uowFactory.New()
	if err := inTransaction(ctx, uow, s.log, "create sale", func() error {
		return uow.Sales().Add(ctx, sale)
	}); err != nil {
		return nil, err
	}

	s.log.Info("sale created", "sale_id", sale.ID, "sale_number", sale.SaleNumber, "total", sale.TotalAmount.StringFixed(2))
	s.publisher.Publish(ctx, event.NewSaleCreated(sale, s.now()))
	return sale, nil
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.uowFactory.New().Sales().GetByID(ctx, id)
	if err != nil {
		return nil, persistenceError("load sale", err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns a page of sales matching params
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params == nil {
		params = &repository.SaleFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	if params.StartDate != nil && params.EndDate != nil && params.EndDate.Before(*params.StartDate) {
		return nil, apperror.NewValidationError("end date must not be before start date")
	}

	sales, total, err := s.uowFactory.New().Sales().List(ctx, params)
	if err != nil {
		return nil, persistenceError("list sales", err)
	}

	return pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// UpdateSale replaces a sale's header and items and reprices it
func (s *SaleService) UpdateSale(ctx context.Context, saleID uuid.UUID, input *UpdateSaleInput) error {
	if err := validateHeader(input.CustomerID, input.Branch); err != nil {
		return err
	}
	if err := validateItems(input.Items); err != nil {
		return err
	}

	uow := s.uowFactory.New()
	sale, err := s.loadActiveSale(ctx, uow, saleID, "cannot modify a cancelled sale")
	if err != nil {
		return err
	}

	sale.CustomerID = input.CustomerID
	sale.Branch = input.Branch
	sale.SaleDate = s.now().UTC()
	sale.Items = priceItems(input.Items)
	sale.RecalculateTotal()

	if err := inTransaction(ctx, uow, s.log, "update sale", func() error {
		return uow.Sales().Update(ctx, sale)
	}); err != nil {
		return err
	}

	s.log.Info("sale updated", "sale_id", sale.ID, "total", sale.TotalAmount.StringFixed(2))
	s.publisher.Publish(ctx, event.NewSaleModified(sale, s.now()))
	return nil
}

// CancelSale flags a sale as cancelled. Items and totals are kept.
func (s *SaleService) CancelSale(ctx context.Context, saleID uuid.UUID) error {
	uow := s.uowFactory.New()
	sale, err := s.loadActiveSale(ctx, uow, saleID, "sale is already cancelled")
	if err != nil {
		return err
	}

	sale.IsCancelled = true

	if err := inTransaction(ctx, uow, s.log, "cancel sale", func() error {
		return uow.Sales().Update(ctx, sale)
	}); err != nil {
		return err
	}

	s.log.Info("sale cancelled", "sale_id", sale.ID)
	s.publisher.Publish(ctx, event.NewSaleCancelled(sale, s.now()))
	return nil
}

// CancelSaleItem removes one line from a sale. The remaining lines keep
// the prices they were sold at.
func (s *SaleService) CancelSaleItem(ctx context.Context, saleID, itemID uuid.UUID) error {
	uow := s.uowFactory.New()
	sale, err := s.loadActiveSale(ctx, uow, saleID, "cannot cancel items of a cancelled sale")
	if err != nil {
		return err
	}

	removed, ok := sale.RemoveItem(itemID)
	if !ok {
		return apperror.NewNotFoundError("Sale item")
	}

	if err := inTransaction(ctx, uow, s.log, "cancel sale item", func() error {
		return uow.Sales().Update(ctx, sale)
	}); err != nil {
		return err
	}

	s.log.Info("sale item cancelled", "sale_id", sale.ID, "item_id", removed.ID, "total", sale.TotalAmount.StringFixed(2))
	s.publisher.Publish(ctx, event.NewItemCancelled(sale, removed, s.now()))
	return nil
}

// loadActiveSale reads a sale outside any transaction and rejects it when
// it is missing or already cancelled.
func (s *SaleService) loadActiveSale(ctx context.Context, uow repository.UnitOfWork, saleID uuid.UUID, cancelledMsg string) (*entity.Sale, error) {
	sale, err := uow.Sales().GetByID(ctx, saleID)
	if err != nil {
		return nil, persistenceError("load sale", err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.IsCancelled {
		return nil, apperror.NewValidationError(cancelledMsg)
	}
	return sale, nil
}

func validateHeader(customerID uuid.UUID, branch string) error {
	var fieldErrors []apperror.FieldError
	if customerID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_id", Message: "customer is required"})
	}
	if branch == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "branch", Message: "branch is required"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError("invalid sale", fieldErrors...)
	}
	return nil
}
