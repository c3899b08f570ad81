package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/application/service"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/sangkips/developerstore-sales/internal/domain/enum"
	"github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/internal/presentation/http/dto/request"
	"github.com/sangkips/developerstore-sales/internal/presentation/http/dto/response"
	"github.com/sangkips/developerstore-sales/pkg/apperror"
	"github.com/sangkips/developerstore-sales/pkg/pagination"
)

// SaleUseCases is what the sale handler needs from the sale service
type SaleUseCases interface {
	CreateSale(ctx context.Context, input *service.CreateSaleInput) (*entity.Sale, error)
	GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error)
	UpdateSale(ctx context.Context, saleID uuid.UUID, input *service.UpdateSaleInput) error
	CancelSale(ctx context.Context, saleID uuid.UUID) error
	CancelSaleItem(ctx context.Context, saleID, itemID uuid.UUID) error
}

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService SaleUseCases
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService SaleUseCases) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CustomerID: req.CustomerID,
		Branch:     req.Branch,
		Items:      toItemInputs(req.Items),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", response.NewSaleResponse(sale))
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var req request.SaleFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params, err := toFilterParams(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sales retrieved successfully", response.NewSalePage(result))
}

// Get handles getting a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", response.NewSaleResponse(sale))
}

// Update handles replacing a sale's header and items
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.saleService.UpdateSale(c.Request.Context(), id, &service.UpdateSaleInput{
		CustomerID: req.CustomerID,
		Branch:     req.Branch,
		Items:      toItemInputs(req.Items),
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", nil)
}

// Cancel handles cancelling a sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	if err := h.saleService.CancelSale(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", nil)
}

// CancelItem handles cancelling one item of a sale
func (h *SaleHandler) CancelItem(c *gin.Context) {
	saleID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.saleService.CancelSaleItem(c.Request.Context(), saleID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale item cancelled successfully", nil)
}

func toItemInputs(items []request.SaleItemRequest) []service.SaleItemInput {
	inputs := make([]service.SaleItemInput, len(items))
	for i, item := range items {
		inputs[i] = service.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return inputs
}

// toFilterParams validates query input against the closed set of
// filterable and sortable fields.
func toFilterParams(req *request.SaleFilterRequest) (*repository.SaleFilterParams, error) {
	sortBy, err := enum.ParseSaleSortField(req.SortBy)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(),
			apperror.FieldError{Field: "sort_by", Message: "unsupported sort field"})
	}
	sortOrder, err := enum.ParseSortOrder(req.SortOrder)
	if err != nil {
		return nil, apperror.NewValidationError(err.Error(),
			apperror.FieldError{Field: "sort_order", Message: "must be asc or desc"})
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Branch:     req.Branch,
		Cancelled:  req.Cancelled,
		SortBy:     sortBy,
		SortOrder:  sortOrder,
	}

	if req.CustomerID != "" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, apperror.NewValidationError("invalid customer_id",
				apperror.FieldError{Field: "customer_id", Message: "must be a UUID"})
		}
		params.CustomerID = &customerID
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return nil, apperror.NewValidationError("invalid start_date",
				apperror.FieldError{Field: "start_date", Message: "expected YYYY-MM-DD"})
		}
		params.StartDate = &start
	}

	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, apperror.NewValidationError("invalid end_date",
				apperror.FieldError{Field: "end_date", Message: "expected YYYY-MM-DD"})
		}
		// inclusive of the whole end day
		end = end.Add(24*time.Hour - time.Nanosecond)
		params.EndDate = &end
	}

	return params, nil
}
