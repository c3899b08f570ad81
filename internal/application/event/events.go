// Package event announces sale state changes to the handlers registered at
// startup. Publication happens only after the owning transaction committed.
package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/developerstore-sales/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	SaleCreatedName   = "SaleCreated"
	SaleModifiedName  = "SaleModified"
	SaleCancelledName = "SaleCancelled"
	ItemCancelledName = "ItemCancelled"
)

// Event is a sale state transition
type Event interface {
	Name() string
	OccurredAt() time.Time
	SaleKey() uuid.UUID
}

// SaleCreated is raised once a new sale has been committed
type SaleCreated struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	SaleDate    time.Time       `json:"sale_date"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Branch      string          `json:"branch"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	Timestamp   time.Time       `json:"timestamp"`
}

func NewSaleCreated(sale *entity.Sale, at time.Time) *SaleCreated {
	return &SaleCreated{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		SaleDate:    sale.SaleDate,
		CustomerID:  sale.CustomerID,
		Branch:      sale.Branch,
		TotalAmount: sale.TotalAmount,
		ItemCount:   len(sale.Items),
		Timestamp:   at.UTC(),
	}
}

func (e *SaleCreated) Name() string          { return SaleCreatedName }
func (e *SaleCreated) OccurredAt() time.Time { return e.Timestamp }
func (e *SaleCreated) SaleKey() uuid.UUID    { return e.SaleID }

// SaleModified is raised after a sale's items or header were replaced
type SaleModified struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	SaleDate    time.Time       `json:"sale_date"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	Branch      string          `json:"branch"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	Timestamp   time.Time       `json:"timestamp"`
}

func NewSaleModified(sale *entity.Sale, at time.Time) *SaleModified {
	return &SaleModified{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		SaleDate:    sale.SaleDate,
		CustomerID:  sale.CustomerID,
		Branch:      sale.Branch,
		TotalAmount: sale.TotalAmount,
		ItemCount:   len(sale.Items),
		Timestamp:   at.UTC(),
	}
}

func (e *SaleModified) Name() string          { return SaleModifiedName }
func (e *SaleModified) OccurredAt() time.Time { return e.Timestamp }
func (e *SaleModified) SaleKey() uuid.UUID    { return e.SaleID }

// SaleCancelled is raised when a sale is cancelled as a whole
type SaleCancelled struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	SaleDate    time.Time       `json:"sale_date"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CancelledAt time.Time       `json:"cancelled_at"`
}

func NewSaleCancelled(sale *entity.Sale, at time.Time) *SaleCancelled {
	return &SaleCancelled{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		SaleDate:    sale.SaleDate,
		CustomerID:  sale.CustomerID,
		TotalAmount: sale.TotalAmount,
		CancelledAt: at.UTC(),
	}
}

func (e *SaleCancelled) Name() string          { return SaleCancelledName }
func (e *SaleCancelled) OccurredAt() time.Time { return e.CancelledAt }
func (e *SaleCancelled) SaleKey() uuid.UUID    { return e.SaleID }

// ItemCancelled is raised when one line is removed from a sale. SaleTotal
// is the sale total after the removal.
type ItemCancelled struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	SaleTotal   decimal.Decimal `json:"sale_total"`
	CancelledAt time.Time       `json:"cancelled_at"`
}

func NewItemCancelled(sale *entity.Sale, item entity.SaleItem, at time.Time) *ItemCancelled {
	return &ItemCancelled{
		SaleID:      sale.ID,
		SaleNumber:  sale.SaleNumber,
		ItemID:      item.ID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalAmount: item.TotalAmount,
		SaleTotal:   sale.TotalAmount,
		CancelledAt: at.UTC(),
	}
}

func (e *ItemCancelled) Name() string          { return ItemCancelledName }
func (e *ItemCancelled) OccurredAt() time.Time { return e.CancelledAt }
func (e *ItemCancelled) SaleKey() uuid.UUID    { return e.SaleID }

// Envelope is the wire shape used when an event leaves the process
type Envelope struct {
	Event      string    `json:"event"`
	SaleID     uuid.UUID `json:"sale_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       Event     `json:"data"`
}

func NewEnvelope(e Event) Envelope {
	return Envelope{
		Event:      e.Name(),
		SaleID:     e.SaleKey(),
		OccurredAt: e.OccurredAt(),
		Data:       e,
	}
}
