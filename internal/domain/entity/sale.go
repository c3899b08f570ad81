package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a priced order made of one or more sale items
type Sale struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleNumber  string          `gorm:"size:64;uniqueIndex;not null;<-:create" json:"sale_number"`
	SaleDate    time.Time       `gorm:"not null;index" json:"sale_date"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Branch      string          `gorm:"size:255;not null" json:"branch"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"total_amount"`
	IsCancelled bool            `gorm:"not null;default:false;index" json:"is_cancelled"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// RecalculateTotal sets the sale total to the sum of its item totals
func (s *Sale) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.TotalAmount)
	}
	s.TotalAmount = total
}

// FindItem returns the item with the given id, or nil
func (s *Sale) FindItem(itemID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// RemoveItem detaches an item from the sale and returns it. The remaining
// items keep their already-priced totals.
func (s *Sale) RemoveItem(itemID uuid.UUID) (SaleItem, bool) {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			removed := s.Items[i]
			s.Items = append(s.Items[:i:i], s.Items[i+1:]...)
			s.RecalculateTotal()
			return removed, true
		}
	}
	return SaleItem{}, false
}

// SaleItem is one priced line of a sale
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	Discount    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"discount"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
