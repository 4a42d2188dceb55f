package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is an immutable financial document. Amount always equals the sum
// of its items; header and items are persisted as one atomic unit, so a
// receipt can never exist partially.
type Receipt struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNo string           `gorm:"size:40;uniqueIndex;not null" json:"receipt_no"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;index" json:"student_id"`
	Amount    decimal.Decimal  `gorm:"type:numeric(12,2);default:0" json:"amount"`
	Mode      enum.PaymentMode `gorm:"size:20" json:"mode"`
	Notes     string           `gorm:"size:255" json:"notes"`
	CreatedBy string           `gorm:"size:80" json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`

	// Relationships
	Student *Student      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Items   []ReceiptItem `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem is one fee-type line within a receipt. Amount is always
// positive; non-positive lines are dropped before the receipt is built.
type ReceiptItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index" json:"receipt_id"`
	FeeTypeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"fee_type_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount"`

	// Relationships
	FeeType FeeType `gorm:"foreignKey:FeeTypeID" json:"fee_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt item
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
