package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Refund records a payout against a student's credit balance. Immutable once
// created; the amount never exceeds the credit balance at creation time, and
// the credit decrement commits in the same transaction as the row.
type Refund struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	RefundNo  string           `gorm:"size:40;uniqueIndex;not null" json:"refund_no"`
	StudentID uuid.UUID        `gorm:"type:uuid;not null;index" json:"student_id"`
	FeeTypeID *uuid.UUID       `gorm:"type:uuid;index" json:"fee_type_id,omitempty"`
	Mode      enum.PaymentMode `gorm:"size:20" json:"mode"`
	Amount    decimal.Decimal  `gorm:"type:numeric(12,2);default:0" json:"amount"`
	Reason    string           `gorm:"size:255" json:"reason"`
	CreatedBy string           `gorm:"size:80" json:"created_by"`
	CreatedAt time.Time        `json:"created_at"`

	// Relationships
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

// BeforeCreate generates a UUID before creating a new refund
func (r *Refund) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Refund model
func (Refund) TableName() string {
	return "refunds"
}
