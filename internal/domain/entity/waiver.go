package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Waiver is a proposed balance reduction: a flat amount, or when the amount
// is zero, a percentage of the student's fee assignments for the fee type.
// It starts unapproved and has no ledger effect until approval. Approval is
// one-way and idempotent.
type Waiver struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StudentID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	FeeTypeID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"fee_type_id"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount"`
	Percent    decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"percent"`
	Reason     string          `gorm:"size:255" json:"reason"`
	Approved   bool            `gorm:"default:false" json:"approved"`
	ApprovedBy string          `gorm:"size:80" json:"approved_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	FeeType FeeType  `gorm:"foreignKey:FeeTypeID" json:"fee_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new waiver
func (w *Waiver) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Waiver model
func (Waiver) TableName() string {
	return "waivers"
}
