package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FeeType is a named charge category such as "Tuition". Reference data,
// immutable once in use.
type FeeType struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new fee type
func (f *FeeType) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FeeType model
func (FeeType) TableName() string {
	return "fee_types"
}

// StudentFee assigns an expected amount to a (student, fee type) pair. The
// sum of a student's assignments is their total receivable.
type StudentFee struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID       `gorm:"type:uuid;not null;index" json:"student_id"`
	FeeTypeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"fee_type_id"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relationships
	FeeType FeeType `gorm:"foreignKey:FeeTypeID" json:"fee_type,omitempty"`
}

// BeforeCreate generates a UUID before creating a new fee assignment
func (f *StudentFee) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StudentFee model
func (StudentFee) TableName() string {
	return "student_fees"
}
