package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Student is the party whose fees are tracked. BalanceAmount is the opening
// balance carried forward (reduced by waiver approvals); CreditBalance holds
// unallocated funds available for refund. Both are distinct from the derived
// receivable/received balance and interact additively when reporting total
// owed.
type Student struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AdmissionNo   string          `gorm:"size:40;uniqueIndex;not null" json:"admission_no"`
	Name          string          `gorm:"size:120;not null" json:"name"`
	ClassName     string          `gorm:"size:50" json:"class_name"`
	Section       string          `gorm:"size:20" json:"section"`
	ParentName    string          `gorm:"size:120" json:"parent_name"`
	Phone         string          `gorm:"size:40" json:"phone"`
	Email         string          `gorm:"size:120" json:"email"`
	Discontinued  *time.Time      `gorm:"type:date" json:"discontinued,omitempty"`
	Collectible   bool            `gorm:"default:false" json:"collectible"`
	BalanceAmount decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"balance_amount"`
	CreditBalance decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"credit_balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relationships
	Fees     []StudentFee `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"fees,omitempty"`
	Receipts []Receipt    `gorm:"foreignKey:StudentID" json:"receipts,omitempty"`
}

// IsDiscontinued reports whether the student has left. A nil date means the
// student is active.
func (s *Student) IsDiscontinued() bool {
	return s.Discontinued != nil
}

// InOverdueReports reports whether the student belongs in overdue-style
// listings: active students always, discontinued students only when marked
// collectible.
func (s *Student) InOverdueReports() bool {
	return !s.IsDiscontinued() || s.Collectible
}

// BeforeCreate generates a UUID before creating a new student
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Student model
func (Student) TableName() string {
	return "students"
}
