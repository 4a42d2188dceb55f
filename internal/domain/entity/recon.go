package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashCount is one cash reconciliation submission: counted cash against the
// day's expected Cash receipts. Repeat submissions for the same date append
// rows; there is no upsert-by-date.
type CashCount struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Date          time.Time       `gorm:"type:date;not null" json:"date"`
	AmountCounted decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount_counted"`
	Expected      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"expected"`
	Variance      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"variance"`
	Notes         string          `gorm:"size:255" json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new cash count
func (c *CashCount) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashCount model
func (CashCount) TableName() string {
	return "cash_counts"
}

// PhonePeFeeRule is a named provider fee schedule applied to UPI settlement
// batches: charges = gross * percent/100 + flat.
type PhonePeFeeRule struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name      string          `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Percent   decimal.Decimal `gorm:"type:numeric(6,3);default:0" json:"percent"`
	Flat      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"flat"`
	Active    bool            `gorm:"default:true" json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new fee rule
func (r *PhonePeFeeRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PhonePeFeeRule model
func (PhonePeFeeRule) TableName() string {
	return "phonepe_fee_rules"
}

// SettlementBatch reconciles digital receipts over a period against the
// bank-reported net. One row per submission.
type SettlementBatch struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Provider     string          `gorm:"size:40" json:"provider"`
	StartDate    time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time       `gorm:"type:date;not null" json:"end_date"`
	DaysGrouping int             `gorm:"default:2" json:"days_grouping"`
	RuleID       *uuid.UUID      `gorm:"type:uuid" json:"rule_id,omitempty"`
	Gross        decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"gross"`
	Charges      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"charges"`
	ExpectedNet  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"expected_net"`
	BankNet      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"bank_net"`
	Variance     decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"variance"`
	CreatedAt    time.Time       `json:"created_at"`

	// Relationships
	Rule *PhonePeFeeRule `gorm:"foreignKey:RuleID" json:"rule,omitempty"`
}

// BeforeCreate generates a UUID before creating a new settlement batch
func (b *SettlementBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SettlementBatch model
func (SettlementBatch) TableName() string {
	return "settlement_batches"
}
