package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores processed requests to prevent duplicates. It guards
// the receipt and refund POST endpoints against accidental double submission
// from a cashier workstation.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Key          string    `gorm:"uniqueIndex;size:255;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint     string    `gorm:"size:255;not null"`
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}
