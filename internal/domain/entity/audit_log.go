package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records who did what to which record. Writes are fire-and-forget:
// a failed audit write never rolls back the financial transaction it
// describes.
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Actor      string    `gorm:"size:80" json:"actor"`
	Action     string    `gorm:"size:40" json:"action"`
	EntityKind string    `gorm:"size:40" json:"entity_kind"`
	RecordID   string    `gorm:"size:80" json:"record_id"`
	BeforeJSON string    `gorm:"type:text" json:"before_json,omitempty"`
	AfterJSON  string    `gorm:"type:text" json:"after_json,omitempty"`
	Reason     string    `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new audit log
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
