package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Setting keys used by the numbering protocol and general configuration.
const (
	SettingReceiptNumberMode = "receipt_number_mode"
	SettingReceiptPrefix     = "receipt_prefix"
	SettingReceiptSeq        = "receipt_seq"
	SettingSchoolName        = "school_name"
)

// SystemSetting is a durable key/value configuration row. Reads and writes go
// straight to storage; there is no caching layer.
type SystemSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key       string    `gorm:"size:80;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"size:400" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new setting
func (s *SystemSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SystemSetting model
func (SystemSetting) TableName() string {
	return "system_settings"
}

// ReceiptSequence is the per-period receipt counter. It is mutated only by an
// atomic reserve-and-increment; NextValue holds the next unissued number.
// Issued numbers are never reused, so a failed receipt leaves a gap.
type ReceiptSequence struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	YearKey   string    `gorm:"size:40;uniqueIndex;not null" json:"year_key"`
	NextValue int64     `gorm:"not null" json:"next_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new sequence row
func (s *ReceiptSequence) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptSequence model
func (ReceiptSequence) TableName() string {
	return "receipt_sequences"
}
