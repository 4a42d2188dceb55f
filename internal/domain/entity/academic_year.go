package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYear is a named period such as "2024-25". Exactly one year may be
// active at a time; activation clears the flag on all others. The active
// year's name feeds receipt-number prefixing and per-year sequence scoping.
type AcademicYear struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name      string     `gorm:"size:20;uniqueIndex;not null" json:"name"`
	StartDate *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	IsActive  bool       `gorm:"default:false" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new academic year
func (a *AcademicYear) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AcademicYear model
func (AcademicYear) TableName() string {
	return "academic_years"
}
