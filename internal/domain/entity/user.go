package entity

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a staff account. The ledger core only consumes the
// username as an opaque actor tag; authorization is enforced at the edge.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Username     string     `gorm:"size:80;uniqueIndex;not null" json:"username"`
	FullName     string     `gorm:"size:120" json:"full_name"`
	Role         string     `gorm:"size:20;default:'DataEntry'" json:"role"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Active       bool       `gorm:"default:true" json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// SetPassword hashes and stores a raw password
func (u *User) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a raw password against the stored hash
func (u *User) CheckPassword(raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(raw)) == nil
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
