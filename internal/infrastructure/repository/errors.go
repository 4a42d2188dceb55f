package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation reports whether the error came from a unique constraint.
// Postgres and SQLite word their violations differently and GORM only
// translates some of them, so the message is checked as a fallback.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
