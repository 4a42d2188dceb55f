package repository

import (
	"context"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
)

// AcademicYearRepository defines the interface for academic year operations
type AcademicYearRepository interface {
	GetActive(ctx context.Context) (*entity.AcademicYear, error)
	GetByName(ctx context.Context, name string) (*entity.AcademicYear, error)
	List(ctx context.Context) ([]entity.AcademicYear, error)
	// Activate creates the year if needed and makes it the single active
	// year, clearing the flag on all others in the same transaction.
	Activate(ctx context.Context, year *entity.AcademicYear) error
}
