package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
)

// StudentRepository defines the interface for student data operations
type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Student, error)
	GetByAdmissionNo(ctx context.Context, admissionNo string) (*entity.Student, error)
	Update(ctx context.Context, student *entity.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *StudentFilterParams) ([]entity.Student, error)
}

// StudentFilterParams contains filtering parameters for student queries
type StudentFilterParams struct {
	Search    string
	ClassName string
	Section   string
	// OverdueScope restricts rows to students that belong in overdue-style
	// reports: active, or discontinued and collectible.
	OverdueScope bool
	// Discontinued, when non-nil, restricts to discontinued (true) or active
	// (false) students.
	Discontinued *bool
	// Collectible, when non-nil, further restricts discontinued students.
	Collectible *bool
}
