package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// FeeTypeRepository defines the interface for fee type data operations
type FeeTypeRepository interface {
	Create(ctx context.Context, feeType *entity.FeeType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeType, error)
	GetByName(ctx context.Context, name string) (*entity.FeeType, error)
	Update(ctx context.Context, feeType *entity.FeeType) error
	List(ctx context.Context, activeOnly bool) ([]entity.FeeType, error)
}

// StudentFeeRepository defines the interface for fee assignment operations
type StudentFeeRepository interface {
	Upsert(ctx context.Context, fee *entity.StudentFee) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFee, error)
	// TotalForStudentFeeType sums the assignments for one (student, fee type)
	// pair; this is the base for percentage waivers.
	TotalForStudentFeeType(ctx context.Context, studentID, feeTypeID uuid.UUID) (decimal.Decimal, error)
}
