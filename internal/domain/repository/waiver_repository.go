package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// WaiverRepository defines the interface for waiver data operations
type WaiverRepository interface {
	Create(ctx context.Context, waiver *entity.Waiver) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Waiver, error)
	List(ctx context.Context, limit int) ([]entity.Waiver, error)
	// Approve marks the waiver approved and decrements the student's
	// balance_amount by the reduction in one transaction. The flag flip is
	// guarded so only one of any concurrent approvals applies the
	// reduction; the others report applied == false.
	Approve(ctx context.Context, waiver *entity.Waiver, approvedBy string, reduction decimal.Decimal) (applied bool, err error)
}
