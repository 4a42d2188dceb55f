package repository

import (
	"context"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
)

// RefundRepository defines the interface for refund data operations
type RefundRepository interface {
	// CreateWithDecrement persists the refund and decrements the student's
	// credit_balance in one transaction, re-checking the credit bound under
	// the lock. Insufficient credit surfaces as
	// apperror.ErrInsufficientCredit.
	CreateWithDecrement(ctx context.Context, refund *entity.Refund) error
	List(ctx context.Context, limit int) ([]entity.Refund, error)
}
