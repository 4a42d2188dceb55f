package repository

import (
	"context"

	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"gorm.io/gorm"
)

type refundRepository struct {
	db *gorm.DB
}

// NewRefundRepository creates a new refund repository
func NewRefundRepository(db *gorm.DB) domainRepo.RefundRepository {
	return &refundRepository{db: db}
}

// CreateWithDecrement re-checks the credit bound inside the transaction with
// a guarded single-statement decrement, so a racing refund cannot overdraw
// the credit balance.
func (r *refundRepository) CreateWithDecrement(ctx context.Context, refund *entity.Refund) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Student{}).
			Where("id = ? AND credit_balance >= ?", refund.StudentID, refund.Amount).
			UpdateColumn("credit_balance", gorm.Expr("credit_balance - ?", refund.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrInsufficientCredit
		}

		if err := tx.Create(refund).Error; err != nil {
			if isUniqueViolation(err) {
				return apperror.NewConflictError("Refund number already exists")
			}
			return err
		}
		return nil
	})
}

func (r *refundRepository) List(ctx context.Context, limit int) ([]entity.Refund, error) {
	var refunds []entity.Refund
	if limit <= 0 {
		limit = 200
	}
	err := r.db.WithContext(ctx).
		Preload("Student").
		Order("created_at DESC").
		Limit(limit).
		Find(&refunds).Error
	return refunds, err
}
