package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type waiverRepository struct {
	db *gorm.DB
}

// NewWaiverRepository creates a new waiver repository
func NewWaiverRepository(db *gorm.DB) domainRepo.WaiverRepository {
	return &waiverRepository{db: db}
}

func (r *waiverRepository) Create(ctx context.Context, waiver *entity.Waiver) error {
	return r.db.WithContext(ctx).Create(waiver).Error
}

func (r *waiverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Waiver, error) {
	var waiver entity.Waiver
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("FeeType").
		First(&waiver, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &waiver, err
}

func (r *waiverRepository) List(ctx context.Context, limit int) ([]entity.Waiver, error) {
	var waivers []entity.Waiver
	if limit <= 0 {
		limit = 100
	}
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("FeeType").
		Order("created_at DESC").
		Limit(limit).
		Find(&waivers).Error
	return waivers, err
}

// Approve flips the one-way approved flag and reduces the student's carried
// balance, both in one transaction. The flag update carries an
// approved = false guard, so when two approvals race only the first one
// decrements; the loser sees zero rows updated and leaves the student
// untouched.
func (r *waiverRepository) Approve(ctx context.Context, waiver *entity.Waiver, approvedBy string, reduction decimal.Decimal) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Waiver{}).
			Where("id = ? AND approved = ?", waiver.ID, false).
			Updates(map[string]interface{}{
				"approved":    true,
				"approved_by": approvedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already approved elsewhere; nothing more to do.
			return nil
		}

		res = tx.Model(&entity.Student{}).
			Where("id = ?", waiver.StudentID).
			UpdateColumn("balance_amount", gorm.Expr("balance_amount - ?", reduction))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.NewNotFoundError("Student")
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}

	waiver.Approved = true
	if applied {
		waiver.ApprovedBy = approvedBy
	}
	return applied, nil
}
