package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"gorm.io/gorm"
)

type cashCountRepository struct {
	db *gorm.DB
}

// NewCashCountRepository creates a new cash count repository
func NewCashCountRepository(db *gorm.DB) domainRepo.CashCountRepository {
	return &cashCountRepository{db: db}
}

func (r *cashCountRepository) Create(ctx context.Context, count *entity.CashCount) error {
	return r.db.WithContext(ctx).Create(count).Error
}

func (r *cashCountRepository) List(ctx context.Context, limit int) ([]entity.CashCount, error) {
	var counts []entity.CashCount
	if limit <= 0 {
		limit = 50
	}
	err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&counts).Error
	return counts, err
}

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository
func NewSettlementRepository(db *gorm.DB) domainRepo.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) Create(ctx context.Context, batch *entity.SettlementBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *settlementRepository) List(ctx context.Context, limit int) ([]entity.SettlementBatch, error) {
	var batches []entity.SettlementBatch
	if limit <= 0 {
		limit = 50
	}
	err := r.db.WithContext(ctx).
		Preload("Rule").
		Order("start_date DESC, created_at DESC").
		Limit(limit).
		Find(&batches).Error
	return batches, err
}

type feeRuleRepository struct {
	db *gorm.DB
}

// NewFeeRuleRepository creates a new fee rule repository
func NewFeeRuleRepository(db *gorm.DB) domainRepo.FeeRuleRepository {
	return &feeRuleRepository{db: db}
}

func (r *feeRuleRepository) Create(ctx context.Context, rule *entity.PhonePeFeeRule) error {
	err := r.db.WithContext(ctx).Create(rule).Error
	if isUniqueViolation(err) {
		return apperror.NewConflictError("Fee rule already exists")
	}
	return err
}

func (r *feeRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PhonePeFeeRule, error) {
	var rule entity.PhonePeFeeRule
	err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *feeRuleRepository) List(ctx context.Context) ([]entity.PhonePeFeeRule, error) {
	var rules []entity.PhonePeFeeRule
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rules).Error
	return rules, err
}
