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

type feeTypeRepository struct {
	db *gorm.DB
}

// NewFeeTypeRepository creates a new fee type repository
func NewFeeTypeRepository(db *gorm.DB) domainRepo.FeeTypeRepository {
	return &feeTypeRepository{db: db}
}

func (r *feeTypeRepository) Create(ctx context.Context, feeType *entity.FeeType) error {
	err := r.db.WithContext(ctx).Create(feeType).Error
	if isUniqueViolation(err) {
		return apperror.NewConflictError("Fee type already exists")
	}
	return err
}

func (r *feeTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FeeType, error) {
	var feeType entity.FeeType
	err := r.db.WithContext(ctx).First(&feeType, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &feeType, err
}

func (r *feeTypeRepository) GetByName(ctx context.Context, name string) (*entity.FeeType, error) {
	var feeType entity.FeeType
	err := r.db.WithContext(ctx).First(&feeType, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &feeType, err
}

func (r *feeTypeRepository) Update(ctx context.Context, feeType *entity.FeeType) error {
	return r.db.WithContext(ctx).Save(feeType).Error
}

func (r *feeTypeRepository) List(ctx context.Context, activeOnly bool) ([]entity.FeeType, error) {
	var feeTypes []entity.FeeType
	query := r.db.WithContext(ctx).Model(&entity.FeeType{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("name ASC").Find(&feeTypes).Error
	return feeTypes, err
}

type studentFeeRepository struct {
	db *gorm.DB
}

// NewStudentFeeRepository creates a new fee assignment repository
func NewStudentFeeRepository(db *gorm.DB) domainRepo.StudentFeeRepository {
	return &studentFeeRepository{db: db}
}

func (r *studentFeeRepository) Upsert(ctx context.Context, fee *entity.StudentFee) error {
	var existing entity.StudentFee
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND fee_type_id = ?", fee.StudentID, fee.FeeTypeID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(fee).Error
	}
	if err != nil {
		return err
	}
	existing.Amount = fee.Amount
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*fee = existing
	return nil
}

func (r *studentFeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StudentFee{}, "id = ?", id).Error
}

func (r *studentFeeRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]entity.StudentFee, error) {
	var fees []entity.StudentFee
	err := r.db.WithContext(ctx).
		Preload("FeeType").
		Where("student_id = ?", studentID).
		Find(&fees).Error
	return fees, err
}

func (r *studentFeeRepository) TotalForStudentFeeType(ctx context.Context, studentID, feeTypeID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&entity.StudentFee{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("student_id = ? AND fee_type_id = ?", studentID, feeTypeID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
