package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateWithItems(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(receipt).Error; err != nil {
			if isUniqueViolation(err) {
				return apperror.ErrDuplicateReceiptNumber
			}
			return err
		}
		for i := range items {
			items[i].ReceiptID = receipt.ID
		}
		return tx.Create(&items).Error
	})
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Items.FeeType").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, error) {
	var receipts []entity.Receipt

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})
	if params.StudentID != nil {
		query = query.Where("student_id = ?", *params.StudentID)
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 200
	}

	err := query.
		Preload("Student").
		Order("created_at DESC").
		Limit(limit).
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) TotalByModeOn(ctx context.Context, mode enum.PaymentMode, date time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("mode = ? AND DATE(created_at) = ?", mode, date.Format("2006-01-02")).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *receiptRepository) TotalByModesBetween(ctx context.Context, modes []enum.PaymentMode, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("mode IN ? AND DATE(created_at) >= ? AND DATE(created_at) <= ?",
			modes, start.Format("2006-01-02"), end.Format("2006-01-02")).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
