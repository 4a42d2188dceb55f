package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	domainRepo "github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository. Sums are always
// recomputed from the stored rows; nothing is cached.
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) ReceivableForStudent(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&entity.StudentFee{}).Where("student_id = ?", studentID))
}

func (r *ledgerRepository) ReceivedForStudent(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&entity.Receipt{}).Where("student_id = ?", studentID))
}

func (r *ledgerRepository) ReceivableTotal(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&entity.StudentFee{}))
}

func (r *ledgerRepository) ReceivedTotal(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.Model(&entity.Receipt{}))
}

func (r *ledgerRepository) sum(ctx context.Context, query *gorm.DB) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := query.WithContext(ctx).Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *ledgerRepository) IncomeByFeeType(ctx context.Context, from, to *time.Time) ([]domainRepo.FeeTypeIncome, error) {
	query := r.db.WithContext(ctx).Table("receipt_items").
		Select("fee_types.name, COALESCE(SUM(receipt_items.amount), 0)").
		Joins("JOIN fee_types ON fee_types.id = receipt_items.fee_type_id").
		Joins("JOIN receipts ON receipts.id = receipt_items.receipt_id")

	if from != nil {
		query = query.Where("receipts.created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("receipts.created_at < ?", *to)
	}

	rows, err := query.
		Group("fee_types.name").
		Order("fee_types.name ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var income []domainRepo.FeeTypeIncome
	for rows.Next() {
		var entry domainRepo.FeeTypeIncome
		if err := rows.Scan(&entry.FeeType, &entry.Amount); err != nil {
			return nil, err
		}
		income = append(income, entry)
	}
	return income, rows.Err()
}
