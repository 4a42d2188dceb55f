package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// CreateWithItems persists the header and its line items as one atomic
	// unit: either all rows exist afterwards, or none do. A receipt-number
	// collision surfaces as apperror.ErrDuplicateReceiptNumber.
	CreateWithItems(ctx context.Context, receipt *entity.Receipt, items []entity.ReceiptItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Receipt, error)
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, error)
	// TotalByModeOn sums receipt amounts of one mode on a calendar date.
	TotalByModeOn(ctx context.Context, mode enum.PaymentMode, date time.Time) (decimal.Decimal, error)
	// TotalByModesBetween sums receipt amounts across modes for dates in
	// [start, end] inclusive.
	TotalByModesBetween(ctx context.Context, modes []enum.PaymentMode, start, end time.Time) (decimal.Decimal, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	StudentID *uuid.UUID
	Limit     int
}
