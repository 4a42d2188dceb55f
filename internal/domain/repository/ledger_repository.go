package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FeeTypeIncome is one row of the income-by-fee-type report
type FeeTypeIncome struct {
	FeeType string
	Amount  decimal.Decimal
}

// LedgerRepository exposes the ledger sums. Balances are never cached; each
// query recomputes from persisted rows, so read-after-write consistency is
// automatic.
type LedgerRepository interface {
	// ReceivableForStudent sums the student's fee assignments.
	ReceivableForStudent(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error)
	// ReceivedForStudent sums the student's receipts.
	ReceivedForStudent(ctx context.Context, studentID uuid.UUID) (decimal.Decimal, error)
	// ReceivableTotal and ReceivedTotal are the same sums without the
	// student filter.
	ReceivableTotal(ctx context.Context) (decimal.Decimal, error)
	ReceivedTotal(ctx context.Context) (decimal.Decimal, error)
	// IncomeByFeeType sums receipt items per fee type, optionally limited to
	// receipts created in [from, to).
	IncomeByFeeType(ctx context.Context, from, to *time.Time) ([]FeeTypeIncome, error)
}
