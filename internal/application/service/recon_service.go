package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/schoolfin/feeledger-api/pkg/money"
)

// ReconService handles cash-count and digital settlement reconciliation.
// Both record variance snapshots; neither mutates the ledger.
type ReconService struct {
	cashCountRepo  repository.CashCountRepository
	settlementRepo repository.SettlementRepository
	feeRuleRepo    repository.FeeRuleRepository
	receiptRepo    repository.ReceiptRepository
	auditService   *AuditService
}

// NewReconService creates a new reconciliation service
func NewReconService(
	cashCountRepo repository.CashCountRepository,
	settlementRepo repository.SettlementRepository,
	feeRuleRepo repository.FeeRuleRepository,
	receiptRepo repository.ReceiptRepository,
	auditService *AuditService,
) *ReconService {
	return &ReconService{
		cashCountRepo:  cashCountRepo,
		settlementRepo: settlementRepo,
		feeRuleRepo:    feeRuleRepo,
		receiptRepo:    receiptRepo,
		auditService:   auditService,
	}
}

// SubmitCashCountInput represents a cash count submission
type SubmitCashCountInput struct {
	Date          time.Time
	AmountCounted string
	Notes         string
	CreatedBy     string
}

// SubmitCashCount compares counted cash against the day's Cash receipts and
// records the variance. Resubmitting the same date appends another row; the
// history of counts is kept, not overwritten.
func (s *ReconService) SubmitCashCount(ctx context.Context, input *SubmitCashCountInput) (*entity.CashCount, error) {
	counted, err := money.ParseNonNegative(input.AmountCounted)
	if err != nil {
		return nil, err
	}

	expected, err := s.receiptRepo.TotalByModeOn(ctx, enum.PaymentModeCash, input.Date)
	if err != nil {
		return nil, err
	}

	count := &entity.CashCount{
		Date:          input.Date,
		AmountCounted: counted,
		Expected:      expected,
		Variance:      counted.Sub(expected),
		Notes:         input.Notes,
	}
	if err := s.cashCountRepo.Create(ctx, count); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, input.CreatedBy, "recon.cash_count", "cash_count", count.ID.String(), nil, count, input.Notes)
	return count, nil
}

// ListCashCounts retrieves recent cash counts
func (s *ReconService) ListCashCounts(ctx context.Context, limit int) ([]entity.CashCount, error) {
	return s.cashCountRepo.List(ctx, limit)
}

// SubmitSettlementInput represents a settlement batch submission. The
// settlement window is [StartDate, StartDate+DaysGrouping-1]. Override
// percent/flat, when supplied, replace the referenced rule entirely.
type SubmitSettlementInput struct {
	Provider        string
	StartDate       time.Time
	DaysGrouping    int
	RuleID          *uuid.UUID
	OverridePercent string
	OverrideFlat    string
	BankNet         string
	CreatedBy       string
}

// SubmitSettlement reconciles digital receipts over the grouping window
// against the bank-reported net. Gross is the sum of all digital-mode
// receipts in the window; provider charges come from the override when one
// is supplied, otherwise from the referenced fee rule
// (gross * percent/100 + flat, rounded to the paisa); variance is bank net
// minus expected net.
func (s *ReconService) SubmitSettlement(ctx context.Context, input *SubmitSettlementInput) (*entity.SettlementBatch, error) {
	bankNet, err := money.ParseNonNegative(input.BankNet)
	if err != nil {
		return nil, err
	}

	daysGrouping := input.DaysGrouping
	if daysGrouping <= 0 {
		daysGrouping = 2
	}
	endDate := input.StartDate.AddDate(0, 0, daysGrouping-1)

	gross, err := s.receiptRepo.TotalByModesBetween(ctx, enum.DigitalModes(), input.StartDate, endDate)
	if err != nil {
		return nil, err
	}

	charges := money.Zero()
	switch {
	case input.OverridePercent != "" || input.OverrideFlat != "":
		overridePercent, err := money.ParseNonNegative(input.OverridePercent)
		if err != nil {
			return nil, err
		}
		overrideFlat, err := money.ParseNonNegative(input.OverrideFlat)
		if err != nil {
			return nil, err
		}
		charges = money.Percent(gross, overridePercent).Add(overrideFlat).Round(2)
	case input.RuleID != nil:
		rule, err := s.feeRuleRepo.GetByID(ctx, *input.RuleID)
		if err != nil {
			return nil, err
		}
		if rule == nil {
			return nil, apperror.NewNotFoundError("Fee rule")
		}
		charges = money.Percent(gross, rule.Percent).Add(rule.Flat).Round(2)
	}

	expectedNet := gross.Sub(charges)

	batch := &entity.SettlementBatch{
		Provider:     input.Provider,
		StartDate:    input.StartDate,
		EndDate:      endDate,
		DaysGrouping: daysGrouping,
		RuleID:       input.RuleID,
		Gross:        gross,
		Charges:      charges,
		ExpectedNet:  expectedNet,
		BankNet:      bankNet,
		Variance:     bankNet.Sub(expectedNet),
	}
	if err := s.settlementRepo.Create(ctx, batch); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, input.CreatedBy, "recon.settlement", "settlement_batch", batch.ID.String(), nil, batch, "")
	return batch, nil
}

// ListSettlements retrieves recent settlement batches
func (s *ReconService) ListSettlements(ctx context.Context, limit int) ([]entity.SettlementBatch, error) {
	return s.settlementRepo.List(ctx, limit)
}

// CreateFeeRuleInput represents a provider fee rule
type CreateFeeRuleInput struct {
	Name    string
	Percent string
	Flat    string
}

// CreateFeeRule adds a named provider fee schedule.
func (s *ReconService) CreateFeeRule(ctx context.Context, input *CreateFeeRuleInput) (*entity.PhonePeFeeRule, error) {
	percent, err := money.ParseNonNegative(input.Percent)
	if err != nil {
		return nil, err
	}
	flat, err := money.ParseNonNegative(input.Flat)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Rule name is required")
	}

	rule := &entity.PhonePeFeeRule{
		Name:    input.Name,
		Percent: percent,
		Flat:    flat,
		Active:  true,
	}
	if err := s.feeRuleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// ListFeeRules retrieves all provider fee rules
func (s *ReconService) ListFeeRules(ctx context.Context) ([]entity.PhonePeFeeRule, error) {
	return s.feeRuleRepo.List(ctx)
}
