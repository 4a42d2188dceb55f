package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/schoolfin/feeledger-api/pkg/money"
)

// WaiverService handles waiver proposal and approval
type WaiverService struct {
	waiverRepo     repository.WaiverRepository
	studentRepo    repository.StudentRepository
	feeTypeRepo    repository.FeeTypeRepository
	studentFeeRepo repository.StudentFeeRepository
	auditService   *AuditService
}

// NewWaiverService creates a new waiver service
func NewWaiverService(
	waiverRepo repository.WaiverRepository,
	studentRepo repository.StudentRepository,
	feeTypeRepo repository.FeeTypeRepository,
	studentFeeRepo repository.StudentFeeRepository,
	auditService *AuditService,
) *WaiverService {
	return &WaiverService{
		waiverRepo:     waiverRepo,
		studentRepo:    studentRepo,
		feeTypeRepo:    feeTypeRepo,
		studentFeeRepo: studentFeeRepo,
		auditService:   auditService,
	}
}

// CreateWaiverInput represents the create waiver input. Amount and Percent
// are alternatives: a positive Amount wins; otherwise Percent of the
// student's fee assignments for the fee type applies at approval time.
type CreateWaiverInput struct {
	StudentID uuid.UUID
	FeeTypeID uuid.UUID
	Amount    string
	Percent   string
	Reason    string
	CreatedBy string
}

// CreateWaiver records a proposed reduction. Creation has no ledger effect;
// only approval mutates the student.
func (s *WaiverService) CreateWaiver(ctx context.Context, input *CreateWaiverInput) (*entity.Waiver, error) {
	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	feeType, err := s.feeTypeRepo.GetByID(ctx, input.FeeTypeID)
	if err != nil {
		return nil, err
	}
	if feeType == nil {
		return nil, apperror.NewNotFoundError("Fee type")
	}

	amount, err := money.ParseNonNegative(input.Amount)
	if err != nil {
		return nil, err
	}
	percent, err := money.ParseNonNegative(input.Percent)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() && percent.IsZero() {
		return nil, apperror.NewBadRequestError("Waiver needs an amount or a percentage")
	}
	if percent.GreaterThan(money.FromInt(100)) {
		return nil, apperror.NewBadRequestError("Percentage cannot exceed 100")
	}

	waiver := &entity.Waiver{
		StudentID: input.StudentID,
		FeeTypeID: input.FeeTypeID,
		Amount:    amount,
		Percent:   percent,
		Reason:    input.Reason,
	}
	if err := s.waiverRepo.Create(ctx, waiver); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, input.CreatedBy, "waiver.create", "waiver", waiver.ID.String(), nil, waiver, input.Reason)
	return waiver, nil
}

// ApproveWaiver applies the waiver to the student's carried-forward balance.
// The reduction is a flat amount, or when the amount is zero, the percentage
// of the student's fee assignments for the waiver's fee type. Approval is
// one-way and idempotent: approving an approved waiver changes nothing.
func (s *WaiverService) ApproveWaiver(ctx context.Context, id uuid.UUID, approvedBy string) (*entity.Waiver, error) {
	waiver, err := s.waiverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if waiver == nil {
		return nil, apperror.NewNotFoundError("Waiver")
	}
	if waiver.Approved {
		return waiver, nil
	}

	reduction := waiver.Amount
	if reduction.IsZero() {
		base, err := s.studentFeeRepo.TotalForStudentFeeType(ctx, waiver.StudentID, waiver.FeeTypeID)
		if err != nil {
			return nil, err
		}
		reduction = money.Percent(base, waiver.Percent)
	}

	before := *waiver
	applied, err := s.waiverRepo.Approve(ctx, waiver, approvedBy, reduction)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent request approved it first; report the stored state.
		return s.waiverRepo.GetByID(ctx, id)
	}

	s.auditService.Record(ctx, approvedBy, "waiver.approve", "waiver", waiver.ID.String(), before, waiver, "")
	return waiver, nil
}

// ListWaivers retrieves recent waivers
func (s *WaiverService) ListWaivers(ctx context.Context, limit int) ([]entity.Waiver, error) {
	return s.waiverRepo.List(ctx, limit)
}
