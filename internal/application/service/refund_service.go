package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/schoolfin/feeledger-api/pkg/money"
)

// RefundService handles refunds against student credit balances
type RefundService struct {
	refundRepo   repository.RefundRepository
	studentRepo  repository.StudentRepository
	auditService *AuditService
}

// NewRefundService creates a new refund service
func NewRefundService(
	refundRepo repository.RefundRepository,
	studentRepo repository.StudentRepository,
	auditService *AuditService,
) *RefundService {
	return &RefundService{
		refundRepo:   refundRepo,
		studentRepo:  studentRepo,
		auditService: auditService,
	}
}

// CreateRefundInput represents the create refund input
type CreateRefundInput struct {
	StudentID uuid.UUID
	FeeTypeID *uuid.UUID
	Amount    string
	Mode      enum.PaymentMode
	Reason    string
	CreatedBy string
}

// CreateRefund pays out part of a student's credit balance. The refund row
// and the credit decrement commit together; a request exceeding the credit
// balance fails whole with ErrInsufficientCredit, never partially.
func (s *RefundService) CreateRefund(ctx context.Context, input *CreateRefundInput) (*entity.Refund, error) {
	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	amount, err := money.ParsePositive(input.Amount)
	if err != nil {
		return nil, err
	}
	if !input.Mode.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment mode")
	}

	// Early reject on the value we just read; the repository re-checks the
	// bound under the row lock, so a concurrent refund cannot slip past.
	if amount.GreaterThan(student.CreditBalance) {
		return nil, apperror.ErrInsufficientCredit
	}

	refund := &entity.Refund{
		RefundNo:  refundNumber(time.Now()),
		StudentID: input.StudentID,
		FeeTypeID: input.FeeTypeID,
		Mode:      input.Mode,
		Amount:    amount,
		Reason:    input.Reason,
		CreatedBy: input.CreatedBy,
	}

	err = s.refundRepo.CreateWithDecrement(ctx, refund)
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == http.StatusConflict {
		// Same-second collision on the timestamp number; retry once with a
		// random suffix.
		refund.ID = uuid.Nil
		refund.RefundNo = refundNumber(time.Now()) + "-" + randomSuffix()
		err = s.refundRepo.CreateWithDecrement(ctx, refund)
	}
	if err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, input.CreatedBy, "refund.create", "refund", refund.RefundNo, nil, refund, input.Reason)
	return refund, nil
}

// ListRefunds retrieves recent refunds
func (s *RefundService) ListRefunds(ctx context.Context, limit int) ([]entity.Refund, error) {
	return s.refundRepo.List(ctx, limit)
}

func refundNumber(at time.Time) string {
	return "RFND-" + at.Format("060102150405")
}

func randomSuffix() string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return "0000"
	}
	return hex.EncodeToString(b)
}
