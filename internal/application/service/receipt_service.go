package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/enum"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/schoolfin/feeledger-api/pkg/money"
)

// ReceiptService handles receipt issuance and lookup
type ReceiptService struct {
	receiptRepo  repository.ReceiptRepository
	studentRepo  repository.StudentRepository
	feeTypeRepo  repository.FeeTypeRepository
	numbering    *NumberingService
	auditService *AuditService
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	studentRepo repository.StudentRepository,
	feeTypeRepo repository.FeeTypeRepository,
	numbering *NumberingService,
	auditService *AuditService,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo:  receiptRepo,
		studentRepo:  studentRepo,
		feeTypeRepo:  feeTypeRepo,
		numbering:    numbering,
		auditService: auditService,
	}
}

// ReceiptLineInput is one fee-type amount on the receipt form. Amounts come
// in as strings; blank fields parse as zero and are dropped.
type ReceiptLineInput struct {
	FeeTypeID uuid.UUID
	Amount    string
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	StudentID uuid.UUID
	Lines     []ReceiptLineInput
	Mode      enum.PaymentMode
	Notes     string
	// ManualNo carries the caller-supplied number in manual numbering mode;
	// ignored in auto mode.
	ManualNo  string
	CreatedBy string
}

// CreateReceipt validates the lines, assigns a receipt number per the
// configured numbering mode, and persists the receipt atomically with its
// items. In auto mode the counter advances even if the final persist fails,
// so a rejected receipt can leave a gap in the sequence; it can never leave
// orphaned line items.
func (s *ReceiptService) CreateReceipt(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	student, err := s.studentRepo.GetByID(ctx, input.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	if !input.Mode.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment mode")
	}

	// Drop blank and non-positive lines before anything irreversible.
	items := make([]entity.ReceiptItem, 0, len(input.Lines))
	total := money.Zero()
	for _, line := range input.Lines {
		amount, err := money.Parse(line.Amount)
		if err != nil {
			return nil, err
		}
		if !amount.IsPositive() {
			continue
		}

		feeType, err := s.feeTypeRepo.GetByID(ctx, line.FeeTypeID)
		if err != nil {
			return nil, err
		}
		if feeType == nil {
			return nil, apperror.NewNotFoundError("Fee type")
		}

		items = append(items, entity.ReceiptItem{FeeTypeID: line.FeeTypeID, Amount: amount})
		total = total.Add(amount)
	}
	if len(items) == 0 {
		return nil, apperror.ErrEmptyReceipt
	}

	mode, err := s.numbering.Mode(ctx)
	if err != nil {
		return nil, err
	}

	var receiptNo string
	if mode == enum.NumberingModeManual {
		receiptNo = strings.TrimSpace(input.ManualNo)
		if receiptNo == "" {
			return nil, apperror.ErrMissingReceiptNumber
		}
	} else {
		// Number reservation is the point of no return: the counter value is
		// consumed whether or not the persist below succeeds.
		receiptNo, err = s.numbering.Next(ctx)
		if err != nil {
			return nil, err
		}
	}

	receipt := &entity.Receipt{
		ReceiptNo: receiptNo,
		StudentID: input.StudentID,
		Amount:    total,
		Mode:      input.Mode,
		Notes:     input.Notes,
		CreatedBy: input.CreatedBy,
	}

	if err := s.receiptRepo.CreateWithItems(ctx, receipt, items); err != nil {
		return nil, err
	}

	s.auditService.Record(ctx, input.CreatedBy, "receipt.create", "receipt", receipt.ReceiptNo, nil, receipt, "")

	receipt.Items = items
	return receipt, nil
}

// GetReceipt retrieves a receipt by ID
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// GetReceiptByNumber retrieves a receipt by its receipt number
func (s *ReceiptService) GetReceiptByNumber(ctx context.Context, receiptNo string) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByReceiptNo(ctx, receiptNo)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts retrieves receipts with optional filtering
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) ([]entity.Receipt, error) {
	return s.receiptRepo.List(ctx, params)
}
