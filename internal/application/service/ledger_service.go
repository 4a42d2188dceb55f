package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/schoolfin/feeledger-api/internal/domain/entity"
	"github.com/schoolfin/feeledger-api/internal/domain/repository"
	"github.com/schoolfin/feeledger-api/pkg/apperror"
	"github.com/schoolfin/feeledger-api/pkg/money"
)

// LedgerService computes receivable/received/balance figures. Nothing here
// is cached: every query recomputes from persisted rows, which keeps
// read-after-write consistency automatic at this scale.
type LedgerService struct {
	ledgerRepo  repository.LedgerRepository
	studentRepo repository.StudentRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	ledgerRepo repository.LedgerRepository,
	studentRepo repository.StudentRepository,
) *LedgerService {
	return &LedgerService{
		ledgerRepo:  ledgerRepo,
		studentRepo: studentRepo,
	}
}

// StudentBalance is the full ledger position of one student. Balance is
// receivable minus received and may be negative when overpaid; Opening and
// Credit are the carried-forward adjustment fields, kept distinct from the
// derived figure. TotalDue adds Opening to Balance.
type StudentBalance struct {
	StudentID  uuid.UUID   `json:"student_id"`
	Receivable money.Money `json:"receivable"`
	Received   money.Money `json:"received"`
	Balance    money.Money `json:"balance"`
	Opening    money.Money `json:"opening"`
	Credit     money.Money `json:"credit"`
	TotalDue   money.Money `json:"total_due"`
}

// GlobalSummary is the ledger position across all students
type GlobalSummary struct {
	Receivable money.Money `json:"receivable"`
	Received   money.Money `json:"received"`
	Balance    money.Money `json:"balance"`
}

// BalanceForStudent recomputes the student's position from persisted rows.
func (s *LedgerService) BalanceForStudent(ctx context.Context, studentID uuid.UUID) (*StudentBalance, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperror.NewNotFoundError("Student")
	}

	receivable, err := s.ledgerRepo.ReceivableForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	received, err := s.ledgerRepo.ReceivedForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	balance := receivable.Sub(received)
	return &StudentBalance{
		StudentID:  studentID,
		Receivable: receivable,
		Received:   received,
		Balance:    balance,
		Opening:    student.BalanceAmount,
		Credit:     student.CreditBalance,
		TotalDue:   balance.Add(student.BalanceAmount),
	}, nil
}

// Summary recomputes the global position.
func (s *LedgerService) Summary(ctx context.Context) (*GlobalSummary, error) {
	receivable, err := s.ledgerRepo.ReceivableTotal(ctx)
	if err != nil {
		return nil, err
	}
	received, err := s.ledgerRepo.ReceivedTotal(ctx)
	if err != nil {
		return nil, err
	}

	return &GlobalSummary{
		Receivable: receivable,
		Received:   received,
		Balance:    receivable.Sub(received),
	}, nil
}

// IncomeByFeeType sums receipt items per fee type within an optional window.
func (s *LedgerService) IncomeByFeeType(ctx context.Context, from, to *time.Time) ([]repository.FeeTypeIncome, error) {
	return s.ledgerRepo.IncomeByFeeType(ctx, from, to)
}

// OverdueRow is one line of the overdue listing
type OverdueRow struct {
	Student entity.Student `json:"student"`
	Balance money.Money    `json:"balance"`
}

// Overdue lists students owing a positive amount, worst first. Discontinued
// students appear only when marked collectible. The figure is receivable
// minus received; the carried-forward opening balance stays on the student
// card and never drives this listing. Overpaid students are excluded rather
// than shown negative.
func (s *LedgerService) Overdue(ctx context.Context) ([]OverdueRow, error) {
	students, err := s.studentRepo.List(ctx, &repository.StudentFilterParams{OverdueScope: true})
	if err != nil {
		return nil, err
	}

	rows := make([]OverdueRow, 0, len(students))
	for i := range students {
		pos, err := s.BalanceForStudent(ctx, students[i].ID)
		if err != nil {
			return nil, err
		}
		if !pos.Balance.IsPositive() {
			continue
		}
		rows = append(rows, OverdueRow{Student: students[i], Balance: pos.Balance})
	}

	// Descending by amount owed; equal amounts keep listing order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Balance.GreaterThan(rows[j].Balance)
	})
	return rows, nil
}
